package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxUploadSize is the upload limit enforced both here and when reading the
// multipart body.
const MaxUploadSize = 50 * 1024 * 1024

// allowedContentTypes are the MIME types accepted for lecture uploads.
var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"audio/mpeg": {},
	"audio/wav":  {},
	"audio/mp4":  {},
	"audio/aac":  {},
}

func titleValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	trimmed := strings.TrimSpace(val)
	return trimmed != "" && len(trimmed) <= 255
}

func contentTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, allowed := allowedContentTypes[val]
	return allowed
}

func fileSizeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(int64)
	if !ok {
		return false
	}

	return val > 0 && val <= MaxUploadSize
}
