package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewLectureValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("lecture_title", titleValidator),
		},
		{
			Rule: registerFn("upload_content_type", contentTypeValidator),
		},
		{
			Rule: registerFn("upload_size", fileSizeValidator),
		},
	}
}
