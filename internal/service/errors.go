package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrLectureNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "lecture")
}

type ErrInvalidRequest struct {
	error
}

func NewErrInvalidRequest(message string) *ErrInvalidRequest {
	return &ErrInvalidRequest{fmt.Errorf("bad request: %s", message)}
}

type ErrSupportUnavailable struct {
	error
}

func NewErrSupportUnavailable(cause error) *ErrSupportUnavailable {
	return &ErrSupportUnavailable{fmt.Errorf("support assistant unavailable: %w", cause)}
}
