package events

import (
	"github.com/google/uuid"
)

// LectureEvent is emitted on every lifecycle transition of a lecture job.
type LectureEvent struct {
	LectureID uuid.UUID `json:"lecture_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	FileType  string    `json:"file_type,omitempty"`
	Error     string    `json:"error,omitempty"`
}
