package mappers

import (
	"github.com/google/uuid"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/store/model"
)

// LectureCreateForm carries everything needed to register one uploaded
// lecture. The artifact key is derived from the generated id so concurrent
// uploads of the same file name never collide.
type LectureCreateForm struct {
	Title       string
	Subject     *string
	FileName    string
	ContentType string
	FileSize    int64
	FileType    api.FileType
}

func (f *LectureCreateForm) ToModel(id uuid.UUID, filePath string) model.Lecture {
	return model.Lecture{
		ID:       id,
		Title:    f.Title,
		Subject:  f.Subject,
		Status:   string(api.LectureStatusUploaded),
		Progress: 0,
		FileType: string(f.FileType),
		FileName: f.FileName,
		FilePath: filePath,
		FileSize: f.FileSize,
	}
}
