package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
)

type Lecture struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Title     string    `gorm:"not null;index:lectures_title_idx"`
	Subject   *string
	Status    string `gorm:"not null;type:VARCHAR(50);default:uploaded"`
	Progress  int    `gorm:"not null;default:0"`
	FileType  string `gorm:"not null;type:VARCHAR(50)"`
	FileName  string `gorm:"not null"`
	FilePath  string `gorm:"not null"`
	FileSize  int64  `gorm:"not null"`
	Starred   bool   `gorm:"not null;default:false"`
	Result    *JSONField[api.ProcessedContent] `gorm:"type:jsonb"`
}

type LectureList []Lecture

func (l Lecture) String() string {
	val, _ := json.Marshal(l)
	return string(val)
}

func (l Lecture) ToApiResource() api.Lecture {
	lecture := api.Lecture{
		Id:        l.ID,
		Title:     l.Title,
		Subject:   l.Subject,
		Status:    api.LectureStatus(l.Status),
		Progress:  l.Progress,
		FileType:  api.FileType(l.FileType),
		FileName:  l.FileName,
		FilePath:  l.FilePath,
		FileSize:  l.FileSize,
		Starred:   l.Starred,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.Result != nil {
		result := l.Result.Data
		lecture.Result = &result
	}
	return lecture
}

func (ll LectureList) ToApiResource() api.LectureList {
	lectures := make(api.LectureList, 0, len(ll))
	for _, l := range ll {
		lectures = append(lectures, l.ToApiResource())
	}
	return lectures
}
