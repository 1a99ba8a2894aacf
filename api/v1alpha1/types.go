// Package v1alpha1 contains the public API types served by lecture-api.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// LectureStatus is the lifecycle state of a lecture processing job.
type LectureStatus string

const (
	LectureStatusUploaded   LectureStatus = "uploaded"
	LectureStatusProcessing LectureStatus = "processing"
	LectureStatusCompleted  LectureStatus = "completed"
	LectureStatusFailed     LectureStatus = "failed"
)

// FileType is the declared type of an uploaded artifact, derived from its
// file extension.
type FileType string

const (
	FileTypePresentation FileType = "presentation"
	FileTypePdf          FileType = "pdf"
	FileTypeDocument     FileType = "document"
	FileTypeAudio        FileType = "audio"
	FileTypeOther        FileType = "other"
)

// Lecture is one lecture processing job, from upload through terminal state.
type Lecture struct {
	Id        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Subject   *string           `json:"subject,omitempty"`
	Status    LectureStatus     `json:"status"`
	Progress  int               `json:"progress"`
	FileType  FileType          `json:"fileType"`
	FileName  string            `json:"fileName"`
	FilePath  string            `json:"filePath"`
	FileSize  int64             `json:"fileSize"`
	Starred   bool              `json:"starred"`
	Result    *ProcessedContent `json:"result,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type LectureList []Lecture

// LectureStatusSummary is the lightweight polling shape. Clients poll this
// instead of re-downloading a potentially large result payload.
type LectureStatusSummary struct {
	Id        uuid.UUID     `json:"id"`
	Status    LectureStatus `json:"status"`
	Progress  int           `json:"progress"`
	HasResult bool          `json:"hasResult"`
}

// LectureUpdate is the client-writable part of a lecture. Status, progress
// and result are pipeline-owned and not accepted from clients.
type LectureUpdate struct {
	Starred *bool `json:"starred"`
}

// LocalizedText holds one text fragment in the three supported languages.
type LocalizedText struct {
	Ko string `json:"ko"`
	En string `json:"en"`
	Zh string `json:"zh"`
}

// LocalizedList holds one list of strings per supported language.
type LocalizedList struct {
	Ko []string `json:"ko"`
	En []string `json:"en"`
	Zh []string `json:"zh"`
}

// KeyTerm is one important term extracted from the lecture, with per-language
// definitions and a note on how the term is used in the lecture.
type KeyTerm struct {
	Term       string        `json:"term"`
	Definition LocalizedText `json:"definition"`
	Context    LocalizedText `json:"context"`
}

// BackgroundCard is one background-knowledge item supporting the lecture.
type BackgroundCard struct {
	Title   LocalizedText `json:"title"`
	Content LocalizedText `json:"content"`
}

// QuizQuestion is one multiple-choice question. Correct is the zero-based
// index into the four options.
type QuizQuestion struct {
	Question    LocalizedText `json:"question"`
	Options     LocalizedList `json:"options"`
	Correct     int           `json:"correct"`
	Explanation LocalizedText `json:"explanation"`
}

// ProcessedContent is the final enrichment payload, assembled from the six
// independent enrichment tasks. It is set exactly once, on transition to
// completed, and never partially populated.
type ProcessedContent struct {
	Summary             LocalizedText    `json:"summary"`
	KeyTerms            []KeyTerm        `json:"keyTerms"`
	BackgroundKnowledge []BackgroundCard `json:"backgroundKnowledge"`
	Quiz                []QuizQuestion   `json:"quiz"`
	LearningObjectives  LocalizedList    `json:"learningObjectives"`
	Keywords            LocalizedList    `json:"keywords"`
}

// EmotionalAnalysisRequest is the input of the emotional-support endpoint.
type EmotionalAnalysisRequest struct {
	Message  string `json:"message"`
	UserName string `json:"userName,omitempty"`
}

// EmotionFlags classifies the dominant feelings detected in a message.
type EmotionFlags struct {
	Positive   bool `json:"positive"`
	Loneliness bool `json:"loneliness"`
	Sadness    bool `json:"sadness"`
	Concern    bool `json:"concern"`
	Excited    bool `json:"excited"`
}

// EmotionalAnalysis is the empathetic reply produced for a student message.
type EmotionalAnalysis struct {
	Emotion     EmotionFlags `json:"emotion"`
	Response    string       `json:"response"`
	Suggestions []string     `json:"suggestions"`
}

// CommunicationHelpRequest is the input of the communication-style endpoint.
type CommunicationHelpRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// CommunicationHelp is a rewritten, formally polite version of a student
// message together with cultural guidance.
type CommunicationHelp struct {
	PoliteVersion string   `json:"politeVersion"`
	Explanation   string   `json:"explanation"`
	CulturalTips  []string `json:"culturalTips"`
}

// Error is the common error response body.
type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"request_id,omitempty"`
}
