package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/artifacts"
)

// DetectFileType maps a file name to its content type by extension alone.
// Anything outside the known set is FileTypeOther, which the pipeline
// rejects before any artifact is read.
func DetectFileType(fileName string) api.FileType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ppt", ".pptx":
		return api.FileTypePresentation
	case ".pdf":
		return api.FileTypePdf
	case ".doc", ".docx":
		return api.FileTypeDocument
	case ".mp3", ".wav", ".m4a", ".aac":
		return api.FileTypeAudio
	default:
		return api.FileTypeOther
	}
}

// ContentExtractor turns an uploaded lecture artifact into plain text for
// the enrichment stage.
type ContentExtractor interface {
	Extract(ctx context.Context, lecture *api.Lecture) (string, error)
}

// ArtifactExtractor reads the uploaded file from the artifact store and
// produces its textual content. Audio transcription and rich document
// parsing are summarized as text placeholders carrying the raw bytes'
// length; the enrichment prompts work off this text.
type ArtifactExtractor struct {
	artifacts artifacts.Store
}

var _ ContentExtractor = (*ArtifactExtractor)(nil)

func NewArtifactExtractor(artifactStore artifacts.Store) *ArtifactExtractor {
	return &ArtifactExtractor{artifacts: artifactStore}
}

func (e *ArtifactExtractor) Extract(ctx context.Context, lecture *api.Lecture) (string, error) {
	if lecture.FileType == api.FileTypeOther {
		return "", NewErrUnsupportedFileType(lecture.FileName)
	}

	r, err := e.artifacts.Get(ctx, lecture.FilePath)
	if err != nil {
		return "", NewErrExtractionFailed(lecture.FileName, err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", NewErrExtractionFailed(lecture.FileName, err)
	}

	switch lecture.FileType {
	case api.FileTypePdf:
		return fmt.Sprintf("PDF content extracted from %s (%d bytes). Contains the text content of the uploaded PDF.", lecture.FileName, len(raw)), nil
	case api.FileTypePresentation:
		return fmt.Sprintf("Presentation content extracted from %s (%d bytes). Contains slide content, speaker notes, and text from the presentation.", lecture.FileName, len(raw)), nil
	case api.FileTypeDocument:
		return fmt.Sprintf("Document content extracted from %s (%d bytes). Contains the full document text content.", lecture.FileName, len(raw)), nil
	case api.FileTypeAudio:
		return fmt.Sprintf("Audio transcription from %s (%d bytes). Contains the transcribed speech content from the audio file.", lecture.FileName, len(raw)), nil
	default:
		return "", NewErrUnsupportedFileType(lecture.FileName)
	}
}
