package pipeline

import (
	"fmt"
)

type ErrUnsupportedFileType struct {
	error
}

func NewErrUnsupportedFileType(fileName string) *ErrUnsupportedFileType {
	return &ErrUnsupportedFileType{fmt.Errorf("file %q has an unsupported file type", fileName)}
}

type ErrExtractionFailed struct {
	error
}

func NewErrExtractionFailed(fileName string, cause error) *ErrExtractionFailed {
	return &ErrExtractionFailed{fmt.Errorf("failed to extract content from %q: %w", fileName, cause)}
}

type ErrEnrichmentFailed struct {
	error
	task Task
}

func NewErrEnrichmentFailed(task Task, cause error) *ErrEnrichmentFailed {
	return &ErrEnrichmentFailed{
		error: fmt.Errorf("enrichment task %s failed: %w", task, cause),
		task:  task,
	}
}

func (e *ErrEnrichmentFailed) Task() Task {
	return e.task
}
