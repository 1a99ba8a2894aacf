package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/unibuddy/lecture-api/internal/pipeline"
)

const (
	JobTimeout = 15 * time.Minute
	JobKind    = "lecture_process"
)

// LectureArgs is the payload of one lecture processing job. It is stored in
// river_job.args as JSON, so it only carries the lecture id; the worker
// loads the record and the artifact itself.
type LectureArgs struct {
	LectureID uuid.UUID `json:"lecture_id"`
}

func (LectureArgs) Kind() string {
	return JobKind
}

func (LectureArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       DefaultQueue,
		MaxAttempts: MaxJobRetries,
	}
}

type LectureWorker struct {
	river.WorkerDefaults[LectureArgs]
	processor *pipeline.Processor
}

func NewLectureWorker(processor *pipeline.Processor) *LectureWorker {
	return &LectureWorker{processor: processor}
}

func (w *LectureWorker) Timeout(job *river.Job[LectureArgs]) time.Duration {
	return JobTimeout
}

func (w *LectureWorker) Work(ctx context.Context, job *river.Job[LectureArgs]) error {
	// Check for cancellation before starting
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.processor.Process(ctx, job.Args.LectureID)
}
