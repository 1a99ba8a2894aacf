package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/events"
	"github.com/unibuddy/lecture-api/internal/store"
	"github.com/unibuddy/lecture-api/pkg/log"
	"github.com/unibuddy/lecture-api/pkg/metrics"

	"github.com/google/uuid"
)

const (
	progressProcessing = 10
	progressExtracted  = 30
	progressEnriching  = 60
	progressCompleted  = 100

	defaultTaskTimeout = 2 * time.Minute
)

// Processor drives one lecture through the whole pipeline: extraction, the
// six-way enrichment fan-out, and the terminal status transition. A failure
// anywhere moves the lecture to failed with progress reset to zero; the
// result is written only on the completed transition, never partially.
type Processor struct {
	store       store.Store
	extractor   ContentExtractor
	stages      StageProcessor
	eventWriter *events.EventProducer
	taskTimeout time.Duration
	log         *log.StructuredLogger
}

type ProcessorOption func(p *Processor)

// WithTaskTimeout bounds each enrichment task individually.
func WithTaskTimeout(d time.Duration) ProcessorOption {
	return func(p *Processor) {
		p.taskTimeout = d
	}
}

func NewProcessor(s store.Store, extractor ContentExtractor, stages StageProcessor, ew *events.EventProducer, opts ...ProcessorOption) *Processor {
	p := &Processor{
		store:       s,
		extractor:   extractor,
		stages:      stages,
		eventWriter: ew,
		taskTimeout: defaultTaskTimeout,
		log:         log.NewDebugLogger("lecture_pipeline"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process runs the pipeline for one uploaded lecture. The returned error is
// the pipeline failure, if any; the lecture's terminal state has already
// been persisted by the time Process returns.
func (p *Processor) Process(ctx context.Context, lectureID uuid.UUID) error {
	start := time.Now()
	tracer := p.log.WithContext(ctx).
		Operation("process_lecture").
		WithUUID("lecture_id", lectureID).
		Build()

	lecture, err := p.store.Lecture().Get(ctx, lectureID)
	if err != nil {
		tracer.Error(err).Log()
		return fmt.Errorf("failed to load lecture %s: %w", lectureID, err)
	}

	// Re-delivered jobs for lectures already past uploaded are ignored.
	if lecture.Status != string(api.LectureStatusUploaded) {
		tracer.Step("skipped").WithString("status", lecture.Status).Log()
		return nil
	}

	apiLecture := lecture.ToApiResource()

	if err := p.setProgress(ctx, lectureID, api.LectureStatusProcessing, progressProcessing); err != nil {
		tracer.Error(err).Log()
		return err
	}
	p.emitEvent(ctx, events.LectureProcessingKind, &apiLecture, progressProcessing, nil)
	tracer.Step("processing").WithInt("progress", progressProcessing).Log()

	text, err := p.extractor.Extract(ctx, &apiLecture)
	if err != nil {
		return p.fail(ctx, tracer, &apiLecture, start, err)
	}
	if err := p.setProgress(ctx, lectureID, api.LectureStatusProcessing, progressExtracted); err != nil {
		return p.fail(ctx, tracer, &apiLecture, start, err)
	}
	tracer.Step("extracted").WithInt("progress", progressExtracted).Log()

	if err := p.setProgress(ctx, lectureID, api.LectureStatusProcessing, progressEnriching); err != nil {
		return p.fail(ctx, tracer, &apiLecture, start, err)
	}
	tracer.Step("enriching").WithInt("progress", progressEnriching).Log()

	result, err := p.enrich(ctx, apiLecture.Title, text)
	if err != nil {
		return p.fail(ctx, tracer, &apiLecture, start, err)
	}

	status := string(api.LectureStatusCompleted)
	progress := progressCompleted
	if _, err := p.store.Lecture().Update(ctx, lectureID, store.LectureUpdate{
		Status:   &status,
		Progress: &progress,
		Result:   result,
	}); err != nil {
		return p.fail(ctx, tracer, &apiLecture, start, err)
	}

	metrics.IncreaseLecturesProcessedTotalMetric(string(api.LectureStatusCompleted))
	metrics.ObserveLectureProcessingDuration(string(api.LectureStatusCompleted), time.Since(start).Seconds())
	p.emitEvent(ctx, events.LectureCompletedKind, &apiLecture, progressCompleted, nil)
	tracer.Success().WithInt("progress", progressCompleted).Log()

	return nil
}

// enrich runs all six tasks concurrently and assembles the payload. Any
// failed task cancels the rest and discards everything.
func (p *Processor) enrich(ctx context.Context, title, text string) (*api.ProcessedContent, error) {
	var (
		mu     sync.Mutex
		result api.ProcessedContent
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range AllTasks {
		g.Go(func() error {
			taskCtx, cancel := context.WithTimeout(gctx, p.taskTimeout)
			defer cancel()

			raw, err := p.stages.Enrich(taskCtx, task, title, text)
			if err != nil {
				metrics.IncreaseEnrichmentTaskFailureMetric(string(task))
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			return decodeTaskResponse(task, raw, &result)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// decodeTaskResponse unmarshals one schema-valid task response into its slot
// of the payload. Terms, background and quiz arrive wrapped in a single-key
// envelope object.
func decodeTaskResponse(task Task, raw []byte, result *api.ProcessedContent) error {
	var err error
	switch task {
	case TaskSummary:
		err = json.Unmarshal(raw, &result.Summary)
	case TaskTerms:
		var envelope struct {
			Terms []api.KeyTerm `json:"terms"`
		}
		if err = json.Unmarshal(raw, &envelope); err == nil {
			result.KeyTerms = envelope.Terms
		}
	case TaskBackground:
		var envelope struct {
			Knowledge []api.BackgroundCard `json:"knowledge"`
		}
		if err = json.Unmarshal(raw, &envelope); err == nil {
			result.BackgroundKnowledge = envelope.Knowledge
		}
	case TaskQuiz:
		var envelope struct {
			Quiz []api.QuizQuestion `json:"quiz"`
		}
		if err = json.Unmarshal(raw, &envelope); err == nil {
			result.Quiz = envelope.Quiz
		}
	case TaskObjectives:
		err = json.Unmarshal(raw, &result.LearningObjectives)
	case TaskKeywords:
		err = json.Unmarshal(raw, &result.Keywords)
	default:
		err = fmt.Errorf("unknown task %s", task)
	}
	if err != nil {
		return NewErrEnrichmentFailed(task, err)
	}
	return nil
}

// fail moves the lecture to the failed terminal state with progress reset to
// zero and returns the original pipeline error.
func (p *Processor) fail(ctx context.Context, tracer *log.OperationTracer, lecture *api.Lecture, start time.Time, cause error) error {
	status := string(api.LectureStatusFailed)
	progress := 0
	if _, err := p.store.Lecture().Update(ctx, lecture.Id, store.LectureUpdate{
		Status:   &status,
		Progress: &progress,
	}); err != nil {
		tracer.Error(err).WithString("cause", cause.Error()).Log()
		return fmt.Errorf("failed to mark lecture %s as failed: %w", lecture.Id, err)
	}

	metrics.IncreaseLecturesProcessedTotalMetric(string(api.LectureStatusFailed))
	metrics.ObserveLectureProcessingDuration(string(api.LectureStatusFailed), time.Since(start).Seconds())
	p.emitEvent(ctx, events.LectureFailedKind, lecture, 0, cause)
	tracer.Error(cause).Log()

	return cause
}

func (p *Processor) setProgress(ctx context.Context, id uuid.UUID, status api.LectureStatus, progress int) error {
	s := string(status)
	if _, err := p.store.Lecture().Update(ctx, id, store.LectureUpdate{
		Status:   &s,
		Progress: &progress,
	}); err != nil {
		return fmt.Errorf("failed to update lecture %s progress: %w", id, err)
	}
	return nil
}

func (p *Processor) emitEvent(ctx context.Context, kind string, lecture *api.Lecture, progress int, cause error) {
	if p.eventWriter == nil {
		return
	}

	event := events.LectureEvent{
		LectureID: lecture.Id,
		Status:    statusForEventKind(kind),
		Progress:  progress,
		FileType:  string(lecture.FileType),
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := p.eventWriter.Write(ctx, kind, bytes.NewBuffer(data)); err != nil {
		p.log.WithContext(ctx).Operation("emit_event").Build().Error(err).Log()
	}
}

func statusForEventKind(kind string) string {
	switch kind {
	case events.LectureProcessingKind:
		return string(api.LectureStatusProcessing)
	case events.LectureCompletedKind:
		return string(api.LectureStatusCompleted)
	case events.LectureFailedKind:
		return string(api.LectureStatusFailed)
	default:
		return string(api.LectureStatusUploaded)
	}
}
