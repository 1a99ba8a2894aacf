package pipeline

import (
	"context"

	"github.com/unibuddy/lecture-api/internal/genai"
	"github.com/unibuddy/lecture-api/pkg/log"
)

// StageProcessor runs one enrichment task over extracted lecture text and
// returns the raw, schema-valid JSON response for that task.
type StageProcessor interface {
	Enrich(ctx context.Context, task Task, title, text string) ([]byte, error)
}

type genAIStageProcessor struct {
	generator genai.Generator
	log       *log.StructuredLogger
}

var _ StageProcessor = (*genAIStageProcessor)(nil)

func NewStageProcessor(generator genai.Generator) StageProcessor {
	return &genAIStageProcessor{
		generator: generator,
		log:       log.NewDebugLogger("stage_processor"),
	}
}

func (p *genAIStageProcessor) Enrich(ctx context.Context, task Task, title, text string) ([]byte, error) {
	tracer := p.log.WithContext(ctx).
		Operation("enrich").
		WithString("task", string(task)).
		WithString("title", title).
		Build()

	raw, err := p.generator.Generate(ctx, systemInstruction, buildPrompt(task, title, text))
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrEnrichmentFailed(task, err)
	}

	if err := ValidateJSONAgainstSchema(taskSchema(task), raw); err != nil {
		tracer.Error(err).Log()
		return nil, NewErrEnrichmentFailed(task, err)
	}

	tracer.Success().WithInt("response_bytes", len(raw)).Log()
	return raw, nil
}
