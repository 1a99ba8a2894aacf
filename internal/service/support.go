package service

import (
	"context"
	"encoding/json"
	"fmt"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/genai"
	"github.com/unibuddy/lecture-api/internal/pipeline"
	"github.com/unibuddy/lecture-api/pkg/log"
)

const supportSystemInstruction = "You are a supportive assistant for international university students in Korea. " +
	"Respond with a single JSON document matching the requested shape exactly. Do not add commentary or markdown fences."

// SupportService backs the two synchronous student-support endpoints:
// emotional analysis of a student message and rewriting a message into
// formally polite Korean academic style.
type SupportService struct {
	generator genai.Generator
	logger    *log.StructuredLogger
}

func NewSupportService(generator genai.Generator) *SupportService {
	return &SupportService{
		generator: generator,
		logger:    log.NewDebugLogger("support_service"),
	}
}

func (s *SupportService) AnalyzeEmotion(ctx context.Context, request api.EmotionalAnalysisRequest) (*api.EmotionalAnalysis, error) {
	tracer := s.logger.WithContext(ctx).Operation("analyze_emotion").Build()

	userName := request.UserName
	if userName == "" {
		userName = "student"
	}

	prompt := fmt.Sprintf(`You are an empathetic listener for international students. Analyze the emotion in the following message and provide a warm, supportive response.

User name: %s
Message: %s

Respond with JSON of this shape:
{
  "emotion": {"positive": false, "loneliness": false, "sadness": false, "concern": false, "excited": false},
  "response": "an empathetic, warm response of roughly 200-300 characters",
  "suggestions": ["practical suggestion 1", "practical suggestion 2", "practical suggestion 3", "practical suggestion 4"]
}

Notes:
- Never give medical diagnoses or address acute crises; stick to general, safe emotional support.
- Use a friendly, empathetic tone suited to university students.`, userName, request.Message)

	raw, err := s.generator.Generate(ctx, supportSystemInstruction, prompt)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSupportUnavailable(err)
	}

	if err := pipeline.ValidateJSONAgainstSchema(emotionalAnalysisSchema(), raw); err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSupportUnavailable(err)
	}

	var analysis api.EmotionalAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSupportUnavailable(err)
	}

	tracer.Success().Log()
	return &analysis, nil
}

func (s *SupportService) HelpCommunication(ctx context.Context, request api.CommunicationHelpRequest) (*api.CommunicationHelp, error) {
	tracer := s.logger.WithContext(ctx).Operation("help_communication").Build()

	situation := request.Context
	if situation == "" {
		situation = "general communication with a professor"
	}

	prompt := fmt.Sprintf(`You help university students communicate with professors. Rewrite the following message into indirect, formally polite phrasing that fits Korean academic culture.

Original message: %s
Situation: %s

Respond with JSON of this shape:
{
  "politeVersion": "the message rewritten into an indirect, formally polite expression",
  "explanation": "why phrasing it this way works better",
  "culturalTips": ["cultural tip 1", "cultural tip 2", "cultural tip 3"]
}

Notes:
- Use honorifics and formality appropriate for a student addressing a professor.
- Account for the hierarchy of the Korean professor-student relationship.
- Turn blunt phrasing into indirect phrasing while keeping an academic, respectful tone.`, request.Message, situation)

	raw, err := s.generator.Generate(ctx, supportSystemInstruction, prompt)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSupportUnavailable(err)
	}

	if err := pipeline.ValidateJSONAgainstSchema(communicationHelpSchema(), raw); err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSupportUnavailable(err)
	}

	var help api.CommunicationHelp
	if err := json.Unmarshal(raw, &help); err != nil {
		tracer.Error(err).Log()
		return nil, NewErrSupportUnavailable(err)
	}

	tracer.Success().Log()
	return &help, nil
}

func emotionalAnalysisSchema() map[string]any {
	flag := map[string]any{"type": "boolean"}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"emotion": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"positive":   flag,
					"loneliness": flag,
					"sadness":    flag,
					"concern":    flag,
					"excited":    flag,
				},
				"required": []string{"positive", "loneliness", "sadness", "concern", "excited"},
			},
			"response": map[string]any{"type": "string", "minLength": 1},
			"suggestions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"emotion", "response", "suggestions"},
	}
}

func communicationHelpSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"politeVersion": map[string]any{"type": "string", "minLength": 1},
			"explanation":   map[string]any{"type": "string", "minLength": 1},
			"culturalTips": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"politeVersion", "explanation", "culturalTips"},
	}
}
