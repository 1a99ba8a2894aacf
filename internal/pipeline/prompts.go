package pipeline

import (
	"fmt"
)

const systemInstruction = "You are a study assistant for university students. " +
	"You analyze lecture material and produce structured study aids in three languages: Korean (ko), English (en) and Chinese (zh). " +
	"Respond with a single JSON document matching the requested shape exactly. Do not add commentary or markdown fences."

// buildPrompt returns the user prompt for one enrichment task. Every prompt
// embeds the expected JSON shape so the model mirrors it; responses are still
// schema-validated afterwards.
func buildPrompt(task Task, title, text string) string {
	switch task {
	case TaskSummary:
		return fmt.Sprintf(`Analyze the following lecture and summarize its core content.
Lecture title: %s
Lecture content: %s

Respond with JSON of this shape:
{
  "ko": "Korean summary covering learning objectives, key concepts and main content",
  "en": "English summary covering learning objectives, key concepts and main content",
  "zh": "Chinese summary covering learning objectives, key concepts and main content"
}`, title, text)

	case TaskTerms:
		return fmt.Sprintf(`Extract the important terms from the following lecture and explain them.
Lecture content: %s

Respond with JSON of this shape:
{
  "terms": [
    {
      "term": "the term",
      "definition": {"ko": "...", "en": "...", "zh": "..."},
      "context": {"ko": "...", "en": "...", "zh": "..."}
    }
  ]
}

Select at most 8 key terms. The context explains how the term is used in this lecture.`, text)

	case TaskBackground:
		return fmt.Sprintf(`Generate background knowledge that helps a student understand the following lecture.
Lecture title: %s
Lecture content: %s

Respond with JSON of this shape:
{
  "knowledge": [
    {
      "title": {"ko": "...", "en": "...", "zh": "..."},
      "content": {"ko": "...", "en": "...", "zh": "..."}
    }
  ]
}

Generate at most 4 background knowledge items.`, title, text)

	case TaskQuiz:
		return fmt.Sprintf(`Create a quiz that checks understanding of the following lecture.
Lecture content: %s

Respond with JSON of this shape:
{
  "quiz": [
    {
      "question": {"ko": "...", "en": "...", "zh": "..."},
      "options": {
        "ko": ["option 1", "option 2", "option 3", "option 4"],
        "en": ["option 1", "option 2", "option 3", "option 4"],
        "zh": ["option 1", "option 2", "option 3", "option 4"]
      },
      "correct": 0,
      "explanation": {"ko": "...", "en": "...", "zh": "..."}
    }
  ]
}

Create exactly 5 multiple-choice questions. "correct" is the zero-based index (0-3) of the right option.`, text)

	case TaskObjectives:
		return fmt.Sprintf(`Extract the learning objectives from the following lecture.
Lecture content: %s

Respond with JSON of this shape:
{
  "ko": ["objective 1", "objective 2"],
  "en": ["objective 1", "objective 2"],
  "zh": ["objective 1", "objective 2"]
}

List at most 5 concrete learning objectives.`, text)

	case TaskKeywords:
		return fmt.Sprintf(`Extract the core keywords from the following lecture.
Lecture content: %s

Respond with JSON of this shape:
{
  "ko": ["keyword 1", "keyword 2"],
  "en": ["keyword 1", "keyword 2"],
  "zh": ["keyword 1", "keyword 2"]
}

Extract at most 8 important keywords.`, text)

	default:
		return ""
	}
}
