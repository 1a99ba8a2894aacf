package pipeline_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/unibuddy/lecture-api/internal/pipeline"
)

// validTaskResponse builds a minimal schema-valid model response for a task.
func validTaskResponse(task pipeline.Task) []byte {
	switch task {
	case pipeline.TaskSummary:
		return []byte(`{"ko":"미토콘드리아 요약","en":"A summary of mitochondria","zh":"线粒体摘要"}`)
	case pipeline.TaskTerms:
		return []byte(`{"terms":[{"term":"mitochondrion","definition":{"ko":"정의","en":"definition","zh":"定义"},"context":{"ko":"맥락","en":"context","zh":"背景"}}]}`)
	case pipeline.TaskBackground:
		return []byte(`{"knowledge":[{"title":{"ko":"제목","en":"title","zh":"标题"},"content":{"ko":"내용","en":"content","zh":"内容"}}]}`)
	case pipeline.TaskQuiz:
		questions := make([]string, 0, 5)
		for i := 0; i < 5; i++ {
			questions = append(questions, fmt.Sprintf(
				`{"question":{"ko":"문제 %[1]d","en":"question %[1]d","zh":"问题 %[1]d"},`+
					`"options":{"ko":["가","나","다","라"],"en":["a","b","c","d"],"zh":["一","二","三","四"]},`+
					`"correct":%[2]d,`+
					`"explanation":{"ko":"해설","en":"explanation","zh":"解释"}}`, i+1, i%4))
		}
		return []byte(`{"quiz":[` + strings.Join(questions, ",") + `]}`)
	case pipeline.TaskObjectives:
		return []byte(`{"ko":["목표 1"],"en":["objective 1"],"zh":["目标 1"]}`)
	case pipeline.TaskKeywords:
		return []byte(`{"ko":["키워드"],"en":["keyword"],"zh":["关键词"]}`)
	default:
		return []byte(`{}`)
	}
}

// fakeGenerator returns one canned payload for every call.
type fakeGenerator struct {
	response []byte
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

// fakeStageProcessor answers every task with a valid payload except the
// configured failing one.
type fakeStageProcessor struct {
	failTask pipeline.Task
	failErr  error
}

func (f *fakeStageProcessor) Enrich(_ context.Context, task pipeline.Task, _, _ string) ([]byte, error) {
	if f.failTask == task {
		return nil, pipeline.NewErrEnrichmentFailed(task, f.failErr)
	}
	return validTaskResponse(task), nil
}
