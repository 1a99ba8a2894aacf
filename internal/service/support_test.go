package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/service"
)

var _ = Describe("Support Service", func() {
	Context("AnalyzeEmotion", func() {
		It("returns the parsed analysis for a schema-valid response", func() {
			generator := &cannedGenerator{response: []byte(`{
				"emotion": {"positive": false, "loneliness": true, "sadness": true, "concern": false, "excited": false},
				"response": "That sounds really hard. Being far from home takes a toll.",
				"suggestions": ["join a student club", "call a friend from home"]
			}`)}
			svc := service.NewSupportService(generator)

			analysis, err := svc.AnalyzeEmotion(context.TODO(), api.EmotionalAnalysisRequest{
				Message:  "I miss my family and nobody here speaks my language",
				UserName: "Amara",
			})
			Expect(err).To(BeNil())
			Expect(analysis.Emotion.Loneliness).To(BeTrue())
			Expect(analysis.Emotion.Positive).To(BeFalse())
			Expect(analysis.Response).ToNot(BeEmpty())
			Expect(analysis.Suggestions).To(HaveLen(2))
		})

		It("rejects a response missing required fields", func() {
			generator := &cannedGenerator{response: []byte(`{"response": "hang in there"}`)}
			svc := service.NewSupportService(generator)

			_, err := svc.AnalyzeEmotion(context.TODO(), api.EmotionalAnalysisRequest{Message: "hello"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrSupportUnavailable{}))
		})

		It("wraps generator failures", func() {
			generator := &cannedGenerator{err: errors.New("model unavailable")}
			svc := service.NewSupportService(generator)

			_, err := svc.AnalyzeEmotion(context.TODO(), api.EmotionalAnalysisRequest{Message: "hello"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrSupportUnavailable{}))
		})
	})

	Context("HelpCommunication", func() {
		It("returns the polite rewrite for a schema-valid response", func() {
			generator := &cannedGenerator{response: []byte(`{
				"politeVersion": "교수님, 혹시 시간 괜찮으시다면 과제 제출 기한에 대해 여쭤봐도 될까요?",
				"explanation": "Indirect phrasing with honorifics softens the request.",
				"culturalTips": ["address professors by title", "avoid demanding phrasing"]
			}`)}
			svc := service.NewSupportService(generator)

			help, err := svc.HelpCommunication(context.TODO(), api.CommunicationHelpRequest{
				Message: "I need more time for the assignment",
				Context: "asking for a deadline extension",
			})
			Expect(err).To(BeNil())
			Expect(help.PoliteVersion).ToNot(BeEmpty())
			Expect(help.CulturalTips).To(HaveLen(2))
		})

		It("rejects a response with empty cultural tips", func() {
			generator := &cannedGenerator{response: []byte(`{"politeVersion": "p", "explanation": "e", "culturalTips": []}`)}
			svc := service.NewSupportService(generator)

			_, err := svc.HelpCommunication(context.TODO(), api.CommunicationHelpRequest{Message: "hello"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrSupportUnavailable{}))
		})
	})
})

type cannedGenerator struct {
	response []byte
	err      error
}

func (g *cannedGenerator) Generate(_ context.Context, _, _ string) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}
