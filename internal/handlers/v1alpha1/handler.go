// Package v1alpha1 exposes the lecture API over HTTP. Handlers translate
// between the wire format and the service layer; typed service errors map to
// status codes here.
package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/handlers/validator"
	"github.com/unibuddy/lecture-api/internal/service"
	"github.com/unibuddy/lecture-api/pkg/requestid"
)

type ServiceHandler struct {
	lectureSrv *service.LectureService
	supportSrv *service.SupportService
	validator  *validator.Validator
}

func NewServiceHandler(lectureSrv *service.LectureService, supportSrv *service.SupportService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewLectureValidationRules()...)

	return &ServiceHandler{
		lectureSrv: lectureSrv,
		supportSrv: supportSrv,
		validator:  v,
	}
}

func (h *ServiceHandler) Routes(r chi.Router) {
	r.Route("/api/v1/lectures", func(r chi.Router) {
		r.Post("/", h.CreateLecture)
		r.Get("/", h.ListLectures)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetLecture)
			r.Patch("/", h.UpdateLecture)
			r.Delete("/", h.DeleteLecture)
			r.Get("/status", h.GetLectureStatus)
		})
	})

	r.Route("/api/v1/support", func(r chi.Router) {
		r.Post("/emotional-analysis", h.AnalyzeEmotion)
		r.Post("/communication-help", h.HelpCommunication)
	})

	r.Get("/health", h.Health)
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func respondError(w http.ResponseWriter, r *http.Request, code int, message string) {
	render.Status(r, code)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}
