package v1alpha1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/handlers/validator"
	"github.com/unibuddy/lecture-api/internal/pipeline"
	"github.com/unibuddy/lecture-api/internal/service"
	"github.com/unibuddy/lecture-api/internal/service/mappers"
	"github.com/unibuddy/lecture-api/pkg/log"
)

// uploadForm is the validated shape of the multipart upload request.
type uploadForm struct {
	Title       string `validate:"lecture_title"`
	ContentType string `validate:"upload_content_type"`
	FileSize    int64  `validate:"upload_size"`
}

// (POST /api/v1/lectures)
func (h *ServiceHandler) CreateLecture(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lecture_handler").
		WithContext(r.Context()).
		Operation("create_lecture").
		Build()

	// One extra KB so a body exactly at the limit still parses.
	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxUploadSize+1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logger.Error(err).WithString("step", "parse_multipart").Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Error(err).WithString("step", "read_file").Log()
		respondError(w, r, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	form := uploadForm{
		Title:       r.FormValue("title"),
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    header.Size,
	}
	if err := h.validator.Struct(form); err != nil {
		logger.Error(err).WithString("step", "validation").Log()
		respondError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	createForm := mappers.LectureCreateForm{
		Title:       strings.TrimSpace(form.Title),
		FileName:    header.Filename,
		ContentType: form.ContentType,
		FileSize:    header.Size,
		FileType:    pipeline.DetectFileType(header.Filename),
	}
	if subject := strings.TrimSpace(r.FormValue("subject")); subject != "" {
		createForm.Subject = &subject
	}

	lecture, err := h.lectureSrv.CreateLecture(r.Context(), createForm, file)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Success().WithUUID("lecture_id", lecture.Id).WithString("file_type", string(lecture.FileType)).Log()
	render.JSON(w, r, lecture)
}

// (GET /api/v1/lectures)
func (h *ServiceHandler) ListLectures(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lecture_handler").
		WithContext(r.Context()).
		Operation("list_lectures").
		Build()

	filter := service.LectureFilter{
		Search:  r.URL.Query().Get("search"),
		Subject: r.URL.Query().Get("subject"),
		Status:  r.URL.Query().Get("status"),
	}
	if starred := r.URL.Query().Get("starred"); starred != "" {
		value := starred == "true"
		filter.Starred = &value
	}

	lectures, err := h.lectureSrv.ListLectures(r.Context(), &filter)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list lectures: %v", err))
		return
	}

	logger.Success().WithInt("count", len(lectures)).Log()
	render.JSON(w, r, lectures.ToApiResource())
}

// (GET /api/v1/lectures/{id})
func (h *ServiceHandler) GetLecture(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lecture_handler").
		WithContext(r.Context()).
		Operation("get_lecture").
		Build()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid lecture id")
		return
	}

	lecture, err := h.lectureSrv.GetLecture(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, logger, err)
		return
	}

	logger.Success().WithUUID("lecture_id", id).Log()
	render.JSON(w, r, lecture.ToApiResource())
}

// (PATCH /api/v1/lectures/{id})
func (h *ServiceHandler) UpdateLecture(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lecture_handler").
		WithContext(r.Context()).
		Operation("update_lecture").
		Build()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid lecture id")
		return
	}

	// Only the starred flag is client-writable; unknown fields are rejected.
	var update api.LectureUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if update.Starred == nil {
		respondError(w, r, http.StatusBadRequest, "starred is the only updatable field")
		return
	}

	lecture, err := h.lectureSrv.UpdateLecture(r.Context(), id, update)
	if err != nil {
		h.respondServiceError(w, r, logger, err)
		return
	}

	logger.Success().WithUUID("lecture_id", id).WithBool("starred", lecture.Starred).Log()
	render.JSON(w, r, lecture)
}

// (DELETE /api/v1/lectures/{id})
func (h *ServiceHandler) DeleteLecture(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lecture_handler").
		WithContext(r.Context()).
		Operation("delete_lecture").
		Build()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid lecture id")
		return
	}

	if err := h.lectureSrv.DeleteLecture(r.Context(), id); err != nil {
		h.respondServiceError(w, r, logger, err)
		return
	}

	logger.Success().WithUUID("lecture_id", id).Log()
	w.WriteHeader(http.StatusOK)
}

// (GET /api/v1/lectures/{id}/status)
func (h *ServiceHandler) GetLectureStatus(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("lecture_handler").
		WithContext(r.Context()).
		Operation("get_lecture_status").
		Build()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid lecture id")
		return
	}

	status, err := h.lectureSrv.GetLectureStatus(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, logger, err)
		return
	}

	logger.Success().WithUUID("lecture_id", id).WithString("status", string(status.Status)).Log()
	render.JSON(w, r, status)
}

func (h *ServiceHandler) respondServiceError(w http.ResponseWriter, r *http.Request, logger *log.OperationTracer, err error) {
	switch err.(type) {
	case *service.ErrResourceNotFound:
		logger.Error(err).Log()
		respondError(w, r, http.StatusNotFound, err.Error())
	case *service.ErrInvalidRequest:
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		logger.Error(err).Log()
		respondError(w, r, http.StatusInternalServerError, err.Error())
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "lecture_title"):
		return "title is required and must be at most 255 characters"
	case strings.Contains(msg, "upload_content_type"):
		return "file type not supported"
	case strings.Contains(msg, "upload_size"):
		return "file size exceeds 50MB limit"
	default:
		return msg
	}
}
