package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/artifacts"
	"github.com/unibuddy/lecture-api/internal/events"
	"github.com/unibuddy/lecture-api/internal/pipeline/jobs"
	"github.com/unibuddy/lecture-api/internal/service/mappers"
	"github.com/unibuddy/lecture-api/internal/store"
	"github.com/unibuddy/lecture-api/internal/store/model"
	"github.com/unibuddy/lecture-api/pkg/log"
)

// JobEnqueuer inserts one processing job for an uploaded lecture. Satisfied
// by the river-backed jobs.Client; tests substitute a fake.
type JobEnqueuer interface {
	InsertJob(ctx context.Context, args jobs.LectureArgs) (int64, error)
}

type LectureService struct {
	store       store.Store
	artifacts   artifacts.Store
	jobs        JobEnqueuer
	eventWriter *events.EventProducer
	logger      *log.StructuredLogger
}

func NewLectureService(s store.Store, artifactStore artifacts.Store, enqueuer JobEnqueuer, ew *events.EventProducer) *LectureService {
	return &LectureService{
		store:       s,
		artifacts:   artifactStore,
		jobs:        enqueuer,
		eventWriter: ew,
		logger:      log.NewDebugLogger("lecture_service"),
	}
}

// LectureFilter narrows the lecture listing. Search matches title, file name
// and subject case-insensitively.
type LectureFilter struct {
	Search  string
	Subject string
	Starred *bool
	Status  string
}

// CreateLecture stores the uploaded artifact, registers the lecture record
// in its initial uploaded state and enqueues the processing job.
func (s *LectureService) CreateLecture(ctx context.Context, form mappers.LectureCreateForm, content io.Reader) (*api.Lecture, error) {
	id := uuid.New()
	tracer := s.logger.WithContext(ctx).
		Operation("create_lecture").
		WithUUID("lecture_id", id).
		WithString("file_name", form.FileName).
		WithParam("file_size", form.FileSize).
		Build()

	filePath := fmt.Sprintf("%s/%s", id, form.FileName)
	if err := s.artifacts.Put(ctx, filePath, content, form.FileSize, form.ContentType); err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to store artifact: %w", err)
	}

	lecture, err := s.store.Lecture().Create(ctx, form.ToModel(id, filePath))
	if err != nil {
		_ = s.artifacts.Delete(ctx, filePath)
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to create lecture: %w", err)
	}

	if _, err := s.jobs.InsertJob(ctx, jobs.LectureArgs{LectureID: id}); err != nil {
		_ = s.store.Lecture().Delete(ctx, id)
		_ = s.artifacts.Delete(ctx, filePath)
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to enqueue processing job: %w", err)
	}

	apiLecture := lecture.ToApiResource()
	s.emitEvent(ctx, events.LectureUploadedKind, &apiLecture)

	tracer.Success().Log()
	return &apiLecture, nil
}

func (s *LectureService) ListLectures(ctx context.Context, filter *LectureFilter) (model.LectureList, error) {
	storeFilter := store.NewLectureQueryFilter()
	if filter != nil {
		if filter.Search != "" {
			storeFilter = storeFilter.BySearch(filter.Search)
		}
		if filter.Subject != "" {
			storeFilter = storeFilter.BySubject(filter.Subject)
		}
		if filter.Starred != nil {
			storeFilter = storeFilter.ByStarred(*filter.Starred)
		}
		if filter.Status != "" {
			storeFilter = storeFilter.ByStatus(filter.Status)
		}
	}

	return s.store.Lecture().List(ctx, storeFilter)
}

func (s *LectureService) GetLecture(ctx context.Context, id uuid.UUID) (*model.Lecture, error) {
	lecture, err := s.store.Lecture().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrLectureNotFound(id)
		}
		return nil, err
	}

	return lecture, nil
}

// UpdateLecture applies the client-writable fields. Only the starred flag is
// writable; status, progress and result belong to the pipeline.
func (s *LectureService) UpdateLecture(ctx context.Context, id uuid.UUID, update api.LectureUpdate) (*api.Lecture, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("update_lecture").
		WithUUID("lecture_id", id).
		Build()

	lecture, err := s.store.Lecture().Update(ctx, id, store.LectureUpdate{Starred: update.Starred})
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrLectureNotFound(id)
		}
		tracer.Error(err).Log()
		return nil, err
	}

	apiLecture := lecture.ToApiResource()
	tracer.Success().Log()
	return &apiLecture, nil
}

func (s *LectureService) DeleteLecture(ctx context.Context, id uuid.UUID) error {
	tracer := s.logger.WithContext(ctx).
		Operation("delete_lecture").
		WithUUID("lecture_id", id).
		Build()

	lecture, err := s.store.Lecture().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrLectureNotFound(id)
		}
		return err
	}

	if err := s.artifacts.Delete(ctx, lecture.FilePath); err != nil && !errors.Is(err, artifacts.ErrArtifactNotFound) {
		tracer.Error(err).Log()
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	if err := s.store.Lecture().Delete(ctx, id); err != nil {
		tracer.Error(err).Log()
		return err
	}

	apiLecture := lecture.ToApiResource()
	s.emitEvent(ctx, events.LectureDeletedKind, &apiLecture)

	tracer.Success().Log()
	return nil
}

// GetLectureStatus returns the lightweight polling view of one lecture.
func (s *LectureService) GetLectureStatus(ctx context.Context, id uuid.UUID) (*api.LectureStatusSummary, error) {
	lecture, err := s.store.Lecture().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrLectureNotFound(id)
		}
		return nil, err
	}

	return &api.LectureStatusSummary{
		Id:        lecture.ID,
		Status:    api.LectureStatus(lecture.Status),
		Progress:  lecture.Progress,
		HasResult: lecture.Result != nil,
	}, nil
}

func (s *LectureService) emitEvent(ctx context.Context, kind string, lecture *api.Lecture) {
	if s.eventWriter == nil {
		return
	}

	data, err := json.Marshal(events.LectureEvent{
		LectureID: lecture.Id,
		Status:    string(lecture.Status),
		Progress:  lecture.Progress,
		FileType:  string(lecture.FileType),
	})
	if err != nil {
		return
	}

	if err := s.eventWriter.Write(ctx, kind, bytes.NewBuffer(data)); err != nil {
		s.logger.WithContext(ctx).Operation("emit_event").Build().Error(err).Log()
	}
}
