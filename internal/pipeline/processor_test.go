package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/artifacts"
	"github.com/unibuddy/lecture-api/internal/config"
	"github.com/unibuddy/lecture-api/internal/pipeline"
	"github.com/unibuddy/lecture-api/internal/store"
	"github.com/unibuddy/lecture-api/internal/store/model"
)

var _ = Describe("lecture processor", Ordered, func() {
	var (
		s         store.Store
		recording *recordingStore
		artStore  artifacts.Store
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		var err error
		artStore, err = artifacts.NewFilesystemStore(GinkgoT().TempDir())
		Expect(err).To(BeNil())
		recording = newRecordingStore(s)
	})

	AfterEach(func() {
		lectures, err := s.Lecture().List(context.TODO(), store.NewLectureQueryFilter())
		Expect(err).To(BeNil())
		for _, l := range lectures {
			Expect(s.Lecture().Delete(context.TODO(), l.ID)).To(BeNil())
		}
	})

	seed := func(fileName, fileType string, status api.LectureStatus) uuid.UUID {
		id := uuid.New()
		_, err := s.Lecture().Create(context.TODO(), model.Lecture{
			ID:       id,
			Title:    "Cell Biology",
			Status:   string(status),
			FileType: fileType,
			FileName: fileName,
			FilePath: "lectures/" + fileName,
			FileSize: 42,
		})
		Expect(err).To(BeNil())
		return id
	}

	newProcessor := func(stages pipeline.StageProcessor) *pipeline.Processor {
		return pipeline.NewProcessor(recording, pipeline.NewArtifactExtractor(artStore), stages, nil)
	}

	Context("success", func() {
		It("completes the lecture with the full payload in one final update", func() {
			id := seed("cells.pdf", "pdf", api.LectureStatusUploaded)
			err := artStore.Put(context.TODO(), "lectures/cells.pdf", strings.NewReader("pdf bytes"), 9, "application/pdf")
			Expect(err).To(BeNil())

			processor := newProcessor(&fakeStageProcessor{})
			Expect(processor.Process(context.TODO(), id)).To(BeNil())

			lecture, err := s.Lecture().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal(string(api.LectureStatusCompleted)))
			Expect(lecture.Progress).To(Equal(100))
			Expect(lecture.Result).ToNot(BeNil())

			result := lecture.Result.Data
			Expect(result.Summary.En).ToNot(BeEmpty())
			Expect(result.KeyTerms).To(HaveLen(1))
			Expect(result.BackgroundKnowledge).To(HaveLen(1))
			Expect(result.Quiz).To(HaveLen(5))
			for _, q := range result.Quiz {
				Expect(q.Correct).To(BeNumerically(">=", 0))
				Expect(q.Correct).To(BeNumerically("<=", 3))
				Expect(q.Options.En).To(HaveLen(4))
			}
			Expect(result.LearningObjectives.Ko).ToNot(BeEmpty())
			Expect(result.Keywords.Zh).ToNot(BeEmpty())
		})

		It("moves progress strictly forward through the checkpoints", func() {
			id := seed("cells.pdf", "pdf", api.LectureStatusUploaded)
			err := artStore.Put(context.TODO(), "lectures/cells.pdf", strings.NewReader("pdf bytes"), 9, "application/pdf")
			Expect(err).To(BeNil())

			processor := newProcessor(&fakeStageProcessor{})
			Expect(processor.Process(context.TODO(), id)).To(BeNil())

			Expect(recording.progressWrites(id)).To(Equal([]int{10, 30, 60, 100}))
		})
	})

	Context("failure", func() {
		It("fails the whole lecture when a single enrichment task fails", func() {
			id := seed("cells.pdf", "pdf", api.LectureStatusUploaded)
			err := artStore.Put(context.TODO(), "lectures/cells.pdf", strings.NewReader("pdf bytes"), 9, "application/pdf")
			Expect(err).To(BeNil())

			processor := newProcessor(&fakeStageProcessor{failTask: pipeline.TaskQuiz, failErr: errors.New("model returned garbage")})
			err = processor.Process(context.TODO(), id)
			var enrichmentErr *pipeline.ErrEnrichmentFailed
			Expect(errors.As(err, &enrichmentErr)).To(BeTrue())

			lecture, err := s.Lecture().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal(string(api.LectureStatusFailed)))
			Expect(lecture.Progress).To(Equal(0))
			Expect(lecture.Result).To(BeNil())
		})

		It("fails fast on unsupported file types", func() {
			id := seed("malware.exe", "other", api.LectureStatusUploaded)

			processor := newProcessor(&fakeStageProcessor{})
			err := processor.Process(context.TODO(), id)
			Expect(err).To(BeAssignableToTypeOf(&pipeline.ErrUnsupportedFileType{}))

			lecture, err := s.Lecture().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal(string(api.LectureStatusFailed)))
			Expect(lecture.Progress).To(Equal(0))
			Expect(lecture.Result).To(BeNil())
		})

		It("fails the lecture when the artifact is gone", func() {
			id := seed("ghost.pdf", "pdf", api.LectureStatusUploaded)

			processor := newProcessor(&fakeStageProcessor{})
			err := processor.Process(context.TODO(), id)
			Expect(err).To(BeAssignableToTypeOf(&pipeline.ErrExtractionFailed{}))

			lecture, err := s.Lecture().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal(string(api.LectureStatusFailed)))
		})

		It("keeps failures isolated between lectures", func() {
			failing := seed("bad.pdf", "pdf", api.LectureStatusUploaded)
			healthy := seed("good.pdf", "pdf", api.LectureStatusUploaded)
			err := artStore.Put(context.TODO(), "lectures/good.pdf", strings.NewReader("pdf bytes"), 9, "application/pdf")
			Expect(err).To(BeNil())

			Expect(newProcessor(&fakeStageProcessor{}).Process(context.TODO(), failing)).ToNot(BeNil())
			Expect(newProcessor(&fakeStageProcessor{}).Process(context.TODO(), healthy)).To(BeNil())

			failedLecture, err := s.Lecture().Get(context.TODO(), failing)
			Expect(err).To(BeNil())
			Expect(failedLecture.Status).To(Equal(string(api.LectureStatusFailed)))

			completedLecture, err := s.Lecture().Get(context.TODO(), healthy)
			Expect(err).To(BeNil())
			Expect(completedLecture.Status).To(Equal(string(api.LectureStatusCompleted)))
		})
	})

	Context("delivery", func() {
		It("ignores lectures already past the uploaded state", func() {
			id := seed("cells.pdf", "pdf", api.LectureStatusCompleted)

			processor := newProcessor(&fakeStageProcessor{failTask: pipeline.TaskSummary, failErr: errors.New("should never run")})
			Expect(processor.Process(context.TODO(), id)).To(BeNil())

			lecture, err := s.Lecture().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal(string(api.LectureStatusCompleted)))
		})

		It("errors for a missing lecture", func() {
			processor := newProcessor(&fakeStageProcessor{})
			err := processor.Process(context.TODO(), uuid.New())
			Expect(err).ToNot(BeNil())
			Expect(errors.Is(err, store.ErrRecordNotFound)).To(BeTrue())
		})
	})
})

// recordingStore wraps the real store and records every progress write per
// lecture so tests can assert checkpoint ordering.
type recordingStore struct {
	store.Store
	lectures *recordingLectureStore
}

func newRecordingStore(s store.Store) *recordingStore {
	return &recordingStore{
		Store:    s,
		lectures: &recordingLectureStore{Lecture: s.Lecture(), writes: map[uuid.UUID][]int{}},
	}
}

func (r *recordingStore) Lecture() store.Lecture {
	return r.lectures
}

func (r *recordingStore) progressWrites(id uuid.UUID) []int {
	r.lectures.mu.Lock()
	defer r.lectures.mu.Unlock()
	return r.lectures.writes[id]
}

type recordingLectureStore struct {
	store.Lecture
	mu     sync.Mutex
	writes map[uuid.UUID][]int
}

func (r *recordingLectureStore) Update(ctx context.Context, id uuid.UUID, update store.LectureUpdate) (*model.Lecture, error) {
	if update.Progress != nil {
		r.mu.Lock()
		r.writes[id] = append(r.writes[id], *update.Progress)
		r.mu.Unlock()
	}
	return r.Lecture.Update(ctx, id, update)
}

