package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/config"
	"github.com/unibuddy/lecture-api/internal/store"
	"github.com/unibuddy/lecture-api/internal/store/model"
)

const (
	insertLectureStm = "INSERT INTO lectures (id, title, status, progress, file_type, file_name, file_path, file_size, starred, created_at, updated_at) " +
		"VALUES ('%s', '%s', '%s', %d, 'pdf', '%s', 'lectures/%s', 1024, FALSE, '%s', '%s');"
	insertLectureWithSubjectStm = "INSERT INTO lectures (id, title, subject, status, progress, file_type, file_name, file_path, file_size, starred, created_at, updated_at) " +
		"VALUES ('%s', '%s', '%s', 'uploaded', 0, 'pdf', '%s', 'lectures/%s', 1024, FALSE, '2026-01-02 10:00:00', '2026-01-02 10:00:00');"
)

var _ = Describe("lecture store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	Context("list", func() {
		It("successfully lists all the lectures", func() {
			seedLecture(gormdb, "Calculus 1", "calc1.pdf", "2026-01-02 10:00:00")
			seedLecture(gormdb, "Calculus 2", "calc2.pdf", "2026-01-02 11:00:00")

			lectures, err := s.Lecture().List(context.TODO(), store.NewLectureQueryFilter())
			Expect(err).To(BeNil())
			Expect(lectures).To(HaveLen(2))
		})

		It("lists the newest lecture first", func() {
			seedLecture(gormdb, "Oldest", "a.pdf", "2026-01-01 08:00:00")
			seedLecture(gormdb, "Middle", "b.pdf", "2026-01-02 08:00:00")
			seedLecture(gormdb, "Newest", "c.pdf", "2026-01-03 08:00:00")

			lectures, err := s.Lecture().List(context.TODO(), store.NewLectureQueryFilter())
			Expect(err).To(BeNil())
			Expect(lectures).To(HaveLen(3))
			Expect(lectures[0].Title).To(Equal("Newest"))
			Expect(lectures[2].Title).To(Equal("Oldest"))
		})

		It("matches the search case-insensitively against title, file name and subject", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertLectureWithSubjectStm, uuid.NewString(), "Introduction to Biology", "science", "intro.pdf", "intro.pdf"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertLectureWithSubjectStm, uuid.NewString(), "Organic Chemistry", "science", "bio-notes.pdf", "bio-notes.pdf"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertLectureWithSubjectStm, uuid.NewString(), "Genetics", "biology", "genetics.pdf", "genetics.pdf"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertLectureWithSubjectStm, uuid.NewString(), "Linear Algebra", "math", "algebra.pdf", "algebra.pdf"))
			Expect(tx.Error).To(BeNil())

			lectures, err := s.Lecture().List(context.TODO(), store.NewLectureQueryFilter().BySearch("BIO"))
			Expect(err).To(BeNil())
			Expect(lectures).To(HaveLen(3))

			lectures, err = s.Lecture().List(context.TODO(), store.NewLectureQueryFilter().BySearch("does-not-exist"))
			Expect(err).To(BeNil())
			Expect(lectures).To(BeEmpty())
		})

		It("filters by subject", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertLectureWithSubjectStm, uuid.NewString(), "Genetics", "Biology", "genetics.pdf", "genetics.pdf"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertLectureWithSubjectStm, uuid.NewString(), "Linear Algebra", "math", "algebra.pdf", "algebra.pdf"))
			Expect(tx.Error).To(BeNil())

			lectures, err := s.Lecture().List(context.TODO(), store.NewLectureQueryFilter().BySubject("biology"))
			Expect(err).To(BeNil())
			Expect(lectures).To(HaveLen(1))
			Expect(lectures[0].Title).To(Equal("Genetics"))
		})

		It("filters by status", func() {
			id := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, id, "Done", "completed", 100, "done.pdf", "done.pdf", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))
			Expect(tx.Error).To(BeNil())
			seedLecture(gormdb, "Fresh", "fresh.pdf", "2026-01-02 11:00:00")

			lectures, err := s.Lecture().List(context.TODO(), store.NewLectureQueryFilter().ByStatus("completed"))
			Expect(err).To(BeNil())
			Expect(lectures).To(HaveLen(1))
			Expect(lectures[0].ID.String()).To(Equal(id))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from lectures;")
		})
	})

	Context("get", func() {
		It("returns the lecture", func() {
			id := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, id, "Calculus", "uploaded", 0, "calc.pdf", "calc.pdf", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))
			Expect(tx.Error).To(BeNil())

			lecture, err := s.Lecture().Get(context.TODO(), uuid.MustParse(id))
			Expect(err).To(BeNil())
			Expect(lecture.Title).To(Equal("Calculus"))
			Expect(lecture.Result).To(BeNil())
		})

		It("returns ErrRecordNotFound for a missing lecture", func() {
			_, err := s.Lecture().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from lectures;")
		})
	})

	Context("update", func() {
		It("updates status and progress only", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, id.String(), "Calculus", "uploaded", 0, "calc.pdf", "calc.pdf", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))
			Expect(tx.Error).To(BeNil())

			status := "processing"
			progress := 10
			lecture, err := s.Lecture().Update(context.TODO(), id, store.LectureUpdate{Status: &status, Progress: &progress})
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal("processing"))
			Expect(lecture.Progress).To(Equal(10))
			Expect(lecture.Title).To(Equal("Calculus"))
			Expect(lecture.Starred).To(BeFalse())
		})

		It("writes the result together with the completed transition", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, id.String(), "Calculus", "processing", 60, "calc.pdf", "calc.pdf", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))
			Expect(tx.Error).To(BeNil())

			status := "completed"
			progress := 100
			result := api.ProcessedContent{
				Summary: api.LocalizedText{Ko: "요약", En: "summary", Zh: "摘要"},
			}
			lecture, err := s.Lecture().Update(context.TODO(), id, store.LectureUpdate{Status: &status, Progress: &progress, Result: &result})
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal("completed"))
			Expect(lecture.Progress).To(Equal(100))
			Expect(lecture.Result).ToNot(BeNil())
			Expect(lecture.Result.Data.Summary.En).To(Equal("summary"))
		})

		It("updates the starred flag without touching the pipeline fields", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, id.String(), "Calculus", "processing", 30, "calc.pdf", "calc.pdf", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))
			Expect(tx.Error).To(BeNil())

			starred := true
			lecture, err := s.Lecture().Update(context.TODO(), id, store.LectureUpdate{Starred: &starred})
			Expect(err).To(BeNil())
			Expect(lecture.Starred).To(BeTrue())
			Expect(lecture.Status).To(Equal("processing"))
			Expect(lecture.Progress).To(Equal(30))
		})

		It("returns ErrRecordNotFound for a missing lecture", func() {
			starred := true
			_, err := s.Lecture().Update(context.TODO(), uuid.New(), store.LectureUpdate{Starred: &starred})
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from lectures;")
		})
	})

	Context("delete", func() {
		It("deletes the lecture", func() {
			id := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, id.String(), "Calculus", "uploaded", 0, "calc.pdf", "calc.pdf", "2026-01-02 10:00:00", "2026-01-02 10:00:00"))
			Expect(tx.Error).To(BeNil())

			err := s.Lecture().Delete(context.TODO(), id)
			Expect(err).To(BeNil())

			count := 1
			err = gormdb.Raw("SELECT COUNT(*) from lectures;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("does not fail when the lecture is missing", func() {
			err := s.Lecture().Delete(context.TODO(), uuid.New())
			Expect(err).To(BeNil())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from lectures;")
		})
	})

	Context("create", func() {
		It("creates a lecture in its initial state", func() {
			lecture, err := s.Lecture().Create(context.TODO(), model.Lecture{
				ID:       uuid.New(),
				Title:    "Calculus",
				Status:   "uploaded",
				FileType: "pdf",
				FileName: "calc.pdf",
				FilePath: "lectures/calc.pdf",
				FileSize: 2048,
			})
			Expect(err).To(BeNil())
			Expect(lecture.Status).To(Equal("uploaded"))
			Expect(lecture.Progress).To(Equal(0))
			Expect(lecture.Result).To(BeNil())

			count, err := s.Lecture().Count(context.TODO())
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE from lectures;")
		})
	})
})

func seedLecture(gormdb *gorm.DB, title, fileName, createdAt string) {
	tx := gormdb.Exec(fmt.Sprintf(insertLectureStm, uuid.NewString(), title, "uploaded", 0, fileName, fileName, createdAt, createdAt))
	Expect(tx.Error).To(BeNil())
}
