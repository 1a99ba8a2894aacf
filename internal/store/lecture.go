package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/store/model"
)

// LectureUpdate carries the fields to merge into an existing record. Nil
// fields are left untouched.
type LectureUpdate struct {
	Status   *string
	Progress *int
	Result   *api.ProcessedContent
	Starred  *bool
}

type Lecture interface {
	List(ctx context.Context, filter *LectureQueryFilter) (model.LectureList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Lecture, error)
	Create(ctx context.Context, lecture model.Lecture) (*model.Lecture, error)
	Update(ctx context.Context, id uuid.UUID, update LectureUpdate) (*model.Lecture, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	InitialMigration() error
}

type LectureStore struct {
	db *gorm.DB
}

// Make sure we conform to Lecture interface
var _ Lecture = (*LectureStore)(nil)

func NewLectureStore(db *gorm.DB) Lecture {
	return &LectureStore{db: db}
}

func (s *LectureStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Lecture{})
}

func (s *LectureStore) List(ctx context.Context, filter *LectureQueryFilter) (model.LectureList, error) {
	var lectures model.LectureList
	tx := s.getDB(ctx).Model(&lectures).Order("created_at DESC")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&lectures)
	if result.Error != nil {
		return nil, result.Error
	}
	return lectures, nil
}

func (s *LectureStore) Get(ctx context.Context, id uuid.UUID) (*model.Lecture, error) {
	var lecture model.Lecture
	result := s.getDB(ctx).First(&lecture, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &lecture, nil
}

func (s *LectureStore) Create(ctx context.Context, lecture model.Lecture) (*model.Lecture, error) {
	result := s.getDB(ctx).Create(&lecture)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &lecture, nil
}

// Update merges the non-nil fields into the record. The write is a single
// UPDATE statement per call so overlapping progress writes cannot interleave
// half-applied field sets.
func (s *LectureStore) Update(ctx context.Context, id uuid.UUID, update LectureUpdate) (*model.Lecture, error) {
	lecture := model.Lecture{ID: id}
	selectFields := []string{"updated_at"}
	if update.Status != nil {
		lecture.Status = *update.Status
		selectFields = append(selectFields, "status")
	}
	if update.Progress != nil {
		lecture.Progress = *update.Progress
		selectFields = append(selectFields, "progress")
	}
	if update.Result != nil {
		lecture.Result = model.MakeJSONField(*update.Result)
		selectFields = append(selectFields, "result")
	}
	if update.Starred != nil {
		lecture.Starred = *update.Starred
		selectFields = append(selectFields, "starred")
	}

	result := s.getDB(ctx).Model(&lecture).Select(selectFields).Updates(&lecture)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	return s.Get(ctx, id)
}

func (s *LectureStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Unscoped().Delete(&model.Lecture{}, "id = ?", id.String())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (s *LectureStore) Count(ctx context.Context) (int64, error) {
	var count int64
	result := s.getDB(ctx).Model(&model.Lecture{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (s *LectureStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
