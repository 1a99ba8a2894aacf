package store

import (
	"context"

	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Lecture() Lecture
	InitialMigration() error
	Close() error
}

type DataStore struct {
	lecture Lecture
	db      *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		lecture: NewLectureStore(db),
		db:      db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Lecture() Lecture {
	return s.lecture
}

func (s *DataStore) InitialMigration() error {
	return s.lecture.InitialMigration()
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
