package store

import (
	"strings"

	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type LectureQueryFilter BaseQuerier

func NewLectureQueryFilter() *LectureQueryFilter {
	return &LectureQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

// BySearch matches the query as a case-insensitive substring of the title,
// file name or subject.
func (qf *LectureQueryFilter) BySearch(query string) *LectureQueryFilter {
	pattern := "%" + strings.ToLower(query) + "%"
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"LOWER(title) LIKE ? OR LOWER(file_name) LIKE ? OR LOWER(subject) LIKE ?",
			pattern, pattern, pattern,
		)
	})
	return qf
}

func (qf *LectureQueryFilter) BySubject(subject string) *LectureQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(subject) = ?", strings.ToLower(subject))
	})
	return qf
}

func (qf *LectureQueryFilter) ByStatus(status string) *LectureQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *LectureQueryFilter) ByStarred(starred bool) *LectureQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("starred = ?", starred)
	})
	return qf
}
