package gogrid

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// GormQuery is a Query over a gorm dataset. Conditions, joins and scopes
// set on the wrapped *gorm.DB apply to both Count and Get. Selected columns,
// orderings and the window apply to Get only.
//
// Usage:
//
//	q := gogrid.NewGormQuery[User](db.Where("active = ?", true))
type GormQuery[T any] struct {
	db       *gorm.DB
	columns  []string
	sort     Orderings
	offset   int
	limit    int
	windowed bool
}

// NewGormQuery wraps db into a reusable session, so that counting and
// fetching never leak clauses into each other.
func NewGormQuery[T any](db *gorm.DB) *GormQuery[T] {
	return &GormQuery[T]{
		db: db.Session(&gorm.Session{}),
	}
}

// Count - implements Query.
func (q *GormQuery[T]) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := q.session(ctx).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("cannot count grid records: %w", err)
	}

	return total, nil
}

// Select - implements Query.
func (q *GormQuery[T]) Select(columns ...string) Query[T] {
	ret := q.clone()
	ret.columns = slices.Clone(columns)

	return ret
}

// Order - implements Query. Orderings with forbidden symbols in column names
// are rejected by Get.
func (q *GormQuery[T]) Order(orderings Orderings) Query[T] {
	ret := q.clone()
	ret.sort = slices.Clone(orderings)

	return ret
}

// Window - implements Query. NoLimit fetches up to the end of the dataset.
func (q *GormQuery[T]) Window(offset, limit int) Query[T] {
	ret := q.clone()
	ret.offset = offset
	ret.limit = limit
	ret.windowed = true

	return ret
}

// Get - implements Query.
func (q *GormQuery[T]) Get(ctx context.Context) ([]T, error) {
	if err := q.sort.validate(); err != nil {
		return nil, fmt.Errorf("cannot fetch grid records: %w", err)
	}

	db := q.session(ctx)
	if len(q.columns) > 0 {
		db = db.Select(q.columns)
	}
	db = q.sort.Apply(db)
	if q.windowed {
		db = db.Offset(q.offset)
		if q.limit != NoLimit {
			db = db.Limit(q.limit)
		}
	}

	items := make([]T, 0)
	if err := db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("cannot fetch grid records: %w", err)
	}

	return items, nil
}

// DB returns the wrapped dataset.
func (q *GormQuery[T]) DB() *gorm.DB {
	return q.db
}

func (q *GormQuery[T]) session(ctx context.Context) *gorm.DB {
	db := q.db.WithContext(ctx)
	if db.Statement.Model == nil && db.Statement.Table == "" {
		db = db.Model(new(T))
	}

	return db
}

func (q *GormQuery[T]) clone() *GormQuery[T] {
	ret := *q

	return &ret
}

var _ Query[struct{}] = (*GormQuery[struct{}])(nil)
