package gogrid

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
)

// Query is the dataset a grid paginates. Implementations are immutable:
// Select, Order and Window return a new Query and never modify the receiver.
//
// A grid calls Count first, then Select, Order and Window, then Get, exactly
// once per preparation pass. Count must ignore Select, Order and Window.
type Query[T any] interface {
	// Count returns the number of records matching the query before slicing.
	Count(ctx context.Context) (int64, error)
	// Select restricts the fetched columns. No columns means all columns.
	Select(columns ...string) Query[T]
	// Order sorts the fetched records. Empty orderings keep the natural order.
	Order(orderings Orderings) Query[T]
	// Window restricts the fetched records to [offset, offset+limit).
	Window(offset, limit int) Query[T]
	// Get fetches the records.
	Get(ctx context.Context) ([]T, error)
}

// Getters maps columns to value getters of T. Specify the columns the
// records can be sorted by.
// Example:
//
//	gogrid.Getters[models.User]{
//		"id":   func(u models.User) any { return u.ID },
//		"name": func(u models.User) any { return u.Name },
//	}
type Getters[T any] map[string]func(T) any

// SliceQuery is a Query over an in-memory slice. Sorting requires a getter
// for every ordered column.
type SliceQuery[T any] struct {
	items   []T
	getters Getters[T]
	filters []func(T) bool
	sort    Orderings
	offset  int
	limit   int
}

func NewSliceQuery[T any](items []T, getters Getters[T]) *SliceQuery[T] {
	return &SliceQuery[T]{
		items:   items,
		getters: getters,
		limit:   NoLimit,
	}
}

// NoLimit is the Window limit meaning "up to the end of the dataset".
const NoLimit = -1

// Where returns a query keeping only the records matching predicate. Unlike
// Window it affects Count.
func (q *SliceQuery[T]) Where(predicate func(T) bool) *SliceQuery[T] {
	ret := q.clone()
	ret.filters = append(ret.filters, predicate)

	return ret
}

// Count - implements Query.
func (q *SliceQuery[T]) Count(_ context.Context) (int64, error) {
	return int64(len(q.filtered())), nil
}

// Select - implements Query. In-memory records are always complete, the
// column list is ignored.
func (q *SliceQuery[T]) Select(_ ...string) Query[T] {
	return q.clone()
}

// Order - implements Query.
func (q *SliceQuery[T]) Order(orderings Orderings) Query[T] {
	ret := q.clone()
	ret.sort = slices.Clone(orderings)

	return ret
}

// Window - implements Query.
func (q *SliceQuery[T]) Window(offset, limit int) Query[T] {
	ret := q.clone()
	ret.offset = max(offset, 0)
	ret.limit = limit

	return ret
}

// Get - implements Query.
func (q *SliceQuery[T]) Get(_ context.Context) ([]T, error) {
	items := q.filtered()

	if len(q.sort) > 0 {
		for _, orderBy := range q.sort {
			if _, ok := q.getters[orderBy.Column]; !ok {
				return nil, fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
			}
		}

		slices.SortStableFunc(items, func(a, b T) int {
			for _, orderBy := range q.sort {
				getter := q.getters[orderBy.Column]
				c := compareValues(getter(a), getter(b))
				if c != 0 {
					return lo.Ternary(orderBy.Direction == DirectionDESC, -c, c)
				}
			}
			return 0
		})
	}

	if q.offset >= len(items) {
		return []T{}, nil
	}
	end := len(items)
	if q.limit != NoLimit {
		end = q.offset + min(q.limit, end-q.offset)
	}

	return items[q.offset:end], nil
}

func (q *SliceQuery[T]) filtered() []T {
	return lo.Filter(q.items, func(item T, _ int) bool {
		return lo.EveryBy(q.filters, func(predicate func(T) bool) bool {
			return predicate(item)
		})
	})
}

func (q *SliceQuery[T]) clone() *SliceQuery[T] {
	ret := *q
	ret.filters = slices.Clone(q.filters)

	return &ret
}

var _ Query[struct{}] = (*SliceQuery[struct{}])(nil)

// compareValues orders values of the same basic kind. Values of different or
// unsupported kinds are compared by their string form; nil sorts first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		return cmp.Compare(lo.Ternary(a == nil, 0, 1), lo.Ternary(b == nil, 0, 1))
	}

	switch av := a.(type) {
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case uint:
		if bv, ok := b.(uint); ok {
			return cmp.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp.Compare(lo.Ternary(av, 1, 0), lo.Ternary(bv, 1, 0))
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
