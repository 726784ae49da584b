package gogrid

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tItem struct {
	ID   int
	Name string
}

func newItems(n int) []tItem {
	items := make([]tItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, tItem{ID: i, Name: string(rune('a' + (n-i)%26))})
	}

	return items
}

var _itemGetters = Getters[tItem]{
	"id":   func(i tItem) any { return i.ID },
	"name": func(i tItem) any { return i.Name },
}

func Test_SliceQuery_CountIgnoresWindow(t *testing.T) {
	ctx := context.Background()
	q := NewSliceQuery(newItems(97), _itemGetters)

	total, err := q.Window(75, 25).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(97), total)
}

func Test_SliceQuery_Window(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantLen int
		wantIDs []int
	}{
		{"first page", 0, 3, 3, []int{1, 2, 3}},
		{"partial last page", 8, 5, 2, []int{9, 10}},
		{"past the end", 20, 5, 0, []int{}},
		{"no limit", 7, NoLimit, 3, []int{8, 9, 10}},
		{"max limit", 5, math.MaxInt, 5, []int{6, 7, 8, 9, 10}},
		{"max offset", math.MaxInt, 5, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSliceQuery(newItems(10), nil).Window(tt.offset, tt.limit).Get(ctx)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)

			ids := make([]int, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			require.Equal(t, tt.wantIDs, ids)
		})
	}
}

func Test_SliceQuery_Order(t *testing.T) {
	ctx := context.Background()
	items := []tItem{{1, "b"}, {2, "a"}, {3, "b"}, {4, "c"}}

	got, err := NewSliceQuery(items, _itemGetters).
		Order(Orderings{{Column: "name", Direction: DirectionDESC}, {Column: "id", Direction: DirectionASC}}).
		Get(ctx)
	require.NoError(t, err)
	require.Equal(t, []tItem{{4, "c"}, {1, "b"}, {3, "b"}, {2, "a"}}, got)

	// The source slice is not reordered.
	require.Equal(t, []tItem{{1, "b"}, {2, "a"}, {3, "b"}, {4, "c"}}, items)
}

func Test_SliceQuery_Order_MissingGetter(t *testing.T) {
	_, err := NewSliceQuery(newItems(3), _itemGetters).
		Order(Orderings{{Column: "created_at", Direction: DirectionASC}}).
		Get(context.Background())

	require.ErrorContains(t, err, "created_at")
}

func Test_SliceQuery_Where(t *testing.T) {
	ctx := context.Background()
	base := NewSliceQuery(newItems(10), _itemGetters)
	even := base.Where(func(i tItem) bool { return i.ID%2 == 0 })

	total, err := even.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)

	got, err := even.Window(0, 2).Get(ctx)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, []int{got[0].ID, got[1].ID})

	// Filters do not leak into the source query.
	total, err = base.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(10), total)
}

func Test_compareValues(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"int64", int64(5), int64(5), 0},
		{"floats", 2.5, 1.5, 1},
		{"strings", "a", "b", -1},
		{"bools", true, false, 1},
		{"times", now, now.Add(time.Second), -1},
		{"nil first", nil, 1, -1},
		{"both nil", nil, nil, 0},
		{"mixed kinds by string", 10, "9", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, compareValues(tt.a, tt.b))
		})
	}
}
