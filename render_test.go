package gogrid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_TableRenderer_Render(t *testing.T) {
	items := []tItem{{1, "b"}, {2, "c"}, {3, "a"}}
	g := newItemGrid(t, tItemGrid{items: items}, "sort=name+desc")
	require.NoError(t, g.Prepare(context.Background()))

	display, err := TableRenderer[tItem]{}.Render(context.Background(), g)
	require.NoError(t, err)

	table, ok := display.(Table)
	require.True(t, ok)
	require.Equal(t, []Header{
		{Name: "id", Label: "ID", Sortable: true, SortURL: "/items?page=1&sort=id+asc"},
		{Name: "name", Label: "Name", Sortable: true, Direction: DirectionDESC, SortURL: "/items?page=1&sort=name+asc"},
	}, table.Headers)
	require.Equal(t, [][]string{{"2", "c"}, {"1", "b"}, {"3", "a"}}, table.Rows)
}

func Test_TableRenderer_Render_NilGrid(t *testing.T) {
	_, err := TableRenderer[tItem]{}.Render(context.Background(), nil)
	require.Error(t, err)
}

func Test_TableRenderer_format(t *testing.T) {
	moment := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	var nilMoment *time.Time

	tests := []struct {
		name     string
		renderer TableRenderer[tItem]
		value    any
		want     string
	}{
		{"nil", TableRenderer[tItem]{}, nil, ""},
		{"int", TableRenderer[tItem]{}, 42, "42"},
		{"string", TableRenderer[tItem]{}, "lol", "lol"},
		{"time default layout", TableRenderer[tItem]{}, moment, "2024-03-05 14:30:00"},
		{"time custom layout", TableRenderer[tItem]{TimeLayout: time.DateOnly}, moment, "2024-03-05"},
		{"time pointer", TableRenderer[tItem]{}, &moment, "2024-03-05 14:30:00"},
		{"nil time pointer", TableRenderer[tItem]{}, nilMoment, ""},
		{"stringer", TableRenderer[tItem]{}, 1500 * time.Millisecond, "1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.renderer.format(tt.value))
		})
	}
}
