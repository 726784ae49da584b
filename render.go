package gogrid

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Renderer turns a prepared grid into a display model consumed by views.
type Renderer[T any] interface {
	Render(ctx context.Context, g *Grid[T]) (any, error)
}

// RendererFunc is an adapter to use ordinary functions as Renderer.
type RendererFunc[T any] func(ctx context.Context, g *Grid[T]) (any, error)

// Render - implements Renderer.
func (f RendererFunc[T]) Render(ctx context.Context, g *Grid[T]) (any, error) {
	return f(ctx, g)
}

// Header is a table header cell.
type Header struct {
	Name     string
	Label    string
	Sortable bool
	// Direction is the current sort direction, empty if the grid is not
	// sorted by the column.
	Direction Direction
	// SortURL toggles sorting by the column. Empty for unsortable columns.
	SortURL string
}

// Table is the display model produced by TableRenderer.
type Table struct {
	Headers []Header
	Rows    [][]string
}

// TableRenderer renders grid items as a table of formatted cells, one column
// per grid column.
type TableRenderer[T any] struct {
	// TimeLayout formats time.Time cells. Defaults to time.DateTime.
	TimeLayout string
}

// Render - implements Renderer.
func (r TableRenderer[T]) Render(_ context.Context, g *Grid[T]) (any, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot render table: grid is nil")
	}

	columns := g.Columns()
	headers := lo.Map(columns, func(col Column[T], _ int) Header {
		header := Header{
			Name:     col.Name,
			Label:    col.Header(),
			Sortable: col.IsSortable(),
		}
		if header.Sortable {
			if orderBy, ok := g.Sort().Find(col.FieldName()); ok {
				header.Direction = orderBy.Direction
			}
			header.SortURL = g.SortURL(col)
		}

		return header
	})

	rows := lo.Map(g.Items(), func(item T, _ int) []string {
		return lo.Map(columns, func(col Column[T], _ int) string {
			return r.format(col.CellValue(item))
		})
	})

	return Table{Headers: headers, Rows: rows}, nil
}

func (r TableRenderer[T]) format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(lo.CoalesceOrEmpty(r.TimeLayout, time.DateTime))
	case *time.Time:
		if v == nil {
			return ""
		}
		return r.format(*v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

var _ Renderer[struct{}] = TableRenderer[struct{}]{}
