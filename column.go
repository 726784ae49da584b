package gogrid

import (
	"github.com/samber/lo"
)

// Column describes a grid column.
type Column[T any] struct {
	// Name is the external alias of the column: the key in ToArray rows and
	// in the sort request parameter.
	Name string
	// Field is the database column. Defaults to Name.
	Field string
	// Label is the header text. Defaults to Name.
	Label string
	// Value returns the cell value of a record.
	Value func(T) any
	// Sortable allows sorting the grid by the column.
	Sortable bool
	// Virtual columns are computed from other fields: they are not selected
	// from the dataset and cannot be sorted.
	Virtual bool
}

// FieldName returns the database column.
func (c Column[T]) FieldName() string {
	return lo.CoalesceOrEmpty(c.Field, c.Name)
}

// Header returns the header text.
func (c Column[T]) Header() string {
	return lo.CoalesceOrEmpty(c.Label, c.Name)
}

// CellValue returns the value of the column for item, nil without a getter.
func (c Column[T]) CellValue(item T) any {
	if c.Value == nil {
		return nil
	}

	return c.Value(item)
}

func (c Column[T]) IsSortable() bool {
	return c.Sortable && !c.Virtual
}

type Columns[T any] []Column[T]

// Fields returns database columns to select. Virtual columns are skipped.
func (c Columns[T]) Fields() []string {
	return lo.FilterMap(c, func(col Column[T], _ int) (string, bool) {
		return col.FieldName(), !col.Virtual
	})
}

// SortMapping returns the alias to database column mapping of the sortable
// columns, see ParseSort.
func (c Columns[T]) SortMapping() ColumnMapping {
	return lo.SliceToMap(lo.Filter(c, func(col Column[T], _ int) bool {
		return col.IsSortable()
	}), func(col Column[T]) (ColumnAlias, string) {
		return col.Name, col.FieldName()
	})
}

// Getters returns value getters keyed by database column, suitable for
// SliceQuery sorting.
func (c Columns[T]) Getters() Getters[T] {
	return lo.SliceToMap(lo.Filter(c, func(col Column[T], _ int) bool {
		return col.Value != nil
	}), func(col Column[T]) (string, func(T) any) {
		return col.FieldName(), col.Value
	})
}

// Row returns the cell values of item keyed by column name.
func (c Columns[T]) Row(item T) map[string]any {
	return lo.SliceToMap(c, func(col Column[T]) (string, any) {
		return col.Name, col.CellValue(item)
	})
}

// Rows maps Row over items. It is a ready-made ToArray for variants
// exposing their columns as is.
func (c Columns[T]) Rows(items []T) []map[string]any {
	return lo.Map(items, func(item T, _ int) map[string]any {
		return c.Row(item)
	})
}
