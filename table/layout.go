package table

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Layout declares the columns of a Table. Key columns come first and, taken
// together, form each row's composite key. The Layout of a Table can't be
// changed once the Table is constructed
type Layout struct {
	Keys   []ColumnName `validate:"min=1,dive,required"`
	Values []ColumnName `validate:"dive,required"`
}

var validate = validator.New()

// MakeLayout is a convenience for declaring a Layout from plain strings
func MakeLayout(keys []string, values []string) Layout {
	return Layout{
		Keys:   toColumnNames(keys),
		Values: toColumnNames(values),
	}
}

// Check verifies that the Layout declares at least one key column, that no
// column name is empty, and that no column name is repeated
func (l Layout) Check() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLayout, err)
	}
	seen := map[ColumnName]bool{}
	for _, n := range l.Columns() {
		if seen[n] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, n)
		}
		seen[n] = true
	}
	return nil
}

// Columns returns every declared column name, key columns first
func (l Layout) Columns() []ColumnName {
	res := make([]ColumnName, 0, len(l.Keys)+len(l.Values))
	res = append(res, l.Keys...)
	return append(res, l.Values...)
}

// Clone returns a Layout that shares no storage with this one
func (l Layout) Clone() Layout {
	return Layout{
		Keys:   append([]ColumnName{}, l.Keys...),
		Values: append([]ColumnName{}, l.Values...),
	}
}

func toColumnNames(names []string) []ColumnName {
	res := make([]ColumnName, len(names))
	for i, n := range names {
		res[i] = ColumnName(n)
	}
	return res
}
