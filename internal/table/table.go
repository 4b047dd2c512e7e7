package table

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/kode4food/frame/format/text"
	"github.com/kode4food/frame/internal/sync/latch"
	"github.com/kode4food/frame/table"
)

type (
	// Table is the internal implementation of a table.Table
	Table struct {
		layout   table.Layout
		names    []table.ColumnName
		indexes  map[table.ColumnName]int
		columns  []*column
		keys     map[string]int
		rowCount int
		sealed   latch.Latch
	}

	column struct {
		values []table.Value
		kind   table.Kind
	}
)

// Make instantiates a new internal Table with the provided Layout
func Make(l table.Layout) (*Table, error) {
	if err := l.Check(); err != nil {
		return nil, err
	}
	l = l.Clone()
	names := l.Columns()
	indexes := make(map[table.ColumnName]int, len(names))
	for i, n := range names {
		indexes[n] = i
	}
	return &Table{
		layout:  l,
		names:   names,
		indexes: indexes,
		columns: make([]*column, len(names)),
	}, nil
}

func (t *Table) Layout() table.Layout {
	return t.layout.Clone()
}

func (t *Table) Columns() []table.ColumnName {
	return slices.Clone(t.names)
}

func (t *Table) KeyColumns() []table.ColumnName {
	return slices.Clone(t.layout.Keys)
}

func (t *Table) ValueColumns() []table.ColumnName {
	return slices.Clone(t.layout.Values)
}

func (t *Table) SetColumn(n table.ColumnName, v ...table.Value) error {
	if t.sealed.IsSealed() {
		return fmt.Errorf("%w: %s", table.ErrSealedTable, n)
	}
	idx, err := t.columnIndex(n)
	if err != nil {
		return err
	}
	if t.othersLoaded(idx) && len(v) != t.rowCount {
		return fmt.Errorf("%w: %s has %d values, table has %d rows",
			table.ErrColumnLengthMismatch, n, len(v), t.rowCount,
		)
	}
	kind, err := columnKind(n, v)
	if err != nil {
		return err
	}
	t.columns[idx] = &column{
		values: slices.Clone(v),
		kind:   kind,
	}
	t.rowCount = len(v)
	return nil
}

func (t *Table) Column(n table.ColumnName) ([]table.Value, error) {
	c, err := t.loadedColumn(n)
	if err != nil {
		return nil, err
	}
	return slices.Clone(c.values), nil
}

func (t *Table) Kind(n table.ColumnName) (table.Kind, error) {
	c, err := t.loadedColumn(n)
	if err != nil {
		return table.KindUnknown, err
	}
	return c.kind, nil
}

func (t *Table) RowCount() int {
	return t.rowCount
}

func (t *Table) Row(i int) (table.Row, error) {
	if err := t.checkComplete(); err != nil {
		return table.Row{}, err
	}
	if i < 0 || i >= t.rowCount {
		return table.Row{}, fmt.Errorf("%w: %d not in [0, %d)",
			table.ErrRowOutOfRange, i, t.rowCount,
		)
	}
	return t.row(i), nil
}

func (t *Table) Rows() (iter.Seq[table.Row], error) {
	if err := t.checkComplete(); err != nil {
		return nil, err
	}
	return func(yield func(table.Row) bool) {
		for i := range t.rowCount {
			if !yield(t.row(i)) {
				return
			}
		}
	}, nil
}

func (t *Table) Lookup(k ...table.Value) (table.Row, error) {
	if !t.sealed.IsSealed() {
		return table.Row{}, table.ErrNotValidated
	}
	if len(k) != len(t.layout.Keys) {
		return table.Row{}, fmt.Errorf("%w: need %d, got %d",
			table.ErrKeyArity, len(t.layout.Keys), len(k),
		)
	}
	if enc, ok := encodeKey(k); ok {
		if i, ok := t.keys[enc]; ok {
			return t.row(i), nil
		}
	}
	return table.Row{}, fmt.Errorf("%w: %v", table.ErrKeyNotFound, k)
}

func (t *Table) Validate() error {
	if t.sealed.IsSealed() {
		return nil
	}
	for i, c := range t.columns {
		if c == nil {
			return fmt.Errorf("%w: %s", table.ErrMissingColumn, t.names[i])
		}
		if _, err := columnKind(t.names[i], c.values); err != nil {
			return err
		}
	}
	keys, err := t.indexKeys()
	if err != nil {
		return err
	}
	t.keys = keys
	t.sealed.Seal()
	return nil
}

func (t *Table) Sealed() bool {
	return t.sealed.IsSealed()
}

func (t *Table) String() string {
	return text.Format(t)
}

func (t *Table) indexKeys() (map[string]int, error) {
	keys := make(map[string]int, t.rowCount)
	groups := map[string][]int{}
	var order []string
	for i := range t.rowCount {
		enc, _ := encodeKey(t.keyAt(i))
		if first, ok := keys[enc]; ok {
			if _, ok := groups[enc]; !ok {
				groups[enc] = []int{first}
				order = append(order, enc)
			}
			groups[enc] = append(groups[enc], i)
			continue
		}
		keys[enc] = i
	}
	if len(order) == 0 {
		return keys, nil
	}
	errs := make([]error, len(order))
	for i, enc := range order {
		rows := groups[enc]
		errs[i] = &table.DuplicateKeyError{
			Key:  t.keyAt(rows[0]),
			Rows: rows,
		}
	}
	if len(errs) == 1 {
		return nil, errs[0]
	}
	return nil, errors.Join(errs...)
}

func (t *Table) row(i int) table.Row {
	return table.Row{
		Index:  i,
		Key:    t.keyAt(i),
		Values: t.valuesAt(i),
	}
}

func (t *Table) keyAt(i int) table.Tuple {
	return t.tupleAt(i, 0, len(t.layout.Keys))
}

func (t *Table) valuesAt(i int) table.Tuple {
	return t.tupleAt(i, len(t.layout.Keys), len(t.names))
}

func (t *Table) tupleAt(i, from, to int) table.Tuple {
	res := make(table.Tuple, 0, to-from)
	for _, c := range t.columns[from:to] {
		res = append(res, c.values[i])
	}
	return res
}

func (t *Table) columnIndex(n table.ColumnName) (int, error) {
	if idx, ok := t.indexes[n]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("%w: %s", table.ErrUnknownColumn, n)
}

func (t *Table) loadedColumn(n table.ColumnName) (*column, error) {
	idx, err := t.columnIndex(n)
	if err != nil {
		return nil, err
	}
	if c := t.columns[idx]; c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", table.ErrMissingColumn, n)
}

func (t *Table) othersLoaded(idx int) bool {
	for i, c := range t.columns {
		if i != idx && c != nil {
			return true
		}
	}
	return false
}

func (t *Table) checkComplete() error {
	var missing []table.ColumnName
	for i, c := range t.columns {
		if c == nil {
			missing = append(missing, t.names[i])
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf("%w: %v", table.ErrIncompleteTable, missing)
	}
	return nil
}

func columnKind(n table.ColumnName, v []table.Value) (table.Kind, error) {
	res := table.KindUnknown
	for i, e := range v {
		k, ok := table.KindOf(e)
		if !ok {
			return table.KindUnknown, fmt.Errorf("%w: %s has %T at row %d",
				table.ErrUnsupportedValue, n, e, i,
			)
		}
		if res == table.KindUnknown {
			res = k
			continue
		}
		if k != res {
			return table.KindUnknown, fmt.Errorf(
				"%w: %s has %s values, found %s at row %d",
				table.ErrHeterogeneousColumnType, n, res, k, i,
			)
		}
	}
	return res, nil
}
