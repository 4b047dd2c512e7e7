package table

import "iter"

type (
	// Table holds rows keyed by one or more key columns, plus associated
	// value columns. Its Layout is fixed at construction. Columns are loaded
	// in bulk, one at a time, until every declared column is present. Once
	// validated, a Table is sealed and becomes read-only
	Table interface {
		// Layout returns the key and value column names declared for this
		// Table
		Layout() Layout

		// Columns returns every declared column name, key columns first
		Columns() []ColumnName

		// KeyColumns returns the declared key column names, in order
		KeyColumns() []ColumnName

		// ValueColumns returns the declared value column names, in order
		ValueColumns() []ColumnName

		// SetColumn loads the full value sequence of one column, replacing
		// anything previously loaded for it. On error the Table is unchanged
		SetColumn(ColumnName, ...Value) error

		// Column returns a copy of the values loaded for a column
		Column(ColumnName) ([]Value, error)

		// Kind returns the value kind of a loaded column
		Kind(ColumnName) (Kind, error)

		// RowCount returns the common length of the loaded columns, or zero
		// if no column has been loaded yet
		RowCount() int

		// Row returns the row view found at the provided position
		Row(int) (Row, error)

		// Rows returns a restartable sequence of row views in positional
		// order. Fails if any declared column is still missing
		Rows() (iter.Seq[Row], error)

		// Lookup returns the row view whose composite key matches the
		// provided key parts. Only available once the Table is validated
		Lookup(...Value) (Row, error)

		// Validate confirms that every declared column is loaded and that
		// composite keys are unique. A successful call seals the Table
		Validate() error

		// Sealed reports whether the Table has become read-only
		Sealed() bool
	}

	// Value is a single scalar cell: a string or any Go numeric type
	Value = any

	// Tuple is an ordered set of Values, such as a composite key
	Tuple []Value

	// Row is a read-only view of one position in a Table
	Row struct {
		Key    Tuple
		Values Tuple
		Index  int
	}
)
