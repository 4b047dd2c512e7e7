package table

//go:generate go tool stringer -type=Kind -trimprefix=Kind

type (
	// ColumnName is exactly what you think it is
	ColumnName string

	// Kind identifies the scalar type held by a column. A column's Kind is
	// established by its values and must be the same for all of them
	Kind uint8
)

// Column kinds
const (
	KindUnknown Kind = iota
	KindString
	KindNumber
)

// KindOf classifies a single Value. Values that are neither strings nor Go
// numeric types return KindUnknown and false
func KindOf(v Value) (Kind, bool) {
	switch v.(type) {
	case string:
		return KindString, true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindNumber, true
	default:
		return KindUnknown, false
	}
}

// ToFloat converts a numeric Value to a float64. The second result is false
// if the Value is not numeric
func ToFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
