package table

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/kode4food/frame/table"
)

const keySeparator = '\x1f'

// encodeKey turns a composite key into a comparable string. Numbers are
// compared by value, so 1 and 1.0 encode identically, while integers are
// encoded exactly regardless of their magnitude
func encodeKey(k []table.Value) (string, bool) {
	var buf strings.Builder
	for i, v := range k {
		if i > 0 {
			buf.WriteByte(keySeparator)
		}
		if s, ok := v.(string); ok {
			buf.WriteByte('s')
			buf.WriteString(strconv.Quote(s))
			continue
		}
		n, ok := encodeNumber(v)
		if !ok {
			return "", false
		}
		buf.WriteByte('n')
		buf.WriteString(n)
	}
	return buf.String(), true
}

func encodeNumber(v table.Value) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	default:
		if f, ok := table.ToFloat(v); ok {
			return encodeFloat(f), true
		}
		return "", false
	}
}

// encodeFloat writes integral floats as exact integers, so that they match
// the encoding of the integer types
func encodeFloat(f float64) string {
	if f == 0 {
		return "0" // folds -0
	}
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		return new(big.Float).SetFloat64(f).Text('f', 0)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
