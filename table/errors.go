package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DuplicateKeyError names every row sharing the same composite Key
type DuplicateKeyError struct {
	Key  Tuple
	Rows []int
}

// Error messages
var (
	ErrDuplicateColumnName     = errors.New("column name duplicated in table")
	ErrInvalidLayout           = errors.New("invalid table layout")
	ErrUnknownColumn           = errors.New("column not declared in table")
	ErrColumnLengthMismatch    = errors.New("column length does not match row count")
	ErrHeterogeneousColumnType = errors.New("column mixes value kinds")
	ErrUnsupportedValue        = errors.New("value is neither a string nor a number")
	ErrIncompleteTable         = errors.New("table has columns that are not loaded")
	ErrMissingColumn           = errors.New("column not loaded")
	ErrDuplicateKey            = errors.New("duplicate key in table")
	ErrSealedTable             = errors.New("table is sealed and can't be modified")
	ErrRowOutOfRange           = errors.New("row index out of range")
	ErrNotValidated            = errors.New("table has not been validated")
	ErrKeyArity                = errors.New("wrong number of key parts")
	ErrKeyNotFound             = errors.New("key not found in table")
)

func (e *DuplicateKeyError) Error() string {
	rows := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		rows[i] = strconv.Itoa(r)
	}
	return fmt.Sprintf("%s: %v at rows [%s]",
		ErrDuplicateKey, []Value(e.Key), strings.Join(rows, ","),
	)
}

// Is allows errors.Is to match a DuplicateKeyError with ErrDuplicateKey
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}
