// Package parquet exports validated Tables as parquet files. String columns
// are written as UTF8 byte arrays, integer columns as INT64 and any other
// numeric column as doubles
package parquet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/kode4food/frame/table"
)

type jsonSchema struct {
	Tag    string        `json:",omitempty"`
	Fields []*jsonSchema `json:",omitempty"`
}

// ErrInvalidColumnName is raised when a column name can't be expressed in a
// parquet-go schema tag
var ErrInvalidColumnName = errors.New("column name not usable in parquet schema")

const (
	rootTag     = "name=parquet_go_root, repetitiontype=REQUIRED"
	parallelism = 4
)

// Schema returns the parquet-go JSON schema describing a Table's columns
func Schema(t table.Table) (string, error) {
	cols := t.Columns()
	if err := checkNames(cols); err != nil {
		return "", err
	}
	fields := make([]*jsonSchema, len(cols))
	for i, c := range cols {
		typ, err := columnType(t, c)
		if err != nil {
			return "", err
		}
		fields[i] = &jsonSchema{Tag: fieldTag(c, typ)}
	}
	b, err := json.Marshal(jsonSchema{
		Tag:    rootTag,
		Fields: fields,
	})
	if err != nil {
		return "", fmt.Errorf("error in json.Marshal: %w", err)
	}
	return string(b), nil
}

// Write validates and seals a Table, then writes it to w as a parquet file.
// A Table whose column names can't be written is left unsealed
func Write(w io.Writer, t table.Table) error {
	if err := checkNames(t.Columns()); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	schema, err := Schema(t)
	if err != nil {
		return err
	}
	pw, err := writer.NewJSONWriterFromWriter(schema, w, parallelism)
	if err != nil {
		return fmt.Errorf("error in NewJSONWriterFromWriter: %w", err)
	}

	rows, err := t.Rows()
	if err != nil {
		return err
	}
	keys := t.KeyColumns()
	values := t.ValueColumns()
	for r := range rows {
		rec := make(map[string]any, len(keys)+len(values))
		for i, c := range keys {
			rec[string(c)] = r.Key[i]
		}
		for i, c := range values {
			rec[string(c)] = r.Values[i]
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("error in json.Marshal of row %d: %w", r.Index, err)
		}
		if err := pw.Write(string(b)); err != nil {
			return fmt.Errorf("error in pw.Write for row %d: %w", r.Index, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("error in pw.WriteStop: %w", err)
	}
	return nil
}

// checkNames rejects names that would break the schema tag syntax, and names
// that parquet-go would fold into the same field name
func checkNames(cols []table.ColumnName) error {
	seen := make(map[string]string, len(cols))
	for _, c := range cols {
		n := string(c)
		if n == "" || strings.TrimSpace(n) != n || strings.ContainsAny(n, ",=") {
			return fmt.Errorf("%w: %q", ErrInvalidColumnName, n)
		}
		in := common.StringToVariableName(n)
		if prev, ok := seen[in]; ok {
			return fmt.Errorf("%w: %q collides with %q",
				ErrInvalidColumnName, n, prev,
			)
		}
		seen[in] = n
	}
	return nil
}

// columnType picks INT64 for columns made only of Go integers that fit,
// DOUBLE for any other numeric column, and BYTE_ARRAY otherwise
func columnType(t table.Table, c table.ColumnName) (string, error) {
	k, err := t.Kind(c)
	if err != nil {
		return "", err
	}
	if k != table.KindNumber {
		return "BYTE_ARRAY", nil
	}
	values, err := t.Column(c)
	if err != nil {
		return "", err
	}
	for _, v := range values {
		if !isInt64(v) {
			return "DOUBLE", nil
		}
	}
	return "INT64", nil
}

func isInt64(v table.Value) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return true
	case uint:
		return uint64(n) <= math.MaxInt64
	case uint64:
		return n <= math.MaxInt64
	default:
		return false
	}
}

func fieldTag(c table.ColumnName, typ string) string {
	tags := []string{"name=" + string(c), "type=" + typ}
	if typ == "BYTE_ARRAY" {
		tags = append(tags, "convertedtype=UTF8", "encoding=PLAIN")
	}
	tags = append(tags, "repetitiontype=REQUIRED")
	return strings.Join(tags, ", ")
}
