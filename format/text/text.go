// Package text renders Tables for people and for engines that accept
// textual data statements. Rendering never modifies the Table
package text

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kode4food/frame/table"
)

// Format renders a Table as aligned columns, headed by the column names. An
// incomplete Table renders only its header
func Format(t table.Table) string {
	var buf bytes.Buffer
	_ = Write(&buf, t)
	return buf.String()
}

// Write renders a Table to the provided Writer, as Format does. It returns
// an error if the Table is incomplete or the Writer fails
func Write(w io.Writer, t table.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := t.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	writeLine(tw, header)

	rows, err := t.Rows()
	if err != nil {
		_ = tw.Flush()
		return err
	}
	for r := range rows {
		cells := make([]string, 0, len(cols))
		for _, v := range r.Key {
			cells = append(cells, formatValue(v))
		}
		for _, v := range r.Values {
			cells = append(cells, formatValue(v))
		}
		writeLine(tw, cells)
	}
	return tw.Flush()
}

// Data renders a Table as a tabular data statement. When target is provided,
// the key tuples populate the target set and every value column becomes a
// parameter indexed by it. Otherwise the engine is left to match the value
// columns to its declared parameters
func Data(t table.Table, target string) (string, error) {
	rows, err := t.Rows()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	buf.WriteString("param:")
	if target != "" {
		buf.WriteString(" " + target + ":")
	}
	for _, c := range t.ValueColumns() {
		buf.WriteString(" " + string(c))
	}
	buf.WriteString(" :=")
	for r := range rows {
		buf.WriteString("\n")
		cells := make([]string, 0, len(r.Key)+len(r.Values))
		for _, v := range r.Key {
			cells = append(cells, quoteValue(v))
		}
		for _, v := range r.Values {
			cells = append(cells, quoteValue(v))
		}
		buf.WriteString(strings.Join(cells, " "))
	}
	buf.WriteString(";\n")
	return buf.String(), nil
}

func writeLine(w io.Writer, cells []string) {
	_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
}

func formatValue(v table.Value) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// quoteValue leaves numbers and bare symbols alone, and quotes any string
// that could be mistaken for something else
func quoteValue(v table.Value) string {
	s, ok := v.(string)
	if !ok {
		return formatValue(v)
	}
	if isSymbol(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func isSymbol(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
