package parquet_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/kode4food/frame"
	"github.com/kode4food/frame/format/parquet"
	"github.com/kode4food/frame/table"
)

const magic = "PAR1"

func makeLinks(t *testing.T, to ...table.Value) table.Table {
	tbl, err := frame.NewTable(table.MakeLayout(
		[]string{"from", "to"}, []string{"cost"},
	))
	assert.Nil(t, err)
	assert.Nil(t, tbl.SetColumn("from", "PITT", "PITT"))
	assert.Nil(t, tbl.SetColumn("to", to...))
	assert.Nil(t, tbl.SetColumn("cost", 2.5, 3))
	return tbl
}

func readRows(t *testing.T, b []byte) []map[string]any {
	f, err := buffer.NewBufferFile(b)
	if !assert.Nil(t, err) {
		return nil
	}
	pr, err := reader.NewParquetReader(f, nil, 1)
	if !assert.Nil(t, err) {
		return nil
	}
	defer pr.ReadStop()

	rows, err := pr.ReadByNumber(int(pr.GetNumRows()))
	if !assert.Nil(t, err) {
		return nil
	}
	res := make([]map[string]any, len(rows))
	for i, r := range rows {
		v := reflect.ValueOf(r)
		rec := make(map[string]any, v.NumField())
		for j := range v.NumField() {
			rec[v.Type().Field(j).Name] = v.Field(j).Interface()
		}
		res[i] = rec
	}
	return res
}

func TestSchema(t *testing.T) {
	as := assert.New(t)

	s, err := parquet.Schema(makeLinks(t, "NE", "SE"))
	as.Nil(err)

	var res struct {
		Tag    string
		Fields []struct{ Tag string }
	}
	as.Nil(json.Unmarshal([]byte(s), &res))
	as.Equal("name=parquet_go_root, repetitiontype=REQUIRED", res.Tag)
	if as.Len(res.Fields, 3) {
		as.Equal(
			"name=from, type=BYTE_ARRAY, convertedtype=UTF8, "+
				"encoding=PLAIN, repetitiontype=REQUIRED",
			res.Fields[0].Tag,
		)
		as.Equal(
			"name=cost, type=DOUBLE, repetitiontype=REQUIRED",
			res.Fields[2].Tag,
		)
	}
}

func TestSchemaIncomplete(t *testing.T) {
	as := assert.New(t)

	tbl, _ := frame.NewTable(table.MakeLayout(
		[]string{"from"}, []string{"cost"},
	))
	_, err := parquet.Schema(tbl)
	as.ErrorIs(err, table.ErrMissingColumn)
}

func TestWrite(t *testing.T) {
	as := assert.New(t)

	var buf bytes.Buffer
	tbl := makeLinks(t, "NE", "SE")
	as.Nil(parquet.Write(&buf, tbl))
	as.True(tbl.Sealed())

	b := buf.Bytes()
	if as.Greater(len(b), 2*len(magic)) {
		as.Equal(magic, string(b[:len(magic)]))
		as.Equal(magic, string(b[len(b)-len(magic):]))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	as := assert.New(t)

	var buf bytes.Buffer
	as.Nil(parquet.Write(&buf, makeLinks(t, "NE", "SE")))

	rows := readRows(t, buf.Bytes())
	as.Equal([]map[string]any{
		{"From": "PITT", "To": "NE", "Cost": 2.5},
		{"From": "PITT", "To": "SE", "Cost": 3.0},
	}, rows)
}

func TestIntegerColumns(t *testing.T) {
	as := assert.New(t)

	tbl, _ := frame.NewTable(table.MakeLayout(
		[]string{"id"}, []string{"units", "big"},
	))
	as.Nil(tbl.SetColumn("id", int64(1<<53+1), uint32(7)))
	as.Nil(tbl.SetColumn("units", 250, int8(-3)))
	as.Nil(tbl.SetColumn("big", uint64(1<<63), 1))

	s, err := parquet.Schema(tbl)
	as.Nil(err)
	as.Contains(s, "name=id, type=INT64, repetitiontype=REQUIRED")
	as.Contains(s, "name=units, type=INT64, repetitiontype=REQUIRED")
	as.Contains(s, "name=big, type=DOUBLE, repetitiontype=REQUIRED")

	var buf bytes.Buffer
	as.Nil(parquet.Write(&buf, tbl))
	rows := readRows(t, buf.Bytes())
	if as.Len(rows, 2) {
		as.Equal(int64(1<<53+1), rows[0]["Id"])
		as.Equal(int64(250), rows[0]["Units"])
		as.Equal(float64(1<<63), rows[0]["Big"])
		as.Equal(int64(7), rows[1]["Id"])
		as.Equal(int64(-3), rows[1]["Units"])
	}
}

func TestInvalidColumnName(t *testing.T) {
	as := assert.New(t)

	for _, name := range []string{"cost,type=INT32", "a=b", " cost"} {
		tbl, err := frame.NewTable(table.MakeLayout(
			[]string{"from"}, []string{name},
		))
		as.Nil(err)
		as.Nil(tbl.SetColumn("from", "PITT"))
		as.Nil(tbl.SetColumn(table.ColumnName(name), 2.5))

		_, err = parquet.Schema(tbl)
		as.ErrorIs(err, parquet.ErrInvalidColumnName)

		var buf bytes.Buffer
		err = parquet.Write(&buf, tbl)
		as.ErrorIs(err, parquet.ErrInvalidColumnName)
		as.False(tbl.Sealed())
		as.Zero(buf.Len())
		as.Nil(tbl.SetColumn("from", "NE"))
	}
}

func TestCollidingColumnNames(t *testing.T) {
	as := assert.New(t)

	tbl, _ := frame.NewTable(table.MakeLayout(
		[]string{"from"}, []string{"From"},
	))
	as.Nil(tbl.SetColumn("from", "PITT"))
	as.Nil(tbl.SetColumn("From", "NE"))

	var buf bytes.Buffer
	err := parquet.Write(&buf, tbl)
	as.ErrorIs(err, parquet.ErrInvalidColumnName)
	as.False(tbl.Sealed())
}

func TestWriteInvalid(t *testing.T) {
	as := assert.New(t)

	var buf bytes.Buffer
	err := parquet.Write(&buf, makeLinks(t, "NE", "NE"))
	as.ErrorIs(err, table.ErrDuplicateKey)
	as.Zero(buf.Len())
}
