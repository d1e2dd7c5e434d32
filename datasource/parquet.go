package datasource

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"reflect"

	ge "github.com/kokes/great-expectations"
	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

// readParquet reads a parquet file into a frame. The parquet format needs
// random access, so the stream is spilled to a temporary file first.
// Options: nrows.
func readParquet(r io.Reader, opts Options) (*ge.DataFrame, error) {
	tmp, err := ioutil.TempFile("", "ge-parquet-")
	if err != nil {
		return nil, errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, errors.Wrap(err, "spilling parquet stream")
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Wrap(err, "closing temp file")
	}
	return readParquetFile(tmp.Name(), opts)
}

func readParquetFile(path string, opts Options) (*ge.DataFrame, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening parquet file")
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, nil, 1)
	if err != nil {
		return nil, errors.Wrap(err, "creating parquet reader")
	}
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	if opts.Has("nrows") {
		if n := opts.Int("nrows", num); n >= 0 && n < num {
			num = n
		}
	}
	rows, err := pr.ReadByNumber(num)
	if err != nil {
		return nil, errors.Wrap(err, "reading parquet rows")
	}

	names := parquetColumnNames(pr, rows)
	if names == nil {
		return ge.NewDataFrame()
	}

	cols := make([]ge.Column, len(names))
	for j := range cols {
		cols[j] = ge.Column{Name: names[j], Values: make([]ge.Value, len(rows))}
	}
	for i, row := range rows {
		v := reflect.ValueOf(row)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct || v.NumField() != len(names) {
			return nil, errors.Errorf("parquet row %d has unexpected shape %T", i, row)
		}
		for j := range names {
			cols[j].Values[i] = parquetValue(v.Field(j))
		}
	}
	return ge.NewDataFrame(cols...)
}

// parquetColumnNames recovers the file's own column names from the schema
// handler; the reflected struct fields carry Go-mangled names. Falls back to
// the struct field names when the schema metadata doesn't line up.
func parquetColumnNames(pr *reader.ParquetReader, rows []interface{}) []string {
	if len(rows) == 0 {
		return nil
	}
	v := reflect.ValueOf(rows[0])
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	n := v.NumField()
	infos := pr.SchemaHandler.Infos
	if len(infos) == n+1 { // infos[0] is the root
		names := make([]string, n)
		for i := 0; i < n; i++ {
			names[i] = infos[i+1].ExName
		}
		return names
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = v.Type().Field(i).Name
	}
	return names
}

func parquetValue(v reflect.Value) ge.Value {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ge.Null()
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Bool:
		return ge.Bool(v.Bool())
	case reflect.Int32, reflect.Int64, reflect.Int:
		return ge.Int(v.Int())
	case reflect.Float32, reflect.Float64:
		return ge.Float(v.Float())
	case reflect.String:
		return ge.String(v.String())
	}
	return ge.String(fmt.Sprintf("%v", v.Interface()))
}
