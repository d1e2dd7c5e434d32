package datasource

import (
	"fmt"
	"io"
	"strings"

	ge "github.com/kokes/great-expectations"
	"github.com/pkg/errors"
)

// The reader methods the datasource knows how to dispatch to.
const (
	MethodCSV     = "csv"
	MethodJSON    = "json"
	MethodAvro    = "avro"
	MethodExcel   = "excel"
	MethodParquet = "parquet"
)

// GuessReaderMethod infers a reader method from a path or URL. Some
// extensions imply reader options (compression, delimiter); those are
// returned alongside and act as the lowest-priority option layer.
func GuessReaderMethod(path string) (string, map[string]interface{}, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv.gz"):
		return MethodCSV, map[string]interface{}{"compression": "gzip"}, nil
	case strings.HasSuffix(lower, ".tsv.gz"):
		return MethodCSV, map[string]interface{}{"compression": "gzip", "delimiter": "\t"}, nil
	case strings.HasSuffix(lower, ".csv"):
		return MethodCSV, nil, nil
	case strings.HasSuffix(lower, ".tsv"):
		return MethodCSV, map[string]interface{}{"delimiter": "\t"}, nil
	case strings.HasSuffix(lower, ".json"), strings.HasSuffix(lower, ".jsonl"), strings.HasSuffix(lower, ".ndjson"):
		return MethodJSON, nil, nil
	case strings.HasSuffix(lower, ".parquet"):
		return MethodParquet, nil, nil
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return MethodExcel, nil, nil
	case strings.HasSuffix(lower, ".avro"):
		return MethodAvro, nil, nil
	}
	return "", nil, errors.Errorf("unable to determine reader method from path '%s'", path)
}

// readFrame dispatches to the reader for method.
func readFrame(method string, r io.Reader, opts Options) (*ge.DataFrame, error) {
	switch method {
	case MethodCSV:
		return readCSV(r, opts)
	case MethodJSON:
		return readJSON(r, opts)
	case MethodAvro:
		return readAvro(r, opts)
	case MethodExcel:
		return readExcel(r, opts)
	case MethodParquet:
		return readParquet(r, opts)
	}
	return nil, errors.Errorf("unknown reader_method '%s'", method)
}

// headRows applies an nrows option to raw string rows.
func headRows(rows [][]string, opts Options) [][]string {
	if !opts.Has("nrows") {
		return rows
	}
	n := opts.Int("nrows", len(rows))
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// syntheticHeader names headerless columns col_0..col_n-1.
func syntheticHeader(width int) []string {
	header := make([]string, width)
	for i := range header {
		header[i] = fmt.Sprintf("col_%d", i)
	}
	return header
}
