package datasource

import (
	"testing"

	ge "github.com/kokes/great-expectations"
)

func TestGuessReaderMethod(t *testing.T) {
	tests := []struct {
		path    string
		method  string
		implied map[string]interface{}
		wantErr bool
	}{
		{path: "data.csv", method: MethodCSV},
		{path: "data.CSV", method: MethodCSV},
		{path: "data.tsv", method: MethodCSV, implied: map[string]interface{}{"delimiter": "\t"}},
		{path: "data.csv.gz", method: MethodCSV, implied: map[string]interface{}{"compression": "gzip"}},
		{path: "data.tsv.gz", method: MethodCSV, implied: map[string]interface{}{"compression": "gzip", "delimiter": "\t"}},
		{path: "data.json", method: MethodJSON},
		{path: "data.jsonl", method: MethodJSON},
		{path: "data.ndjson", method: MethodJSON},
		{path: "data.parquet", method: MethodParquet},
		{path: "data.xlsx", method: MethodExcel},
		{path: "data.xls", method: MethodExcel},
		{path: "data.avro", method: MethodAvro},
		{path: "s3://bucket/key/data.csv", method: MethodCSV},
		{path: "data.txt", wantErr: true},
		{path: "data", wantErr: true},
	}
	for _, test := range tests {
		method, implied, err := GuessReaderMethod(test.path)
		if test.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", test.path)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", test.path, err)
		}
		if method != test.method {
			t.Fatalf("%s: got method %s, want %s", test.path, method, test.method)
		}
		if len(implied) != len(test.implied) {
			t.Fatalf("%s: implied options %v, want %v", test.path, implied, test.implied)
		}
		for k, v := range test.implied {
			if implied[k] != v {
				t.Fatalf("%s: implied[%s] = %v, want %v", test.path, k, implied[k], v)
			}
		}
	}
}

func TestMergedOptionsPrecedence(t *testing.T) {
	ds := New(
		OptReaderOptions(map[string]interface{}{"delimiter": ";", "header": false}),
		OptLimit(10),
	)
	implied := map[string]interface{}{"delimiter": "\t", "compression": "gzip"}
	kwargs := ge.BatchKwargs{
		ReaderOptions: map[string]interface{}{"header": true},
		Limit:         3,
	}
	opts := ds.mergedOptions(implied, kwargs)

	// datasource defaults override guess-implied options
	if got := opts.String("delimiter", ""); got != ";" {
		t.Fatalf("delimiter = %q, want ';'", got)
	}
	// guess-implied options survive when nothing overrides them
	if got := opts.String("compression", ""); got != "gzip" {
		t.Fatalf("compression = %q, want gzip", got)
	}
	// per-batch options override datasource defaults
	if !opts.Bool("header", false) {
		t.Fatal("header should be overridden to true by batch kwargs")
	}
	// per-batch limit overrides the datasource limit
	if got := opts.Int("nrows", 0); got != 3 {
		t.Fatalf("nrows = %d, want 3", got)
	}
}

func TestMergedOptionsDatasourceLimit(t *testing.T) {
	ds := New(OptLimit(7))
	opts := ds.mergedOptions(nil, ge.BatchKwargs{})
	if got := opts.Int("nrows", 0); got != 7 {
		t.Fatalf("nrows = %d, want 7", got)
	}
}

func TestResolveReaderPrecedence(t *testing.T) {
	ds := New(OptReaderMethod(MethodJSON))
	method, _, err := ds.resolveReader(ge.BatchKwargs{ReaderMethod: MethodCSV}, "data.avro")
	if err != nil || method != MethodCSV {
		t.Fatalf("kwargs method should win: %s, %v", method, err)
	}
	method, _, err = ds.resolveReader(ge.BatchKwargs{}, "data.avro")
	if err != nil || method != MethodJSON {
		t.Fatalf("datasource default should win over guess: %s, %v", method, err)
	}

	ds = New()
	method, _, err = ds.resolveReader(ge.BatchKwargs{}, "data.avro")
	if err != nil || method != MethodAvro {
		t.Fatalf("guess should apply: %s, %v", method, err)
	}
	_, _, err = ds.resolveReader(ge.BatchKwargs{}, "data.bin")
	if err == nil {
		t.Fatal("expected error for unknown extension")
	}
	if _, ok := err.(*BatchKwargsError); !ok {
		t.Fatalf("expected BatchKwargsError, got %T", err)
	}
}
