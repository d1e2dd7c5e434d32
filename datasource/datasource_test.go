package datasource_test

import (
	"bytes"
	"compress/gzip"
	"io/ioutil"
	"os"
	"testing"
	"time"

	ge "github.com/kokes/great-expectations"
	"github.com/kokes/great-expectations/datasource"
)

func mustTempFile(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := ioutil.TempFile("", pattern)
	if err != nil {
		t.Fatalf("getting temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing temp file: %v", err)
	}
	return f.Name()
}

func TestGetBatchFromCSVPath(t *testing.T) {
	path := mustTempFile(t, "*.csv", "id,name\n1,ann\n2,bob\n3,cyd\n")
	defer os.Remove(path)

	ds := datasource.New(datasource.OptName("local"))
	batch, err := ds.GetBatch(ge.BatchKwargs{Path: path})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if batch.DatasourceName != "local" {
		t.Fatalf("wrong datasource name: %s", batch.DatasourceName)
	}
	if batch.Data.NumRows() != 3 || batch.Data.NumColumns() != 2 {
		t.Fatalf("wrong shape: %dx%d", batch.Data.NumRows(), batch.Data.NumColumns())
	}
	ids, _ := batch.Data.Column("id")
	if ids.Values[0].Kind() != ge.KindInt {
		t.Fatalf("id should infer int, got %v", ids.Values[0].Kind())
	}
	if _, err := time.Parse(ge.LoadTimeLayout, batch.Markers[ge.MarkerLoadTime]); err != nil {
		t.Fatalf("bad load time marker %q: %v", batch.Markers[ge.MarkerLoadTime], err)
	}
	if batch.Markers[ge.MarkerFingerprint] == "" {
		t.Fatal("small frame should carry a fingerprint marker")
	}
}

func TestGetBatchLimit(t *testing.T) {
	path := mustTempFile(t, "*.csv", "id\n1\n2\n3\n4\n")
	defer os.Remove(path)

	ds := datasource.New(datasource.OptLimit(3))
	batch, err := ds.GetBatch(ge.BatchKwargs{Path: path, Limit: 2})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if batch.Data.NumRows() != 2 {
		t.Fatalf("kwargs limit should win: %d rows", batch.Data.NumRows())
	}

	batch, err = ds.GetBatch(ge.BatchKwargs{Path: path})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if batch.Data.NumRows() != 3 {
		t.Fatalf("datasource limit should apply: %d rows", batch.Data.NumRows())
	}
}

func TestGetBatchGzippedTSV(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte("a\tb\n1\tx\n")); err != nil {
		t.Fatalf("writing gzip: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	path := mustTempFile(t, "*.tsv.gz", buf.String())
	defer os.Remove(path)

	ds := datasource.New()
	batch, err := ds.GetBatch(ge.BatchKwargs{Path: path})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if !batch.Data.HasColumn("a") || !batch.Data.HasColumn("b") {
		t.Fatalf("tab delimiter not applied: %v", batch.Data.Columns())
	}
	if batch.Data.NumRows() != 1 {
		t.Fatalf("rows: %d", batch.Data.NumRows())
	}
}

func TestGetBatchFromJSONPath(t *testing.T) {
	path := mustTempFile(t, "*.jsonl", `{"id": 1, "name": "ann"}
{"id": 2}
`)
	defer os.Remove(path)

	ds := datasource.New()
	batch, err := ds.GetBatch(ge.BatchKwargs{Path: path})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	names, ok := batch.Data.Column("name")
	if !ok {
		t.Fatalf("name column missing: %v", batch.Data.Columns())
	}
	if !names.Values[1].IsNull() {
		t.Fatalf("missing key should be null, got %v", names.Values[1])
	}
	ids, _ := batch.Data.Column("id")
	if ids.Values[0].Kind() != ge.KindInt || ids.Values[0].IntVal() != 1 {
		t.Fatalf("id decoded wrong: %v", ids.Values[0])
	}
}

func TestGetBatchInMemoryDataset(t *testing.T) {
	df, err := ge.NewDataFrame(ge.Column{Name: "x", Values: []ge.Value{ge.Int(1)}})
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}
	ds := datasource.New()
	batch, err := ds.GetBatch(ge.BatchKwargs{Dataset: df})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if batch.Data != df {
		t.Fatal("in-memory frame should be passed through")
	}
	if batch.Kwargs.Dataset != nil {
		t.Fatal("frame should be stripped from stored kwargs")
	}
	if !batch.Kwargs.InMemory {
		t.Fatal("in-memory marker not set")
	}
	if batch.Kwargs.BatchID == "" {
		t.Fatal("batch id not set")
	}

	again, err := ds.GetBatch(ge.BatchKwargs{Dataset: df})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if again.Kwargs.BatchID == batch.Kwargs.BatchID {
		t.Fatal("batch ids should be unique per load")
	}
}

func TestGetBatchEmptyKwargs(t *testing.T) {
	ds := datasource.New()
	_, err := ds.GetBatch(ge.BatchKwargs{})
	if err == nil {
		t.Fatal("expected error for empty kwargs")
	}
	if _, ok := err.(*datasource.BatchKwargsError); !ok {
		t.Fatalf("expected BatchKwargsError, got %T: %v", err, err)
	}
}

type fakeFetcher map[string][]byte

func (f fakeFetcher) Fetch(url string) ([]byte, error) {
	body, ok := f[url]
	if !ok {
		return nil, os.ErrNotExist
	}
	return body, nil
}

func TestGetBatchFromS3(t *testing.T) {
	fetcher := fakeFetcher{
		"s3://bucket/data/users.csv": []byte("id,name\n1,ann\n"),
	}
	ds := datasource.New(datasource.OptFetcher(fetcher))
	batch, err := ds.GetBatch(ge.BatchKwargs{S3: "s3://bucket/data/users.csv"})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if batch.Data.NumRows() != 1 {
		t.Fatalf("rows: %d", batch.Data.NumRows())
	}

	if _, err := ds.GetBatch(ge.BatchKwargs{S3: "s3://bucket/missing.csv"}); err == nil {
		t.Fatal("expected error for missing object")
	}

	bare := datasource.New()
	if _, err := bare.GetBatch(ge.BatchKwargs{S3: "s3://bucket/data/users.csv"}); err == nil {
		t.Fatal("expected error without a fetcher")
	}
}

func TestGetBatchFingerprintThreshold(t *testing.T) {
	path := mustTempFile(t, "*.csv", "id\n1\n")
	defer os.Remove(path)

	ds := datasource.New(datasource.OptHashThreshold(1))
	batch, err := ds.GetBatch(ge.BatchKwargs{Path: path})
	if err != nil {
		t.Fatalf("getting batch: %v", err)
	}
	if _, ok := batch.Markers[ge.MarkerFingerprint]; ok {
		t.Fatal("frame above threshold should not be fingerprinted")
	}
}

func TestGetBatchUnreadablePath(t *testing.T) {
	ds := datasource.New()
	if _, err := ds.GetBatch(ge.BatchKwargs{Path: "/no/such/file.csv"}); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}
