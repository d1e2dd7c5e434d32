// Package datasource loads batches of tabular data into a uniform in-memory
// representation. A batch is described by ge.BatchKwargs: a local path (or
// http URL), an s3 URL, or an already-loaded frame. The datasource picks a
// reader from the descriptor, merges default and per-batch reader options,
// and wraps the loaded frame in a ge.Batch carrying provenance markers.
package datasource

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	ge "github.com/kokes/great-expectations"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// ObjectFetcher fetches the raw bytes of one object-storage URL. The aws/s3
// package provides the production implementation.
type ObjectFetcher interface {
	Fetch(url string) ([]byte, error)
}

// Datasource resolves batch kwargs into loaded batches. The zero value is
// not usable; construct with New.
type Datasource struct {
	name          string
	readerMethod  string
	readerOptions map[string]interface{}
	limit         int
	fetcher       ObjectFetcher
	hashThreshold int64
}

// Option is a functional option to pass to New.
type Option func(*Datasource)

// OptName sets the datasource name recorded on every batch.
func OptName(name string) Option {
	return func(ds *Datasource) {
		ds.name = name
	}
}

// OptReaderMethod sets a default reader method applied when batch kwargs
// don't name one.
func OptReaderMethod(method string) Option {
	return func(ds *Datasource) {
		ds.readerMethod = method
	}
}

// OptReaderOptions sets default reader options. Per-batch options override
// them key by key.
func OptReaderOptions(opts map[string]interface{}) Option {
	return func(ds *Datasource) {
		ds.readerOptions = opts
	}
}

// OptLimit sets a default row limit for every batch read through this
// datasource. A per-batch limit overrides it.
func OptLimit(limit int) Option {
	return func(ds *Datasource) {
		ds.limit = limit
	}
}

// OptFetcher sets the object-storage client used for s3 batch kwargs.
func OptFetcher(f ObjectFetcher) Option {
	return func(ds *Datasource) {
		ds.fetcher = f
	}
}

// OptHashThreshold overrides the frame size above which fingerprinting is
// skipped. Mostly useful in tests.
func OptHashThreshold(n int64) Option {
	return func(ds *Datasource) {
		ds.hashThreshold = n
	}
}

// New returns a Datasource with the options applied.
func New(opts ...Option) *Datasource {
	ds := &Datasource{
		name:          "default",
		hashThreshold: ge.HashThreshold,
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

// Name returns the datasource name.
func (ds *Datasource) Name() string { return ds.name }

// BatchKwargsError reports a batch descriptor the datasource cannot act on.
type BatchKwargsError struct {
	Msg    string
	Kwargs ge.BatchKwargs
}

func (e *BatchKwargsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Kwargs)
}

// GetBatch loads the batch described by kwargs. Dispatch is on the shape of
// the descriptor: a local path (or http URL), an s3 URL, or an in-memory
// frame. The loaded frame is fingerprinted when small enough.
func (ds *Datasource) GetBatch(kwargs ge.BatchKwargs) (*ge.Batch, error) {
	markers := ge.NewBatchMarkers(time.Now())

	var df *ge.DataFrame
	switch {
	case kwargs.Path != "":
		method, implied, err := ds.resolveReader(kwargs, kwargs.Path)
		if err != nil {
			return nil, err
		}
		opts := ds.mergedOptions(implied, kwargs)
		rc, err := openPath(kwargs.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening '%s'", kwargs.Path)
		}
		defer rc.Close()
		df, err = readFrame(method, rc, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "reading '%s'", kwargs.Path)
		}

	case kwargs.S3 != "":
		if ds.fetcher == nil {
			return nil, &BatchKwargsError{Msg: "no object-storage client configured for s3 batch kwargs", Kwargs: kwargs}
		}
		method, implied, err := ds.resolveReader(kwargs, kwargs.S3)
		if err != nil {
			return nil, err
		}
		opts := ds.mergedOptions(implied, kwargs)
		raw, err := ds.fetcher.Fetch(kwargs.S3)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching '%s'", kwargs.S3)
		}
		df, err = readFrame(method, bytes.NewReader(raw), opts)
		if err != nil {
			return nil, errors.Wrapf(err, "reading '%s'", kwargs.S3)
		}

	case kwargs.Dataset != nil:
		df = kwargs.Dataset
		// The frame itself is never stored on the batch kwargs; keep only
		// provenance markers identifying it.
		kwargs.Dataset = nil
		kwargs.InMemory = true
		kwargs.BatchID = uuid.NewV1().String()

	default:
		return nil, &BatchKwargsError{Msg: "invalid batch kwargs: path, s3 or dataset is required", Kwargs: kwargs}
	}

	if df.ApproxMemoryBytes() < ds.hashThreshold {
		markers[ge.MarkerFingerprint] = ge.Fingerprint(df)
	}

	return &ge.Batch{
		DatasourceName: ds.name,
		Kwargs:         kwargs,
		Markers:        markers,
		Data:           df,
	}, nil
}

// resolveReader picks the reader method: per-batch kwargs win, then the
// datasource default, then a guess from the path's extension. The guess may
// imply options (e.g. gzip compression for .csv.gz).
func (ds *Datasource) resolveReader(kwargs ge.BatchKwargs, path string) (string, map[string]interface{}, error) {
	if kwargs.ReaderMethod != "" {
		return kwargs.ReaderMethod, nil, nil
	}
	if ds.readerMethod != "" {
		return ds.readerMethod, nil, nil
	}
	method, implied, err := GuessReaderMethod(path)
	if err != nil {
		return "", nil, &BatchKwargsError{Msg: err.Error(), Kwargs: kwargs}
	}
	return method, implied, nil
}

// mergedOptions merges reader options, last write wins: guess-implied, then
// datasource defaults, then per-batch options. Limits translate to nrows,
// the per-batch limit overriding the datasource default.
func (ds *Datasource) mergedOptions(implied map[string]interface{}, kwargs ge.BatchKwargs) Options {
	opts := mergeOptions(implied, ds.readerOptions, kwargs.ReaderOptions)
	if ds.limit > 0 {
		opts["nrows"] = ds.limit
	}
	if kwargs.Limit > 0 {
		opts["nrows"] = kwargs.Limit
	}
	return opts
}

// openPath opens a local file, or an http(s) URL via GET.
func openPath(path string) (io.ReadCloser, error) {
	if len(path) > 4 && path[:4] == "http" {
		resp, err := http.Get(path)
		if err != nil {
			return nil, errors.Wrap(err, "getting via http")
		}
		return resp.Body, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	return f, nil
}
