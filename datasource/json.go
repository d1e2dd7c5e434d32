package datasource

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"

	ge "github.com/kokes/great-expectations"
	"github.com/pkg/errors"
)

// readJSON reads a stream of JSON objects (one per line, or simply
// concatenated) into a frame. Keys missing from a record become nulls.
// Columns are sorted by name since the decoder does not preserve field
// order. Options: nrows.
func readJSON(r io.Reader, opts Options) (*ge.DataFrame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []map[string]interface{}
	keys := map[string]struct{}{}
	nrows := -1
	if opts.Has("nrows") {
		nrows = opts.Int("nrows", -1)
	}
	for i := 0; nrows < 0 || i < nrows; i++ {
		var rec map[string]interface{}
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding json record %d", len(records))
		}
		for k := range rec {
			keys[k] = struct{}{}
		}
		records = append(records, rec)
	}

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	cols := make([]ge.Column, len(names))
	for j, name := range names {
		values := make([]ge.Value, len(records))
		for i, rec := range records {
			raw, ok := rec[name]
			if !ok {
				values[i] = ge.Null()
				continue
			}
			v, err := jsonValue(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "record %d, key '%s'", i, name)
			}
			values[i] = v
		}
		cols[j] = ge.Column{Name: name, Values: values}
	}
	return ge.NewDataFrame(cols...)
}

func jsonValue(raw interface{}) (ge.Value, error) {
	switch x := raw.(type) {
	case nil:
		return ge.Null(), nil
	case bool:
		return ge.Bool(x), nil
	case string:
		return ge.String(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return ge.Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return ge.Null(), errors.Wrapf(err, "parsing number %q", string(x))
		}
		return ge.Float(f), nil
	}
	// Nested objects and arrays are kept as their JSON rendering; the frame
	// is strictly tabular.
	out, err := json.Marshal(raw)
	if err != nil {
		return ge.Null(), errors.Wrap(err, "re-encoding nested value")
	}
	return ge.String(string(out)), nil
}
