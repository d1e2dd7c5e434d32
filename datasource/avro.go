package datasource

import (
	"fmt"
	"io"
	"sort"
	"time"

	ge "github.com/kokes/great-expectations"
	goavro "github.com/linkedin/goavro/v2"
	"github.com/pkg/errors"
)

// readAvro reads an Avro object container file into a frame. Records are
// expected to be flat; union values are unwrapped. Columns are sorted by
// name. Options: nrows.
func readAvro(r io.Reader, opts Options) (*ge.DataFrame, error) {
	ocf, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening avro container")
	}

	var records []map[string]interface{}
	keys := map[string]struct{}{}
	nrows := -1
	if opts.Has("nrows") {
		nrows = opts.Int("nrows", -1)
	}
	for i := 0; ocf.Scan() && (nrows < 0 || i < nrows); i++ {
		datum, err := ocf.Read()
		if err != nil {
			return nil, errors.Wrapf(err, "reading avro record %d", len(records))
		}
		rec, ok := datum.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("avro record %d is not a record type: %T", len(records), datum)
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
			values[i] = avroValue(rec[name])
		}
		cols[j] = ge.Column{Name: name, Values: values}
	}
	return ge.NewDataFrame(cols...)
}

func avroValue(raw interface{}) ge.Value {
	// goavro represents union values as a single-entry map keyed by the
	// member type name.
	if m, ok := raw.(map[string]interface{}); ok && len(m) == 1 {
		for _, inner := range m {
			raw = inner
		}
	}
	switch x := raw.(type) {
	case nil:
		return ge.Null()
	case bool:
		return ge.Bool(x)
	case int32:
		return ge.Int(int64(x))
	case int64:
		return ge.Int(x)
	case int:
		return ge.Int(int64(x))
	case float32:
		return ge.Float(float64(x))
	case float64:
		return ge.Float(x)
	case string:
		return ge.String(x)
	case []byte:
		return ge.String(string(x))
	case time.Time:
		return ge.Time(x)
	}
	return ge.String(fmt.Sprintf("%v", raw))
}
