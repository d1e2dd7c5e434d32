package datasource

import (
	"compress/gzip"
	"encoding/csv"
	"io"

	ge "github.com/kokes/great-expectations"
	"github.com/pkg/errors"
)

// readCSV reads delimiter-separated values into a frame. Options:
// delimiter (single character, default ','), header (default true),
// skip_rows (leading rows to discard), nrows (data-row cap), and
// compression ("gzip").
func readCSV(r io.Reader, opts Options) (*ge.DataFrame, error) {
	if opts.String("compression", "") == "gzip" {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		defer gz.Close()
		r = gz
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled during frame building
	if delim := opts.String("delimiter", ""); delim != "" {
		runes := []rune(delim)
		if len(runes) != 1 {
			return nil, errors.Errorf("delimiter must be a single character, got %q", delim)
		}
		cr.Comma = runes[0]
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv records")
	}
	for skip := opts.Int("skip_rows", 0); skip > 0 && len(records) > 0; skip-- {
		records = records[1:]
	}
	if len(records) == 0 {
		return ge.NewDataFrame()
	}

	var header []string
	if opts.Bool("header", true) {
		header = records[0]
		records = records[1:]
		if err := validateHeader(header); err != nil {
			return nil, errors.Wrap(err, "validating header")
		}
	} else {
		header = syntheticHeader(len(records[0]))
	}

	records = headRows(records, opts)
	return ge.FrameFromRecords(header, records)
}

func validateHeader(header []string) error {
	fields := make(map[string]int)
	for i, h := range header {
		if h == "" {
			return errors.Errorf("header contains empty string at %d: %v", i, header)
		}
		if pos, exists := fields[h]; exists {
			return errors.Errorf("%s appeared at both %d and %d in header", h, pos, i)
		}
		fields[h] = i
	}
	return nil
}
