package datasource

import (
	"io"
	"io/ioutil"

	ge "github.com/kokes/great-expectations"
	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

// readExcel reads one sheet of an Excel workbook into a frame. Options:
// sheet (name, default the first sheet), header (default true), skip_rows,
// nrows. Cell values are read as strings and go through the usual type
// inference.
func readExcel(r io.Reader, opts Options) (*ge.DataFrame, error) {
	// The xlsx format is a zip archive and needs random access, so the
	// stream is buffered in full first.
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "buffering workbook")
	}
	wb, err := xlsx.OpenBinary(raw)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	if len(wb.Sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	sheet := wb.Sheets[0]
	if name := opts.String("sheet", ""); name != "" {
		found, ok := wb.Sheet[name]
		if !ok {
			return nil, errors.Errorf("sheet '%s' not found in workbook", name)
		}
		sheet = found
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}
	for skip := opts.Int("skip_rows", 0); skip > 0 && len(rows) > 0; skip-- {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return ge.NewDataFrame()
	}

	var header []string
	if opts.Bool("header", true) {
		header = rows[0]
		rows = rows[1:]
		if err := validateHeader(header); err != nil {
			return nil, errors.Wrap(err, "validating header")
		}
	} else {
		header = syntheticHeader(len(rows[0]))
	}

	rows = headRows(rows, opts)
	return ge.FrameFromRecords(header, rows)
}
