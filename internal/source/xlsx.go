package source

import (
	"fmt"
	"io"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a worksheet whose first non-empty row names the columns
func ReadXLSX(r io.Reader, name, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewParseError(name, 0, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoTable, name)
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q in %s", ErrNoTable, sheet, name)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, NewParseError(name, 0, fmt.Errorf("sheet %q: %w", sheet, err))
	}

	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, fmt.Errorf("%w: sheet %q in %s is empty", ErrNoTable, sheet, name)
	}
	keys := headerKeys(rows[start])

	var records []document.Record
	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		records = append(records, rowRecord(keys, row))
	}

	return newDataset(name, keys, records)
}
