package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/primex-melvin/tabledoc/internal/document"
)

// ReadCSV reads a CSV file whose first row names the columns
func ReadCSV(r io.Reader, name string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w in %s", ErrNoTable, name)
	}
	if err != nil {
		return nil, NewParseError(name, 1, err)
	}
	keys := headerKeys(header)

	var records []document.Record
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, NewParseError(name, row, err)
		}
		if blank(fields) {
			continue
		}
		records = append(records, rowRecord(keys, fields))
	}

	return newDataset(name, keys, records)
}

// headerKeys trims header cells and names unnamed ones by position
func headerKeys(header []string) []string {
	keys := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		keys[i] = h
	}
	return keys
}

func rowRecord(keys, fields []string) document.Record {
	rec := make(document.Record, len(keys))
	for i, k := range keys {
		if i < len(fields) {
			rec[k] = rawValue(fields[i])
		} else {
			rec[k] = document.Null()
		}
	}
	return rec
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
