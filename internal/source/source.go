// Package source reads tabular records from JSON, CSV, XLSX, SQLite and
// HTML inputs into the document record model.
package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/res"
)

// Format identifies an input encoding
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
	FormatHTML   Format = "html"
)

// Options selects what to read from an input
type Options struct {
	// Format overrides detection by extension and MIME type
	Format Format
	// Sheet is the XLSX sheet name; the first sheet when empty
	Sheet string
	// Query is the SQLite SELECT statement; required for SQLite inputs
	Query string
	// Table picks an HTML table by id or zero-based index; the first when empty
	Table string
	// Columns, when set, coerce values to their kinds and fix column order
	Columns []document.ColumnDefinition
}

// Dataset is the result of reading an input
type Dataset struct {
	Name    string
	Records []document.Record
	// Columns are the configured columns, or columns inferred from the input
	Columns []document.ColumnDefinition
}

// DetectFormat maps a file extension or MIME type to a Format
func DetectFormat(path, mimeType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	switch mimeType {
	case "application/json":
		return FormatJSON, nil
	case "text/csv":
		return FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	case "application/vnd.sqlite3":
		return FormatSQLite, nil
	case "text/html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ParseFormat parses a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatCSV, FormatXLSX, FormatSQLite, FormatHTML:
		return f, nil
	case "sqlite3", "db":
		return FormatSQLite, nil
	case "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Load fetches path through loader and decodes it
func Load(ctx context.Context, loader *res.Loader, path string, opts Options) (*Dataset, error) {
	r, err := loader.LoadContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format, err = DetectFormat(r.URL, r.MimeType)
		if err != nil {
			return nil, err
		}
	}

	var ds *Dataset
	switch format {
	case FormatJSON:
		ds, err = ReadJSON(r.GetReader(), path)
	case FormatCSV:
		ds, err = ReadCSV(r.GetReader(), path)
	case FormatXLSX:
		ds, err = ReadXLSX(r.GetReader(), path, opts.Sheet)
	case FormatHTML:
		ds, err = ReadHTML(r.GetReader(), path, opts.Table)
	case FormatSQLite:
		ds, err = readSQLiteBytes(ctx, r, path, opts.Query)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return ds.Apply(opts.Columns), nil
}

// readSQLiteBytes opens local databases in place; remote or inline ones are
// spilled to a temporary file first
func readSQLiteBytes(ctx context.Context, r *res.Resource, path, query string) (*Dataset, error) {
	if _, err := os.Stat(r.URL); err == nil {
		return ReadSQLite(ctx, r.URL, query)
	}

	tmp, err := os.CreateTemp("", "tabledoc-*.db")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp database: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := bytes.NewReader(r.Data).WriteTo(tmp); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp database: %w", err)
	}
	ds, err := ReadSQLite(ctx, tmp.Name(), query)
	if err != nil {
		return nil, err
	}
	ds.Name = path
	return ds, nil
}

// Apply coerces records to columns. Without columns the dataset is
// returned as read.
func (d *Dataset) Apply(columns []document.ColumnDefinition) *Dataset {
	if len(columns) == 0 {
		return d
	}
	return &Dataset{
		Name:    d.Name,
		Records: document.CoerceRecords(d.Records, columns),
		Columns: columns,
	}
}

// newDataset infers columns from keys and coerces records to them
func newDataset(name string, keys []string, records []document.Record) (*Dataset, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTable, name)
	}
	cols := inferColumns(keys, records)
	return &Dataset{
		Name:    name,
		Records: document.CoerceRecords(records, cols),
		Columns: cols,
	}, nil
}

// inferColumns builds column definitions from keys in input order. A column
// whose non-empty values are all numeric is right aligned as a number.
func inferColumns(keys []string, records []document.Record) []document.ColumnDefinition {
	cols := make([]document.ColumnDefinition, 0, len(keys))
	for _, k := range keys {
		col := document.ColumnDefinition{
			Key:   k,
			Label: Humanize(k),
			Align: document.AlignLeft,
			Kind:  document.KindText,
		}
		if numericColumn(k, records) {
			col.Align = document.AlignRight
			col.Kind = document.KindNumber
		}
		cols = append(cols, col)
	}
	return cols
}

func numericColumn(key string, records []document.Record) bool {
	seen := false
	for _, rec := range records {
		v, ok := rec[key]
		if !ok || v.IsNull() {
			continue
		}
		switch v.Type {
		case document.ValueNumber:
		case document.ValueString:
			if !looksNumeric(v.Str) {
				return false
			}
		default:
			return false
		}
		seen = true
	}
	return seen
}

func looksNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-' || r == '+':
		default:
			return false
		}
	}
	return digits > 0
}

// rawValue keeps text cells as strings and leaves numeric detection to
// column coercion or inference
func rawValue(s string) document.Value {
	if strings.TrimSpace(s) == "" {
		return document.Null()
	}
	return document.String(s)
}

// Humanize turns a record key such as "implementingOffice" or
// "fund_source" into a column label ("Implementing Office", "Fund Source")
func Humanize(key string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
