package source

import (
	"fmt"
	"io"
	"strconv"

	"github.com/primex-melvin/tabledoc/internal/document"
	htmlparser "github.com/primex-melvin/tabledoc/internal/parser/html"
)

// ReadHTML reads a <table>. table selects one by id or zero-based index;
// the first table is read when it is empty.
func ReadHTML(r io.Reader, name, table string) (*Dataset, error) {
	p := htmlparser.NewParser()
	doc, err := p.Parse(r)
	if err != nil {
		return nil, NewParseError(name, 0, err)
	}

	tables := p.Tables(doc)
	t, ok := pickTable(tables, table)
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNoTable, name)
	}

	keys := headerKeys(t.Header)
	records := make([]document.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		if blank(row) {
			continue
		}
		records = append(records, rowRecord(keys, row))
	}

	ds, err := newDataset(name, keys, records)
	if err != nil {
		return nil, err
	}
	// header cells are already display labels
	for i := range ds.Columns {
		ds.Columns[i].Label = keys[i]
	}
	if t.Caption != "" {
		ds.Name = t.Caption
	}
	return ds, nil
}

func pickTable(tables []htmlparser.Table, sel string) (htmlparser.Table, bool) {
	if len(tables) == 0 {
		return htmlparser.Table{}, false
	}
	if sel == "" {
		return tables[0], len(tables[0].Header) > 0
	}
	for _, t := range tables {
		if t.ID == sel {
			return t, len(t.Header) > 0
		}
	}
	if i, err := strconv.Atoi(sel); err == nil && i >= 0 && i < len(tables) {
		return tables[i], len(tables[i].Header) > 0
	}
	return htmlparser.Table{}, false
}
