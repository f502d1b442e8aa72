package layout

import (
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/text"
)

// TotalLabel is rendered in the first visible column of the totals row
const TotalLabel = "TOTAL"

// Measurer runs the measuring phase of a conversion: it turns records into
// wrapped rows for a fixed set of visible columns and widths.
type Measurer struct {
	Metrics        text.Metrics
	Params         RowParams
	Columns        []document.ColumnDefinition
	Widths         []float64
	CurrencySymbol string
}

func (m *Measurer) cells(textFor func(i int, col document.ColumnDefinition) string) []Cell {
	cells := make([]Cell, len(m.Columns))
	for i, col := range m.Columns {
		cells[i] = Cell{
			Key:   col.Key,
			Text:  textFor(i, col),
			Width: m.Widths[i],
		}
		if i == 0 {
			cells[i].Inset = m.Params.FirstColumnInset
		}
	}
	return cells
}

// Header wraps the column labels
func (m *Measurer) Header() document.WrappedRowData {
	return WrapHeader(m.Metrics, m.cells(func(_ int, col document.ColumnDefinition) string {
		return col.Label
	}), m.Params)
}

// CellText is the formatted text of one record cell
func (m *Measurer) CellText(rec document.Record, col document.ColumnDefinition) string {
	v, ok := rec[col.Key]
	if !ok {
		return document.Placeholder
	}
	return document.FormatValue(v, col.Kind, m.CurrencySymbol)
}

// Row wraps a single record
func (m *Measurer) Row(rec document.Record) document.WrappedRowData {
	return WrapRow(m.Metrics, m.cells(func(_ int, col document.ColumnDefinition) string {
		return m.CellText(rec, col)
	}), m.Params)
}

// Measure wraps every record, in order
func (m *Measurer) Measure(records []document.Record) []document.WrappedRowData {
	rows := make([]document.WrappedRowData, len(records))
	for i, rec := range records {
		rows[i] = m.Row(rec)
	}
	return rows
}

// Totals wraps the totals row. The first column reads TOTAL; columns
// without a total are blank.
func (m *Measurer) Totals(totals document.Totals) document.WrappedRowData {
	return WrapTotals(m.Metrics, m.cells(func(i int, col document.ColumnDefinition) string {
		if i == 0 {
			return TotalLabel
		}
		if v, ok := totals[col.Key]; ok {
			return document.FormatTotal(v, col.Kind, m.CurrencySymbol)
		}
		return ""
	}), m.Params)
}
