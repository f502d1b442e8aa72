// Package document holds the data model shared by every stage of the
// table-to-page conversion: the input records and column schema, the wrapped
// row measurements, and the positioned pages produced at the end.
package document

import (
	"strconv"
	"strings"
	"time"
)

// Alignment is the horizontal alignment of a column's text
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Record is one tabular input row keyed by column key
type Record map[string]Value

// ColumnDefinition describes one table column.
// The order of a []ColumnDefinition is the column order on the page.
type ColumnDefinition struct {
	Key        string    `json:"key" yaml:"key"`
	Label      string    `json:"label" yaml:"label"`
	Align      Alignment `json:"align,omitempty" yaml:"align,omitempty"`
	Sortable   bool      `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Filterable bool      `json:"filterable,omitempty" yaml:"filterable,omitempty"`
	// Kind selects how cell values are formatted
	Kind ValueKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Weight overrides the allocator's lookup table when > 0
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// RowMarker is a category separator rendered before the record at Index
type RowMarker struct {
	Index int    `json:"index" yaml:"index"`
	Label string `json:"label" yaml:"label"`
}

// Totals maps a column key to its pre-aggregated value
type Totals map[string]float64

// WrappedCellData is one cell's text wrapped to its column width
type WrappedCellData struct {
	ColumnKey string   `json:"columnKey"`
	Lines     []string `json:"lines"`
	LineCount int      `json:"lineCount"`
}

// WrappedRowData is a fully measured row. Cells follow visible column order.
type WrappedRowData struct {
	Cells     []WrappedCellData `json:"cells"`
	RowHeight float64           `json:"rowHeight"`
}

// Cell returns the wrapped cell for a column key
func (r WrappedRowData) Cell(key string) (WrappedCellData, bool) {
	for _, c := range r.Cells {
		if c.ColumnKey == key {
			return c, true
		}
	}
	return WrappedCellData{}, false
}

// TextElement is a positioned, sized and styled string on a page
type TextElement struct {
	ID         string    `json:"id"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Text       string    `json:"text"`
	FontSize   float64   `json:"fontSize"`
	FontFamily string    `json:"fontFamily"`
	Bold       bool      `json:"bold"`
	Italic     bool      `json:"italic"`
	Color      string    `json:"color"`
	Align      Alignment `json:"align"`
	Visible    bool      `json:"visible"`
	GroupID    string    `json:"groupId,omitempty"`
	GroupName  string    `json:"groupName,omitempty"`
}

// Page is one physical output page
type Page struct {
	ID              string        `json:"id"`
	Size            PageSize      `json:"size"`
	Orientation     Orientation   `json:"orientation"`
	Elements        []TextElement `json:"elements"`
	BackgroundColor string        `json:"backgroundColor"`
}

// HeaderFooter is a page-level template repeated by the renderer on every page
type HeaderFooter struct {
	Text       string    `json:"text"`
	FontSize   float64   `json:"fontSize"`
	FontFamily string    `json:"fontFamily"`
	Align      Alignment `json:"align"`
	Height     float64   `json:"height"`
}

// Metadata summarises a conversion run
type Metadata struct {
	TotalPages  int         `json:"totalPages"`
	TotalRows   int         `json:"totalRows"`
	CreatedAt   time.Time   `json:"createdAt"`
	PageSize    PageSize    `json:"pageSize"`
	Orientation Orientation `json:"orientation"`
	ColumnCount int         `json:"columnCount"`
}

// ConversionResult is the output of one conversion
type ConversionResult struct {
	Pages    []Page       `json:"pages"`
	Header   HeaderFooter `json:"header"`
	Footer   HeaderFooter `json:"footer"`
	Metadata Metadata     `json:"metadata"`
}

// FooterTemplate is the default footer text. {n} and {total} are replaced
// by the renderer for each page.
const FooterTemplate = "Page {n} of {total}"

// Render substitutes the page number placeholders in the template text
func (h HeaderFooter) Render(n, total int) string {
	return strings.NewReplacer(
		"{n}", strconv.Itoa(n),
		"{total}", strconv.Itoa(total),
	).Replace(h.Text)
}
