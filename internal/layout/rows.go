package layout

import (
	"math"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/text"
)

// RowParams are the typographic constants rows are measured with
type RowParams struct {
	FontSize   float64
	FontFamily string
	// TextPadding insets text from every cell edge
	TextPadding        float64
	MinRowHeight       float64
	MinHeaderRowHeight float64
	// LineHeight is the line height as a multiple of the font size
	LineHeight float64
	// FirstColumnInset moves the first column's text further right
	// without changing the column's layout width
	FirstColumnInset float64
}

// DefaultRowParams returns the default typography
func DefaultRowParams() RowParams {
	return RowParams{
		FontSize:           9,
		FontFamily:         "Helvetica",
		TextPadding:        4,
		MinRowHeight:       24,
		MinHeaderRowHeight: 28,
		LineHeight:         1.2,
		FirstColumnInset:   8,
	}
}

// Cell is one cell's text and the layout width of its column
type Cell struct {
	Key   string
	Text  string
	Width float64
	// Inset is subtracted from the text width on top of the padding
	Inset float64
}

// WrapRow wraps a data row's cells and computes its height
func WrapRow(m text.Metrics, cells []Cell, p RowParams) document.WrappedRowData {
	return wrapCells(m, cells, p, false, p.MinRowHeight)
}

// WrapHeader is WrapRow for the header row: it measures bold text and is
// floored at MinHeaderRowHeight
func WrapHeader(m text.Metrics, cells []Cell, p RowParams) document.WrappedRowData {
	return wrapCells(m, cells, p, true, p.MinHeaderRowHeight)
}

// WrapTotals wraps the bold totals row, floored at MinRowHeight
func WrapTotals(m text.Metrics, cells []Cell, p RowParams) document.WrappedRowData {
	return wrapCells(m, cells, p, true, p.MinRowHeight)
}

func wrapCells(m text.Metrics, cells []Cell, p RowParams, bold bool, minHeight float64) document.WrappedRowData {
	f := text.Font{Family: p.FontFamily, Size: p.FontSize, Bold: bold}
	row := document.WrappedRowData{Cells: make([]document.WrappedCellData, 0, len(cells))}
	maxLines := 0
	for _, c := range cells {
		available := c.Width - 2*p.TextPadding - c.Inset
		lines := text.Wrap(m, c.Text, available, f)
		row.Cells = append(row.Cells, document.WrappedCellData{
			ColumnKey: c.Key,
			Lines:     lines,
			LineCount: len(lines),
		})
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	row.RowHeight = RowHeight(maxLines, p, minHeight)
	return row
}

// RowHeight is the height a row with the given number of lines needs
func RowHeight(lines int, p RowParams, minHeight float64) float64 {
	h := float64(lines)*p.FontSize*p.LineHeight + 2*p.TextPadding
	return math.Max(minHeight, h)
}
