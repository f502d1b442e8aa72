// Package compose turns measured rows into positioned text elements.
package compose

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/layout"
)

// Colors used by the composer
type Colors struct {
	Text   string
	Header string
	Marker string
	Totals string
	Title  string
	Muted  string
}

// DefaultColors returns the default palette
func DefaultColors() Colors {
	return Colors{
		Text:   "#111827",
		Header: "#000000",
		Marker: "#1F2937",
		Totals: "#000000",
		Title:  "#111827",
		Muted:  "#6B7280",
	}
}

// Composer emits the text elements of header, data, marker, totals and
// title rows. Columns and Widths are the visible columns and their
// allocated widths.
type Composer struct {
	Columns    []document.ColumnDefinition
	Widths     []float64
	Params     layout.RowParams
	MarginLeft float64
	Colors     Colors

	// GroupID and GroupName tag every element with the table it belongs to
	GroupID   string
	GroupName string

	// NewID generates element ids. Defaults to uuid.NewString.
	NewID func() string
}

func (c *Composer) id() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}

// TableWidth is the summed width of all visible columns
func (c *Composer) TableWidth() float64 {
	total := 0.0
	for _, w := range c.Widths {
		total += w
	}
	return total
}

func (c *Composer) element(x, y, w, h float64, s string) document.TextElement {
	return document.TextElement{
		ID:         c.id(),
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Text:       s,
		FontSize:   c.Params.FontSize,
		FontFamily: c.Params.FontFamily,
		Color:      c.Colors.Text,
		Align:      document.AlignLeft,
		Visible:    true,
		GroupID:    c.GroupID,
		GroupName:  c.GroupName,
	}
}

// cells lays out one element per visible column. The horizontal cursor
// advances by the full column width so columns stay contiguous.
func (c *Composer) cells(row document.WrappedRowData, y float64, style func(*document.TextElement, document.ColumnDefinition)) []document.TextElement {
	pad := c.Params.TextPadding
	elements := make([]document.TextElement, 0, len(c.Columns))
	x := c.MarginLeft
	for i, col := range c.Columns {
		inset := 0.0
		if i == 0 {
			inset = c.Params.FirstColumnInset
		}
		var lines []string
		if cell, ok := row.Cell(col.Key); ok {
			lines = cell.Lines
		}
		el := c.element(
			x+pad+inset,
			y+pad,
			c.Widths[i]-2*pad-inset,
			row.RowHeight-2*pad,
			strings.Join(lines, "\n"),
		)
		if col.Align != "" {
			el.Align = col.Align
		}
		style(&el, col)
		elements = append(elements, el)
		x += c.Widths[i]
	}
	return elements
}

// Header emits the header row with its top edge at y
func (c *Composer) Header(row document.WrappedRowData, y float64) []document.TextElement {
	return c.cells(row, y, func(el *document.TextElement, _ document.ColumnDefinition) {
		el.Bold = true
		el.Color = c.Colors.Header
	})
}

// Row emits a data row with its top edge at y
func (c *Composer) Row(row document.WrappedRowData, y float64) []document.TextElement {
	return c.cells(row, y, func(*document.TextElement, document.ColumnDefinition) {})
}

// Totals emits the totals row with its top edge at y
func (c *Composer) Totals(row document.WrappedRowData, y float64) []document.TextElement {
	return c.cells(row, y, func(el *document.TextElement, _ document.ColumnDefinition) {
		el.Bold = true
		el.Color = c.Colors.Totals
	})
}

// Marker emits a category marker as a single element spanning the table
func (c *Composer) Marker(label string, y float64) document.TextElement {
	pad := c.Params.TextPadding
	inset := c.Params.FirstColumnInset
	el := c.element(
		c.MarginLeft+pad+inset,
		y+pad,
		math.Max(0, c.TableWidth()-2*pad-inset),
		c.Params.MinRowHeight-2*pad,
		label,
	)
	el.Bold = true
	el.Italic = true
	el.Color = c.Colors.Marker
	return el
}

// TitleBlock emits the centered title, optional subtitle and generated-on
// line of a title page
func (c *Composer) TitleBlock(title, subtitle string, generated time.Time, pageWidth, pageHeight float64) []document.TextElement {
	const (
		titleSize    = 24
		subtitleSize = 14
		dateSize     = 10
	)
	width := pageWidth - 2*c.MarginLeft
	y := pageHeight * 0.35

	heading := c.element(c.MarginLeft, y, width, titleSize*c.Params.LineHeight, title)
	heading.FontSize = titleSize
	heading.Bold = true
	heading.Align = document.AlignCenter
	heading.Color = c.Colors.Title
	elements := []document.TextElement{heading}
	y += heading.Height + 12

	if subtitle != "" {
		sub := c.element(c.MarginLeft, y, width, subtitleSize*c.Params.LineHeight, subtitle)
		sub.FontSize = subtitleSize
		sub.Align = document.AlignCenter
		sub.Color = c.Colors.Muted
		elements = append(elements, sub)
		y += sub.Height + 12
	}

	date := c.element(c.MarginLeft, y, width, dateSize*c.Params.LineHeight,
		"Generated on "+generated.Format("January 2, 2006"))
	date.FontSize = dateSize
	date.Italic = true
	date.Align = document.AlignCenter
	date.Color = c.Colors.Muted
	return append(elements, date)
}
