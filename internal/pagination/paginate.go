package pagination

import (
	"github.com/primex-melvin/tabledoc/internal/document"
)

// SlotKind identifies what occupies a slot on a page
type SlotKind int

const (
	SlotHeader SlotKind = iota
	SlotMarker
	SlotRow
	SlotTotals
)

// Slot is one horizontal band of a page
type Slot struct {
	Kind SlotKind
	// Index is the record index for rows, the marker index for markers
	// and -1 otherwise
	Index  int
	Y      float64
	Height float64
}

// PagePlan lists the slots of one data page, top to bottom
type PagePlan struct {
	Slots []Slot
	// Used is the content height consumed by the slots
	Used float64
}

// Rows returns how many data rows the page holds
func (p PagePlan) Rows() int {
	n := 0
	for _, s := range p.Slots {
		if s.Kind == SlotRow {
			n++
		}
	}
	return n
}

func (p *PagePlan) add(kind SlotKind, index int, top, height float64) {
	p.Slots = append(p.Slots, Slot{Kind: kind, Index: index, Y: top + p.Used, Height: height})
	p.Used += height
}

// Paginator decides which rows land on which page
type Paginator struct {
	// Top is the y coordinate content starts at
	Top float64
	// Available is the content height of a page
	Available float64
	// MarkerHeight is the height a category marker takes
	MarkerHeight float64
}

// Plan is the input of Paginator.Plan: heights only
type Plan struct {
	// HeaderHeight is zero when no header is repeated
	HeaderHeight float64
	RowHeights   []float64
	// Markers are grouped by the record index they precede
	Markers map[int][]int
	// TotalsHeight is only used when IncludeTotals is set
	TotalsHeight  float64
	IncludeTotals bool
}

// Plan distributes rows over pages. A page break only ever happens between
// rows. A row that alone exceeds the page is still placed, alone, on its
// own page. Markers are placed together with the row they precede.
func (p *Paginator) Plan(in Plan) []PagePlan {
	var pages []PagePlan
	rowsOnPage := 0

	open := func() {
		pages = append(pages, PagePlan{})
		rowsOnPage = 0
		if in.HeaderHeight > 0 {
			pages[len(pages)-1].add(SlotHeader, -1, p.Top, in.HeaderHeight)
		}
	}

	open()
	for i, h := range in.RowHeights {
		markers := in.Markers[i]
		required := h + float64(len(markers))*p.MarkerHeight
		if pages[len(pages)-1].Used+required > p.Available && rowsOnPage > 0 {
			open()
		}
		page := &pages[len(pages)-1]
		for _, m := range markers {
			page.add(SlotMarker, m, p.Top, p.MarkerHeight)
		}
		page.add(SlotRow, i, p.Top, h)
		rowsOnPage++
	}

	if in.IncludeTotals {
		page := &pages[len(pages)-1]
		fits := page.Used+in.TotalsHeight <= p.Available
		if !fits && len(page.Slots) > 0 {
			pages = append(pages, PagePlan{})
			page = &pages[len(pages)-1]
		}
		page.add(SlotTotals, -1, p.Top, in.TotalsHeight)
	}
	return pages
}

// markerIndex groups markers by the record they precede. Markers outside
// [0, rows) are dropped.
func markerIndex(markers []document.RowMarker, rows int) map[int][]int {
	idx := make(map[int][]int)
	for i, m := range markers {
		if m.Index < 0 || m.Index >= rows {
			continue
		}
		idx[m.Index] = append(idx[m.Index], i)
	}
	return idx
}
