package pagination

import (
	"testing"

	"github.com/primex-melvin/tabledoc/internal/document"
)

func uniform(n int, h float64) []float64 {
	hs := make([]float64, n)
	for i := range hs {
		hs[i] = h
	}
	return hs
}

func TestPlanCapacity(t *testing.T) {
	const (
		row    = 24.0
		header = 24.0
		perPg  = 40 // header-inclusive rows per page
	)
	p := &Paginator{Top: 40, Available: perPg * row, MarkerHeight: row}
	rows := perPg - 1

	pages := p.Plan(Plan{HeaderHeight: header, RowHeights: uniform(500, row)})
	want := (500 + rows - 1) / rows
	if len(pages) != want {
		t.Fatalf("got %d pages, want %d", len(pages), want)
	}
	for i, pg := range pages[:len(pages)-1] {
		if pg.Rows() != rows {
			t.Errorf("page %d holds %d rows, want %d", i, pg.Rows(), rows)
		}
	}
}

func TestPlanInvariants(t *testing.T) {
	heights := []float64{24, 60, 24, 300, 24, 24, 110, 24, 24, 24, 500, 24}
	p := &Paginator{Top: 36, Available: 400, MarkerHeight: 24}
	markers := map[int][]int{0: {0}, 5: {1, 2}, 11: {3}}

	pages := p.Plan(Plan{HeaderHeight: 28, RowHeights: heights, Markers: markers, TotalsHeight: 24, IncludeTotals: true})

	seen := make([]int, len(heights))
	for i, pg := range pages {
		if pg.Used > p.Available && pg.Rows() != 1 {
			t.Errorf("page %d uses %v of %v with %d rows", i, pg.Used, p.Available, pg.Rows())
		}
		y := p.Top
		for _, s := range pg.Slots {
			if s.Y != y {
				t.Errorf("page %d slot at %v, want %v", i, s.Y, y)
			}
			y += s.Height
			if s.Kind == SlotRow {
				seen[s.Index]++
			}
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("row %d placed %d times", i, n)
		}
	}

	// rows are placed in order
	last := -1
	for _, pg := range pages {
		for _, s := range pg.Slots {
			if s.Kind == SlotRow {
				if s.Index != last+1 {
					t.Fatalf("row %d follows row %d", s.Index, last)
				}
				last = s.Index
			}
		}
	}
}

func TestPlanOversizedRowAlone(t *testing.T) {
	p := &Paginator{Top: 0, Available: 100, MarkerHeight: 24}
	pages := p.Plan(Plan{HeaderHeight: 20, RowHeights: []float64{30, 250, 30}})
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	if pages[1].Rows() != 1 || pages[1].Slots[1].Index != 1 {
		t.Errorf("oversized row not alone: %+v", pages[1])
	}
}

func TestPlanEmpty(t *testing.T) {
	p := &Paginator{Top: 40, Available: 700, MarkerHeight: 24}

	pages := p.Plan(Plan{HeaderHeight: 28, TotalsHeight: 24, IncludeTotals: true})
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	slots := pages[0].Slots
	if len(slots) != 2 || slots[0].Kind != SlotHeader || slots[1].Kind != SlotTotals || slots[1].Y != 68 {
		t.Errorf("slots = %+v", slots)
	}

	if pages := p.Plan(Plan{}); len(pages) != 1 || len(pages[0].Slots) != 0 {
		t.Errorf("no header, rows or totals: %+v", pages)
	}
}

func TestPlanTotalsOverflow(t *testing.T) {
	p := &Paginator{Top: 40, Available: 100, MarkerHeight: 24}
	pages := p.Plan(Plan{HeaderHeight: 28, RowHeights: []float64{24, 24, 24}, TotalsHeight: 24, IncludeTotals: true})
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	last := pages[1]
	if len(last.Slots) != 1 || last.Slots[0].Kind != SlotTotals || last.Slots[0].Y != 40 {
		t.Errorf("overflow page = %+v", last)
	}

	// exactly fitting totals stay on the page
	pages = p.Plan(Plan{HeaderHeight: 28, RowHeights: []float64{24, 24}, TotalsHeight: 24, IncludeTotals: true})
	if len(pages) != 1 {
		t.Errorf("got %d pages, want 1", len(pages))
	}
}

func TestPlanMarkerMovesWithRow(t *testing.T) {
	// header 20 + 3 rows of 20 = 80; marker + row 3 = 40 does not fit in 100
	p := &Paginator{Top: 0, Available: 100, MarkerHeight: 20}
	pages := p.Plan(Plan{HeaderHeight: 20, RowHeights: uniform(5, 20), Markers: map[int][]int{3: {0}}})
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	s := pages[1].Slots
	if s[0].Kind != SlotHeader || s[1].Kind != SlotMarker || s[2].Kind != SlotRow || s[2].Index != 3 {
		t.Errorf("second page slots = %+v", s)
	}
}

func TestMarkerIndex(t *testing.T) {
	idx := markerIndex([]document.RowMarker{
		{Index: 0, Label: "a"},
		{Index: 2, Label: "b"},
		{Index: 2, Label: "c"},
		{Index: 9, Label: "out of range"},
		{Index: -1, Label: "negative"},
	}, 5)
	if len(idx) != 2 || len(idx[0]) != 1 || len(idx[2]) != 2 || idx[2][1] != 2 {
		t.Errorf("markerIndex = %v", idx)
	}
}
