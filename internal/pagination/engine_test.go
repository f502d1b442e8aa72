package pagination

import (
	"strconv"
	"testing"
	"time"

	"github.com/primex-melvin/tabledoc/internal/compose"
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/layout"
)

func testEngine(opts Options, params layout.RowParams) *Engine {
	n := 0
	newID := func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
	opts.NewID = newID
	opts.Now = func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }

	e := NewEngine(&compose.Composer{
		Columns:    []document.ColumnDefinition{{Key: "particular"}, {Key: "amount"}},
		Widths:     []float64{300, 200},
		Params:     params,
		MarginLeft: opts.MarginLeft,
		Colors:     compose.DefaultColors(),
		NewID:      newID,
	})
	e.SetOptions(opts)
	return e
}

func rowData(label string, h float64) document.WrappedRowData {
	return document.WrappedRowData{
		Cells: []document.WrappedCellData{
			{ColumnKey: "particular", Lines: []string{label}, LineCount: 1},
			{ColumnKey: "amount", Lines: []string{"1"}, LineCount: 1},
		},
		RowHeight: h,
	}
}

func TestPaginateEmptyWithTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Report"
	params := layout.DefaultRowParams()
	e := testEngine(opts, params)

	pages := e.Paginate(Input{
		Header: rowData("Particular", params.MinHeaderRowHeight),
		Totals: rowData(layout.TotalLabel, params.MinRowHeight),
	})
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want title page + 1 data page", len(pages))
	}
	if pages[0].Elements[0].Text != "Report" {
		t.Errorf("title page starts with %q", pages[0].Elements[0].Text)
	}
	data := pages[1].Elements
	if len(data) != 4 || data[0].Text != "Particular" || data[2].Text != layout.TotalLabel {
		t.Fatalf("data page elements = %+v", data)
	}
	if data[2].Y <= data[0].Y {
		t.Errorf("totals at %v not below header at %v", data[2].Y, data[0].Y)
	}
}

func TestPaginateCapacity(t *testing.T) {
	params := layout.DefaultRowParams()
	params.MinHeaderRowHeight = params.MinRowHeight

	opts := DefaultOptions()
	opts.PageSize = document.PageSizeLegal // 1008pt tall
	opts.MarginTop = 24
	opts.MarginBottom = 24
	opts.IncludeTotals = false
	e := testEngine(opts, params)

	perPage := int(e.AvailableHeight() / params.MinRowHeight)
	if perPage != 40 {
		t.Fatalf("page holds %d rows, want 40", perPage)
	}
	rowsPerPage := perPage - 1 // header takes one row

	in := Input{Header: rowData("Particular", params.MinRowHeight)}
	for i := 0; i < 500; i++ {
		in.Rows = append(in.Rows, rowData("row "+strconv.Itoa(i), params.MinRowHeight))
	}
	pages := e.Paginate(in)

	want := (500 + rowsPerPage - 1) / rowsPerPage
	if len(pages) != want {
		t.Fatalf("got %d pages, want %d", len(pages), want)
	}
	placed := 0
	for _, pg := range pages {
		placed += (len(pg.Elements) - 2) / 2
	}
	if placed != 500 {
		t.Errorf("placed %d rows, want 500", placed)
	}
}

func TestPaginateMarkerPrecedesRow(t *testing.T) {
	params := layout.DefaultRowParams()
	opts := DefaultOptions()
	opts.IncludeHeaders = false
	opts.IncludeTotals = false
	e := testEngine(opts, params)

	in := Input{Markers: []document.RowMarker{{Index: 2, Label: "Health"}}}
	for i := 0; i < 5; i++ {
		in.Rows = append(in.Rows, rowData("record "+strconv.Itoa(i), params.MinRowHeight))
	}
	pages := e.Paginate(in)
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}

	els := pages[0].Elements
	for i, el := range els {
		if el.Text != "Health" {
			continue
		}
		if i+1 >= len(els) || els[i+1].Text != "record 2" {
			t.Fatalf("marker not followed by record 2")
		}
		if els[i+1].Y-el.Y != params.MinRowHeight {
			t.Errorf("marker occupies %v, want %v", els[i+1].Y-el.Y, params.MinRowHeight)
		}
		return
	}
	t.Fatal("marker element not found")
}

func TestTemplates(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "Budget"
	e := testEngine(opts, layout.DefaultRowParams())

	header, footer := e.Templates()
	if header.Render(1, 3) != "Budget" {
		t.Errorf("header = %q", header.Render(1, 3))
	}
	if got := footer.Render(2, 7); got != "Page 2 of 7" {
		t.Errorf("footer = %q, want %q", got, "Page 2 of 7")
	}
}

func TestAvailableArea(t *testing.T) {
	opts := DefaultOptions()
	opts.PageSize = document.PageSizeLetter
	opts.Orientation = document.OrientationLandscape
	e := testEngine(opts, layout.DefaultRowParams())

	if got := e.AvailableWidth(); got != 792-80 {
		t.Errorf("AvailableWidth = %v, want %v", got, 792-80)
	}
	if got := e.AvailableHeight(); got != 612-80 {
		t.Errorf("AvailableHeight = %v, want %v", got, 612-80)
	}
}
