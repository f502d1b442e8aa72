package api

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/text"
)

var fixedTime = time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)

func testConverter(opts ...Option) *Converter {
	n := 0
	base := []Option{
		WithMetrics(text.ApproxMetrics{}),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string {
			n++
			return "id-" + strconv.Itoa(n)
		}),
	}
	return New(append(base, opts...)...)
}

func budgetTable(n int) Table {
	cols := []ColumnDefinition{
		{Key: "particular", Label: "Particular", Align: document.AlignLeft},
		{Key: "category", Label: "Category"},
		{Key: "implementingOffice", Label: "Implementing Office"},
		{Key: "totalBudgetAllocated", Label: "Allocated", Align: document.AlignRight, Kind: document.KindCurrency},
		{Key: "utilizationRate", Label: "Utilization", Align: document.AlignRight, Kind: document.KindPercent},
	}
	categories := []string{"Education", "Health", "Infrastructure"}
	records := make([]Record, n)
	for i := range records {
		particular := "Project " + strconv.Itoa(i+1)
		if i%7 == 3 {
			particular += " including the rehabilitation of access roads, drainage, perimeter fencing and site development works"
		}
		records[i] = Record{
			"particular":           document.String(particular),
			"category":             document.String(categories[i*len(categories)/max(n, 1)]),
			"implementingOffice":   document.String("Municipal Engineering Office"),
			"totalBudgetAllocated": document.Number(float64(100000 * (i + 1))),
			"utilizationRate":      document.Number(float64(i % 100)),
		}
	}
	return Table{
		Records:       records,
		Columns:       cols,
		HiddenColumns: []string{"category"},
		Totals:        document.ComputeTotals(records, cols),
		Markers:       document.GroupMarkers(records, "category"),
	}
}

func dataRows(result *ConversionResult) int {
	rows := 0
	for _, page := range result.Pages {
		for _, el := range page.Elements {
			if strings.HasPrefix(el.Text, "Project ") {
				rows++
			}
		}
	}
	return rows
}

func TestConvertConservesRows(t *testing.T) {
	c := testConverter()
	table := budgetTable(120)
	result := c.Convert(table)

	if result.Metadata.TotalRows != 120 {
		t.Errorf("TotalRows = %d, want 120", result.Metadata.TotalRows)
	}
	if result.Metadata.TotalPages != len(result.Pages) {
		t.Errorf("TotalPages = %d, pages = %d", result.Metadata.TotalPages, len(result.Pages))
	}
	if result.Metadata.ColumnCount != 4 {
		t.Errorf("ColumnCount = %d, want 4 (category hidden)", result.Metadata.ColumnCount)
	}
	if got := dataRows(result); got != 120 {
		t.Errorf("placed %d data rows, want 120", got)
	}
	if !result.Metadata.CreatedAt.Equal(fixedTime) {
		t.Errorf("CreatedAt = %v", result.Metadata.CreatedAt)
	}
}

func TestConvertPagesStayInsideMargins(t *testing.T) {
	c := testConverter()
	result := c.Convert(budgetTable(200))
	o := c.Options()
	w, h := document.Dimensions(o.PageSize, o.PageOrientation)

	for i, page := range result.Pages {
		for _, el := range page.Elements {
			if el.X < o.MarginLeft || el.X+el.Width > w-o.MarginRight+1e-6 {
				t.Errorf("page %d: element %q outside horizontal margins", i, el.Text)
			}
			// an oversized lone row is the only thing allowed past the bottom margin
			if el.Y < o.MarginTop || el.Y+el.Height > h-o.MarginBottom+1e-6 {
				t.Errorf("page %d: element %q outside vertical margins", i, el.Text)
			}
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	table := budgetTable(80)
	a := testConverter(WithTitle("Budget")).Convert(table)
	b := testConverter(WithTitle("Budget")).Convert(table)

	if len(a.Pages) != len(b.Pages) {
		t.Fatalf("page counts differ: %d vs %d", len(a.Pages), len(b.Pages))
	}
	for i := range a.Pages {
		ea, eb := a.Pages[i].Elements, b.Pages[i].Elements
		if len(ea) != len(eb) {
			t.Fatalf("page %d element counts differ", i)
		}
		for j := range ea {
			x, y := ea[j], eb[j]
			if x.X != y.X || x.Y != y.Y || x.Width != y.Width || x.Height != y.Height || x.Text != y.Text {
				t.Fatalf("page %d element %d differs: %+v vs %+v", i, j, x, y)
			}
		}
	}
}

func TestConvertEmptyTableWithTitle(t *testing.T) {
	table := budgetTable(0)
	table.Totals = Totals{}
	result := testConverter(WithTitle("Report")).Convert(table)

	if len(result.Pages) != 2 {
		t.Fatalf("got %d pages, want title page + 1 data page", len(result.Pages))
	}
	var texts []string
	for _, el := range result.Pages[1].Elements {
		texts = append(texts, el.Text)
	}
	joined := strings.Join(texts, "|")
	if !strings.HasPrefix(joined, "Particular|") || !strings.Contains(joined, "TOTAL") {
		t.Errorf("data page = %q", joined)
	}
}

func TestConvertWithoutHeadersOrTotals(t *testing.T) {
	result := testConverter(WithHeaders(false), WithTotals(false)).Convert(budgetTable(3))
	for _, el := range result.Pages[0].Elements {
		if el.Text == "Particular" || el.Text == "TOTAL" {
			t.Errorf("unexpected element %q", el.Text)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	c := testConverter(WithTitle("Budget"), WithAuthor("Budget Office"))
	var buf bytes.Buffer
	if err := c.ConvertToPDF(budgetTable(60), &buf); err != nil {
		t.Fatalf("ConvertToPDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
}

func TestRenderHTML(t *testing.T) {
	c := testConverter(WithTitle("Budget <2024>"))
	result := c.Convert(budgetTable(10))

	var buf bytes.Buffer
	if err := c.RenderHTML(result, &buf); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, `class="page"`); got != len(result.Pages) {
		t.Errorf("got %d page divs, want %d", got, len(result.Pages))
	}
	if !strings.Contains(out, "Budget &lt;2024&gt;") {
		t.Error("title is not escaped")
	}
	if !strings.Contains(out, "Page 1 of "+strconv.Itoa(len(result.Pages))) {
		t.Error("footer missing")
	}
}

func TestWriteJSON(t *testing.T) {
	c := testConverter()
	result := c.Convert(budgetTable(5))

	var buf bytes.Buffer
	if err := c.WriteJSON(result, &buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var decoded ConversionResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Metadata.TotalRows != 5 || len(decoded.Pages) != len(result.Pages) {
		t.Errorf("decoded metadata = %+v", decoded.Metadata)
	}
}

func TestConvertToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	c := testConverter()
	for _, name := range []string{"report.pdf", "report.html", "report.json"} {
		path := filepath.Join(dir, name)
		if err := c.ConvertToFile(budgetTable(15), path); err != nil {
			t.Fatalf("ConvertToFile(%s) failed: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestWithOptionDoesNotMutate(t *testing.T) {
	c := New()
	landscape := c.SetOrientation(PageOrientationLandscape)
	if c.Options().PageOrientation != PageOrientationPortrait {
		t.Error("original converter was modified")
	}
	if landscape.Options().PageOrientation != PageOrientationLandscape {
		t.Error("option not applied")
	}
}
