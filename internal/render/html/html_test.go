package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/primex-melvin/tabledoc/internal/document"
)

func TestRender(t *testing.T) {
	result := &document.ConversionResult{
		Header: document.HeaderFooter{Text: "Budget", FontSize: 8, Align: document.AlignLeft, Height: 20},
		Footer: document.HeaderFooter{Text: document.FooterTemplate, FontSize: 8, Align: document.AlignCenter, Height: 20},
	}
	for i := 0; i < 2; i++ {
		result.Pages = append(result.Pages, document.Page{
			ID:              "p" + string(rune('1'+i)),
			Size:            document.PageSizeA4,
			Orientation:     document.OrientationPortrait,
			BackgroundColor: "#FEF3C7",
			Elements: []document.TextElement{
				{ID: "a", X: 40, Y: 40, Width: 100, Height: 20, Text: "Roads & Bridges", Bold: true, Visible: true, Align: document.AlignLeft, GroupID: "table-1"},
				{ID: "b", X: 40, Y: 60, Width: 100, Height: 20, Text: "secret", Visible: false},
			},
		})
	}

	r := NewRenderer()
	var buf bytes.Buffer
	if err := r.Render(result, &buf, ""); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	checks := []string{
		"<!DOCTYPE html>",
		"<title>Document</title>",
		"Roads &amp; Bridges",
		"Page 1 of 2",
		"Page 2 of 2",
		"background:#FEF3C7",
		"font-weight:bold",
		`data-group="table-1"`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := strings.Count(out, `class="page"`); got != 2 {
		t.Errorf("got %d pages, want 2", got)
	}
	if strings.Contains(out, "secret") {
		t.Error("invisible element was rendered")
	}
}

func TestRenderWithoutBackgrounds(t *testing.T) {
	result := &document.ConversionResult{Pages: []document.Page{{
		Size:            document.PageSizeLetter,
		Orientation:     document.OrientationLandscape,
		BackgroundColor: "#000000",
	}}}
	r := NewRenderer()
	r.RenderBackgrounds = false
	r.DebugDrawBoxes = true

	var buf bytes.Buffer
	if err := r.Render(result, &buf, "Preview"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "background:#FFFFFF") || strings.Contains(out, "background:#000000") {
		t.Error("page background should fall back to white")
	}
	if !strings.Contains(out, `<body class="debug">`) {
		t.Error("debug class missing")
	}
	// letter landscape is 792 x 612
	if !strings.Contains(out, "width:792.00px;height:612.00px") {
		t.Error("landscape dimensions not applied")
	}
}

func TestRenderNil(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer().Render(nil, &buf, ""); err == nil {
		t.Error("expected an error")
	}
}
