// Package html renders a conversion result as a static HTML preview with
// every page drawn as an absolutely positioned sheet.
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/primex-melvin/tabledoc/internal/document"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const stylesheet = `body{margin:0;padding:24px;background:#E5E7EB;font-family:Helvetica,Arial,sans-serif}
.page{position:relative;margin:0 auto 24px;box-shadow:0 1px 4px rgba(0,0,0,.2);overflow:hidden}
.el{position:absolute;white-space:pre;overflow:hidden;box-sizing:border-box}
.hf{position:absolute;color:#6B7280;white-space:nowrap}
.debug .el{outline:1px solid red}`

// Renderer writes HTML previews
type Renderer struct {
	RenderBackgrounds bool
	DebugDrawBoxes    bool
	// LineHeight is the line height multiple used for wrapped text
	LineHeight float64
}

// NewRenderer creates a new HTML renderer
func NewRenderer() *Renderer {
	return &Renderer{
		RenderBackgrounds: true,
		LineHeight:        1.2,
	}
}

// Render writes result as a standalone HTML document
func (r *Renderer) Render(result *document.ConversionResult, w io.Writer, title string) error {
	if result == nil {
		return fmt.Errorf("nothing to render")
	}
	if title == "" {
		title = "Document"
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, nil)
	doc.AppendChild(root)

	head := element(atom.Head, nil)
	head.AppendChild(element(atom.Meta, []html.Attribute{{Key: "charset", Val: "utf-8"}}))
	titleNode := element(atom.Title, nil)
	titleNode.AppendChild(textNode(title))
	head.AppendChild(titleNode)
	style := element(atom.Style, nil)
	style.AppendChild(textNode(stylesheet))
	head.AppendChild(style)
	root.AppendChild(head)

	var bodyAttr []html.Attribute
	if r.DebugDrawBoxes {
		bodyAttr = append(bodyAttr, html.Attribute{Key: "class", Val: "debug"})
	}
	body := element(atom.Body, bodyAttr)
	root.AppendChild(body)

	total := len(result.Pages)
	for i, page := range result.Pages {
		body.AppendChild(r.page(page, result.Header, result.Footer, i+1, total))
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}

func (r *Renderer) page(page document.Page, header, footer document.HeaderFooter, n, total int) *html.Node {
	w, h := document.Dimensions(page.Size, page.Orientation)
	css := []string{"width:" + px(w), "height:" + px(h)}
	bg := "#FFFFFF"
	if r.RenderBackgrounds && page.BackgroundColor != "" {
		bg = page.BackgroundColor
	}
	css = append(css, "background:"+bg)

	div := element(atom.Div, []html.Attribute{
		{Key: "class", Val: "page"},
		{Key: "id", Val: "page-" + page.ID},
		{Key: "style", Val: strings.Join(css, ";")},
	})

	for _, el := range page.Elements {
		if !el.Visible {
			continue
		}
		div.AppendChild(r.textElement(el))
	}

	if s := header.Render(n, total); s != "" {
		div.AppendChild(templateLine(s, header, 0, w, "top:"+px(header.Height/2)))
	}
	if s := footer.Render(n, total); s != "" {
		div.AppendChild(templateLine(s, footer, 0, w, "bottom:"+px(footer.Height/2)))
	}
	return div
}

func (r *Renderer) textElement(el document.TextElement) *html.Node {
	css := []string{
		"left:" + px(el.X),
		"top:" + px(el.Y),
		"width:" + px(el.Width),
		"height:" + px(el.Height),
		"font-size:" + px(el.FontSize),
		"line-height:" + strconv.FormatFloat(r.LineHeight, 'f', -1, 64),
		"text-align:" + string(el.Align),
	}
	if el.FontFamily != "" {
		css = append(css, "font-family:"+el.FontFamily)
	}
	if el.Bold {
		css = append(css, "font-weight:bold")
	}
	if el.Italic {
		css = append(css, "font-style:italic")
	}
	if el.Color != "" {
		css = append(css, "color:"+el.Color)
	}

	attrs := []html.Attribute{
		{Key: "class", Val: "el"},
		{Key: "id", Val: el.ID},
		{Key: "style", Val: strings.Join(css, ";")},
	}
	if el.GroupID != "" {
		attrs = append(attrs, html.Attribute{Key: "data-group", Val: el.GroupID})
	}
	div := element(atom.Div, attrs)
	div.AppendChild(textNode(el.Text))
	return div
}

// templateLine positions a header or footer line across the full page width
func templateLine(s string, hf document.HeaderFooter, x, width float64, vertical string) *html.Node {
	css := []string{
		"left:" + px(x),
		"width:" + px(width),
		vertical,
		"font-size:" + px(hf.FontSize),
		"text-align:" + string(hf.Align),
	}
	div := element(atom.Div, []html.Attribute{
		{Key: "class", Val: "hf"},
		{Key: "style", Val: strings.Join(css, ";")},
	})
	div.AppendChild(textNode(s))
	return div
}

func element(a atom.Atom, attr []html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attr,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "px"
}
