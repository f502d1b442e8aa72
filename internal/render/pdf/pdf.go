package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/text"
	"github.com/rs/zerolog"
)

// Renderer handles rendering to PDF
type Renderer struct {
	// Debug enables verbose logging
	Debug bool
	// RenderBackgrounds controls whether page backgrounds are painted
	RenderBackgrounds bool
	// DebugDrawBoxes controls drawing of debug outlines around elements
	DebugDrawBoxes bool
	// Compress deflates page content streams
	Compress bool

	log zerolog.Logger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	// LineHeight is the line height multiple used for wrapped text
	LineHeight float64
	CreatedAt  time.Time

	// FontRegular and FontBold are TrueType files embedded as a UTF-8 font.
	// Core fonts are used when FontRegular is empty.
	FontRegular []byte
	FontBold    []byte
}

// embeddedFamily is the family name embedded TrueType fonts register under
const embeddedFamily = "tabledoc"

// fonts resolves the family and the string translator text is drawn with
type fonts struct {
	embedded bool
	tr       func(string) string
}

// coreFonts draws with the cp1252 core fonts. Runes outside the code page
// are substituted before translation.
func coreFonts(pdf *fpdf.Fpdf) fonts {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return fonts{tr: func(s string) string { return tr(text.CoreText(s)) }}
}

func (f fonts) family(name string) string {
	if f.embedded {
		return embeddedFamily
	}
	return text.CoreFamily(name)
}

// style drops bold when no bold face was embedded
func (f fonts) style(bold, italic, haveBold bool) string {
	s := ""
	if bold && (!f.embedded || haveBold) {
		s += "B"
	}
	if italic && !f.embedded {
		s += "I"
	}
	return s
}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{
		RenderBackgrounds: true,
		Compress:          true,
		log:               zerolog.Nop(),
	}
}

// SetLogger sets the logger used for debug output
func (r *Renderer) SetLogger(l zerolog.Logger) {
	r.log = l.With().Str("component", "pdf").Logger()
}

func orientationCode(o document.Orientation) string {
	if o == document.OrientationLandscape {
		return "L"
	}
	return "P"
}

func portraitSize(size document.PageSize) fpdf.SizeType {
	w, h := document.Dimensions(size, document.OrientationPortrait)
	return fpdf.SizeType{Wd: w, Ht: h}
}

// Render writes every page of result to output
func (r *Renderer) Render(result *document.ConversionResult, output io.Writer, options RenderOptions) error {
	if result == nil || len(result.Pages) == 0 {
		return fmt.Errorf("nothing to render")
	}
	if options.LineHeight <= 0 {
		options.LineHeight = 1.2
	}

	first := result.Pages[0]
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientationCode(first.Orientation),
		UnitStr:        "pt",
		Size:           portraitSize(first.Size),
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(options.MarginLeft, options.MarginTop, options.MarginRight)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	if !options.CreatedAt.IsZero() {
		pdf.SetCreationDate(options.CreatedAt)
	}
	fs := coreFonts(pdf)
	haveBold := false
	if len(options.FontRegular) > 0 {
		pdf.AddUTF8FontFromBytes(embeddedFamily, "", options.FontRegular)
		if len(options.FontBold) > 0 {
			pdf.AddUTF8FontFromBytes(embeddedFamily, "B", options.FontBold)
			haveBold = true
		}
		if pdf.Err() {
			return fmt.Errorf("failed to embed font: %w", pdf.Error())
		}
		fs = fonts{embedded: true, tr: func(s string) string { return s }}
	}

	total := len(result.Pages)
	r.log.Debug().Int("pages", total).Msg("rendering")
	for i, page := range result.Pages {
		pdf.AddPageFormat(orientationCode(page.Orientation), portraitSize(page.Size))
		w, h := pdf.GetPageSize()
		r.renderBackground(pdf, page, w, h)

		for _, el := range page.Elements {
			if !el.Visible {
				continue
			}
			r.renderText(pdf, fs, haveBold, el, options.LineHeight)
		}

		r.renderHeaderFooter(pdf, fs, result.Header, i+1, total, options.MarginLeft, options.MarginTop/2, w-options.MarginLeft-options.MarginRight)
		r.renderHeaderFooter(pdf, fs, result.Footer, i+1, total, options.MarginLeft, h-options.MarginBottom/2, w-options.MarginLeft-options.MarginRight)

		if pdf.Err() {
			return fmt.Errorf("failed to render page %d: %w", i+1, pdf.Error())
		}
	}

	return pdf.Output(output)
}

// renderBackground paints a non-white page background
func (r *Renderer) renderBackground(pdf *fpdf.Fpdf, page document.Page, w, h float64) {
	if !r.RenderBackgrounds || page.BackgroundColor == "" {
		return
	}
	color := parseColor(page.BackgroundColor)
	if color == [3]int{255, 255, 255} {
		return
	}
	pdf.SetFillColor(color[0], color[1], color[2])
	pdf.Rect(0, 0, w, h, "F")
}

// renderHeaderFooter renders a page template line with its baseline at y
func (r *Renderer) renderHeaderFooter(pdf *fpdf.Fpdf, fs fonts, hf document.HeaderFooter, n, total int, x, y, width float64) {
	s := hf.Render(n, total)
	if s == "" {
		return
	}
	pdf.SetFont(fs.family(hf.FontFamily), "", hf.FontSize)
	pdf.SetTextColor(107, 114, 128)
	s = fs.tr(s)
	pdf.Text(alignX(x, width, pdf.GetStringWidth(s), hf.Align), y, s)
}

// renderText renders an element's lines top to bottom
func (r *Renderer) renderText(pdf *fpdf.Fpdf, fs fonts, haveBold bool, el document.TextElement, lineHeight float64) {
	if el.Text == "" {
		return
	}

	fontSize := el.FontSize
	if fontSize <= 0 {
		fontSize = 9
	}
	family := fs.family(el.FontFamily)
	pdf.SetFont(family, fs.style(el.Bold, el.Italic, haveBold), fontSize)

	textColor := parseColor(el.Color)
	pdf.SetTextColor(textColor[0], textColor[1], textColor[2])

	// Baseline of the first line: ascent plus half the leading
	ascent := 0.80 * fontSize
	descent := 0.20 * fontSize
	step := fontSize * lineHeight
	leading := step - (ascent + descent)
	if leading < 0 {
		leading = 0
	}
	baselineY := el.Y + ascent + leading/2

	for i, line := range strings.Split(el.Text, "\n") {
		line = fs.tr(line)
		startX := alignX(el.X, el.Width, pdf.GetStringWidth(line), el.Align)
		y := baselineY + float64(i)*step
		pdf.Text(startX, y, line)
	}

	if r.Debug {
		r.log.Debug().
			Str("text", el.Text).
			Float64("x", el.X).
			Float64("y", el.Y).
			Str("font", family).
			Float64("size", fontSize).
			Msg("rendered text")
	}

	if r.DebugDrawBoxes {
		pdf.SetDrawColor(255, 0, 0)
		pdf.SetLineWidth(0.1)
		pdf.Rect(el.X, el.Y, el.Width, el.Height, "D")
	}
}

// alignX positions a line of the given width inside [x, x+width]
func alignX(x, width, textWidth float64, align document.Alignment) float64 {
	var startX float64
	switch align {
	case document.AlignCenter:
		startX = x + (width-textWidth)/2
	case document.AlignRight:
		startX = x + width - textWidth
	default:
		startX = x
	}
	if startX < x {
		startX = x
	}
	return startX
}

// parseColor parses a CSS color value
func parseColor(value string) [3]int {
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return [3]int{r, g, b}
		}
	}

	var r, g, b int
	if _, err := fmt.Sscanf(value, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}
	}
	if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}
	}

	return [3]int{0, 0, 0}
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		if rv, err := strconv.ParseUint(s[0:2], 16, 8); err == nil {
			if gv, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				if bv, err := strconv.ParseUint(s[4:6], 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	case 3:
		r := string([]byte{s[0], s[0]})
		g := string([]byte{s[1], s[1]})
		b := string([]byte{s[2], s[2]})
		if rv, err := strconv.ParseUint(r, 16, 8); err == nil {
			if gv, err := strconv.ParseUint(g, 16, 8); err == nil {
				if bv, err := strconv.ParseUint(b, 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	}
	return 0, 0, 0, false
}
