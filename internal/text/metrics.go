// Package text measures and wraps cell text.
package text

import (
	"fmt"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
)

// Metrics measures the rendered width of a string
type Metrics interface {
	MeasureWidth(text string, fontSize float64, fontFamily string, bold bool) float64
}

// approxCharWidth is the average glyph advance as a fraction of the font size
const approxCharWidth = 0.6

// ApproxMetrics estimates widths without any font data.
// Wide (East Asian) runes count as two cells.
type ApproxMetrics struct{}

// MeasureWidth implements Metrics
func (ApproxMetrics) MeasureWidth(text string, fontSize float64, _ string, _ bool) float64 {
	return float64(runewidth.StringWidth(text)) * fontSize * approxCharWidth
}

// FontMetrics measures with the PDF core font metrics (Helvetica, Times,
// Courier). The measurement document is created on first use and reused.
type FontMetrics struct {
	once sync.Once
	mu   sync.Mutex
	pdf  *fpdf.Fpdf
	tr   func(string) string

	fallback ApproxMetrics
}

var defaultFontMetrics = NewFontMetrics()

// Default returns the process-wide FontMetrics
func Default() *FontMetrics {
	return defaultFontMetrics
}

// NewFontMetrics returns a FontMetrics with its own measurement document
func NewFontMetrics() *FontMetrics {
	return &FontMetrics{}
}

func (m *FontMetrics) init() {
	m.pdf = fpdf.New("P", "pt", "A4", "")
	m.pdf.SetFont("Helvetica", "", 12)
	m.tr = m.pdf.UnicodeTranslatorFromDescriptor("")
}

// MeasureWidth implements Metrics. Text is measured as the core fonts will
// draw it, see CoreText. When the measurement document is in an error state
// the approximate width is returned instead.
func (m *FontMetrics) MeasureWidth(text string, fontSize float64, fontFamily string, bold bool) float64 {
	if text == "" || fontSize <= 0 {
		return 0
	}
	m.once.Do(m.init)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pdf.Err() {
		return m.fallback.MeasureWidth(text, fontSize, fontFamily, bold)
	}
	m.pdf.SetFont(CoreFamily(fontFamily), fontStyle(bold), fontSize)
	if m.pdf.Err() {
		return m.fallback.MeasureWidth(text, fontSize, fontFamily, bold)
	}
	return m.pdf.GetStringWidth(m.tr(CoreText(text)))
}

// CoreFamily maps a CSS-like font family list to a PDF core font family
func CoreFamily(family string) string {
	first := strings.Split(family, ",")[0]
	first = strings.TrimSpace(strings.Trim(strings.TrimSpace(first), "'\""))
	switch strings.ToLower(first) {
	case "times", "times new roman", "serif", "georgia":
		return "Times"
	case "courier", "courier new", "monospace":
		return "Courier"
	}
	return "Helvetica"
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// TrueTypeMetrics measures with a TrueType font. Faces are built per size
// and cached.
type TrueTypeMetrics struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewTrueTypeMetrics parses the regular and (optional) bold font files.
// Without a bold font, bold text is measured with the regular face.
func NewTrueTypeMetrics(regular, bold []byte) (*TrueTypeMetrics, error) {
	reg, err := truetype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	m := &TrueTypeMetrics{
		regular: reg,
		bold:    reg,
		faces:   make(map[faceKey]font.Face),
	}
	if len(bold) > 0 {
		b, err := truetype.Parse(bold)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bold font: %w", err)
		}
		m.bold = b
	}
	return m, nil
}

// MeasureWidth implements Metrics
func (m *TrueTypeMetrics) MeasureWidth(text string, fontSize float64, _ string, bold bool) float64 {
	if text == "" || fontSize <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := faceKey{size: fontSize, bold: bold}
	face, ok := m.faces[key]
	if !ok {
		f := m.regular
		if bold {
			f = m.bold
		}
		face = truetype.NewFace(f, &truetype.Options{
			Size:    fontSize,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		m.faces[key] = face
	}
	return float64(font.MeasureString(face, text)) / 64
}
