package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/primex-melvin/tabledoc/internal/compose"
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/layout"
	"github.com/primex-melvin/tabledoc/internal/pagination"
	htmlrender "github.com/primex-melvin/tabledoc/internal/render/html"
	"github.com/primex-melvin/tabledoc/internal/render/pdf"
	"github.com/primex-melvin/tabledoc/internal/text"
	"github.com/rs/zerolog"
)

type (
	Record           = document.Record
	Value            = document.Value
	ValueKind        = document.ValueKind
	Alignment        = document.Alignment
	ColumnDefinition = document.ColumnDefinition
	RowMarker        = document.RowMarker
	Totals           = document.Totals
	TextElement      = document.TextElement
	Page             = document.Page
	HeaderFooter     = document.HeaderFooter
	Metadata         = document.Metadata
	ConversionResult = document.ConversionResult
)

// Table is the data to convert
type Table struct {
	Records       []Record
	Columns       []ColumnDefinition
	HiddenColumns []string
	Totals        Totals
	Markers       []RowMarker
}

// Converter is the main API for converting tables to pages
type Converter struct {
	options Options
}

// New creates a new converter with default options
func New(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a new converter with the specified options
func NewWithOptions(options Options) *Converter {
	return &Converter{options: options}
}

// Options returns a copy of the converter's options
func (c *Converter) Options() Options {
	return c.options
}

func (c *Converter) logger() zerolog.Logger {
	l := c.options.Logger
	if c.options.Debug {
		l = l.Level(zerolog.DebugLevel)
	}
	return l
}

func (c *Converter) metrics() text.Metrics {
	if c.options.Metrics != nil {
		return c.options.Metrics
	}
	if len(c.options.FontRegular) > 0 {
		m, err := text.NewTrueTypeMetrics(c.options.FontRegular, c.options.FontBold)
		if err == nil {
			return m
		}
		l := c.logger()
		l.Warn().Err(err).Msg("falling back to core font metrics")
	}
	return text.Default()
}

func (c *Converter) newID() string {
	if c.options.NewID != nil {
		return c.options.NewID()
	}
	return uuid.NewString()
}

func (c *Converter) now() time.Time {
	if c.options.Now != nil {
		return c.options.Now()
	}
	return time.Now()
}

// Convert lays the table out on pages. It never fails: missing values
// render as a dash and missing totals as blank cells.
func (c *Converter) Convert(t Table) *ConversionResult {
	o := c.options
	log := c.logger().With().Str("component", "converter").Logger()

	visible := layout.VisibleColumns(t.Columns, t.HiddenColumns)

	paginationEngine := pagination.NewEngine(nil)
	paginationEngine.SetOptions(pagination.Options{
		PageSize:             o.PageSize,
		Orientation:          o.PageOrientation,
		MarginTop:            o.MarginTop,
		MarginRight:          o.MarginRight,
		MarginBottom:         o.MarginBottom,
		MarginLeft:           o.MarginLeft,
		IncludeHeaders:       o.IncludeHeaders,
		IncludeTotals:        o.IncludeTotals,
		Title:                o.Title,
		Subtitle:             o.Subtitle,
		BackgroundColor:      o.BackgroundColor,
		HeaderFooterFontSize: 8,
		Now:                  c.now,
		NewID:                c.newID,
	})
	paginationEngine.SetLogger(log)

	widths := layout.NewAllocator(o.ColumnWeights).Allocate(visible, paginationEngine.AvailableWidth())
	log.Debug().
		Int("columns", len(visible)).
		Int("hidden", len(t.Columns)-len(visible)).
		Floats64("widths", widths).
		Msg("allocated columns")

	measurer := &layout.Measurer{
		Metrics:        c.metrics(),
		Params:         o.Layout,
		Columns:        visible,
		Widths:         widths,
		CurrencySymbol: o.CurrencySymbol,
	}
	in := pagination.Input{
		Rows:    measurer.Measure(t.Records),
		Markers: t.Markers,
	}
	if o.IncludeHeaders {
		in.Header = measurer.Header()
	}
	if o.IncludeTotals {
		in.Totals = measurer.Totals(t.Totals)
	}
	log.Debug().Int("rows", len(in.Rows)).Msg("measured rows")

	groupName := o.Title
	if groupName == "" {
		groupName = "Table"
	}
	paginationEngine.SetComposer(&compose.Composer{
		Columns:    visible,
		Widths:     widths,
		Params:     o.Layout,
		MarginLeft: o.MarginLeft,
		Colors:     compose.DefaultColors(),
		GroupID:    "table-" + c.newID(),
		GroupName:  groupName,
		NewID:      c.newID,
	})
	pages := paginationEngine.Paginate(in)
	header, footer := paginationEngine.Templates()

	return &ConversionResult{
		Pages:  pages,
		Header: header,
		Footer: footer,
		Metadata: Metadata{
			TotalPages:  len(pages),
			TotalRows:   len(t.Records),
			CreatedAt:   c.now(),
			PageSize:    o.PageSize,
			Orientation: o.PageOrientation,
			ColumnCount: len(visible),
		},
	}
}

func (c *Converter) renderOptions() pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:        c.options.Title,
		Author:       c.options.Author,
		Subject:      c.options.Subject,
		Keywords:     c.options.Keywords,
		Creator:      "tabledoc",
		Producer:     "tabledoc",
		MarginTop:    c.options.MarginTop,
		MarginBottom: c.options.MarginBottom,
		MarginLeft:   c.options.MarginLeft,
		MarginRight:  c.options.MarginRight,
		LineHeight:   c.options.Layout.LineHeight,
		CreatedAt:    c.now(),
		FontRegular:  c.options.FontRegular,
		FontBold:     c.options.FontBold,
	}
}

// RenderPDF writes a conversion result as PDF
func (c *Converter) RenderPDF(result *ConversionResult, output io.Writer) error {
	renderer := pdf.NewRenderer()
	renderer.Debug = c.options.Debug
	renderer.RenderBackgrounds = c.options.RenderBackgrounds
	renderer.DebugDrawBoxes = c.options.DebugDrawBoxes
	renderer.SetLogger(c.logger())
	if err := renderer.Render(result, output, c.renderOptions()); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// RenderHTML writes a conversion result as an HTML preview
func (c *Converter) RenderHTML(result *ConversionResult, output io.Writer) error {
	renderer := htmlrender.NewRenderer()
	renderer.RenderBackgrounds = c.options.RenderBackgrounds
	renderer.DebugDrawBoxes = c.options.DebugDrawBoxes
	renderer.LineHeight = c.options.Layout.LineHeight
	if err := renderer.Render(result, output, c.options.Title); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

// WriteJSON writes a conversion result as indented JSON
func (c *Converter) WriteJSON(result *ConversionResult, output io.Writer) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// ConvertToPDF converts the table and writes the PDF to output
func (c *Converter) ConvertToPDF(t Table, output io.Writer) error {
	return c.RenderPDF(c.Convert(t), output)
}

// ConvertToHTML converts the table and writes the HTML preview to output
func (c *Converter) ConvertToHTML(t Table, output io.Writer) error {
	return c.RenderHTML(c.Convert(t), output)
}

// ConvertToFile converts the table and writes it to outputPath. The format
// follows the file extension: .html/.htm, .json, anything else is PDF.
func (c *Converter) ConvertToFile(t Table, outputPath string) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	result := c.Convert(t)
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".html", ".htm":
		err = c.RenderHTML(result, f)
	case ".json":
		err = c.WriteJSON(result, f)
	default:
		err = c.RenderPDF(result, f)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// WithOption returns a new converter with the specified option set
func (c *Converter) WithOption(option Option) *Converter {
	newOptions := c.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (c *Converter) SetPageSize(size PageSize) *Converter {
	return c.WithOption(WithPageSize(size))
}

// SetOrientation sets the page orientation
func (c *Converter) SetOrientation(orientation PageOrientation) *Converter {
	return c.WithOption(WithPageOrientation(orientation))
}

// SetMargins sets the page margins
func (c *Converter) SetMargins(top, right, bottom, left float64) *Converter {
	return c.WithOption(WithMargins(top, right, bottom, left))
}

// SetDebug sets the debug mode
func (c *Converter) SetDebug(debug bool) *Converter {
	return c.WithOption(WithDebug(debug))
}

// SetTitle sets the document title
func (c *Converter) SetTitle(title string) *Converter {
	return c.WithOption(WithTitle(title))
}
