package api

import (
	"time"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/layout"
	"github.com/primex-melvin/tabledoc/internal/text"
	"github.com/rs/zerolog"
)

// PageSize is a named physical page size
type PageSize = document.PageSize

// PageOrientation represents page orientation
type PageOrientation = document.Orientation

// LayoutParams are the typographic constants rows are measured with
type LayoutParams = layout.RowParams

// TextMetrics measures rendered string widths
type TextMetrics = text.Metrics

const (
	PageSizeA4     = document.PageSizeA4
	PageSizeA3     = document.PageSizeA3
	PageSizeA5     = document.PageSizeA5
	PageSizeLetter = document.PageSizeLetter
	PageSizeLegal  = document.PageSizeLegal
	PageSizeLong   = document.PageSizeLong

	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait = document.OrientationPortrait
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape = document.OrientationLandscape
)

// Options represents configuration options for the table converter
type Options struct {
	// Page format
	PageSize        PageSize
	PageOrientation PageOrientation

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Content toggles
	IncludeHeaders bool
	IncludeTotals  bool

	// Title page. No title page is emitted when Title is empty.
	Title    string
	Subtitle string

	// Document metadata (PDF output)
	Author   string
	Subject  string
	Keywords string

	// Layout holds font and row sizing constants
	Layout LayoutParams
	// ColumnWeights override the default column width hints by key
	ColumnWeights map[string]float64
	// CurrencySymbol prefixes currency values
	CurrencySymbol  string
	BackgroundColor string

	// Metrics measures text. Nil uses TrueType metrics when FontRegular is
	// set and the shared PDF core font metrics otherwise.
	Metrics TextMetrics

	// TrueType font files embedded in PDF output
	FontRegular []byte
	FontBold    []byte

	// Visual rendering toggles (PDF/HTML output)
	// When false, page backgrounds will not be painted
	RenderBackgrounds bool
	// When true, draw debug box overlays around every text element
	DebugDrawBoxes bool

	Logger zerolog.Logger
	Debug  bool

	// Now and NewID make conversions reproducible in tests
	Now   func() time.Time
	NewID func() string
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		PageSize:        PageSizeA4,
		PageOrientation: PageOrientationPortrait,

		MarginTop:    40,
		MarginRight:  40,
		MarginBottom: 40,
		MarginLeft:   40,

		IncludeHeaders: true,
		IncludeTotals:  true,

		Layout:          layout.DefaultRowParams(),
		CurrencySymbol:  document.DefaultCurrencySymbol,
		BackgroundColor: "#FFFFFF",

		RenderBackgrounds: true,
		DebugDrawBoxes:    false,

		Logger: zerolog.Nop(),
	}
}

// WithPageSize sets the page size
func WithPageSize(size PageSize) Option {
	return func(o *Options) {
		o.PageSize = size
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithHeaders toggles the header row repeated on every data page
func WithHeaders(include bool) Option {
	return func(o *Options) {
		o.IncludeHeaders = include
	}
}

// WithTotals toggles the totals row
func WithTotals(include bool) Option {
	return func(o *Options) {
		o.IncludeTotals = include
	}
}

// WithTitle sets the title page heading and the page header text
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithSubtitle sets the title page subtitle
func WithSubtitle(subtitle string) Option {
	return func(o *Options) {
		o.Subtitle = subtitle
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithLayout sets the font and row sizing constants
func WithLayout(params LayoutParams) Option {
	return func(o *Options) {
		o.Layout = params
	}
}

// WithFont sets the table font family and size
func WithFont(family string, size float64) Option {
	return func(o *Options) {
		o.Layout.FontFamily = family
		o.Layout.FontSize = size
	}
}

// WithColumnWeights overrides column width hints
func WithColumnWeights(weights map[string]float64) Option {
	return func(o *Options) {
		o.ColumnWeights = weights
	}
}

// WithCurrencySymbol sets the currency symbol
func WithCurrencySymbol(symbol string) Option {
	return func(o *Options) {
		o.CurrencySymbol = symbol
	}
}

// WithMetrics sets the text measurement backend
func WithMetrics(m TextMetrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithTrueTypeFonts embeds TrueType fonts in PDF output and measures text
// with them. bold may be nil.
func WithTrueTypeFonts(regular, bold []byte) Option {
	return func(o *Options) {
		o.FontRegular = regular
		o.FontBold = bold
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithClock sets the clock used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithIDGenerator sets the page and element id generator
func WithIDGenerator(newID func() string) Option {
	return func(o *Options) {
		o.NewID = newID
	}
}

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetter)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegal)
}
