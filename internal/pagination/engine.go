package pagination

import (
	"time"

	"github.com/google/uuid"
	"github.com/primex-melvin/tabledoc/internal/compose"
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/rs/zerolog"
)

// Options represents options for the pagination engine
type Options struct {
	PageSize     document.PageSize
	Orientation  document.Orientation
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	IncludeHeaders bool
	IncludeTotals  bool

	Title    string
	Subtitle string

	BackgroundColor string
	// HeaderFooterFontSize is the font size of the page header and footer templates
	HeaderFooterFontSize float64

	Now   func() time.Time
	NewID func() string
}

// DefaultOptions returns A4 portrait with 40pt margins, headers and totals
func DefaultOptions() Options {
	return Options{
		PageSize:             document.PageSizeA4,
		Orientation:          document.OrientationPortrait,
		MarginTop:            40,
		MarginRight:          40,
		MarginBottom:         40,
		MarginLeft:           40,
		IncludeHeaders:       true,
		IncludeTotals:        true,
		BackgroundColor:      "#FFFFFF",
		HeaderFooterFontSize: 8,
	}
}

// Input is the measured table to paginate
type Input struct {
	Header  document.WrappedRowData
	Rows    []document.WrappedRowData
	Totals  document.WrappedRowData
	Markers []document.RowMarker
}

// Engine handles the pagination process
type Engine struct {
	options  Options
	composer *compose.Composer
	log      zerolog.Logger
}

// NewEngine creates a new pagination engine emitting elements through c
func NewEngine(c *compose.Composer) *Engine {
	return &Engine{
		options:  DefaultOptions(),
		composer: c,
		log:      zerolog.Nop(),
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// SetComposer sets the composer elements are emitted through
func (e *Engine) SetComposer(c *compose.Composer) {
	e.composer = c
}

// SetLogger sets the logger used for debug output
func (e *Engine) SetLogger(l zerolog.Logger) {
	e.log = l.With().Str("component", "pagination").Logger()
}

// PageDimensions returns the page width and height
func (e *Engine) PageDimensions() (float64, float64) {
	return document.Dimensions(e.options.PageSize, e.options.Orientation)
}

// AvailableHeight is the content height of a page between the margins
func (e *Engine) AvailableHeight() float64 {
	_, h := e.PageDimensions()
	return h - e.options.MarginTop - e.options.MarginBottom
}

// AvailableWidth is the content width of a page between the margins
func (e *Engine) AvailableWidth() float64 {
	w, _ := e.PageDimensions()
	return w - e.options.MarginLeft - e.options.MarginRight
}

func (e *Engine) newID() string {
	if e.options.NewID != nil {
		return e.options.NewID()
	}
	return uuid.NewString()
}

func (e *Engine) now() time.Time {
	if e.options.Now != nil {
		return e.options.Now()
	}
	return time.Now()
}

func (e *Engine) paginator() *Paginator {
	return &Paginator{
		Top:          e.options.MarginTop,
		Available:    e.AvailableHeight(),
		MarkerHeight: e.composer.Params.MinRowHeight,
	}
}

// Plan computes the page plans for in without composing elements
func (e *Engine) Plan(in Input) []PagePlan {
	plan := Plan{
		RowHeights:    make([]float64, len(in.Rows)),
		Markers:       markerIndex(in.Markers, len(in.Rows)),
		TotalsHeight:  in.Totals.RowHeight,
		IncludeTotals: e.options.IncludeTotals,
	}
	if e.options.IncludeHeaders {
		plan.HeaderHeight = in.Header.RowHeight
	}
	for i, r := range in.Rows {
		plan.RowHeights[i] = r.RowHeight
	}
	return e.paginator().Plan(plan)
}

// Paginate lays the measured table out on pages. A title page comes first
// when a title is set.
func (e *Engine) Paginate(in Input) []document.Page {
	var pages []document.Page
	if e.options.Title != "" {
		pages = append(pages, e.titlePage())
	}

	plans := e.Plan(in)
	for _, plan := range plans {
		page := e.newPage()
		for _, slot := range plan.Slots {
			switch slot.Kind {
			case SlotHeader:
				page.Elements = append(page.Elements, e.composer.Header(in.Header, slot.Y)...)
			case SlotMarker:
				page.Elements = append(page.Elements, e.composer.Marker(in.Markers[slot.Index].Label, slot.Y))
			case SlotRow:
				page.Elements = append(page.Elements, e.composer.Row(in.Rows[slot.Index], slot.Y)...)
			case SlotTotals:
				page.Elements = append(page.Elements, e.composer.Totals(in.Totals, slot.Y)...)
			}
		}
		pages = append(pages, page)
	}

	e.log.Debug().
		Int("rows", len(in.Rows)).
		Int("markers", len(in.Markers)).
		Int("dataPages", len(plans)).
		Int("pages", len(pages)).
		Float64("availableHeight", e.AvailableHeight()).
		Msg("paginated")
	return pages
}

func (e *Engine) newPage() document.Page {
	return document.Page{
		ID:              e.newID(),
		Size:            e.options.PageSize,
		Orientation:     e.options.Orientation,
		Elements:        []document.TextElement{},
		BackgroundColor: e.options.BackgroundColor,
	}
}

func (e *Engine) titlePage() document.Page {
	w, h := e.PageDimensions()
	page := e.newPage()
	page.Elements = e.composer.TitleBlock(e.options.Title, e.options.Subtitle, e.now(), w, h)
	return page
}

// Templates returns the page header (short title line) and the footer
// ("Page {n} of {total}") the renderer repeats on every page
func (e *Engine) Templates() (header, footer document.HeaderFooter) {
	size := e.options.HeaderFooterFontSize
	family := e.composer.Params.FontFamily
	header = document.HeaderFooter{
		Text:       e.options.Title,
		FontSize:   size,
		FontFamily: family,
		Align:      document.AlignLeft,
		Height:     e.options.MarginTop / 2,
	}
	footer = document.HeaderFooter{
		Text:       document.FooterTemplate,
		FontSize:   size,
		FontFamily: family,
		Align:      document.AlignCenter,
		Height:     e.options.MarginBottom / 2,
	}
	return header, footer
}
