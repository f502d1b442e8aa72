// Package tabledoc lays tabular records out on fixed-size pages and renders
// them as PDF, an HTML preview or JSON.
package tabledoc

import (
	"context"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/res"
	"github.com/primex-melvin/tabledoc/internal/source"
	"github.com/primex-melvin/tabledoc/pkg/api"
)

type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type Table = api.Table
type PageSize = api.PageSize
type PageOrientation = api.PageOrientation

type Record = api.Record
type Value = api.Value
type ColumnDefinition = api.ColumnDefinition
type RowMarker = api.RowMarker
type Totals = api.Totals
type ConversionResult = api.ConversionResult

type SourceOptions = source.Options
type Dataset = source.Dataset

func New(opts ...Option) *Converter              { return api.New(opts...) }
func NewWithOptions(options Options) *Converter { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	WithPageSize        = api.WithPageSize
	WithPageOrientation = api.WithPageOrientation
	WithMargins         = api.WithMargins
	WithHeaders         = api.WithHeaders
	WithTotals          = api.WithTotals
	WithTitle           = api.WithTitle
	WithSubtitle        = api.WithSubtitle
	WithAuthor          = api.WithAuthor
	WithFont            = api.WithFont
	WithColumnWeights   = api.WithColumnWeights
	WithCurrencySymbol  = api.WithCurrencySymbol
	WithMetrics         = api.WithMetrics
	WithTrueTypeFonts   = api.WithTrueTypeFonts
	WithLogger          = api.WithLogger
	WithDebug           = api.WithDebug
	WithClock           = api.WithClock
	WithIDGenerator     = api.WithIDGenerator
	WithPageSizeA4      = api.WithPageSizeA4
	WithPageSizeLetter  = api.WithPageSizeLetter
	WithPageSizeLegal   = api.WithPageSizeLegal

	String = document.String
	Number = document.Number
	Date   = document.Date
	Null   = document.Null

	ComputeTotals = document.ComputeTotals
	GroupMarkers  = document.GroupMarkers
)

const (
	PageSizeA4     = api.PageSizeA4
	PageSizeA3     = api.PageSizeA3
	PageSizeA5     = api.PageSizeA5
	PageSizeLetter = api.PageSizeLetter
	PageSizeLegal  = api.PageSizeLegal
	PageSizeLong   = api.PageSizeLong

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)

// ReadRecords reads records from a file path, http(s) URL or data: URL
func ReadRecords(ctx context.Context, path string, opts SourceOptions) (*Dataset, error) {
	return source.Load(ctx, res.NewLoader(""), path, opts)
}
