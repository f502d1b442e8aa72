package config

import (
	"fmt"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/layout"
	"github.com/primex-melvin/tabledoc/internal/res"
	"github.com/primex-melvin/tabledoc/internal/source"
	"github.com/primex-melvin/tabledoc/pkg/api"
)

// RowParams returns the layout constants as row measurement parameters.
func (c *Config) RowParams() layout.RowParams {
	return layout.RowParams{
		FontSize:           c.Layout.FontSize,
		FontFamily:         c.Layout.FontFamily,
		TextPadding:        c.Layout.TextPadding,
		MinRowHeight:       c.Layout.MinRowHeight,
		MinHeaderRowHeight: c.Layout.MinHeaderRowHeight,
		LineHeight:         c.Layout.LineHeight,
		FirstColumnInset:   c.Layout.FirstColumnInset,
	}
}

// SourceOptions returns the record source selection.
func (c *Config) SourceOptions() (source.Options, error) {
	opts := source.Options{
		Sheet:   c.Source.Sheet,
		Query:   c.Source.Query,
		Table:   c.Source.Table,
		Columns: c.Table.Columns,
	}
	if c.Source.Format != "" {
		f, err := source.ParseFormat(c.Source.Format)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		opts.Format = f
	}
	return opts, nil
}

// Options converts the configuration into converter options. Font files
// are read through loader.
func (c *Config) Options(loader *res.Loader) ([]api.Option, error) {
	size, ok := document.ParsePageSize(c.Page.Size)
	if !ok {
		return nil, fmt.Errorf("%w: unknown page size %q", ErrInvalid, c.Page.Size)
	}
	orientation, ok := document.ParseOrientation(c.Page.Orientation)
	if !ok {
		return nil, fmt.Errorf("%w: unknown orientation %q", ErrInvalid, c.Page.Orientation)
	}

	m := c.Page.Margins
	opts := []api.Option{
		api.WithPageSize(size),
		api.WithPageOrientation(orientation),
		api.WithMargins(m.Top, m.Right, m.Bottom, m.Left),
		api.WithHeaders(c.Table.IncludeHeaders),
		api.WithTotals(c.Table.IncludeTotals),
		api.WithTitle(c.Title),
		api.WithSubtitle(c.Subtitle),
		api.WithAuthor(c.Author),
		api.WithLayout(c.RowParams()),
		api.WithColumnWeights(c.Table.ColumnWeights),
	}
	if c.Table.CurrencySymbol != "" {
		opts = append(opts, api.WithCurrencySymbol(c.Table.CurrencySymbol))
	}
	if c.Page.Background != "" {
		bg := c.Page.Background
		opts = append(opts, func(o *api.Options) { o.BackgroundColor = bg })
	}

	if c.Fonts.Regular != "" {
		regular, err := loader.LoadFont(c.Fonts.Regular)
		if err != nil {
			return nil, fmt.Errorf("failed to load regular font: %w", err)
		}
		var bold []byte
		if c.Fonts.Bold != "" {
			b, err := loader.LoadFont(c.Fonts.Bold)
			if err != nil {
				return nil, fmt.Errorf("failed to load bold font: %w", err)
			}
			bold = b.Data
		}
		opts = append(opts, api.WithTrueTypeFonts(regular.Data, bold))
	}

	return opts, nil
}

// Markers derives category markers from the GroupBy field.
func (c *Config) Markers(records []document.Record) []document.RowMarker {
	if c.Table.GroupBy == "" {
		return nil
	}
	return document.GroupMarkers(records, c.Table.GroupBy)
}
