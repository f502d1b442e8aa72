// Package main provides the CLI entry point for tabledoc.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/primex-melvin/tabledoc/internal/config"
	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/res"
	"github.com/primex-melvin/tabledoc/internal/source"
	"github.com/primex-melvin/tabledoc/pkg/api"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	output      string
	format      string
	configPath  string
	pageSize    string
	orientation string
	hide        []string
	title       string
	subtitle    string
	noHeaders   bool
	noTotals    bool
	groupBy     string
	sheet       string
	query       string
	table       string
	inputFormat string
	verbose     bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabledoc",
		Short: "Lay out tabular budget records as paginated documents",
		Long: `tabledoc reads records from JSON, CSV, XLSX, SQLite or HTML tables and
lays them out on fixed-size pages with a repeating header row, category
markers and a totals row, writing PDF, an HTML preview or the page model as JSON.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConvertCmd(), newInitConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newConvertCmd() *cobra.Command {
	var f convertFlags
	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a table to a paginated document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], &f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "Output file path (default: input name with the format's extension)")
	fl.StringVar(&f.format, "format", "", "Output format: pdf, html, json (default: from the output extension, else pdf)")
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fl.StringVar(&f.pageSize, "page-size", "", "Page size: A4, A3, A5, Letter, Legal, Long")
	fl.StringVar(&f.orientation, "orientation", "", "Page orientation: portrait, landscape")
	fl.StringSliceVar(&f.hide, "hide", nil, "Column keys to hide")
	fl.StringVar(&f.title, "title", "", "Title page heading")
	fl.StringVar(&f.subtitle, "subtitle", "", "Title page subtitle")
	fl.BoolVar(&f.noHeaders, "no-headers", false, "Do not repeat the header row")
	fl.BoolVar(&f.noTotals, "no-totals", false, "Do not append a totals row")
	fl.StringVar(&f.groupBy, "group-by", "", "Field whose value changes insert category markers")
	fl.StringVar(&f.sheet, "sheet", "", "XLSX sheet name")
	fl.StringVar(&f.query, "query", "", "SQL query for SQLite inputs")
	fl.StringVar(&f.table, "table", "", "HTML table id or index")
	fl.StringVar(&f.inputFormat, "input-format", "", "Input format: json, csv, xlsx, sqlite, html (default: detected)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write an example config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "tabledoc.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.InitConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()
}

// applyFlags overrides config values with flags the user set
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *convertFlags) {
	fl := cmd.Flags()
	if fl.Changed("page-size") {
		cfg.Page.Size = f.pageSize
	}
	if fl.Changed("orientation") {
		cfg.Page.Orientation = f.orientation
	}
	if fl.Changed("hide") {
		cfg.Table.Hidden = append(cfg.Table.Hidden, f.hide...)
	}
	if fl.Changed("title") {
		cfg.Title = f.title
	}
	if fl.Changed("subtitle") {
		cfg.Subtitle = f.subtitle
	}
	if f.noHeaders {
		cfg.Table.IncludeHeaders = false
	}
	if f.noTotals {
		cfg.Table.IncludeTotals = false
	}
	if fl.Changed("group-by") {
		cfg.Table.GroupBy = f.groupBy
	}
	if fl.Changed("sheet") {
		cfg.Source.Sheet = f.sheet
	}
	if fl.Changed("query") {
		cfg.Source.Query = f.query
	}
	if fl.Changed("table") {
		cfg.Source.Table = f.table
	}
	if fl.Changed("input-format") {
		cfg.Source.Format = f.inputFormat
	}
}

// outputTarget resolves the output path and format
func outputTarget(input, output, format string) (string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" && output != "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".html", ".htm":
			format = "html"
		case ".json":
			format = "json"
		}
	}
	if format == "" {
		format = "pdf"
	}
	switch format {
	case "pdf", "html", "json":
	default:
		return "", "", fmt.Errorf("invalid format: %s (must be pdf, html, or json)", format)
	}

	if output == "" {
		base := filepath.Base(input)
		if i := strings.IndexAny(base, "?#"); i >= 0 {
			base = base[:i]
		}
		ext := filepath.Ext(base)
		output = base[:len(base)-len(ext)] + "." + format
	}
	return output, format, nil
}

func runConvert(cmd *cobra.Command, input string, f *convertFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := newLogger(cmd.ErrOrStderr(), f.verbose)

	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, format, err := outputTarget(input, f.output, f.format)
	if err != nil {
		return err
	}

	baseDir := ""
	if f.configPath != "" {
		baseDir = filepath.Dir(f.configPath)
	}
	loader := res.NewLoader("")
	if baseDir != "" {
		loader.AddSearchPath(baseDir)
	}

	srcOpts, err := cfg.SourceOptions()
	if err != nil {
		return err
	}
	ds, err := source.Load(ctx, loader, input, srcOpts)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	log.Info().
		Str("input", input).
		Int("records", len(ds.Records)).
		Int("columns", len(ds.Columns)).
		Msg("read records")

	opts, err := cfg.Options(loader)
	if err != nil {
		return err
	}
	opts = append(opts, api.WithLogger(log), api.WithDebug(f.verbose))
	converter := api.New(opts...)

	table := buildTable(cfg, ds)
	if err := convertTo(ctx, converter, table, output, format); err != nil {
		return err
	}

	log.Info().Str("output", output).Str("format", format).Msg("done")
	return nil
}

// buildTable assembles the conversion input, deriving totals over the
// visible numeric columns and markers from the group-by field
func buildTable(cfg *config.Config, ds *source.Dataset) api.Table {
	t := api.Table{
		Records:       ds.Records,
		Columns:       ds.Columns,
		HiddenColumns: cfg.Table.Hidden,
		Markers:       cfg.Markers(ds.Records),
	}
	if cfg.Table.IncludeTotals {
		t.Totals = document.ComputeTotals(ds.Records, ds.Columns)
	}
	return t
}

func convertTo(ctx context.Context, c *api.Converter, t api.Table, output, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	result := c.Convert(t)
	switch format {
	case "html":
		err = c.RenderHTML(result, out)
	case "json":
		err = c.WriteJSON(result, out)
	default:
		err = c.RenderPDF(result, out)
	}
	if err != nil {
		return err
	}
	return out.Close()
}
