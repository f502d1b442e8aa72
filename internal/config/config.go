// Package config provides YAML configuration for table conversions.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/primex-melvin/tabledoc/internal/document"
	"github.com/primex-melvin/tabledoc/internal/layout"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value is out of range or unknown.
var ErrInvalid = errors.New("invalid config")

// Config is the complete conversion configuration.
type Config struct {
	Title    string `yaml:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Author   string `yaml:"author,omitempty"`

	Page   PageConfig   `yaml:"page"`
	Table  TableConfig  `yaml:"table"`
	Layout LayoutConfig `yaml:"layout"`
	Fonts  FontConfig   `yaml:"fonts,omitempty"`
	Source SourceConfig `yaml:"source,omitempty"`
}

// PageConfig holds page format settings.
type PageConfig struct {
	Size        string       `yaml:"size"`
	Orientation string       `yaml:"orientation"`
	Margins     MarginConfig `yaml:"margins"`
	Background  string       `yaml:"background,omitempty"`
}

// MarginConfig holds page margins in points.
type MarginConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// TableConfig holds the column schema and content toggles.
type TableConfig struct {
	Columns        []document.ColumnDefinition `yaml:"columns,omitempty"`
	Hidden         []string                    `yaml:"hidden,omitempty"`
	IncludeHeaders bool                        `yaml:"includeHeaders"`
	IncludeTotals  bool                        `yaml:"includeTotals"`
	// GroupBy names the field whose value changes emit category markers
	GroupBy        string             `yaml:"groupBy,omitempty"`
	ColumnWeights  map[string]float64 `yaml:"columnWeights,omitempty"`
	CurrencySymbol string             `yaml:"currencySymbol"`
}

// LayoutConfig holds font and row sizing constants.
type LayoutConfig struct {
	FontFamily         string  `yaml:"fontFamily"`
	FontSize           float64 `yaml:"fontSize"`
	TextPadding        float64 `yaml:"textPadding"`
	MinRowHeight       float64 `yaml:"minRowHeight"`
	MinHeaderRowHeight float64 `yaml:"minHeaderRowHeight"`
	LineHeight         float64 `yaml:"lineHeight"`
	FirstColumnInset   float64 `yaml:"firstColumnInset"`
}

// FontConfig points at TrueType files used for measuring and embedding.
type FontConfig struct {
	Regular string `yaml:"regular,omitempty"`
	Bold    string `yaml:"bold,omitempty"`
}

// SourceConfig selects what to read from the input.
type SourceConfig struct {
	Format string `yaml:"format,omitempty"`
	Sheet  string `yaml:"sheet,omitempty"`
	Query  string `yaml:"query,omitempty"`
	Table  string `yaml:"table,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	p := layout.DefaultRowParams()
	return &Config{
		Page: PageConfig{
			Size:        string(document.PageSizeA4),
			Orientation: string(document.OrientationPortrait),
			Margins:     MarginConfig{Top: 40, Right: 40, Bottom: 40, Left: 40},
		},
		Table: TableConfig{
			IncludeHeaders: true,
			IncludeTotals:  true,
			CurrencySymbol: document.DefaultCurrencySymbol,
		},
		Layout: LayoutConfig{
			FontFamily:         p.FontFamily,
			FontSize:           p.FontSize,
			TextPadding:        p.TextPadding,
			MinRowHeight:       p.MinRowHeight,
			MinHeaderRowHeight: p.MinHeaderRowHeight,
			LineHeight:         p.LineHeight,
			FirstColumnInset:   p.FirstColumnInset,
		},
	}
}

// BudgetExample returns the default configuration with the columns of a
// budget allocation table, written by init-config.
func BudgetExample() *Config {
	cfg := Default()
	cfg.Title = "Budget Allocation"
	cfg.Table.GroupBy = "category"
	cfg.Table.Hidden = []string{"category"}
	cfg.Table.Columns = []document.ColumnDefinition{
		{Key: "particular", Label: "Particular", Align: document.AlignLeft, Kind: document.KindText},
		{Key: "category", Label: "Category", Align: document.AlignLeft, Kind: document.KindText},
		{Key: "implementingOffice", Label: "Implementing Office", Align: document.AlignLeft, Kind: document.KindText},
		{Key: "totalBudgetAllocated", Label: "Allocated", Align: document.AlignRight, Kind: document.KindCurrency},
		{Key: "totalBudgetUtilized", Label: "Utilized", Align: document.AlignRight, Kind: document.KindCurrency},
		{Key: "utilizationRate", Label: "Utilization", Align: document.AlignRight, Kind: document.KindPercent},
		{Key: "status", Label: "Status", Align: document.AlignCenter, Kind: document.KindStatus},
		{Key: "remarks", Label: "Remarks", Align: document.AlignLeft, Kind: document.KindText},
	}
	return cfg
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// InitConfig writes the budget example config if path does not exist.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return BudgetExample().Save(path)
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if _, ok := document.ParsePageSize(c.Page.Size); !ok {
		return fmt.Errorf("%w: unknown page size %q", ErrInvalid, c.Page.Size)
	}
	if _, ok := document.ParseOrientation(c.Page.Orientation); !ok {
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalid, c.Page.Orientation)
	}
	m := c.Page.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: margins must not be negative", ErrInvalid)
	}

	l := c.Layout
	if l.FontSize <= 0 {
		return fmt.Errorf("%w: fontSize must be positive", ErrInvalid)
	}
	if l.LineHeight <= 0 {
		return fmt.Errorf("%w: lineHeight must be positive", ErrInvalid)
	}
	if l.TextPadding < 0 || l.FirstColumnInset < 0 {
		return fmt.Errorf("%w: padding and inset must not be negative", ErrInvalid)
	}
	if l.MinRowHeight <= 0 || l.MinHeaderRowHeight <= 0 {
		return fmt.Errorf("%w: minimum row heights must be positive", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Table.Columns))
	for i, col := range c.Table.Columns {
		if col.Key == "" {
			return fmt.Errorf("%w: column %d has no key", ErrInvalid, i+1)
		}
		if seen[col.Key] {
			return fmt.Errorf("%w: duplicate column key %q", ErrInvalid, col.Key)
		}
		seen[col.Key] = true
		if col.Kind != "" && document.ParseValueKind(string(col.Kind)) != col.Kind {
			return fmt.Errorf("%w: column %q has unknown kind %q", ErrInvalid, col.Key, col.Kind)
		}
		switch col.Align {
		case "", document.AlignLeft, document.AlignCenter, document.AlignRight:
		default:
			return fmt.Errorf("%w: column %q has unknown alignment %q", ErrInvalid, col.Key, col.Align)
		}
		if col.Weight < 0 {
			return fmt.Errorf("%w: column %q has a negative weight", ErrInvalid, col.Key)
		}
	}
	for key, w := range c.Table.ColumnWeights {
		if w <= 0 {
			return fmt.Errorf("%w: column weight for %q must be positive", ErrInvalid, key)
		}
	}
	return nil
}
