package layout

import (
	"github.com/primex-melvin/tabledoc/internal/document"
)

// DefaultWeights are relative width hints for the budget tables' columns.
// Keys missing from the table weigh 1.
var DefaultWeights = map[string]float64{
	"particular":           3,
	"particulars":          3,
	"description":          3,
	"projectName":          3,
	"programName":          3,
	"implementingOffice":   2,
	"remarks":              2.5,
	"category":             1.5,
	"totalBudgetAllocated": 1.6,
	"allocatedBudget":      1.6,
	"obligatedBudget":      1.6,
	"totalBudgetUtilized":  1.6,
	"balance":              1.5,
	"amount":               1.5,
	"utilizationRate":      1,
	"projectCompleted":     0.9,
	"projectDelayed":       0.9,
	"projectsOnTrack":      0.9,
	"status":               1,
	"year":                 0.7,
}

// Allocator distributes the table width across columns by weight
type Allocator struct {
	weights map[string]float64
}

// NewAllocator returns an allocator using DefaultWeights with the given
// per-key overrides applied on top
func NewAllocator(overrides map[string]float64) *Allocator {
	w := make(map[string]float64, len(DefaultWeights)+len(overrides))
	for k, v := range DefaultWeights {
		w[k] = v
	}
	for k, v := range overrides {
		if v > 0 {
			w[k] = v
		}
	}
	return &Allocator{weights: w}
}

// Weight returns the weight used for a column
func (a *Allocator) Weight(col document.ColumnDefinition) float64 {
	if col.Weight > 0 {
		return col.Weight
	}
	if w, ok := a.weights[col.Key]; ok && w > 0 {
		return w
	}
	return 1
}

// Allocate returns one width per column, in column order, summing to
// totalWidth. Widths are not rounded.
func (a *Allocator) Allocate(columns []document.ColumnDefinition, totalWidth float64) []float64 {
	widths := make([]float64, len(columns))
	if len(columns) == 0 {
		return widths
	}
	sum := 0.0
	for _, col := range columns {
		sum += a.Weight(col)
	}
	for i, col := range columns {
		widths[i] = totalWidth * a.Weight(col) / sum
	}
	return widths
}

// VisibleColumns returns the columns whose keys are not hidden, in order
func VisibleColumns(columns []document.ColumnDefinition, hidden []string) []document.ColumnDefinition {
	skip := make(map[string]struct{}, len(hidden))
	for _, k := range hidden {
		skip[k] = struct{}{}
	}
	visible := make([]document.ColumnDefinition, 0, len(columns))
	for _, col := range columns {
		if _, ok := skip[col.Key]; ok {
			continue
		}
		visible = append(visible, col)
	}
	return visible
}
