package text

import (
	"math"
	"testing"
)

func TestCoreText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"₱1,234", "PHP 1,234"},
		{"-₱2,500", "-PHP 2,500"},
		{"Café €5", "Café €5"},
		{"−3", "-3"},
		{"Line one\nLine two", "Line one\nLine two"},
		{"日本", "??"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CoreText(tt.in); got != tt.want {
			t.Errorf("CoreText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontMetricsMeasuresSubstitutedText(t *testing.T) {
	m := NewFontMetrics()
	peso := m.MeasureWidth("₱1,234", 9, "Helvetica", false)
	spelled := m.MeasureWidth("PHP 1,234", 9, "Helvetica", false)
	if math.Abs(peso-spelled) > 1e-9 {
		t.Errorf("width of peso amount = %v, want %v", peso, spelled)
	}
}
