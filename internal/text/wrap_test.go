package text

import (
	"strings"
	"testing"
)

// fixedMetrics measures every rune as one unit wide
type fixedMetrics struct{}

func (fixedMetrics) MeasureWidth(text string, _ float64, _ string, _ bool) float64 {
	return float64(len([]rune(text)))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits on one line", "hello world", 20, []string{"hello world"}},
		{"breaks between words", "hello world", 8, []string{"hello", "world"}},
		{"exact fit", "ab cd", 5, []string{"ab cd"}},
		{"long word gets its own line", "a verylongword b", 5, []string{"a", "verylongword", "b"}},
		{"whitespace collapses", "  a \t b\n\nc  ", 100, []string{"a b c"}},
		{"empty text", "", 10, []string{""}},
		{"whitespace only", "   ", 10, []string{""}},
		{"zero width returns text", "hello world", 0, []string{"hello world"}},
		{"negative width returns text", "hello world", -5, []string{"hello world"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(fixedMetrics{}, tt.text, tt.maxWidth, Font{Size: 9})
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapCorrectnessAndTotality(t *testing.T) {
	texts := []string{
		"Construction of farm-to-market road connecting Barangay San Isidro and Barangay Santa Cruz",
		"Supplementalappropriationforthecontinuingrehabilitation of the municipal hall",
		"a b c d e f g h i j k l m n o p",
		"   leading and   trailing   ",
		"one",
	}
	widths := []float64{1, 5, 12, 30, 80, 500}
	m := ApproxMetrics{}
	f := Font{Family: "Helvetica", Size: 9}

	for _, text := range texts {
		normalized := strings.Join(strings.Fields(text), " ")
		for _, w := range widths {
			lines := Wrap(m, text, w, f)
			if len(lines) == 0 {
				t.Fatalf("Wrap(%q, %v) returned no lines", text, w)
			}
			for _, line := range lines {
				if m.MeasureWidth(line, f.Size, f.Family, f.Bold) > w && strings.Contains(line, " ") {
					t.Errorf("Wrap(%q, %v): line %q is wider than the limit", text, w, line)
				}
			}
			if got := strings.Join(lines, " "); got != normalized {
				t.Errorf("Wrap(%q, %v) lost text: %q", text, w, got)
			}
		}
	}
}

func TestWrapMoreTextNeverFewerLines(t *testing.T) {
	m := ApproxMetrics{}
	f := Font{Size: 9}
	text := ""
	prev := 0
	for i := 0; i < 50; i++ {
		text += "word "
		n := len(Wrap(m, text, 60, f))
		if n < prev {
			t.Fatalf("line count dropped from %d to %d at %d words", prev, n, i+1)
		}
		prev = n
	}
}
