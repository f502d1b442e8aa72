package text

import (
	"strings"
	"unicode"
)

// Font is the font a piece of text is measured with
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// Wrap greedily breaks text into lines no wider than maxWidth. Words are
// never split: a word wider than maxWidth gets a line of its own. Runs of
// whitespace collapse to single spaces. The result always has at least one
// line.
func Wrap(m Metrics, text string, maxWidth float64, f Font) []string {
	if maxWidth <= 0 || text == "" {
		return []string{text}
	}

	words := splitIntoWords(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 1)
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if m.MeasureWidth(candidate, f.Size, f.Family, f.Bold) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// splitIntoWords splits text into words
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}
