package text

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// coreSubstitutes spell out symbols the PDF core fonts have no glyph for
var coreSubstitutes = map[rune]string{
	'\u20b1': "PHP ", // peso sign
	'\u2212': "-",    // minus sign
	'\u2009': " ",    // thin space
	'\u202f': " ",    // narrow no-break space
}

// CoreText rewrites s so that every rune is encodable in cp1252, the
// encoding of the PDF core fonts. Known symbols are spelled out and any
// other rune outside the code page becomes '?'.
func CoreText(s string) string {
	if encodable(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
			continue
		}
		if sub, ok := coreSubstitutes[r]; ok {
			b.WriteString(sub)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

func encodable(s string) bool {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}
