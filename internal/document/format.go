package document

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValueKind selects how a column's values are rendered
type ValueKind string

const (
	KindText     ValueKind = "text"
	KindNumber   ValueKind = "number"
	KindCurrency ValueKind = "currency"
	KindPercent  ValueKind = "percent"
	KindStatus   ValueKind = "status"
	KindDate     ValueKind = "date"
)

// DefaultCurrencySymbol is the Philippine peso sign
const DefaultCurrencySymbol = "₱"

// Placeholder is rendered for missing values
const Placeholder = "-"

const dateLayout = "Jan 2, 2006"

var printer = message.NewPrinter(language.English)

// FormatValue renders a cell value according to its column kind
func FormatValue(v Value, kind ValueKind, currencySymbol string) string {
	if v.IsNull() {
		return Placeholder
	}
	switch kind {
	case KindCurrency:
		if f, ok := v.Float(); ok {
			return FormatCurrency(f, currencySymbol)
		}
	case KindPercent:
		if f, ok := v.Float(); ok {
			return strconv.FormatFloat(f, 'f', 1, 64) + "%"
		}
	case KindNumber:
		if f, ok := v.Float(); ok {
			return formatNumber(f)
		}
	case KindStatus:
		return capitalize(plain(v))
	case KindDate:
		if v.Type == ValueDate {
			return v.Time.Format(dateLayout)
		}
	}
	return plain(v)
}

// FormatCurrency renders an amount with a currency symbol, thousands
// separators and no decimals
func FormatCurrency(f float64, symbol string) string {
	n := math.Round(f)
	s := printer.Sprintf("%.0f", math.Abs(n))
	if n < 0 {
		return "-" + symbol + s
	}
	return symbol + s
}

// FormatTotal renders a totals cell for a column kind
func FormatTotal(f float64, kind ValueKind, currencySymbol string) string {
	return FormatValue(Number(f), kind, currencySymbol)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return printer.Sprintf("%d", int64(f))
	}
	return printer.Sprintf("%.2f", f)
}

func plain(v Value) string {
	switch v.Type {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueDate:
		return v.Time.Format("2006-01-02")
	}
	return Placeholder
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ParseValueKind resolves a kind name, defaulting to text
func ParseValueKind(name string) ValueKind {
	switch k := ValueKind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindNumber, KindCurrency, KindPercent, KindStatus, KindDate:
		return k
	}
	return KindText
}
