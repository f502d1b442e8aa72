package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueType tags which field of a Value is populated
type ValueType int

const (
	ValueNull ValueType = iota
	ValueString
	ValueNumber
	ValueDate
)

// Value is a single cell value
type Value struct {
	Type ValueType
	Str  string
	Num  float64
	Time time.Time
}

// String returns a string value
func String(s string) Value { return Value{Type: ValueString, Str: s} }

// Number returns a numeric value
func Number(f float64) Value { return Value{Type: ValueNumber, Num: f} }

// Date returns a date value
func Date(t time.Time) Value { return Value{Type: ValueDate, Time: t} }

// Null returns the empty value
func Null() Value { return Value{} }

// IsNull reports whether the value is empty
func (v Value) IsNull() bool { return v.Type == ValueNull }

// Float returns the numeric form of the value, parsing strings when possible
func (v Value) Float() (float64, bool) {
	switch v.Type {
	case ValueNumber:
		return v.Num, true
	case ValueString:
		return parseNumber(v.Str)
	}
	return 0, false
}

// FromAny converts a decoded JSON/database value into a Value
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case []byte:
		return String(string(t))
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	case bool:
		return String(strconv.FormatBool(t))
	case time.Time:
		return Date(t)
	}
	return String(fmt.Sprint(x))
}

// parseNumber accepts plain numbers as well as values carrying grouping
// separators, a currency symbol or a trailing percent sign
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == 'e', r == 'E', r == '+':
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Coerce converts a raw value into the shape the column's kind expects.
// Values that cannot be converted are returned unchanged.
func (c ColumnDefinition) Coerce(v Value) Value {
	if v.Type == ValueString && strings.TrimSpace(v.Str) == "" {
		return Null()
	}
	switch c.Kind {
	case KindCurrency, KindPercent, KindNumber:
		if v.Type == ValueString {
			if f, ok := parseNumber(v.Str); ok {
				return Number(f)
			}
		}
	case KindDate:
		switch v.Type {
		case ValueString:
			if t, ok := parseDate(v.Str); ok {
				return Date(t)
			}
		case ValueNumber:
			// epoch milliseconds
			return Date(time.UnixMilli(int64(v.Num)).UTC())
		}
	}
	return v
}

// CoerceRecords applies each column's Coerce to every record, returning new records
func CoerceRecords(records []Record, columns []ColumnDefinition) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		next := make(Record, len(rec))
		for k, v := range rec {
			next[k] = v
		}
		for _, col := range columns {
			if v, ok := rec[col.Key]; ok {
				next[col.Key] = col.Coerce(v)
			}
		}
		out[i] = next
	}
	return out
}
