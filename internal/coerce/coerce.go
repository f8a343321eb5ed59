// Package coerce converts loosely-typed values decoded from extraction
// output into strict numeric and time values. None of its functions fail:
// unusable input yields the documented default.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToNumber converts v into a decimal. Missing, blank or non-numeric input
// yields zero, and so do NaN and infinities.
func ToNumber(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case string:
		return parseDecimal(n)
	case json.Number:
		return parseDecimal(n.String())
	case float64:
		return fromFloat(n)
	case float32:
		return fromFloat(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	}

	return decimal.Zero
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}

	return decimal.NewFromFloat(f)
}

// ToInteger converts v into an int, returning def when v is missing or has
// no leading digits. Fractions are truncated toward zero.
func ToInteger(v any, def int) int {
	switch n := v.(type) {
	case nil:
		return def
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return def
		}

		return int(n)
	case json.Number:
		return leadingInt(n.String(), def)
	case string:
		return leadingInt(n, def)
	}

	return def
}

// leadingInt parses the optional sign and digits at the start of s, so
// "3 pcs" and "2.5" both read as their integer prefix.
func leadingInt(s string, def int) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digits {
		return def
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}

	return n
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"01/02/2006",
	"02.01.2006",
}

// ToDate converts v into a UTC time. Strings are tried against the common
// layouts produced by extraction tools; numbers are Unix milliseconds.
// Anything missing or unparseable yields def.
func ToDate(v any, def time.Time) time.Time {
	switch d := v.(type) {
	case nil:
		return def
	case time.Time:
		return d.UTC()
	case string:
		return parseDate(d, def)
	case json.Number:
		ms, err := d.Int64()
		if err != nil {
			return parseDate(d.String(), def)
		}

		return time.UnixMilli(ms).UTC()
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return def
		}

		return time.UnixMilli(int64(d)).UTC()
	}

	return def
}

func parseDate(s string, def time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	return def
}
