// Package normalize holds the small total functions shared by ingestion and
// reconciliation: identifier cleanup, locale-aware value parsing and
// permissive date reformatting. None of them ever return an error — malformed
// input resolves to a defined fallback.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ID normalizes a raw operation identifier so the same operation can be
// matched across reports that encode it differently. Float round-tripped
// values like "12345.0" and padded values like " 12345 " both become "12345".
func ID(raw string) string {
	s := strings.ReplaceAll(raw, ".0", "")
	return strings.TrimSpace(s)
}

// LocaleFloat parses a Brazilian-formatted decimal ("1.234,56"): every dot is
// a thousands separator and the comma is the decimal separator, so dots are
// always stripped even when no comma follows ("1.234" is 1234, not 1.234).
// Unparseable input yields 0.
func LocaleFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Float parses a plain decimal field, returning def when the field is empty
// or not numeric.
func Float(raw string, def float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// Round2 rounds to two decimal places (cents).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var dateLayouts = []string{
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// Date parses a report date in any of the formats the platform emits and
// reformats it as dd/mm/yyyy. Unparseable input comes back trimmed but
// otherwise untouched; empty input stays empty.
func Date(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}
