// Package pricing interprets the opaque price strings stored on todos.
// The store enforces no currency format, so parsing must tolerate
// comma- and dot-decimal input, thousands separators, currency symbols,
// and plain garbage (which contributes zero to any sum).
package pricing

import (
	"strconv"
	"strings"
)

// Parse extracts a numeric amount from a free-form price string.
// "2,50", "2.50", "1.299,95" and "1,299.95" all parse; anything that
// does not contain a usable number yields 0.
func Parse(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	if lastComma > lastDot {
		// Comma decimal: dots (and earlier commas) are grouping.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", "", strings.Count(s, ",")-1)
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
		if strings.Count(s, ".") > 1 {
			// Multiple dots: all but the last are grouping.
			s = strings.Replace(s, ".", "", strings.Count(s, ".")-1)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatEUR renders an amount the way the checklist UI shows sums,
// with a comma decimal and a trailing euro sign: 2.5 -> "2,50 €".
func FormatEUR(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return strings.Replace(s, ".", ",", 1) + " €"
}
