// Package core holds the domain model and the currency codec.
//
// The codec converts between numeric amounts and the two string shapes the
// clients deal in: a canonical parseable string and a progressively masked
// "as-you-type" value. Both directions are total functions; malformed input
// degrades to zero values instead of failing, because these run on every
// keystroke of a currency field.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseCurrency converts a user-typed amount into a float64.
//
// It strips a leading "R$" and any whitespace. When a comma is present the
// string is read as pt-BR: dots are thousands separators and the last comma
// is the decimal point. Without a comma the string is read as dot-decimal,
// collapsing repeated dots so only the last one separates decimals (this
// protects against thousands-dot input that lost its comma).
//
// Examples:
//
//	ParseCurrency("R$ 1.234,56") -> 1234.56
//	ParseCurrency("1234.56")     -> 1234.56
//	ParseCurrency("abc")         -> 0
func ParseCurrency(s string) float64 {
	s = stripCurrencySymbol(s)
	if s == "" {
		return 0
	}

	if i := strings.LastIndexByte(s, ','); i >= 0 {
		cleaner := strings.NewReplacer(".", "", ",", "")
		s = cleaner.Replace(s[:i]) + "." + cleaner.Replace(s[i+1:])
	} else if strings.Count(s, ".") > 1 {
		i := strings.LastIndexByte(s, '.')
		s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v { // reject NaN from inputs like "nan"
		return 0
	}
	return v
}

// FormatInputCurrency masks a partially typed amount for display.
//
// Everything but digits and commas is dropped. When several commas were
// typed only the last one survives as the decimal separator; a comma with
// no decimals typed yet is dropped. The integer part is grouped with dots
// every three digits and the decimal part is cut to two digits. Empty input
// yields "". The function is idempotent on its own output.
func FormatInputCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return ""
	}

	intPart := clean
	fracPart := ""
	if i := strings.LastIndexByte(clean, ','); i >= 0 {
		intPart = strings.ReplaceAll(clean[:i], ",", "")
		fracPart = clean[i+1:]
	}
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	return out
}

// FormatCurrency renders a finished amount as a pt-BR currency string:
// symbol prefix, dot-grouped thousands and exactly two decimals.
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	out := "R$ " + groupThousands(intPart) + "," + fracPart
	if neg {
		return "-" + out
	}
	return out
}

func stripCurrencySymbol(s string) string {
	s = strings.ReplaceAll(s, "R$", "")
	// Drop all whitespace, including the NBSP some locales format with.
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// groupThousands inserts a dot every three digits counting from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	first := len(digits) % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(digits[:first])
	for i := first; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
