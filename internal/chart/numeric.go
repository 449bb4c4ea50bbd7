package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var numericStripper = strings.NewReplacer(".", "", "-", "")

// IsNumeric is the permissive numeric check used by validation. Native
// numbers pass, and so does any string that is only digits once every '.' and
// '-' is removed. That accepts malformed strings such as "1.2.3" or "--5";
// CoerceValues deals with those at render time. Bools are not numeric.
func IsNumeric(v any) bool {
	if _, ok := nativeFloat(v); ok {
		return true
	}
	s, ok := v.(string)
	return ok && numericLooking(s)
}

func numericLooking(s string) bool {
	s = numericStripper.Replace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func nativeFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// CoerceValues converts a validated sequence to floats. Elements that are not
// numeric become 0. If a numeric-looking string cannot actually be parsed,
// the whole sequence falls back to 1 for every element.
func CoerceValues(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if f, ok := nativeFloat(v); ok {
			out[i] = f
			continue
		}
		s, ok := v.(string)
		if !ok || !numericLooking(s) {
			out[i] = 0
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return uniform(len(values), 1)
		}
		out[i] = f
	}
	return out
}

func uniform(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// FormatValue renders a bar annotation: one decimal when fractional,
// otherwise an integer.
func FormatValue(v float64) string {
	if v != math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func labelText(v any) string {
	switch l := v.(type) {
	case nil:
		return ""
	case string:
		return l
	case float64:
		return floatLabel(l, 64)
	case float32:
		return floatLabel(float64(l), 32)
	}
	return fmt.Sprint(v)
}

// floatLabel keeps floats recognisable as floats: 1.0 reads "1.0", not "1".
func floatLabel(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

func labelTexts(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = labelText(v)
	}
	return out
}
