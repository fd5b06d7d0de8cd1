package series

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Coerce converts each raw cell value to a number where it parses as a decimal
// float literal. Everything else is kept unchanged, so the result always has the
// same length as values.
func Coerce(values []any) []Value {
	result := make([]Value, 0, len(values))
	for _, v := range values {
		result = append(result, CoerceValue(v))
	}
	return result
}

func CoerceValue(v any) Value {
	switch n := v.(type) {
	case Value:
		return n
	case float64:
		return Number(n)
	case float32:
		return Number(float64(n))
	case int:
		return Number(float64(n))
	case int8:
		return Number(float64(n))
	case int16:
		return Number(float64(n))
	case int32:
		return Number(float64(n))
	case int64:
		return Number(float64(n))
	case uint:
		return Number(float64(n))
	case uint8:
		return Number(float64(n))
	case uint16:
		return Number(float64(n))
	case uint32:
		return Number(float64(n))
	case uint64:
		return Number(float64(n))
	case json.Number:
		if f, ok := parseDecimal(n.String()); ok {
			return Number(f)
		}
	case string:
		if f, ok := parseDecimal(n); ok {
			return Number(f)
		}
	}
	return Raw(v)
}

// parseDecimal accepts decimal float literals only: "1", "-2.5", "1e3", "inf",
// "nan". Hex floats, digit separators and comma decimals are rejected.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, false
	}
	if strings.ContainsRune(s, '_') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range literals still parse, as ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
