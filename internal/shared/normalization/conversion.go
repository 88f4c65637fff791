package normalization

import (
	"math"
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

// AsInt coerces numeric values (including numeric strings) into Go ints.
// Fractions are truncated toward zero.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case string:
		return int(AsFloat64(typed))
	default:
		return 0
	}
}

// AsFloat64 coerces numeric values (including numeric strings) into float64.
func AsFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
				return parsed
			}
		}
	}
	return 0
}

// MapFromPayload unwraps common envelope structures (e.g. {"data": {...}})
// into a plain map.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// MarketValueMillions parses catalog market values such as "€85.0M", "€850K"
// or "12,5M" into millions of currency units. Unparseable input yields ok=false.
func MarketValueMillions(raw string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		case r == ',':
			return '.'
		case r == 'm', r == 'M', r == 'k', r == 'K':
			return r
		default:
			return -1
		}
	}, strings.TrimSpace(raw))
	if clean == "" {
		return 0, false
	}

	scale := 1.0 / 1_000_000
	switch {
	case strings.ContainsAny(clean, "mM"):
		scale = 1
	case strings.ContainsAny(clean, "kK"):
		scale = 1.0 / 1_000
	}
	number := strings.TrimRight(clean, "mMkK")
	parsed, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}
	return parsed * scale, true
}
