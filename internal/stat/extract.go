package stat

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ExtractValue normalizes a stat value from the vendor's JSON.
//
// The AU API mostly sends numbers, but some older seasons send numeric
// strings. Returns ok=false for null or anything that is not a number.
func ExtractValue(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// extractCount coerces a counting stat: a whole number >= 0, else null.
func extractCount(val any) Value {
	f, ok := ExtractValue(val)
	if !ok || f < 0 || f != math.Trunc(f) {
		return Null
	}
	return Of(f)
}

// extractMeasure coerces a summable non-integer stat such as minutes.
func extractMeasure(val any) Value {
	f, ok := ExtractValue(val)
	if !ok || f < 0 {
		return Null
	}
	return Of(f)
}

// ParseInnings converts the box-score innings notation, where the digit after
// the point counts extra outs, into true thirds: "6.1" is 6.333 and "6.2" is
// 6.667. Anything unparseable is null.
func ParseInnings(val any) Value {
	raw, ok := textOf(val)
	if !ok {
		return Null
	}
	raw = strings.TrimSpace(raw)
	whole, frac, hasFrac := strings.Cut(raw, ".")
	if hasFrac && (frac == "1" || frac == "2") {
		n, err := strconv.Atoi(whole)
		if err != nil || n < 0 {
			return Null
		}
		if frac == "1" {
			return Of(Round3(float64(n) + 0.333))
		}
		return Of(Round3(float64(n) + 0.667))
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return Null
	}
	return Of(f)
}

// textOf renders a scalar JSON value as text.
func textOf(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// extractInt reads a whole-number field. present reports whether the key
// exists at all, ok whether it held an integer.
func extractInt(m map[string]any, key string) (n int, present, ok bool) {
	raw, present := m[key]
	if !present {
		return 0, false, false
	}
	f, ok := ExtractValue(raw)
	if !ok || f != math.Trunc(f) {
		return 0, true, false
	}
	return int(f), true, true
}

func extractOptInt(m map[string]any, key string) *int {
	n, _, ok := extractInt(m, key)
	if !ok {
		return nil
	}
	return &n
}

func extractString(m map[string]any, key string) string {
	s, _ := textOf(m[key])
	return s
}

func extractOptString(m map[string]any, key string) *string {
	s, ok := textOf(m[key])
	if !ok {
		return nil
	}
	return &s
}

func extractBool(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case float64:
		return v != 0
	default:
		return false
	}
}

// firstEntry returns the stat block stored under key: the first element of a
// non-empty list, or a non-empty object.
func firstEntry(m map[string]any, key string) (map[string]any, bool) {
	switch v := m[key].(type) {
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		entry, ok := v[0].(map[string]any)
		return entry, ok && len(entry) > 0
	case map[string]any:
		return v, len(v) > 0
	default:
		return nil, false
	}
}

// cleanName replaces the typographic apostrophe (U+2019) the vendor uses in
// some names with an ASCII one.
func cleanName(s string) string {
	return strings.ReplaceAll(s, "\u2019", "'")
}
