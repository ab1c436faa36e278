package services

import (
	"encoding/json"
	"strconv"
)

// RawItem is one decoded JSON object in a catalog's native shape
type RawItem map[string]any

// String returns the value at key as a string. Numbers are formatted
// without a decimal point when integral; anything else yields "".
func (r RawItem) String(key string) string {
	return stringify(r[key])
}

// Object returns the nested object at key, or nil
func (r RawItem) Object(key string) RawItem {
	switch v := r[key].(type) {
	case map[string]any:
		return RawItem(v)
	case RawItem:
		return v
	}
	return nil
}

// Objects returns the nested array of objects at key, skipping non-objects
func (r RawItem) Objects(key string) []RawItem {
	list, ok := r[key].([]any)
	if !ok {
		return nil
	}

	items := make([]RawItem, 0, len(list))
	for _, elem := range list {
		if m, ok := elem.(map[string]any); ok {
			items = append(items, RawItem(m))
		}
	}
	return items
}

// Strings returns the nested array of strings at key
func (r RawItem) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Int returns the value at key as an integer
func (r RawItem) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// Has reports whether key is present with a non-null value
func (r RawItem) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

// yearPrefix returns the first four characters of a date string, or the
// whole string when shorter
func yearPrefix(date string) string {
	if len(date) < 4 {
		return date
	}
	return date[:4]
}
