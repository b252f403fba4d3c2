// Package config holds the typed value map shared by the config store adapters.
package config

import (
	"sort"
	"strings"
)

// Values is a flat map of dot-notation keys to configuration values.
// It is not safe for concurrent use; stores guard it with their own lock.
type Values map[string]any

// String returns the value for key if it is a string.
func (v Values) String(key string) string {
	str, _ := v[key].(string)
	return str
}

// Int returns the value for key if it is an integer.
// TOML integers decode as int64, JSON-ish numbers as float64.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Float64 returns the value for key as a float, widening integers.
func (v Values) Float64(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Bool returns the value for key if it is a bool.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// StringSlice returns the value for key if it is a list of strings.
func (v Values) StringSlice(key string) []string {
	switch s := v[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Flatten converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(m map[string]any) Values {
	result := make(Values)
	flattenInto(result, m, "")
	return result
}

func flattenInto(dst Values, m map[string]any, prefix string) {
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(dst, nested, fullKey)
			continue
		}
		dst[fullKey] = value
	}
}

// Nest is the inverse of Flatten. A key that is both a leaf and a prefix
// keeps the leaf and drops the nested values under it.
func (v Values) Nest() map[string]any {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	// Sorted so a leaf is placed before any key it prefixes.
	sort.Strings(keys)

	root := make(map[string]any)
	for _, key := range keys {
		value := v[key]
		parts := strings.Split(key, ".")
		node := root
		ok := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, isMap := child.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			node = next
		}
		if ok {
			node[parts[len(parts)-1]] = value
		}
	}
	return root
}
