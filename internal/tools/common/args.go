package common

import (
	"strings"
)

// StringArg returns the string value for key, or "" when absent or not a
// string. Leading and trailing whitespace is trimmed.
func StringArg(args map[string]interface{}, key string) string {
	v, ok := args[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// BoolArg returns the boolean value for key, defaulting to false.
func BoolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// Int64Arg returns the numeric value for key. JSON numbers arrive as
// float64, so both representations are accepted.
func Int64Arg(args map[string]interface{}, key string) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// StringListArg returns the list value for key. Accepts a JSON array of
// strings or a single comma-separated string; blank entries are dropped.
func StringListArg(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []interface{}:
		var out []string
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

// MapArg returns the object value for key, or nil when absent.
func MapArg(args map[string]interface{}, key string) map[string]interface{} {
	v, _ := args[key].(map[string]interface{})
	return v
}
