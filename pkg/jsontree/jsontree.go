// Package jsontree provides safe access to decoded JSON trees.
//
// Personal-data exports arrive as deeply nested, inconsistently populated
// JSON documents. All reads from those trees go through this package: a
// missing key, a wrongly shaped intermediate node or an explicit null all
// resolve to the caller-supplied default instead of a panic.
package jsontree

// Get walks root one key at a time and returns the value found at the end
// of path. If any step is not an object, does not contain the next key, or
// the final value is nil, def is returned. Get never panics.
func Get(root any, path []string, def any) any {
	current := root
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return def
		}
		next, ok := obj[key]
		if !ok {
			return def
		}
		current = next
	}
	if current == nil {
		return def
	}
	return current
}

// String returns the string at path, or def when the path is absent or the
// value is not a string.
func String(root any, path []string, def string) string {
	if s, ok := Get(root, path, def).(string); ok {
		return s
	}
	return def
}

// Int returns the integer at path. JSON numbers decode as float64, so both
// float64 and int values are accepted; anything else yields def.
func Int(root any, path []string, def int64) int64 {
	switch v := Get(root, path, nil).(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return def
	}
}

// List returns the array at path, or nil when the path does not resolve to
// an array.
func List(root any, path []string) []any {
	if l, ok := Get(root, path, nil).([]any); ok {
		return l
	}
	return nil
}

// Map returns the object at path, or nil when the path does not resolve to
// an object.
func Map(root any, path []string) map[string]any {
	if m, ok := Get(root, path, nil).(map[string]any); ok {
		return m
	}
	return nil
}

// Count returns the number of elements in the collection at path. Arrays
// and objects both count; any other value counts as zero.
func Count(root any, path []string) int {
	switch v := Get(root, path, nil).(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	default:
		return 0
	}
}
