package pipeline

import (
	"fmt"
	"strconv"
)

// Tree is a schema-less gateway payload: nested maps, lists and scalars as
// decoded from JSON. Lookups never fail; a missing path resolves to "".
type Tree map[string]any

// Str returns the scalar at path rendered as a string, or "" when the path
// does not resolve or points at a non-scalar.
func (t Tree) Str(path ...string) string {
	var cur any = map[string]any(t)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[key]
		if !ok {
			return ""
		}
	}
	return scalarString(cur)
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// chain is an ordered list of lookup paths; the first path yielding a
// non-empty value wins.
type chain [][]string

func p(path ...string) []string { return path }

func (c chain) resolve(t Tree) string {
	for _, path := range c {
		if v := t.Str(path...); v != "" {
			return v
		}
	}
	return ""
}
