// Package saferepr formats Go values as CAD-interpreter script literals,
// the way the FreeCAD addon this system is grounded on escapes tool
// parameters before splicing them into a generated script (spec §4.6, §9
// "script-injection hygiene"). Every tool template in internal/tools must
// go through Repr instead of naive string concatenation so that a value like
// `foo'); bar()` is embedded as the literal string it is, never as code.
package saferepr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Repr renders v as a literal the CAD interpreter's parser accepts,
// close to Python's repr() for the subset of types tool parameters use:
// nil, bool, integers, floats, strings, []any, and map[string]any. Floats use
// Go's shortest 'g' formatting, so an integral float such as 1.0 renders as 1.
func Repr(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"

	case bool:
		if x {
			return "True"
		}

		return "False"

	case string:
		return reprString(x)

	case int:
		return strconv.Itoa(x)

	case int64:
		return strconv.FormatInt(x, 10)

	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)

	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)

	case []any:
		return reprList(x)

	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}

		return reprList(items)

	case map[string]any:
		return reprDict(x)

	default:
		// Unknown types fall back to their default string form, still
		// wrapped as a safe string literal rather than interpolated raw.
		return reprString(fmt.Sprintf("%v", x))
	}
}

// reprString mirrors Python's str repr: single-quoted, with embedded quotes,
// backslashes, and control characters escaped so the result is always one
// syntactic string literal no matter what the caller supplied.
func reprString(s string) string {
	var b strings.Builder

	b.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('\'')

	return b.String()
}

func reprList(items []any) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Repr(it)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

func reprDict(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys) // deterministic output makes generated scripts diffable in tests

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = reprString(k) + ": " + Repr(m[k])
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
