package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document is one raw record as decoded from the feed.
type Document map[string]any

// Lookup follows a dot-separated path through nested objects.
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)

	for key := range strings.SplitSeq(path, ".") {
		m, ok := asObject(cur)
		if !ok {
			return nil, false
		}

		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}

	return cur, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	}

	return nil, false
}

// isScalar reports whether v is a usable leaf value: not missing, not a
// blank string, not an object or array.
func isScalar(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(s) != ""
	case map[string]any, Document, []any:
		return false
	}

	return true
}

// scalarString renders a scalar leaf as text; numbers keep their source
// formatting so an id of 42 reads "42".
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}

	return ""
}
