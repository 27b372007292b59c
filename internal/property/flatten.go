package property

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field is one labeled leaf of a flattened JSON document
type Field struct {
	Path  string
	Value string
}

// Flatten walks a decoded JSON document and returns every leaf value keyed by
// its dotted path, sorted by path. Array elements use their index as the key.
func Flatten(doc map[string]any) []Field {
	var fields []Field
	flattenInto(&fields, "", doc)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
	return fields
}

func flattenInto(fields *[]Field, prefix string, v any) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 && prefix != "" {
			*fields = append(*fields, Field{Path: prefix, Value: "{}"})
		}
		for k, child := range val {
			flattenInto(fields, joinPath(prefix, k), child)
		}
	case []any:
		if len(val) == 0 {
			*fields = append(*fields, Field{Path: prefix, Value: "[]"})
		}
		for i, child := range val {
			flattenInto(fields, joinPath(prefix, strconv.Itoa(i)), child)
		}
	default:
		*fields = append(*fields, Field{Path: prefix, Value: formatScalar(val)})
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
