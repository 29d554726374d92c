package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted inside every rendered form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden formats value with fmt.Sprint. Surrounding space is trimmed from
// name.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// MergeHiddenFields copies base and applies fields over it in order. Blank
// names are dropped and nil is returned when nothing remains.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	merged := map[string]string{}
	for key, value := range base {
		if key = strings.TrimSpace(key); key != "" {
			merged[key] = value
		}
	}
	for _, field := range fields {
		if field.Name != "" {
			merged[field.Name] = field.Value
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// SortedHiddenFields lists fields by name so output is deterministic.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	var sorted []HiddenField
	for name, value := range fields {
		if name = strings.TrimSpace(name); name != "" {
			sorted = append(sorted, HiddenField{Name: name, Value: value})
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}
