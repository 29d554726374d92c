package page

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Record is a single data object bound to a page.
type Record = map[string]any

// TitleCase turns a snake_case key into a label: "affected_system" becomes
// "Affected System".
func TitleCase(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Display formats a data value as text. Whole floats drop their fraction so
// YAML and JSON numbers read naturally.
func Display(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format("2006-01-02 15:04")
	case fmt.Stringer:
		return v.String()
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, Display(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// isZero reports values a table cell leaves blank: nil, empty strings and
// collections, false and numeric zero.
func isZero(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// asRecords accepts a slice of maps in any of the shapes YAML, JSON and Go
// callers produce. nil yields an empty list.
func asRecords(data any) ([]Record, bool) {
	switch v := data.(type) {
	case nil:
		return nil, true
	case []Record:
		return v, true
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			record, ok := asRecord(item)
			if !ok {
				return nil, false
			}
			out = append(out, record)
		}
		return out, true
	}
	if kind := reflect.TypeOf(data).Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, false
	}
	var out []Record
	if err := roundTrip(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

// asRecord accepts a map or a struct that encodes to a JSON object.
func asRecord(data any) (Record, bool) {
	switch v := data.(type) {
	case nil:
		return nil, false
	case Record:
		return v, true
	case map[any]any:
		out := make(Record, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = value
		}
		return out, true
	}
	kind := reflect.TypeOf(data).Kind()
	if kind == reflect.Pointer {
		kind = reflect.TypeOf(data).Elem().Kind()
	}
	if kind != reflect.Struct && kind != reflect.Map {
		return nil, false
	}
	var out Record
	if err := roundTrip(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

func roundTrip(in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

// firstOf returns the value of the first key present in record.
func firstOf(record Record, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := record[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func stringOf(record Record, keys ...string) string {
	value, _ := firstOf(record, keys...)
	return Display(value)
}
