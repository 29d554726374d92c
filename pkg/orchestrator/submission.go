package orchestrator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Entry is a single field value inside a Submission.
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Submission is an ordered mapping from form field key to value. Order
// matters: the analysis text concatenates values in submission order.
type Submission struct {
	entries []Entry
}

// NewSubmission builds a submission from ordered entries. Later entries
// replace earlier ones with the same key while keeping the first position.
func NewSubmission(entries ...Entry) Submission {
	var s Submission
	for _, entry := range entries {
		s = s.With(entry.Key, entry.Value)
	}
	return s
}

// SubmissionFromMap builds a submission from an unordered map. Keys are
// sorted so the resulting analysis text is deterministic.
func SubmissionFromMap(values map[string]any) Submission {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var s Submission
	for _, key := range keys {
		s = s.With(key, values[key])
	}
	return s
}

// With returns a copy of s with key set to value.
func (s Submission) With(key string, value any) Submission {
	key = strings.TrimSpace(key)
	out := Submission{entries: make([]Entry, 0, len(s.entries)+1)}
	replaced := false
	for _, entry := range s.entries {
		if entry.Key == key {
			out.entries = append(out.entries, Entry{Key: key, Value: value})
			replaced = true
			continue
		}
		out.entries = append(out.entries, entry)
	}
	if !replaced && key != "" {
		out.entries = append(out.entries, Entry{Key: key, Value: value})
	}
	return out
}

// Get returns the raw value stored under key.
func (s Submission) Get(key string) (any, bool) {
	for _, entry := range s.entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// String returns the value under key formatted as text, or fallback when the
// key is absent or blank.
func (s Submission) String(key, fallback string) string {
	value, ok := s.Get(key)
	if !ok || value == nil {
		return fallback
	}
	text := formatValue(value)
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

// Keys returns the field keys in submission order.
func (s Submission) Keys() []string {
	out := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry.Key)
	}
	return out
}

// Entries returns a copy of the ordered entries.
func (s Submission) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Len reports the number of fields.
func (s Submission) Len() int {
	return len(s.entries)
}

// Map returns the submission as an unordered map.
func (s Submission) Map() map[string]any {
	out := make(map[string]any, len(s.entries))
	for _, entry := range s.entries {
		out[entry.Key] = entry.Value
	}
	return out
}

// Equal reports whether both submissions hold the same keys in the same
// order with equal formatted values.
func (s Submission) Equal(other Submission) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for i, entry := range s.entries {
		peer := other.entries[i]
		if entry.Key != peer.Key || formatValue(entry.Value) != formatValue(peer.Value) {
			return false
		}
	}
	return true
}

// Text joins every value in submission order with a single space and
// lowercases the result. Absent (nil) values contribute an empty string.
func (s Submission) Text() string {
	parts := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		parts = append(parts, strings.ToLower(formatValue(entry.Value)))
	}
	return strings.Join(parts, " ")
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON encodes the submission as a JSON object preserving field order.
func (s Submission) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
