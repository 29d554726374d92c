package registry

import (
	"fmt"
	"strings"
)

// RequiredKeys are the fields every app must fill in.
var RequiredKeys = []string{"name", "hf_space", "url", "description"}

// ValidationError aggregates every problem found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("registry validation failed:")
	for _, problem := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(problem)
	}
	return b.String()
}

// Validate checks required keys, unique URLs and unique HF spaces. All
// problems are reported together in a *ValidationError.
func (r *Registry) Validate() error {
	var problems []string
	problems = append(problems, r.missingKeys()...)
	problems = append(problems, r.duplicates("URL", func(a App) string { return a.URL })...)
	problems = append(problems, r.duplicates("HF space", func(a App) string { return a.HFSpace })...)
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (r *Registry) missingKeys() []string {
	var out []string
	for _, app := range r.Apps() {
		values := map[string]string{
			"name":        app.Name,
			"hf_space":    app.HFSpace,
			"url":         app.URL,
			"description": app.Description,
		}
		for _, key := range RequiredKeys {
			if strings.TrimSpace(values[key]) == "" {
				out = append(out, fmt.Sprintf("app %q missing required key %q", app.ID, key))
			}
		}
	}
	return out
}

// duplicates skips blank values; missingKeys already reports those.
func (r *Registry) duplicates(label string, value func(App) string) []string {
	var out []string
	seen := make(map[string]string)
	for _, app := range r.Apps() {
		v := strings.TrimSpace(value(app))
		if v == "" {
			continue
		}
		if first, ok := seen[v]; ok {
			out = append(out, fmt.Sprintf("duplicate %s %q for apps %q and %q", label, v, first, app.ID))
			continue
		}
		seen[v] = app.ID
	}
	return out
}
