package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/LyzrCore/spaces/pkg/orchestrator"
)

// MustLoadYAML decodes a YAML fixture into out.
func MustLoadYAML(t *testing.T, path string, out any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
}

// MustLoadSubmission reads a YAML mapping as an ordered submission. Key order
// in the file is the submission order.
func MustLoadSubmission(t *testing.T, path string) orchestrator.Submission {
	t.Helper()

	sub, err := LoadSubmission(path)
	if err != nil {
		t.Fatalf("load submission: %v", err)
	}
	return sub
}

// LoadSubmission is MustLoadSubmission for callers without a *testing.T.
func LoadSubmission(path string) (orchestrator.Submission, error) {
	if path == "" {
		return orchestrator.Submission{}, errors.New("testsupport: submission path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return orchestrator.Submission{}, fmt.Errorf("testsupport: read submission: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return orchestrator.Submission{}, fmt.Errorf("testsupport: decode submission: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return orchestrator.Submission{}, fmt.Errorf("testsupport: submission %s is not a mapping", path)
	}

	mapping := doc.Content[0]
	entries := make([]orchestrator.Entry, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		var value any
		if err := mapping.Content[i+1].Decode(&value); err != nil {
			return orchestrator.Submission{}, fmt.Errorf("testsupport: decode %s: %w", mapping.Content[i].Value, err)
		}
		entries = append(entries, orchestrator.Entry{Key: mapping.Content[i].Value, Value: value})
	}
	return orchestrator.NewSubmission(entries...), nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
