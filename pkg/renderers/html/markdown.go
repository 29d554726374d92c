package html

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts markdown to sanitized HTML. Raw HTML in the source is
// dropped by goldmark and the output is passed through a bluemonday policy.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown builds a converter with GitHub flavoured extensions. A nil
// policy means bluemonday.UGCPolicy.
func NewMarkdown(policy *bluemonday.Policy) *Markdown {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: policy,
	}
}

// Render converts source. Empty source yields an empty string.
func (m *Markdown) Render(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("html renderer: convert markdown: %w", err)
	}
	return m.policy.Sanitize(buf.String()), nil
}
