package codec

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// HTML renders doc as sanitized HTML. Frontmatter is not rendered.
func (m *Markdown) HTML(doc rich.Doc) (string, error) {
	doc.Frontmatter = ""
	markdown, err := m.ToMarkdown(doc)
	if err != nil {
		return "", err
	}
	return RenderHTML(markdown)
}

// RenderHTML renders markdown with GitHub flavored extensions and sanitizes
// the result with the user generated content policy.
func RenderHTML(markdown string) (string, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := engine.Convert([]byte(SplitFrontmatter(markdown).Body), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return sanitizePolicy().Sanitize(buf.String()), nil
}

// sanitizePolicy is the UGC policy plus disabled task checkboxes.
func sanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("input")
	policy.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return policy
}
