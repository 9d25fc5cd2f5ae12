// Package codec is the markdown conversion boundary used by the editor
// adapters: markdown to rich documents and back, plus HTML in both directions.
package codec

import (
	"context"
	"fmt"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/mdconverter"
	"github.com/rgonek/md-wysiwyg/rich"
)

// Codec converts between markdown and the rich representation.
type Codec interface {
	ToRich(markdown string) (rich.Doc, error)
	ToMarkdown(doc rich.Doc) (string, error)
}

// Config configures both halves of the markdown codec.
type Config struct {
	Converter converter.Config        `json:"converter"`
	Reverse   mdconverter.ReverseConfig `json:"reverse"`
}

// Markdown is the goldmark backed Codec.
type Markdown struct {
	parser     *mdconverter.Converter
	serializer *converter.Converter
}

var _ Codec = (*Markdown)(nil)

// NewMarkdown builds a Markdown codec.
func NewMarkdown(cfg Config) (*Markdown, error) {
	parser, err := mdconverter.New(cfg.Reverse)
	if err != nil {
		return nil, fmt.Errorf("reverse config: %w", err)
	}
	serializer, err := converter.New(cfg.Converter)
	if err != nil {
		return nil, fmt.Errorf("converter config: %w", err)
	}
	return &Markdown{parser: parser, serializer: serializer}, nil
}

// ToRich parses markdown. A leading frontmatter block is kept verbatim on
// the document and does not reach the markdown parser.
func (m *Markdown) ToRich(markdown string) (rich.Doc, error) {
	result, err := m.Parse(context.Background(), markdown)
	if err != nil {
		return rich.Doc{}, err
	}
	return result.Doc, nil
}

// ToMarkdown serializes doc.
func (m *Markdown) ToMarkdown(doc rich.Doc) (string, error) {
	result, err := m.Serialize(context.Background(), doc)
	if err != nil {
		return "", err
	}
	return result.Markdown, nil
}

// Parse is ToRich with cancellation and conversion warnings.
func (m *Markdown) Parse(ctx context.Context, markdown string) (mdconverter.Result, error) {
	front := SplitFrontmatter(markdown)
	result, err := m.parser.ConvertWithContext(ctx, front.Body)
	if err != nil {
		return mdconverter.Result{}, err
	}
	result.Doc.Frontmatter = front.Raw
	return result, nil
}

// Serialize is ToMarkdown with cancellation and conversion warnings.
func (m *Markdown) Serialize(ctx context.Context, doc rich.Doc) (converter.Result, error) {
	return m.serializer.ConvertWithContext(ctx, doc)
}
