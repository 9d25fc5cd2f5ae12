// Package mdconverter parses GitHub flavored markdown into the rich document tree.
package mdconverter

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Converter converts GFM markdown to rich documents.
type Converter struct {
	config ReverseConfig
	parser goldmark.Markdown
}

type state struct {
	config   ReverseConfig
	source   []byte
	ctx      context.Context
	warnings []converter.Warning
}

// New creates a new reverse Converter with the given config.
func New(config ReverseConfig) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.TaskList,
				extension.Table,
			),
		),
	}, nil
}

// Config returns the effective configuration.
func (c *Converter) Config() ReverseConfig {
	return c.config.clone()
}

// Convert takes a markdown document and returns its rich tree.
func (c *Converter) Convert(markdown string) (Result, error) {
	return c.ConvertWithContext(context.Background(), markdown)
}

// ConvertWithContext parses markdown, stopping early when ctx is done.
func (c *Converter) ConvertWithContext(ctx context.Context, markdown string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &state{
		config: c.config,
		source: []byte(markdown),
		ctx:    ctx,
	}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	doc, err := s.convertDocument(root)
	if err != nil {
		return Result{}, err
	}
	doc.TrailingNewline = strings.HasSuffix(markdown, "\n")

	return Result{
		Doc:      doc,
		Warnings: s.warnings,
	}, nil
}

func (s *state) checkContext() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("conversion cancelled: %w", err)
	}
	return nil
}

func (s *state) addWarning(warnType converter.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, converter.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
