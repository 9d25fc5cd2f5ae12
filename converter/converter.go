// Package converter serializes the rich document tree to GitHub flavored markdown.
package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgonek/md-wysiwyg/rich"
)

// Converter converts rich documents to markdown.
type Converter struct {
	config Config
}

type state struct {
	config   Config
	ctx      context.Context
	warnings []Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{config: cfg}, nil
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	return c.config.clone()
}

// Convert serializes doc to markdown.
func (c *Converter) Convert(doc rich.Doc) (Result, error) {
	return c.ConvertWithContext(context.Background(), doc)
}

// ConvertJSON takes a rich JSON document and returns markdown.
func (c *Converter) ConvertJSON(input []byte) (Result, error) {
	var doc rich.Doc
	if err := json.Unmarshal(input, &doc); err != nil {
		return Result{}, fmt.Errorf("failed to parse rich JSON: %w", err)
	}
	return c.Convert(doc)
}

// ConvertWithContext serializes doc, stopping early when ctx is done.
func (c *Converter) ConvertWithContext(ctx context.Context, doc rich.Doc) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &state{
		config: c.config,
		ctx:    ctx,
	}

	markdown, err := s.convertDoc(doc)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Markdown: markdown,
		Warnings: s.warnings,
	}, nil
}

func (s *state) checkContext() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("conversion cancelled: %w", err)
	}
	return nil
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

// convertDoc converts the root document. Output carries no trailing newline
// unless the source it was parsed from had one.
func (s *state) convertDoc(doc rich.Doc) (string, error) {
	if doc.Type != "" && doc.Type != rich.NodeDoc {
		return "", fmt.Errorf("unexpected root node type: %s", doc.Type)
	}

	body, err := s.convertChildren(doc.Content)
	if err != nil {
		return "", err
	}

	out := doc.Frontmatter + strings.TrimRight(body, "\n")
	if doc.TrailingNewline && out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// convertChildren converts a block sequence. Adjacent lists of the same kind
// get alternate markers so they do not merge when parsed back.
func (s *state) convertChildren(content []rich.Node) (string, error) {
	var sb strings.Builder
	previous := ""
	alternate := false
	for _, child := range content {
		if err := s.checkContext(); err != nil {
			return "", err
		}

		if isListType(child.Type) && listFamily(child.Type) == listFamily(previous) {
			alternate = !alternate
		} else {
			alternate = false
		}

		res, err := s.convertBlock(child, alternate)
		if err != nil {
			return "", err
		}
		if res == "" {
			continue
		}
		sb.WriteString(res)
		previous = child.Type
	}
	return sb.String(), nil
}

func (s *state) convertNode(node rich.Node) (string, error) {
	return s.convertBlock(node, false)
}

func (s *state) convertBlock(node rich.Node, alternate bool) (string, error) {
	switch node.Type {
	case rich.NodeParagraph:
		return s.convertParagraph(node)
	case rich.NodeHeading:
		return s.convertHeading(node)
	case rich.NodeBlockquote:
		return s.convertBlockquote(node)
	case rich.NodeRule:
		return s.convertRule()
	case rich.NodeCodeBlock:
		return s.convertCodeBlock(node)
	case rich.NodeBulletList:
		return s.convertBulletList(node, alternate)
	case rich.NodeOrderedList:
		return s.convertOrderedList(node, alternate)
	case rich.NodeTaskList:
		return s.convertTaskList(node, alternate)
	case rich.NodeListItem:
		return s.convertListItemContent(node.Content)
	case rich.NodeHTMLBlock:
		return s.convertHTMLBlock(node)
	case rich.NodeText, rich.NodeHardBreak, rich.NodeImage, rich.NodeHTMLInline:
		// stray inline content at block level behaves like a paragraph
		return s.convertParagraph(rich.Paragraph(node))
	default:
		switch s.config.UnknownNodes {
		case UnknownError:
			return "", fmt.Errorf("unknown node type: %s", node.Type)
		case UnknownSkip:
			s.addWarning(WarningUnknownNode, node.Type, fmt.Sprintf("unknown node skipped: %s", node.Type))
			return "", nil
		default:
			s.addWarning(WarningUnknownNode, node.Type, fmt.Sprintf("unknown node rendered as placeholder: %s", node.Type))
			return fmt.Sprintf("\\[Unknown node: %s\\]\n\n", node.Type), nil
		}
	}
}

func isListType(nodeType string) bool {
	return nodeType == rich.NodeBulletList || nodeType == rich.NodeOrderedList || nodeType == rich.NodeTaskList
}

// listFamily groups list types sharing a marker syntax; task lists use bullets.
func listFamily(nodeType string) string {
	switch nodeType {
	case rich.NodeBulletList, rich.NodeTaskList:
		return "bullet"
	case rich.NodeOrderedList:
		return "ordered"
	default:
		return ""
	}
}
