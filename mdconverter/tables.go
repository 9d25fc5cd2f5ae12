package mdconverter

import (
	"strings"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertTableNode(node *extast.Table) (rich.Node, bool, error) {
	if s.config.Tables == TablesText {
		return s.convertTableAsText(node)
	}

	raw := s.tableSource(node)
	if raw == "" {
		return rich.Node{}, false, nil
	}
	s.addWarning(converter.WarningDroppedFeature, "table", "table kept as verbatim markdown")
	return rich.Node{
		Type:  rich.NodeHTMLBlock,
		Attrs: map[string]any{"html": raw},
	}, true, nil
}

// convertTableAsText turns each row into a paragraph with cells separated by
// a pipe. Rows are grouped in a blockquote so the table stays one block.
func (s *state) convertTableAsText(node *extast.Table) (rich.Node, bool, error) {
	s.addWarning(converter.WarningDroppedFeature, "table", "table flattened to paragraphs")

	quote := rich.Node{Type: rich.NodeBlockquote}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var content []rich.Node
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cellContent, err := s.convertInlineChildren(cell, newMarkStack())
			if err != nil {
				return rich.Node{}, false, err
			}
			if len(content) > 0 {
				content = appendInlineNode(content, rich.Text(" | "))
			}
			for _, inline := range cellContent {
				content = appendInlineNode(content, inline)
			}
		}
		if len(content) > 0 {
			quote.Content = append(quote.Content, rich.Paragraph(content...))
		}
	}

	if len(quote.Content) == 0 {
		return rich.Node{}, false, nil
	}
	return quote, true, nil
}

// tableSource recovers the table's markdown from the source positions of its
// text. The delimiter row carries no text, so trailing delimiter-only lines
// are added back.
func (s *state) tableSource(node *extast.Table) string {
	start, stop := -1, -1
	extend := func(from, to int) {
		if start == -1 || from < start {
			start = from
		}
		if to > stop {
			stop = to
		}
	}

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				extend(segment.Start, segment.Stop)
			}
		}
		if textNode, ok := n.(*ast.Text); ok {
			extend(textNode.Segment.Start, textNode.Segment.Stop)
		}
		return ast.WalkContinue, nil
	})
	if start == -1 {
		return ""
	}

	for start > 0 && s.source[start-1] != '\n' {
		start--
	}
	if stop > start && s.source[stop-1] == '\n' {
		stop--
	}
	stop = lineEnd(s.source, stop)
	for stop < len(s.source) {
		next := lineEnd(s.source, stop+1)
		if !isDelimiterRow(string(s.source[stop+1 : next])) {
			break
		}
		stop = next
	}

	return strings.TrimRight(string(s.source[start:stop]), "\n")
}

func lineEnd(source []byte, from int) int {
	for from < len(source) && source[from] != '\n' {
		from++
	}
	return from
}

func isDelimiterRow(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && strings.Trim(line, "|-: \t") == "" && strings.Contains(line, "-")
}
