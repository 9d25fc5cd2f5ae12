package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertDocument(root ast.Node) (rich.Doc, error) {
	if err := s.checkContext(); err != nil {
		return rich.Doc{}, err
	}

	content, err := s.convertBlockChildren(root)
	if err != nil {
		return rich.Doc{}, err
	}

	return rich.NewDoc(content...), nil
}

func (s *state) convertBlockNode(node ast.Node) (rich.Node, bool, error) {
	switch typed := node.(type) {
	case *ast.Paragraph:
		return s.convertParagraphNode(typed)
	case *ast.TextBlock:
		return s.convertParagraphNode(typed)
	case *ast.Heading:
		return s.convertHeadingNode(typed)
	case *ast.Blockquote:
		return s.convertBlockquoteNode(typed)
	case *ast.ThematicBreak:
		return rich.Node{Type: rich.NodeRule}, true, nil
	case *ast.FencedCodeBlock:
		return s.convertFencedCodeBlockNode(typed)
	case *ast.CodeBlock:
		return s.convertCodeBlockNode(typed)
	case *ast.List:
		return s.convertListNode(typed)
	case *ast.HTMLBlock:
		return s.convertHTMLBlockNode(typed)
	case *extast.Table:
		return s.convertTableNode(typed)
	default:
		nodeKind := typed.Kind().String()
		textValue := strings.TrimSpace(s.blockLines(node))
		if textValue == "" {
			return rich.Node{}, false, nil
		}
		s.addWarning(
			converter.WarningUnknownNode,
			nodeKind,
			fmt.Sprintf("unsupported markdown block node: %s", nodeKind),
		)
		return rich.Paragraph(rich.Text(textValue)), true, nil
	}
}

func (s *state) convertBlockChildren(parent ast.Node) ([]rich.Node, error) {
	var content []rich.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.checkContext(); err != nil {
			return nil, err
		}

		converted, ok, err := s.convertBlockNode(child)
		if err != nil {
			return nil, err
		}
		if ok {
			content = append(content, converted)
		}
	}
	return content, nil
}

// blockLines returns the raw source lines of a block node.
func (s *state) blockLines(node ast.Node) string {
	if node.Type() != ast.TypeBlock {
		return ""
	}
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(s.source))
	}
	return sb.String()
}

func (s *state) warnUnknownInline(node ast.Node, stack *markStack) []rich.Node {
	textValue := strings.TrimSpace(s.inlinePlainText(node))
	if textValue == "" {
		return nil
	}

	nodeKind := node.Kind().String()
	s.addWarning(
		converter.WarningUnknownNode,
		nodeKind,
		fmt.Sprintf("unsupported markdown inline node: %s", nodeKind),
	)

	return []rich.Node{
		newTextNode(textValue, stack.current()),
	}
}
