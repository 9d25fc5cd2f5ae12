package mdconverter

import (
	"regexp"
	"strings"

	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

var breakTagPattern = regexp.MustCompile(`(?i)^<br\s*/?>$`)

func (s *state) convertInlineChildren(parent ast.Node, stack *markStack) ([]rich.Node, error) {
	var content []rich.Node

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		converted, err := s.convertInlineNode(child, stack)
		if err != nil {
			return nil, err
		}
		for _, node := range converted {
			content = appendInlineNode(content, node)
		}
	}

	return content, nil
}

func (s *state) convertInlineNode(node ast.Node, stack *markStack) ([]rich.Node, error) {
	switch typed := node.(type) {
	case *ast.Text:
		if typed.IsRaw() || stack.has(rich.MarkCode) {
			return s.convertCodeText(typed, stack), nil
		}

		var content []rich.Node
		textValue := s.textValue(typed)
		if textValue != "" {
			content = append(content, newTextNode(textValue, stack.current()))
		}

		if typed.HardLineBreak() {
			content = append(content, rich.Node{Type: rich.NodeHardBreak})
		} else if typed.SoftLineBreak() {
			content = append(content, newTextNode(" ", stack.current()))
		}

		return content, nil

	case *ast.String:
		return []rich.Node{
			newTextNode(string(typed.Value), stack.current()),
		}, nil

	case *ast.Emphasis:
		markType := rich.MarkEm
		if typed.Level >= 2 {
			markType = rich.MarkStrong
		}
		stack.push(rich.Mark{Type: markType})
		content, err := s.convertInlineChildren(typed, stack)
		stack.popByType(markType)
		return content, err

	case *extast.Strikethrough:
		stack.push(rich.Mark{Type: rich.MarkStrike})
		content, err := s.convertInlineChildren(typed, stack)
		stack.popByType(rich.MarkStrike)
		return content, err

	case *ast.CodeSpan:
		stack.push(rich.Mark{Type: rich.MarkCode})
		content, err := s.convertInlineChildren(typed, stack)
		stack.popByType(rich.MarkCode)
		return content, err

	case *ast.Link:
		href := strings.TrimSpace(string(typed.Destination))
		if href == "" {
			return s.convertInlineChildren(typed, stack)
		}

		mark := rich.Mark{
			Type: rich.MarkLink,
			Attrs: map[string]any{
				"href": href,
			},
		}
		if title := strings.TrimSpace(string(typed.Title)); title != "" {
			mark.Attrs["title"] = title
		}

		stack.push(mark)
		content, err := s.convertInlineChildren(typed, stack)
		stack.popByType(rich.MarkLink)
		return content, err

	case *ast.AutoLink:
		href := string(typed.URL(s.source))
		stack.push(rich.Mark{
			Type:  rich.MarkLink,
			Attrs: map[string]any{"href": href},
		})
		content := []rich.Node{newTextNode(string(typed.Label(s.source)), stack.current())}
		stack.popByType(rich.MarkLink)
		return content, nil

	case *ast.Image:
		attrs := map[string]any{
			"src": string(typed.Destination),
			"alt": s.inlinePlainText(typed),
		}
		if title := string(typed.Title); title != "" {
			attrs["title"] = title
		}
		image := rich.Node{Type: rich.NodeImage, Attrs: attrs}
		if marks := stack.current(); len(marks) > 0 {
			image.Marks = marks
		}
		return []rich.Node{image}, nil

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < typed.Segments.Len(); i++ {
			segment := typed.Segments.At(i)
			sb.Write(segment.Value(s.source))
		}
		raw := sb.String()
		if breakTagPattern.MatchString(raw) {
			return []rich.Node{{Type: rich.NodeHardBreak}}, nil
		}
		html := rich.Node{Type: rich.NodeHTMLInline, Attrs: map[string]any{"html": raw}}
		if marks := stack.current(); len(marks) > 0 {
			html.Marks = marks
		}
		return []rich.Node{html}, nil

	case *extast.TaskCheckBox:
		return nil, nil

	default:
		if node.HasChildren() {
			return s.convertInlineChildren(node, stack)
		}
		return s.warnUnknownInline(node, stack), nil
	}
}

// convertCodeText keeps code span text verbatim. Line endings inside a code
// span read as spaces.
func (s *state) convertCodeText(node *ast.Text, stack *markStack) []rich.Node {
	value := string(node.Segment.Value(s.source))
	lineEnding := strings.HasSuffix(value, "\n")
	value = strings.ReplaceAll(strings.TrimSuffix(value, "\n"), "\n", " ")
	if lineEnding || node.SoftLineBreak() || node.HardLineBreak() {
		value += " "
	}
	if value == "" {
		return nil
	}
	return []rich.Node{newTextNode(value, stack.current())}
}

// textValue returns the literal text, with backslash escapes and character
// references resolved.
func (s *state) textValue(node *ast.Text) string {
	value := node.Segment.Value(s.source)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	value = util.UnescapePunctuations(value)
	return string(value)
}

func (s *state) inlinePlainText(node ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := n.(type) {
		case *ast.Text:
			if typed.IsRaw() {
				sb.Write(typed.Segment.Value(s.source))
			} else {
				sb.WriteString(s.textValue(typed))
			}
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.String:
			sb.Write(typed.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
