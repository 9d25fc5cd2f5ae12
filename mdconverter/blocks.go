package mdconverter

import (
	"strings"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/yuin/goldmark/ast"
)

func (s *state) convertParagraphNode(node ast.Node) (rich.Node, bool, error) {
	content, err := s.convertInlineChildren(node, newMarkStack())
	if err != nil {
		return rich.Node{}, false, err
	}
	if len(content) == 0 {
		return rich.Node{}, false, nil
	}
	return rich.Paragraph(content...), true, nil
}

func (s *state) convertHeadingNode(node *ast.Heading) (rich.Node, bool, error) {
	level := node.Level + s.config.HeadingOffset
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	content, err := s.convertInlineChildren(node, newMarkStack())
	if err != nil {
		return rich.Node{}, false, err
	}
	return rich.Heading(level, content...), true, nil
}

func (s *state) convertBlockquoteNode(node *ast.Blockquote) (rich.Node, bool, error) {
	content, err := s.convertBlockChildren(node)
	if err != nil {
		return rich.Node{}, false, err
	}
	if len(content) == 0 {
		content = []rich.Node{rich.Paragraph()}
	}
	return rich.Node{Type: rich.NodeBlockquote, Content: content}, true, nil
}

func (s *state) convertFencedCodeBlockNode(node *ast.FencedCodeBlock) (rich.Node, bool, error) {
	language := strings.TrimSpace(string(node.Language(s.source)))
	if mapped, ok := s.config.LanguageMap[language]; ok {
		language = mapped
	}
	return s.codeBlock(s.blockLines(node), language), true, nil
}

func (s *state) convertCodeBlockNode(node *ast.CodeBlock) (rich.Node, bool, error) {
	return s.codeBlock(s.blockLines(node), ""), true, nil
}

func (s *state) codeBlock(body, language string) rich.Node {
	node := rich.Node{
		Type:  rich.NodeCodeBlock,
		Attrs: map[string]any{"language": language},
	}
	body = strings.TrimSuffix(body, "\n")
	if body != "" {
		node.Content = []rich.Node{rich.Text(body)}
	}
	return node
}

func (s *state) convertHTMLBlockNode(node *ast.HTMLBlock) (rich.Node, bool, error) {
	raw := s.blockLines(node)
	if node.HasClosure() {
		raw += string(node.ClosureLine.Value(s.source))
	}
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return rich.Node{}, false, nil
	}

	if s.config.HTMLBlocks == HTMLBlocksDrop {
		s.addWarning(converter.WarningDroppedFeature, rich.NodeHTMLBlock, "raw HTML block dropped")
		return rich.Node{}, false, nil
	}

	return rich.Node{
		Type:  rich.NodeHTMLBlock,
		Attrs: map[string]any{"html": raw},
	}, true, nil
}
