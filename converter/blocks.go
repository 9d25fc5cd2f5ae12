package converter

import (
	"strings"

	"github.com/rgonek/md-wysiwyg/rich"
)

// convertParagraph converts a paragraph node to markdown
func (s *state) convertParagraph(node rich.Node) (string, error) {
	content, err := s.convertInlineContent(node.Content, false)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}
	// Standard paragraph has two newlines to separate from next block
	return content + "\n\n", nil
}

// convertHeading converts a heading node to markdown
func (s *state) convertHeading(node rich.Node) (string, error) {
	level := node.GetIntAttr("level", 0)
	if level <= 0 {
		s.addWarning(WarningMissingAttribute, node.Type, "heading without level rendered as level 1")
		level = 1
	}

	level += s.config.HeadingOffset

	// Clamp level to valid range (1-6)
	if level > 6 {
		level = 6
	}

	// ATX headings are single line: hard breaks collapse to spaces
	content, err := s.convertInlineContent(node.Content, true)
	if err != nil {
		return "", err
	}

	heading := strings.Repeat("#", level)
	if content != "" {
		heading += " " + content
	}
	return heading + "\n\n", nil
}

// convertBlockquote converts a blockquote node to markdown
func (s *state) convertBlockquote(node rich.Node) (string, error) {
	if len(node.Content) == 0 {
		return "", nil
	}

	inner, err := s.convertChildren(node.Content)
	if err != nil {
		return "", err
	}

	content := s.blockquoteContent(inner)
	if content == "" {
		return "", nil
	}
	return content + "\n\n", nil
}

// blockquoteContent prefixes every line with the quote marker. Blank lines
// keep a bare marker so the quote does not end early.
func (s *state) blockquoteContent(content string) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	quoted := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			quoted = append(quoted, ">")
			continue
		}
		quoted = append(quoted, "> "+line)
	}
	return strings.Join(quoted, "\n")
}

// convertRule converts a horizontal rule node to markdown
func (s *state) convertRule() (string, error) {
	return "---\n\n", nil
}

// convertHardBreak converts a hard line break to markdown (backslash + newline)
func (s *state) convertHardBreak() string {
	if s.config.HardBreakStyle == HardBreakHTML {
		return "<br>\n"
	}
	return "\\\n"
}

// convertCodeBlock converts a code block to a fenced block. The fence grows
// past the longest backtick run in the content.
func (s *state) convertCodeBlock(node rich.Node) (string, error) {
	content := strings.TrimSuffix(node.PlainText(), "\n")

	language := node.GetStringAttr("language", "")
	if mapped, ok := s.config.LanguageMap[language]; ok {
		language = mapped
	}

	fence := strings.Repeat("`", max(3, longestRun(content, '`')+1))

	var result strings.Builder
	result.WriteString(fence)
	result.WriteString(language)
	result.WriteString("\n")
	if content != "" {
		result.WriteString(content)
		result.WriteString("\n")
	}
	result.WriteString(fence)
	result.WriteString("\n\n")
	return result.String(), nil
}

// convertHTMLBlock writes raw HTML (and other verbatim blocks) unchanged.
func (s *state) convertHTMLBlock(node rich.Node) (string, error) {
	raw := strings.TrimRight(node.GetStringAttr("html", ""), "\n")
	if raw == "" {
		return "", nil
	}
	return raw + "\n\n", nil
}

// indent applies uniform indentation to content within a list item.
// The first line is prefixed with the marker, subsequent lines with spaces matching marker length.
func (s *state) indent(content, marker string) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return strings.TrimRight(marker, " ")
	}

	lines := strings.Split(content, "\n")
	indentStr := strings.Repeat(" ", len(marker))

	result := make([]string, 0, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			result = append(result, marker+line)
		case line == "":
			result = append(result, "")
		default:
			result = append(result, indentStr+line)
		}
	}
	return strings.Join(result, "\n")
}

func longestRun(value string, ch rune) int {
	longest, current := 0, 0
	for _, r := range value {
		if r == ch {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}
