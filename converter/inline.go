package converter

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rgonek/md-wysiwyg/rich"
)

type openMark struct {
	mark    rich.Mark
	closing string
}

// convertInlineContent renders inline nodes while keeping marks open across
// adjacent text nodes. singleLine turns hard breaks into spaces.
func (s *state) convertInlineContent(content []rich.Node, singleLine bool) (string, error) {
	var sb strings.Builder
	var active []openMark
	content = expelWhitespace(content)

	closeFrom := func(n int) {
		for i := len(active) - 1; i >= n; i-- {
			sb.WriteString(active[i].closing)
		}
		active = active[:n]
	}

	for i := 0; i < len(content); i++ {
		node := content[i]

		switch node.Type {
		case rich.NodeText, rich.NodeImage, rich.NodeHTMLInline:
		case rich.NodeHardBreak:
			closeFrom(0)
			if singleLine {
				sb.WriteString(" ")
				continue
			}
			sb.WriteString(s.convertHardBreak())
			continue
		default:
			closeFrom(0)
			if err := s.convertUnknownInline(&sb, node); err != nil {
				return "", err
			}
			continue
		}

		outer, code, err := s.canonicalMarks(node.Marks)
		if err != nil {
			return "", err
		}

		activeMarks := make([]rich.Mark, len(active))
		for idx, open := range active {
			activeMarks[idx] = open.mark
		}
		toClose := s.getMarksToCloseFull(activeMarks, outer)
		closeFrom(len(active) - len(toClose))

		if len(active) == 0 && s.isAutolink(content, i, outer, code) {
			href := outer[0].GetStringAttr("href", "")
			sb.WriteString("<" + href + ">")
			continue
		}

		for _, mark := range s.getMarksToOpenFull(activeMarks[:len(active)], outer) {
			emMarker := s.emMarker(content, i, lastRune(sb.String()))
			opening, closing := s.delimiters(mark, emMarker)
			sb.WriteString(opening)
			active = append(active, openMark{mark: mark, closing: closing})
		}

		if node.Type == rich.NodeImage {
			sb.WriteString(s.convertImage(node))
			continue
		}
		if node.Type == rich.NodeHTMLInline {
			sb.WriteString(node.GetStringAttr("html", ""))
			continue
		}

		inLink := len(active) > 0 && active[0].mark.Type == rich.MarkLink
		if code {
			var run strings.Builder
			j := i
			for ; j < len(content) && content[j].Type == rich.NodeText; j++ {
				nextOuter, nextCode := splitMarks(content[j].Marks)
				if !nextCode || !rich.MarksEqual(nextOuter, outer) {
					break
				}
				run.WriteString(content[j].Text)
			}
			sb.WriteString(codeSpan(run.String()))
			i = j - 1
			continue
		}

		next := rune(0)
		if i+1 < len(content) && content[i+1].Type == rich.NodeText {
			next, _ = utf8.DecodeRuneInString(content[i+1].Text)
		}
		current := sb.String()
		sb.WriteString(s.escapeText(node.Text, lastRune(current), next, current == "" || strings.HasSuffix(current, "\n"), inLink))
	}

	closeFrom(0)
	return sb.String(), nil
}

func (s *state) convertUnknownInline(sb *strings.Builder, node rich.Node) error {
	switch s.config.UnknownNodes {
	case UnknownError:
		return fmt.Errorf("unknown node type: %s", node.Type)
	case UnknownSkip:
		s.addWarning(WarningUnknownNode, node.Type, fmt.Sprintf("unknown inline node skipped: %s", node.Type))
	default:
		s.addWarning(WarningUnknownNode, node.Type, fmt.Sprintf("unknown inline node rendered as placeholder: %s", node.Type))
		sb.WriteString(fmt.Sprintf("\\[Unknown node: %s\\]", node.Type))
	}
	return nil
}

// splitMarks is canonicalMarks without policy handling, for lookahead.
func splitMarks(marks []rich.Mark) (outer []rich.Mark, code bool) {
	for _, mark := range marks {
		switch {
		case mark.Type == rich.MarkCode:
			code = true
		case !rich.IsKnownMark(mark.Type):
		case mark.Type == rich.MarkLink && mark.GetStringAttr("href", "") == "":
		default:
			outer = append(outer, mark)
		}
	}
	sort.SliceStable(outer, func(i, j int) bool {
		return rich.MarkRank(outer[i].Type) < rich.MarkRank(outer[j].Type)
	})
	return outer, code
}

// isAutolink reports whether the text at i is a bare URL linked to itself.
func (s *state) isAutolink(content []rich.Node, i int, outer []rich.Mark, code bool) bool {
	node := content[i]
	if node.Type != rich.NodeText || code || len(outer) != 1 || outer[0].Type != rich.MarkLink {
		return false
	}
	href := outer[0].GetStringAttr("href", "")
	if node.Text != href || outer[0].GetStringAttr("title", "") != "" {
		return false
	}
	if strings.ContainsAny(href, " <>") || !(strings.Contains(href, "://") || strings.HasPrefix(href, "mailto:")) {
		return false
	}
	if i+1 < len(content) {
		nextOuter, _ := splitMarks(content[i+1].Marks)
		for _, mark := range nextOuter {
			if rich.MarkEqual(mark, outer[0]) {
				return false
			}
		}
	}
	return true
}

// emMarker picks the emphasis delimiter. Underscores do not work inside
// words, so an emphasis run touching a word character uses an asterisk.
func (s *state) emMarker(content []rich.Node, start int, previous rune) rune {
	if s.config.EmphasisMarker == '*' || isWordRune(previous) {
		return '*'
	}
	end := start
	for end < len(content) && content[end].Type != rich.NodeHardBreak && content[end].HasMark(rich.MarkEm) {
		end++
	}
	if end < len(content) && content[end].Type == rich.NodeText {
		next, _ := utf8.DecodeRuneInString(content[end].Text)
		if isWordRune(next) {
			return '*'
		}
	}
	return '_'
}

func (s *state) convertImage(node rich.Node) string {
	alt := strings.NewReplacer("\\", "\\\\", "[", "\\[", "]", "\\]").Replace(node.GetStringAttr("alt", ""))
	src := node.GetStringAttr("src", "")
	if strings.ContainsAny(src, " <>") || !balancedParens(src) {
		src = "<" + src + ">"
	}
	title := node.GetStringAttr("title", "")
	if title != "" {
		title = strings.ReplaceAll(strings.ReplaceAll(title, "\\", "\\\\"), "\"", "\\\"")
		return fmt.Sprintf("![%s](%s \"%s\")", alt, src, title)
	}
	return fmt.Sprintf("![%s](%s)", alt, src)
}

// codeSpan wraps text in a backtick fence longer than any run inside it.
func codeSpan(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	fence := strings.Repeat("`", longestRun(text, '`')+1)
	pad := ""
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") ||
		(len(text) > 1 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.TrimSpace(text) != "") {
		pad = " "
	}
	return fence + pad + text + pad + fence
}

// escapeText backslash-escapes characters that would otherwise be read as
// markdown syntax. previous and next are the neighbouring runes outside text.
func (s *state) escapeText(text string, previous, next rune, lineStart, inLink bool) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if s.config.Escape == EscapeNone || text == "" {
		return text
	}

	runes := []rune(text)
	orderedDelimiter := -1
	if lineStart {
		orderedDelimiter = orderedMarkerEnd(runes)
	}

	var sb strings.Builder
	for i, r := range runes {
		before := previous
		if i > 0 {
			before = runes[i-1]
		}
		after := next
		if i+1 < len(runes) {
			after = runes[i+1]
		}

		escape := false
		switch r {
		case '\\', '*', '`', '[', '~':
			escape = true
		case ']':
			escape = inLink
		case '_':
			escape = !(isWordRune(before) && isWordRune(after))
		case '<':
			escape = unicode.IsLetter(after) || after == '/' || after == '!' || after == '?'
		case '&':
			escape = unicode.IsLetter(after) || after == '#'
		case '#', '>', '-', '+', '=':
			escape = i == 0 && lineStart
		}
		if i == orderedDelimiter {
			escape = true
		}

		if escape {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// orderedMarkerEnd returns the index of the delimiter in a leading "12." or
// "12)" sequence, or -1.
func orderedMarkerEnd(runes []rune) int {
	digits := 0
	for digits < len(runes) && digits < 10 && unicode.IsDigit(runes[digits]) {
		digits++
	}
	if digits == 0 || digits > 9 || digits >= len(runes) {
		return -1
	}
	if runes[digits] == '.' || runes[digits] == ')' {
		return digits
	}
	return -1
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lastRune(value string) rune {
	r, _ := utf8.DecodeLastRuneInString(value)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
