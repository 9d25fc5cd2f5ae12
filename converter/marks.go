package converter

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rgonek/md-wysiwyg/rich"
)

// getMarksToCloseFull returns marks that need to be closed
func (s *state) getMarksToCloseFull(activeMarks, currentMarks []rich.Mark) []rich.Mark {
	// Find the first mark that differs or is missing in currentMarks
	for i, activeMark := range activeMarks {
		if i >= len(currentMarks) || !rich.MarkEqual(activeMark, currentMarks[i]) {
			return activeMarks[i:]
		}
	}
	return nil
}

// getMarksToOpenFull returns marks that need to be opened
func (s *state) getMarksToOpenFull(activeMarks, currentMarks []rich.Mark) []rich.Mark {
	commonLen := 0
	for i := 0; i < len(activeMarks) && i < len(currentMarks); i++ {
		if !rich.MarkEqual(activeMarks[i], currentMarks[i]) {
			break
		}
		commonLen++
	}

	if commonLen < len(currentMarks) {
		return currentMarks[commonLen:]
	}
	return nil
}

// canonicalMarks sorts marks into nesting order and applies the unknown mark
// policy. Code is split off because code spans are written as one unit.
func (s *state) canonicalMarks(marks []rich.Mark) (outer []rich.Mark, code bool, err error) {
	for _, mark := range marks {
		if mark.Type == rich.MarkCode {
			code = true
			continue
		}
		if !rich.IsKnownMark(mark.Type) {
			if s.config.UnknownMarks == UnknownError {
				return nil, false, fmt.Errorf("unknown mark type: %s", mark.Type)
			}
			s.addWarning(WarningUnknownMark, mark.Type, fmt.Sprintf("unknown mark skipped: %s", mark.Type))
			continue
		}
		if mark.Type == rich.MarkLink && mark.GetStringAttr("href", "") == "" {
			s.addWarning(WarningMissingAttribute, mark.Type, "link without href rendered as plain text")
			continue
		}
		outer = append(outer, mark)
	}
	sort.SliceStable(outer, func(i, j int) bool {
		return rich.MarkRank(outer[i].Type) < rich.MarkRank(outer[j].Type)
	})
	return outer, code, nil
}

// delimiters returns the opening and closing delimiter for a mark. emMarker
// is resolved by the caller because it depends on the surrounding text.
func (s *state) delimiters(mark rich.Mark, emMarker rune) (string, string) {
	switch mark.Type {
	case rich.MarkStrong:
		return "**", "**"
	case rich.MarkEm:
		return string(emMarker), string(emMarker)
	case rich.MarkStrike:
		return "~~", "~~"
	case rich.MarkLink:
		return "[", "](" + linkDestination(mark) + ")"
	default:
		return "", ""
	}
}

func linkDestination(mark rich.Mark) string {
	href := mark.GetStringAttr("href", "")
	if strings.ContainsAny(href, " <>") || !balancedParens(href) {
		href = "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(href) + ">"
	}

	title := mark.GetStringAttr("title", "")
	if title == "" {
		return href
	}
	escapedTitle := strings.ReplaceAll(title, "\\", "\\\\")
	escapedTitle = strings.ReplaceAll(escapedTitle, "\"", "\\\"")
	return href + " \"" + escapedTitle + "\""
}

func balancedParens(value string) bool {
	depth := 0
	for _, r := range value {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// expelledMarks cannot open before or close after whitespace: a delimiter
// run next to a space is not left/right flanking and stays literal.
var expelledMarks = []string{rich.MarkStrong, rich.MarkEm, rich.MarkStrike}

// expelWhitespace moves whitespace at the edges of an emphasis run outside
// of it, so a bold "hello " followed by "world" is written as
// "**hello** world" rather than "**hello **world".
func expelWhitespace(content []rich.Node) []rich.Node {
	out := make([]rich.Node, 0, len(content))
	for _, node := range content {
		if node.Type != rich.NodeText || node.HasMark(rich.MarkCode) || !hasExpelledMark(node) {
			out = append(out, node)
			continue
		}
		out = append(out, splitEdgeWhitespace(node)...)
	}

	for _, markType := range expelledMarks {
		for i := range out {
			if isBlankText(out[i]) && out[i].HasMark(markType) && (i == 0 || !out[i-1].HasMark(markType)) {
				out[i].Marks = rich.RemoveMark(out[i].Marks, markType)
			}
		}
		for i := len(out) - 1; i >= 0; i-- {
			if isBlankText(out[i]) && out[i].HasMark(markType) && (i == len(out)-1 || !out[i+1].HasMark(markType)) {
				out[i].Marks = rich.RemoveMark(out[i].Marks, markType)
			}
		}
	}
	return out
}

func hasExpelledMark(node rich.Node) bool {
	for _, markType := range expelledMarks {
		if node.HasMark(markType) {
			return true
		}
	}
	return false
}

// splitEdgeWhitespace splits leading and trailing whitespace of a text node
// into their own nodes carrying the same marks.
func splitEdgeWhitespace(node rich.Node) []rich.Node {
	text := node.Text
	core := strings.TrimFunc(text, unicode.IsSpace)
	if core == "" || core == text {
		return []rich.Node{node}
	}
	lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	trail := len(text) - len(strings.TrimRightFunc(text, unicode.IsSpace))

	piece := func(value string) rich.Node {
		part := node
		part.Text = value
		return part
	}
	var parts []rich.Node
	if lead > 0 {
		parts = append(parts, piece(text[:lead]))
	}
	parts = append(parts, piece(core))
	if trail > 0 {
		parts = append(parts, piece(text[len(text)-trail:]))
	}
	return parts
}

func isBlankText(node rich.Node) bool {
	return node.Type == rich.NodeText && node.Text != "" && strings.TrimFunc(node.Text, unicode.IsSpace) == ""
}
