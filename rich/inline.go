package rich

import "unicode/utf8"

// InlineLen returns the length of inline content in positions: one per rune
// of text, one per non-text inline node.
func InlineLen(content []Node) int {
	total := 0
	for _, node := range content {
		total += inlineNodeLen(node)
	}
	return total
}

func inlineNodeLen(node Node) int {
	if node.Type == NodeText {
		return utf8.RuneCountInString(node.Text)
	}
	return 1
}

// SplitInline splits inline content at position at.
func SplitInline(content []Node, at int) (left, right []Node) {
	pos := 0
	for i, node := range content {
		size := inlineNodeLen(node)
		switch {
		case at <= pos:
			return cloneNodes(content[:i]), cloneNodes(content[i:])
		case at < pos+size:
			// only text nodes are wider than one position
			runes := []rune(node.Text)
			head := node.Clone()
			head.Text = string(runes[:at-pos])
			tail := node.Clone()
			tail.Text = string(runes[at-pos:])
			left = append(cloneNodes(content[:i]), head)
			right = append([]Node{tail}, cloneNodes(content[i+1:])...)
			return left, right
		}
		pos += size
	}
	return cloneNodes(content), nil
}

// SliceInline cuts inline content into the parts before, inside and after [from, to).
func SliceInline(content []Node, from, to int) (before, mid, after []Node) {
	from, to = clampRange(from, to, InlineLen(content))
	before, rest := SplitInline(content, from)
	mid, after = SplitInline(rest, to-from)
	return before, mid, after
}

// NormalizeInline merges adjacent text nodes with equal marks and drops empty text.
func NormalizeInline(content []Node) []Node {
	var out []Node
	for _, node := range content {
		if node.Type == NodeText && node.Text == "" {
			continue
		}
		if len(node.Marks) == 0 {
			node.Marks = nil
		}
		if n := len(out); n > 0 && node.Type == NodeText && out[n-1].Type == NodeText && MarksEqual(out[n-1].Marks, node.Marks) {
			out[n-1].Text += node.Text
			continue
		}
		out = append(out, node)
	}
	return out
}

// InlineHasMark reports whether every text position in [from, to) carries the
// mark. An empty range looks at the character before the cursor.
func InlineHasMark(content []Node, from, to int, markType string) bool {
	from, to = clampRange(from, to, InlineLen(content))
	if from == to {
		if from == 0 {
			to = 1
		} else {
			from--
		}
	}
	_, mid, _ := SliceInline(content, from, to)
	seen := false
	for _, node := range mid {
		if node.Type != NodeText {
			continue
		}
		if !node.HasMark(markType) {
			return false
		}
		seen = true
	}
	return seen
}

// ToggleInlineMark adds the mark to [from, to) unless the whole range already
// carries it, in which case the mark is removed. It reports whether anything changed.
func ToggleInlineMark(content []Node, from, to int, mark Mark) ([]Node, bool) {
	from, to = clampRange(from, to, InlineLen(content))
	if from == to {
		return content, false
	}

	remove := InlineHasMark(content, from, to, mark.Type)
	before, mid, after := SliceInline(content, from, to)
	for i := range mid {
		if mid[i].Type != NodeText {
			continue
		}
		if remove {
			mid[i].Marks = RemoveMark(mid[i].Marks, mark.Type)
		} else {
			mid[i].Marks = AddMark(mid[i].Marks, mark)
		}
	}

	out := append(append(before, mid...), after...)
	return NormalizeInline(out), true
}

// ReplaceInline replaces [from, to) with inserted nodes. Plain text nodes in
// inserted inherit the marks around the cursor, except links.
func ReplaceInline(content []Node, from, to int, inserted []Node) []Node {
	from, to = clampRange(from, to, InlineLen(content))
	before, _, after := SliceInline(content, from, to)

	inherited := marksAtCursor(before, after)
	placed := make([]Node, 0, len(inserted))
	for _, node := range inserted {
		node = node.Clone()
		if node.Type == NodeText && len(node.Marks) == 0 && len(inherited) > 0 {
			node.Marks = cloneMarks(inherited)
		}
		placed = append(placed, node)
	}

	out := append(append(before, placed...), after...)
	return NormalizeInline(out)
}

func marksAtCursor(before, after []Node) []Mark {
	var source []Mark
	switch {
	case len(before) > 0 && before[len(before)-1].Type == NodeText:
		source = before[len(before)-1].Marks
	case len(before) == 0 && len(after) > 0 && after[0].Type == NodeText:
		source = after[0].Marks
	}
	return RemoveMark(source, MarkLink)
}

func cloneMarks(marks []Mark) []Mark {
	out := make([]Mark, len(marks))
	for i, mark := range marks {
		out[i] = mark.Clone()
	}
	return out
}

// TextToInline converts plain text into inline nodes, turning newlines into hard breaks.
func TextToInline(value string) []Node {
	var out []Node
	start := 0
	for i, r := range value {
		if r != '\n' {
			continue
		}
		if i > start {
			out = append(out, Text(value[start:i]))
		}
		out = append(out, Node{Type: NodeHardBreak})
		start = i + 1
	}
	if start < len(value) {
		out = append(out, Text(value[start:]))
	}
	return out
}

func clampRange(from, to, size int) (int, int) {
	if from > to {
		from, to = to, from
	}
	if from < 0 {
		from = 0
	}
	if to > size {
		to = size
	}
	if from > to {
		from = to
	}
	return from, to
}
