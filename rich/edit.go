package rich

import "strings"

// Selection addresses a range inside one textblock. Block indexes textblocks
// in document order; From and To are inline positions (see InlineLen).
type Selection struct {
	Block int `json:"block"`
	From  int `json:"from"`
	To    int `json:"to"`
}

// Empty reports whether the selection is a cursor.
func (s Selection) Empty() bool {
	return s.From == s.To
}

// Path locates a node by child indexes from the document root.
type Path []int

// Textblocks returns the paths of all textblocks in document order.
func Textblocks(doc Doc) []Path {
	var paths []Path
	collectTextblocks(doc.Content, nil, &paths)
	return paths
}

func collectTextblocks(nodes []Node, prefix Path, out *[]Path) {
	for i, node := range nodes {
		path := append(append(Path{}, prefix...), i)
		if node.IsTextblock() {
			*out = append(*out, path)
			continue
		}
		collectTextblocks(node.Content, path, out)
	}
}

// NodeAt returns a pointer to the node at path, or nil.
func (d *Doc) NodeAt(path Path) *Node {
	if len(path) == 0 {
		return nil
	}
	content := &d.Content
	var node *Node
	for _, idx := range path {
		if idx < 0 || idx >= len(*content) {
			return nil
		}
		node = &(*content)[idx]
		content = &node.Content
	}
	return node
}

func (d *Doc) contentAt(parent Path) *[]Node {
	if len(parent) == 0 {
		return &d.Content
	}
	node := d.NodeAt(parent)
	if node == nil {
		return nil
	}
	return &node.Content
}

// splice replaces the node at path with repl (possibly none).
func (d *Doc) splice(path Path, repl ...Node) {
	content := d.contentAt(path[:len(path)-1])
	idx := path[len(path)-1]
	out := make([]Node, 0, len(*content)-1+len(repl))
	out = append(out, (*content)[:idx]...)
	out = append(out, repl...)
	out = append(out, (*content)[idx+1:]...)
	*content = out
}

// ClampSelection bounds sel to the document. Documents without textblocks
// clamp to the zero selection.
func ClampSelection(doc Doc, sel Selection) Selection {
	blocks := Textblocks(doc)
	if len(blocks) == 0 {
		return Selection{}
	}
	if sel.Block < 0 {
		sel.Block = 0
	}
	if sel.Block >= len(blocks) {
		sel.Block = len(blocks) - 1
	}
	node := doc.NodeAt(blocks[sel.Block])
	sel.From, sel.To = clampRange(sel.From, sel.To, InlineLen(node.Content))
	return sel
}

func (d *Doc) textblock(sel Selection) (Path, *Node, bool) {
	blocks := Textblocks(*d)
	if sel.Block < 0 || sel.Block >= len(blocks) {
		return nil, nil, false
	}
	path := blocks[sel.Block]
	return path, d.NodeAt(path), true
}

// ToggleMark toggles mark over the selected range. Code blocks take no marks.
func ToggleMark(doc *Doc, sel Selection, mark Mark) bool {
	_, node, ok := doc.textblock(sel)
	if !ok || node.Type == NodeCodeBlock {
		return false
	}
	content, changed := ToggleInlineMark(node.Content, sel.From, sel.To, mark)
	if changed {
		node.Content = content
	}
	return changed
}

// MarkActive reports whether the selection carries the mark.
func MarkActive(doc Doc, sel Selection, markType string) bool {
	_, node, ok := doc.textblock(sel)
	if !ok {
		return false
	}
	return InlineHasMark(node.Content, sel.From, sel.To, markType)
}

// ToggleHeading turns the selected textblock into a heading of level, or back
// into a paragraph when it already is one.
func ToggleHeading(doc *Doc, sel Selection, level int) bool {
	_, node, ok := doc.textblock(sel)
	if !ok || node.Type == NodeTaskItem || level < 1 || level > 6 {
		return false
	}
	if node.Type == NodeHeading && node.GetIntAttr("level", 1) == level {
		setTextblockType(node, NodeParagraph, nil)
		return true
	}
	setTextblockType(node, NodeHeading, map[string]any{"level": level})
	return true
}

// HeadingActive reports whether the selected textblock is a heading of level.
func HeadingActive(doc Doc, sel Selection, level int) bool {
	_, node, ok := doc.textblock(sel)
	return ok && node.Type == NodeHeading && node.GetIntAttr("level", 1) == level
}

// ToggleCodeBlock turns the selected textblock into a code block or back into a paragraph.
func ToggleCodeBlock(doc *Doc, sel Selection) bool {
	_, node, ok := doc.textblock(sel)
	if !ok || node.Type == NodeTaskItem {
		return false
	}
	if node.Type == NodeCodeBlock {
		setTextblockType(node, NodeParagraph, nil)
		return true
	}
	setTextblockType(node, NodeCodeBlock, nil)
	return true
}

func setTextblockType(node *Node, nodeType string, attrs map[string]any) {
	switch {
	case nodeType == NodeCodeBlock:
		text := node.PlainText()
		node.Content = nil
		if text != "" {
			node.Content = []Node{Text(text)}
		}
	case node.Type == NodeCodeBlock:
		node.Content = TextToInline(node.PlainText())
	}
	node.Type = nodeType
	node.Attrs = attrs
}

// WrapActive reports whether the selection sits inside a wrapper of the given
// type. For lists only the nearest list counts.
func WrapActive(doc Doc, sel Selection, wrapperType string) bool {
	path, _, ok := doc.textblock(sel)
	if !ok {
		return false
	}
	if wrapperType == NodeBlockquote {
		_, found := nearestAncestor(&doc, path, func(n *Node) bool { return n.Type == NodeBlockquote })
		return found
	}
	listPath, found := nearestAncestor(&doc, path, isList)
	return found && doc.NodeAt(listPath).Type == wrapperType
}

// ToggleWrap wraps the selected textblock in a blockquote or list, or lifts
// it out when it is already wrapped. Switching between list kinds retypes the list.
func ToggleWrap(doc *Doc, sel Selection, wrapperType string) bool {
	path, node, ok := doc.textblock(sel)
	if !ok {
		return false
	}

	switch wrapperType {
	case NodeBlockquote:
		if quotePath, found := nearestAncestor(doc, path, func(n *Node) bool { return n.Type == NodeBlockquote }); found {
			quote := doc.NodeAt(quotePath)
			doc.splice(quotePath, quote.Content...)
			return true
		}
		doc.splice(path, Node{Type: NodeBlockquote, Content: []Node{node.Clone()}})
		return true

	case NodeTaskList:
		if node.Type == NodeTaskItem {
			liftTaskItem(doc, path)
			return true
		}
		if node.Type != NodeParagraph {
			return false
		}
		if listPath, found := nearestAncestor(doc, path, isList); found && len(path)-len(listPath) == 2 {
			// paragraph directly inside a list item: lift it first
			liftListItem(doc, path[:len(path)-1])
			return ToggleWrap(doc, sel, wrapperType)
		}
		item := Node{Type: NodeTaskItem, Attrs: map[string]any{"state": TaskTodo}, Content: node.Content}
		doc.splice(path, Node{Type: NodeTaskList, Content: []Node{item}})
		return true

	case NodeBulletList, NodeOrderedList:
		if node.Type == NodeTaskItem {
			liftTaskItem(doc, path)
			return ToggleWrap(doc, sel, wrapperType)
		}
		if listPath, found := nearestAncestor(doc, path, isList); found && len(path)-len(listPath) == 2 {
			list := doc.NodeAt(listPath)
			if list.Type == wrapperType {
				liftListItem(doc, path[:len(path)-1])
				return true
			}
			list.Type = wrapperType
			list.Attrs = nil
			return true
		}
		item := Node{Type: NodeListItem, Content: []Node{node.Clone()}}
		doc.splice(path, Node{Type: wrapperType, Content: []Node{item}})
		return true
	}

	return false
}

func isList(n *Node) bool {
	return n.Type == NodeBulletList || n.Type == NodeOrderedList || n.Type == NodeTaskList
}

func nearestAncestor(doc *Doc, path Path, match func(*Node) bool) (Path, bool) {
	for depth := len(path) - 1; depth >= 1; depth-- {
		candidate := path[:depth]
		if node := doc.NodeAt(candidate); node != nil && match(node) {
			return append(Path{}, candidate...), true
		}
	}
	return nil, false
}

// liftListItem replaces the list item at itemPath with its content, splitting the list around it.
func liftListItem(doc *Doc, itemPath Path) {
	listPath := itemPath[:len(itemPath)-1]
	list := doc.NodeAt(listPath).Clone()
	idx := itemPath[len(itemPath)-1]

	var repl []Node
	if idx > 0 {
		head := list
		head.Content = list.Content[:idx]
		repl = append(repl, head)
	}
	repl = append(repl, list.Content[idx].Content...)
	if idx+1 < len(list.Content) {
		tail := list
		tail.Content = list.Content[idx+1:]
		if list.Type == NodeOrderedList {
			tail.Attrs = map[string]any{"order": list.GetIntAttr("order", 1) + idx + 1}
		}
		repl = append(repl, tail)
	}
	doc.splice(listPath, repl...)
}

// liftTaskItem turns the task item at itemPath into a paragraph outside its task list.
func liftTaskItem(doc *Doc, itemPath Path) {
	listPath := itemPath[:len(itemPath)-1]
	list := doc.NodeAt(listPath).Clone()
	idx := itemPath[len(itemPath)-1]

	var repl []Node
	if idx > 0 {
		head := list
		head.Content = list.Content[:idx]
		repl = append(repl, head)
	}
	repl = append(repl, Paragraph(list.Content[idx].Content...))
	if idx+1 < len(list.Content) {
		tail := list
		tail.Content = list.Content[idx+1:]
		repl = append(repl, tail)
	}
	doc.splice(listPath, repl...)
}

// ToggleTask flips the state of the selected task item.
func ToggleTask(doc *Doc, sel Selection) bool {
	_, node, ok := doc.textblock(sel)
	if !ok || node.Type != NodeTaskItem {
		return false
	}
	state := TaskDone
	if node.GetStringAttr("state", TaskTodo) == TaskDone {
		state = TaskTodo
	}
	node.Attrs = map[string]any{"state": state}
	return true
}

// InsertText replaces the selection with text and returns the collapsed
// selection after it. An empty document gets a paragraph first.
func InsertText(doc *Doc, sel Selection, value string) (Selection, bool) {
	if value == "" && sel.Empty() {
		return sel, false
	}
	if len(Textblocks(*doc)) == 0 {
		doc.Content = append(doc.Content, Paragraph())
		sel = Selection{}
	}
	sel = ClampSelection(*doc, sel)
	_, node, _ := doc.textblock(sel)

	var inserted []Node
	if node.Type == NodeCodeBlock {
		inserted = []Node{Text(value)}
	} else {
		inserted = TextToInline(value)
	}
	node.Content = ReplaceInline(node.Content, sel.From, sel.To, inserted)
	if node.Type == NodeCodeBlock {
		node.Content = NormalizeInline([]Node{Text(node.PlainText())})
	}

	cursor := sel.From + InlineLen(inserted)
	return Selection{Block: sel.Block, From: cursor, To: cursor}, true
}

// InsertContent pastes parsed content at the selection. A single paragraph is
// merged inline; anything else is inserted as blocks after the top level block
// holding the selection.
func InsertContent(doc *Doc, sel Selection, content []Node) (Selection, bool) {
	if len(content) == 0 {
		return sel, false
	}
	if len(content) == 1 && content[0].Type == NodeParagraph {
		inline := content[0].Content
		if len(Textblocks(*doc)) == 0 {
			doc.Content = append(doc.Content, Paragraph())
			sel = Selection{}
		}
		sel = ClampSelection(*doc, sel)
		_, node, _ := doc.textblock(sel)
		if node.Type == NodeCodeBlock {
			text := strings.ReplaceAll(Paragraph(inline...).PlainText(), "\r", "")
			return InsertText(doc, sel, text)
		}
		node.Content = ReplaceInline(node.Content, sel.From, sel.To, inline)
		cursor := sel.From + InlineLen(inline)
		return Selection{Block: sel.Block, From: cursor, To: cursor}, true
	}

	blocks := Textblocks(*doc)
	at := len(doc.Content)
	if sel.Block >= 0 && sel.Block < len(blocks) {
		at = blocks[sel.Block][0] + 1
	}
	before := Textblocks(Doc{Content: doc.Content[:at]})
	out := make([]Node, 0, len(doc.Content)+len(content))
	out = append(out, doc.Content[:at]...)
	out = append(out, cloneNodes(content)...)
	out = append(out, doc.Content[at:]...)
	doc.Content = out

	added := Textblocks(Doc{Content: content})
	if len(added) == 0 {
		return ClampSelection(*doc, sel), true
	}
	lastBlock := len(before) + len(added) - 1
	last := doc.NodeAt(Textblocks(*doc)[lastBlock])
	end := InlineLen(last.Content)
	return Selection{Block: lastBlock, From: end, To: end}, true
}
