// Package rich defines the in-memory rich representation shared by the
// editor adapters and the markdown conversion boundary.
package rich

// Node types.
const (
	NodeDoc         = "doc"
	NodeParagraph   = "paragraph"
	NodeHeading     = "heading"
	NodeBlockquote  = "blockquote"
	NodeRule        = "rule"
	NodeCodeBlock   = "codeBlock"
	NodeBulletList  = "bulletList"
	NodeOrderedList = "orderedList"
	NodeListItem    = "listItem"
	NodeTaskList    = "taskList"
	NodeTaskItem    = "taskItem"
	NodeHTMLBlock   = "htmlBlock"
	NodeHTMLInline  = "htmlInline"
	NodeText        = "text"
	NodeHardBreak   = "hardBreak"
	NodeImage       = "image"
)

// Mark types, in canonical nesting order (outermost first).
const (
	MarkLink   = "link"
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkStrike = "strike"
	MarkCode   = "code"
)

// Task item states.
const (
	TaskTodo = "TODO"
	TaskDone = "DONE"
)

// Doc is the root of a rich document.
type Doc struct {
	Version int    `json:"version"`
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`

	// Frontmatter holds a leading metadata block verbatim, delimiters included.
	Frontmatter string `json:"frontmatter,omitempty"`
	// TrailingNewline records whether the markdown source ended with a newline.
	TrailingNewline bool `json:"trailingNewline,omitempty"`
}

// Node represents any node in the tree (paragraph, text, list, ...).
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Mark represents text formatting applied to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// NewDoc returns an empty document.
func NewDoc(content ...Node) Doc {
	return Doc{Version: 1, Type: NodeDoc, Content: content}
}

// Text builds a text node.
func Text(value string, marks ...Mark) Node {
	node := Node{Type: NodeText, Text: value}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return node
}

// Paragraph builds a paragraph node.
func Paragraph(content ...Node) Node {
	return Node{Type: NodeParagraph, Content: content}
}

// Heading builds a heading node of the given level.
func Heading(level int, content ...Node) Node {
	return Node{Type: NodeHeading, Attrs: map[string]any{"level": level}, Content: content}
}

// GetIntAttr reads a numeric attribute. JSON decoding yields float64, parsers yield int.
func (n Node) GetIntAttr(key string, fallback int) int {
	return intAttr(n.Attrs, key, fallback)
}

// GetStringAttr reads a string attribute.
func (n Node) GetStringAttr(key, fallback string) string {
	return stringAttr(n.Attrs, key, fallback)
}

// GetStringAttr reads a string attribute.
func (m Mark) GetStringAttr(key, fallback string) string {
	return stringAttr(m.Attrs, key, fallback)
}

// IsTextblock reports whether the node holds inline content directly.
func (n Node) IsTextblock() bool {
	switch n.Type {
	case NodeParagraph, NodeHeading, NodeCodeBlock, NodeTaskItem:
		return true
	default:
		return false
	}
}

// IsInline reports whether the node is an inline node.
func (n Node) IsInline() bool {
	switch n.Type {
	case NodeText, NodeHardBreak, NodeImage, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// HasMark reports whether the node carries a mark of the given type.
func (n Node) HasMark(markType string) bool {
	for _, mark := range n.Marks {
		if mark.Type == markType {
			return true
		}
	}
	return false
}

// PlainText returns the concatenated text of the node and its descendants.
func (n Node) PlainText() string {
	if n.Type == NodeText {
		return n.Text
	}
	if n.Type == NodeHardBreak {
		return "\n"
	}
	var out []byte
	for _, child := range n.Content {
		out = append(out, child.PlainText()...)
	}
	return string(out)
}

func intAttr(attrs map[string]any, key string, fallback int) int {
	if attrs == nil {
		return fallback
	}
	switch v := attrs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func stringAttr(attrs map[string]any, key, fallback string) string {
	if attrs == nil {
		return fallback
	}
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return fallback
}

// Clone returns a deep copy of the document.
func (d Doc) Clone() Doc {
	cloned := d
	cloned.Content = cloneNodes(d.Content)
	return cloned
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	cloned := n
	cloned.Content = cloneNodes(n.Content)
	if n.Marks != nil {
		cloned.Marks = make([]Mark, len(n.Marks))
		for i, mark := range n.Marks {
			cloned.Marks[i] = mark.Clone()
		}
	}
	cloned.Attrs = cloneAttrs(n.Attrs)
	return cloned
}

// Clone returns a deep copy of the mark.
func (m Mark) Clone() Mark {
	cloned := m
	cloned.Attrs = cloneAttrs(m.Attrs)
	return cloned
}

func cloneNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	cloned := make([]Node, len(nodes))
	for i, node := range nodes {
		cloned[i] = node.Clone()
	}
	return cloned
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	cloned := make(map[string]any, len(attrs))
	for key, value := range attrs {
		cloned[key] = value
	}
	return cloned
}
