package codec

import (
	"strconv"
	"strings"

	"github.com/rgonek/md-wysiwyg/rich"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML converts pasted HTML into rich block nodes. The input is
// sanitized first; elements without a rich equivalent contribute their text.
func FromHTML(source string) ([]rich.Node, error) {
	clean := sanitizePolicy().Sanitize(source)
	root, err := html.Parse(strings.NewReader(clean))
	if err != nil {
		return nil, err
	}

	body := findElement(root, atom.Body)
	if body == nil {
		return nil, nil
	}
	return readBlocks(body, rich.Paragraph()), nil
}

// htmlReader collects blocks and a pending inline run. Pending inline content
// becomes a textblock shaped like template when a block element starts.
type htmlReader struct {
	template rich.Node
	blocks   []rich.Node
	inline   []rich.Node
}

func readBlocks(parent *html.Node, template rich.Node) []rich.Node {
	r := &htmlReader{template: template}
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		r.visit(child, nil)
	}
	r.flush()
	return r.blocks
}

func (r *htmlReader) flush() {
	content := trimInline(rich.NormalizeInline(r.inline))
	r.inline = nil
	if len(content) == 0 {
		return
	}
	block := r.template.Clone()
	block.Content = content
	r.blocks = append(r.blocks, block)
	r.template = rich.Paragraph()
}

func (r *htmlReader) appendBlock(block rich.Node) {
	r.flush()
	r.blocks = append(r.blocks, block)
}

func (r *htmlReader) visit(n *html.Node, marks []rich.Mark) {
	switch n.Type {
	case html.TextNode:
		if text := collapseSpace(n.Data); text != "" {
			r.inline = append(r.inline, rich.Text(text, cloneMarks(marks)...))
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer, atom.Table, atom.Tr, atom.Dl, atom.Dt, atom.Dd, atom.Figure:
		r.flush()
		r.blocks = append(r.blocks, readBlocks(n, rich.Paragraph())...)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		r.flush()
		level := int(n.Data[1] - '0')
		r.blocks = append(r.blocks, readBlocks(n, rich.Heading(level))...)
	case atom.Blockquote:
		content := readBlocks(n, rich.Paragraph())
		if len(content) == 0 {
			content = []rich.Node{rich.Paragraph()}
		}
		r.appendBlock(rich.Node{Type: rich.NodeBlockquote, Content: content})
	case atom.Pre:
		r.appendBlock(codeBlockFromPre(n))
	case atom.Ul, atom.Ol:
		if list, ok := listFromHTML(n); ok {
			r.appendBlock(list)
		}
	case atom.Hr:
		r.appendBlock(rich.Node{Type: rich.NodeRule})
	case atom.Br:
		r.inline = append(r.inline, rich.Node{Type: rich.NodeHardBreak})
	case atom.Img:
		attrs := map[string]any{
			"src": attr(n, "src"),
			"alt": attr(n, "alt"),
		}
		if title := attr(n, "title"); title != "" {
			attrs["title"] = title
		}
		image := rich.Node{Type: rich.NodeImage, Attrs: attrs}
		if len(marks) > 0 {
			image.Marks = cloneMarks(marks)
		}
		r.inline = append(r.inline, image)
	case atom.Strong, atom.B:
		r.visitChildren(n, rich.AddMark(marks, rich.Mark{Type: rich.MarkStrong}))
	case atom.Em, atom.I:
		r.visitChildren(n, rich.AddMark(marks, rich.Mark{Type: rich.MarkEm}))
	case atom.S, atom.Del, atom.Strike:
		r.visitChildren(n, rich.AddMark(marks, rich.Mark{Type: rich.MarkStrike}))
	case atom.Code, atom.Kbd, atom.Samp:
		r.visitChildren(n, rich.AddMark(marks, rich.Mark{Type: rich.MarkCode}))
	case atom.A:
		href := attr(n, "href")
		if href == "" {
			r.visitChildren(n, marks)
			return
		}
		mark := rich.Mark{Type: rich.MarkLink, Attrs: map[string]any{"href": href}}
		if title := attr(n, "title"); title != "" {
			mark.Attrs["title"] = title
		}
		r.visitChildren(n, rich.AddMark(marks, mark))
	case atom.Input, atom.Script, atom.Style, atom.Head:
	default:
		r.visitChildren(n, marks)
	}
}

func (r *htmlReader) visitChildren(n *html.Node, marks []rich.Mark) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		r.visit(child, marks)
	}
}

func codeBlockFromPre(n *html.Node) rich.Node {
	language := ""
	if code := findElement(n, atom.Code); code != nil {
		for _, class := range strings.Fields(attr(code, "class")) {
			if strings.HasPrefix(class, "language-") {
				language = strings.TrimPrefix(class, "language-")
				break
			}
		}
	}

	node := rich.Node{Type: rich.NodeCodeBlock, Attrs: map[string]any{"language": language}}
	if text := strings.TrimSuffix(textContent(n), "\n"); text != "" {
		node.Content = []rich.Node{rich.Text(text)}
	}
	return node
}

// listFromHTML builds a list. An unordered list whose items all start with a
// checkbox becomes a task list.
func listFromHTML(n *html.Node) (rich.Node, bool) {
	var items []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == atom.Li {
			items = append(items, child)
		}
	}
	if len(items) == 0 {
		return rich.Node{}, false
	}

	if n.DataAtom == atom.Ul && allTasks(items) {
		list := rich.Node{Type: rich.NodeTaskList}
		for _, item := range items {
			state := rich.TaskTodo
			if box := findElement(item, atom.Input); box != nil && hasAttr(box, "checked") {
				state = rich.TaskDone
			}
			task := rich.Node{Type: rich.NodeTaskItem, Attrs: map[string]any{"state": state}}
			for _, block := range readBlocks(item, rich.Paragraph()) {
				if block.Type == rich.NodeTaskList || block.Type == rich.NodeBulletList || block.Type == rich.NodeOrderedList {
					if task.Type != "" {
						list.Content = append(list.Content, task)
						task = rich.Node{}
					}
					list.Content = append(list.Content, block)
					continue
				}
				if task.Type == "" {
					continue
				}
				if len(task.Content) > 0 {
					task.Content = append(task.Content, rich.Node{Type: rich.NodeHardBreak})
				}
				task.Content = append(task.Content, rich.TextToInline(block.PlainText())...)
			}
			if task.Type != "" {
				list.Content = append(list.Content, task)
			}
		}
		return list, true
	}

	list := rich.Node{Type: rich.NodeBulletList}
	if n.DataAtom == atom.Ol {
		order := 1
		if start, err := strconv.Atoi(attr(n, "start")); err == nil {
			order = start
		}
		list.Type = rich.NodeOrderedList
		list.Attrs = map[string]any{"order": order}
	}
	for _, item := range items {
		content := readBlocks(item, rich.Paragraph())
		if len(content) == 0 || content[0].Type != rich.NodeParagraph {
			content = append([]rich.Node{rich.Paragraph()}, content...)
		}
		list.Content = append(list.Content, rich.Node{Type: rich.NodeListItem, Content: content})
	}
	return list, true
}

func allTasks(items []*html.Node) bool {
	for _, item := range items {
		box := firstElement(item)
		for box != nil && box.DataAtom == atom.P {
			box = firstElement(box)
		}
		if box == nil || box.DataAtom != atom.Input || !strings.EqualFold(attr(box, "type"), "checkbox") {
			return false
		}
	}
	return true
}

func firstElement(n *html.Node) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			return child
		}
		if child.Type == html.TextNode && strings.TrimSpace(child.Data) != "" {
			return nil
		}
	}
	return nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func collapseSpace(text string) string {
	if text == "" {
		return ""
	}
	fields := strings.Fields(text)
	out := strings.Join(fields, " ")
	if len(fields) == 0 {
		return " "
	}
	if isSpace(text[0]) {
		out = " " + out
	}
	if isSpace(text[len(text)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// trimInline drops leading and trailing whitespace of a textblock and
// collapses spaces doubled across node boundaries.
func trimInline(content []rich.Node) []rich.Node {
	var out []rich.Node
	for _, node := range content {
		if node.Type == rich.NodeText {
			previousEndsInSpace := len(out) == 0 || endsInSpace(out[len(out)-1])
			if previousEndsInSpace {
				node.Text = strings.TrimLeft(node.Text, " ")
			}
			if node.Text == "" {
				continue
			}
		}
		out = append(out, node)
	}
	for len(out) > 0 {
		last := &out[len(out)-1]
		if last.Type == rich.NodeHardBreak {
			out = out[:len(out)-1]
			continue
		}
		if last.Type != rich.NodeText {
			break
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		out = out[:len(out)-1]
	}
	return rich.NormalizeInline(out)
}

func endsInSpace(node rich.Node) bool {
	switch node.Type {
	case rich.NodeText:
		return strings.HasSuffix(node.Text, " ")
	case rich.NodeHardBreak:
		return true
	default:
		return false
	}
}

func cloneMarks(marks []rich.Mark) []rich.Mark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]rich.Mark, len(marks))
	for i, mark := range marks {
		out[i] = mark.Clone()
	}
	return out
}
