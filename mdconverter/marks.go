package mdconverter

import "github.com/rgonek/md-wysiwyg/rich"

type markStack struct {
	items []rich.Mark
}

func newMarkStack() *markStack {
	return &markStack{}
}

func (s *markStack) push(mark rich.Mark) {
	s.items = append(s.items, mark.Clone())
}

func (s *markStack) popByType(markType string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Type != markType {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}

	return false
}

// current returns the open marks in canonical order.
func (s *markStack) current() []rich.Mark {
	if len(s.items) == 0 {
		return nil
	}

	var marks []rich.Mark
	for _, mark := range s.items {
		marks = rich.AddMark(marks, mark.Clone())
	}

	return marks
}

func (s *markStack) has(markType string) bool {
	for _, mark := range s.items {
		if mark.Type == markType {
			return true
		}
	}
	return false
}

func newTextNode(textValue string, marks []rich.Mark) rich.Node {
	return rich.Text(textValue, marks...)
}

func appendInlineNode(content []rich.Node, next rich.Node) []rich.Node {
	if next.Type == rich.NodeText && next.Text == "" {
		return content
	}

	if len(content) == 0 {
		return append(content, next)
	}

	last := &content[len(content)-1]
	if last.Type == rich.NodeText && next.Type == rich.NodeText && rich.MarksEqual(last.Marks, next.Marks) {
		last.Text += next.Text
		return content
	}

	return append(content, next)
}
