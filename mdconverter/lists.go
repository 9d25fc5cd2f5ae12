package mdconverter

import (
	"fmt"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state) convertListNode(node *ast.List) (rich.Node, bool, error) {
	if isTaskList(node) {
		return s.convertTaskListNode(node)
	}

	list := rich.Node{Type: rich.NodeBulletList}
	if node.IsOrdered() {
		list.Type = rich.NodeOrderedList
		list.Attrs = map[string]any{"order": node.Start}
	}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		content, err := s.convertBlockChildren(item)
		if err != nil {
			return rich.Node{}, false, err
		}
		if len(content) == 0 || content[0].Type != rich.NodeParagraph {
			content = append([]rich.Node{rich.Paragraph()}, content...)
		}
		list.Content = append(list.Content, rich.Node{Type: rich.NodeListItem, Content: content})
	}

	if len(list.Content) == 0 {
		return rich.Node{}, false, nil
	}
	return list, true, nil
}

// isTaskList reports whether every item starts with a task checkbox.
func isTaskList(node *ast.List) bool {
	if node.IsOrdered() || node.ChildCount() == 0 {
		return false
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if taskCheckBox(child) == nil {
			return false
		}
	}
	return true
}

func taskCheckBox(item ast.Node) *extast.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	switch first.(type) {
	case *ast.Paragraph, *ast.TextBlock:
	default:
		return nil
	}
	box, _ := first.FirstChild().(*extast.TaskCheckBox)
	return box
}

// convertTaskListNode builds a taskList. Lists nested in an item follow the
// item as siblings, the way the rich schema nests task lists.
func (s *state) convertTaskListNode(node *ast.List) (rich.Node, bool, error) {
	list := rich.Node{Type: rich.NodeTaskList}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		item, nested, err := s.convertTaskListItem(child)
		if err != nil {
			return rich.Node{}, false, err
		}
		list.Content = append(list.Content, item)
		list.Content = append(list.Content, nested...)
	}

	return list, true, nil
}

func (s *state) convertTaskListItem(item ast.Node) (rich.Node, []rich.Node, error) {
	taskItem := rich.Node{
		Type:  rich.NodeTaskItem,
		Attrs: map[string]any{"state": rich.TaskTodo},
	}
	if box := taskCheckBox(item); box != nil && box.IsChecked {
		taskItem.Attrs["state"] = rich.TaskDone
	}

	var nested []rich.Node
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if list, ok := child.(*ast.List); ok {
			converted, ok, err := s.convertListNode(list)
			if err != nil {
				return rich.Node{}, nil, err
			}
			if ok {
				nested = append(nested, converted)
			}
			continue
		}

		var content []rich.Node
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			converted, err := s.convertInlineChildren(child, newMarkStack())
			if err != nil {
				return rich.Node{}, nil, err
			}
			content = converted
		default:
			converted, ok, err := s.convertBlockNode(child)
			if err != nil {
				return rich.Node{}, nil, err
			}
			if !ok {
				continue
			}
			s.addWarning(
				converter.WarningDroppedFeature,
				converted.Type,
				fmt.Sprintf("%s inside a task item flattened to text", converted.Type),
			)
			content = rich.TextToInline(converted.PlainText())
		}

		if !first && len(content) > 0 {
			taskItem.Content = append(taskItem.Content, rich.Node{Type: rich.NodeHardBreak})
		}
		for _, node := range content {
			taskItem.Content = appendInlineNode(taskItem.Content, node)
		}
		first = false
	}

	return taskItem, nested, nil
}
