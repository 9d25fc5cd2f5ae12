package converter

import (
	"fmt"
	"strings"

	"github.com/rgonek/md-wysiwyg/rich"
)

func (s *state) bulletMarker(alternate bool) string {
	marker := s.config.BulletMarker
	if alternate {
		marker = alternateBullet(marker)
	}
	return string(marker) + " "
}

func alternateBullet(marker rune) rune {
	if marker == '-' {
		return '*'
	}
	return '-'
}

// convertBulletList converts a bullet list node to markdown
func (s *state) convertBulletList(node rich.Node, alternate bool) (string, error) {
	marker := s.bulletMarker(alternate)

	var items []string
	for _, item := range node.Content {
		if item.Type != rich.NodeListItem {
			s.addWarning(WarningUnknownNode, item.Type, fmt.Sprintf("bulletList expects listItem child, got %s", item.Type))
			continue
		}

		itemContent, err := s.convertListItemContent(item.Content)
		if err != nil {
			return "", err
		}
		items = append(items, s.indent(itemContent, marker))
	}

	return s.joinItems(node, items), nil
}

// convertOrderedList converts an ordered list node to markdown
func (s *state) convertOrderedList(node rich.Node, alternate bool) (string, error) {
	order := node.GetIntAttr("order", 1)
	if order < 0 {
		order = 1
	}

	delimiter := "."
	if alternate {
		delimiter = ")"
	}

	var items []string
	current := order
	for _, item := range node.Content {
		if item.Type != rich.NodeListItem {
			s.addWarning(WarningUnknownNode, item.Type, fmt.Sprintf("orderedList expects listItem child, got %s", item.Type))
			continue
		}

		itemContent, err := s.convertListItemContent(item.Content)
		if err != nil {
			return "", err
		}

		marker := fmt.Sprintf("%d%s ", current, delimiter)
		items = append(items, s.indent(itemContent, marker))
		if s.config.OrderedListStyle == OrderedIncremental {
			current++
		}
	}

	return s.joinItems(node, items), nil
}

// convertTaskList converts a task list node to markdown. Nested lists follow
// the item they belong to, indented under its bullet.
func (s *state) convertTaskList(node rich.Node, alternate bool) (string, error) {
	marker := s.bulletMarker(alternate)

	var items []string
	for _, item := range node.Content {
		switch item.Type {
		case rich.NodeTaskItem:
			itemContent, err := s.convertTaskItem(item, marker)
			if err != nil {
				return "", err
			}
			items = append(items, itemContent)
		case rich.NodeTaskList, rich.NodeBulletList, rich.NodeOrderedList:
			nested, err := s.convertNode(item)
			if err != nil {
				return "", err
			}
			nested = s.indent(strings.TrimRight(nested, "\n"), strings.Repeat(" ", len(marker)))
			if len(items) == 0 {
				items = append(items, nested)
				continue
			}
			items[len(items)-1] += "\n" + nested
		default:
			s.addWarning(WarningUnknownNode, item.Type, fmt.Sprintf("taskList expects taskItem child, got %s", item.Type))
		}
	}

	return s.joinItems(node, items), nil
}

// convertTaskItem converts a task item node to markdown
func (s *state) convertTaskItem(node rich.Node, marker string) (string, error) {
	box := "[ ] "
	if node.GetStringAttr("state", rich.TaskTodo) == rich.TaskDone {
		box = "[x] "
	}

	itemContent, err := s.convertInlineContent(node.Content, false)
	if err != nil {
		return "", err
	}

	return s.indent(box+itemContent, marker), nil
}

// convertListItemContent processes the content of a list item
func (s *state) convertListItemContent(content []rich.Node) (string, error) {
	var sb strings.Builder
	written := 0

	for _, child := range content {
		result, err := s.convertNode(child)
		if err != nil {
			return "", err
		}
		result = strings.TrimRight(result, "\n")
		if result == "" {
			continue
		}

		if written > 0 {
			// nested lists stay tight, other blocks are separated by a blank line
			if isListType(child.Type) {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(result)
		written++
	}

	return sb.String(), nil
}

// joinItems joins rendered items. A list is loose when any item holds more
// than one block separated by a blank line; loose lists keep blank lines between items.
func (s *state) joinItems(node rich.Node, items []string) string {
	if len(items) == 0 {
		return ""
	}
	separator := "\n"
	if isLooseList(node) {
		separator = "\n\n"
	}
	return strings.Join(items, separator) + "\n\n"
}

func isLooseList(node rich.Node) bool {
	for _, item := range node.Content {
		if item.Type != rich.NodeListItem {
			continue
		}
		blocks := 0
		for _, child := range item.Content {
			if !isListType(child.Type) {
				blocks++
			}
		}
		if blocks > 1 {
			return true
		}
	}
	return false
}
