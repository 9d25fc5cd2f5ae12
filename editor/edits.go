package editor

import (
	"github.com/rgonek/md-wysiwyg/rich"
)

// Edit is a command applied to a working copy of the document. It returns the
// selection after the edit and whether anything changed.
type Edit func(doc *rich.Doc, sel rich.Selection) (rich.Selection, bool)

// Wrapper block types accepted by ToggleBlock.
var wrapperTypes = map[string]bool{
	rich.NodeBlockquote:  true,
	rich.NodeBulletList:  true,
	rich.NodeOrderedList: true,
	rich.NodeTaskList:    true,
}

func MarkEdit(markType string, attrs map[string]any) Edit {
	return func(doc *rich.Doc, sel rich.Selection) (rich.Selection, bool) {
		if !rich.IsKnownMark(markType) || sel.Empty() {
			return sel, false
		}
		return sel, rich.ToggleMark(doc, sel, rich.Mark{Type: markType, Attrs: attrs})
	}
}

func HeadingEdit(level int) Edit {
	return func(doc *rich.Doc, sel rich.Selection) (rich.Selection, bool) {
		if level < 1 || level > 6 {
			return sel, false
		}
		return sel, rich.ToggleHeading(doc, sel, level)
	}
}

func BlockEdit(blockType string) Edit {
	return func(doc *rich.Doc, sel rich.Selection) (rich.Selection, bool) {
		switch {
		case blockType == rich.NodeCodeBlock:
			return sel, rich.ToggleCodeBlock(doc, sel)
		case blockType == rich.NodeTaskItem:
			return sel, rich.ToggleTask(doc, sel)
		case wrapperTypes[blockType]:
			return sel, rich.ToggleWrap(doc, sel, blockType)
		default:
			return sel, false
		}
	}
}

func TextEdit(text string) Edit {
	return func(doc *rich.Doc, sel rich.Selection) (rich.Selection, bool) {
		return rich.InsertText(doc, sel, text)
	}
}

func ContentEdit(content []rich.Node) Edit {
	return func(doc *rich.Doc, sel rich.Selection) (rich.Selection, bool) {
		return rich.InsertContent(doc, sel, content)
	}
}

// IsActive evaluates a toolbar predicate. name is a mark type, "heading"
// (with a "level" attr), a wrapper type, or "codeBlock".
func IsActive(doc rich.Doc, sel rich.Selection, name string, attrs map[string]any) bool {
	switch {
	case rich.IsKnownMark(name):
		return rich.MarkActive(doc, sel, name)
	case name == rich.NodeHeading:
		level := 0
		if attrs != nil {
			level = rich.Node{Attrs: attrs}.GetIntAttr("level", 0)
		}
		return rich.HeadingActive(doc, sel, level)
	case name == rich.NodeCodeBlock:
		return textblockType(doc, sel) == rich.NodeCodeBlock
	case wrapperTypes[name]:
		return rich.WrapActive(doc, sel, name)
	default:
		return false
	}
}

func textblockType(doc rich.Doc, sel rich.Selection) string {
	blocks := rich.Textblocks(doc)
	if sel.Block < 0 || sel.Block >= len(blocks) {
		return ""
	}
	node := doc.NodeAt(blocks[sel.Block])
	if node == nil {
		return ""
	}
	return node.Type
}
