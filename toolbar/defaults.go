package toolbar

import (
	"fmt"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/rich"
)

// Defaults returns the built-in formatting commands bound to ed.
func Defaults(ed editor.Editing) []Command {
	commands := []Command{
		markCommand(ed, "Bold", "Bold (Ctrl+B)", rich.MarkStrong),
		markCommand(ed, "Italic", "Italic (Ctrl+I)", rich.MarkEm),
		markCommand(ed, "Strike", "Strikethrough", rich.MarkStrike),
		markCommand(ed, "Code", "Inline Code", rich.MarkCode),
		blockCommand(ed, "Bullet List", "Bullet List", rich.NodeBulletList),
		blockCommand(ed, "Numbered List", "Numbered List", rich.NodeOrderedList),
		blockCommand(ed, "Quote", "Blockquote", rich.NodeBlockquote),
		blockCommand(ed, "Code Block", "Code Block", rich.NodeCodeBlock),
	}
	for level := 1; level <= 3; level++ {
		attrs := map[string]any{"level": level}
		commands = append(commands, Command{
			Label:    fmt.Sprintf("H%d", level),
			Tooltip:  fmt.Sprintf("Heading %d", level),
			Action:   func() bool { return ed.ToggleHeading(level) },
			IsActive: func() bool { return ed.IsActive(rich.NodeHeading, attrs) },
		})
	}
	return commands
}

func markCommand(ed editor.Editing, label, tooltip, markType string) Command {
	return Command{
		Label:    label,
		Tooltip:  tooltip,
		Action:   func() bool { return ed.ToggleMark(markType, nil) },
		IsActive: func() bool { return ed.IsActive(markType, nil) },
	}
}

func blockCommand(ed editor.Editing, label, tooltip, blockType string) Command {
	return Command{
		Label:    label,
		Tooltip:  tooltip,
		Action:   func() bool { return ed.ToggleBlock(blockType) },
		IsActive: func() bool { return ed.IsActive(blockType, nil) },
	}
}
