// Package editor defines the rich-text adapter contract the bridge drives,
// the editing commands the toolbar calls, and the lifecycle shared by the
// tree and block variants.
package editor

import (
	"errors"

	"github.com/rgonek/md-wysiwyg/rich"
)

var (
	// ErrDisposed is returned when initializing a disposed adapter.
	ErrDisposed = errors.New("editor: adapter disposed")
	// ErrInitialized is returned on a second Initialize.
	ErrInitialized = errors.New("editor: adapter already initialized")
	// ErrNoHost is returned when Initialize gets a nil host.
	ErrNoHost = errors.New("editor: host is required")
)

// ChangeFunc receives the adapter's markdown after a change.
type ChangeFunc func(markdown string)

// View is what an adapter shows through its host.
type View struct {
	Doc       rich.Doc
	Markdown  string
	Selection rich.Selection
}

// Host is the mount point an adapter attaches to.
type Host interface {
	Name() string
	Render(view View)
	Focus()
	Clear()
}

// Adapter wraps a rich-text editing component behind a fixed contract. After
// Dispose every method is a no-op and reads return "".
type Adapter interface {
	// Initialize binds the adapter to host and seeds it from markdown. It
	// never calls onChange.
	Initialize(host Host, markdown string, onChange ChangeFunc) error
	// Markdown serializes the current state. It has no side effects.
	Markdown() string
	// SetMarkdown replaces the state wholesale.
	SetMarkdown(markdown string)
	Focus()
	// Dispose releases the host and the callback. It is idempotent.
	Dispose()
}

// Editing is the command surface used by the toolbar. Successful edits are
// user edits: they report the new markdown through the change callback.
type Editing interface {
	Select(sel rich.Selection)
	Selection() rich.Selection
	ToggleMark(markType string, attrs map[string]any) bool
	ToggleHeading(level int) bool
	// ToggleBlock wraps or unwraps the selection in a blockquote or list, or
	// turns it into a code block.
	ToggleBlock(blockType string) bool
	InsertText(text string) bool
	// InsertHTML pastes sanitized HTML.
	InsertHTML(html string) bool
	IsActive(name string, attrs map[string]any) bool
}

// Editor is implemented by both adapter variants.
type Editor interface {
	Adapter
	Editing
}
