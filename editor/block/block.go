// Package block is the block adapter variant. The wrapped library edits a
// list of blocks and supports both a markdown and a WYSIWYG mode; the adapter
// pins the WYSIWYG mode and hides the switch.
package block

import (
	"errors"
	"sync"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/rich"
)

// DefaultChangeMode is the block library's behaviour on programmatic
// replacement: a change event on a later turn.
const DefaultChangeMode = editor.ChangeDeferred

// Edit types of the dual-mode library.
const (
	ModeWYSIWYG  = "wysiwyg"
	ModeMarkdown = "markdown"
)

// ErrModePinned is returned when switching away from the WYSIWYG mode.
var ErrModePinned = errors.New("block: editor is pinned to wysiwyg mode")

// LibraryOptions are the settings handed to the wrapped library.
type LibraryOptions struct {
	InitialEditType string
	HideModeSwitch  bool
	UsageStatistics bool
	Autofocus       bool
	ToolbarItems    []string
}

// DefaultLibraryOptions returns the pinned configuration: WYSIWYG only, no
// mode switch, no statistics, no autofocus and an empty built-in toolbar.
func DefaultLibraryOptions() LibraryOptions {
	return LibraryOptions{
		InitialEditType: ModeWYSIWYG,
		HideModeSwitch:  true,
		UsageStatistics: false,
		Autofocus:       false,
		ToolbarItems:    []string{},
	}
}

// Editor is the block adapter.
type Editor struct {
	*editor.Base
	library LibraryOptions

	mu              sync.Mutex
	blocks          []Block
	frontmatter     string
	trailingNewline bool
	sel             rich.Selection
}

var _ editor.Editor = (*Editor)(nil)

// New returns an uninitialized block adapter.
func New(opts editor.Options) (*Editor, error) {
	base, err := editor.NewBase(opts, DefaultChangeMode, "block")
	if err != nil {
		return nil, err
	}
	return &Editor{Base: base, library: DefaultLibraryOptions()}, nil
}

// Library returns the options handed to the wrapped library.
func (e *Editor) Library() LibraryOptions {
	options := e.library
	options.ToolbarItems = append([]string{}, e.library.ToolbarItems...)
	return options
}

// Mode returns the active edit type, always wysiwyg.
func (e *Editor) Mode() string {
	return ModeWYSIWYG
}

// SetMode accepts only the pinned mode.
func (e *Editor) SetMode(mode string) error {
	if mode != ModeWYSIWYG {
		e.Logger().Debug("editor.mode.rejected", "mode", mode)
		return ErrModePinned
	}
	return nil
}

func (e *Editor) Initialize(host editor.Host, markdown string, onChange editor.ChangeFunc) error {
	if err := e.Bind(host, onChange); err != nil {
		return err
	}
	e.mu.Lock()
	e.load(e.parse(markdown), nil)
	e.sel = rich.Selection{}
	e.mu.Unlock()

	e.Logger().Debug("editor.initialized", "host", host.Name(), "mode", e.library.InitialEditType)
	if e.library.Autofocus {
		e.FocusHost()
	}
	e.render()
	return nil
}

func (e *Editor) Markdown() string {
	if e.Disposed() {
		return ""
	}
	return e.serialize(e.doc())
}

func (e *Editor) SetMarkdown(markdown string) {
	if !e.Live() {
		return
	}
	doc := e.parse(markdown)
	e.mu.Lock()
	e.load(doc, e.blocks)
	e.sel = rich.ClampSelection(doc, e.sel)
	e.mu.Unlock()

	e.render()
	e.NotifySet(e.Markdown)
}

func (e *Editor) Focus() {
	e.FocusHost()
}

func (e *Editor) Dispose() {
	if !e.Release() {
		return
	}
	e.mu.Lock()
	e.blocks = nil
	e.frontmatter = ""
	e.sel = rich.Selection{}
	e.mu.Unlock()
	e.Logger().Debug("editor.disposed")
}

// Blocks returns a copy of the block list.
func (e *Editor) Blocks() []Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return FromDoc(ToDoc(e.blocks), e.blocks)
}

func (e *Editor) Select(sel rich.Selection) {
	doc := e.doc()
	e.mu.Lock()
	e.sel = rich.ClampSelection(doc, sel)
	e.mu.Unlock()
}

func (e *Editor) Selection() rich.Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel
}

func (e *Editor) ToggleMark(markType string, attrs map[string]any) bool {
	return e.apply(editor.MarkEdit(markType, attrs))
}

func (e *Editor) ToggleHeading(level int) bool {
	return e.apply(editor.HeadingEdit(level))
}

func (e *Editor) ToggleBlock(blockType string) bool {
	return e.apply(editor.BlockEdit(blockType))
}

func (e *Editor) InsertText(text string) bool {
	return e.apply(editor.TextEdit(text))
}

func (e *Editor) InsertHTML(html string) bool {
	content, err := codec.FromHTML(html)
	if err != nil {
		e.Logger().Warn("editor.paste.failed", "error", err)
		return false
	}
	return e.apply(editor.ContentEdit(content))
}

func (e *Editor) IsActive(name string, attrs map[string]any) bool {
	if !e.Live() {
		return false
	}
	doc := e.doc()
	return editor.IsActive(doc, e.Selection(), name, attrs)
}

func (e *Editor) apply(edit editor.Edit) bool {
	if !e.Live() {
		return false
	}
	e.mu.Lock()
	working := e.docLocked()
	sel, changed := edit(&working, e.sel)
	if !changed {
		e.mu.Unlock()
		return false
	}
	e.load(working, e.blocks)
	e.sel = rich.ClampSelection(working, sel)
	e.mu.Unlock()

	e.render()
	e.NotifyEdit(e.Markdown())
	return true
}

// load replaces the block list from doc. Callers hold e.mu.
func (e *Editor) load(doc rich.Doc, previous []Block) {
	e.blocks = FromDoc(doc, previous)
	e.frontmatter = doc.Frontmatter
	e.trailingNewline = doc.TrailingNewline
}

func (e *Editor) doc() rich.Doc {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.docLocked()
}

func (e *Editor) docLocked() rich.Doc {
	doc := ToDoc(e.blocks)
	doc.Frontmatter = e.frontmatter
	doc.TrailingNewline = e.trailingNewline
	return doc
}

func (e *Editor) parse(markdown string) rich.Doc {
	doc, err := e.Codec().ToRich(markdown)
	if err != nil {
		e.Logger().Error("editor.parse.failed", "error", err)
		return rich.NewDoc(rich.Node{Type: rich.NodeHTMLBlock, Attrs: map[string]any{"html": markdown}})
	}
	return doc
}

func (e *Editor) serialize(doc rich.Doc) string {
	markdown, err := e.Codec().ToMarkdown(doc)
	if err != nil {
		e.Logger().Error("editor.serialize.failed", "error", err)
		return ""
	}
	return markdown
}

func (e *Editor) render() {
	doc := e.doc()
	e.Render(editor.View{Doc: doc, Markdown: e.serialize(doc), Selection: e.Selection()})
}
