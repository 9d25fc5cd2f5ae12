// Package tree is the structured-tree adapter variant. It holds the rich
// document directly, is rich-only natively, and validates every replacement
// against a ProseMirror schema.
package tree

import (
	"sync"

	"github.com/cozy/prosemirror-go/model"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/rich"
)

// DefaultChangeMode is the tree library's behaviour on programmatic
// replacement: no change event.
const DefaultChangeMode = editor.ChangeNone

// Editor is the structured-tree adapter.
type Editor struct {
	*editor.Base
	schema *model.Schema

	mu  sync.Mutex
	doc rich.Doc
	sel rich.Selection
}

var _ editor.Editor = (*Editor)(nil)

// New returns an uninitialized tree adapter.
func New(opts editor.Options) (*Editor, error) {
	base, err := editor.NewBase(opts, DefaultChangeMode, "tree")
	if err != nil {
		return nil, err
	}
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}
	return &Editor{Base: base, schema: schema}, nil
}

func (e *Editor) Initialize(host editor.Host, markdown string, onChange editor.ChangeFunc) error {
	if err := e.Bind(host, onChange); err != nil {
		return err
	}
	e.mu.Lock()
	e.doc = e.parse(markdown)
	e.sel = rich.Selection{}
	e.mu.Unlock()

	e.Logger().Debug("editor.initialized", "host", host.Name(), "bytes", len(markdown))
	e.render()
	return nil
}

func (e *Editor) Markdown() string {
	if e.Disposed() {
		return ""
	}
	e.mu.Lock()
	doc := e.doc
	e.mu.Unlock()
	return e.serialize(doc)
}

func (e *Editor) SetMarkdown(markdown string) {
	if !e.Live() {
		return
	}
	doc := e.parse(markdown)
	e.mu.Lock()
	e.doc = doc
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
	e.doc = rich.Doc{}
	e.sel = rich.Selection{}
	e.mu.Unlock()
	e.Logger().Debug("editor.disposed")
}

// Doc returns a copy of the current document.
func (e *Editor) Doc() rich.Doc {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

func (e *Editor) Select(sel rich.Selection) {
	e.mu.Lock()
	e.sel = rich.ClampSelection(e.doc, sel)
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
	e.mu.Lock()
	defer e.mu.Unlock()
	return editor.IsActive(e.doc, e.sel, name, attrs)
}

// apply runs edit on a copy of the document and commits it when it changed
// something.
func (e *Editor) apply(edit editor.Edit) bool {
	if !e.Live() {
		return false
	}
	e.mu.Lock()
	working := e.doc.Clone()
	sel, changed := edit(&working, e.sel)
	if !changed {
		e.mu.Unlock()
		return false
	}
	e.validate(working)
	e.doc = working
	e.sel = rich.ClampSelection(working, sel)
	e.mu.Unlock()

	e.render()
	e.NotifyEdit(e.Markdown())
	return true
}

func (e *Editor) parse(markdown string) rich.Doc {
	doc, err := e.Codec().ToRich(markdown)
	if err != nil {
		// Parsing never rejects content; keep it as one verbatim block.
		e.Logger().Error("editor.parse.failed", "error", err)
		doc = rich.NewDoc(rich.Node{Type: rich.NodeHTMLBlock, Attrs: map[string]any{"html": markdown}})
	}
	e.validate(doc)
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

func (e *Editor) validate(doc rich.Doc) {
	if err := Validate(e.schema, doc); err != nil {
		e.Logger().Warn("editor.schema.violation", "error", err)
	}
}

func (e *Editor) render() {
	e.mu.Lock()
	doc, sel := e.doc.Clone(), e.sel
	e.mu.Unlock()
	e.Render(editor.View{Doc: doc, Markdown: e.serialize(doc), Selection: sel})
}
