package surface

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/logging"
)

// Memory is a container that keeps the last rendered view.
type Memory struct {
	name string

	mu      sync.Mutex
	view    editor.View
	mounted bool
	focused bool
}

var _ editor.Host = (*Memory)(nil)

// NewMemory returns an in-memory container.
func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Render(view editor.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = view
	m.mounted = true
}

func (m *Memory) Focus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focused = true
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = editor.View{}
	m.mounted = false
	m.focused = false
}

// View returns the last rendered view and whether anything is mounted.
func (m *Memory) View() (editor.View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view, m.mounted
}

func (m *Memory) Focused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focused
}

// HTMLWriter renders each view as sanitized HTML to a writer.
type HTMLWriter struct {
	name   string
	logger logging.Logger

	mu  sync.Mutex
	out io.Writer
}

var _ editor.Host = (*HTMLWriter)(nil)

// NewHTMLWriter returns a container writing to out.
func NewHTMLWriter(name string, out io.Writer, logger logging.Logger) *HTMLWriter {
	return &HTMLWriter{name: name, out: out, logger: logging.OrNoOp(logger)}
}

func (h *HTMLWriter) Name() string { return h.name }

func (h *HTMLWriter) Render(view editor.View) {
	body, err := codec.RenderHTML(codec.SplitFrontmatter(view.Markdown).Body)
	if err != nil {
		h.logger.Warn("surface.render.failed", "container", h.name, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := io.WriteString(h.out, body); err != nil {
		h.logger.Warn("surface.render.failed", "container", h.name, "error", err)
	}
}

func (h *HTMLWriter) Focus() {}
func (h *HTMLWriter) Clear() {}

// TerminalOptions configures NewTerminal.
type TerminalOptions struct {
	// Style is a glamour standard style name. Defaults to "dark".
	Style string
	// Width is the word wrap width. Defaults to 80.
	Width  int
	Logger logging.Logger
}

// Terminal renders each view as styled terminal output through glamour.
type Terminal struct {
	name     string
	logger   logging.Logger
	renderer *glamour.TermRenderer

	mu  sync.Mutex
	out io.Writer
}

var _ editor.Host = (*Terminal)(nil)

// NewTerminal returns a container writing rendered markdown to out.
func NewTerminal(name string, out io.Writer, opts TerminalOptions) (*Terminal, error) {
	style := opts.Style
	if style == "" {
		style = "dark"
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Terminal{name: name, out: out, renderer: renderer, logger: logging.OrNoOp(opts.Logger)}, nil
}

func (t *Terminal) Name() string { return t.name }

func (t *Terminal) Render(view editor.View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rendered, err := t.renderer.Render(codec.SplitFrontmatter(view.Markdown).Body)
	if err != nil {
		t.logger.Warn("surface.render.failed", "container", t.name, "error", err)
		return
	}
	if _, err := io.WriteString(t.out, rendered); err != nil {
		t.logger.Warn("surface.render.failed", "container", t.name, "error", err)
	}
}

func (t *Terminal) Focus() {}
func (t *Terminal) Clear() {}
