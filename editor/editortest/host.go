// Package editortest provides a recording host for adapter tests.
package editortest

import (
	"sync"

	"github.com/rgonek/md-wysiwyg/editor"
)

// Host records what an adapter does to its mount point.
type Host struct {
	name string

	mu      sync.Mutex
	views   []editor.View
	focused int
	cleared int
}

var _ editor.Host = (*Host)(nil)

// NewHost returns a host with the given name.
func NewHost(name string) *Host {
	return &Host{name: name}
}

func (h *Host) Name() string { return h.name }

func (h *Host) Render(view editor.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.views = append(h.views, view)
}

func (h *Host) Focus() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.focused++
}

func (h *Host) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleared++
	h.views = nil
}

// Last returns the most recent view.
func (h *Host) Last() (editor.View, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.views) == 0 {
		return editor.View{}, false
	}
	return h.views[len(h.views)-1], true
}

// Renders returns the number of renders since the last Clear.
func (h *Host) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.views)
}

func (h *Host) Focused() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.focused
}

func (h *Host) Cleared() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cleared
}

// Changes collects change callback values.
type Changes struct {
	mu     sync.Mutex
	values []string
}

// Func returns the callback to hand to Initialize.
func (c *Changes) Func() editor.ChangeFunc {
	return func(markdown string) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.values = append(c.values, markdown)
	}
}

func (c *Changes) Values() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func (c *Changes) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
