// Package document holds the plain-text markdown document model the editor
// synchronizes against: an in-memory model and a file backed one.
package document

import (
	"sync"

	"github.com/rgonek/md-wysiwyg/eventloop"
)

// Model is the authoritative markdown text plus its notifications.
type Model interface {
	// Source returns the current markdown.
	Source() string
	// SetSource replaces the markdown and always emits ContentChanged.
	SetSource(markdown string)
	ContentChanged() *eventloop.Signal[struct{}]
	// Ready resolves once the content has been loaded.
	Ready() *eventloop.Future[struct{}]
	Path() string
	PathChanged() *eventloop.Signal[string]
}

// Memory is a Model without backing storage.
type Memory struct {
	mu     sync.RWMutex
	source string
	path   string

	changed     eventloop.Signal[struct{}]
	pathChanged eventloop.Signal[string]
	ready       *eventloop.Future[struct{}]
}

var _ Model = (*Memory)(nil)

// NewMemory returns an unready model holding source. Call MarkReady once the
// content is considered loaded.
func NewMemory(dispatcher eventloop.Dispatcher, path, source string) *Memory {
	return &Memory{
		source: source,
		path:   path,
		ready:  eventloop.NewFuture[struct{}](dispatcher),
	}
}

func (m *Memory) Source() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

func (m *Memory) SetSource(markdown string) {
	m.mu.Lock()
	m.source = markdown
	m.mu.Unlock()
	m.changed.Emit(struct{}{})
}

func (m *Memory) ContentChanged() *eventloop.Signal[struct{}] {
	return &m.changed
}

func (m *Memory) Ready() *eventloop.Future[struct{}] {
	return m.ready
}

// MarkReady resolves Ready.
func (m *Memory) MarkReady() {
	m.ready.Resolve(struct{}{})
}

func (m *Memory) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// SetPath changes the path and emits PathChanged when it differs.
func (m *Memory) SetPath(path string) {
	m.mu.Lock()
	if m.path == path {
		m.mu.Unlock()
		return
	}
	m.path = path
	m.mu.Unlock()
	m.pathChanged.Emit(path)
}

func (m *Memory) PathChanged() *eventloop.Signal[string] {
	return &m.pathChanged
}
