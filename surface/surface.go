// Package surface is the owning UI surface of an editor: named mount points,
// a title, and the toolbar visibility flag.
package surface

import (
	"sort"
	"sync"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/logging"
)

// Surface holds the containers an adapter can mount into.
type Surface struct {
	logger logging.Logger

	mu          sync.Mutex
	containers  map[string]editor.Host
	title       string
	showToolbar bool

	titleChanged eventloop.Signal[string]
}

// Options configures New.
type Options struct {
	Title       string
	ShowToolbar bool
	Logger      logging.Logger
}

// New returns a surface without containers.
func New(opts Options) *Surface {
	return &Surface{
		logger:      logging.OrNoOp(opts.Logger),
		containers:  map[string]editor.Host{},
		title:       opts.Title,
		showToolbar: opts.ShowToolbar,
	}
}

// AddContainer registers host under its name, replacing any previous one.
func (s *Surface) AddContainer(host editor.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.containers[host.Name()] = host
}

// RemoveContainer unregisters name. An adapter mounted in it keeps its
// reference; only later lookups fail.
func (s *Surface) RemoveContainer(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.containers, name)
}

// Container looks up a mount point.
func (s *Surface) Container(name string) (editor.Host, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	host, ok := s.containers[name]
	return host, ok
}

// Containers returns the registered names, sorted.
func (s *Surface) Containers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.containers))
	for name := range s.containers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Surface) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// SetTitle updates the title and emits TitleChanged when it differs.
func (s *Surface) SetTitle(title string) {
	s.mu.Lock()
	if s.title == title {
		s.mu.Unlock()
		return
	}
	s.title = title
	s.mu.Unlock()
	s.logger.Debug("surface.title", "title", title)
	s.titleChanged.Emit(title)
}

func (s *Surface) TitleChanged() *eventloop.Signal[string] {
	return &s.titleChanged
}

func (s *Surface) ShowToolbar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showToolbar
}

func (s *Surface) SetShowToolbar(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showToolbar = show
}
