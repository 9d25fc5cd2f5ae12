// Package bridge keeps a plain-text document model and a rich-text adapter
// in sync. Writes in either direction are gated on value equality of the
// markdown, which is what stops the two from echoing edits back and forth.
package bridge

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/document"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/logging"
	"github.com/rgonek/md-wysiwyg/toolbar"
)

// State is the bridge lifecycle state.
type State int

const (
	Uninitialized State = iota
	Ready
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// DefaultContentContainer is the mount point looked up when Options leaves
// it empty.
const DefaultContentContainer = "content"

// Surface is what the bridge needs from the owning UI surface.
type Surface interface {
	Container(name string) (editor.Host, bool)
	SetTitle(title string)
}

// Options configures New.
type Options struct {
	Model      document.Model
	Surface    Surface
	NewAdapter func() (editor.Editor, error)
	Logger     logging.Logger

	ContentContainer string
	ShowToolbar      bool
	// ToolbarScripts are Lua sources adding commands to the toolbar.
	ToolbarScripts []string
}

// Bridge owns the adapter and reconciles it with the model.
type Bridge struct {
	model      document.Model
	surface    Surface
	newAdapter func() (editor.Editor, error)
	logger     logging.Logger
	container  string
	showBar    bool
	scripts    []string

	mu          sync.Mutex
	state       State
	adapter     editor.Editor
	toolbar     *toolbar.Toolbar
	disconnects []func()

	// pushing is set while the bridge itself calls SetMarkdown. push records
	// the last pushed source and what the adapter made of it; echo stays set
	// until an adapter change other than that result arrives.
	pushing bool
	push    pushRecord
	echo    bool

	changed eventloop.Signal[string]
}

type pushRecord struct {
	source   string
	markdown string
}

// New connects to the model and schedules initialization for when the model
// is ready. The bridge starts Uninitialized.
func New(opts Options) (*Bridge, error) {
	if opts.Model == nil {
		return nil, errors.New("bridge: model is required")
	}
	if opts.Surface == nil {
		return nil, errors.New("bridge: surface is required")
	}
	if opts.NewAdapter == nil {
		return nil, errors.New("bridge: adapter factory is required")
	}
	container := opts.ContentContainer
	if container == "" {
		container = DefaultContentContainer
	}

	b := &Bridge{
		model:      opts.Model,
		surface:    opts.Surface,
		newAdapter: opts.NewAdapter,
		logger:     logging.OrNoOp(opts.Logger),
		container:  container,
		showBar:    opts.ShowToolbar,
		scripts:    append([]string(nil), opts.ToolbarScripts...),
	}

	b.disconnects = append(b.disconnects,
		opts.Model.ContentChanged().Connect(func(struct{}) { b.onModelChanged() }),
		opts.Model.PathChanged().Connect(b.onPathChanged),
	)
	opts.Model.Ready().Then(func(struct{}) { b.initialize() })
	b.updateTitle(opts.Model.Path())
	return b, nil
}

// initialize runs once the model is ready. It is a no-op after Dispose.
func (b *Bridge) initialize() {
	b.mu.Lock()
	if b.state != Uninitialized {
		state := b.state
		b.mu.Unlock()
		b.logger.Debug("bridge.init.skipped", "state", state.String())
		return
	}
	b.mu.Unlock()

	host, ok := b.surface.Container(b.container)
	if !ok || host == nil {
		b.logger.Error("bridge.init.container_missing", "container", b.container)
		return
	}

	adapter, err := b.newAdapter()
	if err != nil {
		b.logger.Error("bridge.init.adapter_failed", "error", err)
		return
	}
	if err := adapter.Initialize(host, b.model.Source(), b.onAdapterChanged); err != nil {
		adapter.Dispose()
		b.logger.Error("bridge.init.adapter_failed", "error", err)
		return
	}

	var bar *toolbar.Toolbar
	if b.showBar {
		bar = b.buildToolbar(adapter)
	}

	b.mu.Lock()
	if b.state != Uninitialized {
		b.mu.Unlock()
		if bar != nil {
			bar.Dispose()
		}
		adapter.Dispose()
		return
	}
	b.adapter = adapter
	b.toolbar = bar
	b.state = Ready
	b.mu.Unlock()

	b.logger.Info("bridge.ready", "path", b.model.Path(), "container", b.container, "toolbar", bar != nil)
	adapter.Focus()
}

func (b *Bridge) buildToolbar(adapter editor.Editor) *toolbar.Toolbar {
	bar := toolbar.New(toolbar.Options{Logger: b.logger})
	bar.Add(toolbar.Defaults(adapter)...)
	for i, script := range b.scripts {
		if err := bar.LoadScript(script, adapter); err != nil {
			b.logger.Warn("bridge.toolbar.script_failed", "index", i, "error", err)
		}
	}
	bar.Refresh()
	return bar
}

// ready returns the adapter when the bridge is Ready.
func (b *Bridge) ready() (editor.Editor, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Ready {
		return nil, false
	}
	return b.adapter, true
}

// onModelChanged pushes model content into the adapter when they differ.
func (b *Bridge) onModelChanged() {
	b.updateTitle(b.model.Path())

	adapter, ok := b.ready()
	if !ok {
		return
	}
	source := b.model.Source()
	current := adapter.Markdown()
	if source == current {
		return
	}
	b.mu.Lock()
	repeated := b.push == pushRecord{source: source, markdown: current}
	if !repeated {
		b.pushing = true
	}
	b.mu.Unlock()
	if repeated {
		return
	}

	adapter.SetMarkdown(source)
	result := adapter.Markdown()

	b.mu.Lock()
	b.pushing = false
	b.push = pushRecord{source: source, markdown: result}
	b.echo = true
	b.mu.Unlock()

	// The gate assumes markdown round trips through the adapter. When it does
	// not, the adapter keeps its normalized form and the model is left as is.
	if _, still := b.ready(); still && result != source {
		b.logger.Warn("bridge.sync.unstable", "model_bytes", len(source), "adapter_bytes", len(result))
	}
}

// onAdapterChanged writes adapter edits into the model when they differ and
// emits ContentChanged once. The adapter reporting back what the bridge just
// pushed is not an edit.
func (b *Bridge) onAdapterChanged(markdown string) {
	if _, ok := b.ready(); !ok {
		return
	}
	b.mu.Lock()
	if b.pushing || (b.echo && markdown == b.push.markdown) {
		b.mu.Unlock()
		b.logger.Debug("bridge.sync.echo_ignored", "bytes", len(markdown))
		return
	}
	b.echo = false
	b.mu.Unlock()

	if markdown == b.model.Source() {
		return
	}
	b.model.SetSource(markdown)
	b.changed.Emit(markdown)
}

func (b *Bridge) onPathChanged(path string) {
	b.updateTitle(path)
}

func (b *Bridge) updateTitle(path string) {
	title := codec.Title(b.model.Source())
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if title == "" || title == "." {
		return
	}
	b.surface.SetTitle(title)
}

// Dispose tears the bridge down. It is safe before initialization and on
// repeated calls.
func (b *Bridge) Dispose() {
	b.mu.Lock()
	if b.state == Disposed {
		b.mu.Unlock()
		return
	}
	previous := b.state
	b.state = Disposed
	adapter, bar := b.adapter, b.toolbar
	b.adapter, b.toolbar = nil, nil
	disconnects := b.disconnects
	b.disconnects = nil
	b.mu.Unlock()

	for _, disconnect := range disconnects {
		disconnect()
	}
	if bar != nil {
		bar.Dispose()
	}
	if adapter != nil {
		adapter.Dispose()
	}
	b.changed.Clear()
	b.logger.Debug("bridge.disposed", "from", previous.String())
}

// State returns the lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// ContentChanged fires with the new markdown after an adapter edit reached the model.
func (b *Bridge) ContentChanged() *eventloop.Signal[string] {
	return &b.changed
}

// Adapter returns the adapter, or nil unless Ready.
func (b *Bridge) Adapter() editor.Editor {
	adapter, _ := b.ready()
	return adapter
}

// Toolbar returns the toolbar, or nil when hidden or not Ready.
func (b *Bridge) Toolbar() *toolbar.Toolbar {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.toolbar
}
