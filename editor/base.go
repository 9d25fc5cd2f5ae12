package editor

import (
	"sync"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/logging"
)

// Base carries the lifecycle shared by the adapter variants: the host
// binding, the change callback, and the dispose flag. Variants embed it and
// keep their own document state.
type Base struct {
	opts   Options
	logger logging.Logger

	mu          sync.Mutex
	host        Host
	onChange    ChangeFunc
	initialized bool
	disposed    bool
}

// NewBase validates opts against the variant's default change mode.
func NewBase(opts Options, defaultMode ChangeMode, variant string) (*Base, error) {
	opts, err := opts.WithDefaults(defaultMode)
	if err != nil {
		return nil, err
	}
	return &Base{
		opts:   opts,
		logger: logging.WithFields(opts.Logger, map[string]any{"variant": variant}),
	}, nil
}

// Bind records host and onChange. It fails after Dispose or on a second call.
func (b *Base) Bind(host Host, onChange ChangeFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.disposed:
		return ErrDisposed
	case b.initialized:
		return ErrInitialized
	case host == nil:
		return ErrNoHost
	}
	b.host = host
	b.onChange = onChange
	b.initialized = true
	return nil
}

// Live reports whether the adapter is initialized and not disposed.
func (b *Base) Live() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized && !b.disposed
}

// Disposed reports whether Release has run.
func (b *Base) Disposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// Host returns the bound host, or nil.
func (b *Base) Host() Host {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.host
}

func (b *Base) Codec() codec.Codec {
	return b.opts.Codec
}

func (b *Base) Logger() logging.Logger {
	return b.logger
}

func (b *Base) ChangeMode() ChangeMode {
	return b.opts.ChangeOnSet
}

// Render shows view on the host when live.
func (b *Base) Render(view View) {
	if host := b.liveHost(); host != nil {
		host.Render(view)
	}
}

// FocusHost moves focus into the host when live.
func (b *Base) FocusHost() {
	if host := b.liveHost(); host != nil {
		host.Focus()
	}
}

func (b *Base) liveHost() Host {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.disposed {
		return nil
	}
	return b.host
}

// NotifyEdit reports a user edit synchronously.
func (b *Base) NotifyEdit(markdown string) {
	if callback := b.callback(); callback != nil {
		callback(markdown)
	}
}

// NotifySet reports a programmatic replacement according to the change mode.
// read is evaluated when the notification fires so a deferred report carries
// the state at that time.
func (b *Base) NotifySet(read func() string) {
	switch b.opts.ChangeOnSet {
	case ChangeSync:
		b.NotifyEdit(read())
	case ChangeDeferred:
		b.opts.Dispatcher.Post(func() {
			if !b.Live() {
				return
			}
			b.NotifyEdit(read())
		})
	}
}

func (b *Base) callback() ChangeFunc {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized || b.disposed {
		return nil
	}
	return b.onChange
}

// Release marks the adapter disposed, clears the host and drops the
// callback. It returns false when already released.
func (b *Base) Release() bool {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return false
	}
	b.disposed = true
	host := b.host
	b.host = nil
	b.onChange = nil
	b.mu.Unlock()

	if host != nil {
		host.Clear()
	}
	return true
}
