package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/logging"
)

// ErrClosed is returned by File operations after Close.
var ErrClosed = errors.New("document closed")

// FileOptions configures Open.
type FileOptions struct {
	Dispatcher eventloop.Dispatcher
	Logger     logging.Logger
	// Perm is used when Save creates the file. Defaults to 0o644.
	Perm os.FileMode
}

// File is a Model backed by a UTF-8 markdown file on disk.
type File struct {
	*Memory

	dispatcher eventloop.Dispatcher
	logger     logging.Logger
	perm       os.FileMode

	mu      sync.Mutex
	saved   string
	closed  bool
	watcher *fsnotify.Watcher
	done    chan struct{}
}

var _ Model = (*File)(nil)

// Open loads path and resolves Ready. A missing file opens empty and is
// created on the first Save.
func Open(path string, opts FileOptions) (*File, error) {
	if opts.Dispatcher == nil {
		return nil, errors.New("document: dispatcher is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	perm := opts.Perm
	if perm == 0 {
		perm = 0o644
	}

	f := &File{
		Memory:     NewMemory(opts.Dispatcher, abs, string(data)),
		dispatcher: opts.Dispatcher,
		logger:     logging.OrNoOp(opts.Logger),
		perm:       perm,
		saved:      string(data),
	}
	f.logger.Debug("document.open", "path", abs, "bytes", len(data))
	f.MarkReady()
	return f, nil
}

// Dirty reports whether the content differs from what is on disk.
func (f *File) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved != f.Source()
}

// Save writes the content atomically through a temporary file in the same
// directory.
func (f *File) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	path := f.Path()
	source := f.Source()
	if err := writeAtomic(path, []byte(source), f.perm); err != nil {
		f.logger.Error("document.save.failed", "path", path, "error", err)
		return err
	}
	f.saved = source
	f.logger.Info("document.saved", "path", path, "bytes", len(source))
	return nil
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Rename moves the file on disk, when it exists, and emits PathChanged.
func (f *File) Rename(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	old := f.Path()
	if abs == old {
		f.mu.Unlock()
		return nil
	}
	if err := os.Rename(old, abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.mu.Unlock()
		return fmt.Errorf("rename %s: %w", old, err)
	}
	if f.watcher != nil && filepath.Dir(old) != filepath.Dir(abs) {
		_ = f.watcher.Remove(filepath.Dir(old))
		if err := f.watcher.Add(filepath.Dir(abs)); err != nil {
			f.logger.Warn("document.watch.rewatch_failed", "path", abs, "error", err)
		}
	}
	f.mu.Unlock()

	f.logger.Info("document.renamed", "from", old, "to", abs)
	f.SetPath(abs)
	return nil
}

// Watch reloads the file when it changes on disk. The parent directory is
// watched so editors that replace the file are picked up. Changes are applied
// on the dispatcher; content equal to the last save is ignored. Watching stops
// when ctx is done or the file is closed.
func (f *File) Watch(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if f.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(f.Path())
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	f.watcher = watcher
	f.done = make(chan struct{})
	go f.watchLoop(ctx, watcher, f.done)
	f.logger.Debug("document.watch.started", "dir", dir)
	return nil
}

func (f *File) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != f.Path() {
				continue
			}
			f.reload(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			f.logger.Warn("document.watch.error", "error", err)
		}
	}
}

// reload reads the file on the watcher goroutine and applies it on the
// dispatcher.
func (f *File) reload(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		f.logger.Warn("document.reload.failed", "path", path, "error", err)
		return
	}
	content := string(data)

	f.dispatcher.Post(func() {
		f.mu.Lock()
		if f.closed || content == f.saved {
			f.mu.Unlock()
			return
		}
		f.saved = content
		f.mu.Unlock()

		if content == f.Source() {
			return
		}
		f.logger.Info("document.reloaded", "path", path, "bytes", len(content))
		f.SetSource(content)
	})
}

// Close stops watching. It is safe to call more than once.
func (f *File) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	watcher, done := f.watcher, f.done
	f.watcher = nil
	f.mu.Unlock()

	if watcher == nil {
		return nil
	}
	err := watcher.Close()
	<-done
	return err
}
