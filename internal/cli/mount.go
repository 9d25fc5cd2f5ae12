package cli

import (
	"errors"

	"github.com/rgonek/md-wysiwyg/bridge"
	"github.com/rgonek/md-wysiwyg/document"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/editor/backend"
	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/logging"
	"github.com/rgonek/md-wysiwyg/surface"
)

var errNotReady = errors.New("editor did not initialize")

// mount connects model to a surface holding host through the configured
// adapter variant. host must be named after the content container.
type mount struct {
	surface *surface.Surface
	bridge  *bridge.Bridge
}

func newMount(app *App, loop *eventloop.Loop, model document.Model, host editor.Host, showToolbar bool) (*mount, error) {
	cfg := app.Config
	kind, err := cfg.Backend()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.EditorOptions(editor.Options{
		Dispatcher: loop,
		Logger:     app.Logger(logging.EditorModule),
	})
	if err != nil {
		return nil, err
	}

	surf := surface.New(surface.Options{ShowToolbar: showToolbar, Logger: app.Logger(logging.SurfaceModule)})
	surf.AddContainer(host)

	var scripts []string
	if showToolbar {
		if scripts, err = cfg.Scripts(app.ConfigDir); err != nil {
			return nil, err
		}
	}

	b, err := bridge.New(bridge.Options{
		Model:            model,
		Surface:          surf,
		NewAdapter:       backend.Factory(kind, opts),
		Logger:           app.Logger(logging.BridgeModule),
		ContentContainer: cfg.Editor.ContentContainer,
		ShowToolbar:      surf.ShowToolbar(),
		ToolbarScripts:   scripts,
	})
	if err != nil {
		return nil, err
	}
	return &mount{surface: surf, bridge: b}, nil
}

// loadOnce mounts source, lets initialization run and returns the mount.
// Callers dispose the bridge.
func loadOnce(app *App, path, source string, host editor.Host) (*mount, error) {
	loop := eventloop.New(app.Logger(logging.LoopModule))
	model := document.NewMemory(loop, path, source)
	m, err := newMount(app, loop, model, host, false)
	if err != nil {
		return nil, err
	}
	model.MarkReady()
	loop.Drain()
	if m.bridge.State() != bridge.Ready {
		m.bridge.Dispose()
		return nil, errNotReady
	}
	return m, nil
}
