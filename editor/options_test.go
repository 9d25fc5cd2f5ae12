package editor

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/md-wysiwyg/eventloop"
)

func TestOptionsWithDefaults(t *testing.T) {
	opts, err := Options{}.WithDefaults(ChangeNone)
	require.NoError(t, err)

	assert.Equal(t, ChangeNone, opts.ChangeOnSet)
	assert.NotNil(t, opts.Codec)
	assert.NotNil(t, opts.Logger)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "none", opts: Options{ChangeOnSet: ChangeNone}},
		{name: "sync", opts: Options{ChangeOnSet: ChangeSync}},
		{name: "deferred with dispatcher", opts: Options{ChangeOnSet: ChangeDeferred, Dispatcher: eventloop.New(nil)}},
		{name: "deferred without dispatcher", opts: Options{ChangeOnSet: ChangeDeferred}, wantErr: true},
		{name: "unknown mode", opts: Options{ChangeOnSet: "eventually"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
		})
	}
}

func TestOptionsValidateWhileDispatcherIsBusy(t *testing.T) {
	loop := eventloop.New(nil)
	opts := Options{ChangeOnSet: ChangeDeferred, Dispatcher: loop}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				loop.Post(func() {})
			}
		}
	}()

	for i := 0; i < 100; i++ {
		require.NoError(t, opts.Validate())
	}
	close(stop)
	<-done
	loop.Drain()
	assert.Zero(t, loop.Pending())
}

func TestParseChangeMode(t *testing.T) {
	mode, err := ParseChangeMode(" Deferred ")
	require.NoError(t, err)
	assert.Equal(t, ChangeDeferred, mode)

	mode, err = ParseChangeMode("")
	require.NoError(t, err)
	assert.Empty(t, mode)

	_, err = ParseChangeMode("later")
	require.Error(t, err)
}

func TestBaseLifecycle(t *testing.T) {
	base, err := NewBase(Options{}, ChangeNone, "test")
	require.NoError(t, err)
	assert.False(t, base.Live())

	require.ErrorIs(t, base.Bind(nil, nil), ErrNoHost)

	host := &recordingHost{}
	require.NoError(t, base.Bind(host, nil))
	assert.True(t, base.Live())
	require.ErrorIs(t, base.Bind(host, nil), ErrInitialized)

	assert.True(t, base.Release())
	assert.False(t, base.Release())
	assert.Equal(t, 1, host.cleared)
	assert.Nil(t, base.Host())
	require.ErrorIs(t, base.Bind(host, nil), ErrDisposed)
}

func TestBaseNotifySet(t *testing.T) {
	loop := eventloop.New(nil)
	tests := []struct {
		mode        ChangeMode
		immediately int
		afterDrain  int
	}{
		{mode: ChangeNone},
		{mode: ChangeSync, immediately: 1, afterDrain: 1},
		{mode: ChangeDeferred, afterDrain: 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			base, err := NewBase(Options{ChangeOnSet: tt.mode, Dispatcher: loop}, ChangeNone, "test")
			require.NoError(t, err)

			calls := 0
			require.NoError(t, base.Bind(&recordingHost{}, func(string) { calls++ }))

			base.NotifySet(func() string { return "x" })
			assert.Equal(t, tt.immediately, calls)
			loop.Drain()
			assert.Equal(t, tt.afterDrain, calls)
		})
	}
}

func TestBaseDeferredNotificationSkippedAfterRelease(t *testing.T) {
	loop := eventloop.New(nil)
	base, err := NewBase(Options{ChangeOnSet: ChangeDeferred, Dispatcher: loop}, ChangeNone, "test")
	require.NoError(t, err)

	calls := 0
	require.NoError(t, base.Bind(&recordingHost{}, func(string) { calls++ }))
	base.NotifySet(func() string { return "x" })
	base.Release()
	loop.Drain()

	assert.Zero(t, calls)
}

type recordingHost struct {
	renders, focused, cleared int
}

func (h *recordingHost) Name() string  { return "test" }
func (h *recordingHost) Render(View)   { h.renders++ }
func (h *recordingHost) Focus()        { h.focused++ }
func (h *recordingHost) Clear()        { h.cleared++ }
