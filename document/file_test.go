package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, content string) (*File, *eventloop.Loop, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loop := eventloop.New(nil)
	file, err := Open(path, FileOptions{Dispatcher: loop})
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return file, loop, path
}

func TestOpenLoadsContentAndResolvesReady(t *testing.T) {
	file, loop, path := openTemp(t, "# Title\n")

	assert.Equal(t, "# Title\n", file.Source())
	assert.Equal(t, path, file.Path())
	assert.False(t, file.Dirty())

	ready := false
	file.Ready().Then(func(struct{}) { ready = true })
	loop.Drain()
	assert.True(t, ready)
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")
	file, err := Open(path, FileOptions{Dispatcher: eventloop.New(nil)})
	require.NoError(t, err)

	assert.Empty(t, file.Source())
	file.SetSource("hello")
	require.NoError(t, file.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestOpenRequiresDispatcher(t *testing.T) {
	_, err := Open("x.md", FileOptions{})
	require.Error(t, err)
}

func TestSaveWritesAtomically(t *testing.T) {
	file, _, path := openTemp(t, "old")

	file.SetSource("new content")
	assert.True(t, file.Dirty())
	require.NoError(t, file.Save())
	assert.False(t, file.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestRenameEmitsPathChanged(t *testing.T) {
	file, _, path := openTemp(t, "body")
	target := filepath.Join(filepath.Dir(path), "renamed.md")

	var got []string
	file.PathChanged().Connect(func(p string) { got = append(got, p) })

	require.NoError(t, file.Rename(target))
	assert.Equal(t, []string{target}, got)
	assert.Equal(t, target, file.Path())

	_, err := os.Stat(target)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClosedFileRejectsOperations(t *testing.T) {
	file, _, _ := openTemp(t, "")
	require.NoError(t, file.Close())
	require.NoError(t, file.Close())

	assert.ErrorIs(t, file.Save(), ErrClosed)
	assert.ErrorIs(t, file.Watch(context.Background()), ErrClosed)
}

func TestWatchAppliesExternalEdits(t *testing.T) {
	file, loop, path := openTemp(t, "before")
	require.NoError(t, file.Watch(context.Background()))

	changes := 0
	file.ContentChanged().Connect(func(struct{}) { changes++ })

	require.NoError(t, os.WriteFile(path, []byte("after"), 0o644))

	require.Eventually(t, func() bool {
		loop.Drain()
		return file.Source() == "after"
	}, 5*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, changes, 1)
	assert.False(t, file.Dirty())
}

func TestWatchIgnoresOwnSaves(t *testing.T) {
	file, loop, _ := openTemp(t, "before")
	require.NoError(t, file.Watch(context.Background()))

	file.SetSource("saved")
	changes := 0
	file.ContentChanged().Connect(func(struct{}) { changes++ })
	require.NoError(t, file.Save())

	require.Never(t, func() bool {
		loop.Drain()
		return changes > 0
	}, 200*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, "saved", file.Source())
	assert.Zero(t, changes)
}
