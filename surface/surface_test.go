package surface

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/md-wysiwyg/editor"
)

func TestContainers(t *testing.T) {
	s := New(Options{})
	s.AddContainer(NewMemory("content"))
	s.AddContainer(NewMemory("preview"))

	host, ok := s.Container("content")
	require.True(t, ok)
	assert.Equal(t, "content", host.Name())
	assert.Equal(t, []string{"content", "preview"}, s.Containers())

	s.RemoveContainer("content")
	_, ok = s.Container("content")
	assert.False(t, ok)
}

func TestTitleChanged(t *testing.T) {
	s := New(Options{Title: "a"})
	var titles []string
	s.TitleChanged().Connect(func(title string) { titles = append(titles, title) })

	s.SetTitle("a")
	s.SetTitle("b")

	assert.Equal(t, "b", s.Title())
	assert.Equal(t, []string{"b"}, titles)
}

func TestToolbarVisibility(t *testing.T) {
	s := New(Options{ShowToolbar: true})
	assert.True(t, s.ShowToolbar())
	s.SetShowToolbar(false)
	assert.False(t, s.ShowToolbar())
}

func TestMemoryContainer(t *testing.T) {
	m := NewMemory("content")
	_, mounted := m.View()
	assert.False(t, mounted)

	m.Render(editor.View{Markdown: "# x"})
	m.Focus()
	view, mounted := m.View()
	assert.True(t, mounted)
	assert.Equal(t, "# x", view.Markdown)
	assert.True(t, m.Focused())

	m.Clear()
	_, mounted = m.View()
	assert.False(t, mounted)
	assert.False(t, m.Focused())
}

func TestHTMLWriterSanitizes(t *testing.T) {
	var out bytes.Buffer
	h := NewHTMLWriter("content", &out, nil)

	h.Render(editor.View{Markdown: "---\ntitle: T\n---\n# Hi\n\n<script>alert(1)</script>\n"})

	html := out.String()
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Hi</h1>")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "title: T")
}

func TestTerminalRenders(t *testing.T) {
	var out bytes.Buffer
	term, err := NewTerminal("content", &out, TerminalOptions{Style: "notty", Width: 40})
	require.NoError(t, err)

	term.Render(editor.View{Markdown: "# Heading\n\nSome **bold** text."})
	assert.Contains(t, out.String(), "Heading")
	assert.Contains(t, out.String(), "bold")
}

func TestTerminalRejectsUnknownStyle(t *testing.T) {
	_, err := NewTerminal("content", &bytes.Buffer{}, TerminalOptions{Style: "no-such-style"})
	require.Error(t, err)
}
