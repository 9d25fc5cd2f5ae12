package backend

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/editor/block"
	"github.com/rgonek/md-wysiwyg/editor/editortest"
	"github.com/rgonek/md-wysiwyg/editor/tree"
	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/rich"
)

const scenario = "# Title\n\nSome **bold** text."

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, Tree, kind)

	kind, err = ParseKind("BLOCK")
	require.NoError(t, err)
	assert.Equal(t, Block, kind)

	_, err = ParseKind("canvas")
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestNewSelectsVariant(t *testing.T) {
	loop := eventloop.New(nil)

	ed, err := New(Tree, editor.Options{})
	require.NoError(t, err)
	assert.IsType(t, &tree.Editor{}, ed)

	ed, err = New(Block, editor.Options{Dispatcher: loop})
	require.NoError(t, err)
	assert.IsType(t, &block.Editor{}, ed)

	_, err = New("canvas", editor.Options{})
	require.Error(t, err)
}

func TestBlockRequiresDispatcherForDefaultMode(t *testing.T) {
	_, err := New(Block, editor.Options{})
	require.Error(t, err)
}

// variants returns a constructor for every variant under every change mode.
func variants(loop *eventloop.Loop) map[string]func() (editor.Editor, error) {
	out := map[string]func() (editor.Editor, error){}
	for _, kind := range Kinds {
		for _, mode := range editor.ChangeModes {
			out[string(kind)+"/"+string(mode)] = Factory(kind, editor.Options{ChangeOnSet: mode, Dispatcher: loop})
		}
	}
	return out
}

func TestAdapterContract(t *testing.T) {
	loop := eventloop.New(nil)
	for name, factory := range variants(loop) {
		t.Run(name, func(t *testing.T) {
			ed, err := factory()
			require.NoError(t, err)

			host := editortest.NewHost("content")
			changes := &editortest.Changes{}
			require.NoError(t, ed.Initialize(host, scenario, changes.Func()))
			loop.Drain()

			assert.Zero(t, changes.Len(), "initialize must not report a change")
			assert.Equal(t, scenario, ed.Markdown())
			assert.Equal(t, scenario, ed.Markdown(), "reads are pure")

			view, ok := host.Last()
			require.True(t, ok)
			require.Len(t, view.Doc.Content, 2)
			assert.Equal(t, rich.NodeHeading, view.Doc.Content[0].Type)

			require.ErrorIs(t, ed.Initialize(host, scenario, nil), editor.ErrInitialized)

			ed.Focus()
			assert.Equal(t, 1, host.Focused())

			ed.Dispose()
			ed.Dispose()
			assert.Equal(t, 1, host.Cleared())
			assert.Empty(t, ed.Markdown())

			ed.SetMarkdown("# Other")
			ed.Focus()
			assert.False(t, ed.InsertText("x"))
			assert.False(t, ed.IsActive(rich.MarkStrong, nil))
			assert.Equal(t, 1, host.Focused())
			assert.Zero(t, host.Renders())
			require.ErrorIs(t, ed.Initialize(host, scenario, nil), editor.ErrDisposed)
			loop.Drain()
			assert.Zero(t, changes.Len())
		})
	}
}

func TestSetMarkdownReportsPerChangeMode(t *testing.T) {
	loop := eventloop.New(nil)
	for name, factory := range variants(loop) {
		t.Run(name, func(t *testing.T) {
			ed, err := factory()
			require.NoError(t, err)
			changes := &editortest.Changes{}
			require.NoError(t, ed.Initialize(editortest.NewHost("content"), scenario, changes.Func()))

			ed.SetMarkdown("- a\n- b")
			immediate := changes.Len()
			loop.Drain()

			assert.Equal(t, "- a\n- b", ed.Markdown())
			switch {
			case name == "tree/sync" || name == "block/sync":
				assert.Equal(t, 1, immediate)
				assert.Equal(t, []string{"- a\n- b"}, changes.Values())
			case name == "tree/deferred" || name == "block/deferred":
				assert.Zero(t, immediate)
				assert.Equal(t, []string{"- a\n- b"}, changes.Values())
			default:
				assert.Zero(t, changes.Len())
			}
		})
	}
}

func TestUserEditsReportSynchronously(t *testing.T) {
	loop := eventloop.New(nil)
	for name, factory := range variants(loop) {
		t.Run(name, func(t *testing.T) {
			ed, err := factory()
			require.NoError(t, err)
			changes := &editortest.Changes{}
			require.NoError(t, ed.Initialize(editortest.NewHost("content"), scenario, changes.Func()))

			ed.Select(rich.Selection{Block: 1, From: 5, To: 9})
			require.True(t, ed.IsActive(rich.MarkStrong, nil))
			require.True(t, ed.ToggleMark(rich.MarkStrong, nil))
			require.True(t, ed.ToggleMark(rich.MarkEm, nil))

			assert.Equal(t, []string{
				"# Title\n\nSome bold text.",
				"# Title\n\nSome _bold_ text.",
			}, changes.Values())
			assert.True(t, ed.IsActive(rich.MarkEm, nil))
			assert.False(t, ed.IsActive(rich.MarkStrong, nil))
		})
	}
}

func TestMarksOnWhitespaceEdgesSurviveReload(t *testing.T) {
	tests := []struct {
		name string
		sel  rich.Selection
		mark string
		want string
	}{
		{"strong with trailing space", rich.Selection{Block: 0, From: 0, To: 6}, rich.MarkStrong, "**hello** world"},
		{"em with leading space", rich.Selection{Block: 0, From: 5, To: 11}, rich.MarkEm, "hello _world_"},
		{"strike on a space only", rich.Selection{Block: 0, From: 5, To: 6}, rich.MarkStrike, "hello world"},
	}
	loop := eventloop.New(nil)
	for _, kind := range Kinds {
		for _, tt := range tests {
			t.Run(string(kind)+"/"+tt.name, func(t *testing.T) {
				ed, err := New(kind, editor.Options{ChangeOnSet: editor.ChangeNone, Dispatcher: loop})
				require.NoError(t, err)
				require.NoError(t, ed.Initialize(editortest.NewHost("content"), "hello world", nil))

				ed.Select(tt.sel)
				ed.ToggleMark(tt.mark, nil)
				md := ed.Markdown()
				assert.Equal(t, tt.want, md)

				ed.SetMarkdown(md)
				loop.Drain()
				assert.Equal(t, md, ed.Markdown(), "delimiters must parse back as marks")
			})
		}
	}
}

func TestRoundTripStability(t *testing.T) {
	inputs := []string{
		"# H1\n\n## H2\n\n###### H6",
		"**strong** _em_ ~~strike~~ `code`",
		"```go\nfmt.Println(1)\n```",
		"> quoted\n>\n> - nested",
		"1. one\n2. two\n   - inner\n   - inner two\n3. three",
		"- [ ] todo\n- [x] done",
		"line\\\nbreak",
		"---",
		"[link](https://example.com \"title\") and ![img](a.png)",
		"a <span>x</span> text",
	}
	loop := eventloop.New(nil)
	for name, factory := range variants(loop) {
		t.Run(name, func(t *testing.T) {
			ed, err := factory()
			require.NoError(t, err)
			require.NoError(t, ed.Initialize(editortest.NewHost("content"), "", nil))
			for _, input := range inputs {
				ed.SetMarkdown(input)
				loop.Drain()
				assert.Equal(t, input, ed.Markdown())
			}
		})
	}
}

func TestPasteHTML(t *testing.T) {
	loop := eventloop.New(nil)
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			ed, err := New(kind, editor.Options{Dispatcher: loop})
			require.NoError(t, err)
			changes := &editortest.Changes{}
			require.NoError(t, ed.Initialize(editortest.NewHost("content"), "Hello world", changes.Func()))

			ed.Select(rich.Selection{Block: 0, From: 6, To: 11})
			require.True(t, ed.InsertHTML("<b>there</b><script>alert(1)</script>"))
			assert.Equal(t, "Hello **there**", ed.Markdown())
			assert.Equal(t, 1, changes.Len())
		})
	}
}
