package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/mdconverter"
)

type runResult struct {
	out    string
	errOut string
	err    error
}

// run executes the root command in an isolated config environment.
func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return runResult{out: out.String(), errOut: errOut.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvert(t *testing.T) {
	path := writeFile(t, "doc.md", "# Title\n\nSome **bold** text.")

	res := run(t, "", "convert", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, `"type": "heading"`)
	assert.Contains(t, res.out, `"type": "strong"`)

	res = run(t, "", "convert", path, "--output", "yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "type: heading")

	res = run(t, "", "convert", path, "--output", "xml")
	require.Error(t, res.err)
}

func TestConvertReverse(t *testing.T) {
	source := "# Title\n\n- one\n- two"
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			md := writeFile(t, "doc.md", source)
			res := run(t, "", "convert", md, "--output", format)
			require.NoError(t, res.err)

			encoded := writeFile(t, "doc."+format, res.out)
			res = run(t, "", "convert", "--reverse", encoded)
			require.NoError(t, res.err)
			assert.Equal(t, source+"\n", res.out)
		})
	}
}

func TestConvertFromStdin(t *testing.T) {
	res := run(t, "_em_", "convert", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, `"type": "em"`)
}

func TestRoundtrip(t *testing.T) {
	stable := writeFile(t, "stable.md", "# Title\n\nSome **bold** text.")
	res := run(t, "", "roundtrip", stable, "--check")
	require.NoError(t, res.err)
	assert.Equal(t, "# Title\n\nSome **bold** text.\n", res.out)
	assert.Contains(t, res.errOut, "identical: true")

	normalized := writeFile(t, "normalized.md", "* a\n* b")
	res = run(t, "", "roundtrip", normalized)
	require.NoError(t, res.err)
	assert.Equal(t, "- a\n- b\n", res.out)
	assert.Contains(t, res.errOut, "identical: false")

	res = run(t, "", "roundtrip", normalized, "--check")
	require.Error(t, res.err)
}

func TestRoundtripBlockBackend(t *testing.T) {
	path := writeFile(t, "doc.md", "---\ntitle: x\n---\n# Title\n")
	t.Setenv("MDW_EDITOR_BACKEND", "block")
	res := run(t, "", "roundtrip", path, "--check")
	require.NoError(t, res.err)
	assert.Equal(t, "---\ntitle: x\n---\n# Title\n", res.out)
}

func TestRenderHTML(t *testing.T) {
	path := writeFile(t, "doc.md", "# Title\n\n<script>alert(1)</script>\n\nSome **bold** text.")
	res := run(t, "", "render", path, "--format", "html")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "<h1")
	assert.Contains(t, res.out, "<strong>bold</strong>")
	assert.NotContains(t, res.out, "<script>")
}

func TestRenderTerminal(t *testing.T) {
	path := writeFile(t, "doc.md", "# Title\n\nplain words")
	res := run(t, "", "render", path, "--style", "notty", "--width", "40")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "plain words")

	res = run(t, "", "render", path, "--format", "pdf")
	require.Error(t, res.err)
}

func TestEditSession(t *testing.T) {
	path := writeFile(t, "note.md", "Some bold text.")
	script := strings.Join([]string{
		"select 0 5 9",
		"exec Bold",
		"state",
		"show",
		"exec Nope",
		"frobnicate",
		"save",
		"quit",
		"show",
	}, "\n")

	res := run(t, script, "edit", "--no-watch", path)
	require.NoError(t, res.err)

	assert.Contains(t, res.out, "Bold: on\n")
	assert.Contains(t, res.out, "Some **bold** text.\n")
	assert.Contains(t, res.out, "error: toolbar: unknown command")
	assert.Contains(t, res.out, `error: unknown command "frobnicate"`)
	assert.Contains(t, res.out, "saved ")
	assert.Equal(t, 1, strings.Count(res.out, "Some **bold** text."), "commands after quit do not run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Some **bold** text.", string(data))
}

func TestEditSessionEndsAtEOF(t *testing.T) {
	path := writeFile(t, "note.md", "x")
	res := run(t, "type y\n", "edit", "--no-watch", path)
	require.NoError(t, res.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data), "nothing is written without save")
}

func TestCommands(t *testing.T) {
	res := run(t, "", "commands")
	require.NoError(t, res.err)
	for _, label := range []string{"Bold", "Italic", "Code Block", "H3"} {
		assert.Contains(t, res.out, label)
	}

	res = run(t, "", "commands", "blkquote")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Quote")
	assert.NotContains(t, res.out, "Bold")
}

func TestCommandsLoadsScripts(t *testing.T) {
	script := writeFile(t, "stamp.lua", `toolbar.add{label = "Stamp", tooltip = "Insert a stamp", run = function(ed) return ed.insert_text("!") end}`)
	t.Setenv("MDW_TOOLBAR_SCRIPTS", script)

	res := run(t, "", "commands", "stamp")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Insert a stamp")
}

func TestConfigGenerate(t *testing.T) {
	res := run(t, "", "config", "generate", "-o", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "editor:")

	target := filepath.Join(t.TempDir(), "mdw", "config.yaml")
	res = run(t, "", "config", "generate", "-o", target)
	require.NoError(t, res.err)
	assert.FileExists(t, target)

	res = run(t, "", "config", "generate", "-o", target)
	require.Error(t, res.err)

	res = run(t, "", "--config", target, "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "editor.backend = tree")
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("MDW_EDITOR_BACKEND", "canvas")
	res := run(t, "", "config", "show")
	require.Error(t, res.err)
}

func TestPresetConfig(t *testing.T) {
	tests := []struct {
		preset string
		check  func(t *testing.T, cfg codec.Config)
	}{
		{"", func(t *testing.T, cfg codec.Config) { assert.Equal(t, codec.Config{}, cfg) }},
		{"strict", func(t *testing.T, cfg codec.Config) {
			assert.Equal(t, converter.UnknownError, cfg.Converter.UnknownNodes)
		}},
		{"readable", func(t *testing.T, cfg codec.Config) {
			assert.Equal(t, '*', cfg.Converter.EmphasisMarker)
		}},
		{"lossy", func(t *testing.T, cfg codec.Config) {
			assert.Equal(t, mdconverter.HTMLBlocksDrop, cfg.Reverse.HTMLBlocks)
			assert.Equal(t, mdconverter.TablesText, cfg.Reverse.Tables)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg, err := presetConfig(tt.preset, codec.Config{})
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}

	_, err := presetConfig("pandoc", codec.Config{})
	require.Error(t, err)
}
