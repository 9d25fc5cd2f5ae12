package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/md-wysiwyg/logging/logtest"
	"github.com/rgonek/md-wysiwyg/rich"
)

const scriptedCommands = `
toolbar.add{
  label = "Shout",
  tooltip = "Strong emphasis",
  run = function(ed)
    local a = ed.toggle_mark("strong")
    local b = ed.toggle_mark("em")
    return a and b
  end,
  active = function(ed)
    return ed.is_active("strong") and ed.is_active("em")
  end,
}

toolbar.add{
  label = "Title",
  run = function(ed) return ed.toggle_heading(1) end,
  active = function(ed) return ed.is_active("heading", 1) end,
}

toolbar.add{
  label = "Stamp",
  run = function(ed)
    ed.select(0, 0, 0)
    return ed.insert_text(string.upper("note: "))
  end,
}
`

func TestLoadScriptAddsCommands(t *testing.T) {
	ed, changes := newEditor(t, "hello world")
	bar := New(Options{})
	require.NoError(t, bar.LoadScript(scriptedCommands, ed))

	commands := bar.Commands()
	require.Len(t, commands, 3)
	assert.Equal(t, "Strong emphasis", commands[0].Tooltip)
	assert.Equal(t, "Title", commands[1].Tooltip)

	ed.Select(rich.Selection{Block: 0, From: 6, To: 11})
	applied, err := bar.Exec("Shout")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, bar.Active("Shout"))
	assert.False(t, bar.Active("Title"))
	assert.Equal(t, "hello **_world_**", ed.Markdown())

	applied, err = bar.Exec("Title")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, bar.Active("Title"))

	applied, err = bar.Exec("Stamp")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "# NOTE: hello **_world_**", ed.Markdown())
	assert.Equal(t, 4, changes.Len())
}

func TestLoadScriptErrors(t *testing.T) {
	ed, _ := newEditor(t, "")
	tests := map[string]string{
		"syntax":      "toolbar.add{",
		"no label":    `toolbar.add{run = function() return true end}`,
		"no run":      `toolbar.add{label = "X"}`,
		"no io":       `io.write("x")`,
		"no os":       `os.exit(1)`,
		"raise error": `error("boom")`,
	}
	for name, source := range tests {
		t.Run(name, func(t *testing.T) {
			bar := New(Options{})
			require.Error(t, bar.LoadScript(source, ed))
			assert.Empty(t, bar.Commands())
		})
	}
}

func TestScriptRuntimeErrorsAreLogged(t *testing.T) {
	ed, _ := newEditor(t, "")
	recorder := logtest.New()
	bar := New(Options{Logger: recorder})
	require.NoError(t, bar.LoadScript(`toolbar.add{label = "Broken", run = function() error("nope") end}`, ed))

	applied, err := bar.Exec("Broken")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, recorder.Count("toolbar.script.failed"))
}
