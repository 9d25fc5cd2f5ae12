package toolbar

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/rich"
)

// LoadScript runs a Lua source that adds commands bound to ed. Scripts see
// only the base, table, string and math libraries plus two modules:
//
//	toolbar.add{label = "...", tooltip = "...", run = function(editor) ... end, active = function(editor) ... end}
//	editor.toggle_mark(type), editor.toggle_heading(level), editor.toggle_block(type),
//	editor.insert_text(text), editor.is_active(name[, level]), editor.select(block, from, to)
//
// run and active receive the editor module and return a boolean.
func (t *Toolbar) LoadScript(source string, ed editor.Editing) error {
	t.mu.Lock()
	disposed := t.disposed
	t.mu.Unlock()
	if disposed {
		return ErrDisposed
	}

	t.luaMu.Lock()
	L := t.luaState()
	module := editorModule(L, ed)
	var added []Command
	L.SetGlobal("editor", module)
	L.SetGlobal("toolbar", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"add": func(L *lua.LState) int {
			cmd, err := t.scriptCommand(L.CheckTable(1), module)
			if err != nil {
				L.ArgError(1, err.Error())
				return 0
			}
			added = append(added, cmd)
			return 0
		},
	}))
	err := doWithRecovery(func() error { return L.DoString(source) })
	t.luaMu.Unlock()

	if err != nil {
		return fmt.Errorf("toolbar script: %w", err)
	}
	t.Add(added...)
	t.logger.Debug("toolbar.script.loaded", "commands", len(added))
	return nil
}

// luaState returns the shared runtime, creating it on first use. Callers hold
// t.luaMu.
func (t *Toolbar) luaState() *lua.LState {
	if t.lua != nil {
		return t.lua
	}
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	t.lua = L
	return L
}

func (t *Toolbar) scriptCommand(table *lua.LTable, module *lua.LTable) (Command, error) {
	label, ok := table.RawGetString("label").(lua.LString)
	if !ok || label == "" {
		return Command{}, fmt.Errorf("label is required")
	}
	run, ok := table.RawGetString("run").(*lua.LFunction)
	if !ok {
		return Command{}, fmt.Errorf("run must be a function")
	}
	cmd := Command{
		Label:   string(label),
		Tooltip: lua.LVAsString(table.RawGetString("tooltip")),
		Action: func() bool {
			return t.callScript(string(label), run, module)
		},
	}
	if active, ok := table.RawGetString("active").(*lua.LFunction); ok {
		cmd.IsActive = func() bool {
			return t.callScript(string(label), active, module)
		}
	}
	if cmd.Tooltip == "" {
		cmd.Tooltip = cmd.Label
	}
	return cmd, nil
}

// callScript calls fn with the editor module. Errors are logged and count as false.
func (t *Toolbar) callScript(label string, fn *lua.LFunction, module *lua.LTable) bool {
	t.luaMu.Lock()
	defer t.luaMu.Unlock()
	if t.lua == nil {
		return false
	}
	L := t.lua
	err := doWithRecovery(func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, module)
	})
	if err != nil {
		t.logger.Warn("toolbar.script.failed", "label", label, "error", err)
		return false
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret)
}

func editorModule(L *lua.LState, ed editor.Editing) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"toggle_mark": func(L *lua.LState) int {
			L.Push(lua.LBool(ed.ToggleMark(L.CheckString(1), nil)))
			return 1
		},
		"toggle_heading": func(L *lua.LState) int {
			L.Push(lua.LBool(ed.ToggleHeading(L.CheckInt(1))))
			return 1
		},
		"toggle_block": func(L *lua.LState) int {
			L.Push(lua.LBool(ed.ToggleBlock(L.CheckString(1))))
			return 1
		},
		"insert_text": func(L *lua.LState) int {
			L.Push(lua.LBool(ed.InsertText(L.CheckString(1))))
			return 1
		},
		"is_active": func(L *lua.LState) int {
			var attrs map[string]any
			if L.GetTop() >= 2 {
				attrs = map[string]any{"level": L.CheckInt(2)}
			}
			L.Push(lua.LBool(ed.IsActive(L.CheckString(1), attrs)))
			return 1
		},
		"select": func(L *lua.LState) int {
			ed.Select(rich.Selection{Block: L.CheckInt(1), From: L.CheckInt(2), To: L.CheckInt(3)})
			return 0
		},
	})
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
