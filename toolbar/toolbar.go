// Package toolbar maps toolbar buttons to editor commands. A command is a
// label, an action and an optional active-state predicate; executing one runs
// the action and then re-evaluates every predicate.
package toolbar

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sahilm/fuzzy"
	lua "github.com/yuin/gopher-lua"

	"github.com/rgonek/md-wysiwyg/logging"
)

// ErrUnknownCommand is returned by Exec for a label that is not registered.
var ErrUnknownCommand = errors.New("toolbar: unknown command")

// ErrDisposed is returned by Exec and LoadScript after Dispose.
var ErrDisposed = errors.New("toolbar: disposed")

// Command is one toolbar button.
type Command struct {
	Label    string
	Tooltip  string
	Action   func() bool
	IsActive func() bool
}

// Options configures New.
type Options struct {
	Logger logging.Logger
}

// Toolbar holds commands and the last evaluated button states.
type Toolbar struct {
	logger logging.Logger

	mu       sync.Mutex
	commands []Command
	index    map[string]int
	states   map[string]bool
	disposed bool

	luaMu sync.Mutex
	lua   *lua.LState
}

// New returns an empty toolbar.
func New(opts Options) *Toolbar {
	return &Toolbar{
		logger: logging.OrNoOp(opts.Logger),
		index:  map[string]int{},
		states: map[string]bool{},
	}
}

// Add registers commands. A command with an existing label replaces it.
func (t *Toolbar) Add(commands ...Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, cmd := range commands {
		if cmd.Label == "" || cmd.Action == nil {
			t.logger.Warn("toolbar.command.invalid", "label", cmd.Label)
			continue
		}
		if i, ok := t.index[cmd.Label]; ok {
			t.commands[i] = cmd
			continue
		}
		t.index[cmd.Label] = len(t.commands)
		t.commands = append(t.commands, cmd)
	}
}

// Commands returns the registered commands in registration order.
func (t *Toolbar) Commands() []Command {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Command(nil), t.commands...)
}

// Exec runs the command's action and refreshes all predicates. It reports
// whether the action applied.
func (t *Toolbar) Exec(label string) (bool, error) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return false, ErrDisposed
	}
	i, ok := t.index[label]
	if !ok {
		t.mu.Unlock()
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, label)
	}
	cmd := t.commands[i]
	t.mu.Unlock()

	applied := cmd.Action()
	t.logger.Debug("toolbar.exec", "label", label, "applied", applied)
	t.Refresh()
	return applied, nil
}

// Refresh re-evaluates every predicate.
func (t *Toolbar) Refresh() {
	commands := t.Commands()
	states := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		if cmd.IsActive == nil {
			states[cmd.Label] = false
			continue
		}
		states[cmd.Label] = cmd.IsActive()
	}

	t.mu.Lock()
	t.states = states
	t.mu.Unlock()
}

// States returns the button states from the last Refresh.
func (t *Toolbar) States() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]bool, len(t.states))
	for k, v := range t.states {
		out[k] = v
	}
	return out
}

// Active returns the state of one button.
func (t *Toolbar) Active(label string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[label]
}

// Find fuzzy-matches query against labels and tooltips, best match first.
// An empty query returns every command.
func (t *Toolbar) Find(query string) []Command {
	commands := t.Commands()
	if query == "" {
		return commands
	}
	candidates := make([]string, len(commands))
	for i, cmd := range commands {
		candidates[i] = cmd.Label + " " + cmd.Tooltip
	}
	matches := fuzzy.Find(query, candidates)
	out := make([]Command, len(matches))
	for i, match := range matches {
		out[i] = commands[match.Index]
	}
	return out
}

// Dispose drops the commands and closes the script runtime.
func (t *Toolbar) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	t.commands = nil
	t.index = map[string]int{}
	t.states = map[string]bool{}
	t.mu.Unlock()

	t.luaMu.Lock()
	if t.lua != nil {
		t.lua.Close()
		t.lua = nil
	}
	t.luaMu.Unlock()
}
