package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/md-wysiwyg/document"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/logging"
	"github.com/rgonek/md-wysiwyg/rich"
	"github.com/rgonek/md-wysiwyg/surface"
)

const editHelp = `commands:
  select <block> <from> <to>   select a range in the block-th textblock
  type <text>                  insert text over the selection
  paste <html>                 paste sanitized HTML over the selection
  exec <label>                 run a toolbar command
  state                        show toolbar button states
  show                         print the current markdown
  preview                      render the current markdown for the terminal
  save                         write the file
  quit                         leave
`

func newEditCmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a markdown file with line commands read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			watch := app.Config.Watch.Enabled && !noWatch
			return runSession(cmd.Context(), app, args[0], watch, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the file when it changes on disk")
	return cmd
}

// session runs every command on the loop goroutine.
type session struct {
	app    *App
	file   *document.File
	mount  *mount
	out    io.Writer
	logger logging.Logger
	quit   context.CancelFunc
	done   bool
}

func runSession(ctx context.Context, app *App, path string, watch bool, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := eventloop.New(app.Logger(logging.LoopModule))
	defer loop.Close()

	file, err := document.Open(path, document.FileOptions{
		Dispatcher: loop,
		Logger:     app.Logger(logging.DocumentModule),
	})
	if err != nil {
		return err
	}
	defer file.Close()

	if watch {
		if err := file.Watch(ctx); err != nil {
			return err
		}
	}

	m, err := newMount(app, loop, file, surface.NewMemory(app.Config.Editor.ContentContainer), app.Config.Editor.Toolbar)
	if err != nil {
		return err
	}
	defer m.bridge.Dispose()

	s := &session{app: app, file: file, mount: m, out: out, logger: app.Logger(logging.CLIModule), quit: cancel}
	m.surface.TitleChanged().Connect(func(title string) { fmt.Fprintf(out, "title: %s\n", title) })
	m.bridge.ContentChanged().Connect(func(string) { s.logger.Debug("cli.edit.changed", "dirty", file.Dirty()) })

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			loop.Post(func() { s.exec(line) })
		}
		loop.Post(cancel)
	}()

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (s *session) exec(line string) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	if verb == "" || s.done {
		return
	}

	switch verb {
	case "help":
		fmt.Fprint(s.out, editHelp)
		return
	case "quit", "exit":
		s.done = true
		s.quit()
		return
	case "save":
		if err := s.file.Save(); err != nil {
			s.fail(err)
			return
		}
		fmt.Fprintf(s.out, "saved %s\n", s.file.Path())
		return
	}

	ed := s.mount.bridge.Adapter()
	if ed == nil {
		s.fail(errNotReady)
		return
	}

	switch verb {
	case "select":
		sel, err := parseSelection(rest)
		if err != nil {
			s.fail(err)
			return
		}
		ed.Select(sel)
	case "type":
		s.report(ed.InsertText(rest))
	case "paste":
		s.report(ed.InsertHTML(rest))
	case "exec":
		bar := s.mount.bridge.Toolbar()
		if bar == nil {
			s.fail(fmt.Errorf("toolbar is hidden"))
			return
		}
		ok, err := bar.Exec(rest)
		if err != nil {
			s.fail(err)
			return
		}
		s.report(ok)
	case "state":
		bar := s.mount.bridge.Toolbar()
		if bar == nil {
			s.fail(fmt.Errorf("toolbar is hidden"))
			return
		}
		states := bar.States()
		labels := make([]string, 0, len(states))
		for label := range states {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			if states[label] {
				fmt.Fprintf(s.out, "%s: on\n", label)
			}
		}
	case "show":
		_ = writeMarkdown(s.out, ed.Markdown())
	case "preview":
		term, err := surface.NewTerminal("preview", s.out, surface.TerminalOptions{
			Style:  s.app.Config.Render.Style,
			Width:  s.app.Config.Render.Width,
			Logger: s.logger,
		})
		if err != nil {
			s.fail(err)
			return
		}
		term.Render(editor.View{Markdown: ed.Markdown()})
	default:
		s.fail(fmt.Errorf("unknown command %q (try help)", verb))
	}
}

func (s *session) report(applied bool) {
	if !applied {
		fmt.Fprintln(s.out, "no change")
	}
}

func (s *session) fail(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func parseSelection(args string) (rich.Selection, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return rich.Selection{}, fmt.Errorf("select needs <block> <from> <to>")
	}
	values := make([]int, 3)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return rich.Selection{}, fmt.Errorf("invalid position %q", field)
		}
		values[i] = n
	}
	return rich.Selection{Block: values[0], From: values[1], To: values[2]}, nil
}
