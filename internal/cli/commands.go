package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/editor/backend"
	"github.com/rgonek/md-wysiwyg/logging"
	"github.com/rgonek/md-wysiwyg/toolbar"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [query]",
		Short: "List toolbar commands, fuzzy filtered by query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			scripts, err := app.Config.Scripts(app.ConfigDir)
			if err != nil {
				return err
			}

			// commands bind to an editor; a detached one is enough to list them
			ed, err := backend.New(backend.Tree, editor.Options{Logger: app.Logger(logging.EditorModule)})
			if err != nil {
				return err
			}
			defer ed.Dispose()

			bar := toolbar.New(toolbar.Options{Logger: app.Logger(logging.ToolbarModule)})
			defer bar.Dispose()
			bar.Add(toolbar.Defaults(ed)...)
			for _, script := range scripts {
				if err := bar.LoadScript(script, ed); err != nil {
					return err
				}
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, command := range bar.Find(query) {
				fmt.Fprintf(w, "%s\t%s\n", command.Label, command.Tooltip)
			}
			return w.Flush()
		},
	}
}
