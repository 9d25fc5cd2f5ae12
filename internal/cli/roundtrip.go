package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/md-wysiwyg/surface"
)

func newRoundtripCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Load a file into the editor and print what it serializes back to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			source := string(data)

			m, err := loadOnce(app, args[0], source, surface.NewMemory(app.Config.Editor.ContentContainer))
			if err != nil {
				return err
			}
			defer m.bridge.Dispose()

			out := m.bridge.Adapter().Markdown()
			if err := writeMarkdown(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			identical := out == source
			fmt.Fprintf(cmd.ErrOrStderr(), "identical: %t\n", identical)
			if check && !identical {
				return fmt.Errorf("%s does not round trip", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Fail when the output differs from the input")
	return cmd
}
