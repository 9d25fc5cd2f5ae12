package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rgonek/md-wysiwyg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGenerateCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			c := app.Config
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "editor.backend = %s\n", c.Editor.Backend)
			fmt.Fprintf(out, "editor.toolbar = %t\n", c.Editor.Toolbar)
			fmt.Fprintf(out, "editor.change_on_set = %s\n", c.Editor.ChangeOnSet)
			fmt.Fprintf(out, "editor.content_container = %s\n", c.Editor.ContentContainer)
			fmt.Fprintf(out, "converter.bullet_marker = %s\n", c.Converter.BulletMarker)
			fmt.Fprintf(out, "converter.hard_break = %s\n", c.Converter.HardBreak)
			fmt.Fprintf(out, "log.level = %s\n", c.Log.Level)
			fmt.Fprintf(out, "log.format = %s\n", c.Log.Format)
			fmt.Fprintf(out, "toolbar.scripts = %v\n", c.Toolbar.Scripts)
			fmt.Fprintf(out, "watch.enabled = %t\n", c.Watch.Enabled)
			fmt.Fprintf(out, "render.style = %s\n", c.Render.Style)
			fmt.Fprintf(out, "render.width = %d\n", c.Render.Width)
			return nil
		},
	}
}

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a default config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.RenderDefaultYAML()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			if _, err := os.Stat(out); err == nil && !overwrite {
				return fmt.Errorf("config already exists at %s; use --overwrite to replace it", out)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o700); err != nil {
				return err
			}
			if err := os.WriteFile(out, []byte(content), 0o600); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote config: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.yaml (- for stdout)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing config")
	return cmd
}
