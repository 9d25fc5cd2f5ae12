package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/logging"
	"github.com/rgonek/md-wysiwyg/surface"
)

const (
	formatHTML = "html"
	formatTerm = "term"
)

func newRenderCmd() *cobra.Command {
	var format string
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a file through the editor as HTML or styled terminal output",
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

			name := app.Config.Editor.ContentContainer
			logger := app.Logger(logging.SurfaceModule)
			var host editor.Host
			switch strings.ToLower(format) {
			case formatHTML:
				host = surface.NewHTMLWriter(name, cmd.OutOrStdout(), logger)
			case formatTerm:
				opts := surface.TerminalOptions{Style: app.Config.Render.Style, Width: app.Config.Render.Width, Logger: logger}
				if style != "" {
					opts.Style = style
				}
				if width > 0 {
					opts.Width = width
				}
				if host, err = surface.NewTerminal(name, cmd.OutOrStdout(), opts); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (allowed: html, term)", format)
			}

			m, err := loadOnce(app, args[0], string(data), host)
			if err != nil {
				return err
			}
			m.bridge.Dispose()
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTerm, "Output format: html|term")
	cmd.Flags().StringVar(&style, "style", "", "override render.style")
	cmd.Flags().IntVar(&width, "width", 0, "override render.width")
	return cmd
}
