// Package cli implements the mdw command line.
package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rgonek/md-wysiwyg/config"
	"github.com/rgonek/md-wysiwyg/logging"
	"github.com/rgonek/md-wysiwyg/logging/gologger"
)

type ctxKey string

const appKey ctxKey = "app"

// App carries resolved configuration into subcommands.
type App struct {
	Config config.Config
	Logs   logging.Provider
	// ConfigDir resolves relative toolbar script paths.
	ConfigDir string
}

// Logger returns a module scoped logger.
func (a *App) Logger(module string) logging.Logger {
	return logging.ModuleLogger(a.Logs, module)
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command and wires configuration.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:           "mdw",
		Short:         "Headless markdown WYSIWYG editing bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if logLevel != "" {
				v.Set("log.level", logLevel)
			}
			app, err := buildApp(v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newRoundtripCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newCommandsCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func buildApp(v *viper.Viper) (*App, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	provider, err := gologger.NewProvider(cfg.LoggerConfig())
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logs: provider}
	if used := v.ConfigFileUsed(); used != "" {
		app.ConfigDir = filepath.Dir(used)
	} else if wd, err := os.Getwd(); err == nil {
		app.ConfigDir = wd
	}
	return app, nil
}

func getApp(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey).(*App)
	if !ok || app == nil {
		return nil, errors.New("internal error: app not initialized")
	}
	return app, nil
}
