// Package config resolves mdw settings with precedence defaults < file < env.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rgonek/md-wysiwyg/bridge"
	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/editor/backend"
	"github.com/rgonek/md-wysiwyg/logging/gologger"
)

// EnvPrefix prefixes environment overrides, e.g. MDW_EDITOR_BACKEND.
const EnvPrefix = "mdw"

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns every setting with its default and meaning.
// It is the single source for viper defaults and the generated config file.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "editor.backend", Default: string(backend.Tree), Comment: "Adapter variant: tree or block"},
		{Key: "editor.toolbar", Default: true, Comment: "Show the formatting toolbar"},
		{Key: "editor.change_on_set", Default: "", Comment: "Change report after SetMarkdown: none, sync or deferred (empty uses the variant default)"},
		{Key: "editor.content_container", Default: bridge.DefaultContentContainer, Comment: "Surface container the editor mounts into"},

		{Key: "converter.bullet_marker", Default: "-", Comment: "Bullet list marker: - * or +"},
		{Key: "converter.hard_break", Default: string(converter.HardBreakBackslash), Comment: "Hard break style: backslash or html"},

		{Key: "log.level", Default: "warn", Comment: "Log level: trace, debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log format: console, json or pretty"},

		{Key: "toolbar.scripts", Default: []string{}, Comment: "Lua files adding toolbar commands"},

		{Key: "watch.enabled", Default: true, Comment: "Reload the document when the file changes on disk"},

		{Key: "render.style", Default: "dark", Comment: "Terminal rendering style (glamour standard style)"},
		{Key: "render.width", Default: 80, Comment: "Terminal word wrap width"},
	}
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// A config file set upstream with SetConfigFile must exist.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdw"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdw"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// comma separated env override
	if s, ok := v.Get("toolbar.scripts").(string); ok {
		v.Set("toolbar.scripts", splitList(s))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DefaultConfigPath resolves the standard config.yaml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "mdw", "config.yaml")
}

// Config is the resolved application configuration.
type Config struct {
	Editor    EditorConfig
	Converter ConverterConfig
	Log       LogConfig
	Toolbar   ToolbarConfig
	Watch     WatchConfig
	Render    RenderConfig
}

type EditorConfig struct {
	Backend          string
	Toolbar          bool
	ChangeOnSet      string
	ContentContainer string
}

type ConverterConfig struct {
	BulletMarker string
	HardBreak    string
}

type LogConfig struct {
	Level  string
	Format string
}

type ToolbarConfig struct {
	Scripts []string
}

type WatchConfig struct {
	Enabled bool
}

type RenderConfig struct {
	Style string
	Width int
}

// FromViper reads a loaded viper instance and validates the result.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Editor: EditorConfig{
			Backend:          strings.ToLower(strings.TrimSpace(v.GetString("editor.backend"))),
			Toolbar:          v.GetBool("editor.toolbar"),
			ChangeOnSet:      strings.ToLower(strings.TrimSpace(v.GetString("editor.change_on_set"))),
			ContentContainer: strings.TrimSpace(v.GetString("editor.content_container")),
		},
		Converter: ConverterConfig{
			BulletMarker: strings.TrimSpace(v.GetString("converter.bullet_marker")),
			HardBreak:    strings.ToLower(strings.TrimSpace(v.GetString("converter.hard_break"))),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
		Toolbar: ToolbarConfig{Scripts: v.GetStringSlice("toolbar.scripts")},
		Watch:   WatchConfig{Enabled: v.GetBool("watch.enabled")},
		Render: RenderConfig{
			Style: strings.ToLower(strings.TrimSpace(v.GetString("render.style"))),
			Width: v.GetInt("render.width"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Backend returns the configured adapter variant.
func (c Config) Backend() (backend.Kind, error) {
	return backend.ParseKind(c.Editor.Backend)
}

// EditorOptions completes base (dispatcher, logger) with the configured
// codec and change mode.
func (c Config) EditorOptions(base editor.Options) (editor.Options, error) {
	md, err := codec.NewMarkdown(c.CodecConfig())
	if err != nil {
		return editor.Options{}, err
	}
	opts := base
	opts.Codec = md
	opts.ChangeOnSet = editor.ChangeMode(c.Editor.ChangeOnSet)
	return opts, nil
}

// CodecConfig maps converter settings onto the codec.
func (c Config) CodecConfig() codec.Config {
	var cfg codec.Config
	if c.Converter.BulletMarker != "" {
		cfg.Converter.BulletMarker = []rune(c.Converter.BulletMarker)[0]
	}
	cfg.Converter.HardBreakStyle = converter.HardBreakStyle(c.Converter.HardBreak)
	return cfg
}

// LoggerConfig maps log settings onto the go-logger provider.
func (c Config) LoggerConfig() gologger.Config {
	return gologger.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// Scripts reads the configured toolbar scripts. Relative paths resolve
// against base.
func (c Config) Scripts(base string) ([]string, error) {
	sources := make([]string, 0, len(c.Toolbar.Scripts))
	for _, path := range c.Toolbar.Scripts {
		if !filepath.IsAbs(path) && base != "" {
			path = filepath.Join(base, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("toolbar script: %w", err)
		}
		sources = append(sources, string(data))
	}
	return sources, nil
}
