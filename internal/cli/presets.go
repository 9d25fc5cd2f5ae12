package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/mdconverter"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetReadable = "readable"
	presetLossy    = "lossy"
)

// presetConfig layers a preset over the configured codec settings.
func presetConfig(preset string, base codec.Config) (codec.Config, error) {
	cfg := base
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
	case presetStrict:
		cfg.Converter.UnknownNodes = converter.UnknownError
		cfg.Converter.UnknownMarks = converter.UnknownError
	case presetReadable:
		cfg.Converter.EmphasisMarker = '*'
		cfg.Converter.BulletMarker = '*'
	case presetLossy:
		cfg.Converter.UnknownNodes = converter.UnknownSkip
		cfg.Converter.UnknownMarks = converter.UnknownSkip
		cfg.Reverse.HTMLBlocks = mdconverter.HTMLBlocksDrop
		cfg.Reverse.Tables = mdconverter.TablesText
	default:
		return codec.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, readable, lossy)", preset)
	}
	return cfg, nil
}

func resolveCodec(preset string, base codec.Config, allowHTML, strict bool) (*codec.Markdown, error) {
	cfg, err := presetConfig(preset, base)
	if err != nil {
		return nil, err
	}
	if allowHTML {
		cfg.Converter.HardBreakStyle = converter.HardBreakHTML
	}
	if strict {
		cfg.Converter.UnknownNodes = converter.UnknownError
		cfg.Converter.UnknownMarks = converter.UnknownError
	}
	md, err := codec.NewMarkdown(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return md, nil
}

// codecFlags are shared by commands that convert.
type codecFlags struct {
	preset    string
	allowHTML bool
	strict    bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.preset, "preset", presetBalanced, "Preset: balanced|strict|readable|lossy")
	flags.BoolVar(&f.allowHTML, "allow-html", false, "Write hard breaks as <br>")
	flags.BoolVar(&f.strict, "strict", false, "Return error on unknown nodes and marks")
}

func (f *codecFlags) codec(app *App) (*codec.Markdown, error) {
	return resolveCodec(f.preset, app.Config.CodecConfig(), f.allowHTML, f.strict)
}
