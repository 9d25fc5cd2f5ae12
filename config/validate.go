package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/editor/backend"
)

const configValidationCode = "CONFIG_INVALID"

var (
	bulletMarkers = []any{"-", "*", "+"}
	hardBreaks    = []any{"backslash", "html"}
	logLevels     = []any{"trace", "debug", "info", "warn", "error", "fatal"}
	logFormats    = []any{"console", "json", "pretty"}
	renderStyles  = []any{"ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}
)

// Validate checks every section and reports all failures at once.
func (c Config) Validate() error {
	errs := validation.Errors{
		"editor":    c.Editor.validate(),
		"converter": c.Converter.validate(),
		"log":       c.Log.validate(),
		"render":    c.Render.validate(),
	}.Filter()
	if errs == nil {
		return nil
	}
	return goerrors.Wrap(errs, goerrors.CategoryValidation, "invalid configuration").
		WithTextCode(configValidationCode)
}

func (e EditorConfig) validate() error {
	kinds := make([]any, 0, len(backend.Kinds))
	for _, kind := range backend.Kinds {
		kinds = append(kinds, string(kind))
	}
	modes := make([]any, 0, len(editor.ChangeModes))
	for _, mode := range editor.ChangeModes {
		modes = append(modes, string(mode))
	}
	return validation.ValidateStruct(&e,
		validation.Field(&e.Backend, validation.In(kinds...)),
		validation.Field(&e.ChangeOnSet, validation.In(modes...)),
		validation.Field(&e.ContentContainer, validation.Required),
	)
}

func (c ConverterConfig) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BulletMarker, validation.Required, validation.In(bulletMarkers...)),
		validation.Field(&c.HardBreak, validation.Required, validation.In(hardBreaks...)),
	)
}

func (l LogConfig) validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(logLevels...)),
		validation.Field(&l.Format, validation.In(logFormats...)),
	)
}

func (r RenderConfig) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Style, validation.Required, validation.In(renderStyles...)),
		validation.Field(&r.Width, validation.Min(20), validation.Max(400)),
	)
}
