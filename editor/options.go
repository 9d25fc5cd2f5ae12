package editor

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/rgonek/md-wysiwyg/codec"
	"github.com/rgonek/md-wysiwyg/eventloop"
	"github.com/rgonek/md-wysiwyg/logging"
)

const optionsValidationCode = "EDITOR_OPTIONS_INVALID"

// Options configures an adapter variant.
type Options struct {
	// Codec converts between markdown and the rich representation. Defaults
	// to a markdown codec with default settings.
	Codec codec.Codec
	// ChangeOnSet overrides the variant's change-on-set behaviour.
	ChangeOnSet ChangeMode
	// Dispatcher receives deferred change notifications. Required for
	// ChangeDeferred.
	Dispatcher eventloop.Dispatcher
	Logger     logging.Logger
}

// WithDefaults fills unset fields. mode is the variant's default ChangeMode.
func (o Options) WithDefaults(mode ChangeMode) (Options, error) {
	if o.ChangeOnSet == "" {
		o.ChangeOnSet = mode
	}
	if o.Codec == nil {
		md, err := codec.NewMarkdown(codec.Config{})
		if err != nil {
			return o, err
		}
		o.Codec = md
	}
	o.Logger = logging.OrNoOp(o.Logger)
	return o, o.Validate()
}

// Validate checks the options. Errors carry the validation category. The
// dispatcher is only compared to nil: it is shared with other goroutines and
// must not be read through reflection.
func (o Options) Validate() error {
	errs := validation.Errors{
		"change_on_set": validation.Validate(o.ChangeOnSet, validation.In(toAny(ChangeModes)...)),
	}
	if o.ChangeOnSet == ChangeDeferred && o.Dispatcher == nil {
		errs["dispatcher"] = validation.NewError("editor.options.dispatcher_required", "dispatcher is required for deferred change mode")
	}
	if err := errs.Filter(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid editor options").
			WithTextCode(optionsValidationCode)
	}
	return nil
}

func toAny(modes []ChangeMode) []any {
	out := make([]any, len(modes))
	for i, mode := range modes {
		out[i] = mode
	}
	return out
}
