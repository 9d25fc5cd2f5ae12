// Package logging defines the structured logger injected into every
// component. It mirrors github.com/goliatone/go-logger so that package can
// be plugged in without adapters beyond the gologger provider.
package logging

import (
	"context"
	"maps"
)

// Logger is the leveled logging contract. Messages are dotted event names
// followed by key/value pairs.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// Provider exposes named loggers.
type Provider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

const rootModule = "mdw"

// Module names used across the editor.
const (
	BridgeModule   = "mdw.bridge"
	DocumentModule = "mdw.document"
	EditorModule   = "mdw.editor"
	ToolbarModule  = "mdw.toolbar"
	SurfaceModule  = "mdw.surface"
	LoopModule     = "mdw.eventloop"
	CLIModule      = "mdw.cli"
)

// WithFields attaches fields when the logger supports it.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// ModuleLogger returns a module scoped logger, defaulting to NoOp when no
// provider is supplied.
func ModuleLogger(provider Provider, module string) Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// OrNoOp returns logger, or NoOp when logger is nil.
func OrNoOp(logger Logger) Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// NoOp returns a logger that discards everything.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
