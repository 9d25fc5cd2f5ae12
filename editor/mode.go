package editor

import (
	"fmt"
	"strings"
)

// ChangeMode describes whether the wrapped library fires its change event when
// content is replaced programmatically.
type ChangeMode string

const (
	// ChangeNone never reports programmatic replacement.
	ChangeNone ChangeMode = "none"
	// ChangeSync reports it before SetMarkdown returns.
	ChangeSync ChangeMode = "sync"
	// ChangeDeferred reports it on a later turn of the dispatcher.
	ChangeDeferred ChangeMode = "deferred"
)

// ChangeModes lists the valid modes.
var ChangeModes = []ChangeMode{ChangeNone, ChangeSync, ChangeDeferred}

// ParseChangeMode parses a configuration value. Empty means the variant default.
func ParseChangeMode(value string) (ChangeMode, error) {
	mode := ChangeMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "", ChangeNone, ChangeSync, ChangeDeferred:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid change mode: %q", value)
	}
}
