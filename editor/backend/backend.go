// Package backend selects an adapter variant by configuration.
package backend

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/rgonek/md-wysiwyg/editor"
	"github.com/rgonek/md-wysiwyg/editor/block"
	"github.com/rgonek/md-wysiwyg/editor/tree"
)

// Kind names an adapter variant.
type Kind string

const (
	Tree  Kind = "tree"
	Block Kind = "block"
)

// Kinds lists the supported variants.
var Kinds = []Kind{Tree, Block}

const unknownKindCode = "EDITOR_BACKEND_UNKNOWN"

// ParseKind parses a configuration value. Empty selects Tree.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case "":
		return Tree, nil
	case Tree, Block:
		return kind, nil
	default:
		return "", goerrors.Wrap(fmt.Errorf("unknown editor backend %q", value), goerrors.CategoryValidation, "invalid editor backend").
			WithTextCode(unknownKindCode)
	}
}

// New builds an uninitialized adapter of the given kind.
func New(kind Kind, opts editor.Options) (editor.Editor, error) {
	switch kind {
	case Tree, "":
		return tree.New(opts)
	case Block:
		return block.New(opts)
	default:
		_, err := ParseKind(string(kind))
		return nil, err
	}
}

// Factory returns a constructor bound to kind and opts, in the shape the
// bridge expects.
func Factory(kind Kind, opts editor.Options) func() (editor.Editor, error) {
	return func() (editor.Editor, error) {
		return New(kind, opts)
	}
}
