package mdconverter

import (
	"encoding/json"
	"fmt"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/rich"
)

// Result holds the output of a reverse conversion.
type Result struct {
	Doc      rich.Doc            `json:"doc"`
	Warnings []converter.Warning `json:"warnings,omitempty"`
}

// JSON returns the document encoded as rich JSON.
func (r Result) JSON() ([]byte, error) {
	out, err := json.Marshal(r.Doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rich JSON: %w", err)
	}
	return out, nil
}
