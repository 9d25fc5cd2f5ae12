package mdconverter

import (
	"fmt"
	"strings"
)

// HTMLBlockPolicy controls what happens to raw HTML blocks.
type HTMLBlockPolicy string

const (
	HTMLBlocksKeep HTMLBlockPolicy = "keep"
	HTMLBlocksDrop HTMLBlockPolicy = "drop"
)

// TablePolicy controls how GFM tables are represented. Tables have no rich
// node of their own.
type TablePolicy string

const (
	// TablesRaw keeps the table source verbatim in an htmlBlock node.
	TablesRaw TablePolicy = "raw"
	// TablesText flattens every row into a paragraph of cells.
	TablesText TablePolicy = "text"
)

// ReverseConfig configures markdown to rich conversion behavior.
type ReverseConfig struct {
	HTMLBlocks    HTMLBlockPolicy   `json:"htmlBlocks,omitempty"`
	Tables        TablePolicy       `json:"tables,omitempty"`
	HeadingOffset int               `json:"headingOffset,omitempty"`
	LanguageMap   map[string]string `json:"languageMap,omitempty"`
}

func (c ReverseConfig) applyDefaults() ReverseConfig {
	if c.HTMLBlocks == "" {
		c.HTMLBlocks = HTMLBlocksKeep
	}
	if c.Tables == "" {
		c.Tables = TablesRaw
	}
	return c
}

func (c ReverseConfig) clone() ReverseConfig {
	cloned := c
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	return cloned
}

// Validate checks that config values are valid.
func (c ReverseConfig) Validate() error {
	if c.HTMLBlocks != HTMLBlocksKeep && c.HTMLBlocks != HTMLBlocksDrop {
		return fmt.Errorf("invalid htmlBlocks %q", c.HTMLBlocks)
	}

	if c.Tables != TablesRaw && c.Tables != TablesText {
		return fmt.Errorf("invalid tables %q", c.Tables)
	}

	if c.HeadingOffset < -5 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between -5 and 5, got %d", c.HeadingOffset)
	}

	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}

	return nil
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}
