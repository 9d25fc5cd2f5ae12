package converter

import (
	"fmt"
	"strings"
)

// HardBreakStyle controls how hard line breaks are rendered.
type HardBreakStyle string

const (
	HardBreakBackslash HardBreakStyle = "backslash"
	HardBreakHTML      HardBreakStyle = "html"
)

// OrderedListStyle controls ordered list numbering.
type OrderedListStyle string

const (
	OrderedIncremental OrderedListStyle = "incremental"
	OrderedLazy        OrderedListStyle = "lazy"
)

// EscapeMode controls escaping of markdown-significant characters in text.
type EscapeMode string

const (
	EscapeMinimal EscapeMode = "minimal"
	EscapeNone    EscapeMode = "none"
)

// UnknownPolicy controls behavior for unrecognized nodes and marks.
type UnknownPolicy string

const (
	UnknownError       UnknownPolicy = "error"
	UnknownSkip        UnknownPolicy = "skip"
	UnknownPlaceholder UnknownPolicy = "placeholder"
)

// Config holds all converter configuration options.
type Config struct {
	EmphasisMarker   rune              `json:"emphasisMarker,omitempty"`
	BulletMarker     rune              `json:"bulletMarker,omitempty"`
	HardBreakStyle   HardBreakStyle    `json:"hardBreakStyle,omitempty"`
	OrderedListStyle OrderedListStyle  `json:"orderedListStyle,omitempty"`
	Escape           EscapeMode        `json:"escape,omitempty"`
	HeadingOffset    int               `json:"headingOffset,omitempty"`
	LanguageMap      map[string]string `json:"languageMap,omitempty"`
	UnknownNodes     UnknownPolicy     `json:"unknownNodes,omitempty"`
	UnknownMarks     UnknownPolicy     `json:"unknownMarks,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.EmphasisMarker == 0 {
		c.EmphasisMarker = '_'
	}
	if c.BulletMarker == 0 {
		c.BulletMarker = '-'
	}
	if c.HardBreakStyle == "" {
		c.HardBreakStyle = HardBreakBackslash
	}
	if c.OrderedListStyle == "" {
		c.OrderedListStyle = OrderedIncremental
	}
	if c.Escape == "" {
		c.Escape = EscapeMinimal
	}
	if c.UnknownNodes == "" {
		c.UnknownNodes = UnknownPlaceholder
	}
	if c.UnknownMarks == "" {
		c.UnknownMarks = UnknownSkip
	}
	return c
}

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.EmphasisMarker != '_' && c.EmphasisMarker != '*' {
		return fmt.Errorf("invalid emphasisMarker %q: must be one of _, *", c.EmphasisMarker)
	}
	if c.BulletMarker != '-' && c.BulletMarker != '*' && c.BulletMarker != '+' {
		return fmt.Errorf("invalid bulletMarker %q: must be one of -, *, +", c.BulletMarker)
	}
	if c.HardBreakStyle != HardBreakBackslash && c.HardBreakStyle != HardBreakHTML {
		return fmt.Errorf("invalid hardBreakStyle %q", c.HardBreakStyle)
	}
	if c.OrderedListStyle != OrderedIncremental && c.OrderedListStyle != OrderedLazy {
		return fmt.Errorf("invalid orderedListStyle %q", c.OrderedListStyle)
	}
	if c.Escape != EscapeMinimal && c.Escape != EscapeNone {
		return fmt.Errorf("invalid escape %q", c.Escape)
	}
	if c.HeadingOffset < 0 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between 0 and 5, got %d", c.HeadingOffset)
	}
	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap keys and values must be non-empty")
		}
	}
	if c.UnknownNodes != UnknownError && c.UnknownNodes != UnknownSkip && c.UnknownNodes != UnknownPlaceholder {
		return fmt.Errorf("invalid unknownNodes policy %q", c.UnknownNodes)
	}
	if c.UnknownMarks != UnknownError && c.UnknownMarks != UnknownSkip && c.UnknownMarks != UnknownPlaceholder {
		return fmt.Errorf("invalid unknownMarks policy %q", c.UnknownMarks)
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
