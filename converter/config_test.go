package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := (Config{}).applyDefaults()

	assert.Equal(t, '_', cfg.EmphasisMarker)
	assert.Equal(t, '-', cfg.BulletMarker)
	assert.Equal(t, HardBreakBackslash, cfg.HardBreakStyle)
	assert.Equal(t, OrderedIncremental, cfg.OrderedListStyle)
	assert.Equal(t, EscapeMinimal, cfg.Escape)
	assert.Equal(t, UnknownPlaceholder, cfg.UnknownNodes)
	assert.Equal(t, UnknownSkip, cfg.UnknownMarks)
}

func TestValidateValid(t *testing.T) {
	cfg := Config{
		EmphasisMarker:   '*',
		BulletMarker:     '+',
		HardBreakStyle:   HardBreakHTML,
		OrderedListStyle: OrderedLazy,
		Escape:           EscapeNone,
		HeadingOffset:    2,
		LanguageMap: map[string]string{
			"c++": "cpp",
		},
		UnknownNodes: UnknownSkip,
		UnknownMarks: UnknownError,
	}

	require.NoError(t, cfg.Validate())
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "emphasis marker", mutate: func(c *Config) { c.EmphasisMarker = '~' }, wantErr: "emphasisMarker"},
		{name: "bullet marker", mutate: func(c *Config) { c.BulletMarker = '#' }, wantErr: "bulletMarker"},
		{name: "hard break", mutate: func(c *Config) { c.HardBreakStyle = "spaces" }, wantErr: "hardBreakStyle"},
		{name: "ordered list", mutate: func(c *Config) { c.OrderedListStyle = "roman" }, wantErr: "orderedListStyle"},
		{name: "escape", mutate: func(c *Config) { c.Escape = "all" }, wantErr: "escape"},
		{name: "heading offset", mutate: func(c *Config) { c.HeadingOffset = 6 }, wantErr: "headingOffset"},
		{name: "language map", mutate: func(c *Config) { c.LanguageMap = map[string]string{"go": " "} }, wantErr: "languageMap"},
		{name: "unknown nodes", mutate: func(c *Config) { c.UnknownNodes = "ignore" }, wantErr: "unknownNodes"},
		{name: "unknown marks", mutate: func(c *Config) { c.UnknownMarks = "ignore" }, wantErr: "unknownMarks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := (Config{}).applyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{BulletMarker: 'x'})
	require.Error(t, err)
}

func TestConfigCloneIsIndependent(t *testing.T) {
	conv := newTestConverter(t, Config{LanguageMap: map[string]string{"golang": "go"}})

	cfg := conv.Config()
	cfg.LanguageMap["golang"] = "changed"

	assert.Equal(t, "go", conv.Config().LanguageMap["golang"])
}
