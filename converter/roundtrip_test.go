package converter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgonek/md-wysiwyg/converter"
	"github.com/rgonek/md-wysiwyg/mdconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every file under testdata/roundtrip is already in the serializer's output
// form, so parsing and serializing it again must give the same bytes.
func TestRoundTripFiles(t *testing.T) {
	parser, err := mdconverter.New(mdconverter.ReverseConfig{})
	require.NoError(t, err)
	serializer, err := converter.New(converter.Config{})
	require.NoError(t, err)

	paths, err := filepath.Glob("../testdata/roundtrip/*.md")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			input, err := os.ReadFile(path)
			require.NoError(t, err)

			parsed, err := parser.Convert(string(input))
			require.NoError(t, err)

			result, err := serializer.Convert(parsed.Doc)
			require.NoError(t, err)
			assert.Equal(t, string(input), result.Markdown)
		})
	}
}

func TestRoundTripScenarioEdit(t *testing.T) {
	parser, err := mdconverter.New(mdconverter.ReverseConfig{})
	require.NoError(t, err)
	serializer, err := converter.New(converter.Config{})
	require.NoError(t, err)

	parsed, err := parser.Convert("# Title\n\nSome **bold** text.")
	require.NoError(t, err)

	doc := parsed.Doc
	bold := &doc.Content[1].Content[1]
	require.Equal(t, "bold", bold.Text)
	bold.Marks[0].Type = "em"

	result, err := serializer.Convert(doc)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nSome _bold_ text.", result.Markdown)
}
