package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rgonek/md-wysiwyg/rich"
)

func sampleDoc() rich.Doc {
	return rich.NewDoc(
		rich.Heading(1, rich.Text("Title")),
		rich.Paragraph(rich.Text("Some "), rich.Text("bold", rich.Mark{Type: rich.MarkStrong}), rich.Text(" text.")),
	)
}

func TestIsActive(t *testing.T) {
	doc := sampleDoc()
	onBold := rich.Selection{Block: 1, From: 5, To: 9}
	onTitle := rich.Selection{Block: 0, From: 0, To: 5}

	tests := []struct {
		name  string
		sel   rich.Selection
		attrs map[string]any
		want  bool
	}{
		{name: rich.MarkStrong, sel: onBold, want: true},
		{name: rich.MarkEm, sel: onBold, want: false},
		{name: rich.NodeHeading, sel: onTitle, attrs: map[string]any{"level": 1}, want: true},
		{name: rich.NodeHeading, sel: onTitle, attrs: map[string]any{"level": 2}, want: false},
		{name: rich.NodeBlockquote, sel: onBold, want: false},
		{name: rich.NodeCodeBlock, sel: onBold, want: false},
		{name: "table", sel: onBold, want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsActive(doc, tt.sel, tt.name, tt.attrs), "%s %v", tt.name, tt.attrs)
	}
}

func TestEdits(t *testing.T) {
	sel := rich.Selection{Block: 1, From: 5, To: 9}

	t.Run("mark", func(t *testing.T) {
		doc := sampleDoc()
		_, changed := MarkEdit(rich.MarkEm, nil)(&doc, sel)
		assert.True(t, changed)
		assert.True(t, IsActive(doc, sel, rich.MarkEm, nil))
	})

	t.Run("mark needs a range", func(t *testing.T) {
		doc := sampleDoc()
		_, changed := MarkEdit(rich.MarkEm, nil)(&doc, rich.Selection{Block: 1, From: 2, To: 2})
		assert.False(t, changed)
	})

	t.Run("unknown mark", func(t *testing.T) {
		doc := sampleDoc()
		_, changed := MarkEdit("underline", nil)(&doc, sel)
		assert.False(t, changed)
	})

	t.Run("heading level bounds", func(t *testing.T) {
		doc := sampleDoc()
		_, changed := HeadingEdit(7)(&doc, sel)
		assert.False(t, changed)
		_, changed = HeadingEdit(2)(&doc, sel)
		assert.True(t, changed)
		assert.True(t, IsActive(doc, sel, rich.NodeHeading, map[string]any{"level": 2}))
	})

	t.Run("blocks", func(t *testing.T) {
		for _, blockType := range []string{rich.NodeBlockquote, rich.NodeBulletList, rich.NodeOrderedList, rich.NodeTaskList, rich.NodeCodeBlock} {
			doc := sampleDoc()
			_, changed := BlockEdit(blockType)(&doc, sel)
			assert.True(t, changed, blockType)
			assert.True(t, IsActive(doc, sel, blockType, nil), blockType)
		}

		doc := sampleDoc()
		_, changed := BlockEdit("table")(&doc, sel)
		assert.False(t, changed)
	})

	t.Run("text", func(t *testing.T) {
		doc := sampleDoc()
		next, changed := TextEdit("!")(&doc, rich.Selection{Block: 0, From: 5, To: 5})
		assert.True(t, changed)
		assert.Equal(t, rich.Selection{Block: 0, From: 6, To: 6}, next)
		assert.Equal(t, "Title!", doc.Content[0].PlainText())
	})
}
