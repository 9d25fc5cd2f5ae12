package rich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioDoc() Doc {
	return NewDoc(
		Heading(1, Text("Title")),
		Paragraph(Text("Some "), Text("bold", strong), Text(" text.")),
	)
}

func TestTextblocksAndClamp(t *testing.T) {
	doc := NewDoc(
		Paragraph(Text("a")),
		Node{Type: NodeBulletList, Content: []Node{
			{Type: NodeListItem, Content: []Node{Paragraph(Text("b"))}},
		}},
	)

	assert.Equal(t, []Path{{0}, {1, 0, 0}}, Textblocks(doc))
	assert.Equal(t, Selection{Block: 1, From: 1, To: 1}, ClampSelection(doc, Selection{Block: 7, From: 4, To: 9}))
	assert.Equal(t, Selection{}, ClampSelection(NewDoc(), Selection{Block: 2, From: 1, To: 3}))
}

func TestToggleMarkScenario(t *testing.T) {
	doc := scenarioDoc()
	sel := Selection{Block: 1, From: 5, To: 9}

	require.True(t, ToggleMark(&doc, sel, strong))
	assert.False(t, MarkActive(doc, sel, MarkStrong))
	require.True(t, ToggleMark(&doc, sel, em))
	assert.True(t, MarkActive(doc, sel, MarkEm))

	assert.Equal(t, []Node{Text("Some "), Text("bold", em), Text(" text.")}, doc.Content[1].Content)
}

func TestToggleMarkRejectsCodeBlock(t *testing.T) {
	doc := NewDoc(Node{Type: NodeCodeBlock, Content: []Node{Text("x")}})
	assert.False(t, ToggleMark(&doc, Selection{From: 0, To: 1}, strong))
}

func TestToggleHeading(t *testing.T) {
	doc := scenarioDoc()

	require.True(t, ToggleHeading(&doc, Selection{Block: 1}, 2))
	assert.True(t, HeadingActive(doc, Selection{Block: 1}, 2))
	assert.False(t, HeadingActive(doc, Selection{Block: 1}, 1))

	require.True(t, ToggleHeading(&doc, Selection{Block: 0}, 1))
	assert.Equal(t, NodeParagraph, doc.Content[0].Type)
	assert.Nil(t, doc.Content[0].Attrs)

	assert.False(t, ToggleHeading(&doc, Selection{Block: 0}, 7))
}

func TestToggleCodeBlockFlattensMarks(t *testing.T) {
	doc := scenarioDoc()

	require.True(t, ToggleCodeBlock(&doc, Selection{Block: 1}))
	assert.Equal(t, Node{Type: NodeCodeBlock, Content: []Node{Text("Some bold text.")}}, doc.Content[1])

	require.True(t, ToggleCodeBlock(&doc, Selection{Block: 1}))
	assert.Equal(t, Paragraph(Text("Some bold text.")), doc.Content[1])
}

func TestToggleWrapBlockquote(t *testing.T) {
	doc := scenarioDoc()
	sel := Selection{Block: 1}

	require.True(t, ToggleWrap(&doc, sel, NodeBlockquote))
	assert.Equal(t, NodeBlockquote, doc.Content[1].Type)
	assert.True(t, WrapActive(doc, sel, NodeBlockquote))

	require.True(t, ToggleWrap(&doc, sel, NodeBlockquote))
	assert.Equal(t, scenarioDoc(), doc)
}

func TestToggleWrapLists(t *testing.T) {
	doc := NewDoc(Paragraph(Text("a")))
	sel := Selection{}

	require.True(t, ToggleWrap(&doc, sel, NodeBulletList))
	assert.True(t, WrapActive(doc, sel, NodeBulletList))

	require.True(t, ToggleWrap(&doc, sel, NodeOrderedList))
	assert.True(t, WrapActive(doc, sel, NodeOrderedList))
	assert.False(t, WrapActive(doc, sel, NodeBulletList))

	require.True(t, ToggleWrap(&doc, sel, NodeOrderedList))
	assert.Equal(t, NewDoc(Paragraph(Text("a"))), doc)
}

func TestToggleWrapTaskList(t *testing.T) {
	doc := NewDoc(Paragraph(Text("a")))
	sel := Selection{}

	require.True(t, ToggleWrap(&doc, sel, NodeTaskList))
	assert.True(t, WrapActive(doc, sel, NodeTaskList))
	assert.Equal(t, TaskTodo, doc.Content[0].Content[0].GetStringAttr("state", ""))

	require.True(t, ToggleTask(&doc, sel))
	assert.Equal(t, TaskDone, doc.Content[0].Content[0].GetStringAttr("state", ""))

	require.True(t, ToggleWrap(&doc, sel, NodeTaskList))
	assert.Equal(t, NewDoc(Paragraph(Text("a"))), doc)
}

func TestLiftMiddleOfOrderedListRenumbersTail(t *testing.T) {
	item := func(text string) Node {
		return Node{Type: NodeListItem, Content: []Node{Paragraph(Text(text))}}
	}
	doc := NewDoc(Node{
		Type:    NodeOrderedList,
		Attrs:   map[string]any{"order": 1},
		Content: []Node{item("a"), item("b"), item("c")},
	})

	require.True(t, ToggleWrap(&doc, Selection{Block: 1}, NodeOrderedList))
	require.Len(t, doc.Content, 3)
	assert.Equal(t, NodeOrderedList, doc.Content[0].Type)
	assert.Equal(t, Paragraph(Text("b")), doc.Content[1])
	assert.Equal(t, 3, doc.Content[2].GetIntAttr("order", 0))
}

func TestInsertText(t *testing.T) {
	doc := scenarioDoc()

	sel, ok := InsertText(&doc, Selection{Block: 1, From: 9, To: 9}, "er")
	require.True(t, ok)
	assert.Equal(t, Selection{Block: 1, From: 11, To: 11}, sel)
	assert.Equal(t, []Node{Text("Some "), Text("bolder", strong), Text(" text.")}, doc.Content[1].Content)
}

func TestInsertTextIntoEmptyDocument(t *testing.T) {
	doc := NewDoc()

	sel, ok := InsertText(&doc, Selection{}, "hello\nworld")
	require.True(t, ok)
	assert.Equal(t, Selection{From: 11, To: 11}, sel)
	assert.Equal(t, NewDoc(Paragraph(Text("hello"), Node{Type: NodeHardBreak}, Text("world"))), doc)
}

func TestInsertContent(t *testing.T) {
	doc := scenarioDoc()

	sel, ok := InsertContent(&doc, Selection{Block: 0, From: 5, To: 5}, []Node{Paragraph(Text("!"))})
	require.True(t, ok)
	assert.Equal(t, Selection{Block: 0, From: 6, To: 6}, sel)
	assert.Equal(t, "Title!", doc.Content[0].PlainText())

	sel, ok = InsertContent(&doc, Selection{Block: 0}, []Node{
		Paragraph(Text("x")),
		Paragraph(Text("yz")),
	})
	require.True(t, ok)
	require.Len(t, doc.Content, 4)
	assert.Equal(t, "x", doc.Content[1].PlainText())
	assert.Equal(t, Selection{Block: 2, From: 2, To: 2}, sel)
}
