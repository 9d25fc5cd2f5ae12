package tree

import (
	"github.com/cozy/prosemirror-go/model"

	"github.com/rgonek/md-wysiwyg/rich"
)

var (
	noMarks = ""
	falsy   = false

	headingAttrs = map[string]*model.AttributeSpec{
		"level": {Default: 1},
	}
	codeBlockAttrs = map[string]*model.AttributeSpec{
		"language": {Default: ""},
	}
	orderedListAttrs = map[string]*model.AttributeSpec{
		"order": {Default: 1},
	}
	taskItemAttrs = map[string]*model.AttributeSpec{
		"state": {Default: rich.TaskTodo},
	}
	htmlAttrs = map[string]*model.AttributeSpec{
		"html": {Default: ""},
	}
	imageAttrs = map[string]*model.AttributeSpec{
		"src":   {},
		"alt":   {Default: nil},
		"title": {Default: nil},
	}
	linkAttrs = map[string]*model.AttributeSpec{
		"href":  {},
		"title": {Default: nil},
	}
)

var schemaNodes = []*model.NodeSpec{
	{Key: rich.NodeDoc, Content: "block*"},
	{Key: rich.NodeParagraph, Content: "inline*", Group: "block"},
	{Key: rich.NodeBlockquote, Content: "block+", Group: "block"},
	{Key: rich.NodeRule, Group: "block"},
	{Key: rich.NodeHeading, Content: "inline*", Group: "block", Attrs: headingAttrs},
	{Key: rich.NodeCodeBlock, Content: "text*", Marks: &noMarks, Group: "block", Attrs: codeBlockAttrs},
	{Key: rich.NodeBulletList, Content: "listItem+", Group: "block"},
	{Key: rich.NodeOrderedList, Content: "listItem+", Group: "block", Attrs: orderedListAttrs},
	{Key: rich.NodeListItem, Content: "block+"},
	{Key: rich.NodeTaskList, Content: "(taskItem | taskList | bulletList | orderedList)+", Group: "block"},
	{Key: rich.NodeTaskItem, Content: "inline*", Attrs: taskItemAttrs},
	{Key: rich.NodeHTMLBlock, Group: "block", Attrs: htmlAttrs},
	{Key: rich.NodeText, Group: "inline"},
	{Key: rich.NodeImage, Group: "inline", Attrs: imageAttrs},
	{Key: rich.NodeHardBreak, Group: "inline"},
	{Key: rich.NodeHTMLInline, Group: "inline", Attrs: htmlAttrs},
}

var schemaMarks = []*model.MarkSpec{
	{Key: rich.MarkLink, Attrs: linkAttrs, Inclusive: &falsy},
	{Key: rich.MarkStrong},
	{Key: rich.MarkEm},
	{Key: rich.MarkStrike},
	{Key: rich.MarkCode},
}

// NewSchema builds the ProseMirror schema documents are validated against.
func NewSchema() (*model.Schema, error) {
	return model.NewSchema(&model.SchemaSpec{
		Nodes: schemaNodes,
		Marks: schemaMarks,
	})
}

// Validate checks doc against schema.
func Validate(schema *model.Schema, doc rich.Doc) error {
	node, err := model.NodeFromJSON(schema, docJSON(doc))
	if err != nil {
		return err
	}
	return node.Check()
}

func docJSON(doc rich.Doc) map[string]interface{} {
	raw := map[string]interface{}{"type": rich.NodeDoc}
	if len(doc.Content) > 0 {
		raw["content"] = nodesJSON(doc.Content)
	}
	return raw
}

func nodesJSON(nodes []rich.Node) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, node := range nodes {
		out[i] = nodeJSON(node)
	}
	return out
}

func nodeJSON(node rich.Node) map[string]interface{} {
	raw := map[string]interface{}{"type": node.Type}
	if node.Type == rich.NodeText {
		raw["text"] = node.Text
	}
	if len(node.Attrs) > 0 {
		attrs := make(map[string]interface{}, len(node.Attrs))
		for k, v := range node.Attrs {
			attrs[k] = v
		}
		raw["attrs"] = attrs
	}
	if len(node.Content) > 0 {
		raw["content"] = nodesJSON(node.Content)
	}
	if len(node.Marks) > 0 {
		marks := make([]interface{}, len(node.Marks))
		for i, mark := range node.Marks {
			m := map[string]interface{}{"type": mark.Type}
			if len(mark.Attrs) > 0 {
				attrs := make(map[string]interface{}, len(mark.Attrs))
				for k, v := range mark.Attrs {
					attrs[k] = v
				}
				m["attrs"] = attrs
			}
			marks[i] = m
		}
		raw["marks"] = marks
	}
	return raw
}
