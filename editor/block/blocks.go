package block

import (
	"github.com/google/uuid"

	"github.com/rgonek/md-wysiwyg/rich"
)

// Block is one entry of the block editor's document. Textblocks carry inline
// Content; containers (quotes, lists, list items) carry Children.
type Block struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Props    map[string]any `json:"props,omitempty"`
	Content  []rich.Node    `json:"content,omitempty"`
	Children []Block        `json:"children,omitempty"`
}

func newID() string {
	return uuid.NewString()
}

// FromDoc converts a rich document into blocks. Ids are taken from previous
// where a block at the same position has the same type, so ids survive edits
// that do not restructure the document.
func FromDoc(doc rich.Doc, previous []Block) []Block {
	return fromNodes(doc.Content, previous)
}

func fromNodes(nodes []rich.Node, previous []Block) []Block {
	if len(nodes) == 0 {
		return nil
	}
	blocks := make([]Block, len(nodes))
	for i, node := range nodes {
		var prev *Block
		if i < len(previous) && previous[i].Type == node.Type {
			prev = &previous[i]
		}
		blocks[i] = fromNode(node, prev)
	}
	return blocks
}

func fromNode(node rich.Node, prev *Block) Block {
	block := Block{Type: node.Type}
	if prev != nil {
		block.ID = prev.ID
	} else {
		block.ID = newID()
	}
	if len(node.Attrs) > 0 {
		block.Props = node.Clone().Attrs
	}

	if node.IsTextblock() {
		block.Content = node.Clone().Content
		return block
	}
	var prevChildren []Block
	if prev != nil {
		prevChildren = prev.Children
	}
	block.Children = fromNodes(node.Content, prevChildren)
	return block
}

// ToDoc converts blocks back into a rich document.
func ToDoc(blocks []Block) rich.Doc {
	return rich.NewDoc(toNodes(blocks)...)
}

func toNodes(blocks []Block) []rich.Node {
	if len(blocks) == 0 {
		return nil
	}
	nodes := make([]rich.Node, len(blocks))
	for i, block := range blocks {
		nodes[i] = toNode(block)
	}
	return nodes
}

func toNode(block Block) rich.Node {
	node := rich.Node{Type: block.Type}
	if len(block.Props) > 0 {
		props := make(map[string]any, len(block.Props))
		for k, v := range block.Props {
			props[k] = v
		}
		node.Attrs = props
	}
	if len(block.Content) > 0 {
		node.Content = rich.NewDoc(block.Content...).Clone().Content
		return node
	}
	node.Content = toNodes(block.Children)
	return node
}

// Find returns the block with id, searching children depth first.
func Find(blocks []Block, id string) (Block, bool) {
	for _, block := range blocks {
		if block.ID == id {
			return block, true
		}
		if found, ok := Find(block.Children, id); ok {
			return found, true
		}
	}
	return Block{}, false
}
