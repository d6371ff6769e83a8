package dom

import "strings"

// NodeType identifies the variant held by a Node.
type NodeType uint8

const (
	invalidNode NodeType = iota
	// TextNode is a leaf carrying a raw character run.
	TextNode
	// ElementNode is a tagged element with attributes and children.
	ElementNode
)

func (t NodeType) String() string {
	switch t {
	case TextNode:
		return "TextNode"
	case ElementNode:
		return "ElementNode"
	default:
		return "InvalidNode"
	}
}

// AttrMap maps attribute names to values.
type AttrMap map[string]string

// ElementData holds the tag name and attributes of an element.
type ElementData struct {
	TagName    string
	Attributes AttrMap
}

// Node is a single entry in a markup tree. A Node is either a text leaf or an
// element; Type says which. Children are owned by their parent and kept in
// input order.
type Node struct {
	Children []*Node
	Type     NodeType

	// Text content. Only set for TextNode.
	Text string

	// Element data. Only set for ElementNode.
	Element *ElementData
}

// Text returns a childless text node.
func Text(content string) *Node {
	return &Node{Type: TextNode, Text: content}
}

// Elem returns an element node that takes ownership of children. Nothing is
// validated; a nil attrs is replaced with an empty map.
func Elem(tagName string, attrs AttrMap, children []*Node) *Node {
	if attrs == nil {
		attrs = AttrMap{}
	}
	return &Node{
		Children: children,
		Type:     ElementNode,
		Element: &ElementData{
			TagName:    tagName,
			Attributes: attrs,
		},
	}
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n != nil && n.Type == TextNode
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode && n.Element != nil
}

// TagName returns the element tag name, or "" for text nodes.
func (n *Node) TagName() string {
	if !n.IsElement() {
		return ""
	}
	return n.Element.TagName
}

// ID returns the value of the id attribute.
func (e *ElementData) ID() (string, bool) {
	if e == nil {
		return "", false
	}
	id, ok := e.Attributes["id"]
	return id, ok
}

// Classes returns the set of tokens in the class attribute, split on single
// ASCII spaces. Empty tokens produced by repeated spaces are dropped. The set
// is rebuilt on every call.
func (e *ElementData) Classes() map[string]struct{} {
	classes := make(map[string]struct{})
	if e == nil {
		return classes
	}
	list, ok := e.Attributes["class"]
	if !ok {
		return classes
	}
	for _, name := range strings.Split(list, " ") {
		if name == "" {
			continue
		}
		classes[name] = struct{}{}
	}
	return classes
}

// HasClass reports whether name is one of the element's classes.
func (e *ElementData) HasClass(name string) bool {
	_, ok := e.Classes()[name]
	return ok
}

// TextContent returns the concatenated content of all descendant text nodes
// in document order.
func (n *Node) TextContent() string {
	var b strings.Builder
	Walk(n, func(node *Node, _ int) bool {
		if node.Type == TextNode {
			b.WriteString(node.Text)
		}
		return true
	})
	return b.String()
}

// Equal reports whether n and other describe the same tree: same variants,
// text, tag names, attribute maps and children in the same order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Type != other.Type || len(n.Children) != len(other.Children) {
		return false
	}
	switch n.Type {
	case TextNode:
		if n.Text != other.Text {
			return false
		}
	case ElementNode:
		if n.Element == nil || other.Element == nil {
			return n.Element == other.Element
		}
		if n.Element.TagName != other.Element.TagName {
			return false
		}
		if len(n.Element.Attributes) != len(other.Element.Attributes) {
			return false
		}
		for k, v := range n.Element.Attributes {
			ov, ok := other.Element.Attributes[k]
			if !ok || ov != v {
				return false
			}
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
