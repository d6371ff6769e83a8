package dom

import (
	"encoding/json"
	"fmt"
)

type jsonNode struct {
	Text       *string `json:"text,omitempty"`
	Tag        string  `json:"tag,omitempty"`
	Attributes AttrMap `json:"attributes,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// MarshalJSON encodes text nodes as {"text": ...} and elements as
// {"tag": ..., "attributes": {...}, "children": [...]}.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case TextNode:
		text := n.Text
		return json.Marshal(jsonNode{Text: &text})
	case ElementNode:
		return json.Marshal(jsonNode{
			Tag:        n.TagName(),
			Attributes: n.Element.Attributes,
			Children:   n.Children,
		})
	default:
		return nil, fmt.Errorf("dom: cannot marshal %s", n.Type)
	}
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var v jsonNode
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v.Text != nil && v.Tag == "":
		*n = *Text(*v.Text)
	case v.Text == nil && v.Tag != "":
		*n = *Elem(v.Tag, v.Attributes, v.Children)
	default:
		return fmt.Errorf("dom: node must have exactly one of text or tag")
	}
	return nil
}
