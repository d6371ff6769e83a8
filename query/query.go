// Package query runs XPath expressions against dom trees.
//
// A Document mirrors a dom tree into github.com/antchfx/xmlquery nodes once
// and keeps a map back to the source nodes, so query results are the
// *dom.Node values of the parsed tree rather than copies.
package query

import (
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"pkt.systems/htree/dom"
)

// ErrInvalidExpr reports an XPath expression that does not compile.
var ErrInvalidExpr = errors.New("invalid xpath expression")

// Document is an XPath view over a dom tree. It is read-only and safe for
// concurrent queries as long as the tree is not modified.
type Document struct {
	root  *xmlquery.Node
	nodes map[*xmlquery.Node]*dom.Node
}

// NewDocument mirrors root into an XPath document. The dom root becomes the
// document element, so "/html" selects a synthetic html root and "//p"
// selects every p element.
func NewDocument(root *dom.Node) *Document {
	d := &Document{
		root:  &xmlquery.Node{Type: xmlquery.DocumentNode},
		nodes: make(map[*xmlquery.Node]*dom.Node),
	}
	if root != nil {
		d.mirror(d.root, root)
	}
	return d
}

func (d *Document) mirror(parent *xmlquery.Node, n *dom.Node) {
	var x *xmlquery.Node
	switch n.Type {
	case dom.TextNode:
		x = &xmlquery.Node{Type: xmlquery.TextNode, Data: n.Text}
	case dom.ElementNode:
		x = &xmlquery.Node{Type: xmlquery.ElementNode, Data: n.TagName()}
		for _, name := range n.Element.Attributes.SortedNames() {
			xmlquery.AddAttr(x, name, n.Element.Attributes[name])
		}
	default:
		return
	}
	xmlquery.AddChild(parent, x)
	d.nodes[x] = n
	for _, child := range n.Children {
		d.mirror(x, child)
	}
}

func compile(expr string) (*xpath.Expr, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExpr, expr, err)
	}
	return compiled, nil
}

// QueryAll returns the tree nodes selected by expr in document order.
// Selected attribute nodes resolve to their owning element.
func (d *Document) QueryAll(expr string) ([]*dom.Node, error) {
	compiled, err := compile(expr)
	if err != nil {
		return nil, err
	}
	return d.resolve(xmlquery.QuerySelectorAll(d.root, compiled)), nil
}

// Query returns the first node selected by expr, or nil.
func (d *Document) Query(expr string) (*dom.Node, error) {
	compiled, err := compile(expr)
	if err != nil {
		return nil, err
	}
	x := xmlquery.QuerySelector(d.root, compiled)
	if x == nil {
		return nil, nil
	}
	nodes := d.resolve([]*xmlquery.Node{x})
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

// Evaluate evaluates expr and returns a float64, string or bool for scalar
// expressions such as count(//p), and []*dom.Node for node sets.
func (d *Document) Evaluate(expr string) (any, error) {
	compiled, err := compile(expr)
	if err != nil {
		return nil, err
	}
	switch v := compiled.Evaluate(xmlquery.CreateXPathNavigator(d.root)).(type) {
	case *xpath.NodeIterator:
		var selected []*xmlquery.Node
		for v.MoveNext() {
			nav, ok := v.Current().(*xmlquery.NodeNavigator)
			if !ok {
				continue
			}
			selected = append(selected, nav.Current())
		}
		return d.resolve(selected), nil
	default:
		return v, nil
	}
}

func (d *Document) resolve(selected []*xmlquery.Node) []*dom.Node {
	out := make([]*dom.Node, 0, len(selected))
	seen := make(map[*dom.Node]struct{}, len(selected))
	for _, x := range selected {
		if x.Type == xmlquery.AttributeNode {
			x = x.Parent
		}
		n, ok := d.nodes[x]
		if !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Select is a shorthand for NewDocument(root).QueryAll(expr).
func Select(root *dom.Node, expr string) ([]*dom.Node, error) {
	return NewDocument(root).QueryAll(expr)
}
