// Package dom defines the markup tree produced by the html parser.
//
// A tree is made of *Node values. Each node is either a text leaf (TextNode)
// or an element (ElementNode) carrying a tag name, an attribute map and an
// ordered list of children. Trees are built bottom-up with Text and Elem and
// are not mutated afterwards.
//
// Example:
//
//	root := dom.Elem("div", dom.AttrMap{"class": "note wide"}, []*dom.Node{
//		dom.Text("hello"),
//	})
//	_, wide := root.Element.Classes()["wide"]
//	fmt.Println(root.Markup(), wide) // <div class="note wide">hello</div> true
package dom
