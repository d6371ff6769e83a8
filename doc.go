// Package htree parses a small, strict subset of HTML into a tree and renders
// that tree for the terminal.
//
// Parsing lives in the html package and the tree types in dom; this package
// turns a tree into an indented, theme-coloured dump with one line per node.
//
// Example:
//
//	err := htree.Render(htree.RenderRequest{
//		Reader: strings.NewReader(`<ul class="list"><li>one</li></ul>`),
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  htree.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// prints
//
//	<ul class="list">
//	└── <li>
//	    └── "one"
//
// Options such as WithGuides and WithOSC8 adjust the layout.
package htree
