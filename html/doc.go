// Package html parses markup into a dom tree.
//
// The parser is a single-pass recursive-descent scanner over an immutable
// string. It recognizes text runs and elements with quoted name="value"
// attributes, and requires every element to be closed by a matching </name>
// tag. There is no error recovery: the first structural violation aborts the
// parse with a *SyntaxError describing what was expected and where. A
// closing tag at the top level, where nothing is open, ends the document.
//
// Example:
//
//	root, err := html.Parse(`<div class="note"><p>hi</p></div>`)
//	if err != nil {
//		var syntaxErr *html.SyntaxError
//		if errors.As(err, &syntaxErr) {
//			log.Fatalf("%s at %s", syntaxErr.Kind, syntaxErr.Loc)
//		}
//		log.Fatal(err)
//	}
//	fmt.Println(root.Find("p").TextContent()) // hi
//
// Not supported: character entities, comments, DOCTYPE, raw-text elements
// such as <script>, namespaces, void or self-closing elements, and unquoted
// attribute values.
package html
