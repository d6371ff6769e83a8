package html

import (
	"io"
	"sort"
	"strings"
	"testing"

	xhtml "golang.org/x/net/html"

	"pkt.systems/htree/dom"
)

// elementEvents flattens a tree into start/end events with sorted attributes.
func elementEvents(root *dom.Node) []string {
	var events []string
	var visit func(n *dom.Node)
	visit = func(n *dom.Node) {
		if !n.IsElement() {
			return
		}
		var b strings.Builder
		b.WriteString("+" + n.TagName())
		for _, name := range n.Element.Attributes.SortedNames() {
			b.WriteString(" " + name + "=" + n.Element.Attributes[name])
		}
		events = append(events, b.String())
		for _, c := range n.Children {
			visit(c)
		}
		events = append(events, "-"+n.TagName())
	}
	visit(root)
	return events
}

// tokenizerEvents runs x/net/html's tokenizer over the same input.
func tokenizerEvents(t *testing.T, input string) []string {
	t.Helper()
	var events []string
	z := xhtml.NewTokenizer(strings.NewReader(input))
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			if z.Err() != io.EOF {
				t.Fatalf("tokenizer: %v", z.Err())
			}
			return events
		case xhtml.StartTagToken:
			tok := z.Token()
			attrs := make([]string, 0, len(tok.Attr))
			seen := map[string]int{}
			for _, a := range tok.Attr {
				if i, ok := seen[a.Key]; ok {
					attrs[i] = a.Key + "=" + a.Val
					continue
				}
				seen[a.Key] = len(attrs)
				attrs = append(attrs, a.Key+"="+a.Val)
			}
			sort.Strings(attrs)
			ev := "+" + tok.Data
			for _, a := range attrs {
				ev += " " + a
			}
			events = append(events, ev)
		case xhtml.EndTagToken:
			events = append(events, "-"+z.Token().Data)
		}
	}
}

func TestElementsMatchReferenceTokenizer(t *testing.T) {
	inputs := []string{
		`<div><p>hi</p></div>`,
		`<a k1="v1" k2='v2'></a>`,
		`<section id="s" class="x y"><h1>Title</h1><p>one <em>two</em> three</p></section>`,
		"<ul>\n  <li data=\"1\">a</li>\n  <li data='2'>b</li>\n</ul>",
		`<div title='say "hi"' lang="en"><span>x</span><span>y</span></div>`,
	}
	for _, input := range inputs {
		root := mustParse(t, input)
		got := elementEvents(root)
		want := tokenizerEvents(t, input)
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Fatalf("event mismatch for %q\nwant: %v\n got: %v", input, want, got)
		}
	}
}
