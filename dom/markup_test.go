package dom

import (
	"bytes"
	"errors"
	"testing"
)

func TestMarkup(t *testing.T) {
	root := Elem("div", AttrMap{"id": "x", "class": "a b", "title": `say "hi"`}, []*Node{
		Text("hello "),
		Elem("b", nil, []*Node{Text("world")}),
	})
	want := `<div class="a b" id="x" title='say "hi"'>hello <b>world</b></div>`
	if got := root.Markup(); got != want {
		t.Fatalf("Markup()\nwant: %s\n got: %s", want, got)
	}
	var buf bytes.Buffer
	if err := root.WriteMarkup(&buf); err != nil {
		t.Fatalf("WriteMarkup: %v", err)
	}
	if buf.String() != want {
		t.Fatalf("WriteMarkup\nwant: %s\n got: %s", want, buf.String())
	}
}

func TestMarkupUnquotableValue(t *testing.T) {
	root := Elem("a", AttrMap{"v": `"'`}, nil)
	var buf bytes.Buffer
	err := root.WriteMarkup(&buf)
	if !errors.Is(err, ErrUnquotableValue) {
		t.Fatalf("expected ErrUnquotableValue, got %v", err)
	}
	if got := root.Markup(); got != `<a v=""></a>` {
		t.Fatalf("lenient Markup() = %q", got)
	}
}

func TestQuoteValue(t *testing.T) {
	cases := map[string]byte{
		"plain":    '"',
		"it's":     '"',
		`say "hi"`: '\'',
	}
	for value, want := range cases {
		got, err := QuoteValue(value)
		if err != nil {
			t.Fatalf("QuoteValue(%q): %v", value, err)
		}
		if got != want {
			t.Fatalf("QuoteValue(%q) = %q want %q", value, got, want)
		}
	}
}

func TestMarkupWritesHandBuiltTreesVerbatim(t *testing.T) {
	root := Elem("p", nil, []*Node{
		Text(" lead"),
		Text("a<b"),
		Elem("my-tag", nil, nil),
	})
	want := `<p> leada<b<my-tag></my-tag></p>`
	if got := root.Markup(); got != want {
		t.Fatalf("Markup()\nwant: %s\n got: %s", want, got)
	}
}
