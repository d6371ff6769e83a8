package htree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"pkt.systems/htree/dom"
	"pkt.systems/htree/html"
)

func TestRenderTreeGuides(t *testing.T) {
	got := renderMarkupWithTheme(t, `<div class="b a" id="x"><p>hi</p><ul><li>one</li><li>two</li></ul><br></br></div>`, 0, BoringTheme())
	want := lines(
		`<div class="b a" id="x">`,
		`├── <p>`,
		`│   └── "hi"`,
		`├── <ul>`,
		`│   ├── <li>`,
		`│   │   └── "one"`,
		`│   └── <li>`,
		`│       └── "two"`,
		`└── <br>`,
	)
	if got != want {
		t.Fatalf("unexpected tree:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderTreeWithoutGuides(t *testing.T) {
	got := renderMarkupWithTheme(t, `<a><b>x</b><c></c></a>`, 0, BoringTheme(), WithGuides(false))
	want := lines(
		`<a>`,
		`  <b>`,
		`    "x"`,
		`  <c>`,
	)
	if got != want {
		t.Fatalf("unexpected tree:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderTextRoot(t *testing.T) {
	got := renderMarkupWithTheme(t, "tab\there \"q\"", 0, BoringTheme())
	if got != lines(`"tab\there \"q\""`) {
		t.Fatalf("unexpected text root: %q", got)
	}
}

func TestRenderSyntheticRoot(t *testing.T) {
	got := renderMarkupWithTheme(t, `<a></a><b></b>`, 0, BoringTheme())
	if got != lines(`<html>`, `├── <a>`, `└── <b>`) {
		t.Fatalf("unexpected synthetic root: %q", got)
	}
}

func TestRenderThemedMatchesPlain(t *testing.T) {
	src := `<section id="s"><h1 class="t">Title</h1><p>body</p></section>`
	themed := renderMarkup(t, src, 0)
	if !strings.Contains(themed, "\x1b[") {
		t.Fatalf("expected ANSI styling in %q", themed)
	}
	plain := renderMarkupWithTheme(t, src, 0, BoringTheme())
	if stripANSI(themed) != plain {
		t.Fatalf("themed output differs after stripping:\n%q\n%q", stripANSI(themed), plain)
	}
}

func TestRenderWidthTruncatesText(t *testing.T) {
	src := `<div><p>` + strings.Repeat("word ", 30) + `</p></div>`
	for _, width := range []int{20, 40, 60} {
		out := stripANSI(renderMarkup(t, src, width))
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			if w := ansi.PrintableRuneWidth(line); w > width {
				t.Fatalf("width %d: line %q is %d cells", width, line, w)
			}
		}
		if !strings.Contains(out, "…") {
			t.Fatalf("width %d: expected an ellipsis in %q", width, out)
		}
	}
	// Text that fits is never shortened.
	out := renderMarkupWithTheme(t, `<p>short</p>`, 14, BoringTheme())
	if out != lines(`<p>`, `└── "short"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderAttributeQuoting(t *testing.T) {
	got := renderMarkupWithTheme(t, `<p title='say "hi"' lang="en"></p>`, 0, BoringTheme())
	if got != lines(`<p lang="en" title='say "hi"'>`) {
		t.Fatalf("unexpected attribute rendering %q", got)
	}
}

func TestRenderOSC8(t *testing.T) {
	src := `<a href="https://example.com" title="t">x</a>`
	osc := renderMarkup(t, src, 0, WithOSC8(true))
	if !strings.Contains(osc, "\x1b]8;;https://example.com\x1b\\") {
		t.Fatalf("missing OSC 8 start sequence in %q", osc)
	}
	if !strings.Contains(osc, "\x1b]8;;\x1b\\") {
		t.Fatalf("missing OSC 8 end sequence in %q", osc)
	}
	if strings.Count(osc, "\x1b]8;;\x1b\\") != 1 {
		t.Fatalf("only href should be linked: %q", osc)
	}
	plain := renderMarkup(t, src, 0)
	if strings.Contains(plain, "\x1b]8;;") {
		t.Fatalf("unexpected OSC 8 sequence without option: %q", plain)
	}
	if stripANSI(osc) != stripANSI(plain) {
		t.Fatalf("OSC 8 changed visible text")
	}
}

func TestRenderParseOptions(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  strings.NewReader(`<a><b><c></c></b></a>`),
		Writer:  &out,
		Options: []RenderOption{WithParseOptions(html.WithMaxDepth(2))},
	})
	var syntaxErr *html.SyntaxError
	if !errors.As(err, &syntaxErr) || syntaxErr.Kind != html.NestingTooDeep {
		t.Fatalf("expected nesting error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "render: ") {
		t.Fatalf("expected render prefix, got %q", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on parse failure, got %q", out.String())
	}
}

func TestRenderRejectsBinary(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{Reader: strings.NewReader("<p>\x00</p>"), Writer: &out})
	if !errors.Is(err, html.ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestRenderRequestValidation(t *testing.T) {
	if err := Render(RenderRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for nil reader")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatal("expected error for nil writer")
	}
	if err := RenderTree(TreeRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for nil root")
	}
	if err := RenderTree(TreeRequest{Root: &dom.Node{}, Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for invalid node")
	}
}

func TestRenderTreeBuiltByHand(t *testing.T) {
	root := dom.Elem("ul", dom.AttrMap{"class": "list"}, []*dom.Node{
		dom.Elem("li", nil, []*dom.Node{dom.Text("one")}),
	})
	var out bytes.Buffer
	if err := RenderTree(TreeRequest{Root: root, Writer: &out, Theme: BoringTheme()}); err != nil {
		t.Fatalf("render tree: %v", err)
	}
	want := lines(`<ul class="list">`, `└── <li>`, `    └── "one"`)
	if out.String() != want {
		t.Fatalf("unexpected tree %q", out.String())
	}
}

func TestRenderDeepTree(t *testing.T) {
	const depth = 2000
	root := dom.Text("leaf")
	for i := 0; i < depth; i++ {
		root = dom.Elem("d", nil, []*dom.Node{root})
	}
	var out bytes.Buffer
	err := RenderTree(TreeRequest{Root: root, Writer: &out, Theme: BoringTheme(), Options: []RenderOption{WithGuides(false)}})
	if err != nil {
		t.Fatalf("render tree: %v", err)
	}
	got := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(got) != depth+1 {
		t.Fatalf("expected %d lines, got %d", depth+1, len(got))
	}
	if got[depth] != strings.Repeat("  ", depth)+`"leaf"` {
		t.Fatalf("unexpected leaf line %q", got[depth][len(got[depth])-10:])
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, "…"},
		{"grüße welt", 6, "grüße…"},
	}
	for _, tt := range tests {
		if got := truncateWithEllipsis(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
