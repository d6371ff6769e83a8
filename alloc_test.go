package htree

import (
	"bytes"
	"os"
	"testing"

	"pkt.systems/htree/html"
)

func TestRenderTreeAllocations(t *testing.T) {
	src, err := os.ReadFile("testdata/list.html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	root, err := html.ParseBytes(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	theme := DefaultTheme()
	allocs := testing.AllocsPerRun(100, func() {
		out.Reset()
		_ = RenderTree(TreeRequest{
			Root:   root,
			Writer: &out,
			Width:  80,
			Theme:  theme,
		})
	})
	// Attribute name sorting and quoting allocate per element.
	if allocs > 100 {
		t.Fatalf("too many allocations per RenderTree: got %.2f", allocs)
	}
}
