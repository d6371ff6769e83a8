package dom

import (
	"strings"
	"testing"
)

func sampleTree() *Node {
	return Elem("html", nil, []*Node{
		Elem("head", nil, []*Node{
			Elem("title", nil, []*Node{Text("T")}),
		}),
		Elem("body", AttrMap{"class": "page"}, []*Node{
			Elem("p", AttrMap{"id": "first", "class": "note"}, []*Node{Text("one")}),
			Elem("p", AttrMap{"class": "note wide"}, []*Node{Text("two")}),
		}),
	})
}

func TestWalkPreOrderWithDepth(t *testing.T) {
	var got []string
	Walk(sampleTree(), func(n *Node, depth int) bool {
		label := n.TagName()
		if n.IsText() {
			label = "#" + n.Text
		}
		got = append(got, strings.Repeat(".", depth)+label)
		return true
	})
	want := []string{"html", ".head", "..title", "...#T", ".body", "..p", "...#one", "..p", "...#two"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("walk order\nwant: %v\n got: %v", want, got)
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	var visited []string
	Walk(sampleTree(), func(n *Node, _ int) bool {
		visited = append(visited, n.TagName())
		return n.TagName() != "head"
	})
	for _, tag := range visited {
		if tag == "title" {
			t.Fatalf("expected head subtree to be skipped: %v", visited)
		}
	}
}

func TestWalkDeepTree(t *testing.T) {
	root := Text("leaf")
	for i := 0; i < 100000; i++ {
		root = Elem("d", nil, []*Node{root})
	}
	count := 0
	Walk(root, func(*Node, int) bool {
		count++
		return true
	})
	if count != 100001 {
		t.Fatalf("visited %d nodes", count)
	}
}

func TestFindHelpers(t *testing.T) {
	root := sampleTree()
	if n := root.Find("title"); n == nil || n.TextContent() != "T" {
		t.Fatalf("Find(title) = %v", n)
	}
	if n := root.Find("table"); n != nil {
		t.Fatalf("expected nil for missing tag")
	}
	ps := root.FindAll("p")
	if len(ps) != 2 || ps[0].TextContent() != "one" || ps[1].TextContent() != "two" {
		t.Fatalf("FindAll(p) returned %d nodes", len(ps))
	}
	if n := root.ByID("first"); n == nil || n.TextContent() != "one" {
		t.Fatalf("ByID(first) = %v", n)
	}
	if n := root.ByID("missing"); n != nil {
		t.Fatalf("expected nil for missing id")
	}
	if notes := root.ByClass("note"); len(notes) != 2 {
		t.Fatalf("ByClass(note) returned %d nodes", len(notes))
	}
	if wide := root.ByClass("wide"); len(wide) != 1 || wide[0].TextContent() != "two" {
		t.Fatalf("ByClass(wide) mismatch")
	}
}
