package dom

import "testing"

func TestFingerprintStable(t *testing.T) {
	build := func() *Node {
		attrs := AttrMap{}
		for _, k := range []string{"z", "a", "m", "q", "b", "y"} {
			attrs[k] = k + k
		}
		return Elem("div", attrs, []*Node{Text("x"), Elem("p", nil, nil)})
	}
	first := Fingerprint(build())
	for i := 0; i < 20; i++ {
		if Fingerprint(build()) != first {
			t.Fatalf("fingerprint changed between identical trees")
		}
	}
	if len(FingerprintHex(build())) != 64 {
		t.Fatalf("expected 64 hex chars")
	}
}

func TestFingerprintDistinguishesShape(t *testing.T) {
	trees := []*Node{
		Elem("a", nil, []*Node{Elem("b", nil, nil), Elem("c", nil, nil)}),
		Elem("a", nil, []*Node{Elem("b", nil, []*Node{Elem("c", nil, nil)})}),
		Elem("a", AttrMap{"b": ""}, []*Node{Elem("c", nil, nil)}),
		Elem("a", nil, []*Node{Text("b"), Elem("c", nil, nil)}),
		Elem("a", AttrMap{"k": "vv"}, nil),
		Elem("a", AttrMap{"kv": "v"}, nil),
		Text("a"),
	}
	seen := map[[32]byte]int{}
	for i, tree := range trees {
		sum := Fingerprint(tree)
		if j, ok := seen[sum]; ok {
			t.Fatalf("trees %d and %d share a fingerprint", j, i)
		}
		seen[sum] = i
	}
}
