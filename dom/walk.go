package dom

// WalkFunc is called for every visited node with its depth below the walk
// root. Returning false skips the node's children.
type WalkFunc func(node *Node, depth int) bool

type frame struct {
	node  *Node
	depth int
}

type stack[T any] []T

func (stk *stack[T]) push(val T) {
	*stk = append(*stk, val)
}

func (stk *stack[T]) pop() (T, bool) {
	if len(*stk) == 0 {
		var val T
		return val, false
	}
	val := (*stk)[len(*stk)-1]
	*stk = (*stk)[:len(*stk)-1]
	return val, true
}

// Walk visits root and its descendants in document (pre-)order. It uses an
// explicit stack, so arbitrarily deep trees are safe to walk.
func Walk(root *Node, fn WalkFunc) {
	if root == nil || fn == nil {
		return
	}
	stk := make(stack[frame], 0, 16)
	stk.push(frame{node: root})

	for f, ok := stk.pop(); ok; f, ok = stk.pop() {
		if !fn(f.node, f.depth) {
			continue
		}
		// reverse so that the first child is popped first
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stk.push(frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}

// Find returns the first element (n included) whose tag name is tagName, or
// nil.
func (n *Node) Find(tagName string) *Node {
	return n.first(func(node *Node) bool {
		return node.TagName() == tagName
	})
}

// FindAll returns every element (n included) whose tag name is tagName, in
// document order.
func (n *Node) FindAll(tagName string) []*Node {
	return n.all(func(node *Node) bool {
		return node.TagName() == tagName
	})
}

// ByID returns the first element whose id attribute equals id, or nil.
func (n *Node) ByID(id string) *Node {
	return n.first(func(node *Node) bool {
		if !node.IsElement() {
			return false
		}
		got, ok := node.Element.ID()
		return ok && got == id
	})
}

// ByClass returns all elements carrying class, in document order.
func (n *Node) ByClass(class string) []*Node {
	return n.all(func(node *Node) bool {
		return node.IsElement() && node.Element.HasClass(class)
	})
}

func (n *Node) first(match func(*Node) bool) *Node {
	var found *Node
	Walk(n, func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

func (n *Node) all(match func(*Node) bool) []*Node {
	var matches []*Node
	Walk(n, func(node *Node, _ int) bool {
		if match(node) {
			matches = append(matches, node)
		}
		return true
	})
	return matches
}
