package hast

// Action tells Visit how to continue after a node has been handled.
type Action int

const (
	Continue Action = iota
	SkipChildren
	Stop
)

// VisitFunc is called for every node with its parent (nil for the start
// node) and its index in parent.Children.
type VisitFunc func(n, parent *Node, index int) Action

// Visit walks the tree depth-first in document order. Children appended
// to a node during its own callback are visited; callers that restructure
// the tree should collect matches first and mutate afterwards.
func Visit(root *Node, fn VisitFunc) {
	if root == nil {
		return
	}
	visit(root, nil, -1, fn)
}

func visit(n, parent *Node, index int, fn VisitFunc) bool {
	switch fn(n, parent, index) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}
	for i := 0; i < len(n.Children); i++ {
		if !visit(n.Children[i], n, i, fn) {
			return false
		}
	}
	return true
}

// VisitElements visits only element nodes accepted by test (any element
// when test is nil).
func VisitElements(root *Node, test func(*Node) bool, fn VisitFunc) {
	Visit(root, func(n, parent *Node, index int) Action {
		if n.Type != ElementNode || (test != nil && !test(n)) {
			return Continue
		}
		return fn(n, parent, index)
	})
}

// FindAll returns every element accepted by test, in document order.
func FindAll(root *Node, test func(*Node) bool) []*Node {
	var out []*Node
	VisitElements(root, test, func(n, _ *Node, _ int) Action {
		out = append(out, n)
		return Continue
	})
	return out
}

// Find returns the first element accepted by test, or nil.
func Find(root *Node, test func(*Node) bool) *Node {
	var found *Node
	VisitElements(root, test, func(n, _ *Node, _ int) Action {
		found = n
		return Stop
	})
	return found
}

// IsHeading matches h1-h6 elements.
func IsHeading(n *Node) bool {
	return HeadingLevel(n) > 0
}
