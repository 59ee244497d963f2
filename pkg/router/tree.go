package router

// TreeNode is one node of a Tree.
type TreeNode[T comparable] struct {
	Value    T
	Children []*TreeNode[T]
}

// Tree is a rooted tree of values looked up by identity. Snapshot trees and
// live state trees both use it, so navigation helpers exist once.
//
// Lookups walk the tree; trees here are small (one node per matched route).
type Tree[T comparable] struct {
	root *TreeNode[T]
}

// NewTree wraps a root node.
func NewTree[T comparable](root *TreeNode[T]) *Tree[T] {
	return &Tree[T]{root: root}
}

// RootNode returns the root node.
func (t *Tree[T]) RootNode() *TreeNode[T] {
	return t.root
}

// Root returns the root value.
func (t *Tree[T]) Root() T {
	return t.root.Value
}

// Parent returns the parent of v, or the zero value for the root or a
// value that is not in the tree.
func (t *Tree[T]) Parent(v T) T {
	var zero T
	path := t.findPath(v)
	if len(path) < 2 {
		return zero
	}
	return path[len(path)-2].Value
}

// Children returns the children of v in order.
func (t *Tree[T]) Children(v T) []T {
	n := t.find(v)
	if n == nil {
		return nil
	}
	out := make([]T, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Value
	}
	return out
}

// FirstChild returns the first child of v, or the zero value.
func (t *Tree[T]) FirstChild(v T) T {
	var zero T
	n := t.find(v)
	if n == nil || len(n.Children) == 0 {
		return zero
	}
	return n.Children[0].Value
}

// Siblings returns the other children of v's parent.
func (t *Tree[T]) Siblings(v T) []T {
	path := t.findPath(v)
	if len(path) < 2 {
		return nil
	}
	parent := path[len(path)-2]
	var out []T
	for _, c := range parent.Children {
		if c.Value != v {
			out = append(out, c.Value)
		}
	}
	return out
}

// PathFromRoot returns the values from the root down to v, inclusive.
func (t *Tree[T]) PathFromRoot(v T) []T {
	path := t.findPath(v)
	out := make([]T, len(path))
	for i, n := range path {
		out[i] = n.Value
	}
	return out
}

// Contains reports whether v is in the tree.
func (t *Tree[T]) Contains(v T) bool {
	return t.find(v) != nil
}

// Walk visits every value in pre-order. Returning false from fn skips the
// subtree below that value.
func (t *Tree[T]) Walk(fn func(v T, depth int) bool) {
	walk(t.root, 0, fn)
}

// Values returns every value in pre-order.
func (t *Tree[T]) Values() []T {
	var out []T
	t.Walk(func(v T, _ int) bool {
		out = append(out, v)
		return true
	})
	return out
}

func walk[T comparable](n *TreeNode[T], depth int, fn func(T, int) bool) {
	if n == nil || !fn(n.Value, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

func (t *Tree[T]) find(v T) *TreeNode[T] {
	path := t.findPath(v)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

func (t *Tree[T]) findPath(v T) []*TreeNode[T] {
	if t.root == nil {
		return nil
	}
	return findPath(t.root, v, nil)
}

func findPath[T comparable](n *TreeNode[T], v T, acc []*TreeNode[T]) []*TreeNode[T] {
	acc = append(acc, n)
	if n.Value == v {
		return acc
	}
	for _, c := range n.Children {
		if p := findPath(c, v, acc); p != nil {
			return p
		}
	}
	return nil
}
