package router

import (
	"reflect"
	"testing"
)

type tnode struct{ name string }

// a -> (b -> (d), c)
func sampleTree() (*Tree[*tnode], map[string]*tnode) {
	nodes := map[string]*tnode{}
	for _, n := range []string{"a", "b", "c", "d", "x"} {
		nodes[n] = &tnode{name: n}
	}
	root := &TreeNode[*tnode]{Value: nodes["a"], Children: []*TreeNode[*tnode]{
		{Value: nodes["b"], Children: []*TreeNode[*tnode]{{Value: nodes["d"]}}},
		{Value: nodes["c"]},
	}}
	return NewTree(root), nodes
}

func names(ns []*tnode) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.name)
	}
	return out
}

func TestTreeRoot(t *testing.T) {
	tree, nodes := sampleTree()
	if tree.Root() != nodes["a"] {
		t.Errorf("Root() = %v, want a", tree.Root())
	}
}

func TestTreeParent(t *testing.T) {
	tree, nodes := sampleTree()

	tests := []struct {
		node string
		want *tnode
	}{
		{"a", nil},
		{"b", nodes["a"]},
		{"c", nodes["a"]},
		{"d", nodes["b"]},
		{"x", nil},
	}
	for _, tt := range tests {
		if got := tree.Parent(nodes[tt.node]); got != tt.want {
			t.Errorf("Parent(%s) = %v, want %v", tt.node, got, tt.want)
		}
	}
}

func TestTreeChildren(t *testing.T) {
	tree, nodes := sampleTree()

	if got := names(tree.Children(nodes["a"])); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v", got)
	}
	if got := tree.Children(nodes["c"]); len(got) != 0 {
		t.Errorf("Children(c) = %v, want none", names(got))
	}
	if got := tree.Children(nodes["x"]); got != nil {
		t.Errorf("Children(x) = %v, want nil", names(got))
	}
}

func TestTreeFirstChild(t *testing.T) {
	tree, nodes := sampleTree()

	if got := tree.FirstChild(nodes["a"]); got != nodes["b"] {
		t.Errorf("FirstChild(a) = %v, want b", got)
	}
	if got := tree.FirstChild(nodes["d"]); got != nil {
		t.Errorf("FirstChild(d) = %v, want nil", got)
	}
}

func TestTreeSiblings(t *testing.T) {
	tree, nodes := sampleTree()

	if got := names(tree.Siblings(nodes["b"])); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Siblings(b) = %v", got)
	}
	if got := tree.Siblings(nodes["a"]); got != nil {
		t.Errorf("Siblings(a) = %v, want nil", names(got))
	}
	if got := tree.Siblings(nodes["d"]); got != nil {
		t.Errorf("Siblings(d) = %v, want nil", names(got))
	}
}

func TestTreePathFromRoot(t *testing.T) {
	tree, nodes := sampleTree()

	if got := names(tree.PathFromRoot(nodes["d"])); !reflect.DeepEqual(got, []string{"a", "b", "d"}) {
		t.Errorf("PathFromRoot(d) = %v", got)
	}
	if got := names(tree.PathFromRoot(nodes["c"])); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("PathFromRoot(c) = %v", got)
	}
	if got := tree.PathFromRoot(nodes["x"]); len(got) != 0 {
		t.Errorf("PathFromRoot(x) = %v, want empty", names(got))
	}
}

func TestTreeWalk(t *testing.T) {
	tree, _ := sampleTree()

	var visited []string
	var depths []int
	tree.Walk(func(n *tnode, depth int) bool {
		visited = append(visited, n.name)
		depths = append(depths, depth)
		return true
	})
	if !reflect.DeepEqual(visited, []string{"a", "b", "d", "c"}) {
		t.Errorf("Walk order = %v", visited)
	}
	if !reflect.DeepEqual(depths, []int{0, 1, 2, 1}) {
		t.Errorf("Walk depths = %v", depths)
	}
}

func TestTreeWalkSkipsSubtree(t *testing.T) {
	tree, _ := sampleTree()

	var visited []string
	tree.Walk(func(n *tnode, _ int) bool {
		visited = append(visited, n.name)
		return n.name != "b"
	})
	if !reflect.DeepEqual(visited, []string{"a", "b", "c"}) {
		t.Errorf("Walk order = %v", visited)
	}
}

func TestTreeContains(t *testing.T) {
	tree, nodes := sampleTree()
	if !tree.Contains(nodes["d"]) {
		t.Error("Contains(d) = false")
	}
	if tree.Contains(nodes["x"]) {
		t.Error("Contains(x) = true")
	}
}
