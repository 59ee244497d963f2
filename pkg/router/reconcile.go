package router

// CreateRouterState builds the live tree for curr, reusing nodes of prev.
//
// The root is always reused. Below it, a previous node is reused for a new
// snapshot when it was created for the same *Route in the same outlet; each
// previous node is claimed at most once. Reused nodes only get a new future
// snapshot; nothing is committed until Advance is called on them.
//
// Previous nodes that are not claimed are left as they are; Diff reports
// them as retired.
func CreateRouterState(curr *RouterStateSnapshot, prev *RouterState) *RouterState {
	root := reuseNode(curr.RootNode(), prev.RootNode())
	return NewRouterState(root, curr)
}

func reuseNode(curr *TreeNode[*ActivatedRouteSnapshot], prev *TreeNode[*ActivatedRoute]) *TreeNode[*ActivatedRoute] {
	prev.Value.setFuture(curr.Value)

	claimed := make([]bool, len(prev.Children))
	out := &TreeNode[*ActivatedRoute]{
		Value:    prev.Value,
		Children: make([]*TreeNode[*ActivatedRoute], 0, len(curr.Children)),
	}
	for _, c := range curr.Children {
		if i := findReusable(prev.Children, claimed, c.Value); i >= 0 {
			claimed[i] = true
			out.Children = append(out.Children, reuseNode(c, prev.Children[i]))
			continue
		}
		out.Children = append(out.Children, createNode(c))
	}
	return out
}

func findReusable(prev []*TreeNode[*ActivatedRoute], claimed []bool, s *ActivatedRouteSnapshot) int {
	for i, p := range prev {
		if claimed[i] {
			continue
		}
		if p.Value.RouteConfig == s.RouteConfig && p.Value.Outlet == s.Outlet {
			return i
		}
	}
	return -1
}

func createNode(curr *TreeNode[*ActivatedRouteSnapshot]) *TreeNode[*ActivatedRoute] {
	out := &TreeNode[*ActivatedRoute]{
		Value:    newActivatedRoute(curr.Value),
		Children: make([]*TreeNode[*ActivatedRoute], 0, len(curr.Children)),
	}
	for _, c := range curr.Children {
		out.Children = append(out.Children, createNode(c))
	}
	return out
}

// StateDiff lists how the routes of two live trees relate.
type StateDiff struct {
	// Created are routes only in the new tree, top-down.
	Created []*ActivatedRoute

	// Reused are routes in both trees, top-down.
	Reused []*ActivatedRoute

	// Retired are routes only in the old tree, bottom-up.
	Retired []*ActivatedRoute
}

// Diff compares the tree returned by CreateRouterState with the tree it
// was built from.
func Diff(prev, next *RouterState) StateDiff {
	inPrev := make(map[*ActivatedRoute]bool)
	prev.Walk(func(a *ActivatedRoute, _ int) bool {
		inPrev[a] = true
		return true
	})
	inNext := make(map[*ActivatedRoute]bool)

	var d StateDiff
	next.Walk(func(a *ActivatedRoute, _ int) bool {
		inNext[a] = true
		if inPrev[a] {
			d.Reused = append(d.Reused, a)
		} else {
			d.Created = append(d.Created, a)
		}
		return true
	})

	var retire func(n *TreeNode[*ActivatedRoute])
	retire = func(n *TreeNode[*ActivatedRoute]) {
		for _, c := range n.Children {
			retire(c)
		}
		if !inNext[n.Value] {
			d.Retired = append(d.Retired, n.Value)
		}
	}
	retire(prev.RootNode())
	return d
}
