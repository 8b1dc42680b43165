package tree

// Walk calls visit once for every node in the tree, pre-order. It is the
// shared traversal used by changers that enumerate nodes top-down, e.g.
// to pick a uniformly random subtree.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch n.Kind {
	case KindUnary:
		Walk(n.Child, visit)
	case KindBinary:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case KindWrapper:
		Walk(n.Inner, visit)
	}
}

// WalkPostOrder calls visit once for every node in the tree, children
// before parent. Formula's indexing pass uses this order so that
// binaryOperators/numbers/variablePosition line up the same way the
// original traverse(left); traverse(right); push(self) builder does.
func WalkPostOrder(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindUnary:
		WalkPostOrder(n.Child, visit)
	case KindBinary:
		WalkPostOrder(n.Left, visit)
		WalkPostOrder(n.Right, visit)
	case KindWrapper:
		WalkPostOrder(n.Inner, visit)
	}
	visit(n)
}

// FreeVariableNames returns the set of distinct Variable names reachable
// from n, used to check that every Variable name appearing in the tree
// has a matching entry in variables, and that a changer never produces a
// formula with a free variable not listed in the input's variables.
func FreeVariableNames(n *Node) map[string]struct{} {
	names := make(map[string]struct{})
	Walk(n, func(node *Node) {
		if node.Kind == KindVariable {
			names[node.Name] = struct{}{}
		}
	})
	return names
}

// Collect returns every node in the tree, pre-order — used by the Merger
// and by changers that pick a uniformly random node.
func Collect(n *Node) []*Node {
	var nodes []*Node
	Walk(n, func(node *Node) { nodes = append(nodes, node) })
	return nodes
}
