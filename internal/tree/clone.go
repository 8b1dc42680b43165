package tree

// Clone deep-copies n. Constants are shared (they are immutable); every
// other node is freshly allocated so that mutating the
// clone never affects the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindConstant:
		return n // immutable, safe to share
	case KindNumber:
		return &Node{Kind: KindNumber, Value: n.Value}
	case KindVariable:
		return &Node{Kind: KindVariable, Name: n.Name, Value: n.Value}
	case KindUnary:
		return &Node{Kind: KindUnary, Unary: n.Unary, Child: n.Child.Clone()}
	case KindBinary:
		return &Node{Kind: KindBinary, Binary: n.Binary, Left: n.Left.Clone(), Right: n.Right.Clone()}
	case KindWrapper:
		return &Node{Kind: KindWrapper, Inner: n.Inner.Clone()}
	default:
		return nil
	}
}
