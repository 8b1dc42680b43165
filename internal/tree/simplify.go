package tree

import "math"

// Simplify produces a structurally equivalent node with constant folding
// and identity elimination applied bottom-up. It is pure: the receiver
// is never mutated, and children are
// simplified first so that, e.g., (0 + x) + 0 collapses to x in one pass.
func (n *Node) Simplify() *Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindNumber:
		return &Node{Kind: KindNumber, Value: n.Value}
	case KindConstant:
		return n
	case KindVariable:
		return &Node{Kind: KindVariable, Name: n.Name, Value: n.Value}
	case KindWrapper:
		return &Node{Kind: KindWrapper, Inner: n.Inner.Simplify()}
	case KindUnary:
		return simplifyUnary(n)
	case KindBinary:
		return simplifyBinary(n)
	default:
		return n.Clone()
	}
}

func simplifyUnary(n *Node) *Node {
	child := n.Child.Simplify()
	if v, ok := numericLiteralValue(child); ok {
		folded := (&Node{Kind: KindUnary, Unary: n.Unary, Child: &Node{Kind: KindNumber, Value: v}}).Evaluate()
		if isFinite(folded) {
			return &Node{Kind: KindNumber, Value: folded}
		}
	}
	return &Node{Kind: KindUnary, Unary: n.Unary, Child: child}
}

func simplifyBinary(n *Node) *Node {
	left := n.Left.Simplify()
	right := n.Right.Simplify()

	leftVal, leftIsLit := numericLiteralValue(left)
	rightVal, rightIsLit := numericLiteralValue(right)

	switch n.Binary {
	case BAdd:
		if leftIsLit && leftVal == 0 {
			return right
		}
		if rightIsLit && rightVal == 0 {
			return left
		}
	case BSub:
		if rightIsLit && rightVal == 0 {
			return left
		}
	case BMul:
		if leftIsLit && leftVal == 0 {
			return &Node{Kind: KindNumber, Value: 0}
		}
		if rightIsLit && rightVal == 0 {
			return &Node{Kind: KindNumber, Value: 0}
		}
		if leftIsLit && leftVal == 1 {
			return right
		}
		if rightIsLit && rightVal == 1 {
			return left
		}
	case BDiv:
		if leftIsLit && leftVal == 0 && !(rightIsLit && rightVal == 0) {
			return &Node{Kind: KindNumber, Value: 0}
		}
		if rightIsLit && rightVal == 1 {
			return left
		}
	case BPow:
		if rightIsLit && rightVal == 0 {
			return &Node{Kind: KindNumber, Value: 1}
		}
		if rightIsLit && rightVal == 1 {
			return left
		}
		if leftIsLit && leftVal == 0 {
			return &Node{Kind: KindNumber, Value: 0}
		}
		if leftIsLit && leftVal == 1 {
			return &Node{Kind: KindNumber, Value: 1}
		}
	}

	if leftIsLit && rightIsLit {
		folded := (&Node{
			Kind: KindBinary, Binary: n.Binary,
			Left:  &Node{Kind: KindNumber, Value: leftVal},
			Right: &Node{Kind: KindNumber, Value: rightVal},
		}).Evaluate()
		if isFinite(folded) {
			return &Node{Kind: KindNumber, Value: folded}
		}
	}

	return &Node{Kind: KindBinary, Binary: n.Binary, Left: left, Right: right}
}

// numericLiteralValue reports whether n is a compile-time-known numeric
// value (Number or Constant — never Variable, since its value depends on
// the current binding) and, if so, what that value is.
func numericLiteralValue(n *Node) (float64, bool) {
	switch n.Kind {
	case KindNumber:
		return n.Value, true
	case KindConstant:
		return ConstantValue(n.Const), true
	default:
		return 0, false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
