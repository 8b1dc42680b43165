package tree

import (
	"fmt"
)

// String renders the canonical infix form of the tree. Numeric leaves wrap
// negatives in parentheses.
func (n *Node) String() string {
	switch n.Kind {
	case KindNumber:
		return formatNumber(n.Value)
	case KindConstant:
		return constantName(n.Const)
	case KindVariable:
		return n.Name
	case KindWrapper:
		return n.Inner.String()
	case KindUnary:
		return unaryName(n.Unary) + "(" + n.Child.String() + ")"
	case KindBinary:
		return "(" + n.Left.String() + " " + binarySymbol(n.Binary) + " " + n.Right.String() + ")"
	default:
		return "?"
	}
}

// ToCode renders a target-language-neutral expression string suitable for
// downstream code emission — syntactically plain function-call notation,
// distinct from String's infix-with-symbols rendering.
func (n *Node) ToCode() string {
	switch n.Kind {
	case KindNumber:
		return formatNumber(n.Value)
	case KindConstant:
		return constantName(n.Const)
	case KindVariable:
		return n.Name
	case KindWrapper:
		return n.Inner.ToCode()
	case KindUnary:
		return unaryName(n.Unary) + "(" + n.Child.ToCode() + ")"
	case KindBinary:
		if n.Binary == BPow {
			return "pow(" + n.Left.ToCode() + ", " + n.Right.ToCode() + ")"
		}
		return "(" + n.Left.ToCode() + " " + binarySymbol(n.Binary) + " " + n.Right.ToCode() + ")"
	default:
		return "0"
	}
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%g", v)
	if v < 0 {
		return "(" + s + ")"
	}
	return s
}

func constantName(c ConstantName) string {
	switch c {
	case ConstPi:
		return "pi"
	case ConstE:
		return "e"
	default:
		return "?"
	}
}

func binarySymbol(k BinaryKind) string {
	switch k {
	case BAdd:
		return "+"
	case BSub:
		return "-"
	case BMul:
		return "*"
	case BDiv:
		return "/"
	case BPow:
		return "^"
	default:
		return "?"
	}
}

func unaryName(k UnaryKind) string {
	switch k {
	case USin:
		return "sin"
	case UCos:
		return "cos"
	case UTan:
		return "tan"
	case UAsin:
		return "asin"
	case UAcos:
		return "acos"
	case UAtan:
		return "atan"
	case USinh:
		return "sinh"
	case UCosh:
		return "cosh"
	case UTanh:
		return "tanh"
	case USquare:
		return "square"
	case UCube:
		return "cube"
	case USqrt:
		return "sqrt"
	case UNegSqrt:
		return "negsqrt"
	case UCbrt:
		return "cbrt"
	case ULn:
		return "ln"
	case ULog10:
		return "log10"
	case ULog2:
		return "log2"
	case UExp:
		return "exp"
	case UAbs:
		return "abs"
	case UFloor:
		return "floor"
	case UCeil:
		return "ceil"
	case USigmoid:
		return "sigmoid"
	case USoftSat:
		return "softsat"
	default:
		return "?"
	}
}

// countOps returns the number of operation nodes (unary + binary) in the
// tree, used by the Enhanced/Ultra complexity-penalty terms.
func countOps(n *Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindUnary:
		return 1 + countOps(n.Child)
	case KindBinary:
		return 1 + countOps(n.Left) + countOps(n.Right)
	case KindWrapper:
		return countOps(n.Inner)
	default:
		return 0
	}
}

// CountOps is the exported form of countOps.
func CountOps(n *Node) int { return countOps(n) }

// CountNodes returns the total node count (leaves included, the Wrapper
// itself not counted), exposed through Formula.NodeCount.
func CountNodes(n *Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindUnary:
		return 1 + CountNodes(n.Child)
	case KindBinary:
		return 1 + CountNodes(n.Left) + CountNodes(n.Right)
	case KindWrapper:
		return CountNodes(n.Inner)
	default:
		return 1
	}
}
