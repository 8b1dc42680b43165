package changer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// Merger is the crossover operator: it picks a subtree from each of two
// formulas and combines them under a freshly drawn binary operation.
type Merger struct{}

func (Merger) Tag() Tag { return TagMerger }

// Cross implements Crosser, not Changer — crossover inherently needs two
// parents, unlike every other entry in the catalog.
func (Merger) Cross(a, b *formula.Formula, src rng.Source) (*formula.Formula, error) {
	left := pickRandomSubtree(a.Root().Inner, src).Clone()
	right := pickRandomSubtree(b.Root().Inner, src).Clone()
	op := tree.AllBinaryKinds[src.IntN(len(tree.AllBinaryKinds))]
	combined := tree.NewBinary(op, left, right)

	variables := mergeVariableOrder(a.Variables(), b.Variables(), tree.FreeVariableNames(combined))
	return formula.New(combined, variables), nil
}

// pickRandomSubtree walks n per the "Merger (crossover)" rule:
//   - BinaryOp: p=½ pick left; else p=½ pick right; else recurse into one
//     randomly chosen child.
//   - UnaryOp: p=½ return the operand; else recurse.
//   - Wrapper: recurse into the wrapped node.
//   - leaf: return the node itself.
func pickRandomSubtree(n *tree.Node, src rng.Source) *tree.Node {
	switch n.Kind {
	case tree.KindBinary:
		if src.Coin() {
			return n.Left
		}
		if src.Coin() {
			return n.Right
		}
		if src.Coin() {
			return pickRandomSubtree(n.Left, src)
		}
		return pickRandomSubtree(n.Right, src)
	case tree.KindUnary:
		if src.Coin() {
			return n.Child
		}
		return pickRandomSubtree(n.Child, src)
	case tree.KindWrapper:
		return pickRandomSubtree(n.Inner, src)
	default:
		return n
	}
}

// mergeVariableOrder lists only the names in present: first those a
// declares, in a's order, then those b declares, in b's order, then any
// remaining name. Declared variables absent from present are dropped.
func mergeVariableOrder(a, b []string, present map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, name := range a {
		if _, ok := present[name]; ok {
			if _, dup := seen[name]; !dup {
				out = append(out, name)
				seen[name] = struct{}{}
			}
		}
	}
	for _, name := range b {
		if _, ok := present[name]; ok {
			if _, dup := seen[name]; !dup {
				out = append(out, name)
				seen[name] = struct{}{}
			}
		}
	}
	for name := range present {
		if _, dup := seen[name]; !dup {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	return out
}
