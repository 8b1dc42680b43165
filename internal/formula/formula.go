// Package formula wraps an expression tree with the indexes and binding
// discipline the changer catalog and fitness evaluators depend on: which
// nodes are binary operators, which are free numeric leaves, and where each
// declared variable appears in the tree.
package formula

import (
	"math"
	"sync"

	"github.com/cumbiambero/genforge/internal/errs"
	"github.com/cumbiambero/genforge/internal/tree"
)

// NonFiniteSentinel is the value a non-finite Evaluate result clamps to, so
// callers (fitness evaluators) can detect it deterministically without
// re-checking math.IsNaN/IsInf themselves.
const NonFiniteSentinel = -math.MaxFloat64

const lowestFinite = NonFiniteSentinel

// Formula owns a root Node (always a Wrapper, so replacing the "real" root
// never requires rewriting an owning edge) plus the variable declaration
// order and the indexes built from it.
type Formula struct {
	mu sync.RWMutex

	root      *tree.Node
	variables []string

	binaryOperators  []*tree.Node
	numbers          []*tree.Node
	variablePosition map[string][]*tree.Node
}

// New constructs a Formula from root and the declared variable names,
// indexing the tree in one traversal. root is wrapped if it is not already
// a Wrapper node.
func New(root *tree.Node, variables []string) *Formula {
	if root.Kind != tree.KindWrapper {
		root = tree.NewWrapper(root)
	}
	f := &Formula{
		root:      root,
		variables: append([]string(nil), variables...),
	}
	f.reindex()
	return f
}

// reindex rebuilds every catalog from the current root, post-order
// (children before parent) so the position of a node in
// binaryOperators/numbers/variablePosition matches the order the
// original traverse(left); traverse(right); push(self) builder produces.
// Callers must hold f.mu for writing.
func (f *Formula) reindex() {
	f.binaryOperators = nil
	f.numbers = nil
	f.variablePosition = make(map[string][]*tree.Node, len(f.variables))

	tree.WalkPostOrder(f.root, func(n *tree.Node) {
		switch n.Kind {
		case tree.KindBinary:
			f.binaryOperators = append(f.binaryOperators, n)
		case tree.KindNumber:
			f.numbers = append(f.numbers, n)
		case tree.KindVariable:
			f.variablePosition[n.Name] = append(f.variablePosition[n.Name], n)
		}
	})
}

// Evaluate binds values positionally to variables (by name, since a
// variable may recur at multiple positions in the tree) and evaluates the
// root. It fails with errs.ErrArity if values does not have one entry per
// declared variable. A non-finite result is clamped to the lowest finite
// sentinel.
func (f *Formula) Evaluate(values []float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(values) != len(f.variables) {
		return 0, errs.Arityf(len(f.variables), len(values))
	}

	for i, name := range f.variables {
		for _, n := range f.variablePosition[name] {
			n.Value = values[i]
		}
	}

	result := f.root.Evaluate()
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return lowestFinite, nil
	}
	return result, nil
}

// Clone deep-copies the tree and re-indexes, producing a fully independent
// Formula sharing the same declared variable order.
func (f *Formula) Clone() *Formula {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return New(f.root.Clone(), f.variables)
}

// String renders the simplified tree's canonical infix form.
func (f *Formula) String() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.root.Simplify().String()
}

// ToCode renders the raw (unsimplified) tree's code form.
func (f *Formula) ToCode() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.root.ToCode()
}

// Root returns the Wrapper root node, for changers that build a new tree
// around it or need direct structural access.
func (f *Formula) Root() *tree.Node {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.root
}

// Variables returns the declared variable names in order.
func (f *Formula) Variables() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]string(nil), f.variables...)
}

// GetBinaryOperators returns a read-only view of every binary-operator
// node in the tree, used by changers that target operators directly.
func (f *Formula) GetBinaryOperators() []*tree.Node {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]*tree.Node(nil), f.binaryOperators...)
}

// GetNumbers returns a read-only view of every non-constant numeric leaf.
func (f *Formula) GetNumbers() []*tree.Node {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]*tree.Node(nil), f.numbers...)
}

// NodeCount returns the total node count of the tree.
func (f *Formula) NodeCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return tree.CountNodes(f.root)
}

// OpCount returns the operation-node count of the tree.
func (f *Formula) OpCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return tree.CountOps(f.root)
}

// WithRoot builds a brand-new Formula around replacement, sharing the
// receiver's variable declaration order. This is the preferred path for
// mutation: rather than mutating a Formula's tree directly and leaving
// its indexes stale, a changer clones into a fresh Formula.
func (f *Formula) WithRoot(replacement *tree.Node) *Formula {
	f.mu.RLock()
	vars := append([]string(nil), f.variables...)
	f.mu.RUnlock()

	return New(replacement, vars)
}
