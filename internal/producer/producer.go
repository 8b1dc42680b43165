// Package producer builds random seed trees over a declared variable list,
// following a pairing/right-fold algorithm.
package producer

import (
	"github.com/cumbiambero/genforge/internal/formula"
	"github.com/cumbiambero/genforge/internal/rng"
	"github.com/cumbiambero/genforge/internal/tree"
)

// Config selects which unary and binary kinds the producer draws from.
// Whether every kind is always eligible is left as a caller-supplied knob
// (DESIGN.md "Open Question decisions") rather than hard-coding the full
// union, while DefaultConfig draws from the full union out of the box.
type Config struct {
	Unary  []tree.UnaryKind
	Binary []tree.BinaryKind
}

// DefaultConfig draws from every unary and binary kind.
func DefaultConfig() Config {
	return Config{
		Unary:  append([]tree.UnaryKind(nil), tree.AllUnaryKinds...),
		Binary: append([]tree.BinaryKind(nil), tree.AllBinaryKinds...),
	}
}

// New produces a Formula over variables using cfg's eligible operation
// kinds:
//   - n == 1: a random unary operation applied to v1.
//   - n == 2: a random binary operation with v1 and v2 as children.
//   - n > 2: pair adjacent variables into random binary operations (the
//     last variable is left unpaired if n is odd), then right-fold the
//     resulting list into a single tree with random binary operations.
func New(cfg Config, variables []string, src rng.Source) *formula.Formula {
	root := build(cfg, variables, src)
	return formula.New(root, variables)
}

func build(cfg Config, variables []string, src rng.Source) *tree.Node {
	leaves := make([]*tree.Node, len(variables))
	for i, name := range variables {
		leaves[i] = tree.NewVariable(name)
	}

	switch len(leaves) {
	case 0:
		return tree.NewNumber(0)
	case 1:
		return tree.NewUnary(randomUnary(cfg, src), leaves[0])
	case 2:
		return tree.NewBinary(randomBinary(cfg, src), leaves[0], leaves[1])
	}

	paired := make([]*tree.Node, 0, (len(leaves)+1)/2)
	i := 0
	for ; i+1 < len(leaves); i += 2 {
		paired = append(paired, tree.NewBinary(randomBinary(cfg, src), leaves[i], leaves[i+1]))
	}
	if i < len(leaves) {
		paired = append(paired, leaves[i])
	}

	return rightFold(cfg, paired, src)
}

// rightFold combines nodes right-to-left: the last two combine first, and
// that result combines with its predecessor, and so on, each combination
// picking a fresh random binary operation.
func rightFold(cfg Config, nodes []*tree.Node, src rng.Source) *tree.Node {
	acc := nodes[len(nodes)-1]
	for i := len(nodes) - 2; i >= 0; i-- {
		acc = tree.NewBinary(randomBinary(cfg, src), nodes[i], acc)
	}
	return acc
}

func randomUnary(cfg Config, src rng.Source) tree.UnaryKind {
	kinds := cfg.Unary
	if len(kinds) == 0 {
		kinds = tree.AllUnaryKinds
	}
	return kinds[src.IntN(len(kinds))]
}

func randomBinary(cfg Config, src rng.Source) tree.BinaryKind {
	kinds := cfg.Binary
	if len(kinds) == 0 {
		kinds = tree.AllBinaryKinds
	}
	return kinds[src.IntN(len(kinds))]
}
