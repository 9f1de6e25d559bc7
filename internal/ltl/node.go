package ltl

import "sort"

// Node is a sealed interface over the formula node variants.
// Only Num, Var, Const, Bool, Unary, and Binary implement it.
//
// A formula is a strict tree: every non-leaf node owns its operand
// subtrees exclusively. Nodes are immutable after construction;
// whole-subtree rewriting goes through Transform.
type Node interface {
	node()
}

// Num is an integer literal.
type Num struct {
	Value int
}

func (*Num) node() {}

// Var is a reference to a declared variable.
type Var struct {
	Name string
}

func (*Var) node() {}

// Const is a quoted string constant, used for enumerated domains.
type Const struct {
	Value string
}

func (*Const) node() {}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

func (*Bool) node() {}

// Unary is a one-operand node: negation or a unary temporal operator.
type Unary struct {
	Op      Op
	Operand Node
}

func (*Unary) node() {}

// Binary is a two-operand node. It always has exactly a left and a
// right child.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
}

func (*Binary) node() {}

// Constructor helpers for programmatic formula building.

func Not(x Node) Node        { return &Unary{Op: OpNot, Operand: x} }
func Next(x Node) Node       { return &Unary{Op: OpNext, Operand: x} }
func Always(x Node) Node     { return &Unary{Op: OpAlways, Operand: x} }
func Eventually(x Node) Node { return &Unary{Op: OpEventually, Operand: x} }

func And(l, r Node) Node     { return &Binary{Op: OpAnd, Left: l, Right: r} }
func Or(l, r Node) Node      { return &Binary{Op: OpOr, Left: l, Right: r} }
func Xor(l, r Node) Node     { return &Binary{Op: OpXor, Left: l, Right: r} }
func Implies(l, r Node) Node { return &Binary{Op: OpImplies, Left: l, Right: r} }
func Equiv(l, r Node) Node   { return &Binary{Op: OpEquiv, Left: l, Right: r} }
func Until(l, r Node) Node   { return &Binary{Op: OpUntil, Left: l, Right: r} }
func Release(l, r Node) Node { return &Binary{Op: OpRelease, Left: l, Right: r} }

// Cmp builds a comparison node. The op must be one of the comparison
// operators.
func Cmp(op Op, l, r Node) Node { return &Binary{Op: op, Left: l, Right: r} }

// Arith builds an arithmetic node. The op must be one of the
// arithmetic operators.
func Arith(op Op, l, r Node) Node { return &Binary{Op: op, Left: l, Right: r} }

// Size returns the node count of the subtree rooted at n.
func Size(n Node) int {
	switch v := n.(type) {
	case *Unary:
		return 1 + Size(v.Operand)
	case *Binary:
		return 1 + Size(v.Left) + Size(v.Right)
	default:
		return 1
	}
}

// Vars returns the free variable names of n, sorted and deduplicated.
func Vars(n Node) []string {
	seen := map[string]bool{}
	collectVars(n, seen)
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectVars(n Node, seen map[string]bool) {
	switch v := n.(type) {
	case *Var:
		seen[v.Name] = true
	case *Unary:
		collectVars(v.Operand, seen)
	case *Binary:
		collectVars(v.Left, seen)
		collectVars(v.Right, seen)
	}
}

// Transform rebuilds the tree bottom-up, applying f to every rebuilt
// node. The input tree is not modified; leaves are copied so the
// result shares no nodes with the input.
func Transform(n Node, f func(Node) Node) Node {
	switch v := n.(type) {
	case *Num:
		return f(&Num{Value: v.Value})
	case *Var:
		return f(&Var{Name: v.Name})
	case *Const:
		return f(&Const{Value: v.Value})
	case *Bool:
		return f(&Bool{Value: v.Value})
	case *Unary:
		return f(&Unary{Op: v.Op, Operand: Transform(v.Operand, f)})
	case *Binary:
		return f(&Binary{
			Op:    v.Op,
			Left:  Transform(v.Left, f),
			Right: Transform(v.Right, f),
		})
	default:
		return n
	}
}
