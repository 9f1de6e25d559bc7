package ltl

// Op enumerates the formula operators.
type Op int

const (
	// Unary.
	OpNot Op = iota
	OpNext
	OpAlways
	OpEventually

	// Binary.
	OpAnd
	OpOr
	OpXor
	OpImplies
	OpEquiv
	OpUntil
	OpRelease

	// Comparisons.
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe

	// Arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// canonicalTokens are the internal operator spellings, used by the
// tree codec and by error messages.
var canonicalTokens = map[Op]string{
	OpNot:        "!",
	OpNext:       "X",
	OpAlways:     "G",
	OpEventually: "F",
	OpAnd:        "&&",
	OpOr:         "||",
	OpXor:        "xor",
	OpImplies:    "->",
	OpEquiv:      "<->",
	OpUntil:      "U",
	OpRelease:    "R",
	OpEq:         "=",
	OpNeq:        "!=",
	OpLt:         "<",
	OpLe:         "<=",
	OpGt:         ">",
	OpGe:         ">=",
	OpAdd:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
}

func (op Op) String() string {
	if s, ok := canonicalTokens[op]; ok {
		return s
	}
	return "op?"
}

// Arity reports the operand count of op: 1 or 2.
func (op Op) Arity() int {
	if op <= OpEventually {
		return 1
	}
	return 2
}

// Temporal reports whether op is a temporal operator.
func (op Op) Temporal() bool {
	switch op {
	case OpNext, OpAlways, OpEventually, OpUntil, OpRelease:
		return true
	}
	return false
}

// opForCanonical is the reverse of canonicalTokens.
var opForCanonical = func() map[string]Op {
	m := make(map[string]Op, len(canonicalTokens))
	for op, tok := range canonicalTokens {
		m[tok] = op
	}
	return m
}()
