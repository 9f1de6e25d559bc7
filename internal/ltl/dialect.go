package ltl

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect enumerates the target syntaxes a formula can be rendered in.
type Dialect int

const (
	// GR1C is the GR(1) solver input syntax. Next is rendered by
	// priming the operand rather than by a prefix operator.
	GR1C Dialect = iota
	// JTLV is the alternate GR(1) solver syntax.
	JTLV
	// SMV is the model-checker syntax.
	SMV
	// Promela is the verifier syntax.
	Promela
	// Eval is an evaluable boolean-expression syntax, limited to
	// propositional formulas.
	Eval
)

var dialectNames = map[Dialect]string{
	GR1C:    "gr1c",
	JTLV:    "jtlv",
	SMV:     "smv",
	Promela: "promela",
	Eval:    "eval",
}

func (d Dialect) String() string {
	if s, ok := dialectNames[d]; ok {
		return s
	}
	return "dialect?"
}

// DialectFromName resolves a dialect by its textual name.
func DialectFromName(name string) (Dialect, bool) {
	for d, s := range dialectNames {
		if s == name {
			return d, true
		}
	}
	return 0, false
}

// Dialects lists all supported dialects in declaration order.
func Dialects() []Dialect {
	return []Dialect{GR1C, JTLV, SMV, Promela, Eval}
}

// One token table per dialect. An operator absent from a table has no
// rendering in that dialect and Render fails with
// UnsupportedOperatorError. Adding a dialect means adding one table.
var dialectTokens = map[Dialect]map[Op]string{
	GR1C: {
		OpNot: "!", OpNext: "'", OpAlways: "[]", OpEventually: "<>",
		OpAnd: "&", OpOr: "|", OpXor: "xor",
		OpImplies: "->", OpEquiv: "<->",
		// Until and Release have no gr1c rendering.
		OpEq: "=", OpNeq: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	},
	JTLV: {
		OpNot: "!", OpNext: "next", OpAlways: "[]", OpEventually: "<>",
		OpAnd: "&&", OpOr: "||", OpXor: "xor",
		OpImplies: "->", OpEquiv: "<->",
		OpUntil: "U",
		// Release has no JTLV rendering.
		OpEq: "=", OpNeq: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	},
	SMV: {
		OpNot: "!", OpNext: "X", OpAlways: "G", OpEventually: "F",
		OpAnd: "&", OpOr: "|", OpXor: "xor",
		OpImplies: "->", OpEquiv: "<->",
		OpUntil: "U", OpRelease: "V",
		OpEq: "=", OpNeq: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	},
	Promela: {
		OpNot: "!", OpAlways: "[]", OpEventually: "<>",
		// Next has no Promela rendering.
		OpAnd: "&&", OpOr: "||", OpXor: "xor",
		OpImplies: "->", OpEquiv: "<->",
		OpUntil: "U", OpRelease: "V",
		OpEq: "==", OpNeq: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	},
	Eval: {
		OpNot: "not",
		// Temporal operators have no evaluable rendering.
		OpAnd: "and", OpOr: "or", OpXor: "^",
		// Implies and Equiv are expanded structurally, see render.
		OpImplies: "->", OpEquiv: "<->",
		OpEq: "==", OpNeq: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
		OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	},
}

var boolTokens = map[Dialect]map[bool]string{
	GR1C:    {true: "True", false: "False"},
	JTLV:    {true: "TRUE", false: "FALSE"},
	SMV:     {true: "True", false: "False"},
	Promela: {true: "True", false: "False"},
	Eval:    {true: "True", false: "False"},
}

// Token returns the dialect spelling of op, failing if the dialect has
// no rendering for it.
func Token(op Op, d Dialect) (string, error) {
	tok, ok := dialectTokens[d][op]
	if !ok {
		return "", &UnsupportedOperatorError{Op: op, Dialect: d}
	}
	return tok, nil
}

// OpForToken resolves a dialect token back to its operator.
func OpForToken(d Dialect, token string) (Op, bool) {
	for op, tok := range dialectTokens[d] {
		if tok == token {
			return op, true
		}
	}
	return 0, false
}

// Render emits n in the given dialect. It never mutates the tree.
// Both operands of a binary node are always parenthesized, regardless
// of operator precedence, so output re-parses unambiguously.
func Render(n Node, d Dialect) (string, error) {
	return render(n, d, false)
}

func render(n Node, d Dialect, primed bool) (string, error) {
	switch v := n.(type) {
	case *Num:
		return strconv.Itoa(v.Value), nil

	case *Var:
		switch {
		case d == GR1C && primed:
			return v.Name + "'", nil
		case d == JTLV:
			return "(" + v.Name + ")", nil
		default:
			return v.Name, nil
		}

	case *Const:
		q := `"` + v.Value + `"`
		switch {
		case d == GR1C && primed:
			return q + "'", nil
		case d == JTLV:
			return "(" + q + ")", nil
		default:
			return q, nil
		}

	case *Bool:
		return boolTokens[d][v.Value], nil

	case *Unary:
		if d == Eval && v.Op.Temporal() {
			return "", &UnsupportedOperatorError{Op: v.Op, Dialect: d}
		}
		if d == GR1C && v.Op == OpNext {
			// gr1c has no next operator: the operand is primed instead.
			o, err := render(v.Operand, d, true)
			if err != nil {
				return "", err
			}
			return join("", o), nil
		}
		tok, err := Token(v.Op, d)
		if err != nil {
			return "", err
		}
		o, err := render(v.Operand, d, primed)
		if err != nil {
			return "", err
		}
		return join(tok, o), nil

	case *Binary:
		if d == Eval && v.Op.Temporal() {
			return "", &UnsupportedOperatorError{Op: v.Op, Dialect: d}
		}
		tok, err := Token(v.Op, d)
		if err != nil {
			return "", err
		}
		l, err := render(v.Left, d, primed)
		if err != nil {
			return "", err
		}
		r, err := render(v.Right, d, primed)
		if err != nil {
			return "", err
		}
		if d == Eval {
			switch v.Op {
			case OpImplies:
				return "( (not (" + l + ")) or " + r + ")", nil
			case OpEquiv:
				return "( " + l + " and " + r + " ) or not ( " + l + " or " + r + " )", nil
			}
		}
		return strings.Join([]string{"(", l, tok, r, ")"}, " "), nil
	}
	return "", fmt.Errorf("ltl: unknown node type %T", n)
}

func join(tok, operand string) string {
	return strings.Join([]string{"(", tok, operand, ")"}, " ")
}
