package ltl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(name string) Node { return &Var{Name: name} }

func TestRenderPropositional(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		dialect Dialect
		want    string
	}{
		{"and gr1c", And(v("a"), v("b")), GR1C, "( a & b )"},
		{"or gr1c", Or(v("a"), v("b")), GR1C, "( a | b )"},
		{"and jtlv wraps vars", And(v("a"), v("b")), JTLV, "( (a) && (b) )"},
		{"or jtlv", Or(v("a"), v("b")), JTLV, "( (a) || (b) )"},
		{"and smv", And(v("a"), v("b")), SMV, "( a & b )"},
		{"and promela", And(v("a"), v("b")), Promela, "( a && b )"},
		{"and eval", And(v("a"), v("b")), Eval, "( a and b )"},
		{"not gr1c", Not(v("a")), GR1C, "( ! a )"},
		{"not eval", Not(v("a")), Eval, "( not a )"},
		{"xor eval", Xor(v("a"), v("b")), Eval, "( a ^ b )"},
		{"implies gr1c", Implies(v("a"), v("b")), GR1C, "( a -> b )"},
		{"equiv gr1c", Equiv(v("a"), v("b")), GR1C, "( a <-> b )"},
		{"implies eval expands", Implies(v("a"), v("b")), Eval, "( (not (a)) or b)"},
		{"equiv eval expands", Equiv(v("a"), v("b")), Eval, "( a and b ) or not ( a or b )"},
		{"eq smv", Cmp(OpEq, v("x"), &Num{Value: 3}), SMV, "( x = 3 )"},
		{"eq promela", Cmp(OpEq, v("x"), &Num{Value: 3}), Promela, "( x == 3 )"},
		{"eq eval", Cmp(OpEq, v("x"), &Num{Value: 3}), Eval, "( x == 3 )"},
		{"const gr1c", Cmp(OpEq, v("act"), &Const{Value: "park"}), GR1C, `( act = "park" )`},
		{"bool gr1c", &Bool{Value: false}, GR1C, "False"},
		{"bool jtlv", &Bool{Value: true}, JTLV, "TRUE"},
		{"arith", Arith(OpAdd, v("x"), &Num{Value: 1}), GR1C, "( x + 1 )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTemporal(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		dialect Dialect
		want    string
	}{
		// gr1c has no next operator: the operand is primed, the
		// operator slot stays empty.
		{"next gr1c primes", Next(v("a")), GR1C, "(  a' )"},
		{"next gr1c primes subtree", Next(And(v("a"), v("b"))), GR1C, "(  ( a' & b' ) )"},
		{"next jtlv", Next(v("a")), JTLV, "( next (a) )"},
		{"next smv", Next(v("a")), SMV, "( X a )"},
		{"always gr1c", Always(v("a")), GR1C, "( [] a )"},
		{"always eventually gr1c", Always(Eventually(v("home"))), GR1C, "( [] ( <> home ) )"},
		{"eventually jtlv", Eventually(v("a")), JTLV, "( <> (a) )"},
		{"until jtlv", Until(v("a"), v("b")), JTLV, "( (a) U (b) )"},
		{"until smv", Until(v("a"), v("b")), SMV, "( a U b )"},
		{"release smv", Release(v("a"), v("b")), SMV, "( a V b )"},
		{"release promela", Release(v("a"), v("b")), Promela, "( a V b )"},
		{"always promela", Always(v("a")), Promela, "( [] a )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		dialect Dialect
	}{
		{"release gr1c", Release(v("a"), v("b")), GR1C},
		{"release jtlv", Release(v("a"), v("b")), JTLV},
		{"until gr1c", Until(v("a"), v("b")), GR1C},
		{"next promela", Next(v("a")), Promela},
		{"next eval", Next(v("a")), Eval},
		{"always eval", Always(v("a")), Eval},
		{"until eval", Until(v("a"), v("b")), Eval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.node, tt.dialect)
			require.Error(t, err)
			assert.True(t, IsUnsupportedOperator(err))

			var ue *UnsupportedOperatorError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.dialect, ue.Dialect)
		})
	}
}

func TestRenderUnsupportedNestedFailsWhole(t *testing.T) {
	// An unsupported operator anywhere in the tree fails the whole
	// render call; no partial text is returned.
	n := And(v("a"), Release(v("b"), v("c")))
	out, err := Render(n, GR1C)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, Size(v("a")))
	assert.Equal(t, 2, Size(Not(v("a"))))
	assert.Equal(t, 5, Size(And(Not(v("a")), Or(v("b"), v("c")))))
}

func TestVars(t *testing.T) {
	n := And(Implies(v("park"), Eventually(v("lot"))), Or(v("home"), v("park")))
	assert.Equal(t, []string{"home", "lot", "park"}, Vars(n))

	assert.Empty(t, Vars(&Bool{Value: true}))
}

func TestTransformRebuildsWithoutMutating(t *testing.T) {
	orig := And(v("a"), Next(v("b")))

	primed := Transform(orig, func(n Node) Node {
		if vn, ok := n.(*Var); ok {
			return &Var{Name: vn.Name + "_p"}
		}
		return n
	})

	got, err := Render(primed, SMV)
	require.NoError(t, err)
	assert.Equal(t, "( a_p & ( X b_p ) )", got)

	// Original tree untouched.
	got, err = Render(orig, SMV)
	require.NoError(t, err)
	assert.Equal(t, "( a & ( X b ) )", got)
}

func TestTransformIdentityCopies(t *testing.T) {
	orig := And(v("a"), v("b"))
	cp := Transform(orig, func(n Node) Node { return n })

	assert.Equal(t, orig, cp)
	assert.NotSame(t, orig, cp)
	assert.NotSame(t, orig.(*Binary).Left, cp.(*Binary).Left)
}

// shape extracts the operator skeleton of a tree by mapping each
// operator to its dialect token and back. Structural equivalence of
// shapes is what round-tripping must preserve; textual forms differ
// between dialects.
func shape(t *testing.T, n Node, d Dialect) Node {
	t.Helper()
	switch x := n.(type) {
	case *Unary:
		tok, err := Token(x.Op, d)
		require.NoError(t, err)
		op, ok := OpForToken(d, tok)
		require.True(t, ok, "token %q has no operator in %s", tok, d)
		return &Unary{Op: op, Operand: shape(t, x.Operand, d)}
	case *Binary:
		tok, err := Token(x.Op, d)
		require.NoError(t, err)
		op, ok := OpForToken(d, tok)
		require.True(t, ok)
		return &Binary{Op: op, Left: shape(t, x.Left, d), Right: shape(t, x.Right, d)}
	default:
		return n
	}
}

func TestTokenRoundTrip(t *testing.T) {
	// Operators {and, or, not, next, always} survive mapping into
	// dialect tokens and back for both solver dialects.
	n := Always(Or(Not(v("a")), Next(And(v("b"), v("c")))))

	for _, d := range []Dialect{GR1C, JTLV} {
		got := shape(t, n, d)
		assert.Equal(t, n, got, "round trip through %s", d)
	}
}

func TestTreeCodecRoundTrip(t *testing.T) {
	n := Always(Implies(v("park"), Eventually(Cmp(OpEq, v("loc"), &Num{Value: 3}))))

	data, err := MarshalTree(n)
	require.NoError(t, err)

	back, err := UnmarshalTree(data)
	require.NoError(t, err)
	assert.Equal(t, n, back)
}

func TestTreeCodecErrors(t *testing.T) {
	_, err := UnmarshalTree([]byte(`{"op":"??","args":[{"var":"a"}]}`))
	assert.ErrorContains(t, err, "unknown operator")

	_, err = UnmarshalTree([]byte(`{"op":"&&","args":[{"var":"a"}]}`))
	assert.ErrorContains(t, err, "expects 2 operands")

	_, err = UnmarshalTree([]byte(`{}`))
	assert.ErrorContains(t, err, "empty formula tree")
}
