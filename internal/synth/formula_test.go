package synth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalProp evaluates a propositional formula in gr1c syntax over the
// given assignment. Just enough grammar for the helper outputs:
// !, &&, ||, parentheses, identifiers.
func evalProp(t *testing.T, formula string, env map[string]bool) bool {
	t.Helper()
	p := &propParser{t: t, in: formula, env: env}
	v := p.or()
	p.skipSpace()
	require.Equal(t, len(p.in), p.pos, "trailing input in %q", formula)
	return v
}

type propParser struct {
	t   *testing.T
	in  string
	pos int
	env map[string]bool
}

func (p *propParser) skipSpace() {
	for p.pos < len(p.in) && p.in[p.pos] == ' ' {
		p.pos++
	}
}

func (p *propParser) eat(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.in[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *propParser) or() bool {
	v := p.and()
	for p.eat("||") {
		w := p.and()
		v = v || w
	}
	return v
}

func (p *propParser) and() bool {
	v := p.unary()
	for p.eat("&&") {
		w := p.unary()
		v = v && w
	}
	return v
}

func (p *propParser) unary() bool {
	if p.eat("!") {
		return !p.unary()
	}
	if p.eat("(") {
		v := p.or()
		require.True(p.t, p.eat(")"), "missing ) in %q", p.in)
		return v
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.in) && (isWord(p.in[p.pos])) {
		p.pos++
	}
	require.Greater(p.t, p.pos, start, "expected identifier at %d in %q", start, p.in)
	name := p.in[start:p.pos]
	v, ok := p.env[name]
	require.True(p.t, ok, "unbound variable %q", name)
	return v
}

func isWord(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func evalAll(t *testing.T, formulas []string, env map[string]bool) bool {
	t.Helper()
	for _, f := range formulas {
		if !evalProp(t, f, env) {
			return false
		}
	}
	return true
}

func TestMutexDegenerate(t *testing.T) {
	assert.Empty(t, Mutex(nil))
	assert.Empty(t, Mutex([]string{""}))
	assert.Empty(t, Mutex([]string{"a"}))
	assert.Empty(t, Mutex([]string{"", "a", ""}))
}

func TestExactlyOneDegenerate(t *testing.T) {
	assert.Empty(t, ExactlyOne(nil))
	assert.Equal(t, []string{"(a)"}, ExactlyOne([]string{"a"}))
}

// Truth-table check over three labels: Mutex holds iff at most one
// label is true, ExactlyOne iff exactly one, and ExactlyOne is
// strictly stronger than Mutex.
func TestMutexExactlyOneSemantics(t *testing.T) {
	labels := []string{"x0", "x1", "x2"}
	mutex := Mutex(labels)
	xor := ExactlyOne(labels)
	require.Len(t, mutex, 1)
	require.Len(t, xor, 1)

	for mask := 0; mask < 8; mask++ {
		env := map[string]bool{}
		count := 0
		for i, l := range labels {
			v := mask&(1<<i) != 0
			env[l] = v
			if v {
				count++
			}
		}
		name := fmt.Sprintf("mask=%03b", mask)
		assert.Equal(t, count <= 1, evalAll(t, mutex, env), "%s mutex", name)
		assert.Equal(t, count == 1, evalAll(t, xor, env), "%s exactly-one", name)
		if evalAll(t, xor, env) {
			assert.True(t, evalAll(t, mutex, env), "%s exactly-one must imply mutex", name)
		}
	}
}

func TestConjAction(t *testing.T) {
	ids := map[string]string{"go": "act = go"}
	assert.Equal(t, "", conjAction("", ids, false))
	assert.Equal(t, " && (act = go)", conjAction("go", ids, false))
	assert.Equal(t, " && X(act = go)", conjAction("go", ids, true))
}
