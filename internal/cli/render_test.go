package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// []( p -> X q ) in the JSON tree form.
const alwaysImpliesNextTree = `{
  "op": "[]",
  "args": [{
    "op": "->",
    "args": [
      {"var": "p"},
      {"op": "X", "args": [{"var": "q"}]}
    ]
  }]
}`

func TestRenderGR1C(t *testing.T) {
	path := writeFile(t, "formula.json", alwaysImpliesNextTree)

	out, _, err := execute(t, "render", "--dialect", "gr1c", path)
	require.NoError(t, err)
	assert.Equal(t, "( [] ( p -> (  q' ) ) )\n", out)
}

func TestRenderJTLV(t *testing.T) {
	path := writeFile(t, "formula.json", alwaysImpliesNextTree)

	out, _, err := execute(t, "render", "--dialect", "jtlv", path)
	require.NoError(t, err)
	assert.Equal(t, "( [] ( (p) -> ( next (q) ) ) )\n", out)
}

func TestRenderJSONEnvelope(t *testing.T) {
	path := writeFile(t, "formula.json", alwaysImpliesNextTree)

	out, _, err := execute(t, "--format", "json", "render", "--dialect", "smv", path)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   renderResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "smv", resp.Data.Dialect)
	assert.Equal(t, "( [] ( p -> ( X q ) ) )", resp.Data.Formula)
}

func TestRenderUnsupportedOperator(t *testing.T) {
	path := writeFile(t, "formula.json", alwaysImpliesNextTree)

	_, errOut, err := execute(t, "render", "--dialect", "eval", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "eval")
}

func TestRenderUnknownDialect(t *testing.T) {
	path := writeFile(t, "formula.json", alwaysImpliesNextTree)

	_, errOut, err := execute(t, "render", "--dialect", "tla", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "unknown dialect")
}

func TestRenderBadTree(t *testing.T) {
	path := writeFile(t, "formula.json", `{"op": "teleport", "args": []}`)

	_, errOut, err := execute(t, "render", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "teleport")
}
