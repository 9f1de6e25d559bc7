package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	a := writeFile(t, "a.json", `{
		"env_vars": {"park": "boolean"},
		"env_prog": ["!park"]
	}`)
	b := writeFile(t, "b.json", `{
		"sys_vars": {"loc": [0, 2]},
		"sys_prog": ["loc = 2"]
	}`)

	out, _, err := execute(t, "combine", a, b)
	require.NoError(t, err)

	var wire struct {
		EnvVars map[string]json.RawMessage `json:"env_vars"`
		SysVars map[string]json.RawMessage `json:"sys_vars"`
		EnvProg []string                   `json:"env_prog"`
		SysProg []string                   `json:"sys_prog"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &wire))
	assert.Contains(t, wire.EnvVars, "park")
	assert.Contains(t, wire.SysVars, "loc")
	assert.Equal(t, []string{"!park"}, wire.EnvProg)
	assert.Equal(t, []string{"loc = 2"}, wire.SysProg)
}

func TestCombinePretty(t *testing.T) {
	a := writeFile(t, "a.json", `{"sys_prog": ["x"]}`)
	b := writeFile(t, "b.json", `{"sys_prog": ["y"]}`)

	out, _, err := execute(t, "combine", "--pretty", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "SYS PROGRESS")
	assert.Contains(t, out, "\tx\n")
	assert.Contains(t, out, "\ty\n")
}

func TestCombineConflict(t *testing.T) {
	a := writeFile(t, "a.json", `{"sys_vars": {"loc": [0, 2]}}`)
	b := writeFile(t, "b.json", `{"sys_vars": {"loc": [0, 5]}}`)

	_, errOut, err := execute(t, "combine", a, b)
	require.Error(t, err)
	assert.Contains(t, errOut, "loc")
}

func TestCombineMissingFile(t *testing.T) {
	a := writeFile(t, "a.json", `{"sys_prog": ["x"]}`)

	_, errOut, err := execute(t, "combine", a, "missing.json")
	require.Error(t, err)
	assert.Contains(t, errOut, "missing.json")
}
