package ts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKind(t *testing.T) {
	closed := &System{States: []string{"s0"}, Actions: []string{"go"}}
	k, err := closed.Kind()
	require.NoError(t, err)
	assert.Equal(t, Closed, k)

	open := &System{States: []string{"s0"}, SysActions: []string{"left"}}
	k, err = open.Kind()
	require.NoError(t, err)
	assert.Equal(t, Open, k)

	// No actions at all is a degenerate closed system.
	bare := &System{States: []string{"s0"}}
	k, err = bare.Kind()
	require.NoError(t, err)
	assert.Equal(t, Closed, k)

	mixed := &System{Actions: []string{"go"}, EnvActions: []string{"park"}}
	_, err = mixed.Kind()
	require.Error(t, err)
	var me *MalformedError
	assert.ErrorAs(t, err, &me)
}

func TestOutgoingPreservesOrder(t *testing.T) {
	s := &System{
		States: []string{"s0", "s1", "s2"},
		Transitions: []Transition{
			{From: "s0", To: "s1"},
			{From: "s1", To: "s0"},
			{From: "s0", To: "s2"},
			{From: "s0", To: "s0"},
		},
	}
	out := s.Outgoing("s0")
	require.Len(t, out, 3)
	assert.Equal(t, "s1", out[0].To)
	assert.Equal(t, "s2", out[1].To)
	assert.Equal(t, "s0", out[2].To)

	assert.Empty(t, s.Outgoing("s2"))
}

func TestValidate(t *testing.T) {
	valid := &System{
		States:      []string{"s0", "s1"},
		Initial:     []string{"s0"},
		AP:          []string{"home"},
		StateLabels: map[string][]string{"s1": {"home"}},
		SysActions:  []string{"left"},
		Transitions: []Transition{
			{From: "s0", To: "s1", Label: Label{SysAction: "left"}},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*System)
		want   string
	}{
		{"unknown initial", func(s *System) { s.Initial = []string{"sX"} }, "initial state"},
		{"unknown edge target", func(s *System) { s.Transitions[0].To = "sX" }, "unknown target state"},
		{"unknown sys action", func(s *System) { s.Transitions[0].Label.SysAction = "up" }, "not in alphabet"},
		{"undeclared proposition", func(s *System) { s.StateLabels["s1"] = []string{"lot"} }, "undeclared proposition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &System{
				States:      []string{"s0", "s1"},
				Initial:     []string{"s0"},
				AP:          []string{"home"},
				StateLabels: map[string][]string{"s1": {"home"}},
				SysActions:  []string{"left"},
				Transitions: []Transition{
					{From: "s0", To: "s1", Label: Label{SysAction: "left"}},
				},
			}
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestYAMLShape(t *testing.T) {
	doc := `
states: [s0, s1, s2, s3]
initial: [s0]
ap: [home, lot]
state_labels:
  s2: [home]
  s3: [lot]
sys_actions: [left, right]
transitions:
  - {from: s0, to: s1, sys_action: right}
  - {from: s0, to: s3, sys_action: right}
  - {from: s0, to: s0, sys_action: left}
`
	var s System
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))
	require.NoError(t, s.Validate())

	k, err := s.Kind()
	require.NoError(t, err)
	assert.Equal(t, Open, k)
	assert.Equal(t, []string{"left", "right"}, s.SysActions)
	assert.Equal(t, "right", s.Transitions[0].Label.SysAction)
	assert.Equal(t, []string{"home"}, s.LabelOf("s2"))
	assert.Nil(t, s.LabelOf("s0"))
}
