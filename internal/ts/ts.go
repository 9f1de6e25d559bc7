// Package ts models labeled discrete transition systems: the external
// input consumed by the GR(1) encoder. A system is closed (one action
// alphabet) or open (separate environment and system alphabets over a
// shared state space).
package ts

import (
	"fmt"
)

// Label is the closed record of annotations a transition can carry:
// an action tag from the closed alphabet, or an environment-action
// and/or system-action tag for open systems. Empty string means the
// tag is absent.
type Label struct {
	Action    string `yaml:"action,omitempty" json:"action,omitempty"`
	EnvAction string `yaml:"env_action,omitempty" json:"env_action,omitempty"`
	SysAction string `yaml:"sys_action,omitempty" json:"sys_action,omitempty"`
}

// Transition is one labeled edge of the transition relation.
type Transition struct {
	From  string `yaml:"from" json:"from"`
	To    string `yaml:"to" json:"to"`
	Label Label  `yaml:",inline" json:"label"`
}

// Kind classifies a system as closed or open.
type Kind int

const (
	Closed Kind = iota
	Open
)

func (k Kind) String() string {
	if k == Open {
		return "open"
	}
	return "closed"
}

// System is a finite labeled transition system. State and action
// identifiers are globally unique strings supplied by the caller.
// Dead states (no outgoing transition) are legal and encoded
// explicitly downstream, never dropped.
type System struct {
	States  []string `yaml:"states" json:"states"`
	Initial []string `yaml:"initial" json:"initial"`

	// AP is the atomic-proposition alphabet; StateLabels attaches a
	// subset of AP to individual states. States absent from the map
	// carry the empty label.
	AP          []string            `yaml:"ap,omitempty" json:"ap,omitempty"`
	StateLabels map[string][]string `yaml:"state_labels,omitempty" json:"state_labels,omitempty"`

	// Actions is the closed-system alphabet; EnvActions/SysActions
	// are the open-system split. Declaring both shapes is malformed.
	Actions    []string `yaml:"actions,omitempty" json:"actions,omitempty"`
	EnvActions []string `yaml:"env_actions,omitempty" json:"env_actions,omitempty"`
	SysActions []string `yaml:"sys_actions,omitempty" json:"sys_actions,omitempty"`

	Transitions []Transition `yaml:"transitions" json:"transitions"`
}

// MalformedError reports a transition system the encoder cannot use.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed transition system: " + e.Reason
}

// Kind classifies the system. A system with EnvActions or SysActions
// declared is open; declaring the closed alphabet alongside the open
// split cannot be classified.
func (s *System) Kind() (Kind, error) {
	open := len(s.EnvActions) > 0 || len(s.SysActions) > 0
	if open && len(s.Actions) > 0 {
		return 0, &MalformedError{
			Reason: "declares both a closed action alphabet and env/sys action alphabets",
		}
	}
	if open {
		return Open, nil
	}
	return Closed, nil
}

// Outgoing returns the transitions leaving state, in declaration order.
func (s *System) Outgoing(state string) []Transition {
	var out []Transition
	for _, tr := range s.Transitions {
		if tr.From == state {
			out = append(out, tr)
		}
	}
	return out
}

// LabelOf returns the atomic propositions attached to state.
func (s *System) LabelOf(state string) []string {
	return s.StateLabels[state]
}

// Validate checks internal consistency: edge endpoints and initial
// states must be declared states, action tags must belong to the
// declared alphabets, and state labels must be declared propositions.
func (s *System) Validate() error {
	states := toSet(s.States)
	aps := toSet(s.AP)

	for _, st := range s.Initial {
		if !states[st] {
			return &MalformedError{Reason: fmt.Sprintf("initial state %q not declared", st)}
		}
	}
	for state, label := range s.StateLabels {
		if !states[state] {
			return &MalformedError{Reason: fmt.Sprintf("labeled state %q not declared", state)}
		}
		for _, ap := range label {
			if !aps[ap] {
				return &MalformedError{Reason: fmt.Sprintf("state %q labeled with undeclared proposition %q", state, ap)}
			}
		}
	}

	actions := toSet(s.Actions)
	envActions := toSet(s.EnvActions)
	sysActions := toSet(s.SysActions)
	for i, tr := range s.Transitions {
		if !states[tr.From] {
			return &MalformedError{Reason: fmt.Sprintf("transition %d: unknown source state %q", i, tr.From)}
		}
		if !states[tr.To] {
			return &MalformedError{Reason: fmt.Sprintf("transition %d: unknown target state %q", i, tr.To)}
		}
		if a := tr.Label.Action; a != "" && !actions[a] {
			return &MalformedError{Reason: fmt.Sprintf("transition %d: action %q not in alphabet", i, a)}
		}
		if a := tr.Label.EnvAction; a != "" && !envActions[a] {
			return &MalformedError{Reason: fmt.Sprintf("transition %d: env action %q not in alphabet", i, a)}
		}
		if a := tr.Label.SysAction; a != "" && !sysActions[a] {
			return &MalformedError{Reason: fmt.Sprintf("transition %d: sys action %q not in alphabet", i, a)}
		}
	}
	return nil
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
