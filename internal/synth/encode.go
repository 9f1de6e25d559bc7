package synth

import (
	"fmt"
	"strconv"

	"github.com/reactive-kit/gears/internal/gr1"
)

// Must selects the constraint imposed on action variables.
type Must int

const (
	// MustNone leaves action values unconstrained.
	MustNone Must = iota
	// MustMutex allows at most one action to hold at a time.
	MustMutex
	// MustXor requires exactly one action to hold at a time. This
	// prevents the environment from blocking the system by setting
	// all its actions to false.
	MustXor
)

// MustFromString parses a must-constraint token.
func MustFromString(s string) (Must, error) {
	switch s {
	case "", "none":
		return MustNone, nil
	case "mutex":
		return MustMutex, nil
	case "xor":
		return MustXor, nil
	}
	return 0, &EncodingOptionError{Reason: fmt.Sprintf("unknown must-constraint %q", s)}
}

func (m Must) flags() (useMutex, minOne bool, err error) {
	switch m {
	case MustNone:
		return false, false, nil
	case MustMutex:
		return true, false, nil
	case MustXor:
		return true, true, nil
	}
	return false, false, &EncodingOptionError{Reason: fmt.Sprintf("unknown must-constraint value %d", m)}
}

// StateEncoding is the result of turning a state set into GR(1)
// variables: a map from each state to the formula fragment asserting
// "currently in this state", the declared variables, and any safety
// constraints the representation itself requires.
type StateEncoding struct {
	IDs    map[string]string
	Vars   gr1.VarMap
	Safety []string
}

// EncodeStates represents states as either one Boolean variable per
// state or a single bounded-integer variable named statevar. Fewer
// than 3 states always forces the Boolean encoding: the integer-domain
// solvers handle 2-valued integer domains poorly.
func EncodeStates(states []string, statevar string, boolStates bool) StateEncoding {
	if len(states) < 3 {
		boolStates = true
	}
	enc := StateEncoding{IDs: make(map[string]string, len(states)), Vars: gr1.VarMap{}}
	if boolStates {
		for _, s := range states {
			enc.IDs[s] = s
			enc.Vars[s] = gr1.BoolDomain{}
		}
		enc.Safety = append(enc.Safety, ExactlyOne(states)...)
		return enc
	}
	ids, dom := statesToInts(states, statevar)
	enc.IDs = ids
	enc.Vars[statevar] = dom
	return enc
}

// statesToInts maps states to fragments of the form "statevar = #".
// When every state looks like letter+integer the integer part keeps
// the caller's own numbering; otherwise the states become an
// enumerated domain.
func statesToInts(states []string, statevar string) (map[string]string, gr1.Domain) {
	letterInt := len(states) > 0
	for _, s := range states {
		if len(s) < 2 {
			letterInt = false
			break
		}
		if _, err := strconv.Atoi(s[1:]); err != nil {
			letterInt = false
			break
		}
	}

	ids := make(map[string]string, len(states))
	if letterInt {
		for _, s := range states {
			ids[s] = statevar + " = " + s[1:]
		}
		return ids, gr1.IntRange{Lo: 0, Hi: len(states) - 1}
	}
	for _, s := range states {
		ids[s] = statevar + " = " + s
	}
	return ids, gr1.EnumDomain(append([]string(nil), states...))
}

// ActionEncoding is the result of turning an action alphabet into
// GR(1) variables, with any init/safety constraints the chosen
// representation requires. IDs is nil when there are no actions.
type ActionEncoding struct {
	IDs    map[string]string
	Vars   gr1.VarMap
	Init   []string
	Safety []string
}

// EncodeActions represents actions as Boolean variables or as a
// single variable named actionvar. An integer representation is only
// sound when the actions are mutually exclusive, so useMutex=false
// forces Boolean. With N actions the non-Boolean variable takes N+1
// values unless minOne is set: the extra value models "no action
// selected". Requesting minOne without useMutex is a contract
// violation.
func EncodeActions(actions []string, actionvar string, boolActions, useMutex, minOne bool) (ActionEncoding, error) {
	enc := ActionEncoding{Vars: gr1.VarMap{}}
	if len(actions) == 0 {
		return enc, nil
	}
	if minOne && !useMutex {
		return enc, &EncodingOptionError{Reason: "exactly-one constraint requires mutual exclusion"}
	}

	// No mutex means an int variable cannot represent the actions.
	if !useMutex {
		boolActions = true
	}

	if boolActions {
		enc.IDs = make(map[string]string, len(actions))
		for _, a := range actions {
			enc.IDs[a] = a
			enc.Vars[a] = gr1.BoolDomain{}
		}
		values := append([]string(nil), actions...)

		// A single action needs no constraint either way.
		if len(Mutex(values)) == 0 {
			return enc, nil
		}
		switch {
		case useMutex && !minOne:
			enc.Safety = []string{"X (" + Mutex(values)[0] + ")"}
			enc.Init = Mutex(values)
		case useMutex && minOne:
			enc.Safety = []string{"X (" + ExactlyOne(values)[0] + ")"}
			enc.Init = ExactlyOne(values)
		}
		return enc, nil
	}

	ids, dom := actionsToInts(actions, actionvar, minOne)
	enc.IDs = ids
	enc.Vars[actionvar] = dom
	return enc, nil
}

// actionsToInts maps actions to fragments of the form "actionvar = a".
// Integer-valued action alphabets keep their own values with domain
// [0, N] (or [0, N-1] under minOne); string-valued alphabets become an
// enumerated domain, extended with an explicit none sentinel unless
// minOne excludes the all-false case.
func actionsToInts(actions []string, actionvar string, minOne bool) (map[string]string, gr1.Domain) {
	intActions := true
	for _, a := range actions {
		if _, err := strconv.Atoi(a); err != nil {
			intActions = false
			break
		}
	}

	ids := make(map[string]string, len(actions))
	if intActions {
		for _, a := range actions {
			ids[a] = a
		}
		n := len(actions)
		if minOne {
			n--
		}
		return ids, gr1.IntRange{Lo: 0, Hi: n}
	}

	for _, a := range actions {
		ids[a] = actionvar + " = " + a
	}
	dom := append([]string(nil), actions...)
	if !minOne {
		dom = append(dom, actionvar+"none")
	}
	return ids, gr1.EnumDomain(dom)
}
