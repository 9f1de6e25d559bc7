// Package solver defines the boundary to GR(1) game solvers: the
// synthesis interface, the strategy result shape, and serialization of
// specifications into solver input text. Invoking a solver process is
// out of scope; implementations live with their callers.
package solver

import (
	"context"

	"github.com/reactive-kit/gears/internal/gr1"
	"github.com/reactive-kit/gears/internal/synth"
)

// SynthesisOptions tunes how a solver treats the specification.
type SynthesisOptions struct {
	// IgnoreEnvInit drops the environment's initial-condition
	// formulas before solving.
	IgnoreEnvInit bool
	// IgnoreSysInit drops the system's initial-condition formulas
	// before solving.
	IgnoreSysInit bool
}

// Result is a solver's answer. Strategy is nil when the specification
// is unrealizable.
type Result struct {
	Realizable bool
	Strategy   *Strategy
}

// Strategy is a winning controller in Mealy form: transitions read an
// environment valuation and produce a system valuation.
type Strategy struct {
	States      []string
	Initial     []string
	Transitions []Move
}

// Move is one strategy transition. Inputs and Outputs map variable
// names to rendered values.
type Move struct {
	From    string
	To      string
	Inputs  map[string]string
	Outputs map[string]string
}

// Interface is implemented by concrete solver backends.
type Interface interface {
	Synthesize(ctx context.Context, spec *gr1.Spec, opts SynthesisOptions) (*Result, error)
	CheckRealizable(ctx context.Context, spec *gr1.Spec, opts SynthesisOptions) (bool, error)
}

// CoerceOptions adjusts encoding options to a named solver's
// limitations. The jtlv backend has no integer state or action
// modeling, so those encodings are forced Boolean with a warning.
func CoerceOptions(name string, opts synth.Options) (synth.Options, []synth.Warning, error) {
	switch name {
	case "gr1c":
		return opts, nil, nil
	case "jtlv":
		var warns []synth.Warning
		if !opts.BoolStates {
			opts.BoolStates = true
			warns = append(warns, synth.Warning{
				Code:    synth.WarnSolverCoercion,
				Message: "integer state modeling not available for the jtlv solver, using Boolean states",
			})
		}
		if !opts.BoolActions {
			opts.BoolActions = true
			warns = append(warns, synth.Warning{
				Code:    synth.WarnSolverCoercion,
				Message: "integer action modeling not available for the jtlv solver, using Boolean actions",
			})
		}
		return opts, warns, nil
	}
	return opts, nil, &UnknownSolverError{Name: name}
}
