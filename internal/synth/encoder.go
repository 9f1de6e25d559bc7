package synth

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/reactive-kit/gears/internal/gr1"
	"github.com/reactive-kit/gears/internal/ts"
)

// Options configures one encoding call. The zero value is usable:
// Boolean encodings off (integer variables where sound), no action
// constraint, default variable names, discarded logs.
type Options struct {
	// IgnoreInitial omits the initial-state disjunction, for callers
	// that constrain initial states directly in the hand-written
	// specification.
	IgnoreInitial bool

	// BoolStates selects one Boolean variable per state instead of a
	// single integer-valued variable. Forced on below 3 states.
	BoolStates bool

	// BoolActions selects one Boolean variable per action instead of
	// a single action variable. Forced on without mutual exclusion.
	BoolActions bool

	// Must is the constraint imposed on action variables.
	Must Must

	// StateVar names the integer state variable. Defaults to "loc"
	// when encoding a system and "eloc" when encoding an environment.
	StateVar string

	// EnvActionVar and SysActionVar name the non-Boolean action
	// variables. Defaults: "eact" and "act".
	EnvActionVar string
	SysActionVar string

	// Logger receives warning diagnostics. Nil discards them; the
	// warnings are also returned as values either way.
	Logger *slog.Logger
}

type side int

const (
	sysSide side = iota
	envSide
)

func (o Options) withDefaults(s side) Options {
	if o.StateVar == "" {
		if s == envSide {
			o.StateVar = "eloc"
		} else {
			o.StateVar = "loc"
		}
	}
	if o.EnvActionVar == "" {
		o.EnvActionVar = "eact"
	}
	if o.SysActionVar == "" {
		o.SysActionVar = "act"
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// WarningCode identifies a non-fatal encoding condition.
type WarningCode string

const (
	// WarnNoInitialStates: the model declares no initial states, so
	// the emitted initial formula is the constant False.
	WarnNoInitialStates WarningCode = "no-initial-states"
	// WarnDeadState: a state with no outgoing transitions was
	// encoded as an explicit deadlock clause.
	WarnDeadState WarningCode = "dead-state"
	// WarnEnvDeadState: an environment state with no outgoing
	// transitions makes the assumption False and the specification
	// trivially realizable.
	WarnEnvDeadState WarningCode = "env-dead-state"
	// WarnSolverCoercion: a solver limitation forced an encoding
	// option to a different value.
	WarnSolverCoercion WarningCode = "solver-coercion"
)

// Warning is a non-fatal diagnostic recorded during encoding.
// Encoding proceeds by emitting the documented degenerate formula.
type Warning struct {
	Code    WarningCode
	State   string
	Message string
}

func (w Warning) String() string {
	if w.State != "" {
		return fmt.Sprintf("%s (state %s): %s", w.Code, w.State, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// encoder carries the per-call state: resolved options and collected
// warnings. One encoder per call keeps parallel encodings independent.
type encoder struct {
	opts     Options
	warnings []Warning
}

func (e *encoder) warnf(code WarningCode, state, format string, args ...any) {
	w := Warning{Code: code, State: state, Message: fmt.Sprintf(format, args...)}
	e.warnings = append(e.warnings, w)
	e.opts.Logger.Warn(w.Message, "code", string(code), "state", state)
}

// SysToSpec compiles a transition system describing the system under
// control into its GR(1) representation: guarantees over system
// variables, plus environment-side constraints for open systems.
// The result is not a complete problem specification on its own; it
// is meant to be merged with a hand-written one.
func SysToSpec(m *ts.System, opts Options) (*gr1.Spec, []Warning, error) {
	kind, err := m.Kind()
	if err != nil {
		return nil, nil, err
	}
	e := &encoder{opts: opts.withDefaults(sysSide)}

	var spec *gr1.Spec
	switch kind {
	case ts.Closed:
		spec, err = e.closedToSpec(m, sysSide)
	case ts.Open:
		spec, err = e.sysOpenToSpec(m)
	}
	if err != nil {
		return nil, e.warnings, err
	}
	return spec, e.warnings, nil
}

// EnvToSpec compiles a transition system describing the environment
// into its GR(1) representation: assumptions over environment
// variables. See SysToSpec for details.
func EnvToSpec(m *ts.System, opts Options) (*gr1.Spec, []Warning, error) {
	kind, err := m.Kind()
	if err != nil {
		return nil, nil, err
	}
	e := &encoder{opts: opts.withDefaults(envSide)}

	var spec *gr1.Spec
	switch kind {
	case ts.Closed:
		spec, err = e.closedToSpec(m, envSide)
	case ts.Open:
		spec, err = e.envOpenToSpec(m)
	}
	if err != nil {
		return nil, e.warnings, err
	}
	return spec, e.warnings, nil
}

// closedToSpec encodes a closed system: one action alphabet, all
// declarations on a single side.
func (e *encoder) closedToSpec(m *ts.System, s side) (*gr1.Spec, error) {
	vars := gr1.VarMap{}
	for _, ap := range m.AP {
		vars[ap] = gr1.BoolDomain{}
	}
	var init, trans []string

	actionvar := e.opts.SysActionVar
	if s == envSide {
		actionvar = e.opts.EnvActionVar
	}
	useMutex, minOne, err := e.opts.Must.flags()
	if err != nil {
		return nil, err
	}
	actEnc, err := EncodeActions(m.Actions, actionvar, e.opts.BoolActions, useMutex, minOne)
	if err != nil {
		return nil, err
	}
	mergeVars(vars, actEnc.Vars)
	trans = append(trans, actEnc.Safety...)
	init = append(init, actEnc.Init...)

	stEnc := EncodeStates(m.States, e.opts.StateVar, e.opts.BoolStates)
	mergeVars(vars, stEnc.Vars)
	trans = append(trans, stEnc.Safety...)

	init = append(init, e.initFromTS(m, stEnc.IDs)...)
	trans = append(trans, e.transFromTS(m, stEnc.IDs, edgeIDs{action: actEnc.IDs})...)
	trans = append(trans, apTrans(m, stEnc.IDs)...)

	spec := gr1.New()
	if s == envSide {
		spec.EnvVars = vars
		spec.EnvInit = init
		spec.EnvSafety = trans
	} else {
		spec.SysVars = vars
		spec.SysInit = init
		spec.SysSafety = trans
	}
	return spec, nil
}

// sysOpenToSpec encodes an open system from the system's point of
// view: the state variable and system actions are the system's,
// environment actions are the environment's, and a companion
// environment-safety clause constrains which environment actions the
// transition system actually makes available from each state.
func (e *encoder) sysOpenToSpec(m *ts.System) (*gr1.Spec, error) {
	useMutex, minOne, err := e.opts.Must.flags()
	if err != nil {
		return nil, err
	}

	sysVars := gr1.VarMap{}
	for _, ap := range m.AP {
		sysVars[ap] = gr1.BoolDomain{}
	}
	envVars := gr1.VarMap{}
	var sysInit, sysTrans, envInit, envTrans []string

	sysActEnc, err := EncodeActions(m.SysActions, e.opts.SysActionVar, e.opts.BoolActions, useMutex, minOne)
	if err != nil {
		return nil, err
	}
	mergeVars(sysVars, sysActEnc.Vars)
	sysTrans = append(sysTrans, sysActEnc.Safety...)
	sysInit = append(sysInit, sysActEnc.Init...)

	envActEnc, err := EncodeActions(m.EnvActions, e.opts.EnvActionVar, e.opts.BoolActions, useMutex, minOne)
	if err != nil {
		return nil, err
	}
	mergeVars(envVars, envActEnc.Vars)
	envTrans = append(envTrans, envActEnc.Safety...)
	envInit = append(envInit, envActEnc.Init...)

	stEnc := EncodeStates(m.States, e.opts.StateVar, e.opts.BoolStates)
	mergeVars(sysVars, stEnc.Vars)
	sysTrans = append(sysTrans, stEnc.Safety...)

	sysInit = append(sysInit, e.initFromTS(m, stEnc.IDs)...)
	sysTrans = append(sysTrans, e.transFromTS(m, stEnc.IDs, edgeIDs{
		sysAction: sysActEnc.IDs,
		envAction: envActEnc.IDs,
	})...)
	sysTrans = append(sysTrans, apTrans(m, stEnc.IDs)...)

	envTrans = append(envTrans, e.envTransFromSysTS(m, stEnc.IDs, envActEnc.IDs)...)

	spec := gr1.New()
	spec.SysVars = sysVars
	spec.EnvVars = envVars
	spec.SysInit = sysInit
	spec.EnvInit = envInit
	spec.SysSafety = sysTrans
	spec.EnvSafety = envTrans
	return spec, nil
}

// envOpenToSpec encodes an open system from the environment's point
// of view: the location variable and atomic propositions belong to
// the environment, and the transition relation becomes assumptions
// constraining the next environment state given the previous system
// action.
func (e *encoder) envOpenToSpec(m *ts.System) (*gr1.Spec, error) {
	useMutex, minOne, err := e.opts.Must.flags()
	if err != nil {
		return nil, err
	}

	// APs are tied to environment states here.
	envVars := gr1.VarMap{}
	for _, ap := range m.AP {
		envVars[ap] = gr1.BoolDomain{}
	}
	sysVars := gr1.VarMap{}
	var sysInit, sysTrans, envInit, envTrans []string

	envActEnc, err := EncodeActions(m.EnvActions, e.opts.EnvActionVar, e.opts.BoolActions, useMutex, minOne)
	if err != nil {
		return nil, err
	}
	mergeVars(envVars, envActEnc.Vars)
	envTrans = append(envTrans, envActEnc.Safety...)
	envInit = append(envInit, envActEnc.Init...)

	// The system's actions are declared here too: the caller may not
	// provide a separate system model containing them.
	sysActEnc, err := EncodeActions(m.SysActions, e.opts.SysActionVar, e.opts.BoolActions, useMutex, minOne)
	if err != nil {
		return nil, err
	}
	mergeVars(sysVars, sysActEnc.Vars)
	sysTrans = append(sysTrans, sysActEnc.Safety...)
	sysInit = append(sysInit, sysActEnc.Init...)

	stEnc := EncodeStates(m.States, e.opts.StateVar, e.opts.BoolStates)
	mergeVars(envVars, stEnc.Vars)
	envTrans = append(envTrans, stEnc.Safety...)

	envInit = append(envInit, e.initFromTS(m, stEnc.IDs)...)
	envTrans = append(envTrans, e.envTransFromEnvTS(m, stEnc.IDs, envActEnc.IDs, sysActEnc.IDs)...)
	envTrans = append(envTrans, apTrans(m, stEnc.IDs)...)

	spec := gr1.New()
	spec.SysVars = sysVars
	spec.EnvVars = envVars
	spec.SysInit = sysInit
	spec.EnvInit = envInit
	spec.SysSafety = sysTrans
	spec.EnvSafety = envTrans
	return spec, nil
}

// initFromTS builds the initial-state formulas: a label implication
// per labeled initial state, then the disjunction over initial-state
// identifiers. A model with no initial states yields the constant
// False, which is intentional for guarantees and catastrophic for
// assumptions; the warning says which.
func (e *encoder) initFromTS(m *ts.System, ids map[string]string) []string {
	var init []string
	for _, state := range m.Initial {
		apStr := sprintAPs(m.LabelOf(state), m.AP)
		if apStr == "" {
			continue
		}
		init = append(init, "!("+pstr(ids[state])+") || ("+apStr+")")
	}

	if e.opts.IgnoreInitial {
		return init
	}

	if len(m.Initial) == 0 {
		e.warnf(WarnNoInitialStates, "",
			"no initial states: initial formula is False "+
				"(a guarantee becomes trivially unsatisfiable, an assumption trivially satisfied)")
		return append(init, "False")
	}

	idList := make([]string, len(m.Initial))
	for i, s := range m.Initial {
		idList[i] = ids[s]
	}
	return append(init, disj(idList))
}

// edgeIDs carries the identifier maps applicable to edge labels in
// one encoding direction.
type edgeIDs struct {
	action    map[string]string
	sysAction map[string]string
	envAction map[string]string
}

// transFromTS converts the transition relation into safety formulas:
// per state, being there implies next being in one of its successors,
// conjoined with any action tags on the edge taken. A dead state
// deadlocks explicitly via X(False) so the game stays well-defined.
func (e *encoder) transFromTS(m *ts.System, ids map[string]string, aids edgeIDs) []string {
	var out []string
	for _, from := range m.States {
		precond := pstr(ids[from])

		edges := m.Outgoing(from)
		if len(edges) == 0 {
			e.warnf(WarnDeadState, from, "state %q has no outgoing transitions: encoding explicit deadlock", from)
			out = append(out, precond+" -> X(False)")
			continue
		}

		var cur []string
		for _, tr := range edges {
			post := pstr(ids[tr.To])
			post += conjAction(tr.Label.EnvAction, aids.envAction, false)
			post += conjAction(tr.Label.SysAction, aids.sysAction, false)
			post += conjAction(tr.Label.Action, aids.action, false)
			cur = append(cur, post)
		}
		out = append(out, precond+" -> X("+disj(cur)+")")
	}
	return out
}

// envTransFromSysTS constrains which environment actions may occur
// next from each state, derived from the environment-action tags on
// that state's outgoing edges. Without this the system could be
// credited for blocking environment actions the transition system
// never made available. A dead state forces the environment to choose
// no action at all.
func (e *encoder) envTransFromSysTS(m *ts.System, ids map[string]string, envIDs map[string]string) []string {
	if len(envIDs) == 0 {
		return nil
	}
	var out []string
	for _, from := range m.States {
		precond := pstr(ids[from])

		edges := m.Outgoing(from)
		if len(edges) == 0 {
			out = append(out, precond+" -> X("+conjNeg(idValues(m.EnvActions, envIDs), true)+")")
			continue
		}

		var next []string
		seen := map[string]bool{}
		for _, tr := range edges {
			if tr.Label.EnvAction == "" {
				continue
			}
			id := envIDs[tr.Label.EnvAction]
			if !seen[id] {
				seen[id] = true
				next = append(next, id)
			}
		}
		out = append(out, precond+" -> X("+disj(next)+")")
	}
	return out
}

// envTransFromEnvTS converts an environment model's transitions into
// assumptions on the next environment state given the previous system
// output. An edge with no system-action tag is a free transition,
// available regardless of the system's output; when every edge from a
// state demands some system action, an extra disjunct allows the case
// where the system asserts no action at all. Without it the system
// could falsify the assumption by never asserting any action, making
// the specification vacuously realizable.
func (e *encoder) envTransFromEnvTS(m *ts.System, ids, envIDs, sysIDs map[string]string) []string {
	var out []string
	for _, from := range m.States {
		precond := pstr(ids[from])

		edges := m.Outgoing(from)
		if len(edges) == 0 {
			e.warnf(WarnEnvDeadState, from,
				"environment dead-end at %q: if the system can force it, the assumption becomes False and the specification trivially true", from)
			out = append(out, precond+" -> X(False)")
			continue
		}

		var cur []string
		foundFree := false
		for _, tr := range edges {
			post := "X" + pstr(ids[tr.To])
			post += conjAction(tr.Label.EnvAction, envIDs, true)
			sysPart := conjAction(tr.Label.SysAction, sysIDs, false)
			post += sysPart
			if sysPart == "" {
				foundFree = true
			}
			cur = append(cur, pstr(post))
		}
		if !foundFree && len(sysIDs) > 0 {
			cur = append(cur, conjNeg(idValues(m.SysActions, sysIDs), true))
		}
		out = append(out, pstr(precond)+" -> ("+disj(cur)+")")
	}
	return out
}

// apTrans ties each state to its atomic-proposition label for all
// future time: in this state, exactly the labeled propositions hold.
func apTrans(m *ts.System, ids map[string]string) []string {
	if len(m.AP) == 0 {
		return nil
	}
	var out []string
	for _, state := range m.States {
		tmp := sprintAPs(m.LabelOf(state), m.AP)
		if tmp == "" {
			continue
		}
		out = append(out, "X(("+ids[state]+") -> ("+tmp+"))")
	}
	return out
}

// sprintAPs renders a state label against the full proposition
// alphabet: labeled propositions asserted, the rest negated.
func sprintAPs(label, aps []string) string {
	tmp0 := conjIntersection(aps, label, false)
	tmp1 := conjNegDiff(aps, label, false)
	if tmp0 != "" && tmp1 != "" {
		return tmp0 + " && " + tmp1
	}
	return tmp0 + tmp1
}

// idValues returns the identifier fragments for the given keys in
// declaration order.
func idValues(keys []string, ids map[string]string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if id, ok := ids[k]; ok {
			out = append(out, id)
		}
	}
	return out
}

func mergeVars(dst, src gr1.VarMap) {
	for k, v := range src {
		dst[k] = v
	}
}
