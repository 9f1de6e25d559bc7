// Package synth compiles labeled transition systems into GR(1)
// specifications: variable declarations plus initial and safety
// formulas, ready to merge with a hand-written specification and hand
// to a game solver.
//
// Every encoding call is a deterministic pure function of its inputs.
// Fresh variable names are scoped to the call, so concurrent encodings
// never collide. Degenerate inputs (no initial states, dead states)
// are encoded explicitly and reported as warnings, never raised as
// errors: an unsatisfiable guarantee can be exactly what the caller
// means to model.
//
// Formula strings use the gr1c operator conventions of the ltl
// package's GR1C dialect.
package synth
