// Package ltl models linear temporal logic formulas as immutable
// syntax trees and renders them into the concrete syntaxes of the
// downstream tools: the gr1c and JTLV game solvers, the SMV model
// checker, the Promela verifier, and an evaluable boolean-expression
// form.
//
// Rendering is table-driven: one token table per dialect. A formula
// node whose operator is absent from the requested dialect's table
// fails with UnsupportedOperatorError rather than emitting wrong text.
package ltl
