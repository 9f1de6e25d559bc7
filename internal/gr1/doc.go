// Package gr1 holds the GR(1) specification value: typed variable
// declarations split between environment and system, and six formula
// lists (init/safety/progress per side). It is the wire shape
// exchanged with solver collaborators and the merge target for
// encoder output.
package gr1
