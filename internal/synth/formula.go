package synth

import "strings"

func pstr(s string) string { return "(" + s + ")" }

func disj(xs []string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = "(" + x + ")"
	}
	return strings.Join(parts, " || ")
}

func conj(xs []string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = "(" + x + ")"
	}
	return strings.Join(parts, " && ")
}

// conjIntersection conjoins the members of set0 that occur in set1,
// preserving set0 order.
func conjIntersection(set0, set1 []string, parenth bool) string {
	keep := toSet(set1)
	var parts []string
	for _, x := range set0 {
		if !keep[x] {
			continue
		}
		if parenth {
			parts = append(parts, "("+x+")")
		} else {
			parts = append(parts, x)
		}
	}
	return strings.Join(parts, " && ")
}

// conjNeg conjoins the negations of all members of set0.
func conjNeg(set0 []string, parenth bool) string {
	var parts []string
	for _, x := range set0 {
		if parenth {
			parts = append(parts, "!("+x+")")
		} else {
			parts = append(parts, "!"+x)
		}
	}
	return strings.Join(parts, " && ")
}

// conjNegDiff conjoins the negations of the members of set0 not in
// set1, preserving set0 order.
func conjNegDiff(set0, set1 []string, parenth bool) string {
	skip := toSet(set1)
	var parts []string
	for _, x := range set0 {
		if skip[x] {
			continue
		}
		if parenth {
			parts = append(parts, "!("+x+")")
		} else {
			parts = append(parts, "!"+x)
		}
	}
	return strings.Join(parts, " && ")
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// Mutex returns a formula list asserting at most one of the labels
// holds. Empty labels are skipped; zero or one remaining labels need
// no constraint and yield an empty list.
func Mutex(labels []string) []string {
	var kept []string
	for _, x := range labels {
		if x != "" {
			kept = append(kept, x)
		}
	}
	if len(kept) <= 1 {
		return nil
	}
	terms := make([]string, len(kept))
	for i, x := range kept {
		terms[i] = "!(" + x + ") || (" + conjNegDiff(kept, []string{x}, true) + ")"
	}
	return []string{conj(terms)}
}

// ExactlyOne returns a formula list asserting exactly one of the
// labels holds: an n-ary xor, stronger than Mutex. Zero labels yield
// no constraint; a single label is asserted unconditionally.
func ExactlyOne(labels []string) []string {
	if len(labels) <= 1 {
		var out []string
		for _, x := range labels {
			out = append(out, pstr(x))
		}
		return out
	}
	terms := make([]string, len(labels))
	for i, x := range labels {
		terms[i] = "(" + x + ") && " + conjNegDiff(labels, []string{x}, true)
	}
	return []string{"(" + disj(terms) + ")"}
}

// conjAction renders the contribution of one action tag to an edge
// postcondition: empty for an absent tag, otherwise the action's
// identifier formula conjoined in, primed when nxt is set.
func conjAction(action string, ids map[string]string, nxt bool) string {
	if action == "" {
		return ""
	}
	if ids != nil {
		action = ids[action]
	}
	if action == "" {
		return ""
	}
	if nxt {
		return " && X" + pstr(action)
	}
	return " && " + pstr(action)
}
