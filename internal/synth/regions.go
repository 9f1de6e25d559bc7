package synth

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/reactive-kit/gears/internal/gr1"
)

// Partition is a proposition-preserving partition of a continuous
// state space into finitely many regions, as produced by an
// abstraction step. Regions are identified by index.
type Partition struct {
	// Regions is the number of cells. Zero makes AugmentRegions a
	// no-op.
	Regions int

	// VarPrefix names the per-cell Boolean variables; cell i becomes
	// prefix_i. Defaults to "cellID".
	VarPrefix string

	// Props maps a proposition symbol to the cells where it holds.
	// Each mapped symbol is replaced throughout the specification by
	// the disjunction of its cells and removed from the system
	// variables.
	Props map[string][]int

	// Adjacency[from] lists the cells reachable from cell from in one
	// step of the abstracted dynamics.
	Adjacency [][]int
}

func (p Partition) cell(i int) string {
	prefix := p.VarPrefix
	if prefix == "" {
		prefix = "cellID"
	}
	return prefix + "_" + strconv.Itoa(i)
}

func (p Partition) validate() error {
	if p.Regions < 0 {
		return &EncodingOptionError{Reason: "negative region count"}
	}
	for sym, cells := range p.Props {
		for _, c := range cells {
			if c < 0 || c >= p.Regions {
				return &EncodingOptionError{Reason: fmt.Sprintf("proposition %q maps to cell %d, out of range", sym, c)}
			}
		}
	}
	if len(p.Adjacency) > p.Regions {
		return &EncodingOptionError{Reason: "adjacency rows exceed region count"}
	}
	for from, tos := range p.Adjacency {
		for _, to := range tos {
			if to < 0 || to >= p.Regions {
				return &EncodingOptionError{Reason: fmt.Sprintf("adjacency from cell %d to cell %d, out of range", from, to)}
			}
		}
	}
	return nil
}

// AugmentRegions returns a copy of base extended with the partition:
// one Boolean system variable per cell with mutual exclusion enforced
// explicitly (the gr1c solver has no native region domain), safety
// formulas restricting cell-to-cell moves to the adjacency relation,
// and every mapped proposition replaced by the disjunction of its
// cells. base is not modified.
func AugmentRegions(base *gr1.Spec, p Partition) (*gr1.Spec, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	out := base.Clone()
	if p.Regions == 0 {
		return out, nil
	}

	for i := 0; i < p.Regions; i++ {
		out.SysVars[p.cell(i)] = gr1.BoolDomain{}
	}

	// Substitute primed occurrences first so the unprimed pass cannot
	// split sym' into (disjunction)'.
	syms := make([]string, 0, len(p.Props))
	for sym := range p.Props {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	for _, sym := range syms {
		cells := p.Props[sym]
		sub, subNext := "False", "False"
		if len(cells) > 0 {
			cur := make([]string, len(cells))
			nxt := make([]string, len(cells))
			for i, c := range cells {
				cur[i] = p.cell(c)
				nxt[i] = p.cell(c) + "'"
			}
			sub = strings.Join(cur, " | ")
			subNext = strings.Join(nxt, " | ")
		}
		substituteSymbol(out, sym+"'", subNext)
		substituteSymbol(out, sym, sub)
		delete(out.SysVars, sym)
	}

	for from, tos := range p.Adjacency {
		nxt := make([]string, len(tos))
		for i, to := range tos {
			nxt[i] = p.cell(to) + "'"
		}
		out.SysSafety = append(out.SysSafety,
			p.cell(from)+" -> ("+strings.Join(nxt, " | ")+")")
	}

	out.SysInit = append(out.SysInit, cellMutex(p, false))
	out.SysSafety = append(out.SysSafety, cellMutex(p, true))
	return out, nil
}

// cellMutex builds the exactly-one formula over all cells, one
// disjunct per cell, primed for the safety variant.
func cellMutex(p Partition, primed bool) string {
	tick := ""
	if primed {
		tick = "'"
	}
	var b strings.Builder
	for i := 0; i < p.Regions; i++ {
		if i > 0 {
			b.WriteString("\n| ")
		}
		b.WriteString("(" + p.cell(i) + tick)
		if p.Regions > 1 {
			var others []string
			for j := 0; j < p.Regions; j++ {
				if j != i {
					others = append(others, "(!"+p.cell(j)+tick+")")
				}
			}
			b.WriteString(" & " + strings.Join(others, " & "))
		}
		b.WriteString(")")
	}
	return b.String()
}

// substituteSymbol replaces whole-word occurrences of sym in every
// formula list with the parenthesized replacement.
func substituteSymbol(s *gr1.Spec, sym, replacement string) {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(sym))
	if !strings.HasSuffix(sym, "'") {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(sym) + `\b`)
	}
	apply := func(list []string) {
		for i, f := range list {
			list[i] = re.ReplaceAllString(f, "("+replacement+")")
		}
	}
	apply(s.EnvInit)
	apply(s.SysInit)
	apply(s.EnvSafety)
	apply(s.SysSafety)
	apply(s.EnvProg)
	apply(s.SysProg)
}
