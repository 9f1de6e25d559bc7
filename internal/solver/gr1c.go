package solver

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/reactive-kit/gears/internal/gr1"
)

// WriteGR1C serializes a specification into gr1c input text: ENV and
// SYS variable declarations followed by the six formula sections.
// Boolean variables appear bare, integer ranges as name [lo,hi].
// Enumerated domains have no gr1c syntax; encode with Boolean or
// integer variables first.
func WriteGR1C(w io.Writer, spec *gr1.Spec) error {
	env, err := gr1cVarList(spec.EnvVars)
	if err != nil {
		return err
	}
	sys, err := gr1cVarList(spec.SysVars)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("ENV:" + env + ";\n")
	b.WriteString("SYS:" + sys + ";\n")
	b.WriteString("\n")
	writeSection(&b, "ENVINIT", spec.EnvInit, "")
	writeSection(&b, "ENVTRANS", spec.EnvSafety, "[]")
	writeSection(&b, "ENVGOAL", spec.EnvProg, "[]<>")
	b.WriteString("\n")
	writeSection(&b, "SYSINIT", spec.SysInit, "")
	writeSection(&b, "SYSTRANS", spec.SysSafety, "[]")
	writeSection(&b, "SYSGOAL", spec.SysProg, "[]<>")

	_, err = io.WriteString(w, b.String())
	return err
}

func gr1cVarList(vars gr1.VarMap) (string, error) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		switch d := vars[name].(type) {
		case gr1.BoolDomain:
			b.WriteString(" " + name)
		case gr1.IntRange:
			fmt.Fprintf(&b, " %s [%d,%d]", name, d.Lo, d.Hi)
		default:
			return "", &UnsupportedDomainError{Var: name, Domain: vars[name]}
		}
	}
	return b.String(), nil
}

// writeSection emits one gr1c section: each formula parenthesized,
// prefixed with the section's temporal operator, joined by
// conjunction. An empty list leaves the section empty, which gr1c
// reads as True.
func writeSection(b *strings.Builder, name string, formulas []string, prefix string) {
	b.WriteString(name + ":")
	for i, f := range formulas {
		if i > 0 {
			b.WriteString(" &")
		}
		b.WriteString(" " + prefix + "(" + f + ")")
	}
	b.WriteString(";\n")
}
