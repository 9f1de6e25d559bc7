package gr1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// VarMap maps variable names to their domains.
type VarMap map[string]Domain

// Spec is a GR(1) specification: an assumption/guarantee pair of
// Boolean games over typed variables. The six formula lists are
// implicitly conjoined. This is also the wire shape handed to solver
// collaborators; formula strings use gr1c operator conventions.
//
// A Spec is immutable after the merge step that produced it. Combine
// never modifies its inputs.
type Spec struct {
	EnvVars VarMap `json:"env_vars"`
	SysVars VarMap `json:"sys_vars"`

	EnvInit   []string `json:"env_init"`
	SysInit   []string `json:"sys_init"`
	EnvSafety []string `json:"env_safety"`
	SysSafety []string `json:"sys_safety"`
	EnvProg   []string `json:"env_prog"`
	SysProg   []string `json:"sys_prog"`
}

// New returns an empty specification with allocated variable maps.
func New() *Spec {
	return &Spec{EnvVars: VarMap{}, SysVars: VarMap{}}
}

// Clone returns a deep copy.
func (s *Spec) Clone() *Spec {
	out := New()
	for k, v := range s.EnvVars {
		out.EnvVars[k] = v
	}
	for k, v := range s.SysVars {
		out.SysVars[k] = v
	}
	out.EnvInit = append([]string(nil), s.EnvInit...)
	out.SysInit = append([]string(nil), s.SysInit...)
	out.EnvSafety = append([]string(nil), s.EnvSafety...)
	out.SysSafety = append([]string(nil), s.SysSafety...)
	out.EnvProg = append([]string(nil), s.EnvProg...)
	out.SysProg = append([]string(nil), s.SysProg...)
	return out
}

// Combine merges two specifications: union of variable declarations
// and concatenation of each formula list (list concatenation is
// conjunction). Redeclaring a variable with the same domain on the
// same side is allowed; anything else is a ConflictingDeclarationError.
// Duplicate formulas are allowed, merely redundant.
func Combine(a, b *Spec) (*Spec, error) {
	out := a.Clone()

	if err := mergeVars(out.EnvVars, b.EnvVars); err != nil {
		return nil, err
	}
	if err := mergeVars(out.SysVars, b.SysVars); err != nil {
		return nil, err
	}
	for name := range out.EnvVars {
		if _, ok := out.SysVars[name]; ok {
			return nil, &ConflictingDeclarationError{Name: name}
		}
	}

	out.EnvInit = append(out.EnvInit, b.EnvInit...)
	out.SysInit = append(out.SysInit, b.SysInit...)
	out.EnvSafety = append(out.EnvSafety, b.EnvSafety...)
	out.SysSafety = append(out.SysSafety, b.SysSafety...)
	out.EnvProg = append(out.EnvProg, b.EnvProg...)
	out.SysProg = append(out.SysProg, b.SysProg...)
	return out, nil
}

func mergeVars(dst, src VarMap) error {
	for name, dom := range src {
		if have, ok := dst[name]; ok {
			if !DomainsEqual(have, dom) {
				return &ConflictingDeclarationError{Name: name, A: have, B: dom}
			}
			continue
		}
		dst[name] = dom
	}
	return nil
}

// Pretty returns a human-readable dump of the specification for
// diagnostics. It is not a solver input format.
func (s *Spec) Pretty() string {
	var b strings.Builder
	writeVars := func(title string, vars VarMap) {
		b.WriteString(title + ":\n")
		if len(vars) == 0 {
			b.WriteString("\t(none)\n")
			return
		}
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "\t%s : %s\n", name, vars[name])
		}
	}
	writeFormulas := func(title string, formulas []string) {
		b.WriteString(title + ":\n")
		if len(formulas) == 0 {
			b.WriteString("\t(none)\n")
			return
		}
		for _, f := range formulas {
			b.WriteString("\t" + f + "\n")
		}
	}

	b.WriteString(strings.Repeat("-", 60) + "\n")
	writeVars("ENVIRONMENT VARIABLES", s.EnvVars)
	writeVars("SYSTEM VARIABLES", s.SysVars)
	writeFormulas("ENV INIT", s.EnvInit)
	writeFormulas("ENV SAFETY", s.EnvSafety)
	writeFormulas("ENV PROGRESS", s.EnvProg)
	writeFormulas("SYS INIT", s.SysInit)
	writeFormulas("SYS SAFETY", s.SysSafety)
	writeFormulas("SYS PROGRESS", s.SysProg)
	b.WriteString(strings.Repeat("-", 60) + "\n")
	return b.String()
}

// MarshalJSON emits the variable map in wire form with sorted keys,
// so serialization is deterministic.
func (m VarMap) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		dom, err := MarshalDomain(m[name])
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		buf.Write(dom)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the wire form of a variable map.
func (m *VarMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = make(VarMap, len(raw))
	for name, r := range raw {
		dom, err := UnmarshalDomain(r)
		if err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		(*m)[name] = dom
	}
	return nil
}
