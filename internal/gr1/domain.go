package gr1

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Domain is a sealed interface over the variable domain variants.
// Only BoolDomain, IntRange, and EnumDomain implement it.
//
// Wire form: "boolean" | [lo, hi] | [value, value, ...].
type Domain interface {
	domain()
	String() string
}

// BoolDomain is the two-valued boolean domain.
type BoolDomain struct{}

func (BoolDomain) domain() {}

func (BoolDomain) String() string { return "boolean" }

// IntRange is a bounded integer domain [Lo, Hi], inclusive.
type IntRange struct {
	Lo, Hi int
}

func (IntRange) domain() {}

func (r IntRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Lo, r.Hi)
}

// EnumDomain is an explicit finite enumeration of string values.
type EnumDomain []string

func (EnumDomain) domain() {}

func (e EnumDomain) String() string {
	return "{" + strings.Join(e, ", ") + "}"
}

// DomainsEqual reports whether two domains are the same domain.
// Enum equality is order-sensitive: the value order is part of the
// declaration.
func DomainsEqual(a, b Domain) bool {
	switch x := a.(type) {
	case BoolDomain:
		_, ok := b.(BoolDomain)
		return ok
	case IntRange:
		y, ok := b.(IntRange)
		return ok && x == y
	case EnumDomain:
		y, ok := b.(EnumDomain)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalDomain emits the wire form of a domain.
func MarshalDomain(d Domain) ([]byte, error) {
	switch v := d.(type) {
	case BoolDomain:
		return json.Marshal("boolean")
	case IntRange:
		return json.Marshal([2]int{v.Lo, v.Hi})
	case EnumDomain:
		return json.Marshal([]string(v))
	}
	return nil, fmt.Errorf("unknown domain type %T", d)
}

// UnmarshalDomain parses the wire form of a domain. A two-element
// array of integers is an integer range; any other array is an
// enumeration.
func UnmarshalDomain(data []byte) (Domain, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == `"boolean"` {
		return BoolDomain{}, nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unknown domain %q", s)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("domain must be \"boolean\" or an array: %w", err)
	}
	if len(raw) == 2 {
		lo, loErr := strconv.Atoi(strings.TrimSpace(string(raw[0])))
		hi, hiErr := strconv.Atoi(strings.TrimSpace(string(raw[1])))
		if loErr == nil && hiErr == nil {
			return IntRange{Lo: lo, Hi: hi}, nil
		}
	}
	values := make(EnumDomain, len(raw))
	for i, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			return nil, fmt.Errorf("enum domain value %d: %w", i, err)
		}
		values[i] = s
	}
	return values, nil
}
