package options

import (
	"iter"
	"strings"
)

// MemberEnum selects which declaration kinds a member lookup considers.
type MemberEnum int

const (
	MemberField    MemberEnum = 1 << iota // struct field, map key, or registered static value
	MemberProperty                        // accessor pair: GetX / X getter and SetX setter
	MemberMethod                          // declared method or registered static func

	MemberAll  = (1 << iota) - 1 // all member kinds combined
	MemberNone = 0               // no member kinds selected
)

// Has reports whether every kind of other is selected in m.
func (m MemberEnum) Has(other MemberEnum) bool {
	return other != MemberNone && m&other == other
}

// Each yields the single kinds selected in m, in field, property, method order.
func (m MemberEnum) Each() iter.Seq[MemberEnum] {
	return func(yield func(MemberEnum) bool) {
		for _, k := range []MemberEnum{MemberField, MemberProperty, MemberMethod} {
			if m&k == 0 {
				continue
			}
			if !yield(k) {
				return
			}
		}
	}
}

// String returns a human-readable kind list such as "field|method".
func (m MemberEnum) String() string {
	if m == MemberNone {
		return "none"
	}

	var parts []string
	for k := range m.Each() {
		switch k {
		case MemberField:
			parts = append(parts, "field")
		case MemberProperty:
			parts = append(parts, "property")
		case MemberMethod:
			parts = append(parts, "method")
		}
	}

	return strings.Join(parts, "|")
}
