package decor

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"inspector-binding/binding"
	"inspector-binding/internal/diagnostic"
	"inspector-binding/primitive"
	"inspector-binding/statics"
)

// EverythingLabel names the flags toggle covering every other flag.
const EverythingLabel = "Everything"

func (c *evaluation) enumFlag() Model {
	field, err := c.ev.engine.Value(c.root, c.path)
	if err != nil {
		return c.fail(err)
	}

	kind := primitive.FromReflectType(field.Type())
	if !kind.IsInteger() {
		return c.shape("enumflag needs an integer field")
	}

	reg := c.ev.engine.Statics()
	t := field.Type()
	if from := c.d.Arg("from", ""); from != "" {
		var found bool
		if reg != nil {
			t, found = reg.TypeByName(from)
		}
		if !found {
			return c.notRegistered(fmt.Sprintf("type %q has no registered constants", from))
		}
	}

	bits := kind.Bits()
	all := ^uint64(0) >> (64 - bits)
	pattern := func(v reflect.Value) uint64 {
		if v.CanInt() {
			return uint64(v.Int()) & all
		}
		return v.Uint() & all
	}

	m := EnumModel{Label: c.label, Flags: c.d.Arg("flags", "") == "true"}

	var (
		sum       uint64
		everyFlag bool
	)
	if m.Flags {
		m.Labels = append(m.Labels, EverythingLabel)
		m.Values = append(m.Values, 0)
	}

	if reg != nil {
		for _, e := range reg.Lookup(t) {
			if e.Func || !primitive.FromReflectType(e.Type()).IsInteger() {
				continue
			}

			v := pattern(e.Value.Elem())
			label := DisplayName(e.Name)
			if m.Flags {
				switch v {
				case 0:
					continue
				case all:
					m.Labels[0] = label
					everyFlag = true
					continue
				}
				sum |= v
			}

			m.Labels = append(m.Labels, label)
			m.Values = append(m.Values, v)
		}
	}

	if len(m.Labels) == 0 || (m.Flags && len(m.Labels) == 1) {
		return c.notRegistered(fmt.Sprintf("%s has no registered integer constants", t))
	}

	m.Mask = pattern(field)
	if m.Flags {
		m.Values[0] = sum
		if m.Mask == all {
			m.Mask = sum
		}
	}

	m.set = func(mask uint64) error {
		if m.Flags && mask == sum && everyFlag {
			mask = all
		}

		out := reflect.New(field.Type()).Elem()
		if kind.IsSigned() {
			out.SetInt(int64(mask<<(64-bits)) >> (64 - bits))
		} else {
			out.SetUint(mask)
		}

		return c.write(out)
	}

	return m
}

func (c *evaluation) subclass() Model {
	field, err := c.ev.engine.Value(c.root, c.path)
	if err != nil {
		return c.fail(err)
	}

	iface := field.Type()
	if iface.Kind() != reflect.Interface {
		return c.shape("subclass needs a field of interface type")
	}

	reg := c.ev.engine.Statics()
	if reg == nil {
		return c.notRegistered(fmt.Sprintf("no types registered for %s", iface))
	}

	var impls []statics.TypeEntry
	for _, e := range reg.Types() {
		switch {
		case e.Type.Implements(iface):
		case e.Type.Kind() != reflect.Pointer && reflect.PointerTo(e.Type).Implements(iface):
			e.Type = reflect.PointerTo(e.Type)
		default:
			continue
		}
		impls = append(impls, e)
	}
	if len(impls) == 0 {
		return c.notRegistered(fmt.Sprintf("no registered type implements %s", iface))
	}

	slices.SortStableFunc(impls, func(a, b statics.TypeEntry) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), strings.Compare(a.Menu, b.Menu))
	})

	m := SubclassModel{
		Label:   c.label,
		Options: []SubclassOption{{Menu: []string{binding.NullLabel}}},
		set: func(v reflect.Value) error {
			return c.write(v)
		},
	}
	for _, e := range impls {
		m.Options = append(m.Options, SubclassOption{Menu: strings.Split(e.Menu, "/"), Type: e.Type})
	}

	m.Selected = -1
	if field.IsNil() {
		m.Selected = 0
	} else {
		dyn := field.Elem().Type()
		for i, o := range m.Options {
			if o.Type == dyn {
				m.Selected = i
				break
			}
		}
	}

	return m
}

func (c *evaluation) notRegistered(msg string) Model {
	return c.warn(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     diagnostic.CodeMemberNotFound,
		Message:  msg,
	})
}
