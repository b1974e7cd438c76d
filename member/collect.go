package member

import (
	"reflect"
	"runtime"
	"slices"
	"strings"

	"inspector-binding/hierarchy"
	"inspector-binding/options"
	"inspector-binding/statics"
)

// autogenerated is the file name the Go toolchain gives to compiler-made
// method wrappers (promotion through embedding, value methods on pointers).
const autogenerated = "<autogenerated>"

var errorType = reflect.TypeFor[error]()

// collect lists every declaration of kind in the hierarchy, base-first.
func (ix *Index) collect(t reflect.Type, kind options.MemberEnum) []Descriptor {
	levels := ix.walker.Levels(t, hierarchy.DerivedFirst)

	var out []Descriptor
	for rank := len(levels) - 1; rank >= 0; rank-- {
		lvl := levels[rank]

		switch kind {
		case options.MemberField:
			out = append(out, ix.fields(lvl, rank)...)
		case options.MemberProperty:
			out = append(out, ix.properties(lvl, rank)...)
		case options.MemberMethod:
			out = append(out, ix.methods(lvl, rank)...)
		}
	}

	return out
}

func base(lvl hierarchy.Level, rank int) Descriptor {
	return Descriptor{
		DeclaringType: lvl.Type,
		Depth:         lvl.Depth,
		Rank:          rank,
		Level:         lvl.Index,
	}
}

func (ix *Index) fields(lvl hierarchy.Level, rank int) []Descriptor {
	var out []Descriptor

	if lvl.Type.Kind() == reflect.Struct {
		for i := range lvl.Type.NumField() {
			f := lvl.Type.Field(i)
			if !f.IsExported() && !ix.cfg.IncludeUnexported {
				continue
			}

			d := base(lvl, rank)
			d.Kind = options.MemberField
			d.Name = f.Name
			d.Exported = f.IsExported()
			d.Type = f.Type
			d.FieldIndex = append(slices.Clone(lvl.Index), i)
			d.Tag = f.Tag
			out = append(out, d)
		}
	}

	for _, e := range ix.staticsOf(lvl.Type) {
		if e.Func {
			continue
		}

		d := base(lvl, rank)
		d.Kind = options.MemberField
		d.Name = e.Name
		d.Static = true
		d.ReadOnly = e.Const
		d.Exported = isExportedName(e.Name)
		d.Type = e.Type()
		d.Value = e.Value
		out = append(out, d)
	}

	return out
}

func (ix *Index) methods(lvl hierarchy.Level, rank int) []Descriptor {
	var out []Descriptor

	for _, m := range declaredMethods(lvl.Type) {
		d := base(lvl, rank)
		d.Kind = options.MemberMethod
		d.Name = m.Name
		d.Exported = true
		d.Method = m
		d.NumIn = m.Type.NumIn() - 1
		if m.Type.NumOut() > 0 {
			d.Type = m.Type.Out(0)
		}
		out = append(out, d)
	}

	for _, e := range ix.staticsOf(lvl.Type) {
		if !e.Func {
			continue
		}

		ft := e.Value.Type()
		d := base(lvl, rank)
		d.Kind = options.MemberMethod
		d.Name = e.Name
		d.Static = true
		d.Exported = isExportedName(e.Name)
		d.NumIn = ft.NumIn()
		if ft.NumOut() > 0 {
			d.Type = ft.Out(0)
		}
		d.Value = e.Value
		out = append(out, d)
	}

	return out
}

// properties pairs accessor methods declared at one level:
//   - GetX() T               getter of X
//   - SetX(T) [error]        setter of X
//   - X() T                  getter of X only when SetX exists
func (ix *Index) properties(lvl hierarchy.Level, rank int) []Descriptor {
	declared := declaredMethods(lvl.Type)
	byName := make(map[string]reflect.Method, len(declared))
	for _, m := range declared {
		byName[m.Name] = m
	}

	getPrefix, setPrefix := ix.cfg.GetterPrefix, ix.cfg.SetterPrefix

	var (
		names []string
		props = map[string]*Descriptor{}
	)

	ensure := func(name string) *Descriptor {
		if p, ok := props[name]; ok {
			return p
		}
		d := base(lvl, rank)
		d.Kind = options.MemberProperty
		d.Name = name
		d.Exported = true
		props[name] = &d
		names = append(names, name)
		return &d
	}

	for _, m := range declared {
		switch {
		case setPrefix != "" && strings.HasPrefix(m.Name, setPrefix) && len(m.Name) > len(setPrefix) && isSetter(m.Type):
			p := ensure(strings.TrimPrefix(m.Name, setPrefix))
			p.Setter = m.Name
			if p.Type == nil {
				p.Type = m.Type.In(1)
			}

		case getPrefix != "" && strings.HasPrefix(m.Name, getPrefix) && len(m.Name) > len(getPrefix) && isGetter(m.Type):
			p := ensure(strings.TrimPrefix(m.Name, getPrefix))
			p.Getter = m.Name
			p.Type = m.Type.Out(0)
		}
	}

	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		p := props[name]
		if p.Getter == "" {
			if m, ok := byName[name]; ok && isGetter(m.Type) {
				p.Getter = m.Name
				p.Type = m.Type.Out(0)
			}
		}
		out = append(out, *p)
	}

	return out
}

func (ix *Index) staticsOf(t reflect.Type) []statics.Entry {
	if ix.statics == nil {
		return nil
	}

	return ix.statics.Lookup(t)
}

// declaredMethods returns the methods whose code is declared on t itself,
// value receivers first, then pointer receivers, each sorted by name.
// Wrappers promoted from embedded fields are skipped.
func declaredMethods(t reflect.Type) []reflect.Method {
	var (
		out  []reflect.Method
		seen = map[string]bool{}
	)

	embedded := embeddedMethodNames(t)

	for _, mt := range []reflect.Type{t, reflect.PointerTo(t)} {
		for i := range mt.NumMethod() {
			m := mt.Method(i)
			if seen[m.Name] {
				continue
			}
			if embedded[m.Name] && isWrapper(m) {
				continue
			}
			seen[m.Name] = true
			out = append(out, m)
		}
	}

	return out
}

// embeddedMethodNames lists names that t could have promoted from its
// directly embedded fields.
func embeddedMethodNames(t reflect.Type) map[string]bool {
	names := map[string]bool{}
	if t.Kind() != reflect.Struct {
		return names
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}

		ft := f.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		for j := range ft.NumMethod() {
			names[ft.Method(j).Name] = true
		}
	}

	return names
}

func isWrapper(m reflect.Method) bool {
	if !m.Func.IsValid() {
		return false
	}

	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return false
	}

	file, _ := fn.FileLine(fn.Entry())
	return file == autogenerated
}

// isGetter matches func(recv) T and func(recv) (T, error).
func isGetter(ft reflect.Type) bool {
	if ft.NumIn() != 1 {
		return false
	}

	switch ft.NumOut() {
	case 1:
		return ft.Out(0) != errorType
	case 2:
		return ft.Out(1) == errorType
	default:
		return false
	}
}

// isSetter matches func(recv, T) and func(recv, T) error.
func isSetter(ft reflect.Type) bool {
	if ft.NumIn() != 2 {
		return false
	}

	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == errorType
	default:
		return false
	}
}

func isExportedName(name string) bool {
	return name != "" && strings.ToUpper(name[:1]) == name[:1]
}
