package binding

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"inspector-binding/internal/common"
)

const (
	// NullLabel labels options whose value or label is nil.
	NullLabel = "<null>"
	// EmptyLabel labels options whose label is blank.
	EmptyLabel = "<empty>"
)

// Option is one labeled value of an Enumerable source.
type Option struct {
	Label string
	Value any
}

// OptionLister is implemented by sources that label their own values.
type OptionLister interface {
	Options() []Option
}

// ListValue is an ordered list of labeled values, the explicit way to give a
// list source its own labels.
type ListValue[T any] struct {
	items []Option
}

// Add appends value under label.
func (l *ListValue[T]) Add(label string, value T) *ListValue[T] {
	l.items = append(l.items, Option{Label: labelOf(label), Value: value})
	return l
}

// Options implements OptionLister.
func (l *ListValue[T]) Options() []Option {
	if l == nil {
		return nil
	}

	return slices.Clone(l.items)
}

// Index returns the position of the first option holding value, or -1.
func Index(opts []Option, value any) int {
	return slices.IndexFunc(opts, func(o Option) bool {
		return equal(o.Value, value)
	})
}

// enumerate lists the options of a source value.
//
// Slices, arrays and iterator funcs keep their order. Maps with string or
// numeric keys are ordered by key and labeled by it. iter.Seq2 funcs label
// values by their keys.
func enumerate(v reflect.Value) ([]Option, bool) {
	if lister, ok := asLister(v); ok {
		return lister.Options(), true
	}

	v, ok := common.Indirect(v)
	if !ok {
		return nil, false
	}

	var opts []Option

	switch {
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		for _, elem := range v.Seq2() {
			opts = append(opts, optionOf(elem))
		}

	case v.Kind() == reflect.Map:
		keys := v.MapKeys()
		if !sortKeys(keys) {
			return nil, false
		}
		for _, k := range keys {
			opts = append(opts, Option{Label: labelOf(fmt.Sprint(k.Interface())), Value: interfaceOf(v.MapIndex(k))})
		}

	case v.Kind() == reflect.Func && v.Type().CanSeq2():
		if v.IsNil() {
			return nil, true
		}
		for k, elem := range v.Seq2() {
			opts = append(opts, Option{Label: labelOf(fmt.Sprint(k.Interface())), Value: interfaceOf(elem)})
		}

	case v.Kind() == reflect.Func && v.Type().CanSeq():
		if v.IsNil() {
			return nil, true
		}
		for elem := range v.Seq() {
			opts = append(opts, optionOf(elem))
		}

	default:
		return nil, false
	}

	return opts, true
}

func asLister(v reflect.Value) (OptionLister, bool) {
	if !v.IsValid() {
		return nil, false
	}

	if v.CanInterface() {
		if lister, ok := v.Interface().(OptionLister); ok && !isNil(v) {
			return lister, true
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if lister, ok := v.Addr().Interface().(OptionLister); ok {
			return lister, true
		}
	}

	return nil, false
}

// enumerableType reports whether values of t can be enumerated; interface
// types are decided by their dynamic value.
func enumerableType(t reflect.Type) bool {
	listerType := reflect.TypeFor[OptionLister]()

	switch {
	case t == nil:
		return false
	case t.Implements(listerType), reflect.PointerTo(t).Implements(listerType):
		return true
	case t.Kind() == reflect.Interface:
		return true
	case t.Kind() == reflect.Pointer:
		return enumerableType(t.Elem())
	case t.Kind() == reflect.Slice, t.Kind() == reflect.Array:
		return true
	case t.Kind() == reflect.Map:
		k := t.Key().Kind()
		return k == reflect.String || isNumberKind(k)
	case t.Kind() == reflect.Func:
		return t.CanSeq() || t.CanSeq2()
	default:
		return false
	}
}

func optionOf(elem reflect.Value) Option {
	if isNil(elem) {
		return Option{Label: NullLabel, Value: interfaceOf(elem)}
	}

	val := interfaceOf(elem)
	return Option{Label: labelOf(fmt.Sprint(val)), Value: val}
}

func labelOf(label string) string {
	if strings.TrimSpace(label) == "" {
		return EmptyLabel
	}

	return label
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func sortKeys(keys []reflect.Value) bool {
	if len(keys) == 0 {
		return true
	}

	kind := keys[0].Kind()
	switch {
	case kind == reflect.String:
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) })
	case keys[0].CanInt():
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) })
	case keys[0].CanUint():
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) })
	case keys[0].CanFloat():
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) })
	default:
		return false
	}

	return true
}

func isNumberKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64 && k != reflect.Uintptr
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
