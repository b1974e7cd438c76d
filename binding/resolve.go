package binding

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"inspector-binding/access"
	"inspector-binding/internal/common"
	"inspector-binding/internal/match"
	"inspector-binding/invoke"
	"inspector-binding/member"
	"inspector-binding/options"
	"inspector-binding/primitive"
)

// Source resolves the named source name on inst for the wanted shape.
//
// Candidates are tried in order: a field (or map entry), a property, then a
// zero-parameter method, each most-derived first. The first candidate that
// can serve the shape wins. When candidates exist but none fits, the first
// mismatch is reported as WrongShape; with no candidate at all the result is
// NotFound.
//
// The error is non-nil only when user code fails while producing the value:
// a getter or method returning an error. Panics are not recovered.
//
// Pass inst as a pointer when actions or setters must reach it. A bare
// struct value is read through a copy, and a pointer-receiver action on it
// fails with access.ErrNotAddressable when invoked.
func (e *Engine) Source(inst any, name string, want options.ShapeEnum) (ResolvedSource, error) {
	rs, err := e.source(common.ValueOf(inst), name, want)
	if err != nil {
		e.logger.Debug("source target failed",
			slog.String("source", name),
			slog.String("shape", want.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	e.logger.Debug("source resolved",
		slog.String("source", name),
		slog.String("shape", want.String()),
		slog.String("result", fmt.Sprintf("%T", rs)),
	)

	return rs, nil
}

// NumberOr resolves a numeric source, falling back to def when name is empty
// or nothing by that name exists. WrongShape is still returned as is.
func (e *Engine) NumberOr(inst any, name string, def float64) (ResolvedSource, error) {
	fallback := Number{Source: name, Value: def, Default: true}
	if name == "" {
		return fallback, nil
	}

	rs, err := e.Source(inst, name, options.ShapeNumber)
	if err != nil {
		return nil, err
	}

	if _, missing := rs.(NotFound); missing {
		return fallback, nil
	}

	return rs, nil
}

func (e *Engine) source(v reflect.Value, name string, want options.ShapeEnum) (ResolvedSource, error) {
	if name == "" {
		return NotFound{Source: name, Want: want}, nil
	}

	t := typeOf(v)

	var wrong *WrongShape
	note := func(w WrongShape) {
		if wrong == nil {
			wrong = &w
		}
	}

	for _, d := range e.storage(v, t, name) {
		rs, w, err := e.fromStorage(v, d, want)
		if err != nil {
			return nil, err
		}
		if rs != nil {
			return rs, nil
		}
		note(w)
	}

	d, err := e.invoker.Find(t, name)
	switch {
	case err == nil:
		rs, w, err := e.fromMethod(v, d, want)
		if err != nil {
			return nil, err
		}
		if rs != nil {
			return rs, nil
		}
		note(w)

	case errors.Is(err, member.ErrArityMismatch):
		w := WrongShape{Reason: fmt.Sprintf("method %s cannot have parameters", name), Cause: member.ErrArityMismatch}
		if d, ok := common.First(e.index.Named(t, options.MemberMethod, name)); ok {
			w.Member = d
		}
		note(w)
	}

	if wrong != nil {
		wrong.Source, wrong.Want = name, want
		return *wrong, nil
	}

	return NotFound{Source: name, Want: want, Suggestions: e.suggest(v, t, name)}, nil
}

// storage lists the map entry, field and property called name, in that order.
func (e *Engine) storage(v reflect.Value, t reflect.Type, name string) []member.Descriptor {
	var out []member.Descriptor

	if owner, ok := common.Indirect(v); ok && isStringMap(owner.Type()) {
		key := reflect.ValueOf(name).Convert(owner.Type().Key())
		if owner.MapIndex(key).IsValid() {
			out = append(out, member.MapKey(owner.Type(), name))
		}
	}

	for _, kind := range []options.MemberEnum{options.MemberField, options.MemberProperty} {
		if d, ok := e.index.Nearest(t, kind, name); ok {
			out = append(out, d)
		}
	}

	return out
}

func (e *Engine) fromStorage(v reflect.Value, d member.Descriptor, want options.ShapeEnum) (ResolvedSource, WrongShape, error) {
	if want == options.ShapeAction {
		t := d.Type
		if t != nil && t.Kind() == reflect.Interface {
			val, err := access.Get(v, d)
			if err != nil {
				return nil, mismatch(d, "%s %s is unreadable: %v", d.Kind, d.Name, err), nil
			}
			t = nil
			if val.Kind() == reflect.Interface && !val.IsNil() {
				t = val.Elem().Type()
			}
		}
		if !callable(t) {
			return nil, mismatch(d, "%s %s is %s, not a func()", d.Kind, d.Name, typeName(t)), nil
		}
		return Action{Source: d.Name, Member: d, call: e.funcCall(v, d)}, WrongShape{}, nil
	}

	if !fits(d.Type, want) {
		return nil, mismatch(d, "%s %s is %s, not %s", d.Kind, d.Name, d.Type, article(want)), nil
	}

	val, err := access.Get(v, d)
	if err != nil {
		if errors.Is(err, access.ErrInaccessible) {
			return nil, mismatch(d, "%s %s is unreadable: %v", d.Kind, d.Name, err), nil
		}
		return nil, WrongShape{}, err
	}

	return shaped(d, val, want)
}

func (e *Engine) fromMethod(v reflect.Value, d member.Descriptor, want options.ShapeEnum) (ResolvedSource, WrongShape, error) {
	if want == options.ShapeAction {
		return Action{Source: d.Name, Member: d, call: e.invoker.Bind(v, d)}, WrongShape{}, nil
	}

	if d.Type == nil {
		return nil, mismatch(d, "method %s returns nothing, not %s", d.Name, article(want)), nil
	}
	if !fits(d.Type, want) {
		return nil, mismatch(d, "method %s returns %s, not %s", d.Name, d.Type, article(want)), nil
	}

	res, err := e.invoker.Call(v, d)
	if err != nil {
		if errors.Is(err, access.ErrInaccessible) {
			return nil, mismatch(d, "method %s is unreachable: %v", d.Name, err), nil
		}
		return nil, WrongShape{}, err
	}

	val, _ := res.First()
	return shaped(d, val, want)
}

// shaped builds the variant for a value already read from d.
func shaped(d member.Descriptor, val reflect.Value, want options.ShapeEnum) (ResolvedSource, WrongShape, error) {
	switch want {
	case options.ShapeNumber:
		num, ok := common.Indirect(val)
		if ok && primitive.IsNumberType(num.Type()) {
			f, _ := primitive.ToFloat(num)
			return Number{
				Source:  d.Name,
				Value:   f,
				Integer: primitive.FromReflectType(num.Type()).IsInteger(),
				Member:  d,
			}, WrongShape{}, nil
		}
		return nil, mismatch(d, "%s %s holds %s, not a number", d.Kind, d.Name, dynamicType(val)), nil

	case options.ShapeEnumerable:
		if opts, ok := enumerate(val); ok {
			return Enumerable{Source: d.Name, Options: opts, Member: d}, WrongShape{}, nil
		}
		return nil, mismatch(d, "%s %s holds %s, not an enumerable", d.Kind, d.Name, dynamicType(val)), nil

	default:
		return nil, mismatch(d, "unknown shape %d", int(want)), nil
	}
}

// funcCall calls the func stored in d, read again on every call.
func (e *Engine) funcCall(v reflect.Value, d member.Descriptor) func() (invoke.Result, error) {
	return func() (invoke.Result, error) {
		fn, err := access.Get(v, d)
		if err != nil {
			return invoke.Result{}, err
		}
		if fn.Kind() == reflect.Interface {
			fn = fn.Elem()
		}
		if !fn.IsValid() || fn.Kind() == reflect.Func && fn.IsNil() {
			return invoke.Result{}, fmt.Errorf("%s: %w", d.Name, ErrNilFunc)
		}
		if !callable(fn.Type()) {
			return invoke.Result{}, fmt.Errorf("%s: %w: holds %s", d.Name, member.ErrShapeMismatch, fn.Type())
		}

		sig, _ := invoke.ParseSignature(fn.Type(), false)
		res := invoke.Result{Method: d, Signature: sig, Values: fn.Call(nil)}
		if sig.HasErr {
			if last := res.Values[len(res.Values)-1]; !last.IsNil() {
				return res, last.Interface().(error)
			}
		}

		return res, nil
	}
}

func (e *Engine) suggest(v reflect.Value, t reflect.Type, name string) []string {
	if e.cfg.Suggestions <= 0 {
		return nil
	}

	names := e.index.Names(t, options.MemberAll)
	if owner, ok := common.Indirect(v); ok && isStringMap(owner.Type()) {
		for _, k := range owner.MapKeys() {
			names = append(names, k.String())
		}
	}

	return match.Suggest(name, names, e.cfg.Suggestions)
}

// fits reports whether values of static type t may serve want; interface
// types are decided by their dynamic value.
func fits(t reflect.Type, want options.ShapeEnum) bool {
	if t == nil {
		return false
	}

	switch want {
	case options.ShapeNumber:
		t = common.Deref(t)
		return primitive.IsNumberType(t) || t.Kind() == reflect.Interface
	case options.ShapeEnumerable:
		return enumerableType(t)
	default:
		return false
	}
}

// callable reports whether t is a func taking no arguments.
func callable(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Func && t.NumIn() == 0
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}

func mismatch(d member.Descriptor, format string, args ...any) WrongShape {
	return WrongShape{
		Member: d,
		Reason: fmt.Sprintf(format, args...),
		Cause:  member.ErrShapeMismatch,
	}
}

func article(shape options.ShapeEnum) string {
	if shape == options.ShapeEnumerable || shape == options.ShapeAction {
		return "an " + shape.String()
	}

	return "a " + shape.String()
}

func dynamicType(v reflect.Value) string {
	if v, ok := common.Indirect(v); ok {
		return v.Type().String()
	}

	return "nil"
}
