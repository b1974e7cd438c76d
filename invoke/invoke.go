// Package invoke finds and calls zero-parameter methods by name.
//
// Absence and arity problems come back as member.ErrMemberNotFound and
// member.ErrArityMismatch. Whatever the called code does is not caught: a
// trailing error result is returned as is, and a panic unwinds through Call.
package invoke

import (
	"fmt"
	"reflect"

	"inspector-binding/access"
	"inspector-binding/internal/common"
	"inspector-binding/member"
	"inspector-binding/options"
)

// Result holds the outcome of a successful call.
type Result struct {
	Method    member.Descriptor
	Signature Signature
	Values    []reflect.Value
}

// First returns the leading value result, if the method has one.
func (r Result) First() (reflect.Value, bool) {
	if r.Signature.Value == nil || len(r.Values) == 0 {
		return reflect.Value{}, false
	}

	return r.Values[0], true
}

// Ok reports the trailing bool result, true when the method has none.
func (r Result) Ok() bool {
	if !r.Signature.HasBool {
		return true
	}

	i := 1
	if r.Signature.Value == nil {
		i = 0
	}
	if i >= len(r.Values) {
		return false
	}

	return r.Values[i].Bool()
}

// Invoker resolves method names through a member.Index.
type Invoker struct {
	ix *member.Index
}

// New creates an Invoker over ix.
func New(ix *member.Index) *Invoker {
	return &Invoker{ix: ix}
}

// Find selects the method to call for name on type t.
//
// Instance methods come first, most-derived first, then static funcs. The
// first candidate without parameters wins.
func (iv *Invoker) Find(t reflect.Type, name string) (member.Descriptor, error) {
	named := iv.ix.Named(t, options.MemberMethod, name)
	if len(named) == 0 {
		return member.Descriptor{}, fmt.Errorf("%s.%s: %w", common.TypeName(common.Deref(t)), name, member.ErrMemberNotFound)
	}

	for _, static := range []bool{false, true} {
		for _, d := range named {
			if d.Static == static && d.NumIn == 0 {
				return d, nil
			}
		}
	}

	return member.Descriptor{}, fmt.Errorf("%s.%s: %w", common.TypeName(common.Deref(t)), name, member.ErrArityMismatch)
}

// Invoke calls the zero-parameter method name on inst.
//
// Pointer-receiver methods need inst to be a pointer or an addressable
// value. On a bare struct value they fail with access.ErrNotAddressable
// instead of mutating a copy.
func (iv *Invoker) Invoke(inst any, name string) (Result, error) {
	v := common.ValueOf(inst)

	var t reflect.Type
	if v.IsValid() {
		t = v.Type()
	}

	d, err := iv.Find(t, name)
	if err != nil {
		return Result{}, err
	}

	return iv.Call(v, d)
}

// Call invokes the method described by d on inst.
func (iv *Invoker) Call(inst reflect.Value, d member.Descriptor) (Result, error) {
	if d.Kind != options.MemberMethod {
		return Result{}, fmt.Errorf("%s: %w", d.Name, member.ErrShapeMismatch)
	}

	fn := d.Value
	if !d.Static {
		var err error
		if fn, err = access.Method(inst, d, d.Name); err != nil {
			return Result{}, err
		}
	}

	if fn.Type().NumIn() != 0 {
		return Result{}, fmt.Errorf("%s: %w", d.Name, member.ErrArityMismatch)
	}

	// Unrecognized result lists are still callable; only Values is filled.
	sig, _ := ParseSignature(fn.Type(), false)
	res := Result{Method: d, Signature: sig, Values: fn.Call(nil)}

	if sig.HasErr {
		if last := res.Values[len(res.Values)-1]; !last.IsNil() {
			return res, last.Interface().(error)
		}
	}

	return res, nil
}

// Bind returns a closure calling d on inst; each call resolves the receiver
// again so the closure follows later writes to inst.
func (iv *Invoker) Bind(inst reflect.Value, d member.Descriptor) func() (Result, error) {
	return func() (Result, error) {
		return iv.Call(inst, d)
	}
}
