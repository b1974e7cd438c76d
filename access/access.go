// Package access reads and writes members described by member.Descriptor.
//
// Fields are read from storage directly, unexported ones included. Properties
// go through their getter and setter methods. Static members read and write the
// registered package-level variable. Numbers cross integer and floating-point
// types with primitive.Convert, so the stored type always wins.
package access

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"inspector-binding/internal/common"
	"inspector-binding/member"
	"inspector-binding/options"
	"inspector-binding/primitive"
)

var (
	// ErrInaccessible is the base of every access failure below.
	ErrInaccessible = errors.New("member is not accessible")
	// ErrNilOwner means the instance, or an embedded pointer on the way to
	// the declaring level, is nil.
	ErrNilOwner = fmt.Errorf("%w: nil owner", ErrInaccessible)
	// ErrNotAddressable means a write was requested on a value copy.
	ErrNotAddressable = fmt.Errorf("%w: owner is not addressable", ErrInaccessible)
	// ErrReadOnly means a property has no setter.
	ErrReadOnly = fmt.Errorf("%w: property has no setter", ErrInaccessible)
	// ErrConstant means a write targeted a registered constant.
	ErrConstant = fmt.Errorf("%w: member is a constant", ErrInaccessible)
	// ErrWriteOnly means a property has no getter.
	ErrWriteOnly = fmt.Errorf("%w: property has no getter", ErrInaccessible)
	// ErrNotStorage means the descriptor names a method, which holds no value.
	ErrNotStorage = fmt.Errorf("%w: methods hold no value", ErrInaccessible)
	// ErrIncompatible means the assigned value cannot be stored in the member type.
	ErrIncompatible = errors.New("value is not assignable to member")
)

// Get reads the member d of inst.
//
// A getter returning (T, error) yields its error unchanged.
func Get(inst reflect.Value, d member.Descriptor) (reflect.Value, error) {
	switch {
	case d.Kind == options.MemberMethod:
		return reflect.Value{}, fmt.Errorf("%s: %w", d.Name, ErrNotStorage)

	case d.Static:
		return d.Value.Elem(), nil

	case d.MapKey:
		owner, ok := common.Indirect(inst)
		if !ok || owner.Kind() != reflect.Map {
			return reflect.Value{}, fmt.Errorf("%s: %w", d.Name, ErrNilOwner)
		}
		out := owner.MapIndex(reflect.ValueOf(d.Name).Convert(owner.Type().Key()))
		if !out.IsValid() {
			return reflect.Value{}, fmt.Errorf("%s: %w", d.Name, member.ErrMemberNotFound)
		}
		return out, nil

	case d.Kind == options.MemberProperty:
		if d.Getter == "" {
			return reflect.Value{}, fmt.Errorf("%s: %w", d.Name, ErrWriteOnly)
		}
		m, err := method(inst, d, d.Getter, false)
		if err != nil {
			return reflect.Value{}, err
		}
		out := m.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return reflect.Value{}, out[1].Interface().(error)
		}
		return out[0], nil

	default:
		owner, _, err := readable(inst)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", d.Name, err)
		}
		return field(owner, d)
	}
}

// Set writes v into the member d of inst. inst must be a pointer, or an
// addressable value, unless d is static or a property.
//
// A setter returning an error yields it unchanged.
func Set(inst reflect.Value, d member.Descriptor, v reflect.Value) error {
	switch {
	case d.Kind == options.MemberMethod:
		return fmt.Errorf("%s: %w", d.Name, ErrNotStorage)

	case d.Static && d.ReadOnly:
		return fmt.Errorf("%s: %w", d.Name, ErrConstant)

	case d.Static:
		dst := d.Value.Elem()
		val, err := assign(v, dst.Type())
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		dst.Set(val)
		return nil

	case d.MapKey:
		owner, ok := common.Indirect(inst)
		if !ok || owner.Kind() != reflect.Map || owner.IsNil() {
			return fmt.Errorf("%s: %w", d.Name, ErrNilOwner)
		}
		val, err := assign(v, owner.Type().Elem())
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		owner.SetMapIndex(reflect.ValueOf(d.Name).Convert(owner.Type().Key()), val)
		return nil

	case d.Kind == options.MemberProperty:
		if d.Setter == "" {
			return fmt.Errorf("%s: %w", d.Name, ErrReadOnly)
		}
		m, err := method(inst, d, d.Setter, true)
		if err != nil {
			return err
		}
		val, err := assign(v, m.Type().In(0))
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		out := m.Call([]reflect.Value{val})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil

	default:
		owner, ok := common.Indirect(inst)
		if !ok {
			return fmt.Errorf("%s: %w", d.Name, ErrNilOwner)
		}
		if !owner.CanAddr() {
			return fmt.Errorf("%s: %w", d.Name, ErrNotAddressable)
		}
		dst, err := field(owner, d)
		if err != nil {
			return err
		}
		val, err := assign(v, dst.Type())
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		dst.Set(val)
		return nil
	}
}

// Receiver returns the value of the level declaring d inside inst, made
// addressable when possible so pointer-receiver methods are reachable.
func Receiver(inst reflect.Value, d member.Descriptor) (reflect.Value, error) {
	recv, _, err := receiver(inst, d)
	return recv, err
}

// receiver is Receiver that also reports whether recv lives in a private
// copy of inst, where writes would be lost.
func receiver(inst reflect.Value, d member.Descriptor) (recv reflect.Value, detached bool, err error) {
	owner, copied, err := readable(inst)
	if err != nil {
		return reflect.Value{}, false, fmt.Errorf("%s: %w", d.Name, err)
	}

	if len(d.Level) == 0 {
		return owner, copied, nil
	}

	recv, err = owner.FieldByIndexErr(d.Level)
	if err != nil {
		return reflect.Value{}, false, fmt.Errorf("%s: %w", d.Name, ErrNilOwner)
	}
	if recv.Kind() == reflect.Pointer {
		if recv.IsNil() {
			return reflect.Value{}, false, fmt.Errorf("%s: %w", d.Name, ErrNilOwner)
		}
		recv = recv.Elem()
	}

	return recv, copied && !throughPointer(owner.Type(), d.Level), nil
}

// Method returns the bound method name declared at d's level of inst.
//
// A pointer-receiver method needs inst to be a pointer or an addressable
// value; on a bare struct value it fails with ErrNotAddressable rather than
// run against a copy.
func Method(inst reflect.Value, d member.Descriptor, name string) (reflect.Value, error) {
	return method(inst, d, name, true)
}

// method binds name on the receiver of d. Unless mutates is false, pointer
// methods are refused on a detached copy.
func method(inst reflect.Value, d member.Descriptor, name string, mutates bool) (reflect.Value, error) {
	recv, detached, err := receiver(inst, d)
	if err != nil {
		return reflect.Value{}, err
	}

	if m := recv.MethodByName(name); m.IsValid() {
		return m, nil
	}
	if recv.CanAddr() && (!detached || !mutates) {
		if m := recv.Addr().MethodByName(name); m.IsValid() {
			return m, nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%s: %w", name, ErrNotAddressable)
}

// readable follows inst to a struct value, copying it into addressable
// storage when it is a bare value so unexported fields stay reachable.
// copied reports such a copy.
func readable(inst reflect.Value) (owner reflect.Value, copied bool, err error) {
	owner, ok := common.Indirect(inst)
	if !ok {
		return reflect.Value{}, false, ErrNilOwner
	}

	if !owner.CanAddr() {
		cp := reflect.New(owner.Type()).Elem()
		cp.Set(owner)
		return cp, true, nil
	}

	return owner, false, nil
}

// throughPointer reports whether the field path index leaves t through a
// pointer.
func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return true
		}
		t = f.Type
	}

	return false
}

func field(owner reflect.Value, d member.Descriptor) (reflect.Value, error) {
	f, err := owner.FieldByIndexErr(d.FieldIndex)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s: %w", d.Name, ErrNilOwner)
	}

	if !f.CanInterface() && f.CanAddr() {
		// Alias unexported storage so it can be read and written.
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}

	return f, nil
}

// assign adapts v to type t. Invalid v stands for the zero value, numbers
// convert with primitive.Convert, anything else must be assignable.
func assign(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	switch {
	case !v.IsValid():
		return reflect.Zero(t), nil
	case v.Type().AssignableTo(t):
		return v, nil
	case primitive.IsNumberType(v.Type()) && primitive.IsNumberType(t):
		return primitive.Convert(v, t)
	case v.Type().ConvertibleTo(t) && v.Kind() == t.Kind():
		return v.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrIncompatible, v.Type(), t)
	}
}
