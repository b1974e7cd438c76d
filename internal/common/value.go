package common

import "reflect"

// ValueOf wraps v in a reflect.Value, passing reflect.Value arguments through.
func ValueOf(v any) reflect.Value {
	if rv, ok := v.(reflect.Value); ok {
		return rv
	}

	return reflect.ValueOf(v)
}

// Indirect follows pointers and interfaces down to a concrete value.
// It returns false when it meets an invalid value or a nil reference.
func Indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		default:
			return v, true
		}
	}

	return reflect.Value{}, false
}

// Deref strips pointer levels off t.
func Deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// First returns the leading element of s, or false when s is empty.
func First[S ~[]E, E any](s S) (E, bool) {
	var zero E
	if len(s) == 0 {
		return zero, false
	}

	return s[0], true
}
