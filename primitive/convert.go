package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"fortio.org/safecast"
)

var (
	// ErrNotNumber is returned when a source or target is not numeric.
	ErrNotNumber = errors.New("value is not a number")
	// ErrOverflow is returned when a number does not fit the target type.
	ErrOverflow = errors.New("number does not fit into the target type")
)

// ToFloat reads any integer or floating-point value as float64.
// Integers are widened without rounding beyond the float64 mantissa.
func ToFloat(v reflect.Value) (float64, error) {
	switch {
	case !v.IsValid():
		return 0, ErrNotNumber
	case v.CanInt():
		return float64(v.Int()), nil
	case v.CanUint():
		return float64(v.Uint()), nil
	case v.CanFloat():
		return v.Float(), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotNumber, v.Type())
	}
}

// ToInt reads any integer or floating-point value as int64, truncating floats.
func ToInt(v reflect.Value) (int64, error) {
	if !v.IsValid() || !FromReflectType(v.Type()).IsNumber() {
		return 0, ErrNotNumber
	}

	return conv[int64](v)
}

// Convert produces a value of type dst from the numeric value v.
//
// Integer to float conversion widens, float to integer conversion truncates
// toward zero, and every narrowing is range checked so the stored type wins.
func Convert(v reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, ErrNotNumber
	}

	srcKind := FromReflectType(v.Type())
	dstKind := FromReflectType(dst)
	if !srcKind.IsNumber() || !dstKind.IsNumber() {
		return reflect.Value{}, fmt.Errorf("%w: cannot convert %s to %s", ErrNotNumber, v.Type(), dst)
	}

	out := reflect.New(dst).Elem()

	switch {
	case dstKind.IsFloat():
		f, err := ToFloat(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if dstKind == KindFloat32 && math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
			return reflect.Value{}, fmt.Errorf("%w: %v into %s", ErrOverflow, f, dst)
		}
		out.SetFloat(f)

	case dstKind.IsSigned():
		n, err := signed(v, dstKind.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v into %s", ErrOverflow, v, dst)
		}
		out.SetInt(n)

	default:
		n, err := unsigned(v, dstKind.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v into %s", ErrOverflow, v, dst)
		}
		out.SetUint(n)
	}

	return out, nil
}

func signed(v reflect.Value, bits int) (int64, error) {
	switch bits {
	case 8:
		n, err := conv[int8](v)
		return int64(n), err
	case 16:
		n, err := conv[int16](v)
		return int64(n), err
	case 32:
		n, err := conv[int32](v)
		return int64(n), err
	default:
		return conv[int64](v)
	}
}

func unsigned(v reflect.Value, bits int) (uint64, error) {
	switch bits {
	case 8:
		n, err := conv[uint8](v)
		return uint64(n), err
	case 16:
		n, err := conv[uint16](v)
		return uint64(n), err
	case 32:
		n, err := conv[uint32](v)
		return uint64(n), err
	default:
		return conv[uint64](v)
	}
}

// conv narrows v into the integer type T, truncating floating-point sources.
func conv[T safecast.Integer](v reflect.Value) (T, error) {
	switch {
	case v.CanInt():
		return safecast.Conv[T](v.Int())
	case v.CanUint():
		return safecast.Conv[T](v.Uint())
	default:
		return safecast.Truncate[T](v.Float())
	}
}
