package access

import (
	"fmt"
	"reflect"

	"inspector-binding/internal/common"
	"inspector-binding/member"
	"inspector-binding/primitive"
)

// Float reads a numeric member as float64. Integers widen losslessly.
func Float(inst reflect.Value, d member.Descriptor) (float64, error) {
	v, err := Get(inst, d)
	if err != nil {
		return 0, err
	}

	v, _ = common.Indirect(v)
	f, err := primitive.ToFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", d.Name, err)
	}

	return f, nil
}

// Int reads a numeric member as int64. Floats truncate toward zero.
func Int(inst reflect.Value, d member.Descriptor) (int64, error) {
	v, err := Get(inst, d)
	if err != nil {
		return 0, err
	}

	v, _ = common.Indirect(v)
	n, err := primitive.ToInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", d.Name, err)
	}

	return n, nil
}

// SetNumber stores the number x into a numeric member, converting it to the
// member type. primitive.ErrOverflow is returned when the member type cannot
// hold x.
func SetNumber(inst reflect.Value, d member.Descriptor, x any) error {
	v := reflect.ValueOf(x)
	if !v.IsValid() || !primitive.IsNumberType(v.Type()) {
		return fmt.Errorf("%s: %w", d.Name, primitive.ErrNotNumber)
	}

	if d.Type != nil && !primitive.IsNumberType(d.Type) {
		return fmt.Errorf("%s: %w: member is %s", d.Name, primitive.ErrNotNumber, d.Type)
	}

	return Set(inst, d, v)
}
