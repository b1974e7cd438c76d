package member

import (
	"errors"
	"fmt"
	"reflect"

	"inspector-binding/internal/common"
	"inspector-binding/options"
)

var (
	// ErrMemberNotFound means no declaration with the requested name exists
	// anywhere in the hierarchy.
	ErrMemberNotFound = errors.New("member could not be found")
	// ErrShapeMismatch means a declaration with the requested name exists but
	// its value or result does not have the requested shape.
	ErrShapeMismatch = errors.New("member has an incompatible shape")
	// ErrArityMismatch means a method with the requested name exists but
	// requires parameters.
	ErrArityMismatch = errors.New("method cannot have parameters")
)

// Descriptor identifies one declared member.
//
// Descriptors are produced by an Index and shared through its cache; treat
// them as read-only.
type Descriptor struct {
	// Kind is exactly one of MemberField, MemberProperty, MemberMethod.
	Kind options.MemberEnum
	// Name is the member name as looked up.
	Name string
	// DeclaringType is the hierarchy level declaring the member.
	DeclaringType reflect.Type
	// Static is true for members coming from a statics.Registry.
	Static bool
	// ReadOnly marks static constants.
	ReadOnly bool
	// Exported mirrors Go visibility of the declaration.
	Exported bool
	// Type is the field type, the property type, or the first method result (nil if none).
	Type reflect.Type
	// Depth is the embedding depth of the declaring level.
	Depth int
	// Rank is the position of the declaring level in derived-first order.
	Rank int
	// Level is the field index path from the concrete type to the declaring level.
	Level []int

	// FieldIndex is the full index path of a field from the concrete type.
	FieldIndex []int
	// Tag is the struct tag of a field.
	Tag reflect.StructTag
	// MapKey is true for dynamic fields backed by a map entry.
	MapKey bool

	// Method is the reflected method, including the receiver as first input.
	Method reflect.Method
	// NumIn is the number of method parameters excluding the receiver.
	NumIn int

	// Getter and Setter name the accessor methods of a property.
	Getter string
	Setter string

	// Value is the registered pointer (static field) or func (static method).
	Value reflect.Value
}

// String returns a compact "kind Type.Name" form used in diagnostics.
func (d Descriptor) String() string {
	prefix := d.Kind.String()
	if d.Static {
		prefix = "static " + prefix
	}

	return fmt.Sprintf("%s %s.%s", prefix, common.TypeName(d.DeclaringType), d.Name)
}

// IsZero reports whether d is the zero Descriptor.
func (d Descriptor) IsZero() bool {
	return d.Kind == options.MemberNone && d.Name == ""
}

// MapKey describes the entry key of a map with string keys as a dynamic field.
// Map entries are per instance, so these descriptors never enter the cache.
func MapKey(mapType reflect.Type, key string) Descriptor {
	return Descriptor{
		Kind:          options.MemberField,
		Name:          key,
		DeclaringType: mapType,
		Exported:      true,
		Type:          mapType.Elem(),
		MapKey:        true,
	}
}
