package options

import "fmt"

//go:generate go tool stringer -type=ShapeEnum -linecomment -output=shape_string.go

// ShapeEnum is the semantic category a decoration expects from a named source.
type ShapeEnum int

const (
	_ ShapeEnum = iota // skip zero value, use it as a default (invalid) value for ShapeEnum

	ShapeNumber     // number
	ShapeEnumerable // enumerable
	ShapeAction     // action
)

// ParseShape parses the textual form produced by ShapeEnum.String.
func ParseShape(s string) (ShapeEnum, error) {
	for _, shape := range []ShapeEnum{ShapeNumber, ShapeEnumerable, ShapeAction} {
		if shape.String() == s {
			return shape, nil
		}
	}

	return 0, fmt.Errorf("unknown shape %q (want number, enumerable or action)", s)
}
