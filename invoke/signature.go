package invoke

import (
	"errors"
	"reflect"
)

var (
	// ErrNotAFunction is returned by ParseSignature for a type that is not a func.
	ErrNotAFunction = errors.New("provided value is not a function")
	// ErrBadResults is returned by ParseSignature when the results match none
	// of the supported forms.
	ErrBadResults = errors.New("function results are not recognizable")
)

var errorType = reflect.TypeFor[error]()

// Signature classifies the shape of a callable member.
type Signature struct {
	// NumIn is the number of parameters, receiver excluded.
	NumIn int
	// Value is the type of the leading value result, nil when there is none.
	Value reflect.Type
	HasBool bool
	HasErr  bool
}

// ParseSignature inspects ft, skipping the receiver when receiver is true.
//
// Supports results:
//   - ()
//   - (T)
//   - (error)
//   - (T, bool)
//   - (T, error)
//   - (T, bool, error)
func ParseSignature(ft reflect.Type, receiver bool) (Signature, error) {
	if ft == nil || ft.Kind() != reflect.Func {
		return Signature{}, ErrNotAFunction
	}

	sig := Signature{NumIn: ft.NumIn()}
	if receiver {
		sig.NumIn--
	}

	switch ft.NumOut() {
	default:
		return Signature{}, ErrBadResults

	case 0:
		return sig, nil

	case 1:
		if isError(ft.Out(0)) {
			sig.HasErr = true
		} else {
			sig.Value = ft.Out(0)
		}
		return sig, nil

	case 2:
		sig.Value = ft.Out(0)
		last := ft.Out(1)

		switch {
		default:
			return Signature{}, ErrBadResults
		case last.Kind() == reflect.Bool:
			sig.HasBool = true
		case isError(last):
			sig.HasErr = true
		}
		return sig, nil

	case 3:
		tbool, terr := ft.Out(1), ft.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Signature{}, ErrBadResults
		}

		sig.Value = ft.Out(0)
		sig.HasBool = true
		sig.HasErr = true
		return sig, nil
	}
}

// IsAction reports whether the signature takes no parameters.
func (s Signature) IsAction() bool {
	return s.NumIn == 0
}

func isError(t reflect.Type) bool {
	return t == errorType
}
