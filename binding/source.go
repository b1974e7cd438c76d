package binding

import (
	"errors"

	"inspector-binding/invoke"
	"inspector-binding/member"
	"inspector-binding/options"
)

// ErrNilFunc is returned when an action backed by a func field is called
// while the field is nil.
var ErrNilFunc = errors.New("action func is nil")

// ResolvedSource is the outcome of a named-source lookup: exactly one of
// Number, Enumerable, Action, NotFound or WrongShape.
//
// Consumers dispatch with Visit, so every variant must be handled.
type ResolvedSource interface {
	// SourceName is the name that was looked up.
	SourceName() string
	// Err returns the taxonomy error of a failed lookup, nil otherwise.
	Err() error

	accept(Visitor)
}

// Visitor handles every ResolvedSource variant.
type Visitor interface {
	VisitNumber(Number)
	VisitEnumerable(Enumerable)
	VisitAction(Action)
	VisitNotFound(NotFound)
	VisitWrongShape(WrongShape)
}

// Visit dispatches rs to the matching method of v.
func Visit(rs ResolvedSource, v Visitor) {
	rs.accept(v)
}

// Number is a numeric source.
type Number struct {
	Source string
	Value  float64
	// Integer is true when the member stores an integer type.
	Integer bool
	// Default is true when Value is the caller's fallback literal.
	Default bool
	Member  member.Descriptor
}

// Int returns Value truncated toward zero.
func (n Number) Int() int64 { return int64(n.Value) }

// Enumerable is an ordered list of labeled options.
type Enumerable struct {
	Source  string
	Options []Option
	Member  member.Descriptor
}

// Labels returns the option labels in order.
func (e Enumerable) Labels() []string {
	labels := make([]string, len(e.Options))
	for i, o := range e.Options {
		labels[i] = o.Label
	}

	return labels
}

// Action is a zero-argument invocable.
type Action struct {
	Source string
	Member member.Descriptor

	call func() (invoke.Result, error)
}

// Invoke runs the action. Errors and panics of the target are not caught.
func (a Action) Invoke() (invoke.Result, error) {
	return a.call()
}

// NotFound means nothing by that name exists on the instance.
type NotFound struct {
	Source      string
	Want        options.ShapeEnum
	Suggestions []string
}

// WrongShape means a member by that name exists but cannot serve the
// requested shape.
type WrongShape struct {
	Source string
	Want   options.ShapeEnum
	Member member.Descriptor
	Reason string
	// Cause is member.ErrShapeMismatch or member.ErrArityMismatch.
	Cause error
}

func (n Number) SourceName() string     { return n.Source }
func (e Enumerable) SourceName() string { return e.Source }
func (a Action) SourceName() string     { return a.Source }
func (n NotFound) SourceName() string   { return n.Source }
func (w WrongShape) SourceName() string { return w.Source }

func (Number) Err() error     { return nil }
func (Enumerable) Err() error { return nil }
func (Action) Err() error     { return nil }
func (NotFound) Err() error   { return member.ErrMemberNotFound }

func (w WrongShape) Err() error {
	if w.Cause != nil {
		return w.Cause
	}

	return member.ErrShapeMismatch
}

func (n Number) accept(v Visitor)     { v.VisitNumber(n) }
func (e Enumerable) accept(v Visitor) { v.VisitEnumerable(e) }
func (a Action) accept(v Visitor)     { v.VisitAction(a) }
func (n NotFound) accept(v Visitor)   { v.VisitNotFound(n) }
func (w WrongShape) accept(v Visitor) { v.VisitWrongShape(w) }
