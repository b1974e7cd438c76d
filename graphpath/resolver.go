package graphpath

import (
	"errors"
	"fmt"
	"reflect"

	"inspector-binding/access"
	"inspector-binding/internal/common"
	"inspector-binding/member"
	"inspector-binding/options"
)

// ErrPathUnresolved means a segment could not be walked: a nil owner on the
// way, a missing member, or an index past the end of a sequence.
var ErrPathUnresolved = errors.New("path could not be resolved")

// Resolver walks object graphs. It only reads.
type Resolver struct {
	ix *member.Index
}

// NewResolver creates a Resolver looking members up through ix.
func NewResolver(ix *member.Index) *Resolver {
	return &Resolver{ix: ix}
}

// Owner returns the instance owning the last field of path inside root.
func (r *Resolver) Owner(root any, path string) (reflect.Value, error) {
	p, err := Parse(path)
	if err != nil {
		return reflect.Value{}, err
	}

	return r.OwnerOf(root, p)
}

// OwnerOf is Owner for a parsed path. A nil owner is unresolved.
func (r *Resolver) OwnerOf(root any, p Path) (reflect.Value, error) {
	owner, err := r.walk(root, p.Owner())
	if err != nil {
		return reflect.Value{}, err
	}

	if _, ok := common.Indirect(owner); !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s: nil owner", ErrPathUnresolved, p.Owner())
	}

	return owner, nil
}

// Value returns the value at path inside root, the last field included.
func (r *Resolver) Value(root any, path string) (reflect.Value, error) {
	p, err := Parse(path)
	if err != nil {
		return reflect.Value{}, err
	}

	return r.ValueOf(root, p)
}

// ValueOf is Value for a parsed path.
func (r *Resolver) ValueOf(root any, p Path) (reflect.Value, error) {
	return r.walk(root, p)
}

func (r *Resolver) walk(root any, p Path) (reflect.Value, error) {
	cur := common.ValueOf(root)
	if _, ok := common.Indirect(cur); !ok {
		return reflect.Value{}, fmt.Errorf("%w: nil root", ErrPathUnresolved)
	}

	for _, seg := range p.Segments {
		next, err := r.Step(cur, seg)
		if err != nil {
			return reflect.Value{}, err
		}
		cur = next
	}

	return cur, nil
}

// Step resolves a single segment on cur. Chaining Step over the segments of
// a path is the same as resolving the whole path.
func (r *Resolver) Step(cur reflect.Value, seg Segment) (reflect.Value, error) {
	v, err := r.named(cur, seg.Name)
	if err != nil {
		return reflect.Value{}, err
	}

	if !seg.Indexed {
		return v, nil
	}

	elem, ok := nth(v, seg.Index)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s: no element %d", ErrPathUnresolved, seg, seg.Index)
	}

	return elem, nil
}

// named reads the field, map entry or property called name on cur.
func (r *Resolver) named(cur reflect.Value, name string) (reflect.Value, error) {
	owner, ok := common.Indirect(cur)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s: nil owner", ErrPathUnresolved, name)
	}

	var d member.Descriptor

	switch owner.Kind() {
	case reflect.Map:
		if owner.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("%w: %s: map keys are not strings", ErrPathUnresolved, name)
		}
		d = member.MapKey(owner.Type(), name)

	case reflect.Struct:
		if d, ok = r.lookup(owner.Type(), name); !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s: %w", ErrPathUnresolved, name, member.ErrMemberNotFound)
		}

	default:
		return reflect.Value{}, fmt.Errorf("%w: %s: cannot step into %s", ErrPathUnresolved, name, owner.Type())
	}

	v, err := access.Get(owner, d)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s: %w", ErrPathUnresolved, name, err)
	}

	return v, nil
}

// lookup prefers a field, then a property matching exactly, then a property
// matching case-insensitively.
func (r *Resolver) lookup(t reflect.Type, name string) (member.Descriptor, bool) {
	if d, ok := r.ix.Nearest(t, options.MemberField, name); ok {
		return d, true
	}
	if d, ok := r.ix.Nearest(t, options.MemberProperty, name); ok {
		return d, true
	}

	var (
		best  member.Descriptor
		found bool
	)
	for _, d := range r.ix.Find(t, options.MemberProperty, member.ByNameFold(name)) {
		if !found || d.Rank <= best.Rank {
			best, found = d, true
		}
	}

	return best, found
}

// nth advances an iterator over v index times and returns the element it
// stops at. Slices, arrays and iterator funcs are sequences; maps are not,
// their order is unspecified.
func nth(v reflect.Value, index int) (reflect.Value, bool) {
	v, ok := common.Indirect(v)
	if !ok || (v.Kind() == reflect.Func && v.IsNil()) {
		return reflect.Value{}, false
	}

	i := 0

	switch {
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		for _, elem := range v.Seq2() {
			if i == index {
				return elem, true
			}
			i++
		}

	case v.Kind() == reflect.Func && v.Type().CanSeq2():
		for _, elem := range v.Seq2() {
			if i == index {
				return elem, true
			}
			i++
		}

	case v.Kind() == reflect.Func && v.Type().CanSeq():
		for elem := range v.Seq() {
			if i == index {
				return elem, true
			}
			i++
		}
	}

	return reflect.Value{}, false
}
