// Package statics keeps the "static members" of types.
//
// Go has no static fields or static methods; package-level variables and
// functions play that role. A Registry ties such variables and functions to
// a type so member lookups can treat them as static declarations of it.
package statics

import (
	"errors"
	"reflect"
	"slices"
	"sync"

	"inspector-binding/internal/common"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("statics: nil reflect.Type provided")
	// ErrEmptyName is returned when an empty member name is provided.
	ErrEmptyName = errors.New("statics: empty name provided")
	// ErrNotPointer is returned when a static value is not a non-nil pointer to a variable.
	ErrNotPointer = errors.New("statics: value must be a non-nil pointer to a variable")
	// ErrNotFunc is returned when a static func is not a non-nil function.
	ErrNotFunc = errors.New("statics: value must be a non-nil function")
	// ErrNotConst is returned when a constant is nil or not comparable.
	ErrNotConst = errors.New("statics: constant must be a non-nil comparable value")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name of a type with a different target.
	ErrConflictingRegistration = errors.New("statics: conflicting registration")
)

// Entry is one static member of a type.
type Entry struct {
	// Owner is the type the member is attached to.
	Owner reflect.Type
	// Name is the member name.
	Name string
	// Value is a pointer to the variable, or the function itself.
	Value reflect.Value
	// Func is true for functions.
	Func bool
	// Const is true for constants; Value then points at a private copy.
	Const bool
}

// TypeEntry is a concrete type offered when a field of an interface type
// picks its implementation.
type TypeEntry struct {
	Type reflect.Type
	// Menu is the slash-separated menu path, e.g. "Weapons/Ranged/Bow".
	Menu string
	// Order sorts menu entries, lower first.
	Order int
}

// Type returns the type of the variable, or the type of the function.
func (e Entry) Type() reflect.Type {
	if e.Func {
		return e.Value.Type()
	}

	return e.Value.Type().Elem()
}

// Registry maps types to their static members.
type Registry struct {
	// mu guards every map below.
	mu sync.RWMutex
	// m holds members per owner type, in registration order.
	m map[reflect.Type][]Entry
	// names maps "alias.Type" and the bare type name to registered owners.
	names map[string]reflect.Type
	// types holds the registered implementations in registration order.
	types []TypeEntry
	// count tracks the number of registered entries.
	count int
	// gen increases with every change to the registered entries.
	gen uint64
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		m:     make(map[reflect.Type][]Entry),
		names: make(map[string]reflect.Type),
	}
}

// Register attaches the variable ptr points to as static field name of t.
// It is idempotent for the same (type, name, pointer) triple.
func (r *Registry) Register(t reflect.Type, name string, ptr any) error {
	v := reflect.ValueOf(ptr)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return ErrNotPointer
	}

	return r.add(t, Entry{Name: name, Value: v})
}

// RegisterConst attaches value as read-only static field name of t.
// Go constants have no address, so the registry keeps its own copy; it is
// idempotent for an equal value.
func (r *Registry) RegisterConst(t reflect.Type, name string, value any) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() || !v.Type().Comparable() {
		return ErrNotConst
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)

	return r.add(t, Entry{Name: name, Value: ptr, Const: true})
}

// RegisterFunc attaches fn as static method name of t.
func (r *Registry) RegisterFunc(t reflect.Type, name string, fn any) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return ErrNotFunc
	}

	return r.add(t, Entry{Name: name, Value: v, Func: true})
}

func (r *Registry) add(t reflect.Type, e Entry) error {
	// Validate inputs early.
	t = common.Deref(t)
	if t == nil {
		return ErrNilType
	}
	if e.Name == "" {
		return ErrEmptyName
	}
	e.Owner = t

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, old := range r.m[t] {
		if old.Name != e.Name {
			continue
		}
		if same(old, e) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	r.m[t] = append(r.m[t], e)
	r.name(t)
	r.count++
	r.gen++

	return nil
}

// RegisterType offers t under the menu path menu; an empty menu falls back to
// the type name. Re-registering t replaces its menu and order.
func (r *Registry) RegisterType(t reflect.Type, menu string, order int) error {
	if t == nil {
		return ErrNilType
	}
	if menu == "" {
		menu = common.Deref(t).Name()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := TypeEntry{Type: t, Menu: menu, Order: order}
	if i := slices.IndexFunc(r.types, func(e TypeEntry) bool { return e.Type == t }); i >= 0 {
		r.types[i] = entry
	} else {
		r.types = append(r.types, entry)
	}
	r.name(common.Deref(t))
	r.gen++

	return nil
}

// Types returns the registered implementation types in registration order.
func (r *Registry) Types() []TypeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.types)
}

// name indexes t by "alias.Type" and by bare name. r.mu must be held.
func (r *Registry) name(t reflect.Type) {
	r.names[common.TypeName(t)] = t
	if _, taken := r.names[t.Name()]; !taken && t.Name() != "" {
		r.names[t.Name()] = t
	}
}

func same(a, b Entry) bool {
	switch {
	case a.Func != b.Func || a.Const != b.Const:
		return false
	case a.Const:
		return a.Value.Elem().Type() == b.Value.Elem().Type() &&
			a.Value.Elem().Interface() == b.Value.Elem().Interface()
	default:
		return a.Value.Pointer() == b.Value.Pointer()
	}
}

// Lookup returns the static members of t in registration order.
func (r *Registry) Lookup(t reflect.Type) []Entry {
	t = common.Deref(t)
	if t == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.m[t]
	out := make([]Entry, len(entries))
	copy(out, entries)

	return out
}

// TypeByName finds a registered owner type by "alias.Type" or by bare name.
// A bare name resolves to the first type registered under it.
func (r *Registry) TypeByName(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.names[name]
	return t, ok
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.count
}

// Generation identifies the current set of entries. It changes whenever an
// entry is added and on Reset, so caches built from Lookup can tell they are
// stale.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.gen
}

// Reset clears all registered entries.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.m = make(map[reflect.Type][]Entry)
	r.names = make(map[string]reflect.Type)
	r.types = nil
	r.count = 0
	r.gen++
}
