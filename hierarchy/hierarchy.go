// Package hierarchy enumerates the "type hierarchy" of a Go value: the
// concrete type followed by every struct embedded in it, level by level.
//
// Embedding is the Go counterpart of inheritance here. The concrete type is
// the most-derived level (depth 0), its embedded structs are depth 1, their
// embedded structs depth 2, and so on. A declaration at a smaller depth
// shadows the same name at a larger depth, which is exactly Go's promotion
// rule.
package hierarchy

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"inspector-binding/internal/common"
)

// Order selects the direction in which levels are returned.
type Order int

const (
	// DerivedFirst returns the concrete type first. Used when looking for the
	// single nearest declaration of a name.
	DerivedFirst Order = iota
	// BaseFirst returns the deepest embedded types first. Used when collecting
	// every declaration, so a derived declaration is seen last.
	BaseFirst
)

// Level is one type in the hierarchy of a concrete type.
type Level struct {
	// Type is the struct (or named non-struct) type declared at this level. Never a pointer.
	Type reflect.Type
	// Index is the field index path from the concrete type; nil for the concrete type itself.
	Index []int
	// Depth is the embedding depth, 0 for the concrete type.
	Depth int
	// Pointer is true when the level is reached through an embedded pointer.
	Pointer bool
}

// ValueIn returns the value of this level inside v, which must hold the
// concrete type (pointers are followed). A nil embedded pointer on the way
// is reported as an error.
func (l Level) ValueIn(v reflect.Value) (reflect.Value, error) {
	v, ok := common.Indirect(v)
	if !ok {
		return reflect.Value{}, fmt.Errorf("hierarchy: nil value for level %s", l.Type)
	}

	if len(l.Index) == 0 {
		return v, nil
	}

	out, err := v.FieldByIndexErr(l.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("hierarchy: level %s unreachable: %w", l.Type, err)
	}

	if out.Kind() == reflect.Pointer {
		if out.IsNil() {
			return reflect.Value{}, fmt.Errorf("hierarchy: level %s unreachable: nil embedded pointer", l.Type)
		}
		out = out.Elem()
	}

	return out, nil
}

// Walker computes and memoizes type hierarchies.
//
// Entries are computed once per concrete type and never evicted; a fresh
// Walker starts with an empty cache.
type Walker struct {
	mu     sync.RWMutex
	levels map[reflect.Type][]Level
	walks  int
}

// NewWalker creates an empty Walker.
func NewWalker() *Walker {
	return &Walker{levels: make(map[reflect.Type][]Level)}
}

// Levels returns the hierarchy of t in the requested order. Pointer types are
// dereferenced first; a nil type has no levels.
func (w *Walker) Levels(t reflect.Type, order Order) []Level {
	t = common.Deref(t)
	if t == nil {
		return nil
	}

	w.mu.RLock()
	levels, ok := w.levels[t]
	w.mu.RUnlock()

	if !ok {
		levels = w.store(t, walk(t))
	}

	out := slices.Clone(levels)
	if order == BaseFirst {
		slices.Reverse(out)
	}

	return out
}

// LevelsOf is Levels for the dynamic type of v.
func (w *Walker) LevelsOf(v any, order Order) []Level {
	rv, ok := common.Indirect(common.ValueOf(v))
	if !ok {
		return nil
	}

	return w.Levels(rv.Type(), order)
}

// Walks reports how many hierarchies were actually computed.
func (w *Walker) Walks() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.walks
}

func (w *Walker) store(t reflect.Type, levels []Level) []Level {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Re-check under lock; population is idempotent, first writer wins.
	if existing, ok := w.levels[t]; ok {
		return existing
	}

	w.levels[t] = levels
	w.walks++

	return levels
}

// walk performs a breadth-first traversal of embedded struct fields.
// A type reached twice (diamonds, pointer cycles) keeps its shallowest position.
func walk(t reflect.Type) []Level {
	root := Level{Type: t}
	levels := []Level{root}

	if t.Kind() != reflect.Struct {
		return levels
	}

	seen := map[reflect.Type]bool{t: true}
	queue := []Level{root}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i := range cur.Type.NumField() {
			f := cur.Type.Field(i)
			if !f.Anonymous {
				continue
			}

			ft, ptr := f.Type, cur.Pointer
			if ft.Kind() == reflect.Pointer {
				ft, ptr = ft.Elem(), true
			}

			if ft.Kind() != reflect.Struct || seen[ft] {
				continue
			}
			seen[ft] = true

			next := Level{
				Type:    ft,
				Index:   append(slices.Clone(cur.Index), i),
				Depth:   cur.Depth + 1,
				Pointer: ptr,
			}
			levels = append(levels, next)
			queue = append(queue, next)
		}
	}

	return levels
}
