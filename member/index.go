// Package member indexes the declared members of Go types: fields, accessor
// properties and methods, across the embedding hierarchy of a type, plus the
// static members attached to it through a statics.Registry.
//
// Every query is served from a per-(type, kind) cache that is filled once on
// the first miss. Cached lists are base-first, so a most-derived declaration
// is always the last one with its name.
package member

import (
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"

	"inspector-binding/hierarchy"
	"inspector-binding/internal/common"
	"inspector-binding/options"
	"inspector-binding/statics"
)

// Config tunes member discovery.
type Config struct {
	// GetterPrefix marks getter methods of properties, "Get" by default.
	GetterPrefix string
	// SetterPrefix marks setter methods of properties, "Set" by default.
	SetterPrefix string
	// IncludeUnexported indexes unexported struct fields too.
	IncludeUnexported bool
}

// DefaultConfig returns the discovery rules used when none are given.
func DefaultConfig() Config {
	return Config{
		GetterPrefix:      "Get",
		SetterPrefix:      "Set",
		IncludeUnexported: true,
	}
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int
	Misses int
}

type cacheKey struct {
	t    reflect.Type
	kind options.MemberEnum
}

// Index memoizes member lists per (type, kind).
type Index struct {
	walker  *hierarchy.Walker
	statics *statics.Registry
	cfg     Config
	logger  *slog.Logger

	mu     sync.RWMutex
	cache  map[cacheKey][]Descriptor
	gen    uint64 // statics generation the cache was built against
	hits   int
	misses int
}

// Option configures an Index.
type Option func(*Index)

// WithWalker shares a hierarchy walker between several indexes.
func WithWalker(w *hierarchy.Walker) Option {
	return func(ix *Index) {
		if w != nil {
			ix.walker = w
		}
	}
}

// WithStatics attaches a registry of static members.
func WithStatics(r *statics.Registry) Option {
	return func(ix *Index) {
		ix.statics = r
	}
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Index) {
		if l != nil {
			ix.logger = l
		}
	}
}

// WithConfig replaces the discovery rules.
func WithConfig(cfg Config) Option {
	return func(ix *Index) {
		ix.cfg = cfg
	}
}

// NewIndex creates an Index with an empty cache.
func NewIndex(opts ...Option) *Index {
	ix := &Index{
		walker: hierarchy.NewWalker(),
		cfg:    DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cache:  make(map[cacheKey][]Descriptor),
	}

	for _, opt := range opts {
		opt(ix)
	}

	return ix
}

// Walker returns the hierarchy walker used by the index.
func (ix *Index) Walker() *hierarchy.Walker {
	return ix.walker
}

// Statics returns the registry of static members, possibly nil.
func (ix *Index) Statics() *statics.Registry {
	return ix.statics
}

// Config returns the discovery rules of the index.
func (ix *Index) Config() Config {
	return ix.cfg
}

// Find returns every declaration of the requested kinds matching pred,
// base-first within a kind, kinds in field, property, method order.
// A nil pred matches everything; a nil type has no members.
func (ix *Index) Find(t reflect.Type, kinds options.MemberEnum, pred Predicate) []Descriptor {
	t = common.Deref(t)
	if t == nil {
		return nil
	}

	var out []Descriptor
	for kind := range kinds.Each() {
		for _, d := range ix.list(t, kind) {
			if pred == nil || pred(d) {
				out = append(out, d)
			}
		}
	}

	return out
}

// Nearest returns the most-derived declaration of name with the given kind.
func (ix *Index) Nearest(t reflect.Type, kind options.MemberEnum, name string) (Descriptor, bool) {
	var (
		best  Descriptor
		found bool
	)

	for _, d := range ix.Find(t, kind, ByName(name)) {
		// Later entries are at least as derived within a kind.
		if !found || d.Rank <= best.Rank {
			best, found = d, true
		}
	}

	return best, found
}

// Named returns every declaration of name, most-derived first.
func (ix *Index) Named(t reflect.Type, kinds options.MemberEnum, name string) []Descriptor {
	out := ix.Find(t, kinds, ByName(name))
	slices.SortStableFunc(out, func(a, b Descriptor) int {
		return a.Rank - b.Rank
	})

	return out
}

// Names lists distinct member names of the requested kinds, sorted.
func (ix *Index) Names(t reflect.Type, kinds options.MemberEnum) []string {
	var names []string
	for _, d := range ix.Find(t, kinds, nil) {
		names = append(names, d.Name)
	}

	slices.Sort(names)
	return slices.Compact(names)
}

// Stats returns cache counters.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return Stats{Hits: ix.hits, Misses: ix.misses}
}

func (ix *Index) list(t reflect.Type, kind options.MemberEnum) []Descriptor {
	key := cacheKey{t: t, kind: kind}
	gen := ix.staticsGeneration()

	ix.mu.Lock()
	ix.sync(gen)
	cached, ok := ix.cache[key]
	if ok {
		ix.hits++
	}
	ix.mu.Unlock()

	if ok {
		return cached
	}

	list := ix.collect(t, kind)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.sync(gen)
	if gen < ix.gen {
		// Statics changed while collecting; the next call collects again.
		return list
	}

	// Population is idempotent; keep whichever list landed first.
	if existing, ok := ix.cache[key]; ok {
		ix.hits++
		return existing
	}

	ix.cache[key] = list
	ix.misses++

	ix.logger.Debug("member cache populated",
		slog.String("type", common.TypeName(t)),
		slog.String("kind", kind.String()),
		slog.Int("members", len(list)),
	)

	return list
}

// staticsGeneration reads the generation of the attached registry, 0 when
// there is none.
func (ix *Index) staticsGeneration() uint64 {
	if ix.statics == nil {
		return 0
	}

	return ix.statics.Generation()
}

// sync drops every cached list once the statics registry has moved past the
// generation the cache was built against. ix.mu must be held.
func (ix *Index) sync(gen uint64) {
	if gen <= ix.gen {
		return
	}

	if len(ix.cache) > 0 {
		ix.logger.Debug("member cache invalidated",
			slog.Uint64("statics_generation", gen),
			slog.Int("lists", len(ix.cache)),
		)
	}
	clear(ix.cache)
	ix.gen = gen
}

// Predicate filters descriptors.
type Predicate func(Descriptor) bool

// ByName matches an exact name.
func ByName(name string) Predicate {
	return func(d Descriptor) bool { return d.Name == name }
}

// ByNameFold matches a name case-insensitively.
func ByNameFold(name string) Predicate {
	return func(d Descriptor) bool { return strings.EqualFold(d.Name, name) }
}

// ByTag matches fields whose struct tag key contains value. An empty value
// matches any field carrying the key.
func ByTag(key, value string) Predicate {
	return func(d Descriptor) bool {
		tag, ok := d.Tag.Lookup(key)
		if !ok {
			return false
		}
		return value == "" || strings.Contains(tag, value)
	}
}

// Exported matches exported declarations.
func Exported(d Descriptor) bool { return d.Exported }

// StaticOnly matches static declarations.
func StaticOnly(d Descriptor) bool { return d.Static }

// OfType matches declarations whose Type is assignable to t.
func OfType(t reflect.Type) Predicate {
	return func(d Descriptor) bool {
		return d.Type != nil && t != nil && d.Type.AssignableTo(t)
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(d Descriptor) bool {
		for _, p := range preds {
			if p != nil && !p(d) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(preds ...Predicate) Predicate {
	return func(d Descriptor) bool {
		for _, p := range preds {
			if p != nil && p(d) {
				return true
			}
		}
		return false
	}
}
