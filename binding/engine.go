// Package binding is the entry point of the member resolution engine.
//
// An Engine owns the introspection caches and answers the questions every
// decoration asks: which instance owns a field, what is the value of a
// member, and what does a named source resolve to for a requested shape.
// Nothing but the caches outlives a call.
package binding

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"inspector-binding/access"
	"inspector-binding/graphpath"
	"inspector-binding/internal/common"
	"inspector-binding/invoke"
	"inspector-binding/member"
	"inspector-binding/options"
	"inspector-binding/statics"
)

// Engine resolves paths and named sources against object graphs.
type Engine struct {
	cfg     Config
	logger  *slog.Logger
	statics *statics.Registry
	index   *member.Index

	resolver *graphpath.Resolver
	invoker  *invoke.Invoker
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger; resolution details are logged at debug level.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIndex injects a member index, sharing its cache with other engines.
// The index keeps its own discovery rules and statics.
func WithIndex(ix *member.Index) EngineOption {
	return func(e *Engine) {
		e.index = ix
	}
}

// WithStatics attaches static members to the engine's own index.
func WithStatics(r *statics.Registry) EngineOption {
	return func(e *Engine) {
		e.statics = r
	}
}

// WithConfig replaces the binding rules.
func WithConfig(cfg Config) EngineOption {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// New creates an Engine with fresh caches unless an index is injected.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.index == nil {
		e.index = member.NewIndex(
			member.WithStatics(e.statics),
			member.WithLogger(e.logger),
			member.WithConfig(e.cfg.member()),
		)
	}
	if e.statics == nil {
		e.statics = e.index.Statics()
	}

	e.resolver = graphpath.NewResolver(e.index)
	e.invoker = invoke.New(e.index)

	return e
}

// Config returns the binding rules.
func (e *Engine) Config() Config { return e.cfg }

// Index returns the member index.
func (e *Engine) Index() *member.Index { return e.index }

// Statics returns the statics registry, possibly nil.
func (e *Engine) Statics() *statics.Registry { return e.statics }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Owner returns the instance owning the last field of path inside root.
func (e *Engine) Owner(root any, path string) (reflect.Value, error) {
	v, err := e.resolver.Owner(root, path)
	if err != nil {
		e.logger.Debug("owner unresolved", slog.String("path", path), slog.Any("error", err))
	}

	return v, err
}

// Value returns the value at path inside root.
func (e *Engine) Value(root any, path string) (reflect.Value, error) {
	v, err := e.resolver.Value(root, path)
	if err != nil {
		e.logger.Debug("value unresolved", slog.String("path", path), slog.Any("error", err))
	}

	return v, err
}

// Member finds the storage member name on inst: a field or map entry first,
// then a property.
func (e *Engine) Member(inst any, name string) (member.Descriptor, error) {
	v := common.ValueOf(inst)

	if owner, ok := common.Indirect(v); ok && isStringMap(owner.Type()) {
		return member.MapKey(owner.Type(), name), nil
	}

	t := typeOf(v)
	for _, kind := range []options.MemberEnum{options.MemberField, options.MemberProperty} {
		if d, ok := e.index.Nearest(t, kind, name); ok {
			return d, nil
		}
	}

	return member.Descriptor{}, fmt.Errorf("%s.%s: %w", common.TypeName(common.Deref(t)), name, member.ErrMemberNotFound)
}

// Get reads the field or property name of inst.
func (e *Engine) Get(inst any, name string) (reflect.Value, error) {
	d, err := e.Member(inst, name)
	if err != nil {
		return reflect.Value{}, err
	}

	return access.Get(common.ValueOf(inst), d)
}

// Set writes v into the field or property name of inst; inst must be a
// pointer for field writes to stick.
func (e *Engine) Set(inst any, name string, v any) error {
	d, err := e.Member(inst, name)
	if err != nil {
		return err
	}

	return access.Set(common.ValueOf(inst), d, common.ValueOf(v))
}

// SetValue writes v at path inside root.
func (e *Engine) SetValue(root any, path string, v any) error {
	p, err := graphpath.Parse(path)
	if err != nil {
		return err
	}

	owner, err := e.resolver.OwnerOf(root, p)
	if err != nil {
		return err
	}

	leaf, _ := p.Leaf()
	if leaf.Indexed {
		return fmt.Errorf("%w: %s: cannot write through an index", graphpath.ErrInvalidPath, path)
	}

	return e.Set(owner, leaf.Name, v)
}

// Invoke calls the zero-parameter method name on inst.
func (e *Engine) Invoke(inst any, name string) (invoke.Result, error) {
	return e.invoker.Invoke(inst, name)
}

func typeOf(v reflect.Value) reflect.Type {
	if !v.IsValid() {
		return nil
	}

	if owner, ok := common.Indirect(v); ok {
		return owner.Type()
	}

	return v.Type()
}

func isStringMap(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}
