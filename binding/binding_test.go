package binding_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector-binding/access"
	"inspector-binding/binding"
	"inspector-binding/graphpath"
	"inspector-binding/internal/diagnostic"
	"inspector-binding/member"
	"inspector-binding/options"
	"inspector-binding/statics"
)

type Item struct {
	Value int
}

type Root struct {
	Items []Item
	Max   int
	Label string
	Ratio float32

	scaled  float64
	OnReset func()
}

func (r Root) GetCount() string      { return "three" }
func (r *Root) Scale(by float64)     { r.scaled *= by }
func (r *Root) Reset()               { r.scaled = 1 }
func (r Root) Limits() []int         { return []int{1, 5, 10} }
func (r Root) Average() float64      { return 2.5 }
func (r Root) Broken() (int, error)  { return 0, errBroken }
func (r Root) GetFragile() (int, error) {
	return 0, errBroken
}

var errBroken = errors.New("broken on purpose")

type Mover struct {
	Speed float64
}

func (m Mover) Accel() float64 { return 9.8 }

type Rocket struct {
	Mover

	Accel float64
}

type Tank struct{}

func (Tank) Speed() float64 { return 1 }

type Tracked struct {
	Tank

	Speed int
}

func newRoot() *Root {
	return &Root{
		Items: []Item{{Value: 3}, {Value: 7}},
		Max:   10,
		Label: "root",
	}
}

func TestEngine_EndToEnd(t *testing.T) {
	e := binding.New()
	root := newRoot()

	v, err := e.Value(root, "Items[1].Value")
	require.NoError(t, err)
	assert.Equal(t, 7, v.Interface())

	owner, err := e.Owner(root, "Items[1].Value")
	require.NoError(t, err)
	assert.Equal(t, Item{Value: 7}, owner.Interface())

	rs, err := e.Source(root, "Max", options.ShapeNumber)
	require.NoError(t, err)
	num, ok := rs.(binding.Number)
	require.True(t, ok, spew.Sdump(rs))
	assert.InDelta(t, 10.0, num.Value, 1e-9)
	assert.True(t, num.Integer)
	assert.Equal(t, int64(10), num.Int())
	require.NoError(t, rs.Err())

	rs, err = e.Source(root, "Max", options.ShapeEnumerable)
	require.NoError(t, err)
	wrong, ok := rs.(binding.WrongShape)
	require.True(t, ok, spew.Sdump(rs))
	require.ErrorIs(t, rs.Err(), member.ErrShapeMismatch)
	assert.Equal(t, "Max", wrong.Source)
	assert.Equal(t, options.ShapeEnumerable, wrong.Want)
	assert.Contains(t, wrong.Reason, "not an enumerable")
}

func TestEngine_ShapeMismatchIsNotAbsence(t *testing.T) {
	e := binding.New()
	root := newRoot()

	rs, err := e.Source(root, "GetCount", options.ShapeNumber)
	require.NoError(t, err)
	require.IsType(t, binding.WrongShape{}, rs)
	require.ErrorIs(t, rs.Err(), member.ErrShapeMismatch)
	assert.Contains(t, rs.(binding.WrongShape).Reason, "returns string")

	rs, err = e.Source(root, "Missing", options.ShapeNumber)
	require.NoError(t, err)
	require.IsType(t, binding.NotFound{}, rs)
	require.ErrorIs(t, rs.Err(), member.ErrMemberNotFound)
}

func TestEngine_Precedence(t *testing.T) {
	e := binding.New()

	t.Run("field before method", func(t *testing.T) {
		rs, err := e.Source(&Rocket{Accel: 3}, "Accel", options.ShapeNumber)
		require.NoError(t, err)
		num := rs.(binding.Number)
		assert.InDelta(t, 3.0, num.Value, 1e-9)
		assert.Equal(t, options.MemberField, num.Member.Kind)
	})

	t.Run("field before method of the same shape", func(t *testing.T) {
		rs, err := e.Source(&Tracked{Speed: 4}, "Speed", options.ShapeNumber)
		require.NoError(t, err)
		num := rs.(binding.Number)
		assert.InDelta(t, 4.0, num.Value, 1e-9)
		assert.True(t, num.Integer)
	})

	t.Run("method when the field has the wrong shape", func(t *testing.T) {
		rs, err := e.Source(&Tracked{Speed: 4}, "Speed", options.ShapeAction)
		require.NoError(t, err)
		action, ok := rs.(binding.Action)
		require.True(t, ok, spew.Sdump(rs))
		assert.Equal(t, options.MemberMethod, action.Member.Kind)
	})

	t.Run("property", func(t *testing.T) {
		rs, err := e.Source(newRoot(), "Fragile", options.ShapeNumber)
		require.ErrorIs(t, err, errBroken, "getter errors surface")
		assert.Nil(t, rs)
	})
}

func TestEngine_Enumerable(t *testing.T) {
	e := binding.New()

	type Choices struct {
		Names    []string
		Pointers []*Item
		ByKey    map[string]int
		ByNumber map[int]string
		Labeled  *binding.ListValue[int]
		Seq      func(yield func(string) bool)
	}

	labeled := new(binding.ListValue[int]).Add("one", 1).Add(" ", 2)
	c := &Choices{
		Names:    []string{"a", "", "c"},
		Pointers: []*Item{{Value: 1}, nil},
		ByKey:    map[string]int{"b": 2, "a": 1},
		ByNumber: map[int]string{10: "ten", 2: "two"},
		Labeled:  labeled,
		Seq: func(yield func(string) bool) {
			_ = yield("x") && yield("y")
		},
	}

	tests := []struct {
		name   string
		source string
		labels []string
	}{
		{name: "slice", source: "Names", labels: []string{"a", binding.EmptyLabel, "c"}},
		{name: "nil element", source: "Pointers", labels: []string{"&{1}", binding.NullLabel}},
		{name: "string map", source: "ByKey", labels: []string{"a", "b"}},
		{name: "number map", source: "ByNumber", labels: []string{"2", "10"}},
		{name: "lister", source: "Labeled", labels: []string{"one", binding.EmptyLabel}},
		{name: "iterator", source: "Seq", labels: []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := e.Source(c, tt.source, options.ShapeEnumerable)
			require.NoError(t, err)
			en, ok := rs.(binding.Enumerable)
			require.True(t, ok, spew.Sdump(rs))
			assert.Equal(t, tt.labels, en.Labels())
		})
	}

	rs, err := e.Source(newRoot(), "Limits", options.ShapeEnumerable)
	require.NoError(t, err)
	en := rs.(binding.Enumerable)
	assert.Equal(t, []string{"1", "5", "10"}, en.Labels())
	assert.Equal(t, 1, binding.Index(en.Options, 5))
	assert.Equal(t, -1, binding.Index(en.Options, 7))
}

func TestEngine_Action(t *testing.T) {
	e := binding.New()
	root := newRoot()

	rs, err := e.Source(root, "Reset", options.ShapeAction)
	require.NoError(t, err)
	action := rs.(binding.Action)
	assert.Equal(t, 0.0, root.scaled, "resolving does not invoke")

	_, err = action.Invoke()
	require.NoError(t, err)
	assert.Equal(t, 1.0, root.scaled)

	rs, err = e.Source(root, "OnReset", options.ShapeAction)
	require.NoError(t, err)
	fieldAction := rs.(binding.Action)

	_, err = fieldAction.Invoke()
	require.ErrorIs(t, err, binding.ErrNilFunc)

	calls := 0
	root.OnReset = func() { calls++ }
	_, err = fieldAction.Invoke()
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "func fields are read at call time")

	rs, err = e.Source(root, "Scale", options.ShapeAction)
	require.NoError(t, err)
	wrong := rs.(binding.WrongShape)
	require.ErrorIs(t, wrong.Err(), member.ErrArityMismatch)

	rs, err = e.Source(root, "Max", options.ShapeAction)
	require.NoError(t, err)
	require.IsType(t, binding.WrongShape{}, rs)

	rs, err = e.Source(*root, "Reset", options.ShapeAction)
	require.NoError(t, err)
	_, err = rs.(binding.Action).Invoke()
	require.ErrorIs(t, err, access.ErrNotAddressable, "actions on a value never run against a copy")
}

func TestEngine_ActionInMap(t *testing.T) {
	calls := 0
	entries := map[string]any{
		"go":  func() { calls++ },
		"n":   3,
		"nil": nil,
		"arg": func(int) {},
	}

	tests := []struct {
		name   string
		action bool
	}{
		{name: "go", action: true},
		{name: "n"},
		{name: "nil"},
		{name: "arg"},
	}

	e := binding.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := e.Source(entries, tt.name, options.ShapeAction)
			require.NoError(t, err)
			if !tt.action {
				wrong, ok := rs.(binding.WrongShape)
				require.True(t, ok, spew.Sdump(rs))
				require.ErrorIs(t, wrong.Err(), member.ErrShapeMismatch)
				return
			}

			action, ok := rs.(binding.Action)
			require.True(t, ok, spew.Sdump(rs))
			_, err = action.Invoke()
			require.NoError(t, err)
			assert.Equal(t, 1, calls)
		})
	}

	rs, err := e.Source(entries, "go", options.ShapeAction)
	require.NoError(t, err)
	action := rs.(binding.Action)

	entries["go"] = 5
	_, err = action.Invoke()
	require.ErrorIs(t, err, member.ErrShapeMismatch, "entries are read at call time")

	entries["go"] = nil
	_, err = action.Invoke()
	require.ErrorIs(t, err, binding.ErrNilFunc)
}

func TestEngine_Invoke(t *testing.T) {
	e := binding.New()
	root := newRoot()

	_, err := e.Invoke(root, "DoesNotExist")
	require.ErrorIs(t, err, member.ErrMemberNotFound)

	_, err = e.Invoke(root, "Scale")
	require.ErrorIs(t, err, member.ErrArityMismatch)

	res, err := e.Invoke(root, "Average")
	require.NoError(t, err)
	v, ok := res.First()
	require.True(t, ok)
	assert.InDelta(t, 2.5, v.Float(), 1e-9)

	_, err = e.Invoke(root, "Broken")
	require.ErrorIs(t, err, errBroken)

	_, err = e.Source(root, "Broken", options.ShapeNumber)
	require.ErrorIs(t, err, errBroken, "method errors surface from sources too")
}

func TestEngine_NumberOr(t *testing.T) {
	e := binding.New()
	root := newRoot()

	tests := []struct {
		name        string
		source      string
		wantDefault bool
		wantValue   float64
		wantWrong   bool
	}{
		{name: "empty name", source: "", wantDefault: true, wantValue: 100},
		{name: "absent", source: "Nope", wantDefault: true, wantValue: 100},
		{name: "field", source: "Max", wantValue: 10},
		{name: "method", source: "Average", wantValue: 2.5},
		{name: "wrong shape", source: "Label", wantWrong: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := e.NumberOr(root, tt.source, 100)
			require.NoError(t, err)

			if tt.wantWrong {
				require.IsType(t, binding.WrongShape{}, rs)
				return
			}

			num, ok := rs.(binding.Number)
			require.True(t, ok, spew.Sdump(rs))
			assert.Equal(t, tt.wantDefault, num.Default)
			assert.InDelta(t, tt.wantValue, num.Value, 1e-9)
		})
	}
}

func TestEngine_GetSet(t *testing.T) {
	e := binding.New()
	root := newRoot()

	require.NoError(t, e.SetValue(root, "Items[1].Value", 9.7), "floats truncate into ints")
	assert.Equal(t, 9, root.Items[1].Value)

	require.NoError(t, e.Set(root, "Ratio", 2))
	assert.InDelta(t, 2.0, root.Ratio, 1e-9)

	require.NoError(t, e.Set(root, "scaled", 0.5))
	v, err := e.Get(root, "scaled")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v.Float(), 1e-9)

	_, err = e.Get(root, "Nope")
	require.ErrorIs(t, err, member.ErrMemberNotFound)

	err = e.SetValue(root, "Items[5].Value", 1)
	require.ErrorIs(t, err, graphpath.ErrPathUnresolved)

	err = e.SetValue(root, "Items[0]", Item{})
	require.ErrorIs(t, err, graphpath.ErrInvalidPath)

	props := map[string]any{"hp": 3}
	require.NoError(t, e.Set(props, "hp", 4))
	assert.Equal(t, 4, props["hp"])

	rs, err := e.Source(props, "hp", options.ShapeNumber)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, rs.(binding.Number).Value, 1e-9)
}

var rootLimit = 42

func TestEngine_Statics(t *testing.T) {
	reg := statics.New()
	require.NoError(t, reg.Register(reflect.TypeFor[Root](), "Limit", &rootLimit))
	e := binding.New(binding.WithStatics(reg))

	rs, err := e.Source(newRoot(), "Limit", options.ShapeNumber)
	require.NoError(t, err)
	num := rs.(binding.Number)
	assert.InDelta(t, 42.0, num.Value, 1e-9)
	assert.True(t, num.Member.Static)
	assert.Same(t, reg, e.Statics())
}

var rootCap = 9

func TestEngine_StaticsFollowRegistry(t *testing.T) {
	reg := statics.New()
	e := binding.New(binding.WithStatics(reg))
	root := newRoot()

	rs, err := e.Source(root, "Cap", options.ShapeNumber)
	require.NoError(t, err)
	require.IsType(t, binding.NotFound{}, rs)

	require.NoError(t, reg.Register(reflect.TypeFor[Root](), "Cap", &rootCap))
	rs, err = e.Source(root, "Cap", options.ShapeNumber)
	require.NoError(t, err)
	require.IsType(t, binding.Number{}, rs)
	assert.InDelta(t, 9.0, rs.(binding.Number).Value, 1e-9)

	reg.Reset()
	require.Zero(t, reg.Count())
	rs, err = e.Source(root, "Cap", options.ShapeNumber)
	require.NoError(t, err)
	assert.IsType(t, binding.NotFound{}, rs)
}

func TestEngine_NotFoundSuggestions(t *testing.T) {
	e := binding.New()

	rs, err := e.Source(newRoot(), "Maxx", options.ShapeNumber)
	require.NoError(t, err)
	nf := rs.(binding.NotFound)
	assert.Contains(t, nf.Suggestions, "Max")

	cfg := binding.DefaultConfig()
	cfg.Suggestions = 0
	quiet := binding.New(binding.WithConfig(cfg))
	rs, err = quiet.Source(newRoot(), "Maxx", options.ShapeNumber)
	require.NoError(t, err)
	assert.Empty(t, rs.(binding.NotFound).Suggestions)
}

func TestNew_Options(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	reg := statics.New()
	cfg := binding.DefaultConfig()
	cfg.TagKey = "ui"
	cfg.Suggestions = 0

	tests := []struct {
		name string
		opts []binding.EngineOption
		tag  string
		reg  *statics.Registry
	}{
		{name: "defaults", tag: binding.DefaultTagKey},
		{name: "config", opts: []binding.EngineOption{binding.WithConfig(cfg)}, tag: "ui"},
		{
			name: "all",
			opts: []binding.EngineOption{binding.WithLogger(logger), binding.WithConfig(cfg), binding.WithStatics(reg)},
			tag:  "ui",
			reg:  reg,
		},
		{name: "nil logger keeps the default", opts: []binding.EngineOption{binding.WithLogger(nil)}, tag: binding.DefaultTagKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := binding.New(tt.opts...)
			assert.Equal(t, tt.tag, e.Config().TagKey)
			assert.NotNil(t, e.Logger())
			if tt.reg != nil {
				assert.Same(t, tt.reg, e.Statics())
				assert.Same(t, logger, e.Logger())
			}
		})
	}

	// List entries are plain Option values, unrelated to engine options.
	opts := []binding.Option{{Label: "a", Value: 1}, {Label: binding.NullLabel}}
	assert.Equal(t, 0, binding.Index(opts, 1))
	assert.Equal(t, 1, binding.Index(opts, nil))
}

func TestEngine_SharedIndex(t *testing.T) {
	ix := member.NewIndex()
	a := binding.New(binding.WithIndex(ix))
	b := binding.New(binding.WithIndex(ix))

	_, err := a.Source(newRoot(), "Max", options.ShapeNumber)
	require.NoError(t, err)
	misses := ix.Stats().Misses

	_, err = b.Source(newRoot(), "Max", options.ShapeNumber)
	require.NoError(t, err)
	assert.Equal(t, misses, ix.Stats().Misses)
	assert.Same(t, ix, b.Index())
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := binding.New(binding.WithLogger(logger))

	_, err := e.Source(newRoot(), "Max", options.ShapeNumber)
	require.NoError(t, err)
	_, err = e.Owner(nil, "a.b")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "source resolved")
	assert.Contains(t, out, "source=Max")
	assert.Contains(t, out, "owner unresolved")
	assert.Contains(t, out, "member cache populated")
}

type recorder struct {
	seen []string
}

func (r *recorder) VisitNumber(binding.Number)         { r.seen = append(r.seen, "number") }
func (r *recorder) VisitEnumerable(binding.Enumerable) { r.seen = append(r.seen, "enumerable") }
func (r *recorder) VisitAction(binding.Action)         { r.seen = append(r.seen, "action") }
func (r *recorder) VisitNotFound(binding.NotFound)     { r.seen = append(r.seen, "not found") }
func (r *recorder) VisitWrongShape(binding.WrongShape) { r.seen = append(r.seen, "wrong shape") }

func TestVisit(t *testing.T) {
	e := binding.New()
	root := newRoot()
	rec := &recorder{}

	for _, q := range []struct {
		name  string
		shape options.ShapeEnum
	}{
		{"Max", options.ShapeNumber},
		{"Items", options.ShapeEnumerable},
		{"Reset", options.ShapeAction},
		{"Nope", options.ShapeNumber},
		{"Label", options.ShapeNumber},
	} {
		rs, err := e.Source(root, q.name, q.shape)
		require.NoError(t, err)
		assert.Equal(t, q.name, rs.SourceName())
		binding.Visit(rs, rec)
	}

	assert.Equal(t, []string{"number", "enumerable", "action", "not found", "wrong shape"}, rec.seen)
}

func TestDiagnose(t *testing.T) {
	cfg := binding.DefaultConfig()
	cfg.Suggestions = 0
	e := binding.New(binding.WithConfig(cfg))
	root := newRoot()

	rs, _ := e.Source(root, "Nope", options.ShapeNumber)
	d, ok := binding.Diagnose("hp", rs)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeMemberNotFound, d.Code)
	assert.Equal(t, `hp: [MEMBER_NOT_FOUND] number source "Nope" could not be found`, d.String())

	rs, _ = e.Source(root, "Scale", options.ShapeAction)
	d, ok = binding.Diagnose("button", rs)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeArityMismatch, d.Code)
	assert.Equal(t, "binding_test.Root", d.Owner)

	rs, _ = e.Source(root, "Max", options.ShapeNumber)
	_, ok = binding.Diagnose("hp", rs)
	assert.False(t, ok)

	tests := []struct {
		err  error
		code string
		sev  diagnostic.DiagnosticSeverity
	}{
		{err: graphpath.ErrPathUnresolved, code: diagnostic.CodePathUnresolved, sev: diagnostic.DiagnosticWarning},
		{err: member.ErrMemberNotFound, code: diagnostic.CodeMemberNotFound, sev: diagnostic.DiagnosticWarning},
		{err: member.ErrArityMismatch, code: diagnostic.CodeArityMismatch, sev: diagnostic.DiagnosticWarning},
		{err: member.ErrShapeMismatch, code: diagnostic.CodeShapeMismatch, sev: diagnostic.DiagnosticWarning},
		{err: errBroken, code: diagnostic.CodeTargetFailure, sev: diagnostic.DiagnosticError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			d := binding.DiagnoseError("field", tt.err)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.sev, d.Severity)
		})
	}
}
