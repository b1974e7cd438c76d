package decor

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"inspector-binding/binding"
	"inspector-binding/graphpath"
	"inspector-binding/internal/common"
	"inspector-binding/internal/diagnostic"
	"inspector-binding/internal/match"
	"inspector-binding/options"
	"inspector-binding/primitive"
	"inspector-binding/utils"
)

// Evaluator turns decorations into render models using an engine.
type Evaluator struct {
	engine *binding.Engine
	logger *slog.Logger
}

// NewEvaluator creates an Evaluator sharing the caches of e.
func NewEvaluator(e *binding.Engine) *Evaluator {
	return &Evaluator{engine: e, logger: e.Logger()}
}

// Engine returns the underlying engine.
func (ev *Evaluator) Engine() *binding.Engine { return ev.engine }

// Evaluate builds the model of decoration d on the field at fieldPath inside
// root. Failures never panic out of here unless user code panics; they come
// back as a WarningModel.
func (ev *Evaluator) Evaluate(root any, fieldPath string, d Decoration, host Host) Model {
	c := &evaluation{ev: ev, root: root, path: fieldPath, d: d, host: host}

	p, err := graphpath.Parse(fieldPath)
	if err != nil {
		return c.fail(err)
	}
	if leaf, ok := p.Leaf(); ok {
		c.label = DisplayName(leaf.Name)
	}

	c.owner, err = ev.engine.Owner(root, fieldPath)
	if err != nil {
		return c.fail(err)
	}

	m := c.model()
	if w, ok := m.(WarningModel); ok {
		ev.logger.Debug("decoration warning",
			slog.String("field", fieldPath),
			slog.String("decoration", d.Kind.String()),
			slog.String("code", w.Diagnostic.Code),
		)
	}

	return m
}

// EvaluateAll evaluates every decoration declared on the type of root.
// Warnings and malformed tags are collected into the returned diagnostics.
func (ev *Evaluator) EvaluateAll(root any, host Host) ([]Model, diagnostic.Diagnostics) {
	fields, diags := Collect(reflect.TypeOf(root), ev.engine.Config().TagKey)

	var models []Model
	for _, f := range fields {
		for _, d := range f.Decorations {
			m := ev.Evaluate(root, f.Path, d, host)
			if w, ok := m.(WarningModel); ok {
				diags.Add(w.Diagnostic)
			}
			models = append(models, m)
		}
	}

	return models, diags
}

// evaluation carries the state of one Evaluate call.
type evaluation struct {
	ev    *Evaluator
	root  any
	path  string
	label string
	owner reflect.Value
	d     Decoration
	host  Host
}

func (c *evaluation) model() Model {
	switch c.d.Kind {
	case KindButton:
		return c.button()
	case KindProgress:
		return c.progress()
	case KindList:
		return c.list()
	case KindStrings:
		return c.stringChoices()
	case KindRange:
		return c.rangeSlider()
	case KindInfo:
		return c.info()
	case KindEnumFlag:
		return c.enumFlag()
	case KindSubclass:
		return c.subclass()
	default:
		return c.bad("unknown decoration %d", int(c.d.Kind))
	}
}

func (c *evaluation) button() Model {
	method := c.d.Arg("method", "")

	mode := ModeEnum(strings.ToLower(c.d.Arg("mode", string(ModeAlways))))
	switch mode {
	case ModeAlways, ModeEditor, ModePlaymode:
	default:
		return c.bad("unknown button mode %q", mode)
	}

	rs, err := c.ev.engine.Source(c.owner, method, options.ShapeAction)
	if err != nil {
		return c.fail(err)
	}

	action, ok := rs.(binding.Action)
	if !ok {
		return c.unresolved(rs)
	}

	return ButtonModel{
		Label:   c.d.Arg("text", DisplayName(method)),
		Mode:    mode,
		Enabled: mode.Enabled(c.host),
		action:  action,
	}
}

func (c *evaluation) progress() Model {
	field, err := c.ev.engine.Value(c.root, c.path)
	if err != nil {
		return c.fail(err)
	}

	cur, ok := common.Indirect(field)
	if !ok || !primitive.IsNumberType(cur.Type()) {
		return c.shape("progress needs a numeric field")
	}

	value, _ := primitive.ToFloat(cur)
	if name := c.d.Arg("value", ""); name != "" {
		rs, err := c.ev.engine.NumberOr(c.owner, name, value)
		if err != nil {
			return c.fail(err)
		}
		num, ok := rs.(binding.Number)
		if !ok {
			return c.unresolved(rs)
		}
		value = num.Value
	}

	maxArg := c.d.Arg("max", "")
	maxValue, err := strconv.ParseFloat(maxArg, 64)
	if err != nil {
		rs, err := c.ev.engine.Source(c.owner, maxArg, options.ShapeNumber)
		if err != nil {
			return c.fail(err)
		}
		num, ok := rs.(binding.Number)
		if !ok {
			return c.unresolved(rs)
		}
		maxValue = num.Value
	}

	integer := primitive.FromReflectType(cur.Type()).IsInteger()

	var fill float64
	if maxValue > 0 {
		fill = utils.Clamp(value/maxValue, 0, 1)
	}

	formatted := strconv.FormatFloat(value, 'f', 2, 64)
	if integer {
		formatted = strconv.FormatFloat(value, 'f', -1, 64)
	}
	text := formatted + "/" + strconv.FormatFloat(maxValue, 'f', -1, 64)
	if name := c.d.Arg("label", ""); name != "" {
		text = "[" + name + "] " + text
	}

	return ProgressModel{
		Label:   c.label,
		Text:    text,
		Value:   value,
		Max:     maxValue,
		Fill:    fill,
		Integer: integer,
		Color:   c.d.Arg("color", "blue"),
	}
}

func (c *evaluation) list() Model {
	field, err := c.ev.engine.Value(c.root, c.path)
	if err != nil {
		return c.fail(err)
	}

	rs, err := c.ev.engine.Source(c.owner, c.d.Arg("values", ""), options.ShapeEnumerable)
	if err != nil {
		return c.fail(err)
	}
	en, ok := rs.(binding.Enumerable)
	if !ok {
		return c.unresolved(rs)
	}

	for _, o := range en.Options {
		if o.Value == nil {
			continue
		}
		if vt := reflect.TypeOf(o.Value); !vt.AssignableTo(field.Type()) {
			return c.shape(fmt.Sprintf("option %q is %s, field is %s", o.Label, vt, field.Type()))
		}
	}

	selected := -1
	if len(en.Options) > 0 {
		selected = max(binding.Index(en.Options, valueOf(field)), 0)
	}

	return ListModel{
		Label:    c.label,
		Options:  en.Options,
		Selected: selected,
		set:      c.write,
	}
}

func (c *evaluation) stringChoices() Model {
	field, err := c.ev.engine.Value(c.root, c.path)
	if err != nil {
		return c.fail(err)
	}
	if field.Kind() != reflect.String {
		return c.shape("strings needs a string field")
	}

	pattern, err := regexp.Compile(c.d.Arg("match", ""))
	if err != nil {
		return c.bad("bad match pattern: %v", err)
	}

	from := c.d.Arg("from", "")
	reg := c.ev.engine.Statics()

	var (
		t     reflect.Type
		found bool
	)
	if reg != nil {
		t, found = reg.TypeByName(from)
	}
	if !found {
		return c.notRegistered(fmt.Sprintf("type %q has no registered constants", from))
	}

	byName := c.d.Arg("label", "value") == "name"
	m := StringsModel{
		Label:   c.label,
		Options: []string{binding.EmptyLabel},
		Values:  []string{""},
		set:     c.write,
	}

	for _, e := range reg.Lookup(t) {
		if e.Func || e.Type().Kind() != reflect.String {
			continue
		}

		s := e.Value.Elem().String()
		if s == "" || !pattern.MatchString(s) {
			continue
		}

		label := s
		if byName {
			label = DisplayName(e.Name)
		}
		m.Options = append(m.Options, label)
		m.Values = append(m.Values, s)
	}

	if cur := field.String(); cur != "" {
		for i, v := range m.Values {
			if v == cur {
				m.Selected = i
				break
			}
		}
	}

	return m
}

func (c *evaluation) rangeSlider() Model {
	lo, err := strconv.ParseFloat(c.d.Arg("min", ""), 64)
	if err != nil {
		return c.bad("range min is not a number")
	}
	hi, err := strconv.ParseFloat(c.d.Arg("max", ""), 64)
	if err != nil {
		return c.bad("range max is not a number")
	}
	if lo > hi {
		return c.bad("range min %v exceeds max %v", lo, hi)
	}

	field, err := c.ev.engine.Value(c.root, c.path)
	if err != nil {
		return c.fail(err)
	}

	pair, ok := common.Indirect(field)
	if !ok || !isPair(pair.Type()) {
		return c.shape("range needs a field holding two numbers")
	}

	first, second := pairAt(pair)
	low, _ := primitive.ToFloat(first)
	high, _ := primitive.ToFloat(second)
	low, high = clampPair(low, high, lo, hi)

	pairType := pair.Type()

	return RangeModel{
		Label:   c.label,
		Min:     lo,
		Max:     hi,
		Low:     low,
		High:    high,
		Integer: primitive.FromReflectType(first.Type()).IsInteger(),
		set: func(low, high float64) error {
			low, high = clampPair(low, high, lo, hi)

			out := reflect.New(pairType).Elem()
			a, b := pairAt(out)
			for _, h := range []struct {
				dst reflect.Value
				val float64
			}{{a, low}, {b, high}} {
				v, err := primitive.Convert(reflect.ValueOf(h.val), h.dst.Type())
				if err != nil {
					return err
				}
				h.dst.Set(v)
			}

			return c.write(out.Interface())
		},
	}
}

func (c *evaluation) info() Model {
	severity := diagnostic.DiagnosticInfo
	switch t := c.d.Arg("type", "normal"); t {
	case "normal":
	case "warning":
		severity = diagnostic.DiagnosticWarning
	case "error":
		severity = diagnostic.DiagnosticError
	default:
		return c.bad("unknown info type %q", t)
	}

	return InfoModel{Text: c.d.Arg("text", ""), Severity: severity}
}

func (c *evaluation) write(v any) error {
	return c.ev.engine.SetValue(c.root, c.path, v)
}

func (c *evaluation) fail(err error) Model {
	return c.warn(binding.DiagnoseError(c.path, err))
}

func (c *evaluation) unresolved(rs binding.ResolvedSource) Model {
	d, ok := binding.Diagnose(c.path, rs)
	if !ok {
		d = binding.DiagnoseError(c.path, errors.New("unexpected source"))
	}

	return c.warn(d)
}

func (c *evaluation) shape(msg string) Model {
	return c.warn(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Code:     diagnostic.CodeShapeMismatch,
		Message:  msg,
	})
}

func (c *evaluation) bad(format string, args ...any) Model {
	return c.warn(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeBadDecoration,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *evaluation) warn(d diagnostic.Diagnostic) Model {
	d.Field = c.path
	return WarningModel{For: c.d.Kind, Label: c.label, Diagnostic: d}
}

// isPair reports whether t holds exactly two numbers: a [2]N array or a
// struct of two exported number fields.
func isPair(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return t.Len() == 2 && primitive.IsNumberType(t.Elem())
	case reflect.Struct:
		if t.NumField() != 2 {
			return false
		}
		for i := range 2 {
			f := t.Field(i)
			if !f.IsExported() || !primitive.IsNumberType(f.Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func pairAt(v reflect.Value) (reflect.Value, reflect.Value) {
	if v.Kind() == reflect.Array {
		return v.Index(0), v.Index(1)
	}

	return v.Field(0), v.Field(1)
}

// clampPair keeps lo <= low <= high <= hi.
func clampPair(low, high, lo, hi float64) (float64, float64) {
	low = utils.Clamp(low, lo, min(hi, high))
	high = utils.Clamp(high, max(lo, low), hi)

	return low, high
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

// DisplayName turns an identifier into a label: "maxHealth" becomes
// "Max Health" and "m_speed" becomes "Speed".
func DisplayName(name string) string {
	name = strings.TrimPrefix(name, "m_")
	name = strings.TrimLeft(name, "_")

	words := match.Words(name)
	caser := cases.Title(language.Und, cases.NoLower)
	for i, w := range words {
		words[i] = caser.String(w)
	}

	return strings.Join(words, " ")
}
