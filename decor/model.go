package decor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"inspector-binding/binding"
	"inspector-binding/internal/diagnostic"
	"inspector-binding/utils"
)

var (
	// ErrDisabled is returned when a button is pressed outside its mode.
	ErrDisabled = errors.New("button is disabled")
	// ErrNoChoice is returned when a selection index is out of range.
	ErrNoChoice = errors.New("selection is out of range")
)

// Host describes the state of the application showing the inspector.
type Host struct {
	// Playing is true while the simulation runs.
	Playing bool
}

// Model is what a widget renders for one decoration.
type Model interface {
	Kind() KindEnum
}

// ButtonModel is a button bound to a zero-parameter action.
type ButtonModel struct {
	Label   string
	Mode    ModeEnum
	Enabled bool

	action binding.Action
}

// Press invokes the bound action.
func (m ButtonModel) Press() error {
	if !m.Enabled {
		return fmt.Errorf("%s: %w in %s mode", m.Label, ErrDisabled, m.Mode)
	}

	_, err := m.action.Invoke()
	return err
}

// ProgressModel is a read-only bar showing a value against a maximum.
type ProgressModel struct {
	Label string
	// Text is the caption drawn on the bar, e.g. "[HP] 7/10".
	Text    string
	Value   float64
	Max     float64
	Fill    float64
	Integer bool
	Color   string
}

// ListModel is a dropdown whose options come from a named source.
type ListModel struct {
	Label    string
	Options  []binding.Option
	Selected int

	set func(any) error
}

// Labels returns the option labels.
func (m ListModel) Labels() []string {
	return binding.Enumerable{Options: m.Options}.Labels()
}

// Select writes the value of option i into the decorated field.
func (m ListModel) Select(i int) error {
	if !utils.IsInRange(0, i, len(m.Options)-1) {
		return fmt.Errorf("%s: %w: %d of %d", m.Label, ErrNoChoice, i, len(m.Options))
	}

	return m.set(m.Options[i].Value)
}

// StringsModel is a dropdown of the string constants of a type. The first
// option is always binding.EmptyLabel and clears the field.
type StringsModel struct {
	Label    string
	Options  []string
	Values   []string
	Selected int

	set func(any) error
}

// Select writes the string of option i into the decorated field.
func (m StringsModel) Select(i int) error {
	if !utils.IsInRange(0, i, len(m.Values)-1) {
		return fmt.Errorf("%s: %w: %d of %d", m.Label, ErrNoChoice, i, len(m.Values))
	}

	return m.set(m.Values[i])
}

// RangeModel is a two-handle slider over [Min, Max].
type RangeModel struct {
	Label     string
	Min, Max  float64
	Low, High float64
	Integer   bool

	set func(low, high float64) error
}

// Set clamps the handles and writes them into the decorated field.
func (m RangeModel) Set(low, high float64) error {
	return m.set(low, high)
}

// InfoModel is a static help box.
type InfoModel struct {
	Text     string
	Severity diagnostic.DiagnosticSeverity
}

// EnumModel is a row of toggles over the named constants of an integer type.
//
// Values hold bit patterns of the field type. In flags mode the first toggle
// is "Everything", worth every other flag at once, and a toggle is on while
// all its bits are set; otherwise exactly one toggle is on.
type EnumModel struct {
	Label  string
	Flags  bool
	Labels []string
	Values []uint64
	Mask   uint64

	set func(mask uint64) error
}

// Checked reports whether toggle i is on.
func (m EnumModel) Checked(i int) bool {
	if !utils.IsInRange(0, i, len(m.Values)-1) {
		return false
	}
	if m.Flags {
		return m.Mask&m.Values[i] == m.Values[i]
	}

	return m.Mask == m.Values[i]
}

// Toggle flips toggle i and writes the new value into the decorated field.
// Outside flags mode it selects constant i.
func (m EnumModel) Toggle(i int) error {
	if !utils.IsInRange(0, i, len(m.Values)-1) {
		return fmt.Errorf("%s: %w: %d of %d", m.Label, ErrNoChoice, i, len(m.Values))
	}

	v := m.Values[i]
	switch {
	case !m.Flags:
		return m.set(v)
	case m.Checked(i):
		return m.set(m.Mask &^ v)
	default:
		return m.set(m.Mask | v)
	}
}

// SubclassOption is one implementation offered by a SubclassModel.
type SubclassOption struct {
	// Menu is the menu path; its last element names the entry.
	Menu []string
	// Type is the type stored in the field, nil for the clearing entry.
	Type reflect.Type
}

// Label returns the menu path joined with "/".
func (o SubclassOption) Label() string {
	return strings.Join(o.Menu, "/")
}

// SubclassModel is a menu of the registered types assignable to a field of
// interface type. The first option is binding.NullLabel and clears the field.
type SubclassModel struct {
	Label    string
	Options  []SubclassOption
	Selected int

	set func(v reflect.Value) error
}

// Select stores a fresh zero instance of option i in the decorated field.
func (m SubclassModel) Select(i int) error {
	if !utils.IsInRange(0, i, len(m.Options)-1) {
		return fmt.Errorf("%s: %w: %d of %d", m.Label, ErrNoChoice, i, len(m.Options))
	}

	t := m.Options[i].Type
	switch {
	case t == nil:
		return m.set(reflect.Value{})
	case t.Kind() == reflect.Pointer:
		return m.set(reflect.New(t.Elem()))
	default:
		return m.set(reflect.New(t).Elem())
	}
}

// WarningModel replaces the widget of a decoration that cannot be shown.
type WarningModel struct {
	For        KindEnum
	Label      string
	Diagnostic diagnostic.Diagnostic
}

// Message returns the one-line warning text.
func (m WarningModel) Message() string {
	return m.Diagnostic.String()
}

func (ButtonModel) Kind() KindEnum    { return KindButton }
func (ProgressModel) Kind() KindEnum  { return KindProgress }
func (ListModel) Kind() KindEnum      { return KindList }
func (StringsModel) Kind() KindEnum   { return KindStrings }
func (RangeModel) Kind() KindEnum     { return KindRange }
func (InfoModel) Kind() KindEnum      { return KindInfo }
func (EnumModel) Kind() KindEnum      { return KindEnumFlag }
func (SubclassModel) Kind() KindEnum  { return KindSubclass }
func (m WarningModel) Kind() KindEnum { return m.For }
