package invoke_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector-binding/access"
	"inspector-binding/invoke"
	"inspector-binding/member"
	"inspector-binding/statics"
)

var errJammed = errors.New("door is jammed")

type Door struct {
	open   bool
	jammed bool
	knocks int
}

func (d *Door) Open() error {
	if d.jammed {
		return errJammed
	}
	d.open = true
	return nil
}

func (d *Door) Knock(times int) { d.knocks += times }
func (d Door) IsOpen() (bool, bool) { return d.open, true }
func (d Door) Explode()             { panic("boom") }

type Vault struct {
	Door

	code string
}

func (v *Vault) Open() error {
	v.code = "opened"
	return v.Door.Open()
}

func ResetDoors() string { return "reset" }

func TestInvoker_Invoke(t *testing.T) {
	iv := invoke.New(member.NewIndex())
	d := &Door{}

	res, err := iv.Invoke(d, "Open")
	require.NoError(t, err)
	assert.True(t, d.open)
	assert.True(t, res.Signature.HasErr)
	_, ok := res.First()
	assert.False(t, ok)

	res, err = iv.Invoke(d, "IsOpen")
	require.NoError(t, err)
	v, ok := res.First()
	require.True(t, ok)
	assert.True(t, v.Bool())
	assert.True(t, res.Ok())
}

func TestInvoker_Taxonomy(t *testing.T) {
	iv := invoke.New(member.NewIndex())

	_, err := iv.Invoke(&Door{}, "DoesNotExist")
	require.ErrorIs(t, err, member.ErrMemberNotFound)

	_, err = iv.Invoke(&Door{}, "Knock")
	require.ErrorIs(t, err, member.ErrArityMismatch)
	assert.NotErrorIs(t, err, member.ErrMemberNotFound)

	_, err = iv.Invoke(nil, "Open")
	require.ErrorIs(t, err, member.ErrMemberNotFound)
}

func TestInvoker_TargetFailure(t *testing.T) {
	iv := invoke.New(member.NewIndex())

	_, err := iv.Invoke(&Door{jammed: true}, "Open")
	assert.Same(t, errJammed, err)

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = iv.Invoke(&Door{}, "Explode")
	})
}

func TestInvoker_MostDerived(t *testing.T) {
	iv := invoke.New(member.NewIndex())
	v := &Vault{}

	d, err := iv.Find(reflect.TypeOf(v), "Open")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Vault](), d.DeclaringType)

	_, err = iv.Invoke(v, "Open")
	require.NoError(t, err)
	assert.Equal(t, "opened", v.code)
	assert.True(t, v.open)

	_, err = iv.Invoke(v, "Knock")
	require.ErrorIs(t, err, member.ErrArityMismatch)
}

func TestInvoker_Statics(t *testing.T) {
	reg := statics.New()
	require.NoError(t, reg.RegisterFunc(reflect.TypeFor[Door](), "Reset", ResetDoors))
	iv := invoke.New(member.NewIndex(member.WithStatics(reg)))

	res, err := iv.Invoke((*Door)(nil), "Reset")
	require.NoError(t, err)
	assert.True(t, res.Method.Static)
	v, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, "reset", v.String())
}

func TestInvoker_Bind(t *testing.T) {
	iv := invoke.New(member.NewIndex())
	d := &Door{}

	desc, err := iv.Find(reflect.TypeOf(d), "Open")
	require.NoError(t, err)

	call := iv.Bind(reflect.ValueOf(d), desc)
	assert.False(t, d.open)

	_, err = call()
	require.NoError(t, err)
	assert.True(t, d.open)
}

func TestInvoker_ValueReceiver(t *testing.T) {
	iv := invoke.New(member.NewIndex())

	_, err := iv.Invoke(Door{}, "Open")
	require.ErrorIs(t, err, access.ErrNotAddressable, "pointer methods never run on a copy")

	res, err := iv.Invoke(Door{open: true}, "IsOpen")
	require.NoError(t, err)
	v, _ := res.First()
	assert.True(t, v.Bool())

	d := Door{}
	_, err = iv.Invoke(reflect.ValueOf(&d).Elem(), "Open")
	require.NoError(t, err, "addressable values reach pointer methods")
	assert.True(t, d.open)
}
