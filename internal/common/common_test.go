package common

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample[T any] struct{ V T }

func TestTypeName(t *testing.T) {
	assert.Equal(t, "common.sample", TypeName(reflect.TypeFor[sample[int]]()))
	assert.Equal(t, "[]int", TypeName(reflect.TypeFor[[]int]()))
	assert.Equal(t, "int", TypeName(reflect.TypeFor[int]()))
	assert.Equal(t, "<nil>", TypeName(nil))
}

func TestIndirect(t *testing.T) {
	n := 5
	p := &n
	pp := &p

	v, ok := Indirect(reflect.ValueOf(pp))
	assert.True(t, ok)
	assert.Equal(t, 5, v.Interface())
	assert.True(t, v.CanAddr())

	var nilPtr *int
	_, ok = Indirect(reflect.ValueOf(nilPtr))
	assert.False(t, ok)

	var iface any
	_, ok = Indirect(reflect.ValueOf(&iface).Elem())
	assert.False(t, ok)

	_, ok = Indirect(reflect.Value{})
	assert.False(t, ok)
}

func TestValueOfPassesReflectValues(t *testing.T) {
	rv := reflect.ValueOf(3)
	assert.Equal(t, rv, ValueOf(rv))
	assert.Equal(t, 3, ValueOf(3).Interface())
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, reflect.TypeFor[int](), Deref(reflect.TypeFor[**int]()))
	assert.Nil(t, Deref(nil))
}
