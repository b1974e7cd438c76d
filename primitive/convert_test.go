package primitive_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector-binding/primitive"
)

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindUint16.IsNumber())
	assert.True(t, primitive.KindUint16.IsInteger())
	assert.True(t, primitive.KindUint16.IsUnsigned())
	assert.False(t, primitive.KindUint16.IsSigned())
	assert.True(t, primitive.KindFloat32.IsFloat())
	assert.False(t, primitive.KindBool.IsNumber())
	assert.False(t, primitive.KindString.IsNumber())

	assert.Equal(t, 16, primitive.KindInt16.Bits())
	assert.Equal(t, 32, primitive.KindFloat32.Bits())
	assert.Equal(t, 64, primitive.KindInt.Bits()) // tests run on 64-bit targets
	assert.Panics(t, func() { primitive.KindString.Bits() })
}

func TestToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"int", 7, 7},
		{"int8", int8(-3), -3},
		{"uint64", uint64(10), 10},
		{"float32", float32(1.5), 1.5},
		{"float64", 2.25, 2.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := primitive.ToFloat(reflect.ValueOf(tt.in))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := primitive.ToFloat(reflect.ValueOf("10"))
	require.ErrorIs(t, err, primitive.ErrNotNumber)

	_, err = primitive.ToFloat(reflect.Value{})
	require.ErrorIs(t, err, primitive.ErrNotNumber)
}

func TestToInt_Truncates(t *testing.T) {
	t.Parallel()

	n, err := primitive.ToInt(reflect.ValueOf(7.9))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = primitive.ToInt(reflect.ValueOf(-7.9))
	require.NoError(t, err)
	assert.Equal(t, int64(-7), n)

	_, err = primitive.ToInt(reflect.ValueOf(true))
	require.ErrorIs(t, err, primitive.ErrNotNumber)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	type Health int16

	tests := []struct {
		name string
		in   any
		dst  reflect.Type
		want any
	}{
		{"int to float64", 3, reflect.TypeFor[float64](), float64(3)},
		{"int to float32", 3, reflect.TypeFor[float32](), float32(3)},
		{"float to int truncates", 9.99, reflect.TypeFor[int](), 9},
		{"negative float to int truncates", -2.5, reflect.TypeFor[int32](), int32(-2)},
		{"float to named int", 120.7, reflect.TypeFor[Health](), Health(120)},
		{"uint to int8", uint(100), reflect.TypeFor[int8](), int8(100)},
		{"int to uint16", 65535, reflect.TypeFor[uint16](), uint16(65535)},
		{"float64 to float32", 0.5, reflect.TypeFor[float32](), float32(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := primitive.Convert(reflect.ValueOf(tt.in), tt.dst)
			require.NoError(t, err)
			assert.Equal(t, tt.dst, got.Type())
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	_, err := primitive.Convert(reflect.ValueOf(300), reflect.TypeFor[int8]())
	require.ErrorIs(t, err, primitive.ErrOverflow)

	_, err = primitive.Convert(reflect.ValueOf(-1), reflect.TypeFor[uint]())
	require.ErrorIs(t, err, primitive.ErrOverflow)

	_, err = primitive.Convert(reflect.ValueOf(200.5), reflect.TypeFor[int8]())
	require.ErrorIs(t, err, primitive.ErrOverflow)

	_, err = primitive.Convert(reflect.ValueOf(float32(-0.5)), reflect.TypeFor[uint8]())
	require.NoError(t, err, "truncates to zero before the range check")

	_, err = primitive.Convert(reflect.ValueOf(math.NaN()), reflect.TypeFor[int32]())
	require.ErrorIs(t, err, primitive.ErrOverflow)

	_, err = primitive.ToInt(reflect.ValueOf(math.Inf(1)))
	require.Error(t, err)

	_, err = primitive.Convert(reflect.ValueOf(math.MaxFloat64), reflect.TypeFor[float32]())
	require.ErrorIs(t, err, primitive.ErrOverflow)

	_, err = primitive.Convert(reflect.ValueOf("1"), reflect.TypeFor[int]())
	require.ErrorIs(t, err, primitive.ErrNotNumber)

	_, err = primitive.Convert(reflect.ValueOf(1), reflect.TypeFor[string]())
	require.ErrorIs(t, err, primitive.ErrNotNumber)
}
