package options_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspector-binding/options"
)

func TestMemberEnum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, options.MemberEnum(7), options.MemberEnum(options.MemberAll))
	assert.True(t, options.MemberEnum(options.MemberAll).Has(options.MemberProperty))
	assert.False(t, options.MemberField.Has(options.MemberMethod))
	assert.False(t, options.MemberField.Has(options.MemberNone))

	kinds := slices.Collect((options.MemberField | options.MemberMethod).Each())
	assert.Equal(t, []options.MemberEnum{options.MemberField, options.MemberMethod}, kinds)

	assert.Equal(t, "field|method", (options.MemberField | options.MemberMethod).String())
	assert.Equal(t, "none", options.MemberEnum(options.MemberNone).String())
}

func TestParseShape(t *testing.T) {
	t.Parallel()

	for _, want := range []options.ShapeEnum{options.ShapeNumber, options.ShapeEnumerable, options.ShapeAction} {
		got, err := options.ParseShape(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := options.ParseShape("text")
	require.Error(t, err)
	assert.Equal(t, "ShapeEnum(0)", options.ShapeEnum(0).String())
}
