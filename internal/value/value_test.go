package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeltio/simforge/internal/simerr"
	"github.com/joeltio/simforge/internal/value"
)

func TestGetTypeMismatch(t *testing.T) {
	v := value.NewInt64(5)
	_, err := value.GetInt32(v)
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.TypeMismatch))
}

func TestCoerceNumericWidening(t *testing.T) {
	// S4: SetAttribute(height, INT32 5) against a declared INT64 schema.
	v := value.NewInt32(5)
	coerced, err := value.CoerceTo(value.Primitive(value.Int64), v)
	require.NoError(t, err)
	assert.True(t, coerced.IsTag(value.Int64))
	got, err := value.GetInt64(coerced)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got)
}

func TestCoerceExactMismatchFails(t *testing.T) {
	_, err := value.CoerceTo(value.Primitive(value.String), value.NewInt64(5))
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.TypeMismatch))
}

func TestCoerceArrayRequiresExactElementType(t *testing.T) {
	arr := value.NewArray(value.Int32, []int{2}, nil)
	_, err := value.CoerceTo(value.ArrayType(value.Float32, 1), arr)
	require.Error(t, err)
}

func TestPromote(t *testing.T) {
	cases := []struct {
		a, b, want value.Tag
	}{
		{value.Int32, value.Int32, value.Int32},
		{value.Int32, value.Int64, value.Int64},
		{value.Int64, value.Int32, value.Int64},
		{value.Int32, value.Float32, value.Float32},
		{value.Int64, value.Float64, value.Float64},
		{value.Float32, value.Float64, value.Float64},
	}
	for _, c := range cases {
		got, err := value.Promote(c.a, c.b)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestPromoteRejectsNonNumeric(t *testing.T) {
	_, err := value.Promote(value.Bool, value.Int32)
	require.Error(t, err)
	assert.True(t, simerr.Of(err, simerr.TypeMismatch))
}

func TestMaxMinTieReturnsX(t *testing.T) {
	x, y := value.NewInt64(7), value.NewInt64(7)
	got, err := value.Max(x, y)
	require.NoError(t, err)
	gv, _ := value.GetInt64(got)
	assert.EqualValues(t, 7, gv)

	got, err = value.Min(x, y)
	require.NoError(t, err)
	gv, _ = value.GetInt64(got)
	assert.EqualValues(t, 7, gv)
}

func TestApplyBinaryNumericPromotesResultTag(t *testing.T) {
	// Property 3 in spec §8: result's declared type equals the promotion tag.
	got, err := value.ApplyBinaryNumeric(value.NewInt32(2), value.NewInt64(3), value.BinaryNumeric{
		I32: func(a, b int32) int32 { return a + int32(b) },
		I64: func(a, b int64) int64 { return a + b },
		F32: func(a, b float32) float32 { return a + b },
		F64: func(a, b float64) float64 { return a + b },
	})
	require.NoError(t, err)
	assert.Equal(t, value.Int64, got.Declared().Tag)
	gv, _ := value.GetInt64(got)
	assert.EqualValues(t, 5, gv)
}

func TestZero(t *testing.T) {
	assert.Equal(t, "0", value.Zero(value.Primitive(value.Int64)).String())
	assert.Equal(t, "false", value.Zero(value.Primitive(value.Bool)).String())
	assert.Equal(t, "", value.Zero(value.Primitive(value.String)).String())
}
