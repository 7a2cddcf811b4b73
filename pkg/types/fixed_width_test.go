package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
	"github.com/ajitpratap0/coltype/pkg/testutil"
)

func buildBlock(t *testing.T, write func(b block.Builder)) block.Block {
	t.Helper()
	builder := block.NewVariableWidthBlockBuilder(nil)
	write(builder)
	blk, err := builder.Build()
	require.NoError(t, err)
	return blk
}

func TestBigint(t *testing.T) {
	values := []int64{math.MinInt64, -1, 0, 1, 255, 256, math.MaxInt64}
	blk := buildBlock(t, func(b block.Builder) {
		for _, v := range values {
			Bigint.WriteLong(b, v)
		}
		b.AppendNull()
	})

	for i, v := range values {
		assert.Equal(t, v, Bigint.GetLong(blk, i))
		assert.Equal(t, v, Bigint.ObjectValue(blk, i))
	}
	assert.Nil(t, Bigint.ObjectValue(blk, len(values)))

	// numeric, not byte, order: -1 is 0xff.. little-endian
	for i := range values {
		for j := range values {
			want := 0
			switch {
			case values[i] < values[j]:
				want = -1
			case values[i] > values[j]:
				want = 1
			}
			assert.Equal(t, want, Bigint.CompareTo(blk, i, blk, j), "%d vs %d", values[i], values[j])
			assert.Equal(t, i == j, Bigint.EqualTo(blk, i, blk, j))
		}
	}

	assert.Equal(t, 8, Bigint.FixedSize())
	assert.Equal(t, ShapeFixedWidth, Bigint.Shape())
}

func TestDouble(t *testing.T) {
	otherNaN := math.Float64frombits(0x7ff0000000000123)
	values := []float64{
		math.NaN(),
		otherNaN,
		math.Copysign(0, -1),
		0,
		math.Inf(1),
		-1.5,
		-1.5,
	}
	blk := buildBlock(t, func(b block.Builder) {
		for _, v := range values {
			Double.WriteDouble(b, v)
		}
	})

	assert.True(t, Double.EqualTo(blk, 0, blk, 1), "NaN payloads are equal")
	assert.Equal(t, Double.Hash(blk, 0), Double.Hash(blk, 1))
	assert.Equal(t, 0, Double.CompareTo(blk, 0, blk, 1))

	assert.False(t, Double.EqualTo(blk, 2, blk, 3))
	assert.Equal(t, -1, Double.CompareTo(blk, 2, blk, 3), "-0 orders before +0")

	assert.Equal(t, 1, Double.CompareTo(blk, 0, blk, 4), "NaN orders after +Inf")
	assert.Equal(t, -1, Double.CompareTo(blk, 5, blk, 2))

	assert.True(t, Double.EqualTo(blk, 5, blk, 6))
	assert.Equal(t, Double.Hash(blk, 5), Double.Hash(blk, 6))
	assert.Equal(t, -1.5, Double.GetDouble(blk, 5))

	for i := 0; i < blk.PositionCount(); i++ {
		for j := 0; j < blk.PositionCount(); j++ {
			cmp := Double.CompareTo(blk, i, blk, j)
			assert.Equal(t, -cmp, Double.CompareTo(blk, j, blk, i))
			assert.Equal(t, cmp == 0, Double.EqualTo(blk, i, blk, j))
		}
	}
}

func TestBoolean(t *testing.T) {
	blk := buildBlock(t, func(b block.Builder) {
		Boolean.WriteBoolean(b, false)
		Boolean.WriteBoolean(b, true)
		Boolean.WriteBoolean(b, true)
		b.AppendNull()
	})

	assert.Equal(t, false, Boolean.ObjectValue(blk, 0))
	assert.Equal(t, true, Boolean.ObjectValue(blk, 1))
	assert.Nil(t, Boolean.ObjectValue(blk, 3))
	assert.Equal(t, -1, Boolean.CompareTo(blk, 0, blk, 1))
	assert.True(t, Boolean.EqualTo(blk, 1, blk, 2))
	assert.Equal(t, Boolean.Hash(blk, 1), Boolean.Hash(blk, 2))
	assert.Equal(t, -1, Boolean.CompareTo(blk, 3, blk, 0), "null orders first")
}

func TestBooleanRejectsInvalidByte(t *testing.T) {
	blk := testutil.BuildBlock(t, nil, []byte{2})

	testutil.RequirePanicType(t, errors.ErrorTypeData, func() { Boolean.GetBoolean(blk, 0) })
}

func TestFixedWidthLengthMismatchPanics(t *testing.T) {
	blk := testutil.BuildBlock(t, nil, []byte{1, 2, 3})

	err := testutil.RequirePanicType(t, errors.ErrorTypeData, func() { Bigint.Hash(blk, 0) })
	assert.Contains(t, err.Error(), "has 3 bytes, expected 8")
}

func TestFixedWidthAppendTo(t *testing.T) {
	src := buildBlock(t, func(b block.Builder) {
		Bigint.WriteLong(b, 42)
		b.AppendNull()
	})
	dst := block.NewVariableWidthBlockBuilder(nil)
	Bigint.AppendTo(src, 0, dst)
	Bigint.AppendTo(src, 1, dst)
	out, err := dst.Build()
	require.NoError(t, err)

	assert.Equal(t, int64(42), Bigint.GetLong(out, 0))
	assert.True(t, out.IsNull(1))
}
