package types

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/coltype/pkg/block"
)

func randomValues(r *rand.Rand, n int) [][]byte {
	values := make([][]byte, n)
	for i := range values {
		// small alphabet and lengths so equal and prefix pairs are common
		v := make([]byte, r.Intn(4))
		for j := range v {
			v[j] = byte(r.Intn(3)) * 0x7f
		}
		values[i] = v
	}
	return values
}

func TestVarbinaryScenario(t *testing.T) {
	blk := block.FromValues(
		[]byte{0x01, 0x02},
		[]byte{0x01, 0x02, 0x03},
		[]byte{0x01, 0x02},
	)
	const a, b, c = 0, 1, 2

	assert.True(t, Varbinary.EqualTo(blk, a, blk, c))
	assert.False(t, Varbinary.EqualTo(blk, a, blk, b))
	assert.Equal(t, -1, Varbinary.CompareTo(blk, a, blk, b))
	assert.Equal(t, 1, Varbinary.CompareTo(blk, b, blk, a))
	assert.Equal(t, Varbinary.Hash(blk, a), Varbinary.Hash(blk, c))
}

func TestVarbinaryProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	values := randomValues(r, 60)
	values = append(values, nil, nil)
	blk := block.FromValues(values...)

	for i := range values {
		for j := range values {
			equal := Varbinary.EqualTo(blk, i, blk, j)
			cmp := Varbinary.CompareTo(blk, i, blk, j)

			if equal {
				assert.Equal(t, Varbinary.Hash(blk, i), Varbinary.Hash(blk, j), "equal values must hash equally: %d %d", i, j)
			}
			assert.Equal(t, -cmp, Varbinary.CompareTo(blk, j, blk, i), "antisymmetry: %d %d", i, j)
			assert.Equal(t, equal, cmp == 0, "compare==0 iff equal: %d %d", i, j)
			assert.Contains(t, []int{-1, 0, 1}, cmp)

			if values[i] != nil && values[j] != nil {
				assert.Equal(t, bytes.Compare(values[i], values[j]), cmp)
				if len(values[i]) != len(values[j]) {
					assert.False(t, equal, "different lengths are never equal: %d %d", i, j)
				}
			}
		}
	}
}

func TestVarbinaryLengthFastReject(t *testing.T) {
	// same leading content, different lengths; zero-padded tail
	blk := block.FromValues([]byte{0x00}, []byte{0x00, 0x00}, []byte{})

	assert.False(t, Varbinary.EqualTo(blk, 0, blk, 1))
	assert.False(t, Varbinary.EqualTo(blk, 0, blk, 2))
	assert.False(t, Varbinary.EqualTo(blk, 1, blk, 2))
	assert.Equal(t, -1, Varbinary.CompareTo(blk, 2, blk, 0))
}

func TestVarbinaryAcrossBlockImplementations(t *testing.T) {
	vw := block.FromValues([]byte("abc"))

	builder := block.NewArrowBlockBuilder(nil, 0)
	Varbinary.WriteSlice(builder, []byte("abc"))
	ab, err := builder.Build()
	require.NoError(t, err)
	defer ab.(*block.ArrowBlock).Release()

	assert.True(t, Varbinary.EqualTo(vw, 0, ab, 0))
	assert.Equal(t, Varbinary.Hash(vw, 0), Varbinary.Hash(ab, 0))
	assert.Equal(t, 0, Varbinary.CompareTo(ab, 0, vw, 0))
}

func TestVarbinaryObjectValue(t *testing.T) {
	blk := block.FromValues([]byte{0xde, 0xad}, nil, []byte{})

	v := Varbinary.ObjectValue(blk, 0)
	require.IsType(t, SQLVarbinary{}, v)
	assert.Equal(t, []byte{0xde, 0xad}, v.(SQLVarbinary).Bytes())

	assert.Nil(t, Varbinary.ObjectValue(blk, 1))

	empty := Varbinary.ObjectValue(blk, 2)
	require.NotNil(t, empty)
	assert.Equal(t, 0, empty.(SQLVarbinary).Len())
}

func TestVarbinaryObjectValueIsACopy(t *testing.T) {
	builder := block.NewVariableWidthBlockBuilder(nil)
	Varbinary.WriteSlice(builder, []byte{0x01})
	blk, err := builder.Build()
	require.NoError(t, err)

	v := Varbinary.ObjectValue(blk, 0).(SQLVarbinary)
	v.Bytes()[0] = 0xff

	assert.Equal(t, []byte{0x01}, Varbinary.Slice(blk, 0))
}

func TestVarbinaryWritePath(t *testing.T) {
	builder := block.NewVariableWidthBlockBuilder(&block.BuilderConfig{MaxEntrySize: 1 << 12})
	payload := bytes.Repeat([]byte{0x5a}, 1<<12)

	Varbinary.WriteSlice(builder, []byte{})
	Varbinary.WriteSlice(builder, []byte{0x01})
	Varbinary.WriteSlice(builder, payload)
	Varbinary.WriteSliceRange(builder, []byte("__range__"), 2, 5)
	require.NoError(t, builder.Err())

	blk, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, []byte{}, Varbinary.Slice(blk, 0))
	assert.Equal(t, []byte{0x01}, Varbinary.Slice(blk, 1))
	assert.Equal(t, payload, Varbinary.Slice(blk, 2))
	assert.Equal(t, []byte("range"), Varbinary.Slice(blk, 3))
}

func TestVarbinaryAppendTo(t *testing.T) {
	src := block.FromValues([]byte{0x01, 0x02}, nil, []byte{})
	dst := block.NewVariableWidthBlockBuilder(nil)

	for i := 0; i < src.PositionCount(); i++ {
		Varbinary.AppendTo(src, i, dst)
	}
	out, err := dst.Build()
	require.NoError(t, err)

	require.Equal(t, 3, out.PositionCount())
	assert.Equal(t, []byte{0x01, 0x02}, Varbinary.Slice(out, 0))
	assert.True(t, out.IsNull(1), "null must propagate as null")
	assert.False(t, out.IsNull(2), "empty value must not become null")
	assert.Equal(t, 0, out.SliceLength(2))

	for i := 0; i < src.PositionCount(); i++ {
		assert.True(t, Varbinary.EqualTo(src, i, out, i))
	}
}

func TestVarbinaryNulls(t *testing.T) {
	blk := block.FromValues(nil, nil, []byte{})

	assert.True(t, Varbinary.IsNull(blk, 0))
	assert.True(t, Varbinary.EqualTo(blk, 0, blk, 1))
	assert.False(t, Varbinary.EqualTo(blk, 0, blk, 2), "null is not the empty value")
	assert.Equal(t, -1, Varbinary.CompareTo(blk, 0, blk, 2))
	assert.Equal(t, 1, Varbinary.CompareTo(blk, 2, blk, 0))
	assert.Equal(t, uint64(0), Varbinary.Hash(blk, 0))
}

func TestVarbinaryIdentity(t *testing.T) {
	var typ Type = Varbinary

	assert.True(t, typ == Type(Varbinary))
	assert.True(t, IsVarbinaryType(typ))
	assert.False(t, IsVarbinaryType(Varchar))
	assert.Equal(t, "varbinary", typ.DisplayName())
	assert.Equal(t, ShapeVariableWidth, typ.Shape())
	assert.True(t, typ.Comparable())
	assert.True(t, typ.Orderable())
}

func TestVarchar(t *testing.T) {
	builder := block.NewVariableWidthBlockBuilder(nil)
	Varchar.WriteString(builder, "apple")
	Varchar.WriteString(builder, "ápple")
	builder.AppendNull()
	blk, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, "apple", Varchar.ObjectValue(blk, 0))
	assert.Equal(t, "ápple", Varchar.ObjectValue(blk, 1))
	assert.Nil(t, Varchar.ObjectValue(blk, 2))
	assert.Equal(t, -1, Varchar.CompareTo(blk, 0, blk, 1))
	assert.False(t, Varchar.EqualTo(blk, 0, blk, 1))
	assert.True(t, Type(Varchar) != Type(Varbinary))
}
