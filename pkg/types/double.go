package types

import (
	"cmp"
	"encoding/binary"
	"math"

	"github.com/ajitpratap0/coltype/pkg/block"
)

// canonicalNaN is the bit pattern every NaN is folded to before equality and hashing
const canonicalNaN = 0x7ff8000000000000

// DoubleType is an IEEE-754 binary64 stored as 8 little-endian bytes.
//
// All NaN payloads are equal to each other and sort after +Inf. -0 and +0 are
// distinct values with -0 ordered first.
type DoubleType struct {
	fixedWidthType
}

// Double is the only DoubleType instance
var Double = &DoubleType{
	fixedWidthType: newFixedWidthType(NewTypeSignature(DoubleName), 8, true, true),
}

func (t *DoubleType) ObjectValue(b block.Block, position int) interface{} {
	if b.IsNull(position) {
		return nil
	}
	return t.GetDouble(b, position)
}

func (t *DoubleType) EqualTo(left block.Block, leftPosition int, right block.Block, rightPosition int) bool {
	return t.equalWith(left, leftPosition, right, rightPosition, func(a, b []byte) bool {
		return canonicalBits(a) == canonicalBits(b)
	})
}

func (t *DoubleType) Hash(b block.Block, position int) uint64 {
	return t.hashWith(b, position, func(v []byte) uint64 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], canonicalBits(v))
		return block.HashBytes(buf[:])
	})
}

func (t *DoubleType) CompareTo(left block.Block, leftPosition int, right block.Block, rightPosition int) int {
	return t.compareWith(left, leftPosition, right, rightPosition, func(a, b []byte) int {
		return compareDoubles(decodeDouble(a), decodeDouble(b))
	})
}

// GetDouble decodes the value at a non-null position
func (t *DoubleType) GetDouble(b block.Block, position int) float64 {
	return decodeDouble(t.value(b, position, "GetDouble"))
}

// WriteDouble appends v as one entry
func (t *DoubleType) WriteDouble(dst block.Builder, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	t.write(dst, buf[:])
}

func decodeDouble(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func canonicalBits(b []byte) uint64 {
	v := decodeDouble(b)
	if math.IsNaN(v) {
		return canonicalNaN
	}
	return math.Float64bits(v)
}

// compareDoubles is a total order: -Inf < ... < -0 < +0 < ... < +Inf < NaN
func compareDoubles(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if a == b && a == 0 {
		// separate the zeros by sign bit
		return cmp.Compare(b2i(!math.Signbit(a)), b2i(!math.Signbit(b)))
	}
	return cmp.Compare(a, b)
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
