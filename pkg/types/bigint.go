package types

import (
	"bytes"
	"cmp"
	"encoding/binary"

	"github.com/ajitpratap0/coltype/pkg/block"
)

// BigintType is a 64-bit signed integer stored as 8 little-endian bytes
type BigintType struct {
	fixedWidthType
}

// Bigint is the only BigintType instance
var Bigint = &BigintType{
	fixedWidthType: newFixedWidthType(NewTypeSignature(BigintName), 8, true, true),
}

func (t *BigintType) ObjectValue(b block.Block, position int) interface{} {
	if b.IsNull(position) {
		return nil
	}
	return t.GetLong(b, position)
}

func (t *BigintType) EqualTo(left block.Block, leftPosition int, right block.Block, rightPosition int) bool {
	return t.equalWith(left, leftPosition, right, rightPosition, bytes.Equal)
}

func (t *BigintType) Hash(b block.Block, position int) uint64 {
	return t.hashWith(b, position, block.HashBytes)
}

func (t *BigintType) CompareTo(left block.Block, leftPosition int, right block.Block, rightPosition int) int {
	return t.compareWith(left, leftPosition, right, rightPosition, func(a, b []byte) int {
		return cmp.Compare(decodeLong(a), decodeLong(b))
	})
}

// GetLong decodes the value at a non-null position
func (t *BigintType) GetLong(b block.Block, position int) int64 {
	return decodeLong(t.value(b, position, "GetLong"))
}

// WriteLong appends v as one entry
func (t *BigintType) WriteLong(dst block.Builder, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	t.write(dst, buf[:])
}

func decodeLong(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}
