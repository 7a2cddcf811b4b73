package types

import (
	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
)

// fixedWidthType carries the null handling and length checking shared by types
// whose values all occupy size bytes. Concrete types supply the value semantics
// through the equalWith/hashWith/compareWith helpers.
type fixedWidthType struct {
	traits
	size int
}

func newFixedWidthType(signature TypeSignature, size int, comparable, orderable bool) fixedWidthType {
	return fixedWidthType{traits: newTraits(signature, comparable, orderable), size: size}
}

func (t *fixedWidthType) Shape() StorageShape { return ShapeFixedWidth }

// FixedSize returns the byte size of every non-null value
func (t *fixedWidthType) FixedSize() int { return t.size }

func (t *fixedWidthType) AppendTo(b block.Block, position int, dst block.Builder) {
	if b.IsNull(position) {
		dst.AppendNull()
		return
	}
	t.value(b, position, "AppendTo")
	b.WriteBytesTo(position, 0, t.size, dst)
	dst.CloseEntry()
}

// value returns the bytes at a non-null position, panicking if the stored
// length does not match the type's size
func (t *fixedWidthType) value(b block.Block, position int, operation string) []byte {
	length := b.SliceLength(position)
	if length != t.size {
		panic(errors.Newf(errors.ErrorTypeData,
			"%s value at position %d has %d bytes, expected %d", t.display, position, length, t.size).
			WithDetail("type", t.display).
			WithDetail("operation", operation))
	}
	return b.Slice(position, 0, length)
}

func (t *fixedWidthType) equalWith(left block.Block, leftPosition int, right block.Block, rightPosition int, equal func(a, b []byte) bool) bool {
	t.requireComparable("EqualTo")
	if _, ok := compareNulls(left, leftPosition, right, rightPosition); ok {
		return left.IsNull(leftPosition) && right.IsNull(rightPosition)
	}
	return equal(t.value(left, leftPosition, "EqualTo"), t.value(right, rightPosition, "EqualTo"))
}

func (t *fixedWidthType) hashWith(b block.Block, position int, hash func(v []byte) uint64) uint64 {
	t.requireComparable("Hash")
	if b.IsNull(position) {
		return 0
	}
	return hash(t.value(b, position, "Hash"))
}

func (t *fixedWidthType) compareWith(left block.Block, leftPosition int, right block.Block, rightPosition int, compare func(a, b []byte) int) int {
	t.requireOrderable("CompareTo")
	if result, ok := compareNulls(left, leftPosition, right, rightPosition); ok {
		return result
	}
	return sign(compare(t.value(left, leftPosition, "CompareTo"), t.value(right, rightPosition, "CompareTo")))
}

func (t *fixedWidthType) write(dst block.Builder, encoded []byte) {
	dst.WriteBytes(encoded, 0, t.size).CloseEntry()
}
