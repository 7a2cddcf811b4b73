package types

import (
	"github.com/ajitpratap0/coltype/pkg/block"
)

// variableWidthType implements every value operation of a variable-width type in
// terms of the Block's byte-range primitives. Concrete types embed it and add
// ObjectValue.
type variableWidthType struct {
	traits
}

func newVariableWidthType(signature TypeSignature, comparable, orderable bool) variableWidthType {
	return variableWidthType{traits: newTraits(signature, comparable, orderable)}
}

func (t *variableWidthType) Shape() StorageShape { return ShapeVariableWidth }

func (t *variableWidthType) EqualTo(left block.Block, leftPosition int, right block.Block, rightPosition int) bool {
	t.requireComparable("EqualTo")
	if _, ok := compareNulls(left, leftPosition, right, rightPosition); ok {
		return left.IsNull(leftPosition) && right.IsNull(rightPosition)
	}

	leftLength := left.SliceLength(leftPosition)
	rightLength := right.SliceLength(rightPosition)
	if leftLength != rightLength {
		return false
	}
	return left.Equals(leftPosition, 0, right, rightPosition, 0, leftLength)
}

func (t *variableWidthType) Hash(b block.Block, position int) uint64 {
	t.requireComparable("Hash")
	if b.IsNull(position) {
		return 0
	}
	return b.Hash(position, 0, b.SliceLength(position))
}

func (t *variableWidthType) CompareTo(left block.Block, leftPosition int, right block.Block, rightPosition int) int {
	t.requireOrderable("CompareTo")
	if result, ok := compareNulls(left, leftPosition, right, rightPosition); ok {
		return result
	}

	leftLength := left.SliceLength(leftPosition)
	rightLength := right.SliceLength(rightPosition)
	return sign(left.CompareBytes(leftPosition, 0, leftLength, right, rightPosition, 0, rightLength))
}

func (t *variableWidthType) AppendTo(b block.Block, position int, dst block.Builder) {
	if b.IsNull(position) {
		dst.AppendNull()
		return
	}
	b.WriteBytesTo(position, 0, b.SliceLength(position), dst)
	dst.CloseEntry()
}

// Slice returns a view of the value at position, nil if the position is null
func (t *variableWidthType) Slice(b block.Block, position int) []byte {
	return block.Range(b, position)
}

// WriteSlice appends value as one entry
func (t *variableWidthType) WriteSlice(dst block.Builder, value []byte) {
	t.WriteSliceRange(dst, value, 0, len(value))
}

// WriteSliceRange appends value[offset:offset+length] as one entry
func (t *variableWidthType) WriteSliceRange(dst block.Builder, value []byte, offset, length int) {
	dst.WriteBytes(value, offset, length).CloseEntry()
}

// copyRange returns an owned copy of the value at position, nil if null
func copyRange(b block.Block, position int) []byte {
	if b.IsNull(position) {
		return nil
	}
	view := b.Slice(position, 0, b.SliceLength(position))
	owned := make([]byte, len(view))
	copy(owned, view)
	return owned
}
