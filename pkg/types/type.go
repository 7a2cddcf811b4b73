package types

import (
	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
)

// StorageShape is the closed set of ways a Type lays its values out in a Block
type StorageShape int

const (
	// ShapeFixedWidth types occupy the same number of bytes at every non-null position
	ShapeFixedWidth StorageShape = iota
	// ShapeVariableWidth types occupy a per-position number of bytes
	ShapeVariableWidth
)

func (s StorageShape) String() string {
	switch s {
	case ShapeFixedWidth:
		return "fixed_width"
	case ShapeVariableWidth:
		return "variable_width"
	default:
		return "unknown"
	}
}

// Type describes how a logical data type is stored in a Block and how values in
// that representation are compared, hashed, copied and displayed.
//
// Types are immutable singletons and are compared by identity (==).
//
// Value operations accept null positions: nulls are equal to each other, order
// before every non-null value and hash to 0. Byte content of a null position is
// never read. Calling EqualTo or Hash on a type that is not Comparable, or
// CompareTo on a type that is not Orderable, panics with a capability error.
type Type interface {
	Signature() TypeSignature
	DisplayName() string
	Shape() StorageShape
	Comparable() bool
	Orderable() bool

	IsNull(b block.Block, position int) bool
	// ObjectValue returns the display value at position, or nil for a null position
	ObjectValue(b block.Block, position int) interface{}
	EqualTo(left block.Block, leftPosition int, right block.Block, rightPosition int) bool
	Hash(b block.Block, position int) uint64
	// CompareTo returns -1, 0 or 1
	CompareTo(left block.Block, leftPosition int, right block.Block, rightPosition int) int
	// AppendTo copies position, null or value, into dst as a closed entry
	AppendTo(b block.Block, position int, dst block.Builder)
}

// SliceType is implemented by variable-width types whose values are raw byte ranges
type SliceType interface {
	Type
	// Slice returns a view of the value at position; nil for a null position
	Slice(b block.Block, position int) []byte
	WriteSlice(dst block.Builder, value []byte)
	WriteSliceRange(dst block.Builder, value []byte, offset, length int)
}

// FixedWidthType is implemented by types whose non-null values have a constant byte size
type FixedWidthType interface {
	Type
	FixedSize() int
}

// traits holds the identity and capability flags shared by every storage shape
type traits struct {
	signature  TypeSignature
	display    string
	comparable bool
	orderable  bool
}

func newTraits(signature TypeSignature, comparable, orderable bool) traits {
	return traits{
		signature:  signature,
		display:    signature.String(),
		comparable: comparable,
		orderable:  orderable,
	}
}

func (t *traits) Signature() TypeSignature { return t.signature }
func (t *traits) DisplayName() string      { return t.display }
func (t *traits) String() string           { return t.display }
func (t *traits) Comparable() bool         { return t.comparable }
func (t *traits) Orderable() bool          { return t.orderable }

func (t *traits) IsNull(b block.Block, position int) bool {
	return b.IsNull(position)
}

func (t *traits) requireComparable(operation string) {
	if !t.comparable {
		panic(errors.Newf(errors.ErrorTypeCapability, "type %s is not comparable", t.display).
			WithDetail("type", t.display).
			WithDetail("operation", operation))
	}
}

func (t *traits) requireOrderable(operation string) {
	if !t.orderable {
		panic(errors.Newf(errors.ErrorTypeCapability, "type %s is not orderable", t.display).
			WithDetail("type", t.display).
			WithDetail("operation", operation))
	}
}

// compareNulls orders null positions first. ok is false when neither side is null.
func compareNulls(left block.Block, leftPosition int, right block.Block, rightPosition int) (result int, ok bool) {
	leftNull, rightNull := left.IsNull(leftPosition), right.IsNull(rightPosition)
	switch {
	case leftNull && rightNull:
		return 0, true
	case leftNull:
		return -1, true
	case rightNull:
		return 1, true
	}
	return 0, false
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
