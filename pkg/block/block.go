// Package block defines the columnar Block contract consumed by the type system
// and the Builder contract values are appended through.
//
// A Block holds PositionCount positions. Each position is either null or a byte
// range whose meaning is defined entirely by the Type reading it. Types never
// look inside a Block's storage directly; they go through the byte-range
// primitives below, which keeps every Type independent of how a particular Block
// lays out its memory.
//
// Two implementations are provided:
//
//   - VariableWidthBlock: offsets + contiguous data + bit-packed null mask
//   - ArrowBlock: an adapter over an Apache Arrow binary array
//
// Both hash content with HashBytes, so equal byte ranges hash equally no matter
// which implementation holds them.
package block

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"github.com/ajitpratap0/coltype/pkg/errors"
)

// Block is a read-only columnar container of positions.
//
// Slice returns a view into the block's storage; callers must not modify it and
// must copy it if it outlives the block.
type Block interface {
	PositionCount() int
	IsNull(position int) bool
	SliceLength(position int) int
	Slice(position, offset, length int) []byte
	Equals(position, offset int, other Block, otherPosition, otherOffset, length int) bool
	Hash(position, offset, length int) uint64
	CompareBytes(position, offset, length int, other Block, otherPosition, otherOffset, otherLength int) int
	WriteBytesTo(position, offset, length int, dst Builder)
}

// Builder accumulates entries for a new Block.
//
// An entry is opened implicitly by the first WriteBytes and finished with
// CloseEntry; AppendNull adds a null entry. Failures are sticky: once Err is
// non-nil every later call is a no-op and Build returns the error.
type Builder interface {
	WriteBytes(src []byte, offset, length int) Builder
	CloseEntry() Builder
	AppendNull() Builder
	PositionCount() int
	Err() error
	Build() (Block, error)
}

// HashBytes is the content hash shared by every Block implementation
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Range returns the bytes of a whole position, or nil for a null position
func Range(b Block, position int) []byte {
	if b.IsNull(position) {
		return nil
	}
	return b.Slice(position, 0, b.SliceLength(position))
}

// equalRanges implements Block.Equals for any pair of implementations
func equalRanges(left Block, position, offset int, right Block, otherPosition, otherOffset, length int) bool {
	return bytes.Equal(
		left.Slice(position, offset, length),
		right.Slice(otherPosition, otherOffset, length),
	)
}

// compareRanges implements Block.CompareBytes: unsigned lexicographic order
func compareRanges(left Block, position, offset, length int, right Block, otherPosition, otherOffset, otherLength int) int {
	return bytes.Compare(
		left.Slice(position, offset, length),
		right.Slice(otherPosition, otherOffset, otherLength),
	)
}

func checkPosition(position, count int) {
	if position < 0 || position >= count {
		panic(errors.Newf(errors.ErrorTypeData, "position %d out of range [0, %d)", position, count).
			WithDetail("position", position))
	}
}

func checkRange(position, offset, length, entryLength int) {
	if offset < 0 || length < 0 || offset+length > entryLength {
		panic(errors.Newf(errors.ErrorTypeData,
			"byte range [%d, %d) out of bounds for position %d of length %d",
			offset, offset+length, position, entryLength).
			WithDetail("position", position))
	}
}

func checkSource(src []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(src) {
		return errors.Newf(errors.ErrorTypeValidation,
			"source range [%d, %d) out of bounds for %d bytes", offset, offset+length, len(src))
	}
	return nil
}
