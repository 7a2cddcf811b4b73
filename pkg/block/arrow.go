package block

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/coltype/pkg/errors"
)

// ArrowBlock exposes an Arrow binary array through the Block contract.
// It holds a reference on the array until Release is called.
type ArrowBlock struct {
	arr *array.Binary
}

// NewArrowBlock wraps arr and retains it
func NewArrowBlock(arr *array.Binary) *ArrowBlock {
	arr.Retain()
	return &ArrowBlock{arr: arr}
}

// Array returns the underlying Arrow array
func (b *ArrowBlock) Array() *array.Binary { return b.arr }

// Release drops the block's reference on the Arrow array
func (b *ArrowBlock) Release() {
	if b.arr != nil {
		b.arr.Release()
		b.arr = nil
	}
}

func (b *ArrowBlock) PositionCount() int { return b.arr.Len() }

func (b *ArrowBlock) IsNull(position int) bool {
	checkPosition(position, b.arr.Len())
	return b.arr.IsNull(position)
}

func (b *ArrowBlock) SliceLength(position int) int {
	checkPosition(position, b.arr.Len())
	if b.arr.IsNull(position) {
		return 0
	}
	return b.arr.ValueLen(position)
}

func (b *ArrowBlock) Slice(position, offset, length int) []byte {
	checkRange(position, offset, length, b.SliceLength(position))
	if length == 0 {
		return []byte{}
	}
	v := b.arr.Value(position)
	return v[offset : offset+length : offset+length]
}

func (b *ArrowBlock) Equals(position, offset int, other Block, otherPosition, otherOffset, length int) bool {
	return equalRanges(b, position, offset, other, otherPosition, otherOffset, length)
}

func (b *ArrowBlock) Hash(position, offset, length int) uint64 {
	return HashBytes(b.Slice(position, offset, length))
}

func (b *ArrowBlock) CompareBytes(position, offset, length int, other Block, otherPosition, otherOffset, otherLength int) int {
	return compareRanges(b, position, offset, length, other, otherPosition, otherOffset, otherLength)
}

func (b *ArrowBlock) WriteBytesTo(position, offset, length int, dst Builder) {
	dst.WriteBytes(b.Slice(position, offset, length), 0, length)
}

// ArrowBlockBuilder builds ArrowBlocks on top of an Arrow BinaryBuilder.
// Bytes of the open entry are staged and appended to Arrow on CloseEntry.
type ArrowBlockBuilder struct {
	builder      *array.BinaryBuilder
	pending      []byte
	entryOpen    bool
	maxEntrySize int
	built        bool
	released     bool
	err          error
}

// NewArrowBlockBuilder creates a builder allocating from mem; nil mem uses the Go allocator
func NewArrowBlockBuilder(mem memory.Allocator, maxEntrySize int) *ArrowBlockBuilder {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if maxEntrySize <= 0 || maxEntrySize > MaxRepresentableEntrySize {
		maxEntrySize = DefaultMaxEntrySize
	}
	return &ArrowBlockBuilder{
		builder:      array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary),
		maxEntrySize: maxEntrySize,
	}
}

func (b *ArrowBlockBuilder) WriteBytes(src []byte, offset, length int) Builder {
	if !b.usable() {
		return b
	}
	if err := checkSource(src, offset, length); err != nil {
		b.err = err
		return b
	}
	if len(b.pending)+length > b.maxEntrySize {
		b.err = errors.Newf(errors.ErrorTypeValidation,
			"entry of %d bytes exceeds maximum entry size %d", len(b.pending)+length, b.maxEntrySize).
			WithDetail("position", b.builder.Len())
		return b
	}
	b.entryOpen = true
	b.pending = append(b.pending, src[offset:offset+length]...)
	return b
}

func (b *ArrowBlockBuilder) CloseEntry() Builder {
	if !b.usable() {
		return b
	}
	b.builder.Append(b.pending)
	b.pending = b.pending[:0]
	b.entryOpen = false
	return b
}

func (b *ArrowBlockBuilder) AppendNull() Builder {
	if !b.usable() {
		return b
	}
	if b.entryOpen {
		b.err = errors.New(errors.ErrorTypeValidation, "cannot append null while an entry is open")
		return b
	}
	b.builder.AppendNull()
	return b
}

func (b *ArrowBlockBuilder) PositionCount() int { return b.builder.Len() }

func (b *ArrowBlockBuilder) Err() error { return b.err }

// Build returns an *ArrowBlock owning the new array and releases the builder.
// A builder holding a sticky error is released and returns that error.
func (b *ArrowBlockBuilder) Build() (Block, error) {
	if b.err != nil {
		b.Release()
		return nil, b.err
	}
	if b.built {
		return nil, errors.New(errors.ErrorTypeValidation, "builder already built")
	}
	if b.entryOpen {
		return nil, errors.New(errors.ErrorTypeValidation, "cannot build with an open entry")
	}
	b.built = true

	arr := b.builder.NewBinaryArray()
	b.Release()
	// NewArrowBlock retains; hand over the builder's reference instead
	blk := NewArrowBlock(arr)
	arr.Release()
	return blk, nil
}

// Release frees the builder's buffers without building. It is safe to call
// more than once and after Build.
func (b *ArrowBlockBuilder) Release() {
	if b.released {
		return
	}
	b.released = true
	b.builder.Release()
}

func (b *ArrowBlockBuilder) usable() bool {
	if b.err != nil {
		return false
	}
	if b.built {
		b.err = errors.New(errors.ErrorTypeValidation, "builder already built")
		return false
	}
	if b.released {
		b.err = errors.New(errors.ErrorTypeValidation, "builder released")
		return false
	}
	return true
}
