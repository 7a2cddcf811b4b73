package block

import (
	"math"

	"github.com/ajitpratap0/coltype/pkg/errors"
)

const (
	// DefaultMaxEntrySize caps a single position at 1 GiB
	DefaultMaxEntrySize = 1 << 30
	// MaxRepresentableEntrySize is the largest entry int32 offsets can address
	MaxRepresentableEntrySize = math.MaxInt32

	defaultExpectedEntries = 1024
	defaultExpectedBytes   = 32
)

// VariableWidthBlock stores each position as a byte range of a shared buffer.
// offsets has PositionCount()+1 entries; position i spans data[offsets[i]:offsets[i+1]].
type VariableWidthBlock struct {
	offsets   []int32
	data      []byte
	nulls     []uint64 // bit-packed: 64 positions per word, set bit = null
	positions int
	hasNulls  bool
}

// PositionCount returns the number of positions in the block
func (b *VariableWidthBlock) PositionCount() int { return b.positions }

// IsNull reports whether position holds no value
func (b *VariableWidthBlock) IsNull(position int) bool {
	checkPosition(position, b.positions)
	if !b.hasNulls {
		return false
	}
	return b.nulls[position/64]&(1<<(position%64)) != 0
}

// SliceLength returns the byte length of position; zero for nulls
func (b *VariableWidthBlock) SliceLength(position int) int {
	checkPosition(position, b.positions)
	return int(b.offsets[position+1] - b.offsets[position])
}

// Slice returns a view of length bytes starting at offset within position
func (b *VariableWidthBlock) Slice(position, offset, length int) []byte {
	entryLength := b.SliceLength(position)
	checkRange(position, offset, length, entryLength)
	start := int(b.offsets[position]) + offset
	return b.data[start : start+length : start+length]
}

// Equals compares a byte range of this block with one of other
func (b *VariableWidthBlock) Equals(position, offset int, other Block, otherPosition, otherOffset, length int) bool {
	return equalRanges(b, position, offset, other, otherPosition, otherOffset, length)
}

// Hash hashes a byte range of position with HashBytes
func (b *VariableWidthBlock) Hash(position, offset, length int) uint64 {
	return HashBytes(b.Slice(position, offset, length))
}

// CompareBytes orders two byte ranges lexicographically as unsigned bytes
func (b *VariableWidthBlock) CompareBytes(position, offset, length int, other Block, otherPosition, otherOffset, otherLength int) int {
	return compareRanges(b, position, offset, length, other, otherPosition, otherOffset, otherLength)
}

// WriteBytesTo copies a byte range into dst without closing the entry
func (b *VariableWidthBlock) WriteBytesTo(position, offset, length int, dst Builder) {
	dst.WriteBytes(b.Slice(position, offset, length), 0, length)
}

// SizeInBytes reports the retained size of the block's buffers
func (b *VariableWidthBlock) SizeInBytes() int64 {
	return int64(len(b.data)) + int64(len(b.offsets)*4) + int64(len(b.nulls)*8)
}

// BuilderConfig sizes a VariableWidthBlockBuilder
type BuilderConfig struct {
	ExpectedEntries       int
	ExpectedBytesPerEntry int
	MaxEntrySize          int
}

// DefaultBuilderConfig returns the defaults used by NewVariableWidthBlockBuilder(nil)
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		ExpectedEntries:       defaultExpectedEntries,
		ExpectedBytesPerEntry: defaultExpectedBytes,
		MaxEntrySize:          DefaultMaxEntrySize,
	}
}

// VariableWidthBlockBuilder builds a VariableWidthBlock
type VariableWidthBlockBuilder struct {
	offsets      []int32
	data         []byte
	nulls        []uint64
	positions    int
	hasNulls     bool
	entryOpen    bool
	entryStart   int
	maxEntrySize int
	built        bool
	err          error
}

// NewVariableWidthBlockBuilder creates a builder; a nil cfg uses DefaultBuilderConfig
func NewVariableWidthBlockBuilder(cfg *BuilderConfig) *VariableWidthBlockBuilder {
	c := DefaultBuilderConfig()
	if cfg != nil {
		if cfg.ExpectedEntries > 0 {
			c.ExpectedEntries = cfg.ExpectedEntries
		}
		if cfg.ExpectedBytesPerEntry > 0 {
			c.ExpectedBytesPerEntry = cfg.ExpectedBytesPerEntry
		}
		if cfg.MaxEntrySize > 0 {
			c.MaxEntrySize = cfg.MaxEntrySize
		}
	}
	if c.MaxEntrySize > MaxRepresentableEntrySize {
		c.MaxEntrySize = MaxRepresentableEntrySize
	}

	offsets := make([]int32, 1, c.ExpectedEntries+1)
	return &VariableWidthBlockBuilder{
		offsets:      offsets,
		data:         make([]byte, 0, c.ExpectedEntries*c.ExpectedBytesPerEntry),
		nulls:        make([]uint64, 0, c.ExpectedEntries/64+1),
		maxEntrySize: c.MaxEntrySize,
	}
}

// WriteBytes appends src[offset:offset+length] to the open entry
func (b *VariableWidthBlockBuilder) WriteBytes(src []byte, offset, length int) Builder {
	if !b.usable() {
		return b
	}
	if err := checkSource(src, offset, length); err != nil {
		b.err = err
		return b
	}
	if !b.entryOpen {
		b.entryOpen = true
		b.entryStart = len(b.data)
	}

	entrySize := len(b.data) - b.entryStart + length
	if entrySize > b.maxEntrySize {
		b.err = errors.Newf(errors.ErrorTypeValidation,
			"entry of %d bytes exceeds maximum entry size %d", entrySize, b.maxEntrySize).
			WithDetail("position", b.positions)
		return b
	}
	if len(b.data)+length > MaxRepresentableEntrySize {
		b.err = errors.New(errors.ErrorTypeValidation, "block data exceeds addressable size")
		return b
	}

	b.data = append(b.data, src[offset:offset+length]...)
	return b
}

// CloseEntry finishes the open entry; with no open entry it appends an empty value
func (b *VariableWidthBlockBuilder) CloseEntry() Builder {
	if !b.usable() {
		return b
	}
	b.entryOpen = false
	b.appendPosition(false)
	return b
}

// AppendNull appends a null position
func (b *VariableWidthBlockBuilder) AppendNull() Builder {
	if !b.usable() {
		return b
	}
	if b.entryOpen {
		b.err = errors.New(errors.ErrorTypeValidation, "cannot append null while an entry is open")
		return b
	}
	b.hasNulls = true
	b.appendPosition(true)
	return b
}

// PositionCount returns the number of closed positions
func (b *VariableWidthBlockBuilder) PositionCount() int { return b.positions }

// Err returns the first error encountered by the builder
func (b *VariableWidthBlockBuilder) Err() error { return b.err }

// Build returns the finished block. The builder cannot be used afterwards.
func (b *VariableWidthBlockBuilder) Build() (Block, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, errors.New(errors.ErrorTypeValidation, "builder already built")
	}
	if b.entryOpen {
		return nil, errors.New(errors.ErrorTypeValidation, "cannot build with an open entry")
	}
	b.built = true

	return &VariableWidthBlock{
		offsets:   b.offsets,
		data:      b.data,
		nulls:     b.nulls,
		positions: b.positions,
		hasNulls:  b.hasNulls,
	}, nil
}

func (b *VariableWidthBlockBuilder) usable() bool {
	if b.err != nil {
		return false
	}
	if b.built {
		b.err = errors.New(errors.ErrorTypeValidation, "builder already built")
		return false
	}
	return true
}

func (b *VariableWidthBlockBuilder) appendPosition(null bool) {
	wordIndex := b.positions / 64
	if wordIndex >= len(b.nulls) {
		b.nulls = append(b.nulls, 0)
	}
	if null {
		b.nulls[wordIndex] |= 1 << (b.positions % 64)
	}
	b.offsets = append(b.offsets, int32(len(b.data)))
	b.positions++
}

// FromValues builds a VariableWidthBlock holding values in order.
// A nil element becomes a null position; an empty non-nil slice is an empty value.
func FromValues(values ...[]byte) *VariableWidthBlock {
	builder := NewVariableWidthBlockBuilder(&BuilderConfig{ExpectedEntries: len(values)})
	for _, v := range values {
		if v == nil {
			builder.AppendNull()
			continue
		}
		builder.WriteBytes(v, 0, len(v)).CloseEntry()
	}
	blk, err := builder.Build()
	if err != nil {
		panic(err)
	}
	return blk.(*VariableWidthBlock)
}
