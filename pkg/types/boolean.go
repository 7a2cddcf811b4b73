package types

import (
	"bytes"

	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/errors"
)

// BooleanType stores one byte per value: 0 for false, 1 for true
type BooleanType struct {
	fixedWidthType
}

// Boolean is the only BooleanType instance
var Boolean = &BooleanType{
	fixedWidthType: newFixedWidthType(NewTypeSignature(BooleanName), 1, true, true),
}

func (t *BooleanType) ObjectValue(b block.Block, position int) interface{} {
	if b.IsNull(position) {
		return nil
	}
	return t.GetBoolean(b, position)
}

func (t *BooleanType) EqualTo(left block.Block, leftPosition int, right block.Block, rightPosition int) bool {
	return t.equalWith(left, leftPosition, right, rightPosition, func(a, b []byte) bool {
		return t.decode(a) == t.decode(b)
	})
}

func (t *BooleanType) Hash(b block.Block, position int) uint64 {
	return t.hashWith(b, position, func(v []byte) uint64 {
		t.decode(v)
		return block.HashBytes(v)
	})
}

func (t *BooleanType) CompareTo(left block.Block, leftPosition int, right block.Block, rightPosition int) int {
	return t.compareWith(left, leftPosition, right, rightPosition, func(a, b []byte) int {
		t.decode(a)
		t.decode(b)
		return bytes.Compare(a, b)
	})
}

// GetBoolean decodes the value at a non-null position
func (t *BooleanType) GetBoolean(b block.Block, position int) bool {
	return t.decode(t.value(b, position, "GetBoolean"))
}

// WriteBoolean appends v as one entry
func (t *BooleanType) WriteBoolean(dst block.Builder, v bool) {
	encoded := []byte{0}
	if v {
		encoded[0] = 1
	}
	t.write(dst, encoded)
}

func (t *BooleanType) decode(v []byte) bool {
	switch v[0] {
	case 0:
		return false
	case 1:
		return true
	}
	panic(errors.Newf(errors.ErrorTypeData, "invalid boolean byte 0x%02x", v[0]).
		WithDetail("type", t.display))
}
