package types

import (
	"github.com/ajitpratap0/coltype/pkg/block"
)

// VarcharType is the unbounded UTF-8 string type. Ordering is by byte, which for
// valid UTF-8 matches code point order.
type VarcharType struct {
	variableWidthType
}

// Varchar is the only VarcharType instance
var Varchar = &VarcharType{
	variableWidthType: newVariableWidthType(NewTypeSignature(VarcharName), true, true),
}

func (t *VarcharType) ObjectValue(b block.Block, position int) interface{} {
	if b.IsNull(position) {
		return nil
	}
	return string(b.Slice(position, 0, b.SliceLength(position)))
}

// WriteString appends s as one entry
func (t *VarcharType) WriteString(dst block.Builder, s string) {
	t.WriteSlice(dst, []byte(s))
}
