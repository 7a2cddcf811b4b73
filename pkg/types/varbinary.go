package types

import (
	"github.com/ajitpratap0/coltype/pkg/block"
)

// VarbinaryType is the opaque byte sequence type. Values are compared byte for
// byte, ordered lexicographically as unsigned bytes and displayed as SQLVarbinary.
type VarbinaryType struct {
	variableWidthType
}

// Varbinary is the only VarbinaryType instance
var Varbinary = &VarbinaryType{
	variableWidthType: newVariableWidthType(NewTypeSignature(VarbinaryName), true, true),
}

// IsVarbinaryType reports whether t is the varbinary type
func IsVarbinaryType(t Type) bool {
	_, ok := t.(*VarbinaryType)
	return ok
}

// ObjectValue returns an SQLVarbinary owning a copy of the value, or nil
func (t *VarbinaryType) ObjectValue(b block.Block, position int) interface{} {
	if b.IsNull(position) {
		return nil
	}
	return NewSQLVarbinary(copyRange(b, position))
}
