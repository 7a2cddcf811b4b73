package types

import (
	"github.com/ajitpratap0/coltype/pkg/block"
)

var (
	// QDigest builds qdigest(T), a quantile digest over bigint or double values
	QDigest ParametricType = newDigestParametricType(QDigestName, BigintName, DoubleName)
	// TDigest builds tdigest(T), a t-digest over double values
	TDigest ParametricType = newDigestParametricType(TDigestName, DoubleName)
)

// DigestType is a serialized statistical digest over an element type. Its values
// are opaque bytes: they can be copied and displayed but not compared or hashed.
type DigestType struct {
	variableWidthType
	element Type
}

func newDigestType(name string, element Type) *DigestType {
	return &DigestType{
		variableWidthType: newVariableWidthType(NewTypeSignature(name, element.Signature()), false, false),
		element:           element,
	}
}

// ElementType returns the type the digest summarises
func (t *DigestType) ElementType() Type { return t.element }

// Kind returns the digest family, qdigest or tdigest
func (t *DigestType) Kind() string { return t.signature.Base }

// ObjectValue returns the serialized digest as an SQLVarbinary, or nil
func (t *DigestType) ObjectValue(b block.Block, position int) interface{} {
	if b.IsNull(position) {
		return nil
	}
	return NewSQLVarbinary(copyRange(b, position))
}
