package types

// Base names of the built-in types
const (
	VarbinaryName = "varbinary"
	VarcharName   = "varchar"
	BigintName    = "bigint"
	DoubleName    = "double"
	BooleanName   = "boolean"
	QDigestName   = "qdigest"
	TDigestName   = "tdigest"
)

// StandardTypes returns the built-in leaf types
func StandardTypes() []Type {
	return []Type{Varbinary, Varchar, Bigint, Double, Boolean}
}

// StandardParametricTypes returns the built-in parametric descriptors
func StandardParametricTypes() []ParametricType {
	return []ParametricType{QDigest, TDigest}
}

var (
	_ SliceType      = (*VarbinaryType)(nil)
	_ SliceType      = (*VarcharType)(nil)
	_ SliceType      = (*DigestType)(nil)
	_ FixedWidthType = (*BigintType)(nil)
	_ FixedWidthType = (*DoubleType)(nil)
	_ FixedWidthType = (*BooleanType)(nil)
)
