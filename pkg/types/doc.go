// Package types is the type system for columnar value storage. It defines how a
// logical data type is represented inside a block.Block and how values in that
// representation are compared, hashed, copied and rendered for display.
//
// # Overview
//
// Every Type is an immutable, process-wide singleton compared by identity:
//
//	types.Varbinary == types.Varbinary          // true
//	qd, _ := types.QDigest.Type([]types.Type{types.Double})
//	qd2, _ := types.QDigest.Type([]types.Type{types.Double})
//	qd == qd2                                   // true
//
// # Storage Shapes
//
// The set of storage shapes is closed:
//
//   - ShapeVariableWidth: varbinary, varchar, qdigest(T), tdigest(T). All value
//     operations are expressed over the block's byte-range primitives, so
//     concrete types only add how a value is displayed.
//   - ShapeFixedWidth: bigint, double, boolean. Null handling and length
//     checking are shared; each type supplies numeric equality, hashing and
//     ordering.
//
// # Capabilities
//
// Comparable types support EqualTo and Hash, orderable types support CompareTo.
// EqualTo implies equal Hash. Calling an operation the type does not support is
// a programmer error and panics with an errors.ErrorTypeCapability error.
//
// # Null Positions
//
// Value operations never read the bytes of a null position. Nulls are equal to
// each other, order before all values and hash to 0. ObjectValue returns nil
// and AppendTo appends a null entry.
//
// # Signatures
//
// A TypeSignature is a base name plus type parameters, rendered as
// `varbinary` or `qdigest(double)`. ParseSignature and TypeSignature.String
// round-trip exactly.
//
// # Parametric Types
//
// A ParametricType turns resolved parameter types into a composite Type:
//
//	t, err := types.QDigest.Type([]types.Type{types.Bigint})
//	// t.DisplayName() == "qdigest(bigint)"
//
//	_, err = types.QDigest.Type(nil)
//	// errors.IsType(err, errors.ErrorTypeArity) == true
//
// Signature strings are resolved to Types by the registry package.
package types
