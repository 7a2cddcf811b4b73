// Package coltype is a pluggable type system for columnar value storage.
//
// A Type describes how a logical data type is laid out inside a columnar Block
// and how values stored that way are compared, hashed, copied and rendered.
// Query operators never interpret value bytes themselves: they hold a Type and
// call its value operations against block positions.
//
// # Architecture
//
// The module is organised leaves first:
//
//  1. pkg/block: the Block and Builder contracts, an in-memory variable-width
//     block and an Apache Arrow binary-array adapter.
//  2. pkg/types: the Type contract, type signatures, the fixed-width and
//     variable-width storage bases, the built-in leaf types and the
//     statistical-digest parametric descriptors.
//  3. pkg/registry: resolves signature strings such as "qdigest(double)" to
//     interned Type instances.
//
// Supporting packages provide structured errors (pkg/errors), zap logging
// (pkg/logger), viper configuration (pkg/config), Prometheus instrumentation
// (pkg/metrics) and pooled string building (pkg/strings).
//
// # Quick Start
//
//	r := registry.NewWithStandardTypes()
//	t, err := r.Resolve("varbinary")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blk := block.FromValues([]byte{0x01, 0x02}, []byte{0x01, 0x02, 0x03})
//	t.EqualTo(blk, 0, blk, 1)   // false
//	t.CompareTo(blk, 0, blk, 1) // -1
//
// # Built-in Types
//
// Leaf types:
//   - varbinary: opaque bytes, ordered lexicographically
//   - varchar: UTF-8 text, ordered by bytes
//   - bigint: 8-byte little-endian signed integer
//   - double: 8-byte IEEE-754 float with a total order
//   - boolean: 1 byte
//
// Parametric types:
//   - qdigest(T), T in {bigint, double}
//   - tdigest(T), T in {double}
//
// Digest values are opaque serialized bytes: they can be copied and displayed
// but are neither comparable nor orderable.
//
// # Command Line
//
//	coltype types
//	coltype resolve "qdigest(double)" --output json
//	coltype compare --type varbinary 0102 010203
package coltype
