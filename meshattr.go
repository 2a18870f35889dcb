// Package meshattr stores named, typed per-element attributes for
// collections such as mesh vertices, edges or cells.
//
// Every attribute of a collection lives in an attribute.Manager and has one
// element per item of the collection. Attributes keep their data in flat
// typed stores, follow the structural edits of the collection (resize,
// compaction, permutation, element copies) and can be persisted as compact
// snapshots with optional compression.
//
// # Core Features
//
//   - Generic typed handles (attribute.Attribute[T]) over shared stores
//   - Constant attributes holding one value for every item
//   - Type registry mapping persisted type names to store factories
//   - Scalar view of any numeric component ("pos[1]") as float64
//   - Snapshots with xxHash64 checksums and None, Zstd, S2 or LZ4 bodies
//
// # Basic Usage
//
//	m := meshattr.NewManager()
//	pos := meshattr.NewAttribute[[3]float64](m, "pos")
//	m.Resize(3)
//	pos.SetValue(1, [3]float64{0, 1, 0})
//
//	data, _ := meshattr.Encode(m, snapshot.WithCompression(format.CompressionZstd))
//	restored, _ := meshattr.Decode(data)
//
// This package provides convenient top-level wrappers around the attribute,
// snapshot and inspect packages. For full control, use those packages
// directly.
package meshattr

import (
	"github.com/arloliu/meshattr/attribute"
	"github.com/arloliu/meshattr/inspect"
	"github.com/arloliu/meshattr/snapshot"
)

// NewManager creates an empty attribute manager backed by the default type
// registry.
//
// Parameters:
//   - opts: manager options such as attribute.WithRegistry or attribute.WithLogger
//
// Returns:
//   - *attribute.Manager: manager with zero items and no attributes
//
// NewManager panics when an option is invalid.
func NewManager(opts ...attribute.ManagerOption) *attribute.Manager {
	return attribute.NewManager(opts...)
}

// NewAttribute binds a typed handle to the attribute name of m, creating a
// vector attribute of element type T when the name is free.
//
// Example:
//
//	normals := meshattr.NewAttribute[[3]float64](m, "normal")
//	normals.Fill([3]float64{0, 0, 1})
func NewAttribute[T any](m *attribute.Manager, name string) *attribute.Attribute[T] {
	return attribute.NewAttribute[T](m, name)
}

// NewBoolAttribute binds a boolean handle to the attribute name of m.
func NewBoolAttribute(m *attribute.Manager, name string) *attribute.BoolAttribute {
	return attribute.NewBoolAttribute(m, name)
}

// Encode serializes every attribute of m into a snapshot.
//
// Every element type of m must be registered in the snapshot registry, which
// defaults to the registry of m.
func Encode(m *attribute.Manager, opts ...snapshot.Option) ([]byte, error) {
	return snapshot.Encode(m, opts...)
}

// Decode rebuilds a manager from a snapshot produced by Encode.
//
// The snapshot is rejected when its checksum, byte order, or any persisted
// element type does not match.
func Decode(data []byte, opts ...snapshot.Option) (*attribute.Manager, error) {
	return snapshot.Decode(data, opts...)
}

// Save writes a snapshot of m to path.
func Save(path string, m *attribute.Manager, opts ...snapshot.Option) error {
	return snapshot.Save(path, m, opts...)
}

// Load reads a snapshot file written by Save.
func Load(path string, opts ...snapshot.Option) (*attribute.Manager, error) {
	return snapshot.Load(path, opts...)
}

// Inspect summarizes every attribute of m.
func Inspect(m *attribute.Manager) inspect.Report {
	return inspect.Build(m)
}
