// Package attribute manages named, typed per-element data attached to a
// collection of elements such as mesh vertices or cells.
//
// # Overview
//
// A Manager owns the attributes of one collection. Each attribute is an
// AttributeStore wrapping a store.Store; all attributes of a manager share the
// element count NbItems. Structural requests of the collection owner (Resize,
// Compress, ApplyPermutation, CopyItem, Copy) are forwarded to every
// attribute whatever its element type.
//
// Typed code binds handles:
//
//	m := attribute.NewManager()
//	ids := attribute.NewAttribute[int32](m, "id")
//	m.Resize(5)
//	ids.Fill(7)
//	m.Compress([]int{0, 1, store.Removed, 2, 3}) // ids now has 4 elements
//
// Generic code (I/O, visualization) goes through AttributeStore and the
// Registry, which builds stores from a persisted element type name:
//
//	reg := attribute.DefaultRegistry()
//	as := reg.CreateAttributeStoreByElementTypeName("double")
//	reg.ElementTypeNameByElementTypeIDName(as.ElementTypeIDName()) // "double"
//
// ScalarAdapter reads one scalar component of any numeric attribute as
// float64 using the compound name convention "name[index]".
//
// # Errors
//
// Programmer errors panic with an error wrapping a sentinel of the errs
// package: binding a bound handle, out of range indices, element type
// mismatches, unknown registry type names, conflicting registrations.
// Lookups used by generic code (FindAttributeStore, BindIfDefined,
// NewScalarAdapter) report absence instead of panicking.
//
// # Concurrency
//
// Managers, stores and handles are single-threaded; callers serialize access.
// Registry is safe for concurrent use.
package attribute
