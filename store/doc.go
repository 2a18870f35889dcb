// Package store provides the type-erased storage behind every attribute.
//
// A Store holds the values of one attribute for every element of an external
// collection (mesh vertices, facets, cells). Two variants exist:
//
//   - VectorStore[T]: one value per element in a contiguous slice.
//   - ConstantStore[T]: a single value broadcast to every element; its size is
//     pinned to 1.
//
// # Structural operations
//
// The collection owner reorders its elements and asks every store to follow:
//
//	s := store.NewVectorFrom([]float64{10, 11, 12, 13})
//	s.Compress([]int{0, store.Removed, 1, 2}) // s holds 10, 12, 13
//	s.ApplyPermutation([]int{2, 0, 1})        // s holds 13, 10, 12
//
// Compress works in a single in-place pass and requires old2new[i] <= i for
// every surviving element. ApplyPermutation follows permutation cycles in
// place and temporarily marks visited entries inside the permutation slice;
// the slice is restored before the call returns.
//
// # Element types
//
// Element types must be flat: numbers, booleans, and arrays or structs of
// those. Stores expose their values as raw bytes for generic consumers, which
// is only meaningful for values that do not own memory.
//
// # Concurrency
//
// Stores are not safe for concurrent use. Callers serialize access.
package store
