package store

import (
	"reflect"
	"slices"
)

// VectorStore stores one value of T per element in a contiguous slice.
type VectorStore[T any] struct {
	values []T
}

var _ Typed[float64] = (*VectorStore[float64])(nil)

// NewVector creates an empty vector store.
func NewVector[T any]() *VectorStore[T] {
	return &VectorStore[T]{}
}

// NewVectorFrom creates a vector store holding a copy of values.
func NewVectorFrom[T any](values []T) *VectorStore[T] {
	return &VectorStore[T]{values: slices.Clone(values)}
}

func (s *VectorStore[T]) ElementSize() int { return ElementSizeOf[T]() }

func (s *VectorStore[T]) Size() int { return len(s.values) }

func (s *VectorStore[T]) Bytes() []byte { return asBytes(s.values) }

// Values returns the stored elements.
func (s *VectorStore[T]) Values() []T { return s.values }

// Resize grows or shrinks the store. New elements hold the zero value of T.
func (s *VectorStore[T]) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(s.values) {
		s.values = s.values[:n]
		return
	}
	s.values = slices.Grow(s.values, n-len(s.values))
	// Elements between the old length and n may hold stale values from a
	// previous shrink, so reset them explicitly.
	old := len(s.values)
	s.values = s.values[:n]
	clear(s.values[old:])
}

func (s *VectorStore[T]) Clear() {
	s.values = nil
}

func (s *VectorStore[T]) Compress(old2new []int) {
	s.values = compressValues(s.values, old2new)
}

func (s *VectorStore[T]) ApplyPermutation(perm []int) {
	permuteValues(s.values, perm)
}

func (s *VectorStore[T]) CopyItem(to, from int) {
	checkIndex(to, len(s.values))
	checkIndex(from, len(s.values))
	s.values[to] = s.values[from]
}

func (s *VectorStore[T]) Clone() Store {
	return NewVectorFrom(s.values)
}

func (s *VectorStore[T]) ToConstant() Store {
	c := NewConstant[T]()
	if len(s.values) > 0 {
		c.SetValue(s.values[0])
	}

	return c
}

func (s *VectorStore[T]) IsConstant() bool { return false }

func (s *VectorStore[T]) ElementType() reflect.Type { return reflect.TypeFor[T]() }

func (s *VectorStore[T]) ElementTypeIDName() string { return TypeID[T]() }

func (s *VectorStore[T]) ElementsTypeMatches(typeID string) bool {
	return typeID == TypeID[T]()
}
