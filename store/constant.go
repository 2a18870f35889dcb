package store

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/arloliu/meshattr/logger"
)

// ConstantStore broadcasts a single value of T to every element index.
//
// Its size is always 1. Structural operations have nothing to reorder and
// are no-ops; Resize is accepted but only logs a warning, since a constant
// attribute legitimately lives in a collection of any size.
type ConstantStore[T any] struct {
	values [1]T
}

var _ Typed[float64] = (*ConstantStore[float64])(nil)

// NewConstant creates a constant store broadcasting the zero value of T.
func NewConstant[T any]() *ConstantStore[T] {
	return &ConstantStore[T]{}
}

// NewConstantOf creates a constant store broadcasting v.
func NewConstantOf[T any](v T) *ConstantStore[T] {
	return &ConstantStore[T]{values: [1]T{v}}
}

// Value returns the broadcast value.
func (s *ConstantStore[T]) Value() T { return s.values[0] }

// SetValue replaces the broadcast value.
func (s *ConstantStore[T]) SetValue(v T) { s.values[0] = v }

func (s *ConstantStore[T]) ElementSize() int { return ElementSizeOf[T]() }

func (s *ConstantStore[T]) Size() int { return 1 }

func (s *ConstantStore[T]) Bytes() []byte { return asBytes(s.values[:]) }

// Values returns a one element slice aliasing the broadcast value.
func (s *ConstantStore[T]) Values() []T { return s.values[:] }

func (s *ConstantStore[T]) Resize(n int) {
	logger.Warn("ignoring resize of constant attribute store",
		zap.Int("requested_size", n),
		zap.String("element_type", TypeID[T]()),
	)
}

func (s *ConstantStore[T]) Clear() {}

func (s *ConstantStore[T]) Compress([]int) {}

func (s *ConstantStore[T]) ApplyPermutation([]int) {}

func (s *ConstantStore[T]) CopyItem(int, int) {}

func (s *ConstantStore[T]) Clone() Store {
	return NewConstantOf(s.values[0])
}

func (s *ConstantStore[T]) ToConstant() Store {
	return s.Clone()
}

func (s *ConstantStore[T]) IsConstant() bool { return true }

func (s *ConstantStore[T]) ElementType() reflect.Type { return reflect.TypeFor[T]() }

func (s *ConstantStore[T]) ElementTypeIDName() string { return TypeID[T]() }

func (s *ConstantStore[T]) ElementsTypeMatches(typeID string) bool {
	return typeID == TypeID[T]()
}
