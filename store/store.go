package store

import (
	"reflect"
	"unsafe"
)

// Removed marks an element that does not survive a Compress call.
const Removed = -1

// Store is the type-erased storage of one attribute's per-element values.
//
// Implementations hold flat values of a single element type T. Every
// structural operation is expressed on element indices so that callers which
// only know the Store interface can keep all attributes of a collection
// consistent with the element reordering performed by the collection owner.
type Store interface {
	// ElementSize returns the size in bytes of one element.
	ElementSize() int
	// Size returns the number of logical elements represented by the store.
	// Constant stores always report 1.
	Size() int
	// Bytes returns the raw bytes of the stored elements in host byte order.
	// The returned slice aliases the store memory.
	Bytes() []byte

	// Resize grows or shrinks the store to exactly n elements.
	Resize(n int)
	// Clear drops every element.
	Clear()
	// Compress moves every surviving element i to old2new[i] and shrinks the
	// store to the number of survivors. Entries equal to Removed are dropped.
	// old2new[i] <= i must hold for every surviving element.
	Compress(old2new []int)
	// ApplyPermutation reorders the elements so that position i holds the
	// value previously stored at perm[i]. perm is used as scratch space and
	// holds its original content again when the call returns.
	ApplyPermutation(perm []int)
	// CopyItem overwrites element to with element from.
	CopyItem(to, from int)

	// Clone returns an independent deep copy with the same dynamic type.
	Clone() Store
	// ToConstant returns a constant store of the same element type that
	// broadcasts element 0 (or the zero value when the store is empty).
	ToConstant() Store
	// IsConstant reports whether the store broadcasts a single value.
	IsConstant() bool

	// ElementType returns the reflect type of the elements.
	ElementType() reflect.Type
	// ElementTypeIDName returns the type id of the elements.
	ElementTypeIDName() string
	// ElementsTypeMatches reports whether typeID is the type id of the elements.
	ElementsTypeMatches(typeID string) bool
}

// Typed is a Store whose element type is known at compile time.
type Typed[T any] interface {
	Store
	// Values returns the stored elements. The slice aliases the store memory
	// and is invalidated by any structural operation.
	Values() []T
}

// TypeID returns the type id used to identify the element type T.
func TypeID[T any]() string {
	return reflect.TypeFor[T]().String()
}

// ElementSizeOf returns the size in bytes of one T.
func ElementSizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// IsFlat reports whether values of t can be stored and copied as raw bytes:
// t must not contain pointers, slices, maps, strings, channels, functions or
// interfaces.
func IsFlat(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return IsFlat(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !IsFlat(t.Field(i).Type) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// asBytes reinterprets values as raw bytes without copying.
func asBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	size := len(values) * ElementSizeOf[T]()

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), size)
}
