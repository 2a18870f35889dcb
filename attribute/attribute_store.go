package attribute

import (
	"reflect"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/store"
)

// AttributeStore owns the Store of one attribute and forwards every
// operation to it without knowing the element type.
type AttributeStore struct {
	store store.Store
	// generation changes whenever the backing store is replaced, letting
	// typed handles refresh their cached view.
	generation uint64
}

// NewAttributeStore creates an AttributeStore owning s. s may be nil and set
// later with SetStore.
func NewAttributeStore(s store.Store) *AttributeStore {
	return &AttributeStore{store: s}
}

// SetStore replaces the backing store.
func (a *AttributeStore) SetStore(s store.Store) {
	a.store = s
	a.generation++
}

// Store returns the backing store, or nil when none is set.
func (a *AttributeStore) Store() store.Store {
	return a.store
}

// HasStore reports whether a backing store is set.
func (a *AttributeStore) HasStore() bool {
	return a.store != nil
}

func (a *AttributeStore) mustStore() store.Store {
	if a.store == nil {
		panic(errs.ErrNoStore)
	}

	return a.store
}

// Size returns the number of logical elements of the backing store.
func (a *AttributeStore) Size() int { return a.mustStore().Size() }

// ElementSize returns the size in bytes of one element.
func (a *AttributeStore) ElementSize() int { return a.mustStore().ElementSize() }

// Bytes returns the raw element bytes. The slice aliases the store memory.
func (a *AttributeStore) Bytes() []byte { return a.mustStore().Bytes() }

// IsConstant reports whether the backing store broadcasts a single value.
func (a *AttributeStore) IsConstant() bool { return a.mustStore().IsConstant() }

// ElementType returns the reflect type of the elements.
func (a *AttributeStore) ElementType() reflect.Type { return a.mustStore().ElementType() }

// ElementTypeIDName returns the type id of the elements.
func (a *AttributeStore) ElementTypeIDName() string { return a.mustStore().ElementTypeIDName() }

// ElementsTypeMatches reports whether typeID is the type id of the elements.
func (a *AttributeStore) ElementsTypeMatches(typeID string) bool {
	return a.mustStore().ElementsTypeMatches(typeID)
}

func (a *AttributeStore) Resize(n int) { a.mustStore().Resize(n) }

func (a *AttributeStore) Clear() { a.mustStore().Clear() }

func (a *AttributeStore) Compress(old2new []int) { a.mustStore().Compress(old2new) }

func (a *AttributeStore) ApplyPermutation(perm []int) { a.mustStore().ApplyPermutation(perm) }

func (a *AttributeStore) CopyItem(to, from int) { a.mustStore().CopyItem(to, from) }

// MakeConstant replaces the backing store by a constant store broadcasting
// the current element 0.
func (a *AttributeStore) MakeConstant() {
	a.SetStore(a.mustStore().ToConstant())
}

// Clone returns an independent copy of a. The element type is resolved
// through reg, which must know it; otherwise Clone panics with
// errs.ErrUnknownType.
func (a *AttributeStore) Clone(reg *Registry) *AttributeStore {
	s := a.mustStore()
	typeName := reg.ElementTypeNameByElementTypeIDName(s.ElementTypeIDName())
	clone := reg.CreateAttributeStoreByElementTypeName(typeName)
	clone.SetStore(s.Clone())

	return clone
}
