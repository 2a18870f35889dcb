package attribute

import (
	"fmt"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/store"
)

// Attribute is a typed handle on the attribute bound under a name in a
// Manager. The handle owns nothing: the manager owns the store and several
// handles may share it.
//
// The element type is checked once, when the handle is bound.
type Attribute[T any] struct {
	manager   *Manager
	store     *AttributeStore
	dimension int

	typed      store.Typed[T]
	generation uint64
}

// NewAttribute creates a handle bound to name in m. See Bind.
func NewAttribute[T any](m *Manager, name string) *Attribute[T] {
	a := &Attribute[T]{}
	a.Bind(m, name)

	return a
}

// IsDefined reports whether m holds an attribute of element type T under name.
func IsDefined[T any](m *Manager, name string) bool {
	as := m.FindAttributeStore(name)
	return as != nil && as.HasStore() && as.ElementsTypeMatches(store.TypeID[T]())
}

// IsBound reports whether the handle is bound.
func (a *Attribute[T]) IsBound() bool {
	return a.store != nil
}

// Manager returns the manager the handle is bound to, or nil.
func (a *Attribute[T]) Manager() *Manager {
	return a.manager
}

// Store returns the AttributeStore the handle is bound to, or nil.
func (a *Attribute[T]) Store() *AttributeStore {
	return a.store
}

// Dimension returns the number of components per element recorded by
// CreateVectorAttribute, 1 otherwise.
func (a *Attribute[T]) Dimension() int {
	if a.dimension == 0 {
		return 1
	}

	return a.dimension
}

// Bind binds the handle to the attribute name of m, creating a vector
// attribute when it does not exist. It panics with errs.ErrAlreadyBound when
// the handle is bound and with errs.ErrTypeMismatch when the existing
// attribute does not hold T values.
func (a *Attribute[T]) Bind(m *Manager, name string) {
	a.mustBeUnbound()

	as := m.FindAttributeStore(name)
	if as == nil {
		as = NewAttributeStore(store.NewVector[T]())
		m.BindAttributeStore(name, as)
	} else {
		checkElementType[T](name, as)
	}
	a.attach(m, as, 1)
}

// BindIfDefined binds the handle only when m holds an attribute under name
// and reports whether it did. It panics with errs.ErrTypeMismatch when the
// attribute does not hold T values.
func (a *Attribute[T]) BindIfDefined(m *Manager, name string) bool {
	a.mustBeUnbound()

	as := m.FindAttributeStore(name)
	if as == nil {
		return false
	}
	checkElementType[T](name, as)
	a.attach(m, as, 1)

	return true
}

// CreateVectorAttribute creates a new vector attribute under name and binds
// the handle to it. dimension is recorded on the handle only and reported by
// Dimension; the store keeps one T per element. Multi-component data that
// ScalarAdapter can address as "name[i]" must use an array element type such
// as [3]float64. It panics with errs.ErrNameInUse when name already exists.
func (a *Attribute[T]) CreateVectorAttribute(m *Manager, name string, dimension int) {
	a.mustBeUnbound()
	if dimension < 1 {
		panic(fmt.Errorf("%w: %d", errs.ErrInvalidDimension, dimension))
	}

	as := NewAttributeStore(store.NewVector[T]())
	m.BindAttributeStore(name, as)
	a.attach(m, as, dimension)
}

// Unbind detaches the handle. The attribute stays in the manager.
func (a *Attribute[T]) Unbind() {
	a.mustBeBound()
	a.manager = nil
	a.store = nil
	a.typed = nil
	a.dimension = 0
}

// Destroy deletes the attribute from the manager and unbinds the handle.
func (a *Attribute[T]) Destroy() {
	a.mustBeBound()
	a.manager.DeleteStore(a.store)
	a.Unbind()
}

// SetConstantValue replaces the backing store by a constant store
// broadcasting v. Every handle bound to the same attribute observes it.
func (a *Attribute[T]) SetConstantValue(v T) {
	a.mustBeBound()
	a.store.SetStore(store.NewConstantOf(v))
}

// IsConstant reports whether the attribute broadcasts a single value.
func (a *Attribute[T]) IsConstant() bool {
	return a.view().IsConstant()
}

// Size returns the number of elements of the attribute (1 when constant).
func (a *Attribute[T]) Size() int {
	return a.view().Size()
}

// Value returns element i. Constant attributes return their value for any i.
func (a *Attribute[T]) Value(i int) T {
	v := a.view()
	if v.IsConstant() {
		return v.Values()[0]
	}
	values := v.Values()
	checkIndex(i, len(values))

	return values[i]
}

// At returns a pointer to element i, valid until the next structural operation.
func (a *Attribute[T]) At(i int) *T {
	values := a.view().Values()
	checkIndex(i, len(values))

	return &values[i]
}

// SetValue sets element i to v.
func (a *Attribute[T]) SetValue(i int, v T) {
	values := a.view().Values()
	checkIndex(i, len(values))
	values[i] = v
}

// Values returns the elements of the attribute. The slice aliases the store
// and is invalidated by structural operations.
func (a *Attribute[T]) Values() []T {
	return a.view().Values()
}

// Fill sets every element to v.
func (a *Attribute[T]) Fill(v T) {
	values := a.view().Values()
	for i := range values {
		values[i] = v
	}
}

func (a *Attribute[T]) attach(m *Manager, as *AttributeStore, dimension int) {
	a.manager = m
	a.store = as
	a.dimension = dimension
	a.typed = nil
}

// view returns the typed store, refreshing the cached one when the
// AttributeStore switched to another backing store.
func (a *Attribute[T]) view() store.Typed[T] {
	a.mustBeBound()
	if a.typed == nil || a.generation != a.store.generation {
		typed, ok := a.store.mustStore().(store.Typed[T])
		if !ok {
			panic(fmt.Errorf("%w: want %s, store holds %s",
				errs.ErrTypeMismatch, store.TypeID[T](), a.store.ElementTypeIDName()))
		}
		a.typed = typed
		a.generation = a.store.generation
	}

	return a.typed
}

func (a *Attribute[T]) mustBeBound() {
	if a.store == nil {
		panic(errs.ErrNotBound)
	}
}

func (a *Attribute[T]) mustBeUnbound() {
	if a.store != nil {
		panic(errs.ErrAlreadyBound)
	}
}

func checkElementType[T any](name string, as *AttributeStore) {
	if !as.ElementsTypeMatches(store.TypeID[T]()) {
		panic(fmt.Errorf("%w: attribute %q holds %s, not %s",
			errs.ErrTypeMismatch, name, as.ElementTypeIDName(), store.TypeID[T]()))
	}
}

func checkIndex(i, size int) {
	if i < 0 || i >= size {
		panic(fmt.Errorf("%w: index %d, size %d", errs.ErrIndexOutOfRange, i, size))
	}
}
