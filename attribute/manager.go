package attribute

import (
	"fmt"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/internal/options"
	"github.com/arloliu/meshattr/logger"
	"github.com/arloliu/meshattr/store"
)

// Manager owns the named attributes of one collection of elements. All
// attributes share the element count NbItems, and every structural operation
// is forwarded to each of them.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	nbItems    int
	attributes map[string]*AttributeStore
	registry   *Registry
	log        *zap.Logger
}

// ManagerOption configures a Manager.
type ManagerOption = options.Option[*Manager]

// WithRegistry sets the registry used to clone attribute stores.
// The default is DefaultRegistry().
func WithRegistry(r *Registry) ManagerOption {
	return options.New(func(m *Manager) error {
		if r == nil {
			return fmt.Errorf("%w: nil registry", errs.ErrUnknownType)
		}
		m.registry = r

		return nil
	})
}

// WithLogger sets the logger of the manager. The default is the global
// logger of the logger package.
func WithLogger(l *zap.Logger) ManagerOption {
	return options.NoError(func(m *Manager) {
		m.log = l
	})
}

// NewManager creates an empty manager. It panics if an option is invalid.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		attributes: make(map[string]*AttributeStore),
	}
	if err := options.Apply(m, opts...); err != nil {
		panic(err)
	}
	if m.registry == nil {
		m.registry = DefaultRegistry()
	}

	return m
}

// Registry returns the registry used by the manager.
func (m *Manager) Registry() *Registry {
	return m.registry
}

func (m *Manager) logger() *zap.Logger {
	if m.log != nil {
		return m.log
	}

	return logger.Get()
}

// NbItems returns the number of elements shared by every attribute.
func (m *Manager) NbItems() int {
	return m.nbItems
}

// NbAttributes returns the number of bound attributes.
func (m *Manager) NbAttributes() int {
	return len(m.attributes)
}

// AttributeNames returns the names of the bound attributes in sorted order.
func (m *Manager) AttributeNames() []string {
	return slices.Sorted(maps.Keys(m.attributes))
}

// IsDefined reports whether an attribute is bound under name.
func (m *Manager) IsDefined(name string) bool {
	_, ok := m.attributes[name]
	return ok
}

// BindAttributeStore transfers ownership of as to the manager under name.
// Non-constant stores are resized to NbItems. It panics with
// errs.ErrNameInUse when name is already bound.
func (m *Manager) BindAttributeStore(name string, as *AttributeStore) {
	if _, ok := m.attributes[name]; ok {
		panic(fmt.Errorf("%w: %q", errs.ErrNameInUse, name))
	}
	if as.HasStore() && !as.IsConstant() {
		as.Resize(m.nbItems)
	}
	m.attributes[name] = as

	m.logger().Debug("attribute bound",
		zap.String("attribute", name),
		zap.Int("nb_items", m.nbItems),
	)
}

// FindAttributeStore returns the store bound under name, or nil.
func (m *Manager) FindAttributeStore(name string) *AttributeStore {
	return m.attributes[name]
}

// DeleteAttributeStore removes the store bound under name, if any.
func (m *Manager) DeleteAttributeStore(name string) {
	if _, ok := m.attributes[name]; !ok {
		return
	}
	delete(m.attributes, name)

	m.logger().Debug("attribute deleted", zap.String("attribute", name))
}

// DeleteStore removes as from the manager, whatever its name.
func (m *Manager) DeleteStore(as *AttributeStore) {
	for name, bound := range m.attributes {
		if bound == as {
			m.DeleteAttributeStore(name)
			return
		}
	}
}

// Resize sets NbItems to n and resizes every attribute. It panics with
// errs.ErrIndexOutOfRange when n is negative.
func (m *Manager) Resize(n int) {
	if n < 0 {
		panic(fmt.Errorf("%w: negative item count %d", errs.ErrIndexOutOfRange, n))
	}
	m.nbItems = n
	for _, as := range m.attributes {
		as.Resize(n)
	}
}

// Clear empties the manager. When keepAttributes is true every attribute is
// cleared but stays bound; otherwise every attribute is deleted.
func (m *Manager) Clear(keepAttributes bool) {
	if keepAttributes {
		for _, as := range m.attributes {
			as.Clear()
		}
	} else {
		clear(m.attributes)
	}
	m.nbItems = 0
}

// ApplyPermutation reorders the elements of every attribute so that element
// i takes the value previously held by element perm[i]. perm holds its
// original content when the call returns.
func (m *Manager) ApplyPermutation(perm []int) {
	for _, as := range m.attributes {
		as.ApplyPermutation(perm)
	}
}

// Compress applies old2new to every attribute and sets NbItems to the number
// of surviving elements. old2new[i] is the new index of element i or
// store.Removed, and old2new[i] <= i must hold for survivors.
func (m *Manager) Compress(old2new []int) {
	survivors := 0
	for _, ni := range old2new {
		if ni != store.Removed {
			survivors++
		}
	}
	for _, as := range m.attributes {
		as.Compress(old2new)
	}
	m.nbItems = survivors
}

// DeleteElements removes the elements listed in removed from every
// attribute, keeping the survivors in order. It returns the old2new mapping
// that was applied.
func (m *Manager) DeleteElements(removed *roaring.Bitmap) []int {
	old2new := make([]int, m.nbItems)
	next := 0
	for i := range old2new {
		if removed != nil && removed.ContainsInt(i) {
			old2new[i] = store.Removed
			continue
		}
		old2new[i] = next
		next++
	}
	if next == m.nbItems {
		return old2new
	}

	m.Compress(old2new)
	m.logger().Debug("elements deleted",
		zap.Int("removed", len(old2new)-next),
		zap.Int("nb_items", m.nbItems),
	)

	return old2new
}

// Copy replaces the content of m by independent clones of every attribute
// of other, and copies its element count.
func (m *Manager) Copy(other *Manager) {
	if m == other {
		return
	}

	m.Clear(false)
	for name, as := range other.attributes {
		m.attributes[name] = as.Clone(m.registry)
	}
	m.nbItems = other.nbItems
}

// CopyItem overwrites element to with element from in every attribute.
func (m *Manager) CopyItem(to, from int) {
	for _, as := range m.attributes {
		as.CopyItem(to, from)
	}
}
