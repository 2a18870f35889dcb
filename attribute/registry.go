package attribute

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/logger"
	"github.com/arloliu/meshattr/store"
)

// Creator builds a fresh, empty AttributeStore for one element type.
type Creator func() *AttributeStore

// Registry maps element type names to store creators so that generic code
// (cloning, snapshot decoding) can build stores without naming the element
// type. It keeps three associations: type name to creator, type id to type
// name and type name to type id.
//
// A Registry is safe for concurrent use. Registrations are expected to happen
// during startup, before any store is created or cloned through it.
type Registry struct {
	mu       sync.RWMutex
	creators map[string]Creator
	idToName map[string]string
	nameToID map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		creators: make(map[string]Creator),
		idToName: make(map[string]string),
		nameToID: make(map[string]string),
	}
}

var (
	defaultRegistry     = NewRegistry()
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, populated with the
// built-in element types on first call.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		RegisterDefaults(defaultRegistry)
	})

	return defaultRegistry
}

// RegisterDefaults registers the built-in element types in r.
func RegisterDefaults(r *Registry) {
	Register[uint8](r, "byte")
	Register[int8](r, "char")
	Register[int16](r, "short")
	Register[uint16](r, "ushort")
	Register[int32](r, "int")
	Register[uint32](r, "uint")
	Register[int64](r, "long")
	Register[uint64](r, "ulong")
	Register[int](r, "index")
	Register[float32](r, "float")
	Register[float64](r, "double")
	Register[[2]float64](r, "vec2")
	Register[[3]float64](r, "vec3")
}

// Register registers the element type T under typeName. T must be flat.
func Register[T any](r *Registry, typeName string) {
	if t := reflect.TypeFor[T](); !store.IsFlat(t) {
		panic(fmt.Errorf("%w: %s", errs.ErrUnsupportedType, t))
	}

	r.RegisterCreator(func() *AttributeStore {
		return NewAttributeStore(store.NewVector[T]())
	}, typeName, store.TypeID[T]())
}

// RegisterCreator registers creator for the element type typeName whose type
// id is typeID. Registering the same name and id again only logs a warning;
// registering a known name with another id panics with errs.ErrTypeConflict.
func (r *Registry) RegisterCreator(creator Creator, typeName, typeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if knownID, ok := r.nameToID[typeName]; ok {
		if knownID != typeID {
			panic(fmt.Errorf("%w: %q is %s, not %s", errs.ErrTypeConflict, typeName, knownID, typeID))
		}
		logger.Warn("attribute element type already registered",
			zap.String("type_name", typeName),
			zap.String("type_id", typeID),
		)
	}

	r.creators[typeName] = creator
	r.idToName[typeID] = typeName
	r.nameToID[typeName] = typeID
}

// ElementTypeNameIsKnown reports whether typeName is registered.
func (r *Registry) ElementTypeNameIsKnown(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.creators[typeName]

	return ok
}

// ElementTypeIDNameIsKnown reports whether typeID is registered.
func (r *Registry) ElementTypeIDNameIsKnown(typeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.idToName[typeID]

	return ok
}

// CreateAttributeStoreByElementTypeName returns a new, empty, vector backed
// AttributeStore for typeName. It panics with errs.ErrUnknownType when
// typeName is not registered.
func (r *Registry) CreateAttributeStoreByElementTypeName(typeName string) *AttributeStore {
	r.mu.RLock()
	creator, ok := r.creators[typeName]
	r.mu.RUnlock()
	if !ok {
		panic(fmt.Errorf("%w: type name %q", errs.ErrUnknownType, typeName))
	}

	return creator()
}

// ElementTypeNameByElementTypeIDName returns the type name registered for
// typeID. It panics with errs.ErrUnknownType when typeID is not registered.
func (r *Registry) ElementTypeNameByElementTypeIDName(typeID string) string {
	name, ok := r.LookupTypeName(typeID)
	if !ok {
		panic(fmt.Errorf("%w: type id %q", errs.ErrUnknownType, typeID))
	}

	return name
}

// ElementTypeIDNameByElementTypeName returns the type id registered for
// typeName. It panics with errs.ErrUnknownType when typeName is not registered.
func (r *Registry) ElementTypeIDNameByElementTypeName(typeName string) string {
	id, ok := r.LookupTypeID(typeName)
	if !ok {
		panic(fmt.Errorf("%w: type name %q", errs.ErrUnknownType, typeName))
	}

	return id
}

// LookupTypeName is the non-panicking form of ElementTypeNameByElementTypeIDName.
func (r *Registry) LookupTypeName(typeID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.idToName[typeID]

	return name, ok
}

// LookupTypeID is the non-panicking form of ElementTypeIDNameByElementTypeName.
func (r *Registry) LookupTypeID(typeName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nameToID[typeName]

	return id, ok
}

// TypeNames returns the registered type names in sorted order.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.creators))
	for name := range r.creators {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)

	return names
}
