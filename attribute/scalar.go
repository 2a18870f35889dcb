package attribute

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unsafe"

	"github.com/arloliu/meshattr/errs"
)

// ScalarAdapter is a read-only view exposing one scalar component of a
// numeric attribute as float64, whatever the stored element type.
//
// The attribute is designated by a compound name "base[index]": base is the
// attribute name and index selects a component of a fixed-size array element
// type (for example "pos[1]" on a [3]float64 attribute). Without a suffix the
// index is 0. The conversion is chosen once, when the adapter is bound.
type ScalarAdapter struct {
	manager      *Manager
	store        *AttributeStore
	elementIndex int
	components   int
	scalarSize   int
	integerLike  bool
	read         func(p unsafe.Pointer) float64
}

// NewScalarAdapter creates an adapter bound to name in m when such a numeric
// attribute exists; otherwise the adapter stays unbound.
func NewScalarAdapter(m *Manager, name string) *ScalarAdapter {
	s := &ScalarAdapter{}
	s.BindIfDefined(m, name)

	return s
}

// IsScalarDefined reports whether name designates a numeric attribute
// component of m.
func IsScalarDefined(m *Manager, name string) bool {
	base, index, ok := ParseAttributeName(name)
	if !ok {
		return false
	}
	as := m.FindAttributeStore(base)
	if as == nil || !as.HasStore() {
		return false
	}
	layout, ok := scalarLayoutOf(as.ElementType())

	return ok && index < layout.components
}

// ParseAttributeName splits a compound name "base[index]". A name without
// a suffix has index 0. ok is false for malformed names: empty base,
// whitespace, a missing bracket or a non-decimal index.
func ParseAttributeName(name string) (base string, index int, ok bool) {
	if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
		return "", 0, false
	}

	open := strings.IndexByte(name, '[')
	if open < 0 {
		if strings.IndexByte(name, ']') >= 0 {
			return "", 0, false
		}

		return name, 0, true
	}
	if open == 0 || name[len(name)-1] != ']' {
		return "", 0, false
	}

	digits := name[open+1 : len(name)-1]
	if digits == "" || strings.ContainsFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) {
		return "", 0, false
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}

	return name[:open], index, true
}

// FormatAttributeName builds the compound name of component index of base.
func FormatAttributeName(base string, index int) string {
	return base + "[" + strconv.Itoa(index) + "]"
}

// BindIfDefined binds the adapter to name in m and reports whether it did.
// It panics with errs.ErrAlreadyBound when the adapter is bound.
func (s *ScalarAdapter) BindIfDefined(m *Manager, name string) bool {
	if s.IsBound() {
		panic(errs.ErrAlreadyBound)
	}

	base, index, ok := ParseAttributeName(name)
	if !ok {
		return false
	}
	as := m.FindAttributeStore(base)
	if as == nil || !as.HasStore() {
		return false
	}
	layout, ok := scalarLayoutOf(as.ElementType())
	if !ok || index >= layout.components {
		return false
	}

	s.manager = m
	s.store = as
	s.elementIndex = index
	s.components = layout.components
	s.scalarSize = layout.size
	s.integerLike = layout.integer
	s.read = layout.read

	return true
}

// IsBound reports whether the adapter is bound.
func (s *ScalarAdapter) IsBound() bool {
	return s.store != nil
}

// Unbind detaches the adapter.
func (s *ScalarAdapter) Unbind() {
	if !s.IsBound() {
		panic(errs.ErrNotBound)
	}
	*s = ScalarAdapter{}
}

// Manager returns the manager the adapter is bound to, or nil.
func (s *ScalarAdapter) Manager() *Manager {
	return s.manager
}

// AttributeStore returns the adapted store, or nil.
func (s *ScalarAdapter) AttributeStore() *AttributeStore {
	return s.store
}

// Size returns the number of elements, 0 when unbound.
func (s *ScalarAdapter) Size() int {
	if s.store == nil {
		return 0
	}

	return s.store.Size()
}

// ElementIndex returns the selected component.
func (s *ScalarAdapter) ElementIndex() int {
	return s.elementIndex
}

// NbScalarElementsPerItem returns the number of components per element.
func (s *ScalarAdapter) NbScalarElementsPerItem() int {
	return s.components
}

// IsIntegerLike reports whether the components are integers.
func (s *ScalarAdapter) IsIntegerLike() bool {
	return s.integerLike
}

// At returns the selected component of element i as float64. Constant
// attributes return their value for any i.
func (s *ScalarAdapter) At(i int) float64 {
	if !s.IsBound() {
		panic(errs.ErrNotBound)
	}
	if s.store.IsConstant() {
		i = 0
	}
	size := s.store.Size()
	if i < 0 || i >= size {
		panic(fmt.Errorf("%w: index %d, size %d", errs.ErrIndexOutOfRange, i, size))
	}

	raw := s.store.Bytes()
	offset := (i*s.components + s.elementIndex) * s.scalarSize

	return s.read(unsafe.Pointer(&raw[offset]))
}

type scalarLayout struct {
	components int
	size       int
	integer    bool
	read       func(p unsafe.Pointer) float64
}

// scalarLayoutOf describes numeric element types and fixed arrays of them.
func scalarLayoutOf(t reflect.Type) (scalarLayout, bool) {
	components := 1
	if t.Kind() == reflect.Array {
		components = t.Len()
		t = t.Elem()
	}
	if components == 0 {
		return scalarLayout{}, false
	}

	layout := scalarLayout{components: components, size: int(t.Size()), integer: true}
	switch t.Kind() {
	case reflect.Int8:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*int8)(p)) }
	case reflect.Uint8:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*uint8)(p)) }
	case reflect.Int16:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*int16)(p)) }
	case reflect.Uint16:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*uint16)(p)) }
	case reflect.Int32:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*int32)(p)) }
	case reflect.Uint32:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*uint32)(p)) }
	case reflect.Int64:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*int64)(p)) }
	case reflect.Uint64:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*uint64)(p)) }
	case reflect.Int:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*int)(p)) }
	case reflect.Uint:
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*uint)(p)) }
	case reflect.Float32:
		layout.integer = false
		layout.read = func(p unsafe.Pointer) float64 { return float64(*(*float32)(p)) }
	case reflect.Float64:
		layout.integer = false
		layout.read = func(p unsafe.Pointer) float64 { return *(*float64)(p) }
	default:
		return scalarLayout{}, false
	}

	return layout, true
}
