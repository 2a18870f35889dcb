package attribute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/store"
)

func TestRegistry_DoubleRoundTrip(t *testing.T) {
	reg := NewRegistry()
	Register[float64](reg, "double")

	require.True(t, reg.ElementTypeNameIsKnown("double"))
	require.True(t, reg.ElementTypeIDNameIsKnown("float64"))

	as := reg.CreateAttributeStoreByElementTypeName("double")
	require.Equal(t, 0, as.Size())
	require.Equal(t, 8, as.ElementSize())
	require.False(t, as.IsConstant())
	require.Equal(t, "double", reg.ElementTypeNameByElementTypeIDName(as.ElementTypeIDName()))
	require.Equal(t, "float64", reg.ElementTypeIDNameByElementTypeName("double"))
}

func TestRegistry_CreatesIndependentStores(t *testing.T) {
	reg := NewRegistry()
	Register[int32](reg, "int")

	a := reg.CreateAttributeStoreByElementTypeName("int")
	b := reg.CreateAttributeStoreByElementTypeName("int")
	a.Resize(3)
	require.Equal(t, 3, a.Size())
	require.Equal(t, 0, b.Size())
}

func TestRegistry_Reregistration(t *testing.T) {
	t.Run("same type only warns", func(t *testing.T) {
		logs := observeWarnings(t)
		reg := NewRegistry()
		Register[float32](reg, "float")
		require.NotPanics(t, func() { Register[float32](reg, "float") })
		require.Equal(t, 1, logs.Len())
		require.Equal(t, "float", logs.All()[0].ContextMap()["type_name"])
	})

	t.Run("different type panics", func(t *testing.T) {
		reg := NewRegistry()
		Register[float32](reg, "real")
		requirePanicsWith(t, errs.ErrTypeConflict, func() { Register[float64](reg, "real") })
		require.Equal(t, "float32", reg.ElementTypeIDNameByElementTypeName("real"))
	})
}

func TestRegistry_UnknownTypes(t *testing.T) {
	reg := NewRegistry()

	require.False(t, reg.ElementTypeNameIsKnown("quaternion"))
	require.False(t, reg.ElementTypeIDNameIsKnown("[4]float64"))
	requirePanicsWith(t, errs.ErrUnknownType, func() { reg.CreateAttributeStoreByElementTypeName("quaternion") })
	requirePanicsWith(t, errs.ErrUnknownType, func() { reg.ElementTypeNameByElementTypeIDName("[4]float64") })
	requirePanicsWith(t, errs.ErrUnknownType, func() { reg.ElementTypeIDNameByElementTypeName("quaternion") })

	_, ok := reg.LookupTypeName("[4]float64")
	require.False(t, ok)
	_, ok = reg.LookupTypeID("quaternion")
	require.False(t, ok)
}

func TestRegistry_RejectsNonFlatTypes(t *testing.T) {
	reg := NewRegistry()
	requirePanicsWith(t, errs.ErrUnsupportedType, func() { Register[string](reg, "string") })
	requirePanicsWith(t, errs.ErrUnsupportedType, func() { Register[[]float64](reg, "list") })
	require.Empty(t, reg.TypeNames())
}

func TestRegistry_CustomStructType(t *testing.T) {
	type frame struct {
		Origin [3]float64
		Scale  float32
	}

	reg := NewRegistry()
	Register[frame](reg, "frame")

	as := reg.CreateAttributeStoreByElementTypeName("frame")
	require.True(t, as.ElementsTypeMatches(store.TypeID[frame]()))
	require.Equal(t, "frame", reg.ElementTypeNameByElementTypeIDName(store.TypeID[frame]()))
}

func TestRegistry_RawCreator(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCreator(func() *AttributeStore {
		return NewAttributeStore(store.NewVector[uint16]())
	}, "ushort", store.TypeID[uint16]())

	as := reg.CreateAttributeStoreByElementTypeName("ushort")
	require.Equal(t, 2, as.ElementSize())
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	require.Same(t, reg, DefaultRegistry())

	require.Equal(t, []string{
		"byte", "char", "double", "float", "index", "int", "long",
		"short", "uint", "ulong", "ushort", "vec2", "vec3",
	}, reg.TypeNames())
	require.Equal(t, "vec3", reg.ElementTypeNameByElementTypeIDName("[3]float64"))
	require.Equal(t, "byte", reg.ElementTypeNameByElementTypeIDName(store.TypeID[uint8]()))
}
