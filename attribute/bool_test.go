package attribute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/meshattr/errs"
)

func TestBoolAttribute(t *testing.T) {
	m := newTestManager(t)
	m.Resize(4)

	flags := NewBoolAttribute(m, "selected")
	flags.SetValue(2, true)

	require.True(t, flags.Value(2))
	require.False(t, flags.Value(0))
	require.Equal(t, 1, flags.Count())
	require.True(t, IsBoolDefined(m, "selected"))

	as := m.FindAttributeStore("selected")
	require.Equal(t, 1, as.ElementSize())
	require.Equal(t, []byte{0, 0, 1, 0}, as.Bytes())
}

func TestBoolAttribute_FillAndConstant(t *testing.T) {
	m := newTestManager(t)
	m.Resize(3)
	flags := NewBoolAttribute(m, "boundary")

	flags.Fill(true)
	require.Equal(t, 3, flags.Count())

	flags.SetConstantValue(false)
	require.True(t, flags.IsConstant())
	require.False(t, flags.Value(2))
	require.Equal(t, 0, flags.Count())
}

func TestBoolAttribute_CopyValue(t *testing.T) {
	m := newTestManager(t)
	m.Resize(3)
	a := NewBoolAttribute(m, "a")
	b := NewBoolAttribute(m, "b")
	b.SetValue(1, true)

	a.CopyValue(0, b, 1)
	require.True(t, a.Value(0))

	a.CopyValue(2, a, 0)
	require.True(t, a.Value(2))
	require.Equal(t, 2, a.Count())
}

func TestBoolAttribute_SharesByteStorage(t *testing.T) {
	m := newTestManager(t)
	m.Resize(2)
	NewBoolAttribute(m, "visible")

	bytes := NewAttribute[uint8](m, "visible")
	bytes.SetValue(1, 1)

	flags := NewBoolAttribute(m, "visible")
	require.True(t, flags.Value(1))

	requirePanicsWith(t, errs.ErrTypeMismatch, func() { NewAttribute[int8](m, "visible") })
}
