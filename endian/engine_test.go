package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/meshattr/format"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.True(t, IsNativeBigEndian())
		require.Equal(t, format.BigEndian, NativeByteOrder())
	case 0x02:
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.True(t, IsNativeLittleEndian())
		require.Equal(t, format.LittleEndian, NativeByteOrder())
	default:
		require.Failf(t, "unexpected byte", "got %#x", first)
	}
	require.NotEqual(t, IsNativeBigEndian(), IsNativeLittleEndian())
}

func TestEngineFor(t *testing.T) {
	le, ok := EngineFor(format.LittleEndian)
	require.True(t, ok)
	require.Equal(t, GetLittleEndianEngine(), le)

	be, ok := EngineFor(format.BigEndian)
	require.True(t, ok)
	require.Equal(t, GetBigEndianEngine(), be)

	_, ok = EngineFor(format.ByteOrder(7))
	require.False(t, ok)
}

func TestNativeEngineMatchesFlag(t *testing.T) {
	engine, ok := EngineFor(NativeByteOrder())
	require.True(t, ok)

	var v uint32 = 0xdeadbeef
	raw := (*[4]byte)(unsafe.Pointer(&v))[:]
	require.Equal(t, v, engine.Uint32(raw))
}

func TestAppendEngines(t *testing.T) {
	buf := GetLittleEndianEngine().AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{4, 3, 2, 1}, buf)

	buf = GetBigEndianEngine().AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{1, 2}, buf)
}
