// Package endian detects the host byte order and maps it to the byte order
// flag stored in attribute snapshots.
//
// Element bytes are persisted in host order; fixed-width header fields are
// always little-endian:
//
//	le := endian.GetLittleEndianEngine()
//	buf = le.AppendUint32(buf, count)
//	if endian.NativeByteOrder() != header.ByteOrder { ... }
package endian

import (
	"encoding/binary"
	"unsafe"

	"github.com/arloliu/meshattr/format"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary. binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the byte order of the host.
func CheckEndianness() EndianEngine {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// NativeByteOrder returns the snapshot flag of the host byte order.
func NativeByteOrder() format.ByteOrder {
	if IsNativeBigEndian() {
		return format.BigEndian
	}

	return format.LittleEndian
}

// EngineFor returns the engine of a snapshot byte order flag, and false for
// unknown flags.
func EngineFor(order format.ByteOrder) (EndianEngine, bool) {
	switch order {
	case format.LittleEndian:
		return binary.LittleEndian, true
	case format.BigEndian:
		return binary.BigEndian, true
	default:
		return nil, false
	}
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
