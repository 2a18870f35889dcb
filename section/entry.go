package section

import (
	"fmt"

	"github.com/arloliu/meshattr/endian"
	"github.com/arloliu/meshattr/errs"
)

// AttributeEntry describes one attribute in a snapshot body. The entry is
// immediately followed by Count*ElementSize raw element bytes.
//
//	size  field
//	2     name length
//	2     type name length
//	1     flags
//	3     padding
//	4     element size
//	8     element count
//	n     name
//	m     type name
type AttributeEntry struct {
	Name        string
	TypeName    string
	Flags       uint8
	ElementSize uint32
	Count       uint64
}

// IsConstant reports whether the entry describes a constant store.
func (e AttributeEntry) IsConstant() bool {
	return e.Flags&FlagConstant != 0
}

// DataLength returns the number of element bytes following the entry.
func (e AttributeEntry) DataLength() uint64 {
	return e.Count * uint64(e.ElementSize)
}

// EncodedSize returns the size of the serialized entry, element bytes excluded.
func (e AttributeEntry) EncodedSize() int {
	return entryFixedSize + len(e.Name) + len(e.TypeName)
}

// AppendTo appends the serialized entry to buf.
func (e AttributeEntry) AppendTo(buf []byte) ([]byte, error) {
	if e.Name == "" || len(e.Name) > MaxNameLength {
		return buf, fmt.Errorf("%w: attribute name length %d", errs.ErrInvalidAttributeName, len(e.Name))
	}
	if e.TypeName == "" || len(e.TypeName) > MaxNameLength {
		return buf, fmt.Errorf("%w: type name length %d of attribute %q", errs.ErrUnknownType, len(e.TypeName), e.Name)
	}

	le := endian.GetLittleEndianEngine()
	buf = le.AppendUint16(buf, uint16(len(e.Name)))
	buf = le.AppendUint16(buf, uint16(len(e.TypeName)))
	buf = append(buf, e.Flags, 0, 0, 0)
	buf = le.AppendUint32(buf, e.ElementSize)
	buf = le.AppendUint64(buf, e.Count)
	buf = append(buf, e.Name...)
	buf = append(buf, e.TypeName...)

	return buf, nil
}

// ParseAttributeEntry parses the entry at the start of data and returns it
// with the number of bytes consumed.
func ParseAttributeEntry(data []byte) (AttributeEntry, int, error) {
	if len(data) < entryFixedSize {
		return AttributeEntry{}, 0, fmt.Errorf("%w: truncated attribute entry", errs.ErrCorruptedSnapshot)
	}

	le := endian.GetLittleEndianEngine()
	nameLen := int(le.Uint16(data[0:2]))
	typeLen := int(le.Uint16(data[2:4]))
	e := AttributeEntry{
		Flags:       data[4],
		ElementSize: le.Uint32(data[8:12]),
		Count:       le.Uint64(data[12:20]),
	}
	if e.Flags&^knownFlags != 0 {
		return AttributeEntry{}, 0, fmt.Errorf("%w: unknown attribute flags %#x", errs.ErrCorruptedSnapshot, e.Flags)
	}
	if nameLen == 0 || typeLen == 0 {
		return AttributeEntry{}, 0, fmt.Errorf("%w: empty attribute or type name", errs.ErrCorruptedSnapshot)
	}

	end := entryFixedSize + nameLen + typeLen
	if len(data) < end {
		return AttributeEntry{}, 0, fmt.Errorf("%w: truncated attribute names", errs.ErrCorruptedSnapshot)
	}
	e.Name = string(data[entryFixedSize : entryFixedSize+nameLen])
	e.TypeName = string(data[entryFixedSize+nameLen : end])

	return e, end, nil
}
