package section

import (
	"fmt"

	"github.com/arloliu/meshattr/endian"
	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/format"
)

// Header is the fixed-size header at the start of a snapshot. All fields are
// little-endian on disk; ByteOrder describes the element bytes of the body.
//
//	offset  size  field
//	0       4     magic "MATR"
//	4       1     version
//	5       1     byte order of element bytes
//	6       1     compression type of the body
//	7       1     reserved
//	8       4     attribute count
//	12      4     reserved
//	16      8     item count of the manager
//	24      4     stored (compressed) body length
//	28      4     raw body length
//	32      8     xxHash64 of the stored body
type Header struct {
	Version        uint8
	ByteOrder      format.ByteOrder
	Compression    format.CompressionType
	AttributeCount uint32
	ItemCount      uint64
	BodyLength     uint32
	RawLength      uint32
	Checksum       uint64
}

// NewHeader creates a header for the host byte order.
func NewHeader(compression format.CompressionType) *Header {
	return &Header{
		Version:     Version,
		ByteOrder:   endian.NativeByteOrder(),
		Compression: compression,
	}
}

// Parse parses the header from exactly HeaderSize bytes and validates it.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if string(data[0:4]) != Magic {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[0:4])
	}

	le := endian.GetLittleEndianEngine()
	h.Version = data[4]
	h.ByteOrder = format.ByteOrder(data[5])
	h.Compression = format.CompressionType(data[6])
	h.AttributeCount = le.Uint32(data[8:12])
	h.ItemCount = le.Uint64(data[16:24])
	h.BodyLength = le.Uint32(data[24:28])
	h.RawLength = le.Uint32(data[28:32])
	h.Checksum = le.Uint64(data[32:40])

	return h.Validate()
}

// Validate checks the version, byte order and compression fields.
func (h *Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	if _, ok := endian.EngineFor(h.ByteOrder); !ok {
		return fmt.Errorf("%w: unknown byte order flag %d", errs.ErrCorruptedSnapshot, h.ByteOrder)
	}
	if !h.Compression.IsValid() {
		return fmt.Errorf("%w: unknown compression type %d", errs.ErrCorruptedSnapshot, h.Compression)
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf.
func (h *Header) AppendTo(buf []byte) []byte {
	le := endian.GetLittleEndianEngine()

	buf = append(buf, Magic...)
	buf = append(buf, h.Version, uint8(h.ByteOrder), uint8(h.Compression), 0)
	buf = le.AppendUint32(buf, h.AttributeCount)
	buf = le.AppendUint32(buf, 0)
	buf = le.AppendUint64(buf, h.ItemCount)
	buf = le.AppendUint32(buf, h.BodyLength)
	buf = le.AppendUint32(buf, h.RawLength)
	buf = le.AppendUint64(buf, h.Checksum)

	return buf
}

// ParseHeader parses the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
