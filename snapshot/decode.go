package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/meshattr/attribute"
	"github.com/arloliu/meshattr/compress"
	"github.com/arloliu/meshattr/endian"
	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/format"
	"github.com/arloliu/meshattr/internal/collision"
	"github.com/arloliu/meshattr/internal/hash"
	"github.com/arloliu/meshattr/internal/pool"
	"github.com/arloliu/meshattr/logger"
	"github.com/arloliu/meshattr/section"
)

// DecodeHeader parses and validates the header of a snapshot without
// touching the body.
func DecodeHeader(data []byte) (section.Header, error) {
	return section.ParseHeader(data)
}

// Decode rebuilds a manager from a snapshot produced by Encode. The
// returned manager uses the decoding registry.
func Decode(data []byte, opts ...Option) (*attribute.Manager, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	reg := cfg.registry
	if reg == nil {
		reg = attribute.DefaultRegistry()
	}

	header, body, err := verify(data, cfg.maxRawLength)
	if err != nil {
		return nil, err
	}

	m := attribute.NewManager(attribute.WithRegistry(reg))
	m.Resize(int(header.ItemCount)) //nolint: gosec

	tracker := collision.NewTracker(int(header.AttributeCount))
	for range header.AttributeCount {
		entry, n, err := section.ParseAttributeEntry(body)
		if err != nil {
			return nil, err
		}
		body = body[n:]

		if err := tracker.Track(entry.Name); err != nil {
			return nil, err
		}
		as, n, err := decodeStore(reg, header, entry, body)
		if err != nil {
			return nil, err
		}
		body = body[n:]
		m.BindAttributeStore(entry.Name, as)
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d trailing body bytes", errs.ErrCorruptedSnapshot, len(body))
	}

	logger.Debug("snapshot decoded",
		zap.Int("attributes", m.NbAttributes()),
		zap.Int("nb_items", m.NbItems()),
		zap.Stringer("compression", header.Compression),
	)

	return m, nil
}

// verify checks the header, the checksum and the byte order, and returns the
// decompressed body.
func verify(data []byte, maxRawLength uint32) (section.Header, []byte, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, nil, err
	}
	if want := section.HeaderSize + int(header.BodyLength); len(data) != want {
		return section.Header{}, nil, fmt.Errorf("%w: snapshot is %d bytes, header announces %d",
			errs.ErrCorruptedSnapshot, len(data), want)
	}
	if header.RawLength > maxRawLength {
		return section.Header{}, nil, fmt.Errorf("%w: raw body of %d bytes, limit is %d",
			errs.ErrDecodedSizeLimit, header.RawLength, maxRawLength)
	}
	if header.ItemCount > math.MaxInt32 {
		return section.Header{}, nil, fmt.Errorf("%w: item count %d", errs.ErrCorruptedSnapshot, header.ItemCount)
	}

	stored := data[section.HeaderSize:]
	if sum := hash.Checksum(stored); sum != header.Checksum {
		return section.Header{}, nil, fmt.Errorf("%w: got %#x, header has %#x",
			errs.ErrChecksumMismatch, sum, header.Checksum)
	}
	if native := endian.NativeByteOrder(); header.ByteOrder != native {
		return section.Header{}, nil, fmt.Errorf("%w: snapshot is %s, host is %s",
			errs.ErrByteOrderMismatch, header.ByteOrder, native)
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return section.Header{}, nil, err
	}
	if header.RawLength == 0 && header.Compression != format.CompressionNone {
		return header, nil, nil
	}
	body, err := compress.DecompressSized(codec, stored, int(header.RawLength))
	if err != nil {
		return section.Header{}, nil, fmt.Errorf("%w: %w", errs.ErrCorruptedSnapshot, err)
	}

	return header, body, nil
}

// decodeStore builds the store of entry from the element bytes at the start
// of body and returns it with the number of bytes consumed.
func decodeStore(reg *attribute.Registry, header section.Header, entry section.AttributeEntry, body []byte) (*attribute.AttributeStore, int, error) {
	if !reg.ElementTypeNameIsKnown(entry.TypeName) {
		return nil, 0, fmt.Errorf("%w: attribute %q has type %q", errs.ErrUnknownType, entry.Name, entry.TypeName)
	}

	switch {
	case entry.IsConstant() && entry.Count != 1:
		return nil, 0, fmt.Errorf("%w: constant attribute %q has %d elements",
			errs.ErrCorruptedSnapshot, entry.Name, entry.Count)
	case !entry.IsConstant() && entry.Count != header.ItemCount:
		return nil, 0, fmt.Errorf("%w: attribute %q has %d elements, manager has %d",
			errs.ErrCorruptedSnapshot, entry.Name, entry.Count, header.ItemCount)
	}

	as := reg.CreateAttributeStoreByElementTypeName(entry.TypeName)
	if uint32(as.ElementSize()) != entry.ElementSize { //nolint: gosec
		return nil, 0, fmt.Errorf("%w: attribute %q of type %q has %d byte elements, registered type has %d",
			errs.ErrElementSizeMismatch, entry.Name, entry.TypeName, entry.ElementSize, as.ElementSize())
	}
	if entry.ElementSize > 0 && entry.Count > uint64(len(body))/uint64(entry.ElementSize) {
		return nil, 0, fmt.Errorf("%w: truncated elements of attribute %q", errs.ErrCorruptedSnapshot, entry.Name)
	}

	n := int(entry.DataLength()) //nolint: gosec
	as.Resize(int(entry.Count))  //nolint: gosec
	copy(as.Bytes(), body[:n])
	if entry.IsConstant() {
		as.MakeConstant()
	}

	return as, n, nil
}

// ReadFrom reads one snapshot from r and decodes it. r is consumed up to the
// end of the snapshot.
func ReadFrom(r io.Reader, opts ...Option) (*attribute.Manager, error) {
	head := make([]byte, section.HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	header, err := section.ParseHeader(head)
	if err != nil {
		return nil, err
	}

	// The buffer grows with the bytes actually read; the announced length is
	// only trusted up to one pooled buffer.
	var buf bytes.Buffer
	buf.Grow(section.HeaderSize + min(int(header.BodyLength), pool.SnapshotBufferDefaultSize))
	buf.Write(head)
	n, err := io.CopyN(&buf, r, int64(header.BodyLength))
	if err != nil {
		return nil, fmt.Errorf("%w: read %d of %d body bytes: %w",
			errs.ErrCorruptedSnapshot, n, header.BodyLength, err)
	}

	return Decode(buf.Bytes(), opts...)
}
