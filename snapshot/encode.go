package snapshot

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arloliu/meshattr/attribute"
	"github.com/arloliu/meshattr/compress"
	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/internal/hash"
	"github.com/arloliu/meshattr/internal/pool"
	"github.com/arloliu/meshattr/logger"
	"github.com/arloliu/meshattr/section"
)

// Encode serializes every attribute of m. Attributes are written in name
// order so that equal managers produce equal snapshots.
//
// Every element type must be known to the registry; otherwise Encode
// returns an error wrapping errs.ErrUnknownType.
func Encode(m *attribute.Manager, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	reg := cfg.registry
	if reg == nil {
		reg = m.Registry()
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	names := m.AttributeNames()
	for _, name := range names {
		if err := appendAttribute(buf, reg, name, m.FindAttributeStore(name)); err != nil {
			return nil, err
		}
	}
	if buf.Len() > section.MaxBodyLength {
		return nil, fmt.Errorf("snapshot body of %d bytes exceeds %d bytes", buf.Len(), section.MaxBodyLength)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	stored, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress snapshot body: %w", err)
	}
	if len(stored) > section.MaxBodyLength {
		return nil, fmt.Errorf("compressed snapshot body of %d bytes exceeds %d bytes", len(stored), section.MaxBodyLength)
	}

	header := section.NewHeader(cfg.compression)
	header.AttributeCount = uint32(len(names)) //nolint: gosec
	header.ItemCount = uint64(m.NbItems())     //nolint: gosec
	header.BodyLength = uint32(len(stored))    //nolint: gosec
	header.RawLength = uint32(buf.Len())       //nolint: gosec
	header.Checksum = hash.Checksum(stored)

	out := make([]byte, 0, section.HeaderSize+len(stored))
	out = header.AppendTo(out)
	out = append(out, stored...)

	logger.Debug("snapshot encoded",
		zap.Int("attributes", len(names)),
		zap.Int("nb_items", m.NbItems()),
		zap.Stringer("compression", cfg.compression),
		zap.Int("raw_bytes", buf.Len()),
		zap.Int("stored_bytes", len(stored)),
	)

	return out, nil
}

func appendAttribute(buf *pool.ByteBuffer, reg *attribute.Registry, name string, as *attribute.AttributeStore) error {
	if !as.HasStore() {
		return fmt.Errorf("%w: attribute %q", errs.ErrNoStore, name)
	}
	typeName, ok := reg.LookupTypeName(as.ElementTypeIDName())
	if !ok {
		return fmt.Errorf("%w: attribute %q holds %s", errs.ErrUnknownType, name, as.ElementTypeIDName())
	}

	raw := as.Bytes()
	entry := section.AttributeEntry{
		Name:        name,
		TypeName:    typeName,
		ElementSize: uint32(as.ElementSize()), //nolint: gosec
		Count:       uint64(as.Size()),        //nolint: gosec
	}
	if as.IsConstant() {
		entry.Flags |= section.FlagConstant
	}

	buf.Grow(entry.EncodedSize() + len(raw))
	encoded, err := entry.AppendTo(buf.B)
	if err != nil {
		return err
	}
	buf.B = append(encoded, raw...)

	return nil
}

// WriteTo encodes m and writes the snapshot to w. It returns the number of
// bytes written.
func WriteTo(w io.Writer, m *attribute.Manager, opts ...Option) (int64, error) {
	data, err := Encode(m, opts...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write snapshot: %w", err)
	}

	return int64(n), nil
}
