//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/meshattr/errs"
)

// Decoders and encoders run without allocations once warmed up, so they are
// pooled.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false), // the snapshot header carries its own checksum
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses data with a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd data with a pooled decoder.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressSize(data, 0)
}

// DecompressSize decompresses Zstd data into a buffer preallocated for size bytes.
func (c ZstdCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if err := checkZstdFrame(data, size); err != nil {
		return nil, err
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	var dst []byte
	if size > 0 {
		dst = make([]byte, 0, size)
	}
	decompressed, err := decoder.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

// checkZstdFrame rejects a frame that cannot decode to size bytes before any
// output buffer is allocated.
func checkZstdFrame(data []byte, size int) error {
	if size <= 0 {
		return nil
	}
	if err := checkExpansion("zstd", len(data), size, zstdMaxExpansion); err != nil {
		return err
	}

	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return fmt.Errorf("zstd decompression failed: %w", err)
	}
	if h.HasFCS && h.FrameContentSize != uint64(size) { //nolint: gosec
		return fmt.Errorf("%w: zstd frame holds %d bytes, want %d",
			errs.ErrDecodedSizeLimit, h.FrameContentSize, size)
	}

	return nil
}
