package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor is the S2 codec. It trades ratio for speed and suits
// snapshots that are rewritten often.
type S2Compressor struct{}

var (
	_ Codec             = (*S2Compressor)(nil)
	_ SizedDecompressor = (*S2Compressor)(nil)
)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as one S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes one S2 block.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressSize(data, 0)
}

// DecompressSize decodes one S2 block whose decoded length must be size when
// size is positive.
func (c S2Compressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > 0 && n != size {
		return nil, fmt.Errorf("s2 decompression failed: block holds %d bytes, want %d", n, size)
	}

	decompressed, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return decompressed, nil
}
