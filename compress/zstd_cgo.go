//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/meshattr/errs"
)

// zstdLevel matches zstd.SpeedDefault of the pure Go build.
const zstdLevel = 3

// Compress compresses data with the zstd C library.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstd data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressSize(data, 0)
}

// DecompressSize decompresses Zstd data into a buffer preallocated for size bytes.
func (c ZstdCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if err := checkExpansion("zstd", len(data), size, zstdMaxExpansion); err != nil {
		return nil, err
	}

	var dst []byte
	if size > 0 {
		dst = make([]byte, 0, size)
	}
	decompressed, err := gozstd.Decompress(dst, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if size > 0 && len(decompressed) != size {
		return nil, fmt.Errorf("%w: zstd frame holds %d bytes, want %d",
			errs.ErrDecodedSizeLimit, len(decompressed), size)
	}

	return decompressed, nil
}
