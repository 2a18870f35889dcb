package compress

import (
	"fmt"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/format"
)

const (
	// lz4MaxExpansion bounds the decoded to encoded ratio of an LZ4 block:
	// every 255 bytes of match length cost at least one byte.
	lz4MaxExpansion = 255
	// zstdMaxExpansion bounds the ratio of a zstd frame: a block decodes to
	// at most 128KiB and takes at least 4 bytes.
	zstdMaxExpansion = 32 * 1024
	// expansionSlack absorbs frame headers and trailing literals of tiny inputs.
	expansionSlack = 1024
)

// Compressor compresses a snapshot body.
//
// The returned slice is owned by the caller; the input is not modified. The
// NoOp codec returns its input as is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a body produced by the matching Compressor. It
// returns an error when data is corrupted or was produced by another
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor decompresses into a buffer of a known final size. The
// size comes from untrusted input, so implementations reject sizes the
// compressed data cannot produce before allocating.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression of a body.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns CompressedSize / OriginalSize, or 0 for an empty
// original.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a new codec of the given type. target names the
// payload in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared codec of the given type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// CompressWithStats compresses data with codec and reports the sizes.
func CompressWithStats(codec Codec, algorithm format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return out, CompressionStats{
		Algorithm:      algorithm,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}

// DecompressSized decompresses data and checks that the result is size
// bytes long. Codecs implementing SizedDecompressor decode directly into a
// buffer of that size.
func DecompressSized(codec Decompressor, data []byte, size int) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if sized, ok := codec.(SizedDecompressor); ok {
		out, err = sized.DecompressSize(data, size)
	} else {
		out, err = codec.Decompress(data)
	}
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, fmt.Errorf("decompressed %d bytes, expected %d", len(out), size)
	}

	return out, nil
}

// checkExpansion rejects a decoded size that compressed bytes of the given
// algorithm cannot produce.
func checkExpansion(algorithm string, compressed, size, maxExpansion int) error {
	if size <= 0 {
		return nil
	}
	if uint64(size) > uint64(compressed)*uint64(maxExpansion)+expansionSlack { //nolint: gosec
		return fmt.Errorf("%w: %s block of %d bytes cannot decode to %d bytes",
			errs.ErrDecodedSizeLimit, algorithm, compressed, size)
	}

	return nil
}
