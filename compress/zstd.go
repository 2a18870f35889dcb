package compress

// ZstdCompressor is the Zstandard codec. It gives the best ratio of the
// built-in codecs and suits snapshots written once and read rarely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
