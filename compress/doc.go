// Package compress provides the codecs applied to attribute snapshot bodies.
//
// A snapshot body is the concatenation of every attribute's raw element
// bytes, so its compressibility depends on the attributes: index and flag
// attributes compress very well, dense float coordinates much less.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): the body is stored as is.
//   - Zstd (format.CompressionZstd): best ratio, moderate speed. Pure Go by
//     default; builds with cgo and the gozstd tag use the C library.
//   - S2 (format.CompressionS2): fast with a good ratio.
//   - LZ4 (format.CompressionLZ4): fastest decompression.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(body)
//	...
//	body, err = compress.DecompressSized(codec, stored, rawLen)
//
// DecompressSized uses the uncompressed length recorded in the snapshot
// header to size the output buffer and to verify the result.
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
