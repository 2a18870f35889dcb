package compress

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/meshattr/errs"
	"github.com/arloliu/meshattr/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// attributeBody mimics a snapshot body: an int32 index column followed by
// float64 coordinates.
func attributeBody(n int) []byte {
	rng := rand.New(rand.NewPCG(7, 11))
	body := make([]byte, 0, n*28)
	for i := range n {
		body = binary.LittleEndian.AppendUint32(body, uint32(i/4))
	}
	for range n * 3 {
		body = binary.LittleEndian.AppendUint64(body, math.Float64bits(rng.Float64()))
	}

	return body
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "body")
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	_, err := CreateCodec(format.CompressionType(0), "body")
	require.ErrorContains(t, err, "invalid body compression")

	_, err = GetCodec(format.CompressionType(42))
	require.Error(t, err)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	sizes := []int{1, 16, 1000, 20000}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for _, n := range sizes {
			body := attributeBody(n)
			t.Run(ct.String(), func(t *testing.T) {
				stored, err := codec.Compress(body)
				require.NoError(t, err)

				restored, err := codec.Decompress(stored)
				require.NoError(t, err)
				require.Equal(t, body, restored)

				sized, err := DecompressSized(codec, stored, len(body))
				require.NoError(t, err)
				require.Equal(t, body, sized)
			})
		}
	}
}

func TestAllCodecs_EmptyBody(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			stored, err := codec.Compress(nil)
			require.NoError(t, err)
			restored, err := DecompressSized(codec, stored, 0)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestAllCodecs_CorruptedInput(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xff, 0x00, 0x13}, 40)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = DecompressSized(codec, garbage, 1024)
			require.Error(t, err)
		})
	}
}

func TestDecompressSized_LengthMismatch(t *testing.T) {
	body := attributeBody(64)

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			stored, err := codec.Compress(body)
			require.NoError(t, err)

			_, err = DecompressSized(codec, stored, len(body)+8)
			require.Error(t, err)
		})
	}
}

func TestDecompressSized_RejectsImpossibleSize(t *testing.T) {
	body := attributeBody(2)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			stored, err := codec.Compress(body)
			require.NoError(t, err)

			_, err = DecompressSized(codec, stored, 0xF0000000)
			require.ErrorIs(t, err, errs.ErrDecodedSizeLimit)
		})
	}

	t.Run("zstd frame size", func(t *testing.T) {
		codec, err := GetCodec(format.CompressionZstd)
		require.NoError(t, err)
		stored, err := codec.Compress(body)
		require.NoError(t, err)

		_, err = DecompressSized(codec, stored, len(body)+1)
		require.ErrorIs(t, err, errs.ErrDecodedSizeLimit)
	})
}

func TestDecompressSized_HighlyCompressible(t *testing.T) {
	body := make([]byte, 4<<20)

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			stored, err := codec.Compress(body)
			require.NoError(t, err)

			restored, err := DecompressSized(codec, stored, len(body))
			require.NoError(t, err)
			require.Equal(t, len(body), len(restored))
		})
	}
}

func TestAllCodecs_Concurrent(t *testing.T) {
	body := attributeBody(2000)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 10 {
					stored, err := codec.Compress(body)
					if !assert.NoError(t, err) {
						return
					}
					restored, err := DecompressSized(codec, stored, len(body))
					assert.NoError(t, err)
					assert.Equal(t, body, restored)
				}
			}()
		}
		wg.Wait()
	}
}

func TestCompressWithStats(t *testing.T) {
	body := bytes.Repeat([]byte{1, 0, 0, 0}, 4096)
	codec, err := GetCodec(format.CompressionS2)
	require.NoError(t, err)

	stored, stats, err := CompressWithStats(codec, format.CompressionS2, body)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, int64(len(body)), stats.OriginalSize)
	require.Equal(t, int64(len(stored)), stats.CompressedSize)
	require.Less(t, stats.CompressionRatio(), 0.5)
	require.Greater(t, stats.SpaceSavings(), 50.0)

	require.Zero(t, CompressionStats{}.CompressionRatio())
}

func TestNoOpCompressor_Aliases(t *testing.T) {
	body := []byte{1, 2, 3}
	stored, err := NewNoOpCompressor().Compress(body)
	require.NoError(t, err)
	require.Same(t, &body[0], &stored[0])
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	body := attributeBody(10000)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(body)))
			for i := 0; i < b.N; i++ {
				_, _ = codec.Compress(body)
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	body := attributeBody(10000)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		stored, _ := codec.Compress(body)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(body)))
			for i := 0; i < b.N; i++ {
				_, _ = DecompressSized(codec, stored, len(body))
			}
		})
	}
}
