package format

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{" s2 ", CompressionS2},
		{"lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompressionType(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompressionType("gzip")
	require.Error(t, err)
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "Unknown", CompressionType(9).String())
	require.False(t, CompressionType(0).IsValid())
	require.True(t, CompressionLZ4.IsValid())
}

func TestCompressionType_YAML(t *testing.T) {
	var cfg struct {
		Compression CompressionType `yaml:"compression"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("compression: s2\n"), &cfg))
	require.Equal(t, CompressionS2, cfg.Compression)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "compression: s2\n", string(out))

	require.Error(t, yaml.Unmarshal([]byte("compression: brotli\n"), &cfg))
	_, err = CompressionType(0).MarshalText()
	require.Error(t, err)
}

func TestByteOrder_String(t *testing.T) {
	require.Equal(t, "LittleEndian", LittleEndian.String())
	require.Equal(t, "BigEndian", BigEndian.String())
	require.Equal(t, "Unknown", ByteOrder(0).String())
}
