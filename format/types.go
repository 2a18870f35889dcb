// Package format holds the identifiers written into attribute snapshots.
package format

import (
	"fmt"
	"strings"
)

type (
	// CompressionType identifies the codec applied to a snapshot body.
	CompressionType uint8
	// ByteOrder identifies the byte order of the element bytes of a snapshot.
	ByteOrder uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the body as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	LittleEndian ByteOrder = 0x1
	BigEndian    ByteOrder = 0x2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("unknown compression type %d", uint8(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompressionType(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// ParseCompressionType parses a case-insensitive compression name. The
// empty string selects CompressionNone.
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2 or lz4)", s)
	}
}

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "Unknown"
	}
}
