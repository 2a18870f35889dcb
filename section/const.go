package section

import "math"

const (
	// Magic opens every snapshot.
	Magic = "MATR"
	// Version is the snapshot layout version written by this package.
	Version = 1
	// HeaderSize is the fixed size of the snapshot header in bytes.
	HeaderSize = 40
	// MaxNameLength bounds attribute and type names.
	MaxNameLength = math.MaxUint16
	// MaxBodyLength bounds the stored and raw body lengths.
	MaxBodyLength = math.MaxUint32
)

// Attribute entry flags.
const (
	FlagConstant uint8 = 0x01 // the store broadcasts a single value

	knownFlags = FlagConstant
)

// entryFixedSize is the size of an attribute entry without its names:
// name length (2), type name length (2), flags (1), padding (3),
// element size (4), element count (8).
const entryFixedSize = 20
