// Package section defines the binary layout of attribute snapshots.
//
// A snapshot is a fixed-size Header followed by the body. The body may be
// compressed as a whole; once decompressed it is a sequence of attributes,
// each an AttributeEntry immediately followed by its raw element bytes:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (40 bytes, little-endian)             │
//	│  - magic, version, byte order, compression   │
//	│  - attribute count, item count               │
//	│  - stored and raw body lengths, checksum     │
//	├──────────────────────────────────────────────┤
//	│ Body (stored as is or compressed)            │
//	│  ┌────────────────────────────────────────┐  │
//	│  │ AttributeEntry (20 bytes + names)      │  │
//	│  │ element bytes (count × element size)   │  │
//	│  └────────────────────────────────────────┘  │
//	│  ... one block per attribute, sorted by name │
//	└──────────────────────────────────────────────┘
//
// Element bytes are the in-memory representation of the elements on the
// writing host; the header records that host's byte order.
package section
