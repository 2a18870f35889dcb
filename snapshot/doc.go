// Package snapshot persists the attributes of an attribute.Manager.
//
// A snapshot records, for every attribute, its name, the registry name of
// its element type, whether it is constant, and its raw element bytes. The
// element count of the manager is stored once in the header. Decoding
// rebuilds each store from the persisted type name through an
// attribute.Registry, so a snapshot can be read by code that never names the
// element types:
//
//	data, err := snapshot.Encode(m, snapshot.WithCompression(format.CompressionZstd))
//	...
//	restored, err := snapshot.Decode(data)
//
// Element bytes are written in host order. Snapshots written on a host of
// the other byte order are rejected with errs.ErrByteOrderMismatch. The
// stored body is guarded by an xxHash64 checksum.
//
// See the section package for the binary layout.
package snapshot
