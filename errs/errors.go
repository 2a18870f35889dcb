// Package errs defines the sentinel errors shared by the meshattr packages.
//
// Programmer errors (binding an already bound handle, out of range indices,
// type mismatches, malformed compress mappings) are raised as panics whose
// value wraps one of these sentinels, so a recovering caller can still
// classify them with errors.Is. Decoding failures in the snapshot package are
// returned as ordinary wrapped errors.
package errs

import "errors"

// Binding and lookup errors.
var (
	// ErrAlreadyBound is raised when binding a handle that is already bound.
	ErrAlreadyBound = errors.New("attribute is already bound")
	// ErrNotBound is raised when using a handle that is not bound.
	ErrNotBound = errors.New("attribute is not bound")
	// ErrNameInUse is raised when binding a store under a name that is already taken.
	ErrNameInUse = errors.New("attribute name already in use")
	// ErrTypeMismatch is raised when an existing store does not hold the requested element type.
	ErrTypeMismatch = errors.New("attribute element type mismatch")
	// ErrNoStore is raised when an AttributeStore is used before a Store is set.
	ErrNoStore = errors.New("attribute store has no backing store")
	// ErrInvalidDimension is raised for vector attributes with less than one component.
	ErrInvalidDimension = errors.New("invalid attribute dimension")
)

// Structural operation errors.
var (
	// ErrIndexOutOfRange is raised when an element index is not below the store size.
	ErrIndexOutOfRange = errors.New("element index out of range")
	// ErrInvalidMapping is raised when a compress mapping has the wrong length or moves an element forward.
	ErrInvalidMapping = errors.New("invalid compress mapping")
	// ErrInvalidPermutation is raised when a permutation has the wrong length or an out of range entry.
	ErrInvalidPermutation = errors.New("invalid permutation")
)

// Registry errors.
var (
	// ErrUnknownType is raised when an element type name or type id is not registered.
	ErrUnknownType = errors.New("unknown attribute element type")
	// ErrTypeConflict is raised when a type name is re-registered with a different type id.
	ErrTypeConflict = errors.New("attribute element type registered with a different type id")
	// ErrUnsupportedType is raised when registering an element type that is not flat.
	ErrUnsupportedType = errors.New("attribute element type is not flat")
)

// Snapshot errors.
var (
	ErrInvalidHeaderSize   = errors.New("invalid snapshot header size")
	ErrInvalidMagic        = errors.New("invalid snapshot magic")
	ErrUnsupportedVersion  = errors.New("unsupported snapshot version")
	ErrChecksumMismatch    = errors.New("snapshot checksum mismatch")
	ErrByteOrderMismatch   = errors.New("snapshot byte order differs from host byte order")
	ErrCorruptedSnapshot   = errors.New("corrupted snapshot body")
	ErrElementSizeMismatch = errors.New("persisted element size does not match registered type")
	ErrDecodedSizeLimit    = errors.New("decoded body size exceeds limit")
)

// Snapshot content errors.
var (
	ErrInvalidAttributeName = errors.New("invalid attribute name")
	ErrDuplicateAttribute   = errors.New("duplicate attribute name")
)
