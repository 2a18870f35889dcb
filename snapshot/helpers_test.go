package snapshot

import "github.com/arloliu/meshattr/internal/hash"

func hashOf(body []byte) uint64 {
	return hash.Checksum(body)
}
