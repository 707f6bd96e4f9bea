package project

import "crypto/sha256"

// Digest is a fixed 256-bit content hash, compatible with the hash a
// source.File carries for its own bytes.
type Digest [32]byte

// Combine builds a module hash from its own content hash plus its
// dependencies' already-computed hashes: H(content || dep1 || dep2 ...).
// Callers must pass deps in a deterministic order (a module graph's edges
// are kept sorted by ModuleID for exactly this reason).
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
