package group

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

// Hasher supplies equality and hashing for keys that Go's == cannot handle
// or that need a looser notion of equality. Equal keys must hash equally.
type Hasher[K any] interface {
	Hash(K) uint64
	Equal(a, b K) bool
}

// BytesHasher groups byte slices by content.
type BytesHasher struct{}

func (BytesHasher) Hash(b []byte) uint64 { return xxhash.Sum64(b) }
func (BytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// FoldedStringHasher groups strings case-insensitively using Unicode full
// case folding, so "Straße" and "STRASSE" share a key.
type FoldedStringHasher struct{}

func (FoldedStringHasher) Hash(s string) uint64 {
	return xxhash.Sum64String(fold(s))
}

func (FoldedStringHasher) Equal(a, b string) bool {
	return fold(a) == fold(b)
}

// fold creates a fresh Caser per call; Casers keep state and are not safe
// for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// HasherFunc builds a Hasher from two functions.
func HasherFunc[K any](hash func(K) uint64, equal func(a, b K) bool) Hasher[K] {
	return hasherFunc[K]{hash: hash, equal: equal}
}

type hasherFunc[K any] struct {
	hash  func(K) uint64
	equal func(a, b K) bool
}

func (h hasherFunc[K]) Hash(k K) uint64 { return h.hash(k) }
func (h hasherFunc[K]) Equal(a, b K) bool { return h.equal(a, b) }
