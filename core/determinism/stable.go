// Package determinism provides primitives for guaranteeing deterministic output.
// Quotes are recomputed independently in preview and at checkout, so anything
// that feeds a quote or its fingerprint must iterate and hash in a fixed order.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// quoteNamespace scopes quote fingerprints. Changing it invalidates every issued quote ID.
var quoteNamespace = uuid.MustParse("6f1d9a52-3c8e-4b47-9e21-0c4a7d2f8b13")

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 16 hex characters
func (h ContentHash) Short() string {
	return h.Hex()[:16]
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Short() + "..."
}

// Canonical joins fields into one unambiguous byte string
func Canonical(fields ...string) []byte {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f)
		b.WriteByte(0)
	}
	return []byte(b.String())
}

// Fingerprint returns a name-based (v5) UUID over the canonical fields.
// Identical fields always give the identical ID.
func Fingerprint(fields ...string) uuid.UUID {
	return uuid.NewSHA1(quoteNamespace, Canonical(fields...))
}

// KV renders key=value for canonical field lists
func KV(key string, value interface{}) string {
	return fmt.Sprintf("%s=%v", key, value)
}

// SortedKeys returns a sorted copy of map keys
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// SortedInts returns the sorted int keys of a map
func SortedInts[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
