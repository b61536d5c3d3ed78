// Package key provides thin semantic wrappers over byte sequences used
// throughout the LSM core, distinguishing a borrowed view of a key (one
// that does not own its storage) from an owned view (one that does).
//
// The block builder and iterators accept Slice on the hot path and
// materialize a Bytes only when a key needs to outlive the buffer it was
// read from — the block's first key, or an iterator's current key.
package key

import "bytes"

// Slice is a borrowed view over key bytes. It must not be retained past
// the lifetime of the backing array it was constructed from.
type Slice []byte

// Bytes is an owned copy of key bytes, safe to retain indefinitely.
type Bytes []byte

// IsEmpty reports whether the slice carries no bytes.
func (s Slice) IsEmpty() bool { return len(s) == 0 }

// Len returns the number of bytes in the key.
func (s Slice) Len() int { return len(s) }

// Compare orders two key slices lexicographically, matching bytes.Compare.
func (s Slice) Compare(other Slice) int { return bytes.Compare(s, other) }

// ToBytes materializes an owned copy of the slice.
func (s Slice) ToBytes() Bytes { return append(Bytes(nil), s...) }

// IsEmpty reports whether the owned key carries no bytes.
func (b Bytes) IsEmpty() bool { return len(b) == 0 }

// AsSlice returns a borrowed view over the owned key's bytes.
func (b Bytes) AsSlice() Slice { return Slice(b) }

// CommonPrefixLen returns the length of the longest common prefix ("LCP")
// shared by a and b.
func CommonPrefixLen(a, b Slice) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
