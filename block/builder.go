package block

import (
	"encoding/binary"

	"github.com/lsmkv/lsmcore/key"
)

// Builder accumulates (key, value) entries into a single Block, honoring a
// target byte budget and prefix-compressing every key against the block's
// first key.
type Builder struct {
	data     []byte
	offsets  []uint16
	blockSize int
	firstKey key.Bytes
}

// NewBuilder constructs an empty Builder targeting blockSize bytes.
func NewBuilder(blockSize int) *Builder {
	return &Builder{blockSize: blockSize}
}

// estimatedSize is the encoded size the block would currently occupy.
func (b *Builder) estimatedSize() int {
	return SizeofU16 + SizeofU16*len(b.offsets) + len(b.data)
}

// Add appends (key, value) to the block. It rejects empty keys as a
// programmer error (panics, there being no caller-recoverable path for a
// malformed builder call). It returns false without mutating the builder
// when doing so would exceed the target block size and the block already
// holds at least one entry — the first entry is always accepted even if it
// alone overflows the budget, since a block must hold at least one entry.
func (b *Builder) Add(k key.Slice, value []byte) bool {
	if k.IsEmpty() {
		panic("block: key must not be empty")
	}

	entrySize := SizeofU16*3 + k.Len() + len(value)
	if !b.IsEmpty() && b.estimatedSize()+entrySize > b.blockSize {
		return false
	}

	overlap := key.CommonPrefixLen(b.firstKey.AsSlice(), k)

	b.offsets = append(b.offsets, uint16(len(b.data)))
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(overlap))
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(k.Len()-overlap))
	b.data = append(b.data, k[overlap:]...)
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(len(value)))
	b.data = append(b.data, value...)

	if b.firstKey.IsEmpty() {
		b.firstKey = k.ToBytes()
	}

	return true
}

// IsEmpty reports whether the builder holds no entries.
func (b *Builder) IsEmpty() bool { return len(b.offsets) == 0 }

// Build yields the immutable Block owning the accumulated data and
// offsets. It fails with ErrEmptyBlock if no entry was ever added.
func (b *Builder) Build() (*Block, error) {
	if b.IsEmpty() {
		return nil, ErrEmptyBlock
	}
	return &Block{data: b.data, offsets: b.offsets}, nil
}
