// Package block implements the variable-length, prefix-compressed,
// binary-searchable record container that is the atomic unit of I/O for
// sorted tables.
//
// # On-disk layout
//
//	+------------------------------------------------------------+
//	| entries...                | offsets (u16 BE each)| count   |
//	+------------------------------------------------------------+
//	^                           ^                       ^
//	0                           data_end                len-2
//
// Each entry is laid out as:
//
//	| overlap_len (u16 BE) | rest_len (u16 BE) | key_rest | value_len (u16 BE) | value |
//
// where overlap_len is the number of leading bytes the entry's key shares
// with the block's first key, so the full key is
// first_key[0:overlap_len] || key_rest. Prefix-compressing against the
// first key only (rather than the previous entry) lets any entry's key be
// reconstructed in O(1) during binary search without walking the block
// from its start — a restart-point scheme degenerated to a single restart
// per block.
package block

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lsmkv/lsmcore/key"
)

// SizeofU16 is the width in bytes of every length-prefix field in the
// block format.
const SizeofU16 = 2

// ErrEmptyBlock is returned by Build when the builder holds no entries.
var ErrEmptyBlock = errors.New("block: cannot build an empty block")

// ErrMalformedBlock is returned by Decode when the buffer is shorter than
// its declared offset region, or otherwise internally inconsistent.
var ErrMalformedBlock = errors.New("block: malformed block buffer")

// Block is an immutable, decodable byte container of sorted (key, value)
// entries plus an embedded offset index. Entries are stored in strictly
// non-decreasing key order only if the caller added them in that order:
// neither Block nor Builder checks it.
type Block struct {
	data    []byte
	offsets []uint16
}

// Entries returns the number of offsets recorded in the block.
func (b *Block) Entries() int { return len(b.offsets) }

// Encode serializes the block to the on-disk byte layout described above.
func (b *Block) Encode() []byte {
	buf := make([]byte, 0, len(b.data)+len(b.offsets)*SizeofU16+SizeofU16)
	buf = append(buf, b.data...)
	for _, off := range b.offsets {
		buf = binary.BigEndian.AppendUint16(buf, off)
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(b.offsets)))
	return buf
}

// Decode reconstructs a Block from an encoded buffer. It fails with
// ErrMalformedBlock when the buffer is shorter than the declared offset
// region demands, or when a decoded offset lies outside the data region.
func Decode(buf []byte) (*Block, error) {
	if len(buf) < SizeofU16 {
		return nil, fmt.Errorf("%w: buffer too short for entry count (%d bytes)", ErrMalformedBlock, len(buf))
	}

	numEntries := int(binary.BigEndian.Uint16(buf[len(buf)-SizeofU16:]))
	offsetsRegionLen := SizeofU16 * numEntries

	if len(buf) < SizeofU16+offsetsRegionLen {
		return nil, fmt.Errorf("%w: buffer too short for %d offsets", ErrMalformedBlock, numEntries)
	}

	dataEnd := len(buf) - SizeofU16 - offsetsRegionLen
	offsetsRegion := buf[dataEnd : len(buf)-SizeofU16]

	offsets := make([]uint16, numEntries)
	for i := range offsets {
		offsets[i] = binary.BigEndian.Uint16(offsetsRegion[i*SizeofU16:])
		if int(offsets[i]) >= dataEnd {
			return nil, fmt.Errorf("%w: offset %d of entry %d outside %d-byte data region", ErrMalformedBlock, offsets[i], i, dataEnd)
		}
	}

	data := make([]byte, dataEnd)
	copy(data, buf[:dataEnd])

	return &Block{data: data, offsets: offsets}, nil
}

// entryAt decodes the entry whose first byte is at the given offset into
// data, given the block's already-known first key. It returns the
// reconstructed key and the [start, end) value range within data.
func (b *Block) entryAt(offset int, firstKey key.Slice) (key.Bytes, [2]int, error) {
	buf := b.data[offset:]
	if len(buf) < SizeofU16*2 {
		return nil, [2]int{}, fmt.Errorf("%w: truncated entry header at offset %d", ErrMalformedBlock, offset)
	}

	overlapLen := int(binary.BigEndian.Uint16(buf))
	restLen := int(binary.BigEndian.Uint16(buf[SizeofU16:]))
	pos := SizeofU16 * 2

	if overlapLen > len(firstKey) || pos+restLen+SizeofU16 > len(buf) {
		return nil, [2]int{}, fmt.Errorf("%w: inconsistent key lengths at offset %d", ErrMalformedBlock, offset)
	}

	reconstructed := make(key.Bytes, 0, overlapLen+restLen)
	reconstructed = append(reconstructed, firstKey[:overlapLen]...)
	reconstructed = append(reconstructed, buf[pos:pos+restLen]...)
	pos += restLen

	valueLen := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += SizeofU16

	if pos+valueLen > len(buf) {
		return nil, [2]int{}, fmt.Errorf("%w: truncated value at offset %d", ErrMalformedBlock, offset)
	}

	valueStart := offset + pos
	valueEnd := valueStart + valueLen

	return reconstructed, [2]int{valueStart, valueEnd}, nil
}
