package block

import (
	"github.com/lsmkv/lsmcore/iterators"
	"github.com/lsmkv/lsmcore/key"
)

var _ iterators.StorageIterator[key.Slice] = (*Iterator)(nil)

// Iterator is a positioned cursor over a Block, supporting seek-first,
// seek-key (binary search) and next. It is valid exactly when its current
// key is non-empty; querying Key or Value while invalid is a contract
// violation.
type Iterator struct {
	block      *Block
	idx        int
	currentKey key.Bytes
	valueRange [2]int
	firstKey   key.Bytes
}

// NewIterator constructs an unseeded iterator over block. Callers should
// use SeekToFirst or SeekToKey rather than relying on zero-value state.
func NewIterator(block *Block) *Iterator {
	return &Iterator{block: block}
}

// SeekToFirst constructs an iterator positioned at the block's first
// entry.
func SeekToFirst(block *Block) (*Iterator, error) {
	it := NewIterator(block)
	if err := it.primeFirstKey(); err != nil {
		return nil, err
	}
	if err := it.seekTo(0); err != nil {
		return nil, err
	}
	return it, nil
}

// SeekToKey constructs an iterator positioned at the smallest index whose
// key is >= key, or invalid if no such index exists.
func SeekToKey(block *Block, k key.Slice) (*Iterator, error) {
	it := NewIterator(block)
	if err := it.primeFirstKey(); err != nil {
		return nil, err
	}
	if err := it.SeekToKey(k); err != nil {
		return nil, err
	}
	return it, nil
}

// primeFirstKey decodes entry 0 once (if the block is non-empty) so that
// every subsequent entryAt call has a first key to reconstruct against.
// Entry 0 always has overlap_len == 0, so its reconstructed key is simply
// its stored suffix.
func (it *Iterator) primeFirstKey() error {
	if it.block.Entries() == 0 {
		return nil
	}
	k, _, err := it.block.entryAt(int(it.block.offsets[0]), nil)
	if err != nil {
		return err
	}
	it.firstKey = k
	return nil
}

// Key returns the current key. Defined only when IsValid is true.
func (it *Iterator) Key() key.Slice { return key.Slice(it.currentKey) }

// Value returns the current value's bytes. Defined only when IsValid is
// true.
func (it *Iterator) Value() []byte {
	return it.block.data[it.valueRange[0]:it.valueRange[1]]
}

// IsValid reports whether the iterator is positioned on a live entry.
func (it *Iterator) IsValid() bool { return len(it.currentKey) != 0 }

// Next advances to the next entry, invalidating the iterator past the
// block's end.
func (it *Iterator) Next() error { return it.seekTo(it.idx + 1) }

// NumActiveIterators satisfies iterators.StorageIterator; a block iterator
// is always a leaf.
func (it *Iterator) NumActiveIterators() int { return 1 }

// seekTo positions the iterator at the entry with the given index,
// clearing it (invalid) when idx is past the end.
func (it *Iterator) seekTo(idx int) error {
	if idx >= it.block.Entries() {
		it.idx = idx
		it.currentKey = nil
		it.valueRange = [2]int{0, 0}
		return nil
	}

	offset := int(it.block.offsets[idx])
	k, vr, err := it.block.entryAt(offset, it.firstKey.AsSlice())
	if err != nil {
		return err
	}

	it.idx = idx
	it.currentKey = k
	it.valueRange = vr
	return nil
}

// SeekToKey repositions the iterator, via binary search over
// [0, numEntries), at the smallest index whose key is >= key. It ends up
// past-the-end (invalid) if every key in the block is smaller.
func (it *Iterator) SeekToKey(k key.Slice) error {
	low, high := 0, it.block.Entries()

	for low < high {
		mid := low + (high-low)/2
		if err := it.seekTo(mid); err != nil {
			return err
		}

		switch it.Key().Compare(k) {
		case 0:
			return nil
		case -1:
			low = mid + 1
		default:
			high = mid
		}
	}

	return it.seekTo(low)
}
