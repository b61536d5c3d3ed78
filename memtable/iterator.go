package memtable

import "github.com/lsmkv/lsmcore/iterators"

var _ iterators.StorageIterator[[]byte] = (*Iterator)(nil)

// Iterator is a positioned cursor over a MemTable range scan. Per the
// design notes on the self-referential source iterator, it holds a shared
// handle to the memtable (rather than co-owning the map and a borrowed
// range cursor) and materializes the current (key, value) pair by value;
// advancement re-derives the next node under the memtable's read lock. It
// is valid exactly when its current key is non-empty.
type Iterator struct {
	mt     *MemTable
	upper  Bound
	cursor *skipListNode
	key    []byte
	value  []byte
}

// Key returns the current key. Defined only when IsValid is true.
func (it *Iterator) Key() []byte { return it.key }

// Value returns the current value's bytes. Defined only when IsValid is
// true.
func (it *Iterator) Value() []byte { return it.value }

// IsValid reports whether the iterator is positioned on a live entry —
// encoded, per the source convention, as "current key is non-empty".
func (it *Iterator) IsValid() bool { return len(it.key) != 0 }

// Next advances to the next matching entry, invalidating the iterator
// once the cursor runs past the list's end or past the upper bound.
func (it *Iterator) Next() error {
	if it.cursor == nil {
		return nil
	}

	it.mt.mu.RLock()
	next := it.cursor.forward[0]
	it.mt.mu.RUnlock()

	it.cursor = next
	it.loadFromCursor()
	return nil
}

// NumActiveIterators satisfies iterators.StorageIterator; a memtable
// iterator is always a leaf.
func (it *Iterator) NumActiveIterators() int { return 1 }

// loadFromCursor materializes key/value from the current cursor node,
// clearing both (and the cursor) once the cursor is nil or has walked past
// the upper bound.
func (it *Iterator) loadFromCursor() {
	if it.cursor == nil || !it.withinUpper(it.cursor.record.key) {
		it.cursor = nil
		it.key = nil
		it.value = nil
		return
	}

	it.key = []byte(it.cursor.record.key)
	it.value = cloneBytes(it.cursor.record.value)
}

func (it *Iterator) withinUpper(key string) bool {
	switch it.upper.kind {
	case boundIncluded:
		return key <= string(it.upper.key)
	case boundExcluded:
		return key < string(it.upper.key)
	default:
		return true
	}
}
