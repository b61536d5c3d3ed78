package lsm

import "time"

// RecordKind distinguishes a WriteBatchRecord's operation.
type RecordKind int

const (
	RecordPut RecordKind = iota
	RecordDelete
)

// WriteBatchRecord is one write within a batch: either a Put carrying a
// value or a Delete carrying only a key.
type WriteBatchRecord struct {
	Kind  RecordKind
	Key   []byte
	Value []byte
}

// Put constructs a Put record.
func Put(key, value []byte) WriteBatchRecord {
	return WriteBatchRecord{Kind: RecordPut, Key: key, Value: value}
}

// Del constructs a Delete record.
func Del(key []byte) WriteBatchRecord {
	return WriteBatchRecord{Kind: RecordDelete, Key: key}
}

// WriteBatch applies records in order against the active memtable. A Put
// with an empty key or an empty value is rejected with ErrEmptyKey or
// ErrEmptyValue before that record is applied; a Delete with an
// empty key is rejected the same way. A Delete's own write bypasses the
// empty-value check — it stores a zero-length value on purpose, as a
// tombstone, which Get later reports as "not found" rather than "found,
// empty". The batch is not atomic across records: a rejected record after
// others have already landed leaves those earlier writes in place.
func (in *Inner) WriteBatch(records []WriteBatchRecord) error {
	start := time.Now()
	defer in.observeWrite(start)

	for _, r := range records {
		if len(r.Key) == 0 {
			return ErrEmptyKey
		}

		switch r.Kind {
		case RecordPut:
			if len(r.Value) == 0 {
				return ErrEmptyValue
			}
			in.put(r.Key, r.Value)
		case RecordDelete:
			in.put(r.Key, []byte{})
		}
	}

	return nil
}

func (in *Inner) observeWrite(start time.Time) {
	if in.metrics == nil {
		return
	}
	in.metrics.WriteDuration.Observe(time.Since(start).Seconds())
}

// Put is a convenience wrapper over WriteBatch for a single insert.
func (in *Inner) Put(key, value []byte) error {
	return in.WriteBatch([]WriteBatchRecord{Put(key, value)})
}

// Delete is a convenience wrapper over WriteBatch for a single tombstone
// write.
func (in *Inner) Delete(key []byte) error {
	return in.WriteBatch([]WriteBatchRecord{Del(key)})
}
