package memtable

import (
	"bytes"
	"testing"
)

// S1: put("key1","value1"); put("key2","value2"); put("key1","value1`")
// then get("key1") == "value1`".
func TestMemTableLastWriteWins(t *testing.T) {
	mt := Create(0)
	mt.Put([]byte("key1"), []byte("value1"))
	mt.Put([]byte("key2"), []byte("value2"))
	mt.Put([]byte("key1"), []byte("value1`"))

	got, ok := mt.Get([]byte("key1"))
	if !ok {
		t.Fatalf("expected key1 to be present")
	}
	if !bytes.Equal(got, []byte("value1`")) {
		t.Fatalf("Get(key1) = %q, want %q", got, "value1`")
	}
}

func TestMemTableGetMissing(t *testing.T) {
	mt := Create(0)
	if _, ok := mt.Get([]byte("nope")); ok {
		t.Fatalf("expected missing key to report not found")
	}
}

// S2: put k1..k6 then scan(Included("key2"), Excluded("key5")) yields
// ("key2","value2"),("key3","value3"),("key4","value4"), then invalid.
func TestMemTableScanBounds(t *testing.T) {
	mt := Create(0)
	for i := 1; i <= 6; i++ {
		k := []byte{'k', 'e', 'y', byte('0' + i)}
		v := []byte{'v', 'a', 'l', 'u', 'e', byte('0' + i)}
		mt.Put(k, v)
	}

	it := mt.Scan(Included([]byte("key2")), Excluded([]byte("key5")))

	want := []string{"key2", "key3", "key4"}
	for _, wantKey := range want {
		if !it.IsValid() {
			t.Fatalf("expected valid iterator at %q", wantKey)
		}
		if got := string(it.Key()); got != wantKey {
			t.Fatalf("Key() = %q, want %q", got, wantKey)
		}
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	if it.IsValid() {
		t.Fatalf("expected invalid iterator after scanning past the upper bound")
	}
}

func TestMemTableScanUnbounded(t *testing.T) {
	mt := Create(0)
	mt.Put([]byte("b"), []byte("2"))
	mt.Put([]byte("a"), []byte("1"))
	mt.Put([]byte("c"), []byte("3"))

	it := mt.Scan(Unbounded(), Unbounded())

	var got []string
	for it.IsValid() {
		got = append(got, string(it.Key()))
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMemTableScanEmptyRange(t *testing.T) {
	mt := Create(0)
	mt.Put([]byte("a"), []byte("1"))

	it := mt.Scan(Included([]byte("z")), Unbounded())
	if it.IsValid() {
		t.Fatalf("expected invalid iterator when nothing matches")
	}
}

// Invariant 9: approximate_size never decreases across successful puts,
// even across an overwrite (which over-counts by design).
func TestApproximateSizeMonotonic(t *testing.T) {
	mt := Create(0)

	var prev uint64
	for i := 0; i < 5; i++ {
		mt.Put([]byte("samekey"), []byte("value"))
		cur := mt.ApproximateSize()
		if cur < prev {
			t.Fatalf("approximate size decreased: %d < %d", cur, prev)
		}
		if cur <= prev && i > 0 {
			t.Fatalf("approximate size should strictly grow on every put, got %d after %d", cur, i)
		}
		prev = cur
	}
}

func TestTombstoneIsEmptyValue(t *testing.T) {
	mt := Create(0)
	mt.Put([]byte("k"), []byte(""))

	got, ok := mt.Get([]byte("k"))
	if !ok {
		t.Fatalf("expected tombstone entry to be present in the memtable")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty value for tombstone, got %q", got)
	}
}

func TestMemTableID(t *testing.T) {
	mt := Create(42)
	if mt.ID() != 42 {
		t.Fatalf("ID() = %d, want 42", mt.ID())
	}
}
