package block

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/lsmkv/lsmcore/key"
)

func buildBlock(t *testing.T, blockSize int, keys []string, values [][]byte) *Block {
	t.Helper()

	b := NewBuilder(blockSize)
	for i, k := range keys {
		if !b.Add(key.Slice(k), values[i]) {
			t.Fatalf("Add(%q) rejected unexpectedly", k)
		}
	}

	blk, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return blk
}

// S3: build with block_size=4096, 10 keys "aaa".."aaj", values of 16 0x01
// bytes each; every non-first entry overlaps its predecessor-independent
// first key by exactly 2 bytes ("aa").
func TestRoundTripPrefixCompression(t *testing.T) {
	keys := make([]string, 10)
	values := make([][]byte, 10)
	for i := range keys {
		keys[i] = fmt.Sprintf("aa%c", 'a'+i)
		values[i] = bytes.Repeat([]byte{0x01}, 16)
	}

	blk := buildBlock(t, 4096, keys, values)
	encoded := blk.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	it, err := SeekToFirst(decoded)
	if err != nil {
		t.Fatalf("SeekToFirst: %v", err)
	}

	for i, wantKey := range keys {
		if !it.IsValid() {
			t.Fatalf("entry %d: iterator invalid", i)
		}
		if got := string(it.Key()); got != wantKey {
			t.Fatalf("entry %d: key = %q, want %q", i, got, wantKey)
		}
		if !bytes.Equal(it.Value(), values[i]) {
			t.Fatalf("entry %d: value mismatch", i)
		}
		if i > 0 {
			overlap := key.CommonPrefixLen(key.Slice(keys[0]), key.Slice(wantKey))
			if overlap != 2 {
				t.Fatalf("entry %d: expected overlap 2 against first key, computed %d", i, overlap)
			}
		}
		if err := it.Next(); err != nil {
			t.Fatalf("entry %d: Next: %v", i, err)
		}
	}

	if it.IsValid() {
		t.Fatalf("iterator should be exhausted after %d entries", len(keys))
	}
}

func TestOffsetIntegrity(t *testing.T) {
	blk := buildBlock(t, 4096, []string{"b", "d", "f"}, [][]byte{{1}, {2}, {3}})

	if blk.Entries() != 3 {
		t.Fatalf("Entries() = %d, want 3", blk.Entries())
	}

	encoded := blk.Encode()
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Entries() != 3 {
		t.Fatalf("decoded Entries() = %d, want 3", decoded.Entries())
	}
}

// S5: decoding a 1-byte buffer fails with ErrMalformedBlock.
func TestDecodeMalformedTooShort(t *testing.T) {
	_, err := Decode([]byte{0x00})
	if !errors.Is(err, ErrMalformedBlock) {
		t.Fatalf("Decode([1 byte]) err = %v, want ErrMalformedBlock", err)
	}
}

func TestDecodeMalformedTruncatedOffsets(t *testing.T) {
	blk := buildBlock(t, 4096, []string{"a", "b"}, [][]byte{{1}, {2}})
	encoded := blk.Encode()

	// Cut three of the four offset bytes while keeping the trailing count,
	// so the declared offsets are read partly from entry data and point
	// outside it.
	truncated := append(append([]byte{}, encoded[:len(encoded)-5]...), encoded[len(encoded)-2:]...)

	_, err := Decode(truncated)
	if !errors.Is(err, ErrMalformedBlock) {
		t.Fatalf("Decode(truncated) err = %v, want ErrMalformedBlock", err)
	}
}
