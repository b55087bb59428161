package xpatch

import (
	"bytes"
	"testing"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
	"github.com/amarbel-llc/xpatch/src/charlie/xpatchconfig"
)

func TestGDeltaMatcherFindsExactMatch(t *testing.T) {
	base := []byte("the quick brown fox jumps over the lazy dog")
	// The window must not exceed the 8-byte run being looked up: the
	// matcher only finds runs at least one full window long.
	tunables := xpatchconfig.GDelta{WindowLength: 8, MinMatchLength: 8, MaxChainLength: 32}

	index, repool := newGDeltaHashIndex(base, tunables)
	defer repool()

	new := []byte("a lazy dog sleeps")
	offset, length, found := index.longestMatch(new, 2)

	if !found {
		t.Fatal("expected a match for \"lazy dog\"")
	}

	if !bytes.Equal(base[offset:offset+length], []byte("lazy dog")) {
		t.Errorf("matched %q, want a run of \"lazy dog\"", base[offset:offset+length])
	}
}

func TestGDeltaMatcherRespectsMinMatchLength(t *testing.T) {
	base := []byte("abcdefabcdefabcdef")
	tunables := xpatchconfig.GDelta{WindowLength: 4, MinMatchLength: 100, MaxChainLength: 32}

	index, repool := newGDeltaHashIndex(base, tunables)
	defer repool()

	_, _, found := index.longestMatch([]byte("xxxabcdxxx"), 3)
	if found {
		t.Error("match shorter than minMatch should be rejected")
	}
}

func TestGDeltaMatcherPrefersEarliestOffsetOnTie(t *testing.T) {
	base := []byte("ABCDABCDABCD")
	tunables := xpatchconfig.GDelta{WindowLength: 4, MinMatchLength: 4, MaxChainLength: 0}

	index, repool := newGDeltaHashIndex(base, tunables)
	defer repool()

	offset, _, found := index.longestMatch([]byte("ABCD"), 0)
	if !found {
		t.Fatal("expected a match")
	}

	if offset != 0 {
		t.Errorf("offset = %d, want 0 (earliest occurrence)", offset)
	}
}

func TestGDeltaRoundTripInstructionStream(t *testing.T) {
	base := []byte("the quick brown fox jumps over the lazy dog, repeatedly, again and again")
	new := []byte("the slow brown fox jumps over the lazy dog, repeatedly, again and again, and once more")

	body := encodeGDeltaWithTunables(base, new, xpatchconfig.Default().GDelta)

	got, err := decodeGDelta(base, body)
	if err != nil {
		t.Fatalf("decodeGDelta: %v", err)
	}

	if !bytes.Equal(got, new) {
		t.Errorf("round-trip mismatch:\ngot  %q\nwant %q", got, new)
	}
}

func TestGDeltaHandlesEmptyNew(t *testing.T) {
	body := encodeGDeltaWithTunables([]byte("base content"), nil, xpatchconfig.Default().GDelta)

	got, err := decodeGDelta([]byte("base content"), body)
	if err != nil {
		t.Fatalf("decodeGDelta: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("got %q, want empty", got)
	}
}

func TestGDeltaHandlesEmptyBase(t *testing.T) {
	body := encodeGDeltaWithTunables(nil, []byte("brand new content"), xpatchconfig.Default().GDelta)

	got, err := decodeGDelta(nil, body)
	if err != nil {
		t.Fatalf("decodeGDelta: %v", err)
	}

	if !bytes.Equal(got, []byte("brand new content")) {
		t.Errorf("got %q", got)
	}
}

func TestDecodeGDeltaRejectsCopyOutOfRange(t *testing.T) {
	base := []byte("short base")

	// new_len=5, one COPY instruction requesting offset=1000 length=5.
	body := []byte{5}
	body = appendCopyInstruction(body, 1000, 5)

	_, err := decodeGDelta(base, body)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}

func TestDecodeGDeltaRejectsAbsurdNewLen(t *testing.T) {
	base := []byte("short base")

	// new_len declares an output near the uint64 max with no
	// instructions to back it; this must fail cleanly rather than
	// panic the initial allocation.
	body := varint.Append(nil, 1<<60)

	_, err := decodeGDelta(base, body)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}

func TestDecodeGDeltaRejectsInstructionOverflow(t *testing.T) {
	base := []byte("short base")

	// new_len=3, one INSERT instruction claiming length=10.
	body := []byte{3}
	body = appendInsertInstruction(body, []byte("0123456789"))
	// Corrupt the declared new_len downward relative to the instruction.
	body[0] = 1

	_, err := decodeGDelta(base, body)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}
