package varint

import (
	"bytes"
	"testing"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
)

func TestAppendDecodeRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 2, 127, 128, 129, 255, 256,
		1 << 14, 1<<14 - 1, 1<<21 + 5,
		1<<63 - 1, 1 << 63, ^uint64(0),
	}

	for _, v := range values {
		encoded := Append(nil, v)

		got, n, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%d): %v", v, err)
		}

		if got != v {
			t.Errorf("Decode(Append(%d)) = %d", v, got)
		}

		if n != len(encoded) {
			t.Errorf("Decode consumed %d bytes, encoded is %d bytes", n, len(encoded))
		}

		if n != Len(v) {
			t.Errorf("Len(%d) = %d, Decode consumed %d", v, Len(v), n)
		}
	}
}

func TestAppendExtendsExistingSlice(t *testing.T) {
	dst := []byte{0xAA}
	dst = Append(dst, 300)

	if dst[0] != 0xAA {
		t.Fatalf("Append clobbered the existing prefix: %v", dst)
	}

	got, n, err := Decode(dst[1:])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got != 300 || n != len(dst)-1 {
		t.Errorf("got (%d, %d), want (300, %d)", got, n, len(dst)-1)
	}
}

func TestDecodeZeroIsSingleByte(t *testing.T) {
	encoded := Append(nil, 0)
	if !bytes.Equal(encoded, []byte{0x00}) {
		t.Errorf("Append(nil, 0) = %v, want [0x00]", encoded)
	}
}

func TestDecodeTruncated(t *testing.T) {
	// A continuation byte (MSB set) with nothing following.
	_, _, err := Decode([]byte{0x80})
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}

func TestDecodeEmptySource(t *testing.T) {
	_, _, err := Decode(nil)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}

func TestDecodeOverflowsUint64(t *testing.T) {
	// MaxBytes+1 (11) bytes, every one a continuation byte: more than 64 payload
	// bits' worth of continuation.
	overflow := bytes.Repeat([]byte{0xFF}, MaxBytes+1)

	_, _, err := Decode(overflow)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta for overflow, got %v", err)
	}
}

func TestDecodeRejectsHighBitsPastWidth(t *testing.T) {
	// MaxBytes bytes encoding a value whose 10th byte carries more
	// than the single remaining payload bit a uint64 has room for.
	encoded := make([]byte, MaxBytes)
	for i := range encoded[:MaxBytes-1] {
		encoded[i] = 0xFF
	}
	encoded[MaxBytes-1] = 0x02 // would require bit 64

	_, _, err := Decode(encoded)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}

func TestLenMatchesAppendLength(t *testing.T) {
	for _, v := range []uint64{0, 127, 128, 16383, 16384, ^uint64(0)} {
		if got, want := Len(v), len(Append(nil, v)); got != want {
			t.Errorf("Len(%d) = %d, want %d", v, got, want)
		}
	}
}
