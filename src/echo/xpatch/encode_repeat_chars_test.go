package xpatch

import (
	"testing"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

func TestDecodeRepeatCharsRejectsAbsurdCount(t *testing.T) {
	base := []byte("short base")

	// prefix_len=0, count near the uint64 max, one filler byte.
	body := varint.Append(nil, 0)
	body = varint.Append(body, 1<<60)
	body = append(body, 'x')

	_, err := decodeRepeatChars(base, body)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}
