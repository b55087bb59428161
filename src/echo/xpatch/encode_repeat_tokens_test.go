package xpatch

import (
	"testing"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

func TestDecodeRepeatTokensRejectsOverflowingProduct(t *testing.T) {
	base := []byte("short base")

	// prefix_len=0, count near the uint64 max, token_len=2: the naive
	// product count*tokenLen would wrap well below maxExpandedLen.
	body := varint.Append(nil, 0)
	body = varint.Append(body, (1<<63)+1)
	body = varint.Append(body, 2)
	body = append(body, 'a', 'b')

	_, err := decodeRepeatTokens(base, body)
	if !errors.IsMalformedDelta(err) {
		t.Fatalf("expected MalformedDelta, got %v", err)
	}
}
