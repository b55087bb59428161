package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// encodeChars handles a pure insertion: mid_base empty, mid_new carried
// literally. Body: varint(prefix_len) || varint(len(mid_new)) || mid_new.
func encodeChars(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if len(cs.midBase) != 0 {
		return nil, false
	}

	body = varint.Append(nil, uint64(cs.prefixLen))
	body = varint.Append(body, uint64(len(cs.midNew)))
	body = append(body, cs.midNew...)

	return body, true
}

func decodeChars(base, body []byte) (out []byte, err error) {
	prefixLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	midLen, n2, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n2

	if uint64(len(body)-n) < midLen {
		return nil, errors.ErrMalformedDelta(errors.ReasonTruncatedBody)
	}

	mid := body[n : n+int(midLen)]

	return assembleInsertion(base, prefixLen, mid)
}
