package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// encodeRemove handles a pure deletion: mid_new empty. Body:
// varint(prefix_len) || varint(removed_len). removed_len is stored as
// a length rather than an absolute end offset so large deletions near
// the end of a buffer stay cheap to encode.
func encodeRemove(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if len(cs.midNew) != 0 {
		return nil, false
	}

	body = varint.Append(nil, uint64(cs.prefixLen))
	body = varint.Append(body, uint64(len(cs.midBase)))

	return body, true
}

func decodeRemove(base, body []byte) (out []byte, err error) {
	prefixLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	removedLen, _, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}

	return assembleReplacement(base, prefixLen, removedLen, nil)
}
