package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// encodeRepeatChars handles a pure insertion of a run of one repeated
// byte. Body: varint(prefix_len) || varint(count) || byte.
func encodeRepeatChars(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if len(cs.midBase) != 0 || len(cs.midNew) == 0 {
		return nil, false
	}

	first := cs.midNew[0]
	for _, b := range cs.midNew[1:] {
		if b != first {
			return nil, false
		}
	}

	body = varint.Append(nil, uint64(cs.prefixLen))
	body = varint.Append(body, uint64(len(cs.midNew)))
	body = append(body, first)

	return body, true
}

func decodeRepeatChars(base, body []byte) (out []byte, err error) {
	prefixLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	count, n2, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n2

	if n >= len(body) {
		return nil, errTruncatedBody()
	}

	if count > maxExpandedLen {
		return nil, errLengthMismatch()
	}

	b := body[n]

	mid := make([]byte, count)
	for i := range mid {
		mid[i] = b
	}

	return assembleInsertion(base, prefixLen, mid)
}
