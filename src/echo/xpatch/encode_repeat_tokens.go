package xpatch

import (
	"bytes"

	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// minRepeatTokenLen is the shortest token RepeatTokens ever reports;
// below it RepeatChars already covers single-byte runs and a
// one-byte "token" would just duplicate that algorithm.
const minRepeatTokenLen = 2

// encodeRepeatTokens handles a pure insertion of a repeated multi-byte
// token. Body: varint(prefix_len) || varint(count) || varint(token_len)
// || token_bytes.
func encodeRepeatTokens(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if len(cs.midBase) != 0 {
		return nil, false
	}

	tokenLen, count := findRepeatingToken(cs.midNew)
	if tokenLen < minRepeatTokenLen || count < 2 {
		return nil, false
	}

	token := cs.midNew[:tokenLen]

	body = varint.Append(nil, uint64(cs.prefixLen))
	body = varint.Append(body, uint64(count))
	body = varint.Append(body, uint64(tokenLen))
	body = append(body, token...)

	return body, true
}

// findRepeatingToken finds the shortest period p such that data is
// exactly p repeated count times with no remainder, preferring the
// smallest p that divides evenly. Returns (0, 0) if data is empty or
// no such period divides it (i.e. the repeat is not exact).
func findRepeatingToken(data []byte) (tokenLen, count int) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}

	for p := 1; p <= n/2; p++ {
		if n%p != 0 {
			continue
		}

		token := data[:p]
		matches := true

		for off := p; off < n; off += p {
			if !bytes.Equal(data[off:off+p], token) {
				matches = false
				break
			}
		}

		if matches {
			return p, n / p
		}
	}

	return 0, 0
}

func decodeRepeatTokens(base, body []byte) (out []byte, err error) {
	prefixLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	count, n2, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n2

	tokenLen, n3, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n3

	if uint64(len(body)-n) < tokenLen {
		return nil, errTruncatedBody()
	}

	token := body[n : n+int(tokenLen)]

	// count is unbounded by the body (only the single token's bytes are
	// present, not count copies of it), so count*tokenLen must be
	// checked for both overflow and sanity before sizing the allocation.
	if tokenLen != 0 && count > maxExpandedLen/tokenLen {
		return nil, errLengthMismatch()
	}

	mid := make([]byte, 0, count*tokenLen)
	for i := uint64(0); i < count; i++ {
		mid = append(mid, token...)
	}

	return assembleInsertion(base, prefixLen, mid)
}
