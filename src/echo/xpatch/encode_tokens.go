package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// maxTokenInsertions bounds how many separate insertion points Tokens
// will describe before it gives up and lets GDelta take the middle
// instead. The threshold is a heuristic (see the GDelta design note on
// implementation-defined thresholds): past this many edit points, a
// content-defined copy/insert stream compresses better than an
// explicit list of offsets.
const maxTokenInsertions = 8

// tokenLookahead bounds how far encodeTokens will scan mid_new looking
// for the next byte of mid_base to resync on, keeping the search
// linear-ish instead of quadratic on pathological inputs.
const tokenLookahead = 256

type tokenInsertion struct {
	offset int
	token  []byte
}

// encodeTokens handles a small, fixed-offset insertion edit: mid_new
// equals mid_base with a handful of short runs spliced in, mid_base
// itself untouched and never reordered or deleted from. Body:
// varint(prefix_len) || varint(mid_len) || count ||
// (offset · tok_len · tok_bytes){count}.
func encodeTokens(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if len(cs.midBase) == 0 {
		return nil, false
	}

	insertions, applies := findTokenInsertions(cs.midBase, cs.midNew)
	if !applies {
		return nil, false
	}

	body = varint.Append(nil, uint64(cs.prefixLen))
	body = varint.Append(body, uint64(len(cs.midBase)))
	body = varint.Append(body, uint64(len(insertions)))

	for _, ins := range insertions {
		body = varint.Append(body, uint64(ins.offset))
		body = varint.Append(body, uint64(len(ins.token)))
		body = append(body, ins.token...)
	}

	return body, true
}

// findTokenInsertions walks midBase and midNew together. Whenever they
// diverge, it looks ahead in midNew for the next byte matching
// midBase's current position and records everything in between as an
// insertion. It fails (applies=false) if midBase is not preserved
// intact as a subsequence of midNew, or if there are too many
// insertion points to be worth it.
func findTokenInsertions(midBase, midNew []byte) (insertions []tokenInsertion, applies bool) {
	i, j := 0, 0

	for i < len(midBase) && j < len(midNew) {
		if midBase[i] == midNew[j] {
			i++
			j++
			continue
		}

		limit := j + tokenLookahead
		if limit > len(midNew) {
			limit = len(midNew)
		}

		resync := -1
		for k := j; k < limit; k++ {
			if midNew[k] == midBase[i] {
				resync = k
				break
			}
		}

		if resync < 0 {
			return nil, false
		}

		if len(insertions) >= maxTokenInsertions {
			return nil, false
		}

		insertions = append(insertions, tokenInsertion{
			offset: i,
			token:  midNew[j:resync],
		})

		j = resync
	}

	if i < len(midBase) {
		return nil, false
	}

	if j < len(midNew) {
		if len(insertions) >= maxTokenInsertions {
			return nil, false
		}

		insertions = append(insertions, tokenInsertion{
			offset: i,
			token:  midNew[j:],
		})
	}

	if len(insertions) == 0 {
		return nil, false
	}

	return insertions, true
}

func decodeTokens(base, body []byte) (out []byte, err error) {
	prefixLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	midLen, n2, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n2

	count, n3, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n3

	if prefixLen > uint64(len(base)) || midLen > uint64(len(base))-prefixLen {
		return nil, errLengthMismatch()
	}

	midBase := base[prefixLen : prefixLen+midLen]

	mid := make([]byte, 0, midLen)
	cursor := 0

	for k := uint64(0); k < count; k++ {
		offset, no, err := varint.Decode(body[n:])
		if err != nil {
			return nil, err
		}
		n += no

		tokLen, nt, err := varint.Decode(body[n:])
		if err != nil {
			return nil, err
		}
		n += nt

		if uint64(len(body)-n) < tokLen {
			return nil, errTruncatedBody()
		}

		token := body[n : n+int(tokLen)]
		n += int(tokLen)

		if offset < uint64(cursor) || offset > uint64(len(midBase)) {
			return nil, errLengthMismatch()
		}

		mid = append(mid, midBase[cursor:offset]...)
		mid = append(mid, token...)
		cursor = int(offset)
	}

	mid = append(mid, midBase[cursor:]...)

	return assembleReplacement(base, prefixLen, midLen, mid)
}
