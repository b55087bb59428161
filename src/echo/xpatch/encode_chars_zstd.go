package xpatch

import (
	"github.com/DataDog/zstd"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// encodeCharsZstd is encodeChars with mid_new piped through zstd. Body:
// varint(prefix_len) || varint(len(mid_new)) || varint(len(compressed))
// || compressed. Only produced when it beats encodeChars in size; the
// selector enforces that by comparing lengths, this function just
// refuses to run when the caller disabled zstd or mid_new is empty
// (compressing nothing never wins).
func encodeCharsZstd(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if !enableZstd || len(cs.midBase) != 0 || len(cs.midNew) == 0 {
		return nil, false
	}

	compressed, err := zstd.Compress(nil, cs.midNew)
	if err != nil {
		return nil, false
	}

	body = varint.Append(nil, uint64(cs.prefixLen))
	body = varint.Append(body, uint64(len(cs.midNew)))
	body = varint.Append(body, uint64(len(compressed)))
	body = append(body, compressed...)

	return body, true
}

func decodeCharsZstd(base, body []byte) (out []byte, err error) {
	prefixLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	midLen, n2, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n2

	compressedLen, n3, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n3

	if uint64(len(body)-n) < compressedLen {
		return nil, errors.ErrMalformedDelta(errors.ReasonTruncatedBody)
	}

	compressed := body[n : n+int(compressedLen)]

	// mid is not pre-sized from midLen: midLen is an attacker-controlled
	// varint, and the decompressed length is re-validated against it
	// just below anyway, so pre-sizing would only be an unchecked
	// allocation with no correctness benefit.
	mid, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, errors.ErrMalformedDelta(errors.ReasonCompressedFrame)
	}

	if uint64(len(mid)) != midLen {
		return nil, errors.ErrMalformedDelta(errors.ReasonLengthMismatch)
	}

	return assembleInsertion(base, prefixLen, mid)
}
