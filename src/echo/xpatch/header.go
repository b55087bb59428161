package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// tagEscapeNibble is the reserved low-nibble value signaling that the
// tag did not fit inline and a varint overflow field follows. Tags
// strictly below this value are carried directly in the header byte.
const tagEscapeNibble = 0xF

// tagInlineLimit is the first tag value that requires the escape path.
// Tags [0, tagInlineLimit) are free: one header byte, nothing else.
const tagInlineLimit = 0xF

// appendHeader appends the header byte and, if needed, the tag
// overflow varint for (algorithm, tag) to dst.
func appendHeader(dst []byte, algorithm Algorithm, tag uint64) []byte {
	if tag < tagInlineLimit {
		return append(dst, byte(algorithm)<<4|byte(tag))
	}

	dst = append(dst, byte(algorithm)<<4|tagEscapeNibble)
	return varint.Append(dst, tag-tagInlineLimit)
}

// decodeHeader parses the header at the front of delta, returning the
// algorithm, the tag, and the number of bytes consumed.
func decodeHeader(delta []byte) (algorithm Algorithm, tag uint64, n int, err error) {
	if len(delta) < 1 {
		err = errors.ErrMalformedDelta(errors.ReasonTruncatedHeader)
		return 0, 0, 0, err
	}

	algorithm = Algorithm(delta[0] >> 4)
	nibble := delta[0] & 0x0F
	n = 1

	if !algorithm.valid() {
		err = errors.ErrMalformedDelta(errors.ReasonUnknownAlgorithm)
		return 0, 0, 0, err
	}

	if nibble != tagEscapeNibble {
		return algorithm, uint64(nibble), n, nil
	}

	overflow, consumed, err := varint.Decode(delta[n:])
	if err != nil {
		return 0, 0, 0, err
	}

	n += consumed
	tag = overflow + tagInlineLimit

	return algorithm, tag, n, nil
}

// headerLen returns the number of bytes appendHeader would produce for
// (algorithm, tag); used by the selector to size candidates without
// materializing the header.
func headerLen(tag uint64) int {
	if tag < tagInlineLimit {
		return 1
	}

	return 1 + varint.Len(tag-tagInlineLimit)
}
