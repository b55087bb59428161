package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/alfa/errors"
)

// candidate is a body an encoder produced for a given algorithm. The
// selector compares candidates by len(body) alone; algorithm is kept
// only to break ties and to build the final header.
type candidate struct {
	algorithm Algorithm
	body      []byte
}

// encoderFunc attempts to encode (base, new) as algorithm's body. ok is
// false when the algorithm's precondition fails; the selector then
// omits it from comparison.
type encoderFunc func(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool)

func errTruncatedBody() error {
	return errors.ErrMalformedDelta(errors.ReasonTruncatedBody)
}

func errLengthMismatch() error {
	return errors.ErrMalformedDelta(errors.ReasonLengthMismatch)
}

// maxExpandedLen bounds a single decoded run or output length that a
// body describes via a count/length field without the expanded bytes
// actually being present in the body (RepeatChars' count, RepeatTokens'
// count, GDelta's new_len). Unlike decodeChars' midLen, which is
// bounded by the literal bytes that follow it in the body, these
// fields have no such natural ceiling, so a malformed field near the
// uint64 max would otherwise reach an allocator with an attacker-
// controlled size and panic instead of returning MalformedDelta.
const maxExpandedLen = 1 << 32

// assembleInsertion reconstructs the output of a pure-insertion
// algorithm (Chars, CharsZstd, RepeatChars, RepeatTokens): base's
// prefix, the decoded middle, then everything in base from prefixLen
// onward, since these algorithms all carry |mid_base| = 0.
//
// prefixLen is taken as uint64 (the varint's native width) and bounds-
// checked against len(base) before any conversion to int, so a
// maliciously large field can never wrap around a platform int and
// slip past the check.
func assembleInsertion(base []byte, prefixLen uint64, mid []byte) ([]byte, error) {
	if prefixLen > uint64(len(base)) {
		return nil, errors.ErrMalformedDelta(errors.ReasonLengthMismatch)
	}

	p := int(prefixLen)

	out := make([]byte, 0, p+len(mid)+(len(base)-p))
	out = append(out, base[:p]...)
	out = append(out, mid...)
	out = append(out, base[p:]...)

	return out, nil
}

// assembleReplacement reconstructs the output of an algorithm that
// carries an explicit mid_base length (Tokens, Remove): base's prefix,
// the decoded middle, then base from prefixLen+midBaseLen onward. Both
// lengths are validated in uint64 space for the same overflow reason
// as assembleInsertion.
func assembleReplacement(
	base []byte,
	prefixLen, midBaseLen uint64,
	mid []byte,
) ([]byte, error) {
	if prefixLen > uint64(len(base)) || midBaseLen > uint64(len(base))-prefixLen {
		return nil, errors.ErrMalformedDelta(errors.ReasonLengthMismatch)
	}

	p := int(prefixLen)
	suffixStart := p + int(midBaseLen)

	out := make([]byte, 0, p+len(mid)+(len(base)-suffixStart))
	out = append(out, base[:p]...)
	out = append(out, mid...)
	out = append(out, base[suffixStart:]...)

	return out, nil
}
