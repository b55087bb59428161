package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/alfa/pool"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
	"github.com/amarbel-llc/xpatch/src/charlie/xpatchconfig"
)

// GDelta is the general-purpose fallback: a copy/insert instruction
// stream over the full (base, new) pair, used when no specialized
// encoder applies or wins. Unlike the specialized algorithms it
// ignores the prefix/suffix split entirely and describes new from
// scratch relative to base (see the decoder dispatch note in the
// package's design docs).
//
// The instruction stream is built with a fixed k-gram rolling hash
// over base (see gdeltaHashIndex): for each output position it either
// extends the longest match it can find in base, or falls back to a
// literal insert. Instructions never require the decoder to seek: it
// replays them with one cursor into base and one into the output.

// gdeltaKindInsert/Copy are the 1-bit discriminators packed
// into each instruction's leading varint: value = (length<<1)|kind.
const (
	gdeltaKindInsert = 0
	gdeltaKindCopy   = 1
)

// encodeGDeltaWithTunables builds the instruction stream into a scratch
// buffer borrowed from pool.Bytes and returns a right-sized copy of it.
// The borrowed buffer starts with no capacity and the growth from
// appending is not returned to the pool, so the stream is still
// allocated afresh on each call.
func encodeGDeltaWithTunables(base, new []byte, t xpatchconfig.GDelta) []byte {
	scratch, repool := pool.GetBytes()
	defer repool()

	body := varint.Append(scratch, uint64(len(new)))

	index, repoolIndex := newGDeltaHashIndex(base, t)
	defer repoolIndex()

	literalStart := 0
	i := 0

	flushLiteral := func(end int) {
		if end > literalStart {
			body = appendInsertInstruction(body, new[literalStart:end])
		}
	}

	for i < len(new) {
		offset, length, found := index.longestMatch(new, i)
		if !found {
			i++
			continue
		}

		flushLiteral(i)
		body = appendCopyInstruction(body, offset, length)
		i += length
		literalStart = i
	}

	flushLiteral(len(new))

	out := make([]byte, len(body))
	copy(out, body)

	return out
}

// encodeGDelta runs the matcher with default tunables; it is always
// applicable and always produces a valid body, so it never returns ok
// = false.
func encodeGDelta(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	return encodeGDeltaWithTunables(base, new, xpatchconfig.Default().GDelta), true
}

func appendInsertInstruction(dst []byte, literal []byte) []byte {
	dst = varint.Append(dst, uint64(len(literal))<<1|gdeltaKindInsert)
	return append(dst, literal...)
}

func appendCopyInstruction(dst []byte, offset, length int) []byte {
	dst = varint.Append(dst, uint64(length)<<1|gdeltaKindCopy)
	return varint.Append(dst, uint64(offset))
}

func decodeGDelta(base, body []byte) (out []byte, err error) {
	newLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	if newLen > maxExpandedLen {
		return nil, errors.ErrMalformedDelta(errors.ReasonInstructionOverflow)
	}

	out = make([]byte, 0, newLen)

	for uint64(len(out)) < newLen {
		if n >= len(body) {
			return nil, errTruncatedBody()
		}

		tag, consumed, err := varint.Decode(body[n:])
		if err != nil {
			return nil, err
		}
		n += consumed

		length := tag >> 1
		kind := tag & 1

		// len(out) <= newLen is a loop invariant, so this subtraction
		// cannot underflow; comparing via subtraction rather than
		// len(out)+length > newLen avoids wrapping a crafted, near-
		// MaxUint64 length around to a small, spuriously valid sum.
		if length > newLen-uint64(len(out)) {
			return nil, errors.ErrMalformedDelta(errors.ReasonInstructionOverflow)
		}

		switch kind {
		case gdeltaKindInsert:
			if uint64(len(body)-n) < length {
				return nil, errTruncatedBody()
			}

			out = append(out, body[n:n+int(length)]...)
			n += int(length)

		case gdeltaKindCopy:
			offset, consumed, err := varint.Decode(body[n:])
			if err != nil {
				return nil, err
			}
			n += consumed

			// Same overflow hazard as the newLen check above: offset
			// and length are both attacker-controlled varints, so
			// offset+length must not be allowed to wrap.
			if offset > uint64(len(base)) || length > uint64(len(base))-offset {
				return nil, errors.ErrMalformedDelta(errors.ReasonCopyOutOfRange)
			}

			out = append(out, base[offset:offset+length]...)
		}
	}

	if uint64(len(out)) != newLen {
		return nil, errLengthMismatch()
	}

	return out, nil
}
