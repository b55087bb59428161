package xpatch

// Encode produces a delta transforming base into new, tagged with tag
// for the caller's own bookkeeping (GetTag recovers it without a base
// buffer or a decode pass). enableZstd allows the zstd-backed
// algorithms (CharsZstd, GDeltaZstd) into the selection; callers that
// cannot afford the zstd dependency at decode time should pass false.
//
// Encode always succeeds: GDelta is a universal fallback, so there is
// always at least one applicable candidate. An empty base and an empty
// new encode as a Chars header with no body.
func Encode(tag uint64, base, new []byte, enableZstd bool) []byte {
	if len(base) == 0 && len(new) == 0 {
		return appendHeader(nil, AlgorithmChars, tag)
	}

	best := selectBest(tag, base, new, enableZstd)

	delta := appendHeader(make([]byte, 0, headerLen(tag)+len(best.body)), best.algorithm, tag)
	delta = append(delta, best.body...)

	return delta
}

// Decode reconstructs new from base and a delta produced by Encode
// against that same base. It returns a MalformedDelta error (see the
// errors package) if delta is truncated, references bytes outside
// base, or otherwise fails to validate.
func Decode(base, delta []byte) ([]byte, error) {
	algorithm, _, n, err := decodeHeader(delta)
	if err != nil {
		return nil, err
	}

	if n == len(delta) && algorithm == AlgorithmChars && len(base) == 0 {
		return []byte{}, nil
	}

	return decodeBody(algorithm, base, delta[n:])
}

// GetTag reads the tag a delta was encoded with, without decoding its
// body or requiring the base buffer it was produced against.
func GetTag(delta []byte) (uint64, error) {
	_, tag, _, err := decodeHeader(delta)
	if err != nil {
		return 0, err
	}

	return tag, nil
}
