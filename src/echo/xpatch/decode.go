package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/alfa/errors"
)

// decodeBody dispatches to the algorithm-specific decoder named by
// algorithm. GDelta and GDeltaZstd describe new from scratch relative
// to base and so bypass the prefix/suffix splice the other algorithms
// rely on.
func decodeBody(algorithm Algorithm, base, body []byte) ([]byte, error) {
	switch algorithm {
	case AlgorithmChars:
		return decodeChars(base, body)
	case AlgorithmTokens:
		return decodeTokens(base, body)
	case AlgorithmRemove:
		return decodeRemove(base, body)
	case AlgorithmRepeatChars:
		return decodeRepeatChars(base, body)
	case AlgorithmRepeatTokens:
		return decodeRepeatTokens(base, body)
	case AlgorithmGDelta:
		return decodeGDelta(base, body)
	case AlgorithmGDeltaZstd:
		return decodeGDeltaZstd(base, body)
	case AlgorithmCharsZstd:
		return decodeCharsZstd(base, body)
	default:
		return nil, errors.ErrMalformedDelta(errors.ReasonUnknownAlgorithm)
	}
}
