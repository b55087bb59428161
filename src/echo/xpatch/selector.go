package xpatch

import (
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
)

// candidateEncoders are tried in priority order; ties in output size
// are broken by this order too (see algorithmPriority), so listing
// them in priority order lets the selector short-circuit without a
// separate sort.
var candidateEncoders = []struct {
	algorithm Algorithm
	encode    encoderFunc
}{
	{AlgorithmChars, encodeChars},
	{AlgorithmTokens, encodeTokens},
	{AlgorithmRemove, encodeRemove},
	{AlgorithmRepeatChars, encodeRepeatChars},
	{AlgorithmRepeatTokens, encodeRepeatTokens},
	{AlgorithmGDelta, encodeGDelta},
	{AlgorithmGDeltaZstd, encodeGDeltaZstd},
	{AlgorithmCharsZstd, encodeCharsZstd},
}

// selectBest runs every applicable candidate encoder and returns the
// one producing the shortest (header + body). Ties are broken by
// algorithmPriority, which candidateEncoders is already ordered by.
func selectBest(tag uint64, base, new []byte, enableZstd bool) candidate {
	cs := analyzeChange(base, new)
	lowerBound := headerLen(tag) + varint.Len(uint64(cs.prefixLen)) + varint.Len(0)

	var best candidate
	haveBest := false

	for _, c := range candidateEncoders {
		body, ok := c.encode(cs, base, new, enableZstd)
		if !ok {
			continue
		}

		total := headerLen(tag) + len(body)

		if !haveBest || total < headerLen(tag)+len(best.body) {
			best = candidate{algorithm: c.algorithm, body: body}
			haveBest = true
		}

		if total <= lowerBound+1 {
			break
		}
	}

	return best
}
