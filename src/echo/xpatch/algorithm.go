// Package xpatch implements the delta-compression codec: Encode
// produces a compact delta transforming base into new, Decode inverts
// it, and GetTag reads the caller's tag without touching the body.
//
// The encoder tries a family of specialized algorithms plus a general
// copy/insert path over base and keeps whichever produces the smaller
// delta. Callers never see which algorithm won; it is recoverable only
// from the wire bytes (see Algorithm).
package xpatch

// Algorithm identifies which body encoding a delta uses. It is a
// closed enumeration: the eight wire codes below are the only ones
// this version of the codec understands, and a new algorithm can only
// be added by extending this list, not by registering one at runtime.
type Algorithm byte

const (
	// AlgorithmChars marks a pure insertion: mid_base is empty and
	// mid_new is carried as a literal.
	AlgorithmChars Algorithm = iota

	// AlgorithmTokens marks a small, fixed-offset insertion edit over
	// a non-empty mid_base.
	AlgorithmTokens

	// AlgorithmRemove marks a pure deletion: mid_new is empty.
	AlgorithmRemove

	// AlgorithmRepeatChars marks a pure insertion of a single repeated
	// byte value.
	AlgorithmRepeatChars

	// AlgorithmRepeatTokens marks a pure insertion of a repeated
	// multi-byte token.
	AlgorithmRepeatTokens

	// AlgorithmGDelta is the general copy/insert fallback over the
	// full (base, new) pair.
	AlgorithmGDelta

	// AlgorithmGDeltaZstd is AlgorithmGDelta with its instruction
	// stream piped through zstd.
	AlgorithmGDeltaZstd

	// AlgorithmCharsZstd is AlgorithmChars with its literal piped
	// through zstd.
	AlgorithmCharsZstd

	algorithmCount
)

// algorithmPriority breaks selector ties: the lowest-priority
// algorithm among equally-sized candidates wins. The wire codes were
// assigned in exactly this order, so priority is just numeric order.
func algorithmPriority(a Algorithm) int {
	return int(a)
}

func (a Algorithm) valid() bool {
	return a < algorithmCount
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmChars:
		return "Chars"
	case AlgorithmTokens:
		return "Tokens"
	case AlgorithmRemove:
		return "Remove"
	case AlgorithmRepeatChars:
		return "RepeatChars"
	case AlgorithmRepeatTokens:
		return "RepeatTokens"
	case AlgorithmGDelta:
		return "GDelta"
	case AlgorithmGDeltaZstd:
		return "GDeltaZstd"
	case AlgorithmCharsZstd:
		return "CharsZstd"
	default:
		return "Unknown"
	}
}
