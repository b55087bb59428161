package xpatch

import "testing"

func TestSelectorPicksSpecializedOverGDeltaWhenSmaller(t *testing.T) {
	best := selectBest(0, []byte("Hello"), []byte("Hello, World!"), false)

	if best.algorithm != AlgorithmChars {
		t.Errorf("algorithm = %v, want Chars", best.algorithm)
	}
}

func TestSelectorShortCircuitsOnNearOptimalCandidate(t *testing.T) {
	// A pure deletion is within 1 byte of the theoretical lower bound
	// (header + prefix_len + 0), so the selector should short-circuit
	// on Remove without needing to run GDelta.
	best := selectBest(0, []byte("Hello, World!"), []byte("Hello!"), false)

	if best.algorithm != AlgorithmRemove {
		t.Errorf("algorithm = %v, want Remove", best.algorithm)
	}
}

func TestSelectorFallsBackToGDeltaWhenNoSpecializedApplies(t *testing.T) {
	best := selectBest(0, []byte("the quick brown fox"), []byte("a slow red hen"), false)

	if best.algorithm != AlgorithmGDelta {
		t.Errorf("algorithm = %v, want GDelta", best.algorithm)
	}
}

func TestSelectorNeverPicksZstdVariantsWhenDisabled(t *testing.T) {
	base := make([]byte, 0, 2000)
	for i := 0; i < 2000; i++ {
		base = append(base, byte('a'+i%7))
	}

	new := append(append([]byte{}, base...), make([]byte, 500)...)

	best := selectBest(0, base, new, false)

	if best.algorithm == AlgorithmCharsZstd || best.algorithm == AlgorithmGDeltaZstd {
		t.Errorf("zstd algorithm %v chosen despite enableZstd=false", best.algorithm)
	}
}
