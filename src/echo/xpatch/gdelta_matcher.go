package xpatch

import (
	"golang.org/x/exp/maps"

	"github.com/amarbel-llc/xpatch/src/_/interfaces"
	"github.com/amarbel-llc/xpatch/src/alfa/pool"
	"github.com/amarbel-llc/xpatch/src/charlie/xpatchconfig"
)

// gdeltaHashMultiplier is an arbitrary odd multiplier for the rolling
// polynomial hash; wraparound in uint64 arithmetic stands in for a
// modulus, which is fine since this is a hash index, not a checksum.
const gdeltaHashMultiplier = 1099511628211

// gdeltaHashIndex is a fixed k-gram rolling-hash index over base, per
// the "GDelta internal matcher" design note: hash table keyed by
// window hash to a chain of base offsets, checked in ascending order
// so ties naturally favor the earliest offset.
type gdeltaHashIndex struct {
	base      []byte
	windowLen int
	minMatch  int
	maxChain  int
	highPower uint64
	table     map[uint64][]int
}

// hashIndexPool recycles the table map backing gdeltaHashIndex; the
// GDelta and GDeltaZstd candidates each build an index whenever the
// selector reaches them, so reusing the map avoids rebuilding its
// bucket array from scratch each time.
var hashIndexPool = pool.MakeValue(
	func() *gdeltaHashIndex { return &gdeltaHashIndex{table: make(map[uint64][]int)} },
	func(idx *gdeltaHashIndex) {
		idx.base = nil
		maps.Clear(idx.table)
	},
)

// newGDeltaHashIndex borrows a gdeltaHashIndex from hashIndexPool and
// builds its table over base. Callers must invoke the returned
// repool func once they are done with the index.
func newGDeltaHashIndex(
	base []byte, t xpatchconfig.GDelta,
) (*gdeltaHashIndex, interfaces.FuncRepool) {
	idx, repool := hashIndexPool.GetWithRepool()
	idx.base = base
	idx.windowLen = t.WindowLength
	idx.minMatch = t.MinMatchLength
	idx.maxChain = t.MaxChainLength

	if idx.windowLen <= 0 || len(base) < idx.windowLen {
		return idx, repool
	}

	idx.highPower = 1
	for i := 0; i < idx.windowLen-1; i++ {
		idx.highPower *= gdeltaHashMultiplier
	}

	h := windowHash(base[:idx.windowLen])
	idx.insert(h, 0)

	for i := 1; i+idx.windowLen <= len(base); i++ {
		h = rollHash(h, base[i-1], base[i+idx.windowLen-1], idx.highPower)
		idx.insert(h, i)
	}

	return idx, repool
}

func windowHash(window []byte) uint64 {
	var h uint64
	for _, b := range window {
		h = h*gdeltaHashMultiplier + uint64(b)
	}

	return h
}

func rollHash(prev uint64, outgoing, incoming byte, highPower uint64) uint64 {
	prev -= uint64(outgoing) * highPower
	prev *= gdeltaHashMultiplier
	prev += uint64(incoming)

	return prev
}

func (idx *gdeltaHashIndex) insert(hash uint64, offset int) {
	chain := idx.table[hash]
	chain = append(chain, offset)

	if idx.maxChain > 0 && len(chain) > idx.maxChain {
		chain = chain[len(chain)-idx.maxChain:]
	}

	idx.table[hash] = chain
}

// longestMatch looks for the longest run in base matching new starting
// at position i, preferring the earliest base offset on length ties.
// It reports found = false when no candidate reaches minMatch.
func (idx *gdeltaHashIndex) longestMatch(new []byte, i int) (offset, length int, found bool) {
	if idx.windowLen <= 0 || i+idx.windowLen > len(new) {
		return 0, 0, false
	}

	hash := windowHash(new[i : i+idx.windowLen])

	bestLen := 0
	bestOffset := 0

	for _, candidate := range idx.table[hash] {
		l := matchLength(idx.base, candidate, new, i)
		if l < idx.minMatch {
			continue
		}

		if l > bestLen {
			bestLen = l
			bestOffset = candidate
		}
	}

	if bestLen == 0 {
		return 0, 0, false
	}

	return bestOffset, bestLen, true
}

func matchLength(base []byte, baseOffset int, new []byte, newOffset int) int {
	n := 0
	for baseOffset+n < len(base) && newOffset+n < len(new) &&
		base[baseOffset+n] == new[newOffset+n] {
		n++
	}

	return n
}
