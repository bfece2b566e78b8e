package merkle

import "math/bits"

// NodeCount returns the number of distinct nodes in a materialized tree over
// leafCount leaves. Duplicated odd nodes are referenced twice, not stored
// twice.
func NodeCount(leafCount uint64) uint64 {
	if leafCount == 0 {
		return 0
	}
	count := leafCount
	for width := leafCount; width > 1; {
		width = (width + 1) >> 1
		count += width
	}
	return count
}

// ProofLen returns the number of steps in any proof for a tree of leafCount
// leaves. It is also the number of levels above the leaves.
//
// NOTE: for leafCount <= 1 there is nothing to prove against, the result is 0.
func ProofLen(leafCount uint64) int {
	if leafCount <= 1 {
		return 0
	}
	// ceil(log2(N)) = floor(log2(N-1)) + 1
	return bits.Len64(leafCount - 1)
}
