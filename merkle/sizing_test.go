package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeCount(t *testing.T) {
	tests := []struct {
		leafCount uint64
		want      uint64
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 6},
		{4, 7},
		{5, 11},
		{8, 15},
		{9, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NodeCount(tt.leafCount), "leafCount=%d", tt.leafCount)
	}
}

func TestProofLen(t *testing.T) {
	tests := []struct {
		leafCount uint64
		want      int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{1 << 20, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProofLen(tt.leafCount), "leafCount=%d", tt.leafCount)
	}
}
