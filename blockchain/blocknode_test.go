// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain links height nodes 0..n-1, each carrying the given bits, and
// returns them in order.
func buildChain(n int, bits uint32) []*BlockNode {
	nodes := make([]*BlockNode, n)
	for h := 0; h < n; h++ {
		var parent *BlockNode
		if h > 0 {
			parent = nodes[h-1]
		}
		nodes[h] = NewBlockNode(int32(h), int64(h)*600, bits, zeroHash, zeroHash, parent)
	}
	return nodes
}

func TestNewBlockNodeWorkSumAccumulates(t *testing.T) {
	nodes := buildChain(5, 0x1d00ffff)
	proof := GetBlockProof(0x1d00ffff)

	require.Equal(t, 0, nodes[0].WorkSum().Cmp(proof))

	for h := 1; h < len(nodes); h++ {
		want := new(big.Int).Mul(proof, big.NewInt(int64(h+1)))
		assert.Equal(t, 0, nodes[h].WorkSum().Cmp(want), "height %d", h)
	}
}

func TestBlockNodeAncestorWalksBackToGenesis(t *testing.T) {
	nodes := buildChain(100, 0x1d00ffff)
	tip := nodes[99]

	for h := 0; h < 100; h++ {
		got := tip.Ancestor(int32(h))
		require.NotNil(t, got, "height %d", h)
		assert.Equal(t, int32(h), got.Height())
		assert.Same(t, nodes[h], got)
	}
}

func TestBlockNodeAncestorOutOfRangeReturnsNil(t *testing.T) {
	nodes := buildChain(10, 0x1d00ffff)
	tip := nodes[9]

	assert.Nil(t, tip.Ancestor(-1))
	assert.Nil(t, tip.Ancestor(10))
	assert.Nil(t, tip.Ancestor(11))
}

// TestBlockNodeAncestorTruncatedChainReturnsNil covers a partial index: the
// oldest node still has a nonzero height because its predecessors were never
// loaded. Walking past the truncation point must return nil, not crash.
func TestBlockNodeAncestorTruncatedChainReturnsNil(t *testing.T) {
	oldest := NewBlockNode(50, 0, 0x1d00ffff, zeroHash, zeroHash, nil)
	mid := NewBlockNode(51, 600, 0x1d00ffff, zeroHash, zeroHash, oldest)
	tip := NewBlockNode(52, 1200, 0x1d00ffff, zeroHash, zeroHash, mid)

	assert.Nil(t, tip.Ancestor(49))
	assert.Nil(t, tip.Ancestor(0))
	assert.Same(t, oldest, tip.Ancestor(50))
}

func TestBlockNodeGenesisHasNoParentAndZeroHeight(t *testing.T) {
	genesis := NewBlockNode(0, 1000, 0x1d00ffff, zeroHash, zeroHash, nil)
	assert.Nil(t, genesis.Parent())
	assert.Equal(t, int32(0), genesis.Height())
	assert.Same(t, genesis, genesis.Ancestor(0))
}

func TestBlockIndexAddNodeReturnsItsArgument(t *testing.T) {
	bi := NewBlockIndex()
	genesis := NewBlockNode(0, 1000, 0x1d00ffff, zeroHash, zeroHash, nil)
	got := bi.AddNode(genesis)
	assert.Same(t, genesis, got)
}
