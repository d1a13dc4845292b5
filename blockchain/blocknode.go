// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockNode represents a block within the block chain and is primarily
// used to accumulate chain work and answer ancestor queries in O(log n).
//
// This is kept as an arena-friendly structure addressed by *BlockNode
// rather than the cyclic shared_ptr-style back-reference graph of the
// reference implementation, but the shape (height, prev, skip, cumulative
// work) mirrors the source block index exactly.
type BlockNode struct {
	// parent is the predecessor block for this node; nil at genesis and
	// at the oldest node of a truncated index.
	parent *BlockNode

	// skip points to a distant ancestor, computed once at construction
	// time as a pure function of height, used to accelerate Ancestor.
	skip *BlockNode

	// hash is this block's identity hash: classic sha256d of the header,
	// or, on RandomX chains, sha256d of the 112-byte RandomX layout.
	hash chainhash.Hash

	// hashRandomX is the RandomX proof-of-work hash for this block. It
	// is the zero hash on non-RandomX chains.
	hashRandomX chainhash.Hash

	// height is the position in the block chain; 0 only at genesis.
	height int32

	// workSum is the total chain work up to and including this node:
	// workSum(b) == workSum(parent) + GetBlockProof(b.bits).
	workSum *big.Int

	// timestamp is the unix time recorded in this block's header.
	// Signed so arithmetic with negative deltas (ASERT's timeDiff,
	// legacy retarget windows) stays meaningful.
	timestamp int64

	// bits is this block's difficulty target in compact form.
	bits uint32
}

// NewBlockNode constructs a node for the given header fields and links it
// to parent (nil for genesis or the oldest node of a truncated index; the
// height is not checked against it). workSum and the skip pointer are both
// derived immediately, maintaining:
//
//	workSum(b) == workSum(parent) + GetBlockProof(bits)
//	skip(b) is an ancestor of strictly lower height, or nil
func NewBlockNode(height int32, timestamp int64, bits uint32, hashRandomX chainhash.Hash, hash chainhash.Hash, parent *BlockNode) *BlockNode {
	node := &BlockNode{
		parent:      parent,
		hash:        hash,
		hashRandomX: hashRandomX,
		height:      height,
		timestamp:   timestamp,
		bits:        bits,
	}

	proof := GetBlockProof(bits)
	if parent == nil {
		node.workSum = proof
	} else {
		node.workSum = new(big.Int).Add(parent.workSum, proof)
		node.skip = parent.Ancestor(calcSkipHeight(height))
	}

	return node
}

func (node *BlockNode) Height() int32 { return node.height }

func (node *BlockNode) Timestamp() int64 { return node.timestamp }

func (node *BlockNode) Bits() uint32 { return node.bits }

func (node *BlockNode) Hash() chainhash.Hash { return node.hash }

func (node *BlockNode) HashRandomX() chainhash.Hash { return node.hashRandomX }

func (node *BlockNode) Parent() *BlockNode { return node.parent }

func (node *BlockNode) WorkSum() *big.Int { return node.workSum }

// Ancestor returns the ancestor block node at the given height, or nil if
// height is out of [0, node.height] or the chain is truncated before that
// height (a partial index whose oldest node still has a nonzero height). It
// walks the skip-pointer lattice described in Bitcoin Core's "Efficiently
// calculating block ancestors" design, giving O(log n) worst-case hops
// instead of O(n).
func (node *BlockNode) Ancestor(height int32) *BlockNode {
	if height < 0 || height > node.height {
		return nil
	}

	n := node
	for n != nil && n.height > height {
		heightSkip := calcSkipHeight(n.height)
		heightSkipPrev := calcSkipHeight(n.height - 1)
		if n.skip != nil && (heightSkip == height ||
			(heightSkip > height && !(heightSkipPrev < heightSkip-2 && heightSkipPrev >= height))) {
			n = n.skip
		} else {
			n = n.parent
		}
	}

	return n
}

// calcSkipHeight calculates the height that should be used for the skip
// pointer of a block at the given height. Pure function of height; the
// lowest set bit of height is inverted and propagated, following Pieter
// Wuille's original skip-list construction.
func calcSkipHeight(height int32) int32 {
	if height < 2 {
		return 0
	}

	if height&1 != 0 {
		return invertLowestOne(invertLowestOne(height-1)) + 1
	}
	return invertLowestOne(height)
}

// invertLowestOne turns the lowest 1-bit in n into a 0-bit.
func invertLowestOne(n int32) int32 {
	return n & (n - 1)
}

// BlockIndex is an in-memory arena of BlockNode instances. It owns no
// mutex: the retarget and verification core is pure and synchronous, and
// callers are expected to serialize mutation of the index themselves.
type BlockIndex struct {
	nodes []*BlockNode
}

// NewBlockIndex returns an empty block index.
func NewBlockIndex() *BlockIndex {
	return &BlockIndex{}
}

// AddNode appends node to the index and returns it, for convenient chaining
// with NewBlockNode at call sites.
func (bi *BlockIndex) AddNode(node *BlockNode) *BlockNode {
	bi.nodes = append(bi.nodes, node)
	return node
}
