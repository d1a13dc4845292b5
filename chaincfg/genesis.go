// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Genesis-block *transaction* construction (coinbase scriptSig text, output
// scripts, merkle-root derivation from a transaction set) is out of scope
// for this module; only the header fields the proof-of-work engine reads
// are populated here. MerkleRoot is the root a full node would compute
// from the real coinbase transaction; it is supplied as a literal by the
// caller since this module never builds transactions.
//
// SetGenesisHeader installs h as p's genesis header and recomputes
// GenesisHash under p's own hashing rules (classic sha256d or RandomX, per
// p.IsRandomXChain), so toggling IsRandomXChain on an otherwise identical
// header yields a different hash, as the external wire contract requires.
func SetGenesisHeader(p *Params, h GenesisHeaderFields) {
	p.GenesisHeader.Version = h.Version
	p.GenesisHeader.PrevBlock = chainhash.Hash{}
	p.GenesisHeader.MerkleRoot = h.MerkleRoot
	p.GenesisHeader.Timestamp = h.Timestamp
	p.GenesisHeader.Bits = h.Bits
	p.GenesisHeader.Nonce = h.Nonce
	p.GenesisHeader.HashRandomX = h.HashRandomX
	p.GenesisHeader.HasRandomX = p.IsRandomXChain

	p.GenesisHash = p.GenesisHeader.BlockHash()
}

// GenesisHeaderFields is the subset of wire.BlockHeader an out-of-module
// genesis-block builder supplies; PrevBlock is always the zero hash by
// construction and HasRandomX is derived from the target Params.
type GenesisHeaderFields struct {
	Version     int32
	MerkleRoot  chainhash.Hash
	Timestamp   uint32
	Bits        uint32
	Nonce       uint32
	HashRandomX chainhash.Hash
}
