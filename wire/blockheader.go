// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MaxBlockHeaderPayload is the maximum number of bytes a block header can be.
// Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes +
// PrevBlock and MerkleRoot hashes.
const MaxBlockHeaderPayload = 16 + (chainhash.HashSize * 2)

// MaxRandomXBlockHeaderPayload extends MaxBlockHeaderPayload with the
// additional 32-byte RandomX hash field carried on RandomX chains.
const MaxRandomXBlockHeaderPayload = MaxBlockHeaderPayload + chainhash.HashSize

// BlockHeader defines information about a block and is used in the bitcoin
// block (MsgBlock) and headers (MsgHeaders) messages.
//
// On chains where HasRandomX is true, HashRandomX is appended to the
// serialized form, producing a 112-byte header instead of the classic
// 80-byte one. The field is the zero hash until a miner or verifier fills
// it in; Bytes zeroes it out again so the commitment that is computed over
// the header never depends on itself, while BlockHash hashes it as given.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp uint32

	// Difficulty target for the block in compact form.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32

	// HashRandomX is the RandomX proof-of-work hash. Only meaningful (and
	// only serialized) when the chain's parameters set IsRandomXChain.
	HashRandomX chainhash.Hash

	// HasRandomX selects the 112-byte wire layout. Set by the caller from
	// chaincfg.Params.IsRandomXChain before serializing or hashing.
	HasRandomX bool
}

// blockHeaderLen is the length of a block header in bytes for a classic,
// non-RandomX chain.
const blockHeaderLen = 80

// Serialize encodes the block header to w, appending HashRandomX only when
// h.HasRandomX is set. Deserialize is its inverse.
func (h *BlockHeader) Serialize(w io.Writer) error {
	var buf [4]byte

	byteOrder := binary.LittleEndian
	byteOrder.PutUint32(buf[:], uint32(h.Version))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	byteOrder.PutUint32(buf[:], h.Timestamp)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	byteOrder.PutUint32(buf[:], h.Bits)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	byteOrder.PutUint32(buf[:], h.Nonce)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	if h.HasRandomX {
		if _, err := w.Write(h.HashRandomX[:]); err != nil {
			return err
		}
	}

	return nil
}

// Deserialize decodes a block header from r into h, interpreting the
// trailing 32 bytes as HashRandomX only when h.HasRandomX is already set by
// the caller (the wire layout itself carries no self-describing length tag).
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var buf [4]byte

	byteOrder := binary.LittleEndian
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	h.Version = int32(byteOrder.Uint32(buf[:]))

	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	h.Timestamp = byteOrder.Uint32(buf[:])

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	h.Bits = byteOrder.Uint32(buf[:])

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	h.Nonce = byteOrder.Uint32(buf[:])

	if h.HasRandomX {
		if _, err := io.ReadFull(r, h.HashRandomX[:]); err != nil {
			return err
		}
	}

	return nil
}

// Bytes returns the serialized form of the header as a byte slice, with
// HashRandomX zeroed out. This is the representation consensus code binds
// a RandomX commitment to: the header can never commit to its own output
// hash.
func (h *BlockHeader) Bytes() []byte {
	cleared := *h
	cleared.HashRandomX = chainhash.Hash{}

	size := blockHeaderLen
	if h.HasRandomX {
		size = MaxRandomXBlockHeaderPayload
	}
	buf := bytes.NewBuffer(make([]byte, 0, size))
	// Serialize cannot fail writing into a bytes.Buffer.
	_ = cleared.Serialize(buf)
	return buf.Bytes()
}

// BlockHash computes the sha256d hash of the header as it appears on the
// wire, including HashRandomX when HasRandomX is set. On RandomX chains
// this is a hash of 112 bytes, not 80; toggling HasRandomX therefore
// changes the hash of an otherwise identical header, including genesis.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, MaxRandomXBlockHeaderPayload))
	// Unlike Bytes, BlockHash hashes the header as given: on RandomX
	// chains in Full/Mining verification the hash field is meaningful and
	// part of the block's identity once accepted.
	_ = h.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}
