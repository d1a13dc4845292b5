// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/scashx/scashxd/chaincfg"
	"github.com/scashx/scashxd/mining/randomx"
	"github.com/scashx/scashxd/wire"
)

// RandomXVerifyMode selects how much of the RandomX proof a caller
// recomputes versus trusts from the header.
type RandomXVerifyMode int

const (
	// RandomXCommitmentOnly trusts header.HashRandomX and only checks the
	// commitment derived from it against the target. Safe only for
	// blocks already known-good (e.g. replaying an accepted chain):
	// a crafted, invalid HashRandomX can still produce a passing
	// commitment.
	RandomXCommitmentOnly RandomXVerifyMode = iota

	// RandomXFull recomputes hashRandomX by running the RandomX VM and
	// requires it to equal header.HashRandomX before checking the
	// commitment.
	RandomXFull

	// RandomXMining always recomputes hashRandomX, writes it through
	// outHash, and checks the commitment. outHash must be non-nil.
	RandomXMining
)

// ErrRandomXOutHashRequired is returned when RandomXMining is requested
// without a destination for the freshly computed hash. This is a
// programmer error, not a verification failure.
var ErrRandomXOutHashRequired = errors.New("blockchain: randomx mining mode requires a non-nil outHash")

// CheckProofOfWorkRandomX verifies header under params using mode. cache
// supplies (and memoizes) the RandomX key material for header's epoch.
// outHash, when non-nil, receives the header's RandomX hash on success (in
// RandomXMining, the freshly computed one, which the miner then writes into
// the header). On failure outHash is left untouched in every mode; callers
// must not read it after a failed call.
//
// The returned error is non-nil only for RandomXMining misuse or a
// transient RandomX key/cache failure; a header that simply fails PoW
// returns (false, nil).
func CheckProofOfWorkRandomX(header *wire.BlockHeader, params *chaincfg.Params, cache *randomx.EpochCache, mode RandomXVerifyMode, outHash *chainhash.Hash) (bool, error) {
	if mode == RandomXMining && outHash == nil {
		return false, ErrRandomXOutHashRequired
	}

	var zeroHash chainhash.Hash
	if mode != RandomXMining && header.HashRandomX == zeroHash {
		return false, nil
	}

	headerBytes := header.Bytes()
	rxHash := header.HashRandomX

	if mode == RandomXFull || mode == RandomXMining {
		computed, err := computeRandomXHash(headerBytes, header.Timestamp, params, cache)
		if err != nil {
			return false, err
		}

		if mode == RandomXFull && computed != header.HashRandomX {
			return false, nil
		}
		rxHash = computed
	}

	commitmentBytes, err := randomx.CalculateCommitment(headerBytes, rxHash[:])
	if err != nil {
		return false, err
	}

	var commitment chainhash.Hash
	copy(commitment[:], commitmentBytes)

	ok := commitmentSatisfiesTarget(commitment, header.Bits, params)
	if !ok {
		log.Tracef("RandomX commitment missed target for header: %v", spew.Sdump(header))
	}
	if ok && outHash != nil {
		*outHash = rxHash
	}
	return ok, nil
}

// commitmentSatisfiesTarget decodes bits into a target under params and
// reports whether commitment, read as a little-endian unsigned 256-bit
// integer (the same convention CheckProofOfWorkClassic uses for a block
// hash), does not exceed it.
func commitmentSatisfiesTarget(commitment chainhash.Hash, bits uint32, params *chaincfg.Params) bool {
	target, negative, overflow := CompactToBig(bits)
	if negative || overflow || target.Sign() == 0 {
		return false
	}
	if target.Cmp(params.PowLimit) > 0 {
		return false
	}

	commitmentNum := hashToBig([32]byte(commitment))
	return commitmentNum.Cmp(target) <= 0
}

// computeRandomXHash runs the RandomX VM for header's time-epoch over
// headerBytes (the serialized header with its RandomX field already
// zeroed by the caller).
func computeRandomXHash(headerBytes []byte, timestamp uint32, params *chaincfg.Params, cache *randomx.EpochCache) (chainhash.Hash, error) {
	epoch := randomx.Epoch(int64(timestamp), params.RandomXEpochDuration)
	vm, err := cache.NewVM(epoch)
	if err != nil {
		return chainhash.Hash{}, err
	}
	defer vm.Close()

	digest := vm.CalcHash(headerBytes)

	var out chainhash.Hash
	copy(out[:], digest)
	return out, nil
}

// GetRandomXCommitment returns the commitment value the ScashX PoW check
// compares against a block's target, using rxHashOverride in place of
// block's own RandomX hash when non-nil. This lets a caller recompute the
// commitment for a candidate hash before it is ever written into the
// header (e.g. while mining).
func GetRandomXCommitment(header *wire.BlockHeader, rxHashOverride *chainhash.Hash) (chainhash.Hash, error) {
	rxHash := header.HashRandomX
	if rxHashOverride != nil {
		rxHash = *rxHashOverride
	}

	commitmentBytes, err := randomx.CalculateCommitment(header.Bytes(), rxHash[:])
	if err != nil {
		return chainhash.Hash{}, err
	}

	var commitment chainhash.Hash
	copy(commitment[:], commitmentBytes)
	return commitment, nil
}
