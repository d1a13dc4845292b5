// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/scashx/scashxd/chaincfg"
)

// ASERT (Absolutely Scheduled Exponentially Rising Targets) sets every
// block's target so that, had the chain run exactly on schedule since the
// anchor block, the target would equal the anchor's; deviation from
// schedule raises or lowers the target exponentially with a configured
// half-life. The computation is consensus-critical fixed-point integer
// arithmetic, never a floating-point approximation, and its truncating
// division and arithmetic right shift of negative numbers must match bit
// for bit on every input.

// asertCoefficients are the integer coefficients of the cubic polynomial
// approximating 2^x - 1 over x in [0, 1), scaled by 2^16 in the input
// (frac) and 2^48 in the output, per the consensus formula:
//
//	factor = (c1*frac + c2*frac^2 + c3*frac^3 + 2^47) >> 48
const (
	asertC1 = 195766423245049
	asertC2 = 971821376
	asertC3 = 5127
)

// CalculateASERT computes the next target given refTarget (the anchor's
// decoded target), the configured block spacing and half-life, the number
// of seconds and blocks elapsed since the anchor (timeDiff, heightDiff),
// and the chain's powLimit. It is pure integer arithmetic: no
// floating-point operation is ever used for a consensus value.
func CalculateASERT(refTarget *big.Int, spacing, timeDiff int64, heightDiff int64, powLimit *big.Int, halfLife int64) *big.Int {
	// exponent is in units of 1/65536 half-lives elapsed beyond schedule:
	// a block arriving later than spacing*(heightDiff+1) after the
	// anchor (the chain running behind) yields a positive exponent and
	// therefore a larger (easier) target.
	schedule := spacing * (heightDiff + 1)
	numerator := (timeDiff - schedule) << 16
	exponent := numerator / halfLife

	shifts := exponent >> 16 // arithmetic shift: Go's >> on signed ints is arithmetic
	frac := uint64(exponent & 0xffff)

	// The cubic term's intermediate sum overflows int64 (it can reach
	// ~1.8e19) but always fits in uint64, since frac is bounded to 16
	// bits and the coefficients are fixed constants.
	factor := int64((asertC1*frac + asertC2*frac*frac + asertC3*frac*frac*frac + (1 << 47)) >> 48)

	nextTarget := new(big.Int).Mul(refTarget, big.NewInt(65536+factor))
	shifts -= 16

	if shifts >= 0 {
		nextTarget.Lsh(nextTarget, uint(shifts))
	} else {
		nextTarget.Rsh(nextTarget, uint(-shifts))
	}

	if nextTarget.Sign() == 0 {
		return big.NewInt(1)
	}
	if nextTarget.Cmp(powLimit) > 0 || nextTarget.BitLen() > 256 {
		return new(big.Int).Set(powLimit)
	}

	return nextTarget
}

// GetNextASERTWorkRequired computes the compact nBits a block extending
// prev must carry under the ASERT rule, given the anchor block A. A.Parent
// must be non-nil: the anchor's own parent's timestamp anchors the
// schedule, and dereferencing a genesis anchor's nonexistent parent would
// be a mis-constructed index (the dispatcher never does this: activation
// at height 0 synthesizes a parent timestamp, see Dispatcher.asertAnchor).
func GetNextASERTWorkRequired(prev, anchor *BlockNode, params *chaincfg.Params) uint32 {
	refTarget := TargetFromBits(anchor.Bits())
	heightDiff := int64(prev.Height() - anchor.Height())
	timeDiff := prev.Timestamp() - anchor.Parent().Timestamp()

	nextTarget := CalculateASERT(
		refTarget,
		params.PowTargetSpacing,
		timeDiff,
		heightDiff,
		params.PowLimit,
		params.AsertHalfLife,
	)

	return BigToCompact(nextTarget)
}
