// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/scashx/scashxd/chaincfg"
)

// compactMantissaMask is the low 23 bits of a compact nBits value: the
// mantissa without its sign bit. The top byte is the exponent.
const compactMantissaMask = 0x007fffff

// compactSignBit is the sign bit within the 24-bit mantissa. When set, the
// decoded value is "negative" and invalid as a PoW target.
const compactSignBit = 0x00800000

// CompactToBig converts a compact representation of a 256-bit unsigned
// integer (nBits) to a big.Int, alongside the negative and overflow flags
// the consensus rules require callers to check.
//
// The format is: the most significant byte is a base-256 exponent, and the
// low 3 bytes are the mantissa, so that
//
//	value = mantissa * 256^(exponent-3)
//
// This is identical in form to the IEEE754 floating-point representation,
// just with a much smaller exponent and mantissa and a base of 256 instead
// of 2.
func CompactToBig(compact uint32) (target *big.Int, negative, overflow bool) {
	mantissa := compact & 0x00ffffff
	exponent := compact >> 24
	negative = mantissa&compactSignBit != 0 && mantissa != 0
	mantissa &= compactMantissaMask

	target = new(big.Int)
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		target.SetInt64(int64(mantissa))
	} else {
		target.SetInt64(int64(mantissa))
		target.Lsh(target, uint(8*(exponent-3)))
	}

	// Overflow: a nonzero mantissa would not fit in 256 bits. This
	// happens when exponent > 34, or exponent == 34 and the normalized
	// mantissa's top byte would itself not fit, i.e. the decoded bit
	// length exceeds 256.
	overflow = mantissa != 0 && (exponent > 34 ||
		(mantissa > 0xff && exponent > 33) ||
		(mantissa > 0xffff && exponent > 32))

	return target, negative, overflow
}

// BigToCompact converts a big.Int to a compact representation of a 256-bit
// unsigned integer (nBits). The resulting compact value always normalizes
// the mantissa to the range [0, 0x7fffff] by absorbing a high sign-bit
// byte into the exponent. Only the top bytes of n are kept, so
// CompactToBig(BigToCompact(n)) is smaller than n whenever n has nonzero
// bits below its mantissa; and a compact value with a non-normalized
// mantissa does not come back unchanged from CompactToBig then BigToCompact.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa's high bit (0x00800000) would be set, the value
	// would be interpreted as negative; shift one more byte into the
	// exponent to keep the sign bit clear.
	if mantissa&compactSignBit != 0 {
		mantissa >>= 8
		exponent++
	}

	return uint32(exponent<<24) | mantissa
}

// CheckProofOfWorkClassic reports whether hash satisfies the PoW target
// encoded by nBits under params, using the classical "hash <= target"
// comparison (sha256d chains). hash is interpreted as a little-endian
// unsigned 256-bit integer per Bitcoin convention.
func CheckProofOfWorkClassic(hash [32]byte, nBits uint32, params *chaincfg.Params) bool {
	target, negative, overflow := CompactToBig(nBits)
	if negative || overflow || target.Sign() == 0 {
		return false
	}
	if target.Cmp(params.PowLimit) > 0 {
		return false
	}

	hashNum := hashToBig(hash)
	return hashNum.Cmp(target) <= 0
}

// hashToBig interprets a sha256d digest as a little-endian unsigned 256-bit
// integer, reversing the byte order big.Int's big-endian SetBytes expects.
func hashToBig(hash [32]byte) *big.Int {
	var reversed [32]byte
	for i := 0; i < 32; i++ {
		reversed[i] = hash[32-1-i]
	}
	return new(big.Int).SetBytes(reversed[:])
}

// TargetFromBits decodes nBits into its target value, panicking if the
// encoding is negative or overflows. Used where the caller has already
// established (e.g. via CheckProofOfWorkClassic, or because the value
// originates from a trusted consensus parameter) that the compact value is
// well-formed, and a malformed value would indicate a mis-constructed
// index rather than untrusted input.
func TargetFromBits(nBits uint32) *big.Int {
	target, negative, overflow := CompactToBig(nBits)
	if negative || overflow {
		panic("blockchain: malformed compact target")
	}
	return target
}

// oneLsh256 is 2^256, used by GetBlockProof.
var oneLsh256 = new(big.Int).Lsh(big.NewInt(1), 256)

// GetBlockProof returns the work contribution of a block whose target,
// decoded from nBits, is target. proof = floor(2^256 / (target + 1)); it is
// defined to be zero for a malformed (negative/overflowing) nBits, since
// such a block could never have been accepted.
func GetBlockProof(nBits uint32) *big.Int {
	target, negative, overflow := CompactToBig(nBits)
	if negative || overflow || target.Sign() == 0 {
		return big.NewInt(0)
	}

	denom := new(big.Int).Add(target, bigOne)
	proof := new(big.Int).Div(oneLsh256, denom)
	return proof
}

var bigOne = big.NewInt(1)
