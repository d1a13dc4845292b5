// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scashx/scashxd/chaincfg"
)

func TestCompactToBig(t *testing.T) {
	tests := []struct {
		name       string
		compact    uint32
		wantTarget string // decimal
		wantNeg    bool
		wantOver   bool
	}{
		{"zero", 0, "0", false, false},
		{"bitcoin genesis", 0x1d00ffff, "26959535291011309493156476344723991336010898738574164086137773096960", false, false},
		{"small mantissa low exponent", 0x03123456, "1193046", false, false},
		{"negative sign bit", 0x01800001, "0", true, false},
		{"overflow exponent", 0x21010000, "0", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, neg, over := CompactToBig(tt.compact)
			assert.Equal(t, tt.wantNeg, neg)
			assert.Equal(t, tt.wantOver, over)
			if !tt.wantNeg && !tt.wantOver {
				want, ok := new(big.Int).SetString(tt.wantTarget, 10)
				require.True(t, ok)
				assert.Equal(t, 0, want.Cmp(target), "got %s want %s", target, want)
			}
		})
	}
}

func TestBigToCompactRoundTrip(t *testing.T) {
	// Round-trip holds whenever the normalized compact form keeps a
	// mantissa <= 0x7fffff.
	values := []uint32{0x1d00ffff, 0x1c0168fd, 0x1d00e1fd, 0x03123456, 0x207fffff}
	for _, v := range values {
		target, neg, over := CompactToBig(v)
		require.False(t, neg)
		require.False(t, over)
		got := BigToCompact(target)
		assert.Equal(t, v, got, "round trip mismatch for %08x", v)
	}
}

func TestCheckProofOfWorkClassic(t *testing.T) {
	params := &chaincfg.Params{PowLimit: new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 224), big.NewInt(1))}

	// A hash of all zero bytes is <= any positive target.
	var zeroHash [32]byte
	assert.True(t, CheckProofOfWorkClassic(zeroHash, 0x1d00ffff, params))

	// A hash of all 0xff bytes exceeds any realistic target.
	var maxHash [32]byte
	for i := range maxHash {
		maxHash[i] = 0xff
	}
	assert.False(t, CheckProofOfWorkClassic(maxHash, 0x1d00ffff, params))

	// Negative/overflow/zero/over-powLimit targets always fail.
	assert.False(t, CheckProofOfWorkClassic(zeroHash, 0x01800001, params)) // negative
	assert.False(t, CheckProofOfWorkClassic(zeroHash, 0x21010000, params)) // overflow
	assert.False(t, CheckProofOfWorkClassic(zeroHash, 0, params))          // zero target
	assert.False(t, CheckProofOfWorkClassic(zeroHash, 0x2100ffff, params)) // above powLimit
}

func TestGetBlockProof(t *testing.T) {
	// A tighter target (smaller) yields more work.
	looseProof := GetBlockProof(0x1d00ffff)
	tightProof := GetBlockProof(0x1c00ffff)
	assert.Equal(t, -1, looseProof.Cmp(tightProof))

	// Malformed bits contribute zero work.
	assert.Equal(t, big.NewInt(0), GetBlockProof(0x21010000))
}
