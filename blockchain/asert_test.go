// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/scashx/scashxd/chaincfg"
)

func scashxPowLimit() *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 235), big.NewInt(1))
}

// TestCalculateASERTExactlyOnSchedule exercises the one case the formula
// must reproduce bit-exactly with no cubic approximation at play at all:
// when the elapsed time exactly matches what the schedule called for,
// frac is zero and the result is refTarget unchanged.
func TestCalculateASERTExactlyOnSchedule(t *testing.T) {
	refTarget := new(big.Int).Rsh(scashxPowLimit(), 3) // powLimit >> 3
	powLimit := scashxPowLimit()
	spacing := int64(150)
	halfLife := int64(2 * 24 * 60 * 60)

	for _, heightDiff := range []int64{0, 1, 6, 287, 1000} {
		timeDiff := spacing * (heightDiff + 1)
		got := CalculateASERT(refTarget, spacing, timeDiff, heightDiff, powLimit, halfLife)
		assert.Equal(t, 0, got.Cmp(refTarget), "heightDiff=%d: got %s want %s", heightDiff, got, refTarget)
	}
}

// TestCalculateASERTExactHalfLifeSteps covers the doubling/halving/
// quadrupling points where the exponent is an exact multiple of 2^16 (frac
// == 0), so the cubic approximation contributes nothing and the result is
// exact rather than tolerance-bounded.
func TestCalculateASERTExactHalfLifeSteps(t *testing.T) {
	refTarget := new(big.Int).Rsh(scashxPowLimit(), 3)
	powLimit := scashxPowLimit()
	spacing := int64(150)
	halfLife := int64(2 * 24 * 60 * 60)
	heightDiff := int64(0)
	onSchedule := spacing * (heightDiff + 1)

	t.Run("one half-life excess doubles", func(t *testing.T) {
		got := CalculateASERT(refTarget, spacing, onSchedule+halfLife, heightDiff, powLimit, halfLife)
		want := new(big.Int).Lsh(refTarget, 1)
		assert.Equal(t, 0, got.Cmp(want))
	})

	t.Run("one half-life shortfall halves", func(t *testing.T) {
		got := CalculateASERT(refTarget, spacing, onSchedule-halfLife, heightDiff, powLimit, halfLife)
		want := new(big.Int).Rsh(refTarget, 1)
		assert.Equal(t, 0, got.Cmp(want))
	})

	t.Run("two half-lives excess quadruples", func(t *testing.T) {
		got := CalculateASERT(refTarget, spacing, onSchedule+2*halfLife, heightDiff, powLimit, halfLife)
		want := new(big.Int).Lsh(refTarget, 2)
		assert.Equal(t, 0, got.Cmp(want))
	})

	t.Run("two half-lives shortfall quarters", func(t *testing.T) {
		got := CalculateASERT(refTarget, spacing, onSchedule-2*halfLife, heightDiff, powLimit, halfLife)
		want := new(big.Int).Rsh(refTarget, 2)
		assert.Equal(t, 0, got.Cmp(want))
	})
}

// TestCalculateASERTSaturatesAtLimits exercises the underflow-to-1 and
// overflow-to-powLimit saturation edges: a 512-day excess of schedule
// deviation must clamp to powLimit without overflowing, and 2*(256-33)*144
// blocks arriving with no elapsed time must floor the target at 1.
func TestCalculateASERTSaturatesAtLimits(t *testing.T) {
	// The 144-blocks-per-day and 600-second constants in the saturation
	// bounds are calibrated against a 224-bit powLimit (the classic
	// sha256d value): 256-32 is exactly that bit length.
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 224), big.NewInt(1))
	spacing := int64(600)
	halfLife := int64(2 * 24 * 60 * 60)

	t.Run("massive negative schedule deviation floors at 1", func(t *testing.T) {
		heightDiff := int64(2 * (256 - 33) * 144)
		got := CalculateASERT(powLimit, spacing, 0, heightDiff, powLimit, halfLife)
		assert.Equal(t, big.NewInt(1), got)
	})

	t.Run("massive positive schedule deviation caps at powLimit", func(t *testing.T) {
		timeDiff := int64(512 * 144 * 600)
		got := CalculateASERT(powLimit, spacing, timeDiff, 0, powLimit, halfLife)
		assert.Equal(t, 0, got.Cmp(powLimit))
	})
}

// TestCalculateASERTMonotonic checks that, for a fixed anchor and height,
// nextTarget is non-decreasing in timeDiff: a later-arriving block never
// tightens the target.
func TestCalculateASERTMonotonic(t *testing.T) {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	refTarget := new(big.Int).Rsh(powLimit, 10)
	spacing := int64(150)
	halfLife := int64(2 * 24 * 60 * 60)

	rapid.Check(t, func(tt *rapid.T) {
		heightDiff := rapid.Int64Range(0, 200000).Draw(tt, "heightDiff")
		t1 := rapid.Int64Range(-10_000_000, 10_000_000).Draw(tt, "t1")
		delta := rapid.Int64Range(1, 10_000_000).Draw(tt, "delta")

		r1 := CalculateASERT(refTarget, spacing, t1, heightDiff, powLimit, halfLife)
		r2 := CalculateASERT(refTarget, spacing, t1+delta, heightDiff, powLimit, halfLife)

		if r1.Cmp(r2) > 0 {
			tt.Fatalf("target decreased as time advanced: t=%d -> %s, t=%d -> %s", t1, r1, t1+delta, r2)
		}
	})
}

// TestGetNextASERTWorkRequiredCatchUpRestoresAnchorBits replays the anchor
// scenario from the reference suite: the anchor itself arrives 450 seconds
// fast (a 150-second solvetime), so the next block's bits tighten away from
// the anchor's; the block after that arrives 1050 seconds later, exactly
// making up the shortfall, and the requirement returns to the anchor's own
// bits.
func TestGetNextASERTWorkRequiredCatchUpRestoresAnchorBits(t *testing.T) {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 224), big.NewInt(1))
	params := &chaincfg.Params{
		PowLimit:         powLimit,
		PowTargetSpacing: 600,
		AsertHalfLife:    2 * 24 * 60 * 60,
	}

	anchorBits := BigToCompact(new(big.Int).Rsh(powLimit, 3))
	require.Equal(t, uint32(0x1c1fffff), anchorBits)

	anchorParent := NewBlockNode(0, 1269211443, 0, zeroHash, zeroHash, nil)
	anchor := NewBlockNode(1, anchorParent.Timestamp()+150, anchorBits, zeroHash, zeroHash, anchorParent)

	fastBits := GetNextASERTWorkRequired(anchor, anchor, params)
	require.NotEqual(t, anchorBits, fastBits)

	catchUp := NewBlockNode(2, anchor.Timestamp()+1050, fastBits, zeroHash, zeroHash, anchor)
	require.Equal(t, anchorBits, GetNextASERTWorkRequired(catchUp, anchor, params))
}

// TestGetNextASERTWorkRequired wires CalculateASERT up through a block
// index: the anchor's *parent* timestamp anchors the schedule, not the
// anchor's own timestamp.
func TestGetNextASERTWorkRequired(t *testing.T) {
	params := &chaincfg.Params{
		PowLimit:         scashxPowLimit(),
		PowTargetSpacing: 150,
		AsertHalfLife:    2 * 24 * 60 * 60,
	}

	anchorParent := NewBlockNode(0, 1000, 0, zeroHash, zeroHash, nil)
	anchorBits := BigToCompact(new(big.Int).Rsh(params.PowLimit, 3))
	anchor := NewBlockNode(1, 1150, anchorBits, zeroHash, zeroHash, anchorParent)
	prev := NewBlockNode(2, 1300, anchorBits, zeroHash, zeroHash, anchor)

	got := GetNextASERTWorkRequired(prev, anchor, params)
	// prev arrived exactly on schedule relative to the anchor's parent
	// (timeDiff 300 == spacing*(heightDiff+1) == 150*2), so the target is
	// unchanged.
	require.Equal(t, anchorBits, got)
}
