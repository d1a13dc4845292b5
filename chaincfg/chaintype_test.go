// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainTypeStringKnownValues(t *testing.T) {
	tests := []struct {
		ct   ChainType
		want string
	}{
		{Main, "main"},
		{TestNet, "test"},
		{TestNet4, "testnet4"},
		{SigNet, "signet"},
		{RegTest, "regtest"},
		{ScashXMain, "scashx"},
		{ScashXTestNet, "scashxtestnet"},
		{ScashXRegTest, "scashxregtest"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ct.String())
	}
}

// TestChainTypeStringOutOfRangeDoesNotPanic guards the asymmetry spelled out
// in ChainType.String's doc comment: a value outside the defined range must
// render as "not present", never panic, since it flows into logging and
// error-message paths that cannot afford to crash.
func TestChainTypeStringOutOfRangeDoesNotPanic(t *testing.T) {
	assert.Equal(t, "not present", ChainType(-1).String())
	assert.Equal(t, "not present", ChainType(999).String())
}

func TestChainTypeFromStringRoundTrip(t *testing.T) {
	tags := []string{"main", "test", "testnet4", "signet", "regtest", "scashx", "scashxtestnet", "scashxregtest"}
	for _, tag := range tags {
		ct, ok := ChainTypeFromString(tag)
		assert.True(t, ok)
		assert.Equal(t, tag, ct.String())
	}
}

func TestChainTypeFromStringUnknownTagFails(t *testing.T) {
	_, ok := ChainTypeFromString("not-a-real-chain")
	assert.False(t, ok)
}

func TestChainTypeIsRandomXChain(t *testing.T) {
	randomXChains := map[ChainType]bool{
		Main:          false,
		TestNet:       false,
		TestNet4:      false,
		SigNet:        false,
		RegTest:       false,
		ScashXMain:    true,
		ScashXTestNet: true,
		ScashXRegTest: true,
	}
	for ct, want := range randomXChains {
		assert.Equal(t, want, ct.IsRandomXChain(), "chain %s", ct)
	}
}
