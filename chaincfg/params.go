// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/scashx/scashxd/wire"
)

var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// bitcoinPowLimit is the highest proof of work value a classic
	// sha256d chain can have. It is the value 2^224 - 1.
	bitcoinPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	// regtestPowLimit is the highest proof of work value a regression
	// test chain can have. It is the value 2^255 - 1.
	regtestPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// randomXPowLimit is the highest proof of work value a RandomX chain
	// can have. RandomX's memory-hard hash rate is orders of magnitude
	// below sha256d, so the limit starts far looser: 2^235 - 1.
	randomXPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 235), bigOne)

	// sigNetPowLimit is the highest proof of work value the default
	// SigNet can have: 0x0377ae << 216, compact form 0x1e0377ae.
	sigNetPowLimit = new(big.Int).Lsh(big.NewInt(0x0377ae), 216)
)

// AsertAnchor pins the ASERT retarget to a specific historical block rather
// than letting the dispatcher discover it dynamically by walking back to
// AsertActivationHeight. When nil, the dispatcher performs that walk and
// caches the result (see blockchain.Dispatcher).
type AsertAnchor struct {
	Height     int32
	Bits       uint32
	ParentTime int64
}

// Params defines the consensus parameters for a ScashX-family network. The
// scope here is deliberately narrow: only the fields the proof-of-work and
// difficulty-retarget engine reads. Address encoding, BIP9 deployments,
// checkpoints, and other node-wide configuration live outside this core.
type Params struct {
	// Name is the human-readable identifier for the network.
	Name string

	// ChainType is the enum tag matching Name.
	ChainType ChainType

	// Net is the magic used to identify the network on the wire.
	Net wire.BitcoinNet

	// GenesisHeader is the header of the first block of the chain.
	// Transaction construction for genesis is out of scope for this
	// module; only the header fields the PoW engine reads are kept.
	GenesisHeader wire.BlockHeader

	// GenesisHash is the hash of GenesisHeader under this network's
	// hashing rules (classic or RandomX).
	GenesisHash chainhash.Hash

	// PowLimit is the highest allowed proof-of-work target for a block.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in compact form.
	PowLimitBits uint32

	// PowTargetSpacing is the desired number of seconds between blocks.
	PowTargetSpacing int64

	// PowTargetTimespan is the legacy retarget window in seconds. Must be
	// an integer multiple of PowTargetSpacing.
	PowTargetTimespan int64

	// PowNoRetargeting disables all retargeting when true; every block's
	// nBits equals its predecessor's. Used for regtest-style networks.
	PowNoRetargeting bool

	// AsertActivationHeight is the first height at which ASERT applies
	// instead of the legacy 2016-block rule. A value of 0 means ASERT is
	// active from genesis.
	AsertActivationHeight int32

	// AsertAnchor, if non-nil, overrides dynamic anchor discovery.
	AsertAnchor *AsertAnchor

	// AsertHalfLife is the number of seconds of persistent schedule
	// deviation required to halve or double the target.
	AsertHalfLife int64

	// IsRandomXChain selects RandomX hashing/verification and the
	// 112-byte header layout instead of classic sha256d and 80 bytes.
	IsRandomXChain bool

	// RandomXEpochDuration is the number of seconds spanned by one
	// RandomX key epoch.
	RandomXEpochDuration int64

	// RandomXSeedPrefix is the domain-separation prefix mixed into the
	// epoch seed hash ahead of the epoch's decimal ASCII representation.
	RandomXSeedPrefix []byte
}

// RetargetInterval returns the legacy retarget interval in blocks.
func (p *Params) RetargetInterval() int64 {
	return p.PowTargetTimespan / p.PowTargetSpacing
}

var (
	// ErrDuplicateChain describes an error where parameters for a chain
	// type were already registered.
	ErrDuplicateChain = errors.New("duplicate chain type")
)

var registeredChains = make(map[ChainType]*Params)

// Register records params under its ChainType so library code can look up
// a network's parameters by tag. Returns ErrDuplicateChain if the chain
// type was already registered.
func Register(params *Params) error {
	if _, ok := registeredChains[params.ChainType]; ok {
		return ErrDuplicateChain
	}
	registeredChains[params.ChainType] = params
	return nil
}

// Lookup returns the registered Params for ct, or nil if none is
// registered.
func Lookup(ct ChainType) *Params {
	return registeredChains[ct]
}

func mustRegister(p *Params) {
	if err := Register(p); err != nil {
		panic("chaincfg: failed to register " + p.Name + ": " + err.Error())
	}
}

// MainNetParams defines the classic sha256d Bitcoin-compatible main network,
// using the legacy 2016-block retarget rule exclusively: AsertActivationHeight
// is pinned past any reachable height, so the dispatcher takes the legacy
// branch for every post-genesis block.
var MainNetParams = Params{
	Name:                  "mainnet",
	ChainType:             Main,
	Net:                   wire.MainNet,
	PowLimit:              bitcoinPowLimit,
	PowLimitBits:          0x1d00ffff,
	PowTargetSpacing:      10 * 60,
	PowTargetTimespan:     14 * 24 * 60 * 60,
	PowNoRetargeting:      false,
	AsertActivationHeight: neverASERT,
}

// RegressionNetParams defines a classic sha256d regression-test network
// with retargeting disabled entirely.
var RegressionNetParams = Params{
	Name:                  "regtest",
	ChainType:             RegTest,
	Net:                   wire.TestNet,
	PowLimit:              regtestPowLimit,
	PowLimitBits:          0x207fffff,
	PowTargetSpacing:      10 * 60,
	PowTargetTimespan:     14 * 24 * 60 * 60,
	PowNoRetargeting:      true,
	AsertActivationHeight: neverASERT,
}

// TestNet3Params defines the classic sha256d test network (version 3).
var TestNet3Params = Params{
	Name:                  "testnet3",
	ChainType:             TestNet,
	Net:                   wire.TestNet3,
	PowLimit:              bitcoinPowLimit,
	PowLimitBits:          0x1d00ffff,
	PowTargetSpacing:      10 * 60,
	PowTargetTimespan:     14 * 24 * 60 * 60,
	PowNoRetargeting:      false,
	AsertActivationHeight: neverASERT,
}

// TestNet4Params defines the classic sha256d test network (version 4).
var TestNet4Params = Params{
	Name:                  "testnet4",
	ChainType:             TestNet4,
	Net:                   wire.TestNet4,
	PowLimit:              bitcoinPowLimit,
	PowLimitBits:          0x1d00ffff,
	PowTargetSpacing:      10 * 60,
	PowTargetTimespan:     14 * 24 * 60 * 60,
	PowNoRetargeting:      false,
	AsertActivationHeight: neverASERT,
}

// SigNetParams defines the public default SigNet.
var SigNetParams = Params{
	Name:                  "signet",
	ChainType:             SigNet,
	Net:                   wire.SigNet,
	PowLimit:              sigNetPowLimit,
	PowLimitBits:          0x1e0377ae,
	PowTargetSpacing:      10 * 60,
	PowTargetTimespan:     14 * 24 * 60 * 60,
	PowNoRetargeting:      false,
	AsertActivationHeight: neverASERT,
}

// ScashXMainNetParams defines the ScashX main network: RandomX proof of
// work, ASERT retargeting active from genesis, anchored dynamically unless
// AsertAnchor is supplied by the caller.
var ScashXMainNetParams = Params{
	Name:                  "scashx",
	ChainType:             ScashXMain,
	Net:                   wire.ScashXMainNet,
	PowLimit:              randomXPowLimit,
	PowLimitBits:          0x1e07ffff,
	PowTargetSpacing:      150, // 2.5-minute blocks
	PowTargetTimespan:     150 * 2016,
	PowNoRetargeting:      false,
	AsertActivationHeight: 0,
	AsertHalfLife:         2 * 24 * 60 * 60, // two days
	IsRandomXChain:        true,
	RandomXEpochDuration:  3600,
	RandomXSeedPrefix:     []byte("ScashX/RandomX/Epoch/"),
}

// ScashXTestNetParams defines the ScashX test network.
var ScashXTestNetParams = Params{
	Name:                  "scashxtestnet",
	ChainType:             ScashXTestNet,
	Net:                   wire.ScashXTestNet,
	PowLimit:              randomXPowLimit,
	PowLimitBits:          0x1e07ffff,
	PowTargetSpacing:      150,
	PowTargetTimespan:     150 * 2016,
	PowNoRetargeting:      false,
	AsertActivationHeight: 0,
	AsertHalfLife:         2 * 24 * 60 * 60,
	IsRandomXChain:        true,
	RandomXEpochDuration:  3600,
	RandomXSeedPrefix:     []byte("ScashX/RandomX/Epoch/"),
}

// ScashXRegTestParams defines the ScashX regression-test network with
// retargeting disabled.
var ScashXRegTestParams = Params{
	Name:                  "scashxregtest",
	ChainType:             ScashXRegTest,
	Net:                   wire.ScashXRegNet,
	PowLimit:              regtestPowLimit,
	PowLimitBits:          0x207fffff,
	PowTargetSpacing:      150,
	PowTargetTimespan:     150 * 2016,
	PowNoRetargeting:      true,
	AsertActivationHeight: neverASERT,
	AsertHalfLife:         2 * 24 * 60 * 60,
	IsRandomXChain:        true,
	RandomXEpochDuration:  3600,
	RandomXSeedPrefix:     []byte("ScashX/RandomX/Epoch/"),
}

// neverASERT is used as AsertActivationHeight on chains that never switch
// to ASERT: any in-range int32 height will eventually reach it, so classic
// chains are pinned to a height past any realistic chain length.
const neverASERT = 1<<31 - 1

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&RegressionNetParams)
	mustRegister(&TestNet3Params)
	mustRegister(&TestNet4Params)
	mustRegister(&SigNetParams)
	mustRegister(&ScashXMainNetParams)
	mustRegister(&ScashXTestNetParams)
	mustRegister(&ScashXRegTestParams)
}
