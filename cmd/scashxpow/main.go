// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command scashxpow is a small demonstration and verification harness for
// the proof-of-work and difficulty-retarget engine in this module. It is
// not a node: it has no P2P, no mempool, no wallet. Given a network tag
// and a predecessor block's (height, time, bits), it prints the next
// required nBits the dispatcher would assign, and optionally checks a
// candidate hash against the predecessor's own target.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/scashx/scashxd/blockchain"
	"github.com/scashx/scashxd/chaincfg"
	"github.com/scashx/scashxd/mining/randomx"
)

var log btclog.Logger

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogging(cfg); err != nil {
		return err
	}
	defer log.Debug("scashxpow exiting")

	ct, ok := chaincfg.ChainTypeFromString(cfg.Network)
	if !ok {
		return fmt.Errorf("unrecognized network %q", cfg.Network)
	}

	params := chaincfg.Lookup(ct)
	if params == nil {
		return fmt.Errorf("no registered parameters for network %q", cfg.Network)
	}

	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters for %q: %w", cfg.Network, err)
	}

	log.Infof("network=%s randomx=%v powLimitBits=%08x", params.Name,
		params.IsRandomXChain, params.PowLimitBits)

	bits, err := parseHexUint32(cfg.PrevBits, params.PowLimitBits)
	if err != nil {
		return err
	}

	prev := blockchain.NewBlockNode(cfg.PrevHeight, cfg.PrevTime, bits,
		chainhash.Hash{}, chainhash.Hash{}, nil)

	next, err := nextWorkRequired(prev, params, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("next nBits: %08x\n", next)

	target, negative, overflow := blockchain.CompactToBig(next)
	if negative || overflow {
		log.Warnf("computed next nBits %08x does not decode to a valid target", next)
	} else {
		fmt.Printf("next target: %064x\n", target)
	}

	if cfg.CheckHash != "" {
		hash, err := parseHash(cfg.CheckHash)
		if err != nil {
			return err
		}
		ok := blockchain.CheckProofOfWorkClassic(hash, bits, params)
		fmt.Printf("check-hash against prev-bits: %v\n", ok)
	}

	return nil
}

// nextWorkRequired drives the dispatcher with the minimal block-index
// shape each retarget rule needs. The CLI only knows the predecessor's
// (height, time, bits), so ASERT gets an anchor from the network's
// configured one, the anchor flags, or, failing both, the predecessor
// itself, and a legacy retarget height gets a synthetic window whose first
// block carries --window-time.
func nextWorkRequired(prev *blockchain.BlockNode, params *chaincfg.Params, cfg *config) (uint32, error) {
	d := blockchain.NewDispatcher()

	if params.PowNoRetargeting {
		return d.NextWorkRequired(prev, params), nil
	}

	if prev.Height()+1 >= params.AsertActivationHeight {
		if params.AsertAnchor == nil {
			anchor := chaincfg.AsertAnchor{
				Height:     prev.Height(),
				Bits:       prev.Bits(),
				ParentTime: prev.Timestamp() - params.PowTargetSpacing,
			}
			if cfg.AnchorBits != "" {
				anchorBits, err := parseHexUint32(cfg.AnchorBits, 0)
				if err != nil {
					return 0, err
				}
				anchor = chaincfg.AsertAnchor{
					Height:     cfg.AnchorHeight,
					Bits:       anchorBits,
					ParentTime: cfg.AnchorParentTime,
				}
			}
			anchored := *params
			anchored.AsertAnchor = &anchor
			params = &anchored
		}
		return d.NextWorkRequired(prev, params), nil
	}

	if blockchain.IsRetargetHeight(prev, params) {
		if cfg.WindowTime == 0 {
			return 0, fmt.Errorf("height %d is a retarget height: --window-time is required", prev.Height()+1)
		}
		prev = rebuildWindow(prev, cfg.WindowTime, params)
	}

	return d.NextWorkRequired(prev, params), nil
}

// rebuildWindow re-links prev onto a synthetic retarget window whose first
// block carries windowTime. Intermediate timestamps never influence the
// legacy rule, which reads only the window's endpoints, so they all carry
// windowTime too.
func rebuildWindow(prev *blockchain.BlockNode, windowTime int64, params *chaincfg.Params) *blockchain.BlockNode {
	interval := int32(params.RetargetInterval())
	node := blockchain.NewBlockNode(prev.Height()-interval+1, windowTime, prev.Bits(),
		chainhash.Hash{}, chainhash.Hash{}, nil)
	for h := node.Height() + 1; h < prev.Height(); h++ {
		node = blockchain.NewBlockNode(h, windowTime, prev.Bits(),
			chainhash.Hash{}, chainhash.Hash{}, node)
	}
	return blockchain.NewBlockNode(prev.Height(), prev.Timestamp(), prev.Bits(),
		chainhash.Hash{}, chainhash.Hash{}, node)
}

// initLogging sets up the package logger: stderr at Info (or Debug) level
// always, plus a rotated file sink under cfg.LogDir when one is configured.
func initLogging(cfg *config) error {
	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if path := cfg.logFilePath(); path != "" {
		r, err := rotator.New(path, 10*1024, false, 3)
		if err != nil {
			return fmt.Errorf("failed to create log rotator: %w", err)
		}
		writers = append(writers, r)
	}

	backend := btclog.NewBackend(io.MultiWriter(writers...))
	log = backend.Logger("POW")
	blockchain.UseLogger(backend.Logger("DIFF"))
	randomx.UseLogger(backend.Logger("RNDX"))

	level := btclog.LevelInfo
	if cfg.Debug {
		level = btclog.LevelDebug
	}
	log.SetLevel(level)

	return nil
}

func parseHexUint32(s string, fallback uint32) (uint32, error) {
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return uint32(v), nil
}

func parseHash(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("invalid hex hash %q: %w", s, err)
	}
	if len(b) != 32 {
		return out, fmt.Errorf("hash must be 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
