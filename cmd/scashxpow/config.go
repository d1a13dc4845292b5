// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

// config holds the command-line options scashxpow accepts. It intentionally
// mirrors the shape of a node's top-level config struct (network selection,
// a log directory) without any of the networking/wallet/RPC options that
// belong to a full node.
type config struct {
	Network    string `short:"n" long:"network" description:"Chain to evaluate (main, test, testnet4, signet, regtest, scashx, scashxtestnet, scashxregtest)" default:"scashx"`
	LogDir     string `long:"logdir" description:"Directory to write rotated logs to; empty disables file logging"`
	Debug      bool   `short:"d" long:"debug" description:"Enable debug-level logging to stderr"`
	PrevHeight int32  `long:"prev-height" description:"Height of the block the next work requirement extends"`
	PrevTime   int64  `long:"prev-time" description:"Unix timestamp of that block"`
	PrevBits   string `long:"prev-bits" description:"Compact nBits of that block, hex, e.g. 1d00ffff"`
	WindowTime int64  `long:"window-time" description:"Unix timestamp of the first block of the just-completed legacy retarget window (required at a retarget height, ignored under ASERT)"`
	CheckHash  string `long:"check-hash" description:"Little-endian hex block hash to verify against PrevBits under the classic PoW rule"`

	AnchorHeight     int32  `long:"anchor-height" description:"ASERT anchor block height (with anchor-bits/anchor-parent-time; defaults to treating the predecessor itself as the anchor)"`
	AnchorBits       string `long:"anchor-bits" description:"ASERT anchor block compact nBits, hex"`
	AnchorParentTime int64  `long:"anchor-parent-time" description:"Unix timestamp of the ASERT anchor block's parent"`
}

// loadConfig parses command-line arguments into a config, applying the
// same "print usage and exit" convention go-flags-based tools in this
// ecosystem use.
func loadConfig() (*config, error) {
	cfg := config{}
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o700); err != nil {
			return nil, fmt.Errorf("cannot create log directory %s: %w", cfg.LogDir, err)
		}
	}

	return &cfg, nil
}

// logFilePath returns the rotated log file path for cfg, or "" if file
// logging is disabled.
func (cfg *config) logFilePath() string {
	if cfg.LogDir == "" {
		return ""
	}
	return filepath.Join(cfg.LogDir, "scashxpow.log")
}
