// Copyright (c) 2025 The ScashX developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package randomx

import (
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Epoch returns the RandomX key epoch a block with the given timestamp
// belongs to: floor(time / duration). Both inputs are expected positive;
// duration must be nonzero.
func Epoch(time int64, duration int64) int64 {
	return time / duration
}

// SeedHash derives the RandomX seed for epoch e: sha256d(prefix ||
// decimal_ascii(e)), with no leading zeros or sign in the decimal
// representation. The returned chainhash.Hash follows the package's
// byte-reversed display convention, matching the seed-hash string format
// fixed in the wire contract.
func SeedHash(epoch int64, prefix []byte) chainhash.Hash {
	msg := make([]byte, 0, len(prefix)+20)
	msg = append(msg, prefix...)
	msg = append(msg, strconv.FormatInt(epoch, 10)...)
	return chainhash.DoubleHashH(msg)
}
