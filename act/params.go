// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package act

import "time"

// Constants of block chain.
const (
	BlockInterval = 30 * time.Second // time interval between two consecutive blocks.

	MinGasLimit uint64 = 21_000     // lower bound of tx gas limit, the cost of a plain transfer.
	MaxGasLimit uint64 = 10_000_000 // upper bound of tx gas limit.

	NonceWindow uint64 = 100 // max distance of a pending tx nonce above the account nonce.

	StateCacheTTL = 5 * time.Second // staleness bound of balance/nonce cache entries.
)

// Gas cost schedule per transaction kind.
const (
	TransferGas       uint64 = 21_000
	ContractDeployGas uint64 = 53_000
	ContractCallGas   uint64 = 25_000

	DeployGasPerByte uint64 = 200
	CallGasPerByte   uint64 = 100
	LegacyGasPerByte uint64 = 16
)

// Validator performance limits.
const (
	MissedBlockLimit uint64  = 10   // consecutive-lifetime missed blocks before outright deactivation.
	MissRateLimit    float64 = 0.30 // lifetime missed/produced ratio tolerated at rotation.
)
