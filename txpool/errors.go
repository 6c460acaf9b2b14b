// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import "github.com/pkg/errors"

// Admission rejections. Every rejection carries a distinguishable reason;
// callers (RPC, gossip ingestion) must propagate it, not swallow it.
var (
	errKnownTx             = errors.New("known transaction")
	errPoolFull            = errors.New("pool is full")
	errBadSignature        = errors.New("invalid transaction signature")
	errNonceTooLow         = errors.New("nonce too low")
	errNonceTooHigh        = errors.New("nonce too high")
	errInsufficientBalance = errors.New("insufficient balance for value and gas")
	errGasLimitOutOfRange  = errors.New("gas limit out of range")
)

func IsErrKnownTx(err error) bool {
	return err == errKnownTx
}

func IsErrPoolFull(err error) bool {
	return err == errPoolFull
}

func IsErrBadSignature(err error) bool {
	return err == errBadSignature
}

func IsErrNonceTooLow(err error) bool {
	return err == errNonceTooLow
}

func IsErrNonceTooHigh(err error) bool {
	return err == errNonceTooHigh
}

func IsErrInsufficientBalance(err error) bool {
	return err == errInsufficientBalance
}

func IsErrGasLimitOutOfRange(err error) bool {
	return err == errGasLimitOutOfRange
}
