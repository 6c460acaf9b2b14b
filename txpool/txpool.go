// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package txpool maintains unprocessed transactions: it gatekeeps
// admission against the ledger and supplies ordered candidates for block
// building.
package txpool

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/event"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/cry"
	"github.com/actchain/go-act/log"
	"github.com/actchain/go-act/state"
	"github.com/actchain/go-act/tx"
)

var logger = log.WithContext("pkg", "txpool")

// Options options for tx pool.
type Options struct {
	// Limit caps the total number of pending transactions.
	Limit int
}

// TxEvent is posted when a tx is admitted to the pool.
type TxEvent struct {
	Tx *tx.Transaction
}

// Stats mempool statistics, used for admission-control back-pressure by
// callers.
type Stats struct {
	Count        int
	Senders      int
	MeanGasPrice *big.Int
}

// TxPool holds transactions accepted for admission but not yet included
// in a finalized block.
type TxPool struct {
	options Options
	stater  *state.Manager
	all     *txObjectMap

	txFeed event.Feed
	scope  event.SubscriptionScope
}

// New creates a TxPool instance. Close is required to be called at end.
func New(stater *state.Manager, options Options) *TxPool {
	return &TxPool{
		options: options,
		stater:  stater,
		all:     newTxObjectMap(),
	}
}

// Close cleans up the subscription scope.
func (p *TxPool) Close() {
	p.scope.Close()
	logger.Debug("closed")
}

// SubscribeTxEvent receivers will receive admitted txs.
func (p *TxPool) SubscribeTxEvent(ch chan *TxEvent) event.Subscription {
	return p.scope.Track(p.txFeed.Subscribe(ch))
}

// Add validates the tx against the ledger and admits it to the pool.
// The pipeline short-circuits on the first failure: duplicate, signature,
// nonce window, balance, gas limit range, then capacity.
func (p *TxPool) Add(newTx *tx.Transaction) (act.Hash, error) {
	txHash := newTx.Hash()
	if p.all.ContainsHash(txHash) {
		metricBadTxCounter().AddWithLabel(1, map[string]string{"reason": errKnownTx.Error()})
		return act.Hash{}, errKnownTx
	}
	if err := p.validate(newTx); err != nil {
		metricBadTxCounter().AddWithLabel(1, map[string]string{"reason": err.Error()})
		return act.Hash{}, err
	}

	// duplicate and capacity are re-checked under the map's write lock
	if err := p.all.Add(newTx, p.options.Limit); err != nil {
		metricBadTxCounter().AddWithLabel(1, map[string]string{"reason": err.Error()})
		return act.Hash{}, err
	}

	metricPoolGauge().Set(int64(p.all.Len()))
	p.txFeed.Send(&TxEvent{Tx: newTx})
	logger.Debug("tx added", "id", txHash.AbbrevString(), "from", newTx.From())
	return txHash, nil
}

func (p *TxPool) validate(newTx *tx.Transaction) error {
	// the signature must bind (from, nonce, kind payload, gas limit, gas
	// price), and the public key must resolve to the claimed sender.
	if !cry.Verify(newTx.PubKey(), newTx.SigningHash(), newTx.Signature()) {
		return errBadSignature
	}
	if act.AddressFromPubKey(newTx.PubKey()) != newTx.From() {
		return errBadSignature
	}

	currentNonce, err := p.stater.GetNonce(newTx.From())
	if err != nil {
		return err
	}
	if newTx.Nonce() < currentNonce {
		return errNonceTooLow
	}
	if newTx.Nonce() > currentNonce+act.NonceWindow {
		return errNonceTooHigh
	}

	balance, err := p.stater.GetBalance(newTx.From())
	if err != nil {
		return err
	}
	if balance.Cmp(newTx.Cost()) < 0 {
		return errInsufficientBalance
	}

	if newTx.GasLimit() < act.MinGasLimit || newTx.GasLimit() > act.MaxGasLimit {
		return errGasLimitOutOfRange
	}
	return nil
}

// Executables returns up to max transactions ready for inclusion in the
// next block: sorted by gas price descending with nonce ascending as the
// tie-break, keeping only txs whose nonce equals the sender's current
// on-chain nonce. A tx whose predecessor nonce is still pending is
// skipped here and reconsidered on the next call.
func (p *TxPool) Executables(max int) tx.Transactions {
	all := p.all.All()

	sort.Slice(all, func(i, j int) bool {
		if cmp := all[i].GasPrice().Cmp(all[j].GasPrice()); cmp != 0 {
			return cmp > 0
		}
		return all[i].Nonce() < all[j].Nonce()
	})

	nonces := make(map[act.Address]uint64)
	executables := make(tx.Transactions, 0, max)
	for _, pending := range all {
		if len(executables) >= max {
			break
		}
		currentNonce, ok := nonces[pending.From()]
		if !ok {
			var err error
			if currentNonce, err = p.stater.GetNonce(pending.From()); err != nil {
				logger.Warn("nonce lookup failed", "addr", pending.From(), "err", err)
				continue
			}
			nonces[pending.From()] = currentNonce
		}
		if pending.Nonce() == currentNonce {
			executables = append(executables, pending)
		}
	}
	return executables
}

// Get returns the pending tx with the given hash, or nil.
func (p *TxPool) Get(txHash act.Hash) *tx.Transaction {
	return p.all.Get(txHash)
}

// Remove removes the tx from the pool. It reports whether the hash was
// present.
func (p *TxPool) Remove(txHash act.Hash) bool {
	if p.all.Remove(txHash) {
		metricPoolGauge().Set(int64(p.all.Len()))
		return true
	}
	return false
}

// PendingBySender returns the sender's pending txs in submission order.
func (p *TxPool) PendingBySender(sender act.Address) tx.Transactions {
	return p.all.BySender(sender)
}

// Len returns the number of pending txs.
func (p *TxPool) Len() int {
	return p.all.Len()
}

// GetStats computes pool statistics.
func (p *TxPool) GetStats() Stats {
	all := p.all.All()

	mean := new(big.Int)
	if len(all) > 0 {
		for _, pending := range all {
			mean.Add(mean, pending.GasPrice())
		}
		mean.Div(mean, big.NewInt(int64(len(all))))
	}
	return Stats{
		Count:        len(all),
		Senders:      p.all.SenderCount(),
		MeanGasPrice: mean,
	}
}
