// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"sync"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/tx"
)

// txObjectMap maintains the two mempool indices: tx hash to transaction,
// and sender to submission-ordered queue. The per-sender order is only
// for inspection; block ordering is decided at selection time.
type txObjectMap struct {
	lock      sync.RWMutex
	mapByHash map[act.Hash]*tx.Transaction
	bySender  map[act.Address][]*tx.Transaction
}

func newTxObjectMap() *txObjectMap {
	return &txObjectMap{
		mapByHash: make(map[act.Hash]*tx.Transaction),
		bySender:  make(map[act.Address][]*tx.Transaction),
	}
}

func (m *txObjectMap) ContainsHash(txHash act.Hash) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, found := m.mapByHash[txHash]
	return found
}

// Add inserts the tx into both indices. The duplicate and capacity
// checks run under the same write lock as the insert, so the pool can
// never grow past limit however many goroutines race here.
func (m *txObjectMap) Add(newTx *tx.Transaction, limit int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	hash := newTx.Hash()
	if _, found := m.mapByHash[hash]; found {
		return errKnownTx
	}
	if len(m.mapByHash) >= limit {
		return errPoolFull
	}
	m.mapByHash[hash] = newTx
	m.bySender[newTx.From()] = append(m.bySender[newTx.From()], newTx)
	return nil
}

// Remove deletes the tx from both indices, dropping the sender queue once
// emptied. It reports whether the hash was present.
func (m *txObjectMap) Remove(txHash act.Hash) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	removed, found := m.mapByHash[txHash]
	if !found {
		return false
	}
	delete(m.mapByHash, txHash)

	sender := removed.From()
	queue := m.bySender[sender]
	for i, queued := range queue {
		if queued.Hash() == txHash {
			queue = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	if len(queue) == 0 {
		delete(m.bySender, sender)
	} else {
		m.bySender[sender] = queue
	}
	return true
}

func (m *txObjectMap) Get(txHash act.Hash) *tx.Transaction {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.mapByHash[txHash]
}

// BySender returns the sender's pending txs in submission order.
func (m *txObjectMap) BySender(sender act.Address) tx.Transactions {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return append(tx.Transactions(nil), m.bySender[sender]...)
}

// All returns a snapshot of every pending tx, in no particular order.
func (m *txObjectMap) All() tx.Transactions {
	m.lock.RLock()
	defer m.lock.RUnlock()

	all := make(tx.Transactions, 0, len(m.mapByHash))
	for _, pending := range m.mapByHash {
		all = append(all, pending)
	}
	return all
}

func (m *txObjectMap) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.mapByHash)
}

func (m *txObjectMap) SenderCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.bySender)
}
