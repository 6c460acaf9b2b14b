// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/actchain/go-act/act"
)

// Receipt records the outcome of an applied transaction, keyed by the
// transaction hash.
type Receipt struct {
	TxHash          act.Hash
	BlockHeight     uint64
	GasUsed         uint64
	Reverted        bool
	ContractAddress act.Address // set for contract deployments
}

type receiptRLP struct {
	TxHash          []byte
	BlockHeight     uint64
	GasUsed         uint64
	Reverted        bool
	ContractAddress string
}

// StoreReceipt saves the receipt in memory and in the durable store.
func (m *Manager) StoreReceipt(r *Receipt) error {
	data, err := rlp.EncodeToBytes(&receiptRLP{
		TxHash:          r.TxHash.Bytes(),
		BlockHeight:     r.BlockHeight,
		GasUsed:         r.GasUsed,
		Reverted:        r.Reverted,
		ContractAddress: string(r.ContractAddress),
	})
	if err != nil {
		return errors.Wrap(err, "encode receipt")
	}

	m.lock.Lock()
	m.receipts[r.TxHash] = r
	m.lock.Unlock()

	return m.receiptStore.Put([]byte(r.TxHash.String()), data)
}

// GetReceipt returns the receipt of the given tx hash, or nil if unknown.
func (m *Manager) GetReceipt(txHash act.Hash) (*Receipt, error) {
	m.lock.RLock()
	if r, ok := m.receipts[txHash]; ok {
		m.lock.RUnlock()
		return r, nil
	}
	m.lock.RUnlock()

	data, err := m.receiptStore.Get([]byte(txHash.String()))
	if err != nil {
		if m.receiptStore.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load receipt")
	}

	var enc receiptRLP
	if err := rlp.DecodeBytes(data, &enc); err != nil {
		return nil, errors.Wrap(err, "decode receipt")
	}
	return &Receipt{
		TxHash:          act.BytesToHash(enc.TxHash),
		BlockHeight:     enc.BlockHeight,
		GasUsed:         enc.GasUsed,
		Reverted:        enc.Reverted,
		ContractAddress: act.Address(enc.ContractAddress),
	}, nil
}
