// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package packer assembles block proposals: it pulls executable
// candidates from the pool, applies them to the ledger and builds the
// proposal for the consensus engine. Empty blocks are valid; they still
// advance consensus liveness.
package packer

import (
	"math/big"
	"time"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/consensus"
	"github.com/actchain/go-act/log"
	"github.com/actchain/go-act/state"
	"github.com/actchain/go-act/tx"
	"github.com/actchain/go-act/txpool"
)

var logger = log.WithContext("pkg", "packer")

// MaxBlockTxs default cap of transactions per block.
const MaxBlockTxs = 100

// Packer packs pending transactions into block proposals.
type Packer struct {
	pool   *txpool.TxPool
	stater *state.Manager
	engine *consensus.Engine

	nowFn func() uint64 // unix seconds, swappable in tests
}

// New creates a packer.
func New(pool *txpool.TxPool, stater *state.Manager, engine *consensus.Engine) *Packer {
	return &Packer{
		pool:   pool,
		stater: stater,
		engine: engine,
		nowFn:  func() uint64 { return uint64(time.Now().Unix()) },
	}
}

// Pack builds the proposal for the given height: it applies up to
// MaxBlockTxs executable transactions to the ledger, removes the applied
// ones from the pool, and assembles the proposal for the selected
// proposer. A transaction that fails to apply is logged and left pooled
// for later reconsideration.
func (p *Packer) Pack(height uint64, parentHash act.Hash) (*consensus.BlockProposal, error) {
	proposer, err := p.engine.SelectProposer(height)
	if err != nil {
		return nil, err
	}

	executables := p.pool.Executables(MaxBlockTxs)
	included := make([]act.Hash, 0, len(executables))

	for _, pending := range executables {
		txHash := pending.Hash()
		receipt, err := p.apply(pending, height)
		if err != nil {
			logger.Warn("tx apply failed", "id", txHash.AbbrevString(), "err", err)
			continue
		}
		if err := p.stater.IncrementNonce(pending.From()); err != nil {
			return nil, err
		}
		if err := p.stater.StoreReceipt(receipt); err != nil {
			return nil, err
		}
		p.pool.Remove(txHash)
		included = append(included, txHash)
	}

	stateRoot, err := p.stater.StateRoot()
	if err != nil {
		return nil, err
	}

	metricPackedTxCounter().Add(int64(len(included)))
	return &consensus.BlockProposal{
		Height:       height,
		Proposer:     proposer,
		ParentHash:   parentHash,
		Timestamp:    p.nowFn(),
		Transactions: included,
		StateRoot:    stateRoot,
	}, nil
}

// apply executes one transaction against the ledger. The switch over
// the kind is exhaustive; adding a kind must extend it.
func (p *Packer) apply(pending *tx.Transaction, height uint64) (*state.Receipt, error) {
	receipt := &state.Receipt{
		TxHash:      pending.Hash(),
		BlockHeight: height,
		GasUsed:     pending.IntrinsicGas(),
	}

	switch pending.Kind() {
	case tx.KindTransfer:
		to, amount, _ := pending.Transfer()
		if err := p.stater.Transfer(pending.From(), to, amount); err != nil {
			return nil, err
		}
	case tx.KindContractDeploy:
		code, _, _ := pending.Deploy()
		contractAddr, err := p.stater.DeployContract(pending.From(), code, new(big.Int))
		if err != nil {
			return nil, err
		}
		receipt.ContractAddress = contractAddr
	case tx.KindContractCall, tx.KindEthereumLegacy:
		// execution is delegated to the external contract sandbox;
		// here only gas accounting and nonce consumption apply
	}
	return receipt, nil
}
