// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node runs the block production protocol: at a fixed interval
// it packs pending transactions, submits the proposal to the consensus
// engine and drives validator rotation.
package node

import (
	"context"
	"time"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/co"
	"github.com/actchain/go-act/consensus"
	"github.com/actchain/go-act/log"
	"github.com/actchain/go-act/packer"
	"github.com/actchain/go-act/state"
	"github.com/actchain/go-act/txpool"
)

var logger = log.WithContext("pkg", "node")

// Options node behavior knobs.
type Options struct {
	// SoloVoting makes the node cast a vote on behalf of every active
	// validator it hosts, so a single-node network still finalizes.
	SoloVoting bool
}

// Node wires pool, ledger and consensus into the production loop.
type Node struct {
	goes    co.Goes
	options Options

	packer *packer.Packer
	engine *consensus.Engine
	pool   *txpool.TxPool
	stater *state.Manager

	parentHash act.Hash
}

// New creates a node.
func New(pool *txpool.TxPool, stater *state.Manager, engine *consensus.Engine, options Options) *Node {
	return &Node{
		options: options,
		packer:  packer.New(pool, stater, engine),
		engine:  engine,
		pool:    pool,
		stater:  stater,
	}
}

// Run drives the production loop until ctx is done.
func (n *Node) Run(ctx context.Context) error {
	n.goes.Go(func() { n.packerLoop(ctx) })
	n.goes.Wait()
	return nil
}

func (n *Node) packerLoop(ctx context.Context) {
	logger.Debug("enter packer loop")
	defer logger.Debug("leave packer loop")

	ticker := time.NewTicker(n.engine.Config().BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.produceBlock()
		}
	}
}

// produceBlock runs one round of the protocol: pack, propose, vote,
// finalize, rotate. Failures are reported and retried at the next tick;
// an empty block is still proposed to keep consensus advancing.
func (n *Node) produceBlock() {
	height := n.engine.Height() + 1

	proposal, err := n.packer.Pack(height, n.parentHash)
	if err != nil {
		logger.Warn("pack failed", "height", height, "err", err)
		return
	}

	if err := n.engine.SetHeight(height); err != nil {
		logger.Warn("height advance failed", "height", height, "err", err)
		return
	}
	if err := n.engine.Propose(proposal); err != nil {
		logger.Warn("proposal rejected", "height", height, "err", err)
		return
	}
	if err := n.engine.RecordBlockProduction(proposal.Proposer, height); err != nil {
		logger.Warn("production bookkeeping failed", "proposer", proposal.Proposer, "err", err)
	}

	if n.options.SoloVoting {
		n.castLocalVotes(proposal)
	}

	if err := n.engine.Finalize(height); err != nil {
		// remote votes may still arrive; retried by the consensus layer
		logger.Debug("finality pending", "height", height, "err", err)
	} else {
		n.parentHash = proposal.Hash()
	}

	if period := n.engine.Config().RotationPeriod; period > 0 && height%period == 0 {
		n.engine.RotateValidators()
	}

	logger.Info("block produced",
		"height", height,
		"proposer", proposal.Proposer,
		"txs", len(proposal.Transactions),
		"finalized", n.engine.FinalizedHeight(),
	)
}

func (n *Node) castLocalVotes(proposal *consensus.BlockProposal) {
	blockHash := proposal.Hash()
	for _, v := range n.engine.Actives() {
		vote := consensus.Vote{
			BlockHeight: proposal.Height,
			BlockHash:   blockHash,
			Validator:   v.Address,
		}
		if err := n.engine.AddVote(vote); err != nil {
			logger.Warn("local vote rejected", "validator", v.Address, "err", err)
		}
	}
}
