// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import (
	"time"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/actchain/go-act/act"
)

// Config consensus engine knobs.
type Config struct {
	MinValidators  int
	MaxValidators  int
	BlockInterval  time.Duration
	FinalityWindow int    // number of recent finalized heights kept
	RotationPeriod uint64 // heights between validator rotations
}

// DefaultConfig returns the default consensus configuration.
func DefaultConfig() Config {
	return Config{
		MinValidators:  3,
		MaxValidators:  100,
		BlockInterval:  act.BlockInterval,
		FinalityWindow: 10,
		RotationPeriod: 100,
	}
}

// Validator a consensus participant. Stake is the weight used in
// proposer selection and quorum arithmetic.
type Validator struct {
	Address           act.Address
	Stake             uint64
	CommissionRate    uint8
	Active            bool
	LastBlockProduced uint64
	BlocksProduced    uint64
	MissedBlocks      uint64
}

// BlockProposal a candidate block submitted by the selected proposer.
type BlockProposal struct {
	Height       uint64
	Proposer     act.Address
	ParentHash   act.Hash
	Timestamp    uint64
	Transactions []act.Hash
	StateRoot    act.Hash
}

// Hash returns the proposal's identity: sha256 over its canonical RLP
// encoding.
func (p *BlockProposal) Hash() act.Hash {
	txs := make([][]byte, len(p.Transactions))
	for i, id := range p.Transactions {
		txs[i] = id.Bytes()
	}
	data, _ := rlp.EncodeToBytes([]any{
		p.Height,
		string(p.Proposer),
		p.ParentHash.Bytes(),
		p.Timestamp,
		txs,
		p.StateRoot.Bytes(),
	})
	return act.HashSum(data)
}

// Vote a validator's vote on a block proposal.
type Vote struct {
	BlockHeight uint64
	BlockHash   act.Hash
	Validator   act.Address
	Signature   []byte
}

// Status a point-in-time snapshot of the consensus state, consumed by
// operators and monitoring.
type Status struct {
	CurrentHeight   uint64
	CurrentProposer act.Address
	FinalizedHeight uint64
	Validators      []Validator
}
