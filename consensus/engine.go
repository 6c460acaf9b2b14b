// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package consensus implements the stake-weighted proposer rotation,
// voting and finality engine, and the validator performance lifecycle.
package consensus

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/log"
)

var logger = log.WithContext("pkg", "consensus")

// Engine maintains the validator set and the per-height proposal/vote
// state machine. All state lives behind one reader-writer lock; no
// operation suspends while holding it.
type Engine struct {
	config Config

	lock            sync.RWMutex
	validators      []*Validator // sorted by stake descending
	currentHeight   uint64
	currentProposer act.Address
	finalizedHeight uint64

	pendingProposals map[uint64]*BlockProposal
	votes            map[uint64][]Vote
	voted            map[uint64]map[act.Address]struct{}
	finalized        []uint64 // recency window of finalized heights
}

// New creates a consensus engine with the default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a consensus engine with a custom configuration.
func NewWithConfig(config Config) *Engine {
	return &Engine{
		config:           config,
		pendingProposals: make(map[uint64]*BlockProposal),
		votes:            make(map[uint64][]Vote),
		voted:            make(map[uint64]map[act.Address]struct{}),
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// AddValidator upserts a validator by address. The set stays sorted by
// stake descending, address ascending as the deterministic tie-break.
func (e *Engine) AddValidator(v Validator) {
	e.lock.Lock()
	defer e.lock.Unlock()

	existing := e.findLocked(v.Address)
	if existing != nil {
		*existing = v
	} else {
		cpy := v
		e.validators = append(e.validators, &cpy)
	}
	e.sortLocked()
	metricActiveValidatorsGauge().Set(int64(e.activeCountLocked()))
}

// RemoveValidator deletes the validator with the given address.
func (e *Engine) RemoveValidator(addr act.Address) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	for i, v := range e.validators {
		if v.Address == addr {
			e.validators = append(e.validators[:i], e.validators[i+1:]...)
			metricActiveValidatorsGauge().Set(int64(e.activeCountLocked()))
			return nil
		}
	}
	return ErrUnknownValidator
}

// Validators returns a snapshot of the whole validator set.
func (e *Engine) Validators() []Validator {
	e.lock.RLock()
	defer e.lock.RUnlock()

	set := make([]Validator, len(e.validators))
	for i, v := range e.validators {
		set[i] = *v
	}
	return set
}

// Actives returns a snapshot of the active validators, stake descending.
func (e *Engine) Actives() []Validator {
	e.lock.RLock()
	defer e.lock.RUnlock()

	var actives []Validator
	for _, v := range e.validators {
		if v.Active {
			actives = append(actives, *v)
		}
	}
	return actives
}

// SelectProposer deterministically picks the proposer for the given
// height, weighted by stake. Any node with the same validator set
// computes the same address, which is what makes proposer agreement
// possible without an extra round.
func (e *Engine) SelectProposer(height uint64) (act.Address, error) {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.selectProposerLocked(height)
}

func (e *Engine) selectProposerLocked(height uint64) (act.Address, error) {
	var (
		actives    []*Validator
		totalStake uint64
	)
	for _, v := range e.validators {
		if v.Active {
			actives = append(actives, v)
			totalStake += v.Stake
		}
	}

	if len(actives) == 0 {
		return "", ErrNoValidators
	}
	if len(actives) < e.config.MinValidators {
		return "", ErrNotEnoughValidators
	}
	if totalStake == 0 {
		return "", ErrZeroStake
	}

	target := (height * 31) % totalStake
	var accumulated uint64
	for _, v := range actives {
		accumulated += v.Stake
		if accumulated > target {
			return v.Address, nil
		}
	}
	// unreachable: accumulated == totalStake > target
	return actives[0].Address, nil
}

// Propose stores a block proposal after checking its proposer against
// the selection for its height.
func (e *Engine) Propose(proposal *BlockProposal) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	expected, err := e.selectProposerLocked(proposal.Height)
	if err != nil {
		return err
	}
	if proposal.Proposer != expected {
		return errors.Wrapf(ErrWrongProposer, "height %d, got %s, want %s",
			proposal.Height, proposal.Proposer, expected)
	}
	e.pendingProposals[proposal.Height] = proposal
	return nil
}

// Proposal returns the pending proposal at the given height, or nil.
func (e *Engine) Proposal(height uint64) *BlockProposal {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.pendingProposals[height]
}

// AddVote records a validator's vote for a height. Only active
// validators may vote, and only once per height; the first vote wins.
func (e *Engine) AddVote(vote Vote) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	voter := e.findLocked(vote.Validator)
	if voter == nil || !voter.Active {
		return ErrNotValidator
	}

	seen, ok := e.voted[vote.BlockHeight]
	if !ok {
		seen = make(map[act.Address]struct{})
		e.voted[vote.BlockHeight] = seen
	}
	if _, dup := seen[vote.Validator]; dup {
		return ErrDuplicateVote
	}
	seen[vote.Validator] = struct{}{}

	e.votes[vote.BlockHeight] = append(e.votes[vote.BlockHeight], vote)
	metricVoteCounter().Add(1)
	return nil
}

// VoteCount returns the number of recorded votes for a height.
func (e *Engine) VoteCount(height uint64) int {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return len(e.votes[height])
}

// Finalize declares the block at the given height final. It requires a
// strict supermajority: vote count ≥ activeCount×2/3 + 1 in integer
// arithmetic.
func (e *Engine) Finalize(height uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	required := e.activeCountLocked()*2/3 + 1
	got := len(e.votes[height])
	if got < required {
		return errors.Wrapf(ErrNotEnoughVotes, "height %d, got %d, need %d", height, got, required)
	}

	if height > e.finalizedHeight {
		e.finalizedHeight = height
		metricFinalizedGauge().Set(int64(height))
	}

	e.finalized = append(e.finalized, height)
	for len(e.finalized) > e.config.FinalityWindow {
		e.finalized = e.finalized[1:]
	}

	delete(e.pendingProposals, height)
	logger.Info("block finalized", "height", height, "votes", got)
	return nil
}

// SetHeight advances the engine to a new height and selects its
// proposer.
func (e *Engine) SetHeight(height uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	proposer, err := e.selectProposerLocked(height)
	if err != nil {
		return err
	}
	e.currentHeight = height
	e.currentProposer = proposer
	return nil
}

// Height returns the current chain height.
func (e *Engine) Height() uint64 {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.currentHeight
}

// Proposer returns the proposer selected for the current height.
func (e *Engine) Proposer() act.Address {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.currentProposer
}

// RecentFinalized returns the retained window of finalized heights, in
// finalization order.
func (e *Engine) RecentFinalized() []uint64 {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return append([]uint64(nil), e.finalized...)
}

// FinalizedHeight returns the highest finalized height.
func (e *Engine) FinalizedHeight() uint64 {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.finalizedHeight
}

// GetStatus returns a snapshot of the consensus state.
func (e *Engine) GetStatus() Status {
	e.lock.RLock()
	defer e.lock.RUnlock()

	set := make([]Validator, len(e.validators))
	for i, v := range e.validators {
		set[i] = *v
	}
	return Status{
		CurrentHeight:   e.currentHeight,
		CurrentProposer: e.currentProposer,
		FinalizedHeight: e.finalizedHeight,
		Validators:      set,
	}
}

// RecordBlockProduction credits the validator with a produced block.
func (e *Engine) RecordBlockProduction(addr act.Address, height uint64) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	v := e.findLocked(addr)
	if v == nil {
		return ErrUnknownValidator
	}
	v.BlocksProduced++
	v.LastBlockProduced = height
	return nil
}

// RecordMissedBlock charges the validator with a missed proposal,
// deactivating it outright past the missed-block limit.
func (e *Engine) RecordMissedBlock(addr act.Address) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	v := e.findLocked(addr)
	if v == nil {
		return ErrUnknownValidator
	}
	v.MissedBlocks++
	if v.MissedBlocks > act.MissedBlockLimit {
		v.Active = false
		metricActiveValidatorsGauge().Set(int64(e.activeCountLocked()))
		logger.Warn("validator deactivated", "addr", addr, "missed", v.MissedBlocks)
	}
	return nil
}

// RotateValidators deactivates validators whose lifetime miss-rate
// exceeds the limit, then, if the active count fell below the minimum,
// reactivates the highest-stake inactive validators until the floor is
// restored. Liveness wins over punishment when validators are scarce: a
// just-deactivated validator may come straight back.
func (e *Engine) RotateValidators() {
	e.lock.Lock()
	defer e.lock.Unlock()

	for _, v := range e.validators {
		if v.BlocksProduced == 0 {
			continue
		}
		missRate := float64(v.MissedBlocks) / float64(v.BlocksProduced)
		if missRate > act.MissRateLimit && v.Active {
			v.Active = false
			logger.Info("validator rotated out", "addr", v.Address, "missRate", missRate)
		}
	}

	// the set is stake-sorted, so the first inactive ones are the
	// highest-stake candidates
	for _, v := range e.validators {
		if e.activeCountLocked() >= e.config.MinValidators {
			break
		}
		if !v.Active {
			v.Active = true
			logger.Info("validator reactivated", "addr", v.Address)
		}
	}
	metricActiveValidatorsGauge().Set(int64(e.activeCountLocked()))
}

func (e *Engine) findLocked(addr act.Address) *Validator {
	for _, v := range e.validators {
		if v.Address == addr {
			return v
		}
	}
	return nil
}

func (e *Engine) activeCountLocked() int {
	count := 0
	for _, v := range e.validators {
		if v.Active {
			count++
		}
	}
	return count
}

func (e *Engine) sortLocked() {
	sort.SliceStable(e.validators, func(i, j int) bool {
		if e.validators[i].Stake != e.validators[j].Stake {
			return e.validators[i].Stake > e.validators[j].Stake
		}
		return e.validators[i].Address < e.validators[j].Address
	})
}
