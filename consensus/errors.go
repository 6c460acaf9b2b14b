// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

import "github.com/pkg/errors"

var (
	// ErrNoValidators is returned when an operation needs a proposer but
	// the validator set has no active member at all. This is operational
	// misconfiguration, distinct from ErrNotEnoughValidators.
	ErrNoValidators = errors.New("no active validators")
	// ErrNotEnoughValidators is returned when the active count is below
	// the configured minimum.
	ErrNotEnoughValidators = errors.New("not enough active validators")
	// ErrZeroStake is returned when the active validators carry no stake.
	ErrZeroStake = errors.New("no staked validators")
	// ErrWrongProposer rejects a proposal whose proposer is not the one
	// selected for its height.
	ErrWrongProposer = errors.New("invalid proposer for height")
	// ErrNotValidator rejects a vote whose signer is not an active
	// validator.
	ErrNotValidator = errors.New("voter is not an active validator")
	// ErrDuplicateVote rejects a second vote by the same validator for
	// the same height. The first vote wins.
	ErrDuplicateVote = errors.New("duplicate vote for height")
	// ErrNotEnoughVotes rejects finalization below the supermajority
	// threshold.
	ErrNotEnoughVotes = errors.New("not enough votes for finality")
	// ErrUnknownValidator is returned when bookkeeping names an address
	// absent from the validator set.
	ErrUnknownValidator = errors.New("validator not found")
)
