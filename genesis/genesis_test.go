// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/stretchr/testify/assert"

	"github.com/actchain/go-act/consensus"
	"github.com/actchain/go-act/kv"
	"github.com/actchain/go-act/state"
)

func newLedger(t *testing.T) (*state.Manager, *consensus.Engine) {
	db, err := kv.NewMem()
	assert.Nil(t, err)
	return state.New(db, new(mclock.Simulated)), consensus.New()
}

func TestDevAccounts(t *testing.T) {
	accs := DevAccounts()
	assert.Len(t, accs, 6)

	// derivation from the fixed seeds is stable
	again := DevAccounts()
	for i := range accs {
		assert.Equal(t, accs[i].KeyPair.Address(), again[i].KeyPair.Address())
	}
}

func TestBuildDevnet(t *testing.T) {
	stater, engine := newLedger(t)

	assert.Nil(t, NewDevnet().Build(stater, engine))

	expected, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	for _, acc := range DevAccounts() {
		bal, err := stater.GetBalance(acc.KeyPair.Address())
		assert.Nil(t, err)
		assert.Equal(t, expected, bal)
	}

	actives := engine.Actives()
	assert.Len(t, actives, 3)
	for _, v := range actives {
		assert.Equal(t, uint64(100_000), v.Stake)
		assert.Equal(t, uint8(10), v.CommissionRate)
	}

	// the devnet set is immediately able to select a proposer
	_, err := engine.SelectProposer(1)
	assert.Nil(t, err)
}

func TestLoadYAML(t *testing.T) {
	dev := DevAccounts()
	content := `
accounts:
  - address: ` + dev[0].KeyPair.Address().String() + `
    balance: "42000"
validators:
  - address: ` + dev[0].KeyPair.Address().String() + `
    stake: 777
    commission: 5
`
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	assert.Nil(t, os.WriteFile(path, []byte(content), 0o600))

	gene, err := Load(path)
	assert.Nil(t, err)
	assert.Len(t, gene.Accounts, 1)
	assert.Equal(t, "42000", gene.Accounts[0].Balance)
	assert.Len(t, gene.Validators, 1)
	assert.Equal(t, uint64(777), gene.Validators[0].Stake)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildRejectsBadInput(t *testing.T) {
	stater, engine := newLedger(t)

	bad := &Genesis{Accounts: []Account{{Address: "BTC-xyz", Balance: "1"}}}
	assert.Error(t, bad.Build(stater, engine))

	dev := DevAccounts()
	bad = &Genesis{Accounts: []Account{{Address: dev[0].KeyPair.Address().String(), Balance: "not a number"}}}
	assert.Error(t, bad.Build(stater, engine))

	bad = &Genesis{Validators: []Validator{{Address: "nope", Stake: 1}}}
	assert.Error(t, bad.Build(stater, engine))
}
