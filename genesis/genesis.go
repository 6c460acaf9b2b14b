// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial ledger and validator set.
package genesis

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/consensus"
	"github.com/actchain/go-act/log"
	"github.com/actchain/go-act/state"
)

var logger = log.WithContext("pkg", "genesis")

// Account a pre-funded account. Balance is a decimal string in the
// smallest unit.
type Account struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// Validator an initial consensus participant.
type Validator struct {
	Address    string `yaml:"address"`
	Stake      uint64 `yaml:"stake"`
	Commission uint8  `yaml:"commission"`
}

// Genesis the chain's initial allocation.
type Genesis struct {
	Accounts   []Account   `yaml:"accounts"`
	Validators []Validator `yaml:"validators"`
}

// Load reads a genesis allocation from a YAML file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gene Genesis
	if err := yaml.Unmarshal(data, &gene); err != nil {
		return nil, errors.Wrap(err, "parse genesis file")
	}
	return &gene, nil
}

// Build funds the genesis accounts and registers the initial validators.
func (g *Genesis) Build(stater *state.Manager, engine *consensus.Engine) error {
	for _, acc := range g.Accounts {
		addr, err := act.ParseAddress(acc.Address)
		if err != nil {
			return errors.Wrapf(err, "genesis account %q", acc.Address)
		}
		balance, ok := new(big.Int).SetString(acc.Balance, 10)
		if !ok || balance.Sign() < 0 {
			return errors.Errorf("invalid genesis balance %q", acc.Balance)
		}
		if err := stater.SetBalance(addr, balance); err != nil {
			return err
		}
		logger.Info("genesis account created", "address", addr, "balance", balance)
	}

	for _, val := range g.Validators {
		addr, err := act.ParseAddress(val.Address)
		if err != nil {
			return errors.Wrapf(err, "genesis validator %q", val.Address)
		}
		engine.AddValidator(consensus.Validator{
			Address:        addr,
			Stake:          val.Stake,
			CommissionRate: val.Commission,
			Active:         true,
		})
		logger.Info("genesis validator registered", "address", addr, "stake", val.Stake)
	}
	return nil
}
