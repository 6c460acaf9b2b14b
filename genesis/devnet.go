// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/hex"
	"sync/atomic"

	"github.com/actchain/go-act/cry"
)

// DevAccount account for development.
type DevAccount struct {
	KeyPair *cry.KeyPair
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode, derived from
// well-known seeds. Never fund these on a real network.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	seeds := []string{
		"7d4a1f5cbf86a2f8f49143cb0b4021efeee34bfbf135f0496fbc839e06bbd838",
		"65a697bd19f0e55d14bb103db2a527a23f5373e86598a06b3c642561b1ee4fdb",
		"1e12e57c99b42a2b1b7ee17e87b3f0a1c0bfc2f1ef05e1bcb0dcbabd73b4f6a7",
		"3f8caf49d2efc971388c5424a4bd7d64194f7b40f3ad97c4c28e138e60b2be26",
		"d8612dba92c0df118936d3d3ebf9056c8a3b3bb5d1f0ef2ba944e65f029d6a4d",
		"0b13827649cb7b51bbedc6aea34dd9bcd868ea259f4d7a8ee645da2096236b11",
	}

	accs := make([]DevAccount, 0, len(seeds))
	for _, s := range seeds {
		seed, err := hex.DecodeString(s)
		if err != nil {
			panic(err)
		}
		kp, err := cry.NewKeyPairFromSeed(seed)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{KeyPair: kp})
	}

	devAccounts.Store(accs)
	return accs
}

// NewDevnet builds a genesis allocation funding the dev accounts and
// registering the first three as equal-stake validators.
func NewDevnet() *Genesis {
	var gene Genesis
	for i, acc := range DevAccounts() {
		gene.Accounts = append(gene.Accounts, Account{
			Address: acc.KeyPair.Address().String(),
			Balance: "1000000000000000000000000", // 1M ACT
		})
		if i < 3 {
			gene.Validators = append(gene.Validators, Validator{
				Address:    acc.KeyPair.Address().String(),
				Stake:      100_000,
				Commission: 10,
			})
		}
	}
	return &gene
}
