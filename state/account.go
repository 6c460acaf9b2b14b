// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/actchain/go-act/act"
)

// Account the ledger entry of an address.
// Accounts are created lazily on first reference and never deleted.
// An account carrying a code hash is a contract account.
type Account struct {
	Address     act.Address
	Balance     *big.Int
	Nonce       uint64
	CodeHash    []byte // empty for externally owned accounts
	StorageRoot []byte
}

func newAccount(addr act.Address) *Account {
	return &Account{
		Address: addr,
		Balance: new(big.Int),
	}
}

// IsContract returns whether the account holds contract code.
func (a *Account) IsContract() bool {
	return len(a.CodeHash) > 0
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cpy := *a
	cpy.Balance = new(big.Int).Set(a.Balance)
	cpy.CodeHash = append([]byte(nil), a.CodeHash...)
	cpy.StorageRoot = append([]byte(nil), a.StorageRoot...)
	return &cpy
}

// used for persistence and for the per-account digest feeding the state root.
type accountRLP struct {
	Address     string
	Balance     *big.Int
	Nonce       uint64
	CodeHash    []byte
	StorageRoot []byte
}

func encodeAccount(a *Account) ([]byte, error) {
	return rlp.EncodeToBytes(&accountRLP{
		Address:     string(a.Address),
		Balance:     a.Balance,
		Nonce:       a.Nonce,
		CodeHash:    a.CodeHash,
		StorageRoot: a.StorageRoot,
	})
}

func decodeAccount(data []byte) (*Account, error) {
	var enc accountRLP
	if err := rlp.DecodeBytes(data, &enc); err != nil {
		return nil, err
	}
	return &Account{
		Address:     act.Address(enc.Address),
		Balance:     enc.Balance,
		Nonce:       enc.Nonce,
		CodeHash:    enc.CodeHash,
		StorageRoot: enc.StorageRoot,
	}, nil
}
