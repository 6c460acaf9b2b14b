// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"

	"github.com/actchain/go-act/act"
)

// Builder to make it easy to build a transaction.
type Builder struct {
	body body
}

// From sets the sender address.
func (b *Builder) From(addr act.Address) *Builder {
	b.body.From = string(addr)
	return b
}

// Nonce sets the account nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// GasLimit sets the gas provision.
func (b *Builder) GasLimit(gas uint64) *Builder {
	b.body.GasLimit = gas
	return b
}

// GasPrice sets the gas price.
func (b *Builder) GasPrice(price *big.Int) *Builder {
	b.body.GasPrice = new(big.Int).Set(price)
	return b
}

// Transfer makes the tx a plain value transfer.
func (b *Builder) Transfer(to act.Address, amount *big.Int) *Builder {
	b.body.Kind = uint8(KindTransfer)
	b.body.To = string(to)
	b.body.Amount = new(big.Int).Set(amount)
	return b
}

// Deploy makes the tx a contract deployment.
func (b *Builder) Deploy(code, initData []byte) *Builder {
	b.body.Kind = uint8(KindContractDeploy)
	b.body.Code = append([]byte(nil), code...)
	b.body.InitData = append([]byte(nil), initData...)
	return b
}

// Call makes the tx a contract call.
func (b *Builder) Call(contract act.Address, method string, args []byte) *Builder {
	b.body.Kind = uint8(KindContractCall)
	b.body.To = string(contract)
	b.body.Method = method
	b.body.Args = append([]byte(nil), args...)
	return b
}

// Legacy makes the tx an ethereum-legacy envelope.
func (b *Builder) Legacy(data []byte) *Builder {
	b.body.Kind = uint8(KindEthereumLegacy)
	b.body.Data = append([]byte(nil), data...)
	return b
}

// Build builds the tx object. Unset big-number fields default to zero so
// the canonical encoding never carries nils.
func (b *Builder) Build() *Transaction {
	body := b.body
	if body.Amount == nil {
		body.Amount = new(big.Int)
	}
	if body.GasPrice == nil {
		body.GasPrice = new(big.Int)
	}
	return &Transaction{body: body}
}
