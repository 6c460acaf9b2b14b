// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/actchain/go-act/act"
)

// Kind tags the transaction variant. The set of kinds is closed; every
// switch over Kind at the block-application boundary must be exhaustive.
type Kind uint8

// Transaction kinds.
const (
	KindTransfer Kind = iota
	KindContractDeploy
	KindContractCall
	KindEthereumLegacy
)

func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindContractDeploy:
		return "contract-deploy"
	case KindContractCall:
		return "contract-call"
	case KindEthereumLegacy:
		return "ethereum-legacy"
	}
	return "unknown"
}

// Transaction is an immutable tx type.
// Its hash, the hex form of sha256 over the canonical RLP encoding of the
// whole body, is the transaction's identity everywhere: mempool key,
// receipt key and RPC lookup key.
type Transaction struct {
	body body

	cache struct {
		hash        *act.Hash
		signingHash *act.Hash
	}
}

// body describes details of a tx. Kind decides which of the optional
// fields carry meaning; unused ones stay at their zero value so that the
// canonical encoding is reproducible bit-for-bit by any client.
type body struct {
	From      string
	Nonce     uint64
	Kind      uint8
	To        string   // transfer recipient, or callee contract
	Amount    *big.Int // transfer value
	Code      []byte   // contract deploy bytecode
	InitData  []byte   // contract deploy constructor data
	Method    string   // contract call method
	Args      []byte   // contract call arguments
	Data      []byte   // ethereum legacy payload
	GasLimit  uint64
	GasPrice  *big.Int
	Signature []byte
	PubKey    []byte
}

// Hash returns the full hash of the tx.
func (t *Transaction) Hash() act.Hash {
	if cached := t.cache.hash; cached != nil {
		return *cached
	}

	hw := sha256.New()
	rlp.Encode(hw, &t.body)

	var h act.Hash
	hw.Sum(h[:0])
	t.cache.hash = &h
	return h
}

// SigningHash returns the digest a signature must cover. It binds
// (from, nonce, kind and payload, gas limit, gas price) and excludes the
// signature and public key themselves.
func (t *Transaction) SigningHash() act.Hash {
	if cached := t.cache.signingHash; cached != nil {
		return *cached
	}

	hw := sha256.New()
	rlp.Encode(hw, []any{
		t.body.From,
		t.body.Nonce,
		t.body.Kind,
		t.body.To,
		t.body.Amount,
		t.body.Code,
		t.body.InitData,
		t.body.Method,
		t.body.Args,
		t.body.Data,
		t.body.GasLimit,
		t.body.GasPrice,
	})

	var h act.Hash
	hw.Sum(h[:0])
	t.cache.signingHash = &h
	return h
}

// From returns the sender address.
func (t *Transaction) From() act.Address {
	return act.Address(t.body.From)
}

// Nonce returns the account nonce the tx was built against.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Kind returns the transaction kind.
func (t *Transaction) Kind() Kind {
	return Kind(t.body.Kind)
}

// GasLimit returns the gas provision for this tx.
func (t *Transaction) GasLimit() uint64 {
	return t.body.GasLimit
}

// GasPrice returns the gas price.
func (t *Transaction) GasPrice() *big.Int {
	return new(big.Int).Set(t.body.GasPrice)
}

// Signature returns the signature.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Signature...)
}

// PubKey returns the signer's public key.
func (t *Transaction) PubKey() []byte {
	return append([]byte(nil), t.body.PubKey...)
}

// Transfer returns the transfer payload. ok is false for other kinds.
func (t *Transaction) Transfer() (to act.Address, amount *big.Int, ok bool) {
	if t.Kind() != KindTransfer {
		return "", nil, false
	}
	return act.Address(t.body.To), new(big.Int).Set(t.body.Amount), true
}

// Deploy returns the contract-deploy payload. ok is false for other kinds.
func (t *Transaction) Deploy() (code, initData []byte, ok bool) {
	if t.Kind() != KindContractDeploy {
		return nil, nil, false
	}
	return append([]byte(nil), t.body.Code...), append([]byte(nil), t.body.InitData...), true
}

// Call returns the contract-call payload. ok is false for other kinds.
func (t *Transaction) Call() (contract act.Address, method string, args []byte, ok bool) {
	if t.Kind() != KindContractCall {
		return "", "", nil, false
	}
	return act.Address(t.body.To), t.body.Method, append([]byte(nil), t.body.Args...), true
}

// LegacyData returns the ethereum-legacy payload. ok is false for other kinds.
func (t *Transaction) LegacyData() (data []byte, ok bool) {
	if t.Kind() != KindEthereumLegacy {
		return nil, false
	}
	return append([]byte(nil), t.body.Data...), true
}

// Cost returns the total amount the sender must be able to pay:
// gasLimit × gasPrice, plus the transferred amount for transfer txs.
func (t *Transaction) Cost() *big.Int {
	cost := new(big.Int).SetUint64(t.body.GasLimit)
	cost.Mul(cost, t.body.GasPrice)
	if t.Kind() == KindTransfer {
		cost.Add(cost, t.body.Amount)
	}
	return cost
}

// IntrinsicGas returns the minimal gas consumed by the tx kind and its
// payload size.
func (t *Transaction) IntrinsicGas() uint64 {
	switch t.Kind() {
	case KindTransfer:
		return act.TransferGas
	case KindContractDeploy:
		return act.ContractDeployGas + uint64(len(t.body.Code))*act.DeployGasPerByte
	case KindContractCall:
		return act.ContractCallGas + uint64(len(t.body.Args))*act.CallGasPerByte
	case KindEthereumLegacy:
		return act.TransferGas + uint64(len(t.body.Data))*act.LegacyGasPerByte
	}
	return act.TransferGas
}

// WithSignature creates a new tx with signature and signer public key set.
func (t *Transaction) WithSignature(sig, pubKey []byte) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.body.Signature = append([]byte(nil), sig...)
	newTx.body.PubKey = append([]byte(nil), pubKey...)
	return &newTx
}

// EncodeRLP implements rlp.Encoder.
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var b body
	if err := s.Decode(&b); err != nil {
		return err
	}
	*t = Transaction{body: b}
	return nil
}

// Transactions a slice of transactions.
type Transactions []*Transaction
