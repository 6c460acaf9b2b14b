// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/cry"
)

func newTransfer(kp *cry.KeyPair, to act.Address, amount int64, nonce uint64) *Transaction {
	trx := new(Builder).
		From(kp.Address()).
		Nonce(nonce).
		Transfer(to, big.NewInt(amount)).
		GasLimit(act.MinGasLimit).
		GasPrice(big.NewInt(1)).
		Build()
	return trx.WithSignature(cry.Sign(trx, kp), kp.PublicKey())
}

func TestTransferTx(t *testing.T) {
	kp, _ := cry.GenerateKeyPair()
	to := act.AddressFromPubKey([]byte("recipient"))

	trx := newTransfer(kp, to, 100, 7)

	assert.Equal(t, kp.Address(), trx.From())
	assert.Equal(t, uint64(7), trx.Nonce())
	assert.Equal(t, KindTransfer, trx.Kind())
	assert.Equal(t, uint64(act.MinGasLimit), trx.GasLimit())
	assert.Equal(t, big.NewInt(1), trx.GasPrice())

	gotTo, amount, ok := trx.Transfer()
	assert.True(t, ok)
	assert.Equal(t, to, gotTo)
	assert.Equal(t, big.NewInt(100), amount)

	_, _, ok = trx.Deploy()
	assert.False(t, ok)
	_, _, _, ok = trx.Call()
	assert.False(t, ok)
	_, ok = trx.LegacyData()
	assert.False(t, ok)
}

func TestSigningHashBindsFields(t *testing.T) {
	kp, _ := cry.GenerateKeyPair()
	to := act.AddressFromPubKey([]byte("recipient"))

	base := new(Builder).From(kp.Address()).Nonce(0).
		Transfer(to, big.NewInt(1)).GasLimit(act.MinGasLimit).GasPrice(big.NewInt(1)).Build()

	variants := []*Transaction{
		new(Builder).From(kp.Address()).Nonce(1).
			Transfer(to, big.NewInt(1)).GasLimit(act.MinGasLimit).GasPrice(big.NewInt(1)).Build(),
		new(Builder).From(kp.Address()).Nonce(0).
			Transfer(to, big.NewInt(2)).GasLimit(act.MinGasLimit).GasPrice(big.NewInt(1)).Build(),
		new(Builder).From(kp.Address()).Nonce(0).
			Transfer(to, big.NewInt(1)).GasLimit(act.MinGasLimit + 1).GasPrice(big.NewInt(1)).Build(),
		new(Builder).From(kp.Address()).Nonce(0).
			Transfer(to, big.NewInt(1)).GasLimit(act.MinGasLimit).GasPrice(big.NewInt(2)).Build(),
	}
	for _, v := range variants {
		assert.NotEqual(t, base.SigningHash(), v.SigningHash())
	}

	// the signature itself is excluded from the signing digest
	signed := base.WithSignature(cry.Sign(base, kp), kp.PublicKey())
	assert.Equal(t, base.SigningHash(), signed.SigningHash())
	// but included in the identity hash
	assert.NotEqual(t, base.Hash(), signed.Hash())
}

func TestHashStableAcrossEncoding(t *testing.T) {
	kp, _ := cry.GenerateKeyPair()
	trx := newTransfer(kp, act.AddressFromPubKey([]byte("r")), 5, 0)

	data, err := rlp.EncodeToBytes(trx)
	assert.Nil(t, err)

	var decoded Transaction
	assert.Nil(t, rlp.DecodeBytes(data, &decoded))

	assert.Equal(t, trx.Hash(), decoded.Hash())
	assert.Equal(t, trx.SigningHash(), decoded.SigningHash())
	assert.Equal(t, trx.From(), decoded.From())
	assert.True(t, cry.Verify(decoded.PubKey(), decoded.SigningHash(), decoded.Signature()))
}

func TestCost(t *testing.T) {
	kp, _ := cry.GenerateKeyPair()
	to := act.AddressFromPubKey([]byte("r"))

	transfer := new(Builder).From(kp.Address()).
		Transfer(to, big.NewInt(100)).GasLimit(21000).GasPrice(big.NewInt(2)).Build()
	assert.Equal(t, big.NewInt(42100), transfer.Cost())

	deploy := new(Builder).From(kp.Address()).
		Deploy([]byte{1, 2, 3}, nil).GasLimit(60000).GasPrice(big.NewInt(3)).Build()
	assert.Equal(t, big.NewInt(180000), deploy.Cost())
}

func TestIntrinsicGas(t *testing.T) {
	kp, _ := cry.GenerateKeyPair()
	to := act.AddressFromPubKey([]byte("r"))

	transfer := new(Builder).From(kp.Address()).Transfer(to, big.NewInt(1)).Build()
	assert.Equal(t, uint64(act.TransferGas), transfer.IntrinsicGas())

	deploy := new(Builder).From(kp.Address()).Deploy(make([]byte, 10), nil).Build()
	assert.Equal(t, uint64(act.ContractDeployGas+10*act.DeployGasPerByte), deploy.IntrinsicGas())

	call := new(Builder).From(kp.Address()).Call(to, "get", make([]byte, 4)).Build()
	assert.Equal(t, uint64(act.ContractCallGas+4*act.CallGasPerByte), call.IntrinsicGas())

	legacy := new(Builder).From(kp.Address()).Legacy(make([]byte, 8)).Build()
	assert.Equal(t, uint64(act.TransferGas+8*act.LegacyGasPerByte), legacy.IntrinsicGas())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transfer", KindTransfer.String())
	assert.Equal(t, "contract-deploy", KindContractDeploy.String())
	assert.Equal(t, "contract-call", KindContractCall.String())
	assert.Equal(t, "ethereum-legacy", KindEthereumLegacy.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
