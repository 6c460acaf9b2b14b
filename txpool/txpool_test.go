// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/stretchr/testify/assert"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/cry"
	"github.com/actchain/go-act/kv"
	"github.com/actchain/go-act/state"
	"github.com/actchain/go-act/tx"
)

func newTestPool(t *testing.T, limit int) (*TxPool, *state.Manager) {
	db, err := kv.NewMem()
	assert.Nil(t, err)
	stater := state.New(db, new(mclock.Simulated))
	pool := New(stater, Options{Limit: limit})
	t.Cleanup(pool.Close)
	return pool, stater
}

func fundedKeyPair(t *testing.T, stater *state.Manager, balance int64) *cry.KeyPair {
	kp, err := cry.GenerateKeyPair()
	assert.Nil(t, err)
	assert.Nil(t, stater.SetBalance(kp.Address(), big.NewInt(balance)))
	return kp
}

func signedTransfer(kp *cry.KeyPair, nonce uint64, gasPrice int64) *tx.Transaction {
	trx := new(tx.Builder).
		From(kp.Address()).
		Nonce(nonce).
		Transfer(act.AddressFromPubKey([]byte("recipient")), big.NewInt(1)).
		GasLimit(act.MinGasLimit).
		GasPrice(big.NewInt(gasPrice)).
		Build()
	return trx.WithSignature(cry.Sign(trx, kp), kp.PublicKey())
}

func TestAddAndGet(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000)

	trx := signedTransfer(kp, 0, 1)
	hash, err := pool.Add(trx)
	assert.Nil(t, err)
	assert.Equal(t, trx.Hash(), hash)
	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, trx, pool.Get(hash))

	assert.True(t, pool.Remove(hash))
	assert.False(t, pool.Remove(hash))
	assert.Nil(t, pool.Get(hash))
}

func TestAddDuplicate(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000)

	trx := signedTransfer(kp, 0, 1)
	_, err := pool.Add(trx)
	assert.Nil(t, err)

	_, err = pool.Add(trx)
	assert.True(t, IsErrKnownTx(err))
	assert.Equal(t, 1, pool.Len())
}

func TestAddPoolFull(t *testing.T) {
	pool, stater := newTestPool(t, 2)
	kp := fundedKeyPair(t, stater, 1_000_000)

	for nonce := uint64(0); nonce < 2; nonce++ {
		_, err := pool.Add(signedTransfer(kp, nonce, 1))
		assert.Nil(t, err)
	}
	_, err := pool.Add(signedTransfer(kp, 2, 1))
	assert.True(t, IsErrPoolFull(err))
}

func TestAddConcurrentHonorsLimit(t *testing.T) {
	const limit = 4
	pool, stater := newTestPool(t, limit)
	kp := fundedKeyPair(t, stater, 1_000_000_000)

	txs := make(tx.Transactions, limit*2)
	for i := range txs {
		txs[i] = signedTransfer(kp, uint64(i), 1)
	}

	errs := make(chan error, len(txs))
	var wg sync.WaitGroup
	for _, trx := range txs {
		wg.Add(1)
		go func(trx *tx.Transaction) {
			defer wg.Done()
			_, err := pool.Add(trx)
			errs <- err
		}(trx)
	}
	wg.Wait()
	close(errs)

	admitted := 0
	for err := range errs {
		if err == nil {
			admitted++
		} else {
			assert.True(t, IsErrPoolFull(err))
		}
	}
	assert.Equal(t, limit, admitted)
	assert.Equal(t, limit, pool.Len())
}

func TestAddBadSignature(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000)
	other, _ := cry.GenerateKeyPair()

	unsigned := new(tx.Builder).
		From(kp.Address()).
		Nonce(0).
		Transfer(act.AddressFromPubKey([]byte("r")), big.NewInt(1)).
		GasLimit(act.MinGasLimit).
		GasPrice(big.NewInt(1)).
		Build()

	_, err := pool.Add(unsigned)
	assert.True(t, IsErrBadSignature(err))

	// signed by a key that does not resolve to the claimed sender
	forged := unsigned.WithSignature(cry.Sign(unsigned, other), other.PublicKey())
	_, err = pool.Add(forged)
	assert.True(t, IsErrBadSignature(err))

	// signature over a different digest
	tampered := unsigned.WithSignature(other.Sign(act.HashSum([]byte("x"))), kp.PublicKey())
	_, err = pool.Add(tampered)
	assert.True(t, IsErrBadSignature(err))
}

func TestAddNonceWindow(t *testing.T) {
	pool, stater := newTestPool(t, 200)
	kp := fundedKeyPair(t, stater, 100_000_000)

	assert.Nil(t, stater.IncrementNonce(kp.Address()))
	assert.Nil(t, stater.IncrementNonce(kp.Address()))

	_, err := pool.Add(signedTransfer(kp, 1, 1))
	assert.True(t, IsErrNonceTooLow(err))

	_, err = pool.Add(signedTransfer(kp, 2, 1))
	assert.Nil(t, err)

	// the far edge of the window is still acceptable
	_, err = pool.Add(signedTransfer(kp, 2+act.NonceWindow, 1))
	assert.Nil(t, err)

	_, err = pool.Add(signedTransfer(kp, 3+act.NonceWindow, 1))
	assert.True(t, IsErrNonceTooHigh(err))
}

func TestAddInsufficientBalance(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	// covers the transfer value but not value plus gas
	kp := fundedKeyPair(t, stater, 100)

	_, err := pool.Add(signedTransfer(kp, 0, 1))
	assert.True(t, IsErrInsufficientBalance(err))
	assert.Equal(t, 0, pool.Len())
}

func TestAddGasLimitOutOfRange(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000_000_000)

	build := func(gasLimit uint64) *tx.Transaction {
		trx := new(tx.Builder).
			From(kp.Address()).
			Nonce(0).
			Transfer(act.AddressFromPubKey([]byte("r")), big.NewInt(1)).
			GasLimit(gasLimit).
			GasPrice(big.NewInt(1)).
			Build()
		return trx.WithSignature(cry.Sign(trx, kp), kp.PublicKey())
	}

	_, err := pool.Add(build(act.MinGasLimit - 1))
	assert.True(t, IsErrGasLimitOutOfRange(err))

	_, err = pool.Add(build(act.MaxGasLimit + 1))
	assert.True(t, IsErrGasLimitOutOfRange(err))

	_, err = pool.Add(build(act.MaxGasLimit))
	assert.Nil(t, err)
}

func TestSubscribeTxEvent(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000)

	ch := make(chan *TxEvent, 1)
	sub := pool.SubscribeTxEvent(ch)
	defer sub.Unsubscribe()

	trx := signedTransfer(kp, 0, 1)
	_, err := pool.Add(trx)
	assert.Nil(t, err)

	ev := <-ch
	assert.Equal(t, trx, ev.Tx)
}

func TestExecutablesOrdering(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	cheap := fundedKeyPair(t, stater, 1_000_000)
	rich := fundedKeyPair(t, stater, 1_000_000_000)

	txCheap := signedTransfer(cheap, 0, 1)
	txRich := signedTransfer(rich, 0, 10)

	_, err := pool.Add(txCheap)
	assert.Nil(t, err)
	_, err = pool.Add(txRich)
	assert.Nil(t, err)

	execs := pool.Executables(10)
	assert.Equal(t, tx.Transactions{txRich, txCheap}, execs)

	// max caps the selection at the highest-paying txs
	execs = pool.Executables(1)
	assert.Equal(t, tx.Transactions{txRich}, execs)
}

func TestExecutablesNonceCausality(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000_000)

	tx0 := signedTransfer(kp, 0, 1)
	tx1 := signedTransfer(kp, 1, 100)
	_, err := pool.Add(tx0)
	assert.Nil(t, err)
	_, err = pool.Add(tx1)
	assert.Nil(t, err)

	// only the tx matching the current on-chain nonce is executable,
	// regardless of gas price
	execs := pool.Executables(10)
	assert.Equal(t, tx.Transactions{tx0}, execs)

	// once the chain advances, the successor becomes executable
	assert.Nil(t, stater.IncrementNonce(kp.Address()))
	assert.True(t, pool.Remove(tx0.Hash()))
	execs = pool.Executables(10)
	assert.Equal(t, tx.Transactions{tx1}, execs)
}

func TestPendingBySender(t *testing.T) {
	pool, stater := newTestPool(t, 10)
	kp := fundedKeyPair(t, stater, 1_000_000_000)

	tx0 := signedTransfer(kp, 0, 5)
	tx1 := signedTransfer(kp, 1, 9)
	_, err := pool.Add(tx0)
	assert.Nil(t, err)
	_, err = pool.Add(tx1)
	assert.Nil(t, err)

	// submission order, not gas price order
	assert.Equal(t, tx.Transactions{tx0, tx1}, pool.PendingBySender(kp.Address()))
	assert.Empty(t, pool.PendingBySender(act.AddressFromPubKey([]byte("nobody"))))
}

func TestGetStats(t *testing.T) {
	pool, stater := newTestPool(t, 10)

	stats := pool.GetStats()
	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 0, stats.Senders)
	assert.Equal(t, new(big.Int), stats.MeanGasPrice)

	a := fundedKeyPair(t, stater, 1_000_000_000)
	b := fundedKeyPair(t, stater, 1_000_000_000)

	_, err := pool.Add(signedTransfer(a, 0, 10))
	assert.Nil(t, err)
	_, err = pool.Add(signedTransfer(a, 1, 20))
	assert.Nil(t, err)
	_, err = pool.Add(signedTransfer(b, 0, 30))
	assert.Nil(t, err)

	stats = pool.GetStats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2, stats.Senders)
	assert.Equal(t, big.NewInt(20), stats.MeanGasPrice)
}
