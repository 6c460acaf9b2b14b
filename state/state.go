// Copyright (c) 2025 The ACTChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state implements the authoritative account ledger: balances,
// nonces, contract accounts, a short-lived read cache and persistence
// delegation to a kv store.
package state

import (
	"crypto/sha256"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/pkg/errors"

	"github.com/actchain/go-act/act"
	"github.com/actchain/go-act/cache"
	"github.com/actchain/go-act/kv"
	"github.com/actchain/go-act/log"
)

var logger = log.WithContext("pkg", "state")

// Persistence key namespaces. Any storage engine substituted behind the
// manager must honor get/put over these byte-string keys.
const (
	accountBucket kv.Bucket = "account_"
	codeBucket    kv.Bucket = "contract_code_"
	receiptBucket kv.Bucket = "receipt_"
)

const readCacheSize = 16384

var (
	errInsufficientBalance = errors.New("insufficient balance")
	errNegativeAmount      = errors.New("negative amount")
	errNoDeployer          = errors.New("deployer account not found")
)

// IsErrInsufficientBalance reports whether err is the insufficient
// balance rejection of Transfer.
func IsErrInsufficientBalance(err error) bool {
	return errors.Cause(err) == errInsufficientBalance
}

// Manager is the single source of truth for account balances and nonces.
//
// Reads of hot fields go through a TTL cache; every mutation removes the
// touched cache entries before returning, so a stale value can never be
// served past the TTL window even under invalidation races.
type Manager struct {
	lock     sync.RWMutex
	accounts map[act.Address]*Account

	accountStore kv.GetPutter
	codeStore    kv.GetPutter
	receiptStore kv.GetPutter

	receipts map[act.Hash]*Receipt

	balanceCache *cache.TTL
	nonceCache   *cache.TTL
}

// New creates a state manager on top of the given store.
// clock drives the read-cache TTL; pass mclock.System{} outside tests.
func New(store kv.GetPutter, clock mclock.Clock) *Manager {
	balanceCache, _ := cache.NewTTL(readCacheSize, act.StateCacheTTL, clock)
	nonceCache, _ := cache.NewTTL(readCacheSize, act.StateCacheTTL, clock)
	return &Manager{
		accounts:     make(map[act.Address]*Account),
		accountStore: accountBucket.NewGetPutter(store),
		codeStore:    codeBucket.NewGetPutter(store),
		receiptStore: receiptBucket.NewGetPutter(store),
		receipts:     make(map[act.Hash]*Receipt),
		balanceCache: balanceCache,
		nonceCache:   nonceCache,
	}
}

// GetAccount returns the account of the given address, or a fresh
// zero-value account if the address was never seen. The three-tier lookup
// is memory map, then durable store, then implicit zero account.
func (m *Manager) GetAccount(addr act.Address) (*Account, error) {
	m.lock.RLock()
	if acc, ok := m.accounts[addr]; ok {
		cpy := acc.Copy()
		m.lock.RUnlock()
		return cpy, nil
	}
	m.lock.RUnlock()

	m.lock.Lock()
	defer m.lock.Unlock()
	return m.loadOrCreateLocked(addr)
}

// loadOrCreateLocked resolves addr to a copy of its account, memoizing
// stored accounts in the memory map. Write lock must be held.
func (m *Manager) loadOrCreateLocked(addr act.Address) (*Account, error) {
	if acc, ok := m.accounts[addr]; ok {
		return acc.Copy(), nil
	}
	data, err := m.accountStore.Get([]byte(addr))
	if err != nil {
		if m.accountStore.IsNotFound(err) {
			return newAccount(addr), nil
		}
		return nil, errors.Wrap(err, "load account")
	}
	acc, err := decodeAccount(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	m.accounts[addr] = acc
	return acc.Copy(), nil
}

// readLocked resolves addr to a copy of its account without memoizing
// anything. Caller must hold at least the read lock.
func (m *Manager) readLocked(addr act.Address) (*Account, error) {
	if acc, ok := m.accounts[addr]; ok {
		return acc.Copy(), nil
	}
	data, err := m.accountStore.Get([]byte(addr))
	if err != nil {
		if m.accountStore.IsNotFound(err) {
			return newAccount(addr), nil
		}
		return nil, errors.Wrap(err, "load account")
	}
	acc, err := decodeAccount(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	return acc, nil
}

// GetBalance returns the balance of the given address, served from the
// TTL cache when live. The fill on a miss happens under the read lock,
// so a concurrent write cannot slip between the load and the cache set.
func (m *Manager) GetBalance(addr act.Address) (*big.Int, error) {
	if v, ok := m.balanceCache.Get(addr); ok {
		return new(big.Int).Set(v.(*big.Int)), nil
	}
	m.lock.RLock()
	defer m.lock.RUnlock()
	acc, err := m.readLocked(addr)
	if err != nil {
		return nil, err
	}
	m.balanceCache.Set(addr, new(big.Int).Set(acc.Balance))
	return acc.Balance, nil
}

// GetNonce returns the nonce of the given address, served from the TTL
// cache when live.
func (m *Manager) GetNonce(addr act.Address) (uint64, error) {
	if v, ok := m.nonceCache.Get(addr); ok {
		return v.(uint64), nil
	}
	m.lock.RLock()
	defer m.lock.RUnlock()
	acc, err := m.readLocked(addr)
	if err != nil {
		return 0, err
	}
	m.nonceCache.Set(addr, acc.Nonce)
	return acc.Nonce, nil
}

// invalidate removes, not updates, the cache entries of the given
// addresses. Entries repopulate lazily on the next read. Callers mutating
// state invoke this before releasing the write lock, so a stale entry can
// never be resurrected by a racing reader.
func (m *Manager) invalidate(addrs ...act.Address) {
	for _, addr := range addrs {
		m.balanceCache.Remove(addr)
		m.nonceCache.Remove(addr)
	}
}

// Transfer moves amount from one account to the other. It fails without
// mutating anything if the sender balance is short. A self transfer is
// net zero.
func (m *Manager) Transfer(from, to act.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errNegativeAmount
	}

	m.lock.Lock()
	fromAcc, err := m.loadOrCreateLocked(from)
	if err != nil {
		m.lock.Unlock()
		return err
	}
	if fromAcc.Balance.Cmp(amount) < 0 {
		m.lock.Unlock()
		return errors.Wrapf(errInsufficientBalance, "has %v, needs %v", fromAcc.Balance, amount)
	}

	var toAcc *Account
	if to == from {
		toAcc = fromAcc // aliased, debit and credit cancel out
	} else {
		if toAcc, err = m.loadOrCreateLocked(to); err != nil {
			m.lock.Unlock()
			return err
		}
	}

	fromAcc.Balance.Sub(fromAcc.Balance, amount)
	toAcc.Balance.Add(toAcc.Balance, amount)

	m.accounts[from] = fromAcc
	m.accounts[to] = toAcc
	err = m.persistLocked(fromAcc, toAcc)
	m.invalidate(from, to)
	m.lock.Unlock()

	if err != nil {
		return err
	}

	logger.Debug("transfer", "from", from, "to", to, "amount", amount)
	return nil
}

// IncrementNonce bumps the nonce of the given account by exactly 1,
// creating the account if never seen.
func (m *Manager) IncrementNonce(addr act.Address) error {
	m.lock.Lock()
	acc, err := m.loadOrCreateLocked(addr)
	if err != nil {
		m.lock.Unlock()
		return err
	}
	acc.Nonce++
	m.accounts[addr] = acc
	err = m.persistLocked(acc)
	m.invalidate(addr)
	m.lock.Unlock()
	return err
}

// SetBalance overwrites the balance of the given account. Reserved for
// genesis allocation.
func (m *Manager) SetBalance(addr act.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return errNegativeAmount
	}

	m.lock.Lock()
	acc, err := m.loadOrCreateLocked(addr)
	if err != nil {
		m.lock.Unlock()
		return err
	}
	acc.Balance = new(big.Int).Set(balance)
	m.accounts[addr] = acc
	err = m.persistLocked(acc)
	m.invalidate(addr)
	m.lock.Unlock()
	return err
}

// DeployContract creates a contract account at the address derived from
// the deployer and its current nonce, and stores the code blob.
func (m *Manager) DeployContract(deployer act.Address, code []byte, initialBalance *big.Int) (act.Address, error) {
	if initialBalance.Sign() < 0 {
		return "", errNegativeAmount
	}

	m.lock.Lock()
	deployerAcc, ok := m.accounts[deployer]
	if !ok {
		m.lock.Unlock()
		return "", errNoDeployer
	}

	contractAddr := act.ContractAddress(deployer, deployerAcc.Nonce)
	codeHash := sha256.Sum256(code)

	contractAcc := &Account{
		Address:  contractAddr,
		Balance:  new(big.Int).Set(initialBalance),
		CodeHash: codeHash[:],
	}
	m.accounts[contractAddr] = contractAcc

	err := m.persistLocked(contractAcc)
	if err == nil {
		err = m.codeStore.Put([]byte(contractAddr), code)
	}
	m.invalidate(contractAddr)
	m.lock.Unlock()

	if err != nil {
		return "", err
	}

	logger.Info("contract deployed", "address", contractAddr, "deployer", deployer)
	return contractAddr, nil
}

// GetCode returns the code blob of a contract account, or nil if none.
func (m *Manager) GetCode(contract act.Address) ([]byte, error) {
	data, err := m.codeStore.Get([]byte(contract))
	if err != nil {
		if m.codeStore.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load contract code")
	}
	return data, nil
}

// StateRoot computes a content hash over the sorted multiset of all
// per-account digests. Sorting makes it independent of iteration order.
func (m *Manager) StateRoot() (act.Hash, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	digests := make([][]byte, 0, len(m.accounts))
	for _, acc := range m.accounts {
		data, err := encodeAccount(acc)
		if err != nil {
			return act.Hash{}, errors.Wrap(err, "encode account")
		}
		digest := sha256.Sum256(data)
		digests = append(digests, digest[:])
	}

	sort.Slice(digests, func(i, j int) bool {
		return string(digests[i]) < string(digests[j])
	})

	hw := sha256.New()
	for _, d := range digests {
		hw.Write(d)
	}

	var root act.Hash
	hw.Sum(root[:0])
	return root, nil
}

// TotalSupply sums all in-memory account balances.
func (m *Manager) TotalSupply() *big.Int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	total := new(big.Int)
	for _, acc := range m.accounts {
		total.Add(total, acc.Balance)
	}
	return total
}

// persistLocked saves accounts to the durable store. Lock must be held.
func (m *Manager) persistLocked(accs ...*Account) error {
	for _, acc := range accs {
		data, err := encodeAccount(acc)
		if err != nil {
			return errors.Wrap(err, "encode account")
		}
		if err := m.accountStore.Put([]byte(acc.Address), data); err != nil {
			return errors.Wrap(err, "save account")
		}
	}
	return nil
}
