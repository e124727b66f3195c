// Package mempool maintains the pool of candidate transactions waiting to
// be picked for the next block.
package mempool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/mempool/selector"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// ErrFeeTooLow is returned by Upsert when a transaction's fee does not
// clear the pool's role=pool minimum for its wire size.
var ErrFeeTooLow = errors.New("fee below pool minimum")

// Mempool represents a cache of transactions organized by account, keyed
// by account:nonce so a resubmission with the same nonce replaces rather
// than duplicates.
type Mempool struct {
	cfg      config.Config
	pool     map[string]transaction.SignedTx
	mu       sync.RWMutex
	selectFn selector.Func
}

// New constructs a new mempool using the default select strategy. cfg
// supplies the min_fee schedule Upsert and PickBest admit transactions
// under.
func New(cfg config.Config) (*Mempool, error) {
	return NewWithStrategy(cfg, selector.StrategyTip)
}

// NewWithStrategy constructs a new mempool with the specified select
// strategy.
func NewWithStrategy(cfg config.Config, strategy string) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	mp := Mempool{
		cfg:      cfg,
		pool:     make(map[string]transaction.SignedTx),
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert admits a transaction into the pool, replacing any transaction
// already occupying its account:nonce slot. It is the min_fee admission
// gate: a transaction whose fee falls below the role=pool floor for its
// wire size is rejected with ErrFeeTooLow and never enters the pool.
func (mp *Mempool) Upsert(stx transaction.SignedTx) (int, error) {
	size, err := stx.Size()
	if err != nil {
		return mp.Count(), err
	}

	if min := stx.Data.MinFee(size, transaction.RolePool, mp.cfg); stx.Data.Fee < min {
		return mp.Count(), fmt.Errorf("%w: fee %d, need at least %d", ErrFeeTooLow, stx.Data.Fee, min)
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[mapKey(stx)] = stx

	return len(mp.pool), nil
}

// Delete removes a transaction from the pool.
func (mp *Mempool) Delete(stx transaction.SignedTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, mapKey(stx))
}

// Truncate clears every transaction from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]transaction.SignedTx)
}

// PickBest uses the configured select strategy to return the next set of
// candidate transactions for block assembly. Passing -1 returns every
// transaction in the pool, in the strategy's ordering.
//
// A transaction admitted at the pool's role=pool floor is re-checked here
// against the stricter role=miner floor: bytes_per_token differs by role,
// so a candidate that cleared Upsert can still be too thin a fee for a
// miner to bother including.
func (mp *Mempool) PickBest(howMany int) []transaction.SignedTx {
	m := make(map[database.AccountID][]transaction.SignedTx)

	mp.mu.RLock()
	{
		if howMany == -1 {
			howMany = len(mp.pool)
		}

		for _, stx := range mp.pool {
			size, err := stx.Size()
			if err != nil {
				continue
			}
			if stx.Data.Fee < stx.Data.MinFee(size, transaction.RoleMiner, mp.cfg) {
				continue
			}

			m[stx.Data.Sender] = append(m[stx.Data.Sender], stx)
		}
	}
	mp.mu.RUnlock()

	return mp.selectFn(m, howMany)
}

// EstimatePayout previews the balance a miner account would carry after
// the block reward, without going through the engine's dispatch path. A
// miner uses this to rank candidate blocks by projected payout (reward
// plus the aggregate fee of the transactions PickBest selected) before
// committing to mining one.
func EstimatePayout(acc database.Account, reward transaction.Rewarder, picked []transaction.SignedTx) database.Account {
	acc = reward.Reward(acc)

	var fees uint64
	for _, stx := range picked {
		fees += stx.Data.Fee
	}

	return database.Credit(acc, fees)
}

// =============================================================================

// mapKey generates the pool's map key: the sender and nonce, which
// together identify a transaction's slot regardless of its payload.
func mapKey(stx transaction.SignedTx) string {
	return fmt.Sprintf("%s:%d", stx.Data.Sender, stx.Data.Nonce)
}
