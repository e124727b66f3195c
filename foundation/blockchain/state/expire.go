package state

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/merkle"
)

// expireOracles removes every registered oracle whose expiry has passed by
// height. Keys are collected under Fold's read lock first and deleted
// afterward, since Delete takes its own write lock.
func expireOracles(s *Snapshot, height uint64) {
	type expired struct {
		key merkle.Key
	}

	var stale []expired
	s.oracles.Fold(nil, func(key merkle.Key, value []byte, _ any) any {
		rec, err := decodeOracle(value)
		if err == nil && rec.ExpiryHeight < height {
			stale = append(stale, expired{key: key})
		}
		return nil
	})

	for _, e := range stale {
		s.oracles.Delete(e.key)
	}
}

// expireInteractions removes every interaction whose response window has
// closed by height, whether or not it was ever answered.
func expireInteractions(s *Snapshot, height uint64) {
	type expired struct {
		key merkle.Key
	}

	var stale []expired
	s.interacts.Fold(nil, func(key merkle.Key, value []byte, _ any) any {
		it, err := decodeInteraction(value)
		if err == nil && it.ResponseExpiry < height {
			stale = append(stale, expired{key: key})
		}
		return nil
	})

	for _, e := range stale {
		s.interacts.Delete(e.key)
	}
}

// matureLocked folds every account's matured locked-fund entries into its
// spendable balance. Accounts are collected under Fold's read lock first
// and reinserted afterward, mirroring expireOracles/expireInteractions.
func matureLocked(s *Snapshot, height uint64) {
	var updated []database.Account
	s.accounts.Fold(nil, func(_ merkle.Key, value []byte, _ any) any {
		acc, err := decodeAccount(value)
		if err != nil || len(acc.Locked) == 0 {
			return nil
		}

		matured := database.UpdateLocked(acc, height)
		if len(matured.Locked) != len(acc.Locked) {
			updated = append(updated, matured)
		}
		return nil
	})

	for _, acc := range updated {
		s.PutAccount(acc)
	}
}
