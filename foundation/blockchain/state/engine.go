package state

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// dispatch runs one transaction's full validate-and-apply path against s:
// signature verification, then preprocess, then apply. It never mutates s
// unless every step succeeds.
func dispatch(s *Snapshot, cfg config.Config, height uint64, stx transaction.SignedTx) error {
	if err := stx.Verify(cfg); err != nil {
		return err
	}

	tx := stx.Data
	if err := tx.Payload.Preprocess(s, tx, height); err != nil {
		return err
	}

	return tx.Payload.Apply(s, tx, height)
}

// ApplyBlock folds txs through dispatch against a clone of state, in order.
// The first failure aborts the whole block: s is left untouched and
// ApplyBlock returns a nil snapshot with an *InvalidBlockError identifying
// which transaction failed and why. On success it sweeps expired oracle and interaction records,
// matures any locked funds that have reached height, and returns the new
// snapshot with its accounts root already committed.
func ApplyBlock(s *Snapshot, cfg config.Config, height uint64, txs []transaction.SignedTx) (*Snapshot, error) {
	next := s.Clone()

	for i, stx := range txs {
		if err := dispatch(next, cfg, height, stx); err != nil {
			return nil, &transaction.InvalidBlockError{Index: i, Cause: err}
		}
	}

	expireOracles(next, height)
	expireInteractions(next, height)
	matureLocked(next, height)

	// Forces the accounts trie to rebalance now, so the root returned to
	// the caller is already materialized rather than deferred to the
	// first lookup against next.
	next.AccountsRoot()

	return next, nil
}

// FilterValid folds txs through the same dispatch as ApplyBlock, but a
// failing transaction is skipped rather than aborting the batch: the
// threaded state after a skip is the pre-tx state, so a later transaction's
// preconditions are evaluated exactly as if the skipped one had never been
// offered. The returned slice preserves the relative order of the surviving
// subsequence. The input snapshot is never mutated; the state threaded
// through acceptance/skip decisions lives entirely in a private clone.
func FilterValid(s *Snapshot, cfg config.Config, height uint64, txs []transaction.SignedTx) []transaction.SignedTx {
	working := s.Clone()

	var accepted []transaction.SignedTx
	for _, stx := range txs {
		trial := working.Clone()
		if err := dispatch(trial, cfg, height, stx); err != nil {
			continue
		}

		working = trial
		accepted = append(accepted, stx)
	}

	return accepted
}
