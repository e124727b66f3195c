// Package state implements the Chain-State Engine: the component that
// folds a block's transactions through signature verification and
// per-variant dispatch to produce the next accounts root.
package state

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/merkle"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// Snapshot is a whole, immutable-once-returned view of chain state: the
// accounts trie and its sibling oracle, interaction, pre-claim, and claim
// subtrees. The engine is the only component that produces a new Snapshot;
// everything else only ever reads one or threads it through transaction.Ledger.
type Snapshot struct {
	accounts  *merkle.Tree
	oracles   *merkle.Tree
	interacts *merkle.Tree
	preclaims *merkle.Tree
	claims    *merkle.Tree
}

// New constructs the empty genesis snapshot.
func New() *Snapshot {
	return &Snapshot{
		accounts:  merkle.New(),
		oracles:   merkle.New(),
		interacts: merkle.New(),
		preclaims: merkle.New(),
		claims:    merkle.New(),
	}
}

// Clone returns a snapshot sharing no mutable state with the receiver. The
// engine clones before threading a block through dispatch so a failed block
// never leaves a partially-applied snapshot observable to callers.
func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		accounts:  s.accounts.Clone(),
		oracles:   s.oracles.Clone(),
		interacts: s.interacts.Clone(),
		preclaims: s.preclaims.Clone(),
		claims:    s.claims.Clone(),
	}
}

// AccountsRoot is the commitment the engine records at the end of
// apply_block.
func (s *Snapshot) AccountsRoot() [32]byte {
	return s.accounts.RootHash()
}

// OraclesRoot, InteractionsRoot, PreClaimsRoot, and ClaimsRoot expose the
// sibling subtree commitments alongside AccountsRoot.
func (s *Snapshot) OraclesRoot() [32]byte      { return s.oracles.RootHash() }
func (s *Snapshot) InteractionsRoot() [32]byte { return s.interacts.RootHash() }
func (s *Snapshot) PreClaimsRoot() [32]byte    { return s.preclaims.RootHash() }
func (s *Snapshot) ClaimsRoot() [32]byte       { return s.claims.RootHash() }

// =============================================================================
// transaction.Ledger implementation.

var _ transaction.Ledger = (*Snapshot)(nil)

// Account implements transaction.Ledger.
func (s *Snapshot) Account(id database.AccountID) database.Account {
	data, ok := s.accounts.Lookup(merkle.Key(id))
	if !ok {
		return database.Empty(id)
	}

	acc, err := decodeAccount(data)
	if err != nil {
		return database.Empty(id)
	}
	return acc
}

// PutAccount implements transaction.Ledger.
func (s *Snapshot) PutAccount(acc database.Account) {
	data, err := encodeAccount(acc)
	if err != nil {
		return
	}
	s.accounts.Insert(merkle.Key(acc.AccountID), data)
}

// RegisteredOracle implements transaction.Ledger.
func (s *Snapshot) RegisteredOracle(id database.AccountID) (transaction.OracleRecord, bool) {
	data, ok := s.oracles.Lookup(merkle.Key(id))
	if !ok {
		return transaction.OracleRecord{}, false
	}

	rec, err := decodeOracle(data)
	if err != nil {
		return transaction.OracleRecord{}, false
	}
	return rec, true
}

// PutRegisteredOracle implements transaction.Ledger.
func (s *Snapshot) PutRegisteredOracle(rec transaction.OracleRecord) {
	data, err := encodeOracle(rec)
	if err != nil {
		return
	}
	s.oracles.Insert(merkle.Key(rec.Owner), data)
}

// DeleteRegisteredOracle implements transaction.Ledger.
func (s *Snapshot) DeleteRegisteredOracle(id database.AccountID) {
	s.oracles.Delete(merkle.Key(id))
}

// Interaction implements transaction.Ledger.
func (s *Snapshot) Interaction(queryID [32]byte) (transaction.Interaction, bool) {
	data, ok := s.interacts.Lookup(merkle.Key(queryID))
	if !ok {
		return transaction.Interaction{}, false
	}

	it, err := decodeInteraction(data)
	if err != nil {
		return transaction.Interaction{}, false
	}
	return it, true
}

// PutInteraction implements transaction.Ledger.
func (s *Snapshot) PutInteraction(it transaction.Interaction) {
	data, err := encodeInteraction(it)
	if err != nil {
		return
	}
	s.interacts.Insert(merkle.Key(it.QueryID), data)
}

// DeleteInteraction implements transaction.Ledger.
func (s *Snapshot) DeleteInteraction(queryID [32]byte) {
	s.interacts.Delete(merkle.Key(queryID))
}

// PreClaim implements transaction.Ledger.
func (s *Snapshot) PreClaim(commitment [32]byte) (transaction.PreClaim, bool) {
	data, ok := s.preclaims.Lookup(merkle.Key(commitment))
	if !ok {
		return transaction.PreClaim{}, false
	}

	pc, err := decodePreClaim(data)
	if err != nil {
		return transaction.PreClaim{}, false
	}
	return pc, true
}

// PutPreClaim implements transaction.Ledger.
func (s *Snapshot) PutPreClaim(pc transaction.PreClaim) {
	data, err := encodePreClaim(pc)
	if err != nil {
		return
	}
	s.preclaims.Insert(merkle.Key(pc.Commitment), data)
}

// DeletePreClaim implements transaction.Ledger.
func (s *Snapshot) DeletePreClaim(commitment [32]byte) {
	s.preclaims.Delete(merkle.Key(commitment))
}

// Claim implements transaction.Ledger.
func (s *Snapshot) Claim(nameHash [32]byte) (transaction.Claim, bool) {
	data, ok := s.claims.Lookup(merkle.Key(nameHash))
	if !ok {
		return transaction.Claim{}, false
	}

	c, err := decodeClaim(data)
	if err != nil {
		return transaction.Claim{}, false
	}
	return c, true
}

// PutClaim implements transaction.Ledger.
func (s *Snapshot) PutClaim(c transaction.Claim) {
	data, err := encodeClaim(c)
	if err != nil {
		return
	}
	s.claims.Insert(merkle.Key(c.NameHash), data)
}

// DeleteClaim implements transaction.Ledger.
func (s *Snapshot) DeleteClaim(nameHash [32]byte) {
	s.claims.Delete(merkle.Key(nameHash))
}
