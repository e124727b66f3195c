package transaction_test

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

func configForTest() config.Config {
	return config.Default()
}

// memLedger is a minimal, map-backed transaction.Ledger used to exercise
// variants without pulling in the full chain-state engine.
type memLedger struct {
	accounts  map[database.AccountID]database.Account
	oracles   map[database.AccountID]transaction.OracleRecord
	interacts map[[32]byte]transaction.Interaction
	preclaims map[[32]byte]transaction.PreClaim
	claims    map[[32]byte]transaction.Claim
}

func newMemLedger() *memLedger {
	return &memLedger{
		accounts:  make(map[database.AccountID]database.Account),
		oracles:   make(map[database.AccountID]transaction.OracleRecord),
		interacts: make(map[[32]byte]transaction.Interaction),
		preclaims: make(map[[32]byte]transaction.PreClaim),
		claims:    make(map[[32]byte]transaction.Claim),
	}
}

func (l *memLedger) Account(id database.AccountID) database.Account {
	if acc, ok := l.accounts[id]; ok {
		return acc
	}
	return database.Empty(id)
}

func (l *memLedger) PutAccount(acc database.Account) {
	l.accounts[acc.AccountID] = acc
}

func (l *memLedger) RegisteredOracle(id database.AccountID) (transaction.OracleRecord, bool) {
	rec, ok := l.oracles[id]
	return rec, ok
}

func (l *memLedger) PutRegisteredOracle(rec transaction.OracleRecord) {
	l.oracles[rec.Owner] = rec
}

func (l *memLedger) DeleteRegisteredOracle(id database.AccountID) {
	delete(l.oracles, id)
}

func (l *memLedger) Interaction(queryID [32]byte) (transaction.Interaction, bool) {
	it, ok := l.interacts[queryID]
	return it, ok
}

func (l *memLedger) PutInteraction(it transaction.Interaction) {
	l.interacts[it.QueryID] = it
}

func (l *memLedger) DeleteInteraction(queryID [32]byte) {
	delete(l.interacts, queryID)
}

func (l *memLedger) PreClaim(commitment [32]byte) (transaction.PreClaim, bool) {
	pc, ok := l.preclaims[commitment]
	return pc, ok
}

func (l *memLedger) PutPreClaim(pc transaction.PreClaim) {
	l.preclaims[pc.Commitment] = pc
}

func (l *memLedger) DeletePreClaim(commitment [32]byte) {
	delete(l.preclaims, commitment)
}

func (l *memLedger) Claim(nameHash [32]byte) (transaction.Claim, bool) {
	c, ok := l.claims[nameHash]
	return c, ok
}

func (l *memLedger) PutClaim(c transaction.Claim) {
	l.claims[c.NameHash] = c
}

func (l *memLedger) DeleteClaim(nameHash [32]byte) {
	delete(l.claims, nameHash)
}

var _ transaction.Ledger = (*memLedger)(nil)
