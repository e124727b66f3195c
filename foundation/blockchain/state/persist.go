package state

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/merkle"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/storage"
)

// Bucket names, one per trie, used to keep the five subtrees from
// colliding inside a single KV.
const (
	bucketAccounts     = "accounts"
	bucketOracles      = "oracles"
	bucketInteractions = "interactions"
	bucketPreClaims    = "preclaims"
	bucketClaims       = "claims"
)

// Persist writes every trie's (key, value) pairs to kv, one bucket per
// trie. Every pair is its own KV.Put, so with BoltKV each key is a
// separate bbolt write transaction: the writes are not atomic as a whole,
// and an error part-way leaves the keys written before it in place. Keys
// a trie no longer holds are not removed from its bucket. The accounts
// bucket is written last.
func (s *Snapshot) Persist(kv storage.KV) error {
	if err := s.oracles.Persist(kv, bucketOracles); err != nil {
		return err
	}
	if err := s.interacts.Persist(kv, bucketInteractions); err != nil {
		return err
	}
	if err := s.preclaims.Persist(kv, bucketPreClaims); err != nil {
		return err
	}
	if err := s.claims.Persist(kv, bucketClaims); err != nil {
		return err
	}
	return s.accounts.Persist(kv, bucketAccounts)
}

// Load rebuilds a snapshot from a KV previously populated by Persist.
func Load(kv storage.KV) (*Snapshot, error) {
	accounts, err := merkle.Load(kv, bucketAccounts)
	if err != nil {
		return nil, err
	}
	oracles, err := merkle.Load(kv, bucketOracles)
	if err != nil {
		return nil, err
	}
	interacts, err := merkle.Load(kv, bucketInteractions)
	if err != nil {
		return nil, err
	}
	preclaims, err := merkle.Load(kv, bucketPreClaims)
	if err != nil {
		return nil, err
	}
	claims, err := merkle.Load(kv, bucketClaims)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		accounts:  accounts,
		oracles:   oracles,
		interacts: interacts,
		preclaims: preclaims,
		claims:    claims,
	}, nil
}
