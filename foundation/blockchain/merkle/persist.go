package merkle

import (
	"encoding/hex"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/storage"
)

// Persist writes every (key, value) pair to bucket in kv, keyed by the
// hex encoding of the tree key. It does not touch keys already present in
// bucket that this tree no longer holds; such stale keys stay in the
// bucket unless the caller removes them with KV.Delete.
func (t *Tree) Persist(kv storage.KV, bucket string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.sortedKeysLocked() {
		if err := kv.Put(bucket, hex.EncodeToString(k[:]), t.entries[k]); err != nil {
			return err
		}
	}
	return nil
}

// Load rebuilds a tree from every (key, value) pair stored in bucket. It
// is the counterpart to Persist, used to warm a snapshot's tries from
// disk at node startup.
func Load(kv storage.KV, bucket string) (*Tree, error) {
	t := New()

	err := kv.ForEach(bucket, func(rawKey, value []byte) error {
		decoded, err := hex.DecodeString(string(rawKey))
		if err != nil {
			return err
		}

		var key Key
		copy(key[:], decoded)
		t.Insert(key, value)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
