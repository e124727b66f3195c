// Copyright 2017 Cameron Bergoon
// https://github.com/cbergoon/merkletree
// Licensed under the MIT License, see LICENCE file for details.
// The pairwise hash reduction below is adapted from that implementation;
// this version replaces the rebuild-from-scratch leaf list with a keyed,
// insert/update/delete tree suitable for chain-state commitments.

// Package merkle provides a key/value Merkle tree used for the accounts
// trie and the sibling oracle and naming subtrees.
package merkle

import (
	"bytes"
	"sort"
	"sync"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
)

// KeySize is the width of every key stored in the tree. Accounts, oracle
// records, and naming records are all addressed by a 32 byte identifier.
const KeySize = 32

// Key is a fixed-width identifier used to address a value in the tree.
type Key [KeySize]byte

// Tree is a balanced binary Merkle tree keyed by fixed-width identifiers.
// Its root hash depends only on the multiset of (key, value) pairs it
// holds, never on the order operations were applied in.
type Tree struct {
	mu      sync.RWMutex
	entries map[Key][]byte
	root    [32]byte
	dirty   bool
}

// New constructs an empty tree. An empty tree's root hash is the
// distinguished all-zero hash.
func New() *Tree {
	return &Tree{
		entries: make(map[Key][]byte),
	}
}

// Insert adds key or replaces its current value.
func (t *Tree) Insert(key Key, value []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)

	t.entries[key] = stored
	t.dirty = true
}

// Delete removes key from the tree. It is a no-op if the key is absent.
func (t *Tree) Delete(key Key) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[key]; !ok {
		return
	}

	delete(t.entries, key)
	t.dirty = true
}

// Lookup returns the value stored at key, and whether it was present.
func (t *Tree) Lookup(key Key) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.entries[key]
	if !ok {
		return nil, false
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// Size returns the number of keys currently stored.
func (t *Tree) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}

// Fold walks the tree in ascending key order, threading acc through fn.
func (t *Tree) Fold(acc any, fn func(key Key, value []byte, acc any) any) any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, k := range t.sortedKeysLocked() {
		acc = fn(k, t.entries[k], acc)
	}

	return acc
}

// RootHash returns the current commitment to the tree's contents,
// rebalancing first if any mutation has occurred since the last call.
func (t *Tree) RootHash() [32]byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rebalanceLocked()
	return t.root
}

// Rebalance forces recomputation of the root hash from the current set of
// entries. RootHash calls this automatically when the tree is dirty; it is
// exposed so callers can pin the cost of a commit to a specific point.
func (t *Tree) Rebalance() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rebalanceLocked()
}

// Clone returns an independent copy of the tree sharing no mutable state
// with the receiver: every entry is copied, nothing is shared. Chain-state
// snapshots use this so a block is applied to a copy and a failed block
// leaves the original tree unchanged.
func (t *Tree) Clone() *Tree {
	t.mu.RLock()
	defer t.mu.RUnlock()

	clone := &Tree{
		entries: make(map[Key][]byte, len(t.entries)),
		root:    t.root,
		dirty:   t.dirty,
	}
	for k, v := range t.entries {
		cv := make([]byte, len(v))
		copy(cv, v)
		clone.entries[k] = cv
	}

	return clone
}

// =============================================================================

func (t *Tree) sortedKeysLocked() []Key {
	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	return keys
}

// rebalanceLocked recomputes t.root from the sorted (key, value) pairs
// using the classic pairwise hash reduction: leaves are hashed, then
// combined two at a time (duplicating a dangling last leaf) until a single
// root hash remains. Because the leaves are always produced in sorted key
// order, the result depends only on the (key, value) set, never on
// insertion history.
func (t *Tree) rebalanceLocked() {
	if !t.dirty {
		return
	}

	keys := t.sortedKeysLocked()
	if len(keys) == 0 {
		var zero [32]byte
		t.root = zero
		t.dirty = false
		return
	}

	level := make([][32]byte, 0, len(keys))
	for _, k := range keys {
		level = append(level, leafHash(k, t.entries[k]))
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		next := make([][32]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			buf := make([]byte, 0, 64)
			buf = append(buf, level[i][:]...)
			buf = append(buf, level[i+1][:]...)
			next = append(next, signature.Hash(buf))
		}
		level = next
	}

	t.root = level[0]
	t.dirty = false
}

func leafHash(key Key, value []byte) [32]byte {
	buf := make([]byte, 0, KeySize+len(value))
	buf = append(buf, key[:]...)
	buf = append(buf, value...)
	return signature.Hash(buf)
}
