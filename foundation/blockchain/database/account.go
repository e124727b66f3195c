// Package database provides the account model: the pure, total state
// primitives every transaction variant is built from. It owns no I/O and no
// tree structure; the chain-state engine composes these primitives with the
// Merkle trie.
package database

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"sort"
)

// Errors returned by the account primitives. These are the leaves of the
// stable error taxonomy; the engine escalates them without translation.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNonceOutOfOrder     = errors.New("nonce out of order")
)

// AccountID is the raw 32 byte public key that both signs transactions and
// addresses the account in the accounts trie.
type AccountID [ed25519.PublicKeySize]byte

// ToAccountID validates a hex-encoded string and converts it to an AccountID.
func ToAccountID(hexStr string) (AccountID, error) {
	if has0xPrefix(hexStr) {
		hexStr = hexStr[2:]
	}

	raw, err := hex.DecodeString(hexStr)
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return AccountID{}, errors.New("invalid account format")
	}

	var id AccountID
	copy(id[:], raw)
	return id, nil
}

// PublicKeyToAccountID converts a raw public key to an account id.
func PublicKeyToAccountID(pub ed25519.PublicKey) AccountID {
	var id AccountID
	copy(id[:], pub)
	return id
}

// String renders the account id as a 0x-prefixed hex string.
func (a AccountID) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero account id, used to represent the
// absent sender of a Coinbase transaction.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// =============================================================================

// LockedFund represents an amount that matures into spendable balance once
// the chain reaches a given height.
type LockedFund struct {
	Height uint64
	Amount uint64
}

// Account represents the ledger state for an individual account.
type Account struct {
	AccountID AccountID
	Nonce     uint64
	Balance   uint64
	Locked    []LockedFund
}

// Empty constructs the zero-value account for id, used the first time an
// account is credited.
func Empty(id AccountID) Account {
	return Account{AccountID: id}
}

// Credit returns a copy of acc with n added to its balance. Credit never
// fails: minting and receiving funds cannot overflow the supply invariants
// this ledger enforces elsewhere.
func Credit(acc Account, n uint64) Account {
	acc.Balance += n
	return acc
}

// Debit returns a copy of acc with n subtracted from its balance, or
// ErrInsufficientBalance if acc cannot cover it.
func Debit(acc Account, n uint64) (Account, error) {
	if n > acc.Balance {
		return Account{}, ErrInsufficientBalance
	}

	acc.Balance -= n
	return acc, nil
}

// BumpNonce returns a copy of acc with its nonce set to newNonce, or
// ErrNonceOutOfOrder if newNonce does not strictly exceed the current one.
func BumpNonce(acc Account, newNonce uint64) (Account, error) {
	if newNonce <= acc.Nonce {
		return Account{}, ErrNonceOutOfOrder
	}

	acc.Nonce = newNonce
	return acc, nil
}

// UpdateLocked moves every locked entry that has matured by currentHeight
// into the spendable balance, returning the updated account.
func UpdateLocked(acc Account, currentHeight uint64) Account {
	if len(acc.Locked) == 0 {
		return acc
	}

	remaining := acc.Locked[:0:0]
	for _, l := range acc.Locked {
		if l.Height <= currentHeight {
			acc.Balance += l.Amount
			continue
		}
		remaining = append(remaining, l)
	}
	acc.Locked = remaining

	return acc
}

// =============================================================================

// ByAccount provides sorting support by account id, used to make account
// enumeration and serialization deterministic.
type ByAccount []Account

func (ba ByAccount) Len() int      { return len(ba) }
func (ba ByAccount) Swap(i, j int) { ba[i], ba[j] = ba[j], ba[i] }
func (ba ByAccount) Less(i, j int) bool {
	return string(ba[i].AccountID[:]) < string(ba[j].AccountID[:])
}

var _ sort.Interface = ByAccount(nil)
