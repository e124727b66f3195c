// Package address renders the raw byte identifiers used internally by the
// chain-state engine (public keys, hashes) into the human-facing envelope
// format used by wallets and block explorers, and parses it back.
package address

import (
	"crypto/sha256"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Prefix identifies what kind of artifact an encoded address represents.
type Prefix string

// The full set of supported prefixes. Each ties a human-facing envelope to
// the raw payload it wraps.
const (
	PrefixAccount     Prefix = "ak" // account public key
	PrefixTx          Prefix = "tx" // transaction hash
	PrefixTxsRoot     Prefix = "bx" // block's transactions-root
	PrefixSignature   Prefix = "sg" // detached signature
	PrefixChainState  Prefix = "bs" // chain-state root hash
	checksumSeparator        = "$"
	checksumSize             = 4
)

// ErrMalformedEnvelope is returned when a decoded string does not match the
// expected "prefix$base58(payload||checksum)" shape, or its checksum does
// not match its payload.
var ErrMalformedEnvelope = errors.New("malformed address envelope")

// Encode renders payload as "<prefix>$<base58(payload||checksum)>". The
// checksum is the leading 4 bytes of a double SHA-256 over the payload,
// the same construction Bitcoin-style Base58Check addresses use.
func Encode(prefix Prefix, payload []byte) string {
	sum := checksum(payload)
	body := make([]byte, 0, len(payload)+checksumSize)
	body = append(body, payload...)
	body = append(body, sum...)

	return string(prefix) + checksumSeparator + base58.Encode(body)
}

// Decode parses an address envelope produced by Encode, verifying that its
// prefix matches wantPrefix and that its checksum is valid.
func Decode(wantPrefix Prefix, s string) ([]byte, error) {
	parts := strings.SplitN(s, checksumSeparator, 2)
	if len(parts) != 2 {
		return nil, ErrMalformedEnvelope
	}

	if Prefix(parts[0]) != wantPrefix {
		return nil, ErrMalformedEnvelope
	}

	body := base58.Decode(parts[1])
	if len(body) < checksumSize {
		return nil, ErrMalformedEnvelope
	}

	payload := body[:len(body)-checksumSize]
	sum := body[len(body)-checksumSize:]

	if string(sum) != string(checksum(payload)) {
		return nil, ErrMalformedEnvelope
	}

	return payload, nil
}

// checksum computes the leading 4 bytes of double SHA-256 over data.
func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:checksumSize]
}
