// Package signature provides helper functions for handling the blockchain's
// hashing and signing needs.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is the distinguished root
// hash of an empty Merkle tree.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// PublicKeySize is the width, in bytes, of every account's raw public key.
const PublicKeySize = ed25519.PublicKeySize

// MaxSignatureSize bounds how large a detached signature is allowed to be.
// Ed25519 signatures are a fixed 64 bytes; the constant is kept explicit so
// a SignedTx can reject anything malformed before it reaches the wire.
const MaxSignatureSize = ed25519.SignatureSize

// ErrSignatureTooLarge is returned when a signature exceeds MaxSignatureSize.
var ErrSignatureTooLarge = errors.New("signature exceeds maximum size")

// =============================================================================

// Hash returns the 32 byte domain hash of the given canonical bytes. Ed25519
// hashes its own message internally as part of signing, so this digest is
// kept separate and is only used for content addressing: tx identity,
// Merkle leaves, and state roots.
func Hash(data []byte) [32]byte {
	return crypto.Keccak256Hash(data)
}

// HashHex is a convenience wrapper that returns the domain hash as a
// 0x-prefixed hex string, the form used for logging and block headers.
func HashHex(data []byte) string {
	h := Hash(data)
	return "0x" + hex.EncodeToString(h[:])
}

// =============================================================================

// Sign produces a detached signature over msg using the supplied private
// key. The signed message is always the packed, canonical encoding of the
// value being signed; producing that encoding is the caller's job.
func Sign(priv ed25519.PrivateKey, msg []byte) ([]byte, error) {
	sig := ed25519.Sign(priv, msg)
	if len(sig) > MaxSignatureSize {
		return nil, ErrSignatureTooLarge
	}

	return sig, nil
}

// Verify reports whether sig is a valid detached signature over msg under
// pub. A signature longer than MaxSignatureSize is rejected outright rather
// than passed to the underlying primitive.
func Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	if len(sig) > MaxSignatureSize || len(pub) != ed25519.PublicKeySize {
		return false
	}

	return ed25519.Verify(pub, msg, sig)
}

// GenerateKey creates a new ed25519 key pair for use by a wallet or test.
func GenerateKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	return ed25519.GenerateKey(nil)
}
