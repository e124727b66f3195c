package transaction

import (
	"crypto/ed25519"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
)

// SignedTx binds a DataTx to a detached signature. Clients (wallets)
// produce these for submission to the chain; the engine only consumes
// them and constructs none, not even for Coinbase.
type SignedTx struct {
	Data      DataTx
	Signature []byte // nil for Coinbase, which carries no signature
}

// Sign packs data and produces a SignedTx over it using priv.
func Sign(data DataTx, priv ed25519.PrivateKey) (SignedTx, error) {
	packed, err := data.Pack()
	if err != nil {
		return SignedTx{}, err
	}

	sig, err := signature.Sign(priv, packed)
	if err != nil {
		return SignedTx{}, err
	}

	return SignedTx{Data: data, Signature: sig}, nil
}

// Verify recomputes the packed bytes of stx.Data and checks the signature
// against the sender's public key, then runs static validation. Coinbase
// short-circuits the signature check to true since it carries none.
func (stx SignedTx) Verify(cfg config.Config) error {
	if stx.Data.IsCoinbase() {
		if stx.Signature != nil {
			return ErrMalformedTx
		}
		return stx.Data.StaticValid(cfg)
	}

	if len(stx.Signature) > cfg.SignMaxSize {
		return ErrInvalidSignature
	}

	packed, err := stx.Data.Pack()
	if err != nil {
		return err
	}

	pub := ed25519.PublicKey(stx.Data.Sender[:])
	if !signature.Verify(pub, packed, stx.Signature) {
		return ErrInvalidSignature
	}

	return stx.Data.StaticValid(cfg)
}

// Hash returns the domain hash of the inner DataTx's packed bytes, not the
// signature, so a transaction's identity is independent of who signed it.
func (stx SignedTx) Hash() ([32]byte, error) {
	packed, err := stx.Data.Pack()
	if err != nil {
		return [32]byte{}, err
	}
	return signature.Hash(packed), nil
}

// Size returns the byte length of the packed encoding plus the signature,
// the size measure min_fee is scaled against.
func (stx SignedTx) Size() (int, error) {
	packed, err := stx.Data.Pack()
	if err != nil {
		return 0, err
	}
	return len(packed) + len(stx.Signature), nil
}
