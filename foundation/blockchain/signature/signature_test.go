package signature_test

import (
	"bytes"
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
)

func Test_SignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a key: %s", err)
	}

	msg := []byte("packed-bytes-of-a-data-tx")

	sig, err := signature.Sign(priv, msg)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if len(sig) != signature.MaxSignatureSize {
		t.Fatalf("Should get a signature of %d bytes, got %d", signature.MaxSignatureSize, len(sig))
	}

	if !signature.Verify(pub, msg, sig) {
		t.Fatalf("Should be able to verify a signature produced over the same message.")
	}
}

func Test_VerifyRejectsWrongMessage(t *testing.T) {
	pub, priv, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a key: %s", err)
	}

	sig, err := signature.Sign(priv, []byte("original"))
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if signature.Verify(pub, []byte("tampered"), sig) {
		t.Fatalf("Should not verify a signature against a different message.")
	}
}

func Test_HashDeterministic(t *testing.T) {
	data := []byte("same bytes every time")

	h1 := signature.Hash(data)
	h2 := signature.Hash(data)

	if !bytes.Equal(h1[:], h2[:]) {
		t.Fatalf("Should get back the same hash twice.")
	}
}
