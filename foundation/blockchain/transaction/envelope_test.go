package transaction_test

import (
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

func Test_SignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	data := transaction.DataTx{
		Kind:   transaction.KindSpend,
		Sender: database.PublicKeyToAccountID(pub),
		Fee:    1,
		Nonce:  1,
		Payload: transaction.SpendPayload{
			Receiver: acctID(2),
			Amount:   10,
			Version:  config.Default().SpendVersion,
		},
	}

	stx, err := transaction.Sign(data, priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if err := stx.Verify(config.Default()); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func Test_VerifyRejectsTamperedPayload(t *testing.T) {
	pub, priv, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	data := transaction.DataTx{
		Kind:   transaction.KindSpend,
		Sender: database.PublicKeyToAccountID(pub),
		Fee:    1,
		Nonce:  1,
		Payload: transaction.SpendPayload{
			Receiver: acctID(2),
			Amount:   10,
			Version:  config.Default().SpendVersion,
		},
	}

	stx, err := transaction.Sign(data, priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tampered := stx.Data.Payload.(transaction.SpendPayload)
	tampered.Amount = 999999
	stx.Data.Payload = tampered

	if err := stx.Verify(config.Default()); err == nil {
		t.Fatal("expected verify to reject a tampered payload")
	}
}

func Test_CoinbaseVerifyRejectsSignature(t *testing.T) {
	stx := transaction.SignedTx{
		Data: transaction.DataTx{
			Kind: transaction.KindCoinbase,
			Payload: transaction.CoinbasePayload{
				Receiver: acctID(1),
				Amount:   10,
			},
		},
		Signature: []byte{0x01},
	}

	if err := stx.Verify(config.Default()); err == nil {
		t.Fatal("expected verify to reject a coinbase tx carrying a signature")
	}
}
