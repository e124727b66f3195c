package transaction_test

import (
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

func Test_CoinbaseMintsReceiver(t *testing.T) {
	l := newMemLedger()
	miner := acctID(9)

	tx := transaction.DataTx{
		Kind:   transaction.KindCoinbase,
		Sender: database.AccountID{},
		Nonce:  100, // block height
		Payload: transaction.CoinbasePayload{
			Receiver: miner,
			Amount:   500,
		},
	}

	if err := tx.StaticValid(configForTest()); err != nil {
		t.Fatalf("unexpected StaticValid error: %v", err)
	}
	if err := tx.Payload.Apply(l, tx, 100); err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}

	if got := l.Account(miner).Balance; got != 500 {
		t.Errorf("miner balance = %d, want 500", got)
	}
	if got := l.Account(miner).Nonce; got != 0 {
		t.Errorf("coinbase must never touch the receiver's nonce, got %d", got)
	}
}

func Test_CoinbaseRejectsNonZeroSender(t *testing.T) {
	tx := transaction.DataTx{
		Kind:   transaction.KindCoinbase,
		Sender: acctID(1),
		Payload: transaction.CoinbasePayload{
			Receiver: acctID(2),
			Amount:   1,
		},
	}

	if err := tx.StaticValid(configForTest()); err == nil {
		t.Fatal("expected error for coinbase carrying a non-zero sender")
	}
}
