package database_test

import (
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
)

func Test_CreditDebit(t *testing.T) {
	acc := database.Empty(database.AccountID{})
	acc = database.Credit(acc, 100)

	acc, err := database.Debit(acc, 40)
	if err != nil {
		t.Fatalf("Should be able to debit within balance: %s", err)
	}
	if acc.Balance != 60 {
		t.Fatalf("Should have a balance of 60, got %d", acc.Balance)
	}

	if _, err := database.Debit(acc, 1000); err != database.ErrInsufficientBalance {
		t.Fatalf("Should reject a debit larger than the balance.")
	}
}

func Test_BumpNonce(t *testing.T) {
	acc := database.Empty(database.AccountID{})

	acc, err := database.BumpNonce(acc, 1)
	if err != nil {
		t.Fatalf("Should accept a nonce greater than the current one: %s", err)
	}

	if _, err := database.BumpNonce(acc, 1); err != database.ErrNonceOutOfOrder {
		t.Fatalf("Should reject a replayed nonce.")
	}

	if _, err := database.BumpNonce(acc, 0); err != database.ErrNonceOutOfOrder {
		t.Fatalf("Should reject a nonce less than the current one.")
	}
}

func Test_UpdateLockedMaturesEntries(t *testing.T) {
	acc := database.Empty(database.AccountID{})
	acc.Locked = []database.LockedFund{
		{Height: 10, Amount: 5},
		{Height: 20, Amount: 7},
	}

	acc = database.UpdateLocked(acc, 15)

	if acc.Balance != 5 {
		t.Fatalf("Should mature only the entry at or below height 15, got balance %d", acc.Balance)
	}
	if len(acc.Locked) != 1 || acc.Locked[0].Height != 20 {
		t.Fatalf("Should keep the entry that has not matured yet.")
	}

	acc = database.UpdateLocked(acc, 20)
	if acc.Balance != 12 || len(acc.Locked) != 0 {
		t.Fatalf("Should mature the remaining entry once its height is reached.")
	}
}
