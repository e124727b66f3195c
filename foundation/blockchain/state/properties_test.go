package state_test

import (
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/state"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

func totalBalance(s *state.Snapshot, ids ...database.AccountID) uint64 {
	var total uint64
	for _, id := range ids {
		total += s.Account(id).Balance
	}
	return total
}

func Test_ConservationAcrossSpendBlock(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100})

	before := totalBalance(s, a, b)

	tx := spendTx(t, privA, a, b, 40, 1, 1)
	next, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	after := totalBalance(next, a, b)
	// The fee is burned (it credits no account in this ledger), so total
	// balance strictly decreases by the fee, never by more or less.
	if before-after != 1 {
		t.Errorf("balance delta = %d, want exactly the 1-token fee burned", before-after)
	}
}

func Test_ConservationGrowsByExactRewardOnCoinbase(t *testing.T) {
	miner := idFor(9)
	s := state.New()

	before := totalBalance(s, miner)

	tx := transaction.SignedTx{
		Data: transaction.DataTx{
			Kind:    transaction.KindCoinbase,
			Payload: transaction.CoinbasePayload{Receiver: miner, Amount: 10},
		},
	}

	next, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	after := totalBalance(next, miner)
	if after-before != 10 {
		t.Errorf("supply grew by %d, want exactly 10", after-before)
	}
}

func Test_NonceMonotonicity(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100})

	tx := spendTx(t, privA, a, b, 10, 1, 3)
	next, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := next.Account(a).Nonce; got != 3 {
		t.Errorf("nonce = %d, want tx.nonce = 3", got)
	}
	if next.Account(a).Nonce < s.Account(a).Nonce {
		t.Error("nonce must never decrease")
	}
}

func Test_NoNegativeBalanceUnderContention(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 50})

	txs := []transaction.SignedTx{
		spendTx(t, privA, a, b, 30, 1, 1),
		spendTx(t, privA, a, b, 30, 1, 2), // would overdraw if both applied
	}

	filtered := state.FilterValid(s, config.Default(), 1, txs)
	if len(filtered) != 1 {
		t.Fatalf("expected exactly one survivor, got %d", len(filtered))
	}

	next, err := state.ApplyBlock(s, config.Default(), 1, filtered)
	if err != nil {
		t.Fatalf("apply of filtered set must succeed: %v", err)
	}

	// database.Debit already rejects any n > balance, but the property is
	// about reachable states as a whole: nothing dips below zero.
	if next.Account(a).Balance > 50 {
		t.Errorf("balance = %d, impossible starting from 50", next.Account(a).Balance)
	}
}

func Test_FilterSoundness(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100})

	txs := []transaction.SignedTx{
		spendTx(t, privA, a, b, 40, 1, 1),
		spendTx(t, privA, a, b, 500, 1, 2), // rejected: insufficient balance
		spendTx(t, privA, a, b, 10, 1, 3),
	}

	filtered := state.FilterValid(s, config.Default(), 1, txs)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(filtered))
	}

	if _, err := state.ApplyBlock(s, config.Default(), 1, filtered); err != nil {
		t.Fatalf("apply_block(state, filter_valid(state, txs)) must succeed, got: %v", err)
	}
}

func Test_IdempotentExpiry(t *testing.T) {
	pubO, privO, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	oracle := database.PublicKeyToAccountID(pubO)

	s := state.New()
	s.PutAccount(database.Account{AccountID: oracle, Balance: 100})

	reg := signDataTx(t, privO, transaction.DataTx{
		Kind:   transaction.KindOracleRegister,
		Sender: oracle,
		Fee:    1,
		Nonce:  1,
		Payload: transaction.OracleRegisterPayload{
			QueryFormat:    "q",
			ResponseFormat: "r",
			TTL:            transaction.TTL{Type: transaction.TTLAbsolute, Value: 5},
		},
	})

	registered, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{reg})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Height 10 is well past the oracle's expiry of 5. Running apply_block
	// (which sweeps expired records) twice at the same height must produce
	// the same observable state both times.
	once, err := state.ApplyBlock(registered, config.Default(), 10, nil)
	if err != nil {
		t.Fatalf("expire once: %v", err)
	}
	twice, err := state.ApplyBlock(once, config.Default(), 10, nil)
	if err != nil {
		t.Fatalf("expire twice: %v", err)
	}

	if once.AccountsRoot() != twice.AccountsRoot() {
		t.Error("expiry is not idempotent: accounts root changed on the second sweep")
	}
	if once.OraclesRoot() != twice.OraclesRoot() {
		t.Error("expiry is not idempotent: oracles root changed on the second sweep")
	}

	if _, ok := twice.RegisteredOracle(oracle); ok {
		t.Error("expired oracle should have been swept")
	}
}
