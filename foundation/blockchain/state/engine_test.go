package state_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/state"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// mustCommitmentForEngine reproduces naming.go's unexported commitmentOf.
func mustCommitmentForEngine(t *testing.T, name string, salt [32]byte) [32]byte {
	t.Helper()
	buf, err := encoding.NewBuilder().
		Bytes([]byte(name)).
		FixedBytes(salt[:]).
		Build()
	if err != nil {
		t.Fatalf("build commitment: %v", err)
	}
	return signature.Hash(buf)
}

func idFor(b byte) database.AccountID {
	var id database.AccountID
	id[0] = b
	return id
}

func spendTx(t *testing.T, priv []byte, sender, receiver database.AccountID, amount, fee, nonce uint64) transaction.SignedTx {
	t.Helper()

	data := transaction.DataTx{
		Kind:   transaction.KindSpend,
		Sender: sender,
		Fee:    fee,
		Nonce:  nonce,
		Payload: transaction.SpendPayload{
			Receiver: receiver,
			Amount:   amount,
			Version:  config.Default().SpendVersion,
		},
	}

	stx, err := transaction.Sign(data, priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return stx
}

func Test_ScenarioSpendAccepted(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100})
	s.PutAccount(database.Account{AccountID: b, Balance: 0})

	tx := spendTx(t, privA, a, b, 40, 1, 1)

	next, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	if err != nil {
		t.Fatalf("unexpected apply_block error: %v", err)
	}

	if got := next.Account(a).Balance; got != 59 {
		t.Errorf("A.balance = %d, want 59", got)
	}
	if got := next.Account(a).Nonce; got != 1 {
		t.Errorf("A.nonce = %d, want 1", got)
	}
	if got := next.Account(b).Balance; got != 40 {
		t.Errorf("B.balance = %d, want 40", got)
	}

	root1 := next.AccountsRoot()
	root2 := next.AccountsRoot()
	if root1 != root2 {
		t.Error("accounts root is not stable across repeated calls")
	}
}

func Test_ScenarioSpendInsufficientBalance(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100})

	tx := spendTx(t, privA, a, b, 200, 1, 1)

	_, err = state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	var invalid *transaction.InvalidBlockError
	if !errors.As(err, &invalid) || !errors.Is(invalid.Cause, transaction.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want InvalidBlockError wrapping ErrInsufficientBalance", err)
	}

	filtered := state.FilterValid(s, config.Default(), 1, []transaction.SignedTx{tx})
	if len(filtered) != 0 {
		t.Errorf("filter_valid should drop the offending tx, got %d survivors", len(filtered))
	}
	if got := s.Account(a).Balance; got != 100 {
		t.Errorf("input snapshot must be unchanged, A.balance = %d, want 100", got)
	}
}

func Test_ScenarioReplayRejected(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100})

	tx := spendTx(t, privA, a, b, 40, 1, 1)

	next, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}

	_, err = state.ApplyBlock(next, config.Default(), 2, []transaction.SignedTx{tx})
	var invalid *transaction.InvalidBlockError
	if !errors.As(err, &invalid) || !errors.Is(invalid.Cause, transaction.ErrNonceOutOfOrder) {
		t.Fatalf("replay err = %v, want InvalidBlockError wrapping ErrNonceOutOfOrder", err)
	}
}

func Test_ScenarioCoinbase(t *testing.T) {
	miner := idFor(9)

	s := state.New()

	tx := transaction.SignedTx{
		Data: transaction.DataTx{
			Kind: transaction.KindCoinbase,
			Payload: transaction.CoinbasePayload{
				Receiver: miner,
				Amount:   10,
			},
		},
	}

	next, err := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{tx})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := next.Account(miner).Balance; got != 10 {
		t.Errorf("miner balance = %d, want 10", got)
	}
}

func Test_ScenarioNameClaimHappyPath(t *testing.T) {
	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	a := database.PublicKeyToAccountID(pubA)

	name := "alice"
	var salt [32]byte
	salt[0] = 0x42

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 10})
	s.PutPreClaim(transaction.PreClaim{Commitment: mustCommitmentForEngine(t, name, salt), Owner: a})

	data := transaction.DataTx{
		Kind:   transaction.KindNameClaim,
		Sender: a,
		Fee:    1,
		Nonce:  1,
		Payload: transaction.NameClaimPayload{
			Name: name,
			Salt: salt,
		},
	}
	stx, err := transaction.Sign(data, privA)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	next, err := state.ApplyBlock(s, config.Default(), 5, []transaction.SignedTx{stx})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := next.Account(a).Balance; got != 9 {
		t.Errorf("A.balance = %d, want 9", got)
	}

	nameHash := transaction.NameHash(name)
	c, ok := next.Claim(nameHash)
	if !ok {
		t.Fatal("expected claim to exist")
	}
	if c.Owner != a || c.ClaimHeight != 5 {
		t.Errorf("claim = %+v, want owner=A height=5", c)
	}

	if _, stillPending := next.PreClaim(mustCommitmentForEngine(t, name, salt)); stillPending {
		t.Error("pre-claim must be consumed")
	}
}

func Test_ScenarioLockedFundsMatureAtHeight(t *testing.T) {
	a := idFor(1)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{
		AccountID: a,
		Balance:   5,
		Locked: []database.LockedFund{
			{Height: 10, Amount: 20},
			{Height: 100, Amount: 30},
		},
	})
	s.PutAccount(database.Account{AccountID: b, Balance: 0})

	// A block below the first entry's maturity height leaves both entries
	// locked; ApplyBlock must not touch balances it has no txs for.
	before, err := state.ApplyBlock(s, config.Default(), 9, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := before.Account(a).Balance; got != 5 {
		t.Errorf("A.balance at height 9 = %d, want 5 (nothing matured yet)", got)
	}
	if len(before.Account(a).Locked) != 2 {
		t.Errorf("A.locked at height 9 = %d entries, want 2", len(before.Account(a).Locked))
	}

	after, err := state.ApplyBlock(before, config.Default(), 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := after.Account(a).Balance; got != 25 {
		t.Errorf("A.balance at height 10 = %d, want 25 (5 + the matured 20)", got)
	}
	if got := after.Account(a).Locked; len(got) != 1 || got[0].Height != 100 {
		t.Errorf("A.locked at height 10 = %+v, want only the height-100 entry", got)
	}
}

func Test_ScenarioOracleQueryResponseThenDoubleResponseConflict(t *testing.T) {
	pubO, privO, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	oracle := database.PublicKeyToAccountID(pubO)

	pubA, privA, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	asker := database.PublicKeyToAccountID(pubA)

	s := state.New()
	s.PutAccount(database.Account{AccountID: oracle, Balance: 100})
	s.PutAccount(database.Account{AccountID: asker, Balance: 100})

	reg := signDataTx(t, privO, transaction.DataTx{
		Kind:   transaction.KindOracleRegister,
		Sender: oracle,
		Fee:    1,
		Nonce:  1,
		Payload: transaction.OracleRegisterPayload{
			QueryFormat:    "q",
			ResponseFormat: "r",
			QueryFee:       5,
			TTL:            transaction.TTL{Type: transaction.TTLAbsolute, Value: 1000},
		},
	})

	s, err2 := state.ApplyBlock(s, config.Default(), 1, []transaction.SignedTx{reg})
	if err2 != nil {
		t.Fatalf("register: %v", err2)
	}

	query := signDataTx(t, privA, transaction.DataTx{
		Kind:   transaction.KindOracleQuery,
		Sender: asker,
		Fee:    1,
		Nonce:  1,
		Payload: transaction.OracleQueryPayload{
			OracleAddress: oracle,
			QueryData:     []byte("q?"),
			QueryFee:      5,
			QueryTTL:      transaction.TTL{Type: transaction.TTLAbsolute, Value: 1000},
			ResponseTTL:   transaction.TTL{Type: transaction.TTLAbsolute, Value: 2000},
		},
	})

	s, err2 = state.ApplyBlock(s, config.Default(), 2, []transaction.SignedTx{query})
	if err2 != nil {
		t.Fatalf("query: %v", err2)
	}

	qid := transaction.QueryID(asker, 1, oracle)

	response := signDataTx(t, privO, transaction.DataTx{
		Kind:   transaction.KindOracleResponse,
		Sender: oracle,
		Fee:    1,
		Nonce:  2,
		Payload: transaction.OracleResponsePayload{
			QueryID:      qid,
			ResponseData: []byte("42"),
		},
	})

	final, err2 := state.ApplyBlock(s, config.Default(), 3, []transaction.SignedTx{response})
	if err2 != nil {
		t.Fatalf("response: %v", err2)
	}

	it, ok := final.Interaction(qid)
	if !ok || !it.HasResponse {
		t.Fatal("expected a completed interaction")
	}

	// A second, identically-shaped response must be rejected as a state
	// conflict, not silently accepted.
	secondResponse := signDataTx(t, privO, transaction.DataTx{
		Kind:   transaction.KindOracleResponse,
		Sender: oracle,
		Fee:    1,
		Nonce:  3,
		Payload: transaction.OracleResponsePayload{
			QueryID:      qid,
			ResponseData: []byte("43"),
		},
	})

	_, err2 = state.ApplyBlock(final, config.Default(), 4, []transaction.SignedTx{secondResponse})
	var invalid *transaction.InvalidBlockError
	if !errors.As(err2, &invalid) || !errors.Is(invalid.Cause, transaction.ErrOracleStateConflict) {
		t.Fatalf("err = %v, want InvalidBlockError wrapping ErrOracleStateConflict", err2)
	}
}

func signDataTx(t *testing.T, priv []byte, data transaction.DataTx) transaction.SignedTx {
	t.Helper()
	stx, err := transaction.Sign(data, priv)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return stx
}
