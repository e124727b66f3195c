package state_test

import (
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/state"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/storage"
)

func Test_PersistAndLoadRoundTrip(t *testing.T) {
	a := idFor(1)
	b := idFor(2)

	s := state.New()
	s.PutAccount(database.Account{AccountID: a, Balance: 100, Nonce: 3})
	s.PutAccount(database.Account{AccountID: b, Balance: 40})
	wantRoot := s.AccountsRoot()

	kv := storage.NewMemory()
	if err := s.Persist(kv); err != nil {
		t.Fatalf("persist: %v", err)
	}

	loaded, err := state.Load(kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.AccountsRoot() != wantRoot {
		t.Error("loaded accounts root does not match persisted root")
	}
	if got := loaded.Account(a).Balance; got != 100 {
		t.Errorf("A.balance = %d, want 100", got)
	}
	if got := loaded.Account(a).Nonce; got != 3 {
		t.Errorf("A.nonce = %d, want 3", got)
	}
	if got := loaded.Account(b).Balance; got != 40 {
		t.Errorf("B.balance = %d, want 40", got)
	}
}
