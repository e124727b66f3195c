package genesis_test

import (
	"testing"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/genesis"
)

func Test_ApplyCreditsBalancesAndSeedsLockedFunds(t *testing.T) {
	id := database.AccountID{0x01}
	hexID := id.String()

	g := genesis.Genesis{
		ChainID:      1,
		MiningReward: 10,
		Balances: map[string]uint64{
			hexID: 100,
		},
		LockedFunds: map[string][]database.LockedFund{
			hexID: {{Height: 50, Amount: 25}},
		},
	}

	snap, err := g.Apply()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	acc := snap.Account(id)
	if acc.Balance != 100 {
		t.Errorf("balance = %d, want 100 (locked funds are seeded separately from spendable balance)", acc.Balance)
	}
	if len(acc.Locked) != 1 || acc.Locked[0].Height != 50 || acc.Locked[0].Amount != 25 {
		t.Errorf("locked = %+v, want a single {height:50 amount:25} entry", acc.Locked)
	}
}

func Test_ApplyRejectsMalformedAccountID(t *testing.T) {
	g := genesis.Genesis{
		Balances: map[string]uint64{"not-hex": 10},
	}

	if _, err := g.Apply(); err == nil {
		t.Fatal("expected an error for a malformed account id")
	}
}
