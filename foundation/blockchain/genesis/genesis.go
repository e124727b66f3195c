// Package genesis maintains access to the genesis file: the founding
// balances a new chain-state snapshot starts from.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/state"
)

// Genesis represents the genesis file: the chain's founding parameters
// and starting account balances, keyed by hex-encoded account id.
type Genesis struct {
	Date         time.Time         `json:"date"`
	ChainID      uint16            `json:"chain_id"`      // unique id for this running instance
	MiningReward uint64            `json:"mining_reward"` // block reward minted by a Coinbase tx
	Balances     map[string]uint64 `json:"balances"`

	// LockedFunds seeds an account's vesting schedule: amounts that sit
	// outside its spendable balance until the chain reaches the recorded
	// height, at which point the engine's per-block maturation sweep
	// folds them in. Keyed the same way as Balances.
	LockedFunds map[string][]database.LockedFund `json:"locked_funds"`
}

// =============================================================================

// Load opens and parses the genesis file at path.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var g Genesis
	if err := json.Unmarshal(content, &g); err != nil {
		return Genesis{}, err
	}

	return g, nil
}

// Apply builds the genesis chain-state snapshot: an empty snapshot with
// every founding balance credited. Coinbase's usual sender-less path is
// not used here since these are seed balances, not a mined reward.
func (g Genesis) Apply() (*state.Snapshot, error) {
	snap := state.New()

	for hexID, balance := range g.Balances {
		id, err := database.ToAccountID(hexID)
		if err != nil {
			return nil, err
		}

		snap.PutAccount(database.Credit(database.Empty(id), balance))
	}

	for hexID, locked := range g.LockedFunds {
		id, err := database.ToAccountID(hexID)
		if err != nil {
			return nil, err
		}

		acc := snap.Account(id)
		acc.Locked = append(acc.Locked, locked...)
		snap.PutAccount(acc)
	}

	return snap, nil
}
