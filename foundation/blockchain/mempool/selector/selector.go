// Package selector provides different transaction selecting algorithms.
package selector

import (
	"fmt"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// List of different select strategies.
const (
	StrategyTip      = "tip"
	StrategyAdvanced = "advanced"
)

// Map of different select strategies with functions.
var strategies = map[string]Func{
	StrategyTip:      tipSelect,
	StrategyAdvanced: advancedTipSelect,
}

// Func defines a function that takes a candidate pool of transactions
// grouped by sender and selects howMany of them in an order based on the
// function's strategy. All selector functions MUST respect nonce ordering.
// howMany is a non-negative count; the selectors do not treat -1 as "all"
// (Mempool.PickBest turns -1 into the pool size before calling them).
type Func func(transactions map[database.AccountID][]transaction.SignedTx, howMany int) []transaction.SignedTx

// Retrieve returns the specified select strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strategy]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}

// =============================================================================

// byNonce provides sorting support by the transaction nonce value.
type byNonce []transaction.SignedTx

// Len returns the number of transactions in the list.
func (bn byNonce) Len() int {
	return len(bn)
}

// Less helps to sort the list by nonce in ascending order to keep the
// transactions in the right order of processing.
func (bn byNonce) Less(i, j int) bool {
	return bn[i].Data.Nonce < bn[j].Data.Nonce
}

// Swap moves transactions in the order of the nonce value.
func (bn byNonce) Swap(i, j int) {
	bn[i], bn[j] = bn[j], bn[i]
}

// =============================================================================

// byFee provides sorting support by the transaction fee value.
type byFee []transaction.SignedTx

// Len returns the number of transactions in the list.
func (bf byFee) Len() int {
	return len(bf)
}

// Less helps to sort the list by fee in descending order to pick the
// transactions that provide the best reward.
func (bf byFee) Less(i, j int) bool {
	return bf[i].Data.Fee > bf[j].Data.Fee
}

// Swap moves transactions in the order of the fee value.
func (bf byFee) Swap(i, j int) {
	bf[i], bf[j] = bf[j], bf[i]
}
