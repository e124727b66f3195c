package selector

import (
	"sort"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// advancedTipSelect returns transactions with the best aggregate fee while
// respecting the nonce for each account's transactions. This strategy
// accounts for high-value transactions stuck behind a low-nonce,
// low-fee transaction from the same sender that tipSelect would starve.
var advancedTipSelect = func(m map[database.AccountID][]transaction.SignedTx, howMany int) []transaction.SignedTx {
	final := []transaction.SignedTx{}

	// Sort the transactions per account by nonce.
	for key := range m {
		if len(m[key]) > 1 {
			sort.Sort(byNonce(m[key]))
		}
	}

	at := newAdvancedTips(m, howMany)
	for from, num := range at.findBest() {
		for i := 0; i < num; i++ {
			final = append(final, m[from][i])
		}
	}

	return final
}

// =============================================================================

type advancedTips struct {
	howMany   int
	bestFee   uint64
	bestPos   map[database.AccountID]int
	groupFees map[database.AccountID][]uint64
	groups    []database.AccountID
}

func newAdvancedTips(m map[database.AccountID][]transaction.SignedTx, howMany int) *advancedTips {
	groupFees := map[database.AccountID][]uint64{}
	groups := []database.AccountID{}

	for from := range m {
		groupFees[from] = []uint64{0}
		groups = append(groups, from)
	}

	for from, group := range m {
		for i, stx := range group {
			if i > howMany {
				break
			}
			groupFees[from] = append(groupFees[from], stx.Data.Fee+groupFees[from][i])
		}
	}

	return &advancedTips{
		howMany:   howMany,
		groupFees: groupFees,
		groups:    groups,
	}
}

func (at *advancedTips) findBest() map[database.AccountID]int {
	at.findBestTransactions(0, 0, at.howMany, at.bestPos, 0)
	return at.bestPos
}

func (at *advancedTips) findBestTransactions(groupID, pos int, left int, currPos map[database.AccountID]int, prevFee uint64) {
	if prevFee > at.bestFee {
		at.bestFee = prevFee
		at.bestPos = currPos
	}

	if groupID >= len(at.groups) {
		return
	}
	from := at.groups[groupID]

	for pos, fee := range at.groupFees[from] {
		if left-pos < 0 {
			break
		}

		newCurrPos := copyMap(currPos)
		newCurrPos[from] = pos
		at.findBestTransactions(groupID+1, pos, left-pos, newCurrPos, prevFee+fee)
	}
}

// =============================================================================

func copyMap(m map[database.AccountID]int) map[database.AccountID]int {
	newCurrPos := map[database.AccountID]int{}
	for from, pos := range m {
		newCurrPos[from] = pos
	}

	return newCurrPos
}
