package state

import (
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/transaction"
)

// The Merkle trie leaves store rlp-encoded records rather than the packed,
// signing-oriented encoding in package encoding: these bytes are never
// signed or transmitted on the wire, only hashed as trie leaves and
// persisted, so the general-purpose codec already pulled in for the wire
// format is reused here instead of a second bespoke one.

type lockedWire struct {
	Height uint64
	Amount uint64
}

type accountWire struct {
	ID      [32]byte
	Nonce   uint64
	Balance uint64
	Locked  []lockedWire
}

func encodeAccount(acc database.Account) ([]byte, error) {
	w := accountWire{ID: acc.AccountID, Nonce: acc.Nonce, Balance: acc.Balance}
	for _, l := range acc.Locked {
		w.Locked = append(w.Locked, lockedWire{Height: l.Height, Amount: l.Amount})
	}
	return rlp.EncodeToBytes(w)
}

func decodeAccount(data []byte) (database.Account, error) {
	var w accountWire
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return database.Account{}, err
	}

	acc := database.Account{AccountID: w.ID, Nonce: w.Nonce, Balance: w.Balance}
	for _, l := range w.Locked {
		acc.Locked = append(acc.Locked, database.LockedFund{Height: l.Height, Amount: l.Amount})
	}
	return acc, nil
}

// =============================================================================

type oracleWire struct {
	Owner          [32]byte
	QueryFormat    string
	ResponseFormat string
	QueryFee       uint64
	ExpiryHeight   uint64
}

func encodeOracle(rec transaction.OracleRecord) ([]byte, error) {
	return rlp.EncodeToBytes(oracleWire{
		Owner:          rec.Owner,
		QueryFormat:    rec.QueryFormat,
		ResponseFormat: rec.ResponseFormat,
		QueryFee:       rec.QueryFee,
		ExpiryHeight:   rec.ExpiryHeight,
	})
}

func decodeOracle(data []byte) (transaction.OracleRecord, error) {
	var w oracleWire
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return transaction.OracleRecord{}, err
	}
	return transaction.OracleRecord{
		Owner:          w.Owner,
		QueryFormat:    w.QueryFormat,
		ResponseFormat: w.ResponseFormat,
		QueryFee:       w.QueryFee,
		ExpiryHeight:   w.ExpiryHeight,
	}, nil
}

// =============================================================================

type interactionWire struct {
	QueryID        [32]byte
	OracleAddress  [32]byte
	Sender         [32]byte
	QueryData      []byte
	QueryFee       uint64
	QueryExpiry    uint64
	ResponseData   []byte
	HasResponse    bool
	ResponseExpiry uint64
}

func encodeInteraction(it transaction.Interaction) ([]byte, error) {
	return rlp.EncodeToBytes(interactionWire{
		QueryID:        it.QueryID,
		OracleAddress:  it.OracleAddress,
		Sender:         it.Sender,
		QueryData:      it.QueryData,
		QueryFee:       it.QueryFee,
		QueryExpiry:    it.QueryExpiry,
		ResponseData:   it.ResponseData,
		HasResponse:    it.HasResponse,
		ResponseExpiry: it.ResponseExpiry,
	})
}

func decodeInteraction(data []byte) (transaction.Interaction, error) {
	var w interactionWire
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return transaction.Interaction{}, err
	}
	return transaction.Interaction{
		QueryID:        w.QueryID,
		OracleAddress:  w.OracleAddress,
		Sender:         w.Sender,
		QueryData:      w.QueryData,
		QueryFee:       w.QueryFee,
		QueryExpiry:    w.QueryExpiry,
		ResponseData:   w.ResponseData,
		HasResponse:    w.HasResponse,
		ResponseExpiry: w.ResponseExpiry,
	}, nil
}

// =============================================================================

type preclaimWire struct {
	Commitment [32]byte
	Owner      [32]byte
}

func encodePreClaim(pc transaction.PreClaim) ([]byte, error) {
	return rlp.EncodeToBytes(preclaimWire{Commitment: pc.Commitment, Owner: pc.Owner})
}

func decodePreClaim(data []byte) (transaction.PreClaim, error) {
	var w preclaimWire
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return transaction.PreClaim{}, err
	}
	return transaction.PreClaim{Commitment: w.Commitment, Owner: w.Owner}, nil
}

// =============================================================================

type pointerWire struct {
	Key   string
	Value []byte
}

type claimWire struct {
	NameHash    [32]byte
	Name        string
	Owner       [32]byte
	ClaimHeight uint64
	Pointers    []pointerWire
}

func encodeClaim(c transaction.Claim) ([]byte, error) {
	w := claimWire{NameHash: c.NameHash, Name: c.Name, Owner: c.Owner, ClaimHeight: c.ClaimHeight}

	keys := make([]string, 0, len(c.Pointers))
	for k := range c.Pointers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		w.Pointers = append(w.Pointers, pointerWire{Key: k, Value: c.Pointers[k]})
	}
	return rlp.EncodeToBytes(w)
}

func decodeClaim(data []byte) (transaction.Claim, error) {
	var w claimWire
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return transaction.Claim{}, err
	}

	c := transaction.Claim{NameHash: w.NameHash, Name: w.Name, Owner: w.Owner, ClaimHeight: w.ClaimHeight}
	if len(w.Pointers) > 0 {
		c.Pointers = make(map[string][]byte, len(w.Pointers))
		for _, p := range w.Pointers {
			c.Pointers[p.Key] = p.Value
		}
	}
	return c, nil
}
