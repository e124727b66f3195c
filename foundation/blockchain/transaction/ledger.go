package transaction

import "github.com/ardanlabs/aetherchain/foundation/blockchain/database"

// Ledger is the state surface a variant needs to validate and apply
// itself. It is implemented by state.Snapshot; this package defines only
// the interface so it never has to import the state package (which
// imports this one), keeping the dependency graph a DAG.
type Ledger interface {
	Account(id database.AccountID) database.Account
	PutAccount(acc database.Account)

	RegisteredOracle(id database.AccountID) (OracleRecord, bool)
	PutRegisteredOracle(rec OracleRecord)
	DeleteRegisteredOracle(id database.AccountID)

	Interaction(queryID [32]byte) (Interaction, bool)
	PutInteraction(it Interaction)
	DeleteInteraction(queryID [32]byte)

	PreClaim(commitment [32]byte) (PreClaim, bool)
	PutPreClaim(pc PreClaim)
	DeletePreClaim(commitment [32]byte)

	Claim(nameHash [32]byte) (Claim, bool)
	PutClaim(c Claim)
	DeleteClaim(nameHash [32]byte)
}

// =============================================================================

// OracleRecord is a registered oracle: an account that has published a
// query/response schema and is willing to answer queries against it.
type OracleRecord struct {
	Owner          database.AccountID
	QueryFormat    string
	ResponseFormat string
	QueryFee       uint64
	ExpiryHeight   uint64
}

// Interaction pairs an oracle query with its, possibly still absent,
// response.
type Interaction struct {
	QueryID        [32]byte
	OracleAddress  database.AccountID
	Sender         database.AccountID
	QueryData      []byte
	QueryFee       uint64
	QueryExpiry    uint64
	ResponseData   []byte
	HasResponse    bool
	ResponseExpiry uint64
}

// PreClaim is a pending commitment awaiting a matching NameClaim.
type PreClaim struct {
	Commitment [32]byte
	Owner      database.AccountID
}

// Claim is a confirmed name registration.
type Claim struct {
	NameHash    [32]byte
	Name        string
	Owner       database.AccountID
	ClaimHeight uint64
	Pointers    map[string][]byte
}
