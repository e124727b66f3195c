package transaction

import (
	"errors"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
)

// The stable error taxonomy every variant's Preprocess and the envelope's
// Verify report through. apply_block escalates the first one it sees into
// an InvalidBlock; filter_valid records and drops the offending tx instead.
var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrMalformedTx         = errors.New("malformed transaction")
	ErrInsufficientBalance = database.ErrInsufficientBalance
	ErrNonceOutOfOrder     = database.ErrNonceOutOfOrder
	ErrUnknownOracle       = errors.New("unknown oracle")
	ErrOracleStateConflict = errors.New("oracle state conflict")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrUnknownPreClaim     = errors.New("unknown pre-claim")
	ErrWrongPreClaimOwner  = errors.New("wrong pre-claim owner")
	ErrNameAlreadyClaimed  = errors.New("name already claimed")
	ErrMalformedName       = errors.New("malformed name")
)

// InvalidBlockError escalates the first transaction-level failure
// encountered by apply_block. Cause is one of the sentinels above (the
// database.ErrInsufficientBalance / database.ErrNonceOutOfOrder aliases
// included), or encoding.ErrEncoding when a tx cannot be packed.
type InvalidBlockError struct {
	Index int
	Cause error
}

func (e *InvalidBlockError) Error() string {
	return "invalid block: " + e.Cause.Error()
}

func (e *InvalidBlockError) Unwrap() error {
	return e.Cause
}
