package transaction

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
)

// Payload is the uniform capability set every transaction variant
// implements. There is a single dispatch site for it: DataTx.Pack calls
// Pack, the engine calls StaticValid/Preprocess/Apply and the mempool
// calls MinFee through this interface rather than switching on Kind.
type Payload interface {
	// Kind identifies which variant this payload belongs to.
	Kind() Kind

	// Pack appends this payload's fields to b, in the fixed order declared
	// by the variant. Called after DataTx has already packed its own
	// common fields (kind, sender, fee, nonce).
	Pack(b *encoding.Builder)

	// StaticValid performs every check that needs no chain state: value
	// ranges, protocol version, field sizes.
	StaticValid(cfg config.Config) error

	// Preprocess performs every state-dependent precondition check, in a
	// fixed order, returning the first failure. It must not mutate l.
	Preprocess(l Ledger, tx DataTx, height uint64) error

	// Apply performs the state mutation. It is only ever called after
	// Preprocess has returned nil against the same state, and must be a
	// no-op on any part of state it does not touch.
	Apply(l Ledger, tx DataTx, height uint64) error

	// MinFee computes the minimum fee this payload will accept for a
	// transaction of the given wire size under role.
	MinFee(sizeBytes int, role Role, cfg config.Config) uint64
}

// Rewarder is implemented only by CoinbasePayload. mempool.EstimatePayout
// takes one, so no other variant needs a no-op Reward method.
type Rewarder interface {
	Reward(acc database.Account) database.Account
}

// =============================================================================

// DataTx is the unsigned transaction body: the fields common to every
// variant, plus the variant-specific Payload.
type DataTx struct {
	Kind    Kind
	Sender  database.AccountID // zero value for Coinbase, which has no sender
	Fee     uint64
	Nonce   uint64 // repurposed as block height for Coinbase, see DESIGN.md
	Payload Payload
}

// IsCoinbase reports whether this DataTx is the distinguished,
// sender-less, unsigned Coinbase kind.
func (tx DataTx) IsCoinbase() bool {
	return tx.Kind == KindCoinbase
}

// Pack renders the canonical, packed encoding of tx: the bytes that get
// hashed for tx identity and signed by the sender. Field order is fixed:
// kind, sender, fee, nonce, then the payload's own fields.
func (tx DataTx) Pack() ([]byte, error) {
	b := encoding.NewBuilder()
	b.Uint(uint64(tx.Kind))

	if tx.IsCoinbase() {
		b.Bytes(nil)
	} else {
		b.FixedBytes(tx.Sender[:])
	}

	b.Uint(tx.Fee)
	b.Uint(tx.Nonce)

	if tx.Payload == nil {
		return nil, encoding.ErrEncoding
	}
	tx.Payload.Pack(b)

	return b.Build()
}

// StaticValid checks the structural invariants common to every kind
// (exactly one sender unless Coinbase) before delegating to the payload.
func (tx DataTx) StaticValid(cfg config.Config) error {
	if tx.Payload == nil || tx.Payload.Kind() != tx.Kind {
		return ErrMalformedTx
	}

	if tx.IsCoinbase() {
		if !tx.Sender.IsZero() {
			return ErrMalformedTx
		}
	} else {
		if tx.Sender.IsZero() {
			return ErrMalformedTx
		}
	}

	return tx.Payload.StaticValid(cfg)
}

// MinFee returns the payload's role-scaled minimum fee for a transaction
// of sizeBytes, as measured by SignedTx.Size.
func (tx DataTx) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return tx.Payload.MinFee(sizeBytes, role, cfg)
}

// =============================================================================

// minFeeForRole is the shared size-scaled fee floor used by every variant
// except Coinbase (which is never fee-constrained) and validation-role
// checks (which accept any fee since the block has already been mined).
func minFeeForRole(sizeBytes int, role Role, cfg config.Config) uint64 {
	if role == RoleValidation {
		return 0
	}

	bytesPerToken := cfg.PoolFeeBytesPerToken
	if role == RoleMiner {
		bytesPerToken = cfg.MinerFeeBytesPerToken
	}
	if bytesPerToken == 0 {
		return cfg.MinimumFee
	}

	fee := uint64(sizeBytes) / bytesPerToken
	if fee < cfg.MinimumFee {
		return cfg.MinimumFee
	}
	return fee
}
