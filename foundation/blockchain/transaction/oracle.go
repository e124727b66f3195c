package transaction

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
)

// QueryID derives the identifier an OracleQuery is stored and later
// answered under. It is a deterministic function of the querying account,
// the nonce of the query transaction, and the oracle being queried, so two
// nodes replaying the same block always agree on it without either side
// having to communicate it out of band.
func QueryID(sender database.AccountID, nonce uint64, oracle database.AccountID) [32]byte {
	buf, _ := encoding.NewBuilder().
		FixedBytes(sender[:]).
		Uint(nonce).
		FixedBytes(oracle[:]).
		Build()
	return signature.Hash(buf)
}

func chargeAndBump(l Ledger, tx DataTx, extra uint64) error {
	sender := l.Account(tx.Sender)

	sender, err := database.Debit(sender, tx.Fee+extra)
	if err != nil {
		return err
	}

	sender, err = database.BumpNonce(sender, tx.Nonce)
	if err != nil {
		return err
	}

	l.PutAccount(sender)
	return nil
}

// =============================================================================

// OracleRegisterPayload publishes a query/response schema under the
// sender's account, making it a queryable oracle.
type OracleRegisterPayload struct {
	QueryFormat    string
	ResponseFormat string
	QueryFee       uint64
	TTL            TTL
}

func (OracleRegisterPayload) Kind() Kind { return KindOracleRegister }

func (p OracleRegisterPayload) Pack(b *encoding.Builder) {
	b.Bytes([]byte(p.QueryFormat))
	b.Bytes([]byte(p.ResponseFormat))
	b.Uint(p.QueryFee)
	b.TTL(encoding.TTLKind(p.TTL.Type), p.TTL.Value)
}

func (p OracleRegisterPayload) StaticValid(cfg config.Config) error {
	if p.QueryFormat == "" || p.ResponseFormat == "" {
		return ErrSchemaMismatch
	}
	return nil
}

func (p OracleRegisterPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p OracleRegisterPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	if _, ok := l.RegisteredOracle(tx.Sender); ok {
		return ErrOracleStateConflict
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p OracleRegisterPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	l.PutRegisteredOracle(OracleRecord{
		Owner:          tx.Sender,
		QueryFormat:    p.QueryFormat,
		ResponseFormat: p.ResponseFormat,
		QueryFee:       p.QueryFee,
		ExpiryHeight:   p.TTL.ExpiryHeight(height),
	})

	return nil
}

// =============================================================================

// OracleQueryPayload asks a registered oracle a question, creating an
// interaction-object the oracle can later respond to.
type OracleQueryPayload struct {
	OracleAddress database.AccountID
	QueryData     []byte
	QueryFee      uint64
	QueryTTL      TTL
	ResponseTTL   TTL
}

func (OracleQueryPayload) Kind() Kind { return KindOracleQuery }

func (p OracleQueryPayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.OracleAddress[:])
	b.Bytes(p.QueryData)
	b.Uint(p.QueryFee)
	b.TTL(encoding.TTLKind(p.QueryTTL.Type), p.QueryTTL.Value)
	b.TTL(encoding.TTLKind(p.ResponseTTL.Type), p.ResponseTTL.Value)
}

func (p OracleQueryPayload) StaticValid(cfg config.Config) error {
	if p.OracleAddress.IsZero() || len(p.QueryData) == 0 {
		return ErrMalformedTx
	}
	return nil
}

func (p OracleQueryPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p OracleQueryPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	rec, ok := l.RegisteredOracle(p.OracleAddress)
	if !ok {
		return ErrUnknownOracle
	}
	if rec.ExpiryHeight <= height {
		return ErrUnknownOracle
	}
	if rec.QueryFormat == "" {
		return ErrSchemaMismatch
	}

	qid := QueryID(tx.Sender, tx.Nonce, p.OracleAddress)
	if _, exists := l.Interaction(qid); exists {
		return ErrOracleStateConflict
	}

	if sender.Balance < tx.Fee+p.QueryFee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p OracleQueryPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, p.QueryFee); err != nil {
		return err
	}

	qid := QueryID(tx.Sender, tx.Nonce, p.OracleAddress)
	l.PutInteraction(Interaction{
		QueryID:        qid,
		OracleAddress:  p.OracleAddress,
		Sender:         tx.Sender,
		QueryData:      p.QueryData,
		QueryFee:       p.QueryFee,
		QueryExpiry:    p.QueryTTL.ExpiryHeight(height),
		ResponseExpiry: p.ResponseTTL.ExpiryHeight(height),
	})

	return nil
}

// =============================================================================

// OracleResponsePayload answers a previously created interaction-object.
type OracleResponsePayload struct {
	QueryID      [32]byte
	ResponseData []byte
}

func (OracleResponsePayload) Kind() Kind { return KindOracleResponse }

func (p OracleResponsePayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.QueryID[:])
	b.Bytes(p.ResponseData)
}

func (p OracleResponsePayload) StaticValid(cfg config.Config) error {
	if len(p.ResponseData) == 0 {
		return ErrMalformedTx
	}
	return nil
}

func (p OracleResponsePayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p OracleResponsePayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	it, ok := l.Interaction(p.QueryID)
	if !ok {
		return ErrUnknownOracle
	}
	if it.HasResponse {
		return ErrOracleStateConflict
	}
	if it.OracleAddress != tx.Sender {
		return ErrOracleStateConflict
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p OracleResponsePayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	it, _ := l.Interaction(p.QueryID)
	it.ResponseData = p.ResponseData
	it.HasResponse = true
	l.PutInteraction(it)

	return nil
}

// =============================================================================

// OracleExtendPayload extends the expiry of the sender's oracle
// registration.
type OracleExtendPayload struct {
	TTL TTL
}

func (OracleExtendPayload) Kind() Kind { return KindOracleExtend }

func (p OracleExtendPayload) Pack(b *encoding.Builder) {
	b.TTL(encoding.TTLKind(p.TTL.Type), p.TTL.Value)
}

func (p OracleExtendPayload) StaticValid(cfg config.Config) error {
	return nil
}

func (p OracleExtendPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p OracleExtendPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	if _, ok := l.RegisteredOracle(tx.Sender); !ok {
		return ErrUnknownOracle
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p OracleExtendPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	rec, _ := l.RegisteredOracle(tx.Sender)
	rec.ExpiryHeight = p.TTL.ExpiryHeight(height)
	l.PutRegisteredOracle(rec)

	return nil
}
