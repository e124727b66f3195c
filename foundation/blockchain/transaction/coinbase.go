package transaction

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
)

// CoinbasePayload mints the block reward for a miner. It has no sender and
// carries no signature; the DataTx's Nonce field is repurposed to record
// the block height it was mined at (see DESIGN.md for why this quirk is
// preserved rather than redesigned).
type CoinbasePayload struct {
	Receiver database.AccountID
	Amount   uint64
}

// Kind implements Payload.
func (CoinbasePayload) Kind() Kind { return KindCoinbase }

// Pack implements Payload. Field order: receiver, amount.
func (p CoinbasePayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.Receiver[:])
	b.Uint(p.Amount)
}

// StaticValid implements Payload.
func (p CoinbasePayload) StaticValid(cfg config.Config) error {
	if p.Receiver.IsZero() {
		return ErrMalformedTx
	}
	return nil
}

// MinFee implements Payload. Coinbase is never fee-constrained.
func (p CoinbasePayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return 0
}

// Preprocess implements Payload. Coinbase has no sender-side precondition.
func (p CoinbasePayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	return nil
}

// Apply implements Payload. Credits the receiver only; there is no
// sender-side debit and no nonce to bump.
func (p CoinbasePayload) Apply(l Ledger, tx DataTx, height uint64) error {
	receiver := l.Account(p.Receiver)
	receiver = database.Credit(receiver, p.Amount)
	l.PutAccount(receiver)
	return nil
}

// Reward implements Rewarder, crediting acc with the coinbase amount
// whatever the tx's own Receiver field. mempool.EstimatePayout uses it to
// project a miner's payout; block application credits through Apply.
func (p CoinbasePayload) Reward(acc database.Account) database.Account {
	return database.Credit(acc, p.Amount)
}
