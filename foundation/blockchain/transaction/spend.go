package transaction

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
)

// SpendPayload moves funds from the DataTx's sender to Receiver.
type SpendPayload struct {
	Receiver database.AccountID
	Amount   uint64
	Version  uint16
}

// Kind implements Payload.
func (SpendPayload) Kind() Kind { return KindSpend }

// Pack implements Payload. Field order: receiver, amount, version.
func (p SpendPayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.Receiver[:])
	b.Uint(p.Amount)
	b.Uint(uint64(p.Version))
}

// StaticValid implements Payload.
func (p SpendPayload) StaticValid(cfg config.Config) error {
	if p.Version != cfg.SpendVersion {
		return ErrMalformedTx
	}
	if p.Receiver.IsZero() {
		return ErrMalformedTx
	}
	return nil
}

// MinFee implements Payload.
func (p SpendPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

// Preprocess implements Payload. Checked in order: nonce, then balance.
func (p SpendPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	total := tx.Fee + p.Amount
	if sender.Balance < total {
		return ErrInsufficientBalance
	}

	return nil
}

// Apply implements Payload. Debits sender by amount+fee and bumps its
// nonce first, then credits the receiver — so a self-spend (sender ==
// receiver) sees its own fee burn reflected before the credit lands.
func (p SpendPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	sender, err := database.Debit(sender, tx.Fee+p.Amount)
	if err != nil {
		return err
	}

	sender, err = database.BumpNonce(sender, tx.Nonce)
	if err != nil {
		return err
	}

	l.PutAccount(sender)

	receiver := l.Account(p.Receiver)
	receiver = database.Credit(receiver, p.Amount)
	l.PutAccount(receiver)

	return nil
}
