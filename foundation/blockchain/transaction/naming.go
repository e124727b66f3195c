package transaction

import (
	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/signature"
)

// NameHash derives the identifier a claimed name is stored under.
func NameHash(name string) [32]byte {
	return signature.Hash([]byte(name))
}

func commitmentOf(name string, salt [32]byte) [32]byte {
	buf, _ := encoding.NewBuilder().
		Bytes([]byte(name)).
		FixedBytes(salt[:]).
		Build()
	return signature.Hash(buf)
}

// =============================================================================

// NamePreClaimPayload reserves a commitment to a name without revealing the
// name itself, closing the front-running window between broadcast and
// confirmation.
type NamePreClaimPayload struct {
	Commitment [32]byte
}

func (NamePreClaimPayload) Kind() Kind { return KindNamePreClaim }

func (p NamePreClaimPayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.Commitment[:])
}

func (p NamePreClaimPayload) StaticValid(cfg config.Config) error {
	return nil
}

func (p NamePreClaimPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p NamePreClaimPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	if _, ok := l.PreClaim(p.Commitment); ok {
		return ErrOracleStateConflict
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p NamePreClaimPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	l.PutPreClaim(PreClaim{Commitment: p.Commitment, Owner: tx.Sender})
	return nil
}

// =============================================================================

// NameClaimPayload reveals the name and salt behind an earlier PreClaim and
// converts it into a confirmed Claim.
type NameClaimPayload struct {
	Name string
	Salt [32]byte
}

func (NameClaimPayload) Kind() Kind { return KindNameClaim }

func (p NameClaimPayload) Pack(b *encoding.Builder) {
	b.Bytes([]byte(p.Name))
	b.FixedBytes(p.Salt[:])
}

func (p NameClaimPayload) StaticValid(cfg config.Config) error {
	if p.Name == "" {
		return ErrMalformedName
	}
	if len(p.Salt) != cfg.NameSaltSize {
		return ErrMalformedName
	}
	return nil
}

func (p NameClaimPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

// Preprocess checks preconditions in a fixed order: the pre-claim must
// exist before its owner is even meaningful to compare, so an unknown
// commitment reports ErrUnknownPreClaim rather than a misleading
// ErrWrongPreClaimOwner.
func (p NameClaimPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	commitment := commitmentOf(p.Name, p.Salt)

	pc, ok := l.PreClaim(commitment)
	if !ok {
		return ErrUnknownPreClaim
	}

	if pc.Owner != tx.Sender {
		return ErrWrongPreClaimOwner
	}

	nameHash := NameHash(p.Name)
	if _, exists := l.Claim(nameHash); exists {
		return ErrNameAlreadyClaimed
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p NameClaimPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	commitment := commitmentOf(p.Name, p.Salt)
	l.DeletePreClaim(commitment)

	nameHash := NameHash(p.Name)
	l.PutClaim(Claim{
		NameHash:    nameHash,
		Name:        p.Name,
		Owner:       tx.Sender,
		ClaimHeight: height,
		Pointers:    map[string][]byte{},
	})

	return nil
}

// =============================================================================

// NameUpdatePayload replaces the pointer set attached to a claimed name.
type NameUpdatePayload struct {
	NameHash [32]byte
	Pointers map[string][]byte
}

func (NameUpdatePayload) Kind() Kind { return KindNameUpdate }

func (p NameUpdatePayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.NameHash[:])
	b.StringMap(p.Pointers)
}

func (p NameUpdatePayload) StaticValid(cfg config.Config) error {
	return nil
}

func (p NameUpdatePayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p NameUpdatePayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	c, ok := l.Claim(p.NameHash)
	if !ok {
		return ErrUnknownPreClaim
	}
	if c.Owner != tx.Sender {
		return ErrWrongPreClaimOwner
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p NameUpdatePayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	c, _ := l.Claim(p.NameHash)
	pointers := make(map[string][]byte, len(p.Pointers))
	for k, v := range p.Pointers {
		pointers[k] = v
	}
	c.Pointers = pointers
	l.PutClaim(c)

	return nil
}

// =============================================================================

// NameRevokePayload permanently releases a claimed name.
type NameRevokePayload struct {
	NameHash [32]byte
}

func (NameRevokePayload) Kind() Kind { return KindNameRevoke }

func (p NameRevokePayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.NameHash[:])
}

func (p NameRevokePayload) StaticValid(cfg config.Config) error {
	return nil
}

func (p NameRevokePayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p NameRevokePayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	c, ok := l.Claim(p.NameHash)
	if !ok {
		return ErrUnknownPreClaim
	}
	if c.Owner != tx.Sender {
		return ErrWrongPreClaimOwner
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p NameRevokePayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	l.DeleteClaim(p.NameHash)
	return nil
}

// =============================================================================

// NameTransferPayload reassigns ownership of a claimed name.
type NameTransferPayload struct {
	NameHash [32]byte
	NewOwner database.AccountID
}

func (NameTransferPayload) Kind() Kind { return KindNameTransfer }

func (p NameTransferPayload) Pack(b *encoding.Builder) {
	b.FixedBytes(p.NameHash[:])
	b.FixedBytes(p.NewOwner[:])
}

func (p NameTransferPayload) StaticValid(cfg config.Config) error {
	if p.NewOwner.IsZero() {
		return ErrMalformedTx
	}
	return nil
}

func (p NameTransferPayload) MinFee(sizeBytes int, role Role, cfg config.Config) uint64 {
	return minFeeForRole(sizeBytes, role, cfg)
}

func (p NameTransferPayload) Preprocess(l Ledger, tx DataTx, height uint64) error {
	sender := l.Account(tx.Sender)

	if tx.Nonce <= sender.Nonce {
		return ErrNonceOutOfOrder
	}

	c, ok := l.Claim(p.NameHash)
	if !ok {
		return ErrUnknownPreClaim
	}
	if c.Owner != tx.Sender {
		return ErrWrongPreClaimOwner
	}

	if sender.Balance < tx.Fee {
		return ErrInsufficientBalance
	}

	return nil
}

func (p NameTransferPayload) Apply(l Ledger, tx DataTx, height uint64) error {
	if err := chargeAndBump(l, tx, 0); err != nil {
		return err
	}

	c, _ := l.Claim(p.NameHash)
	c.Owner = p.NewOwner
	l.PutClaim(c)

	return nil
}
