package encoding

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
)

// Tag identifies a transaction (or account) kind on the wire. The table is
// consensus-critical: changing a tag value forks any node that has not
// been upgraded in lock-step.
//
// This freezes the ambiguity the original implementation carried (its
// type_to_tag/1 and tag_to_type/1 tables disagreed on 21/22/24 for the
// oracle registration and query kinds). The table below is the single
// source of truth; see DESIGN.md for the resolution.
type Tag uint8

// The full, closed tag table.
const (
	TagAccount          Tag = 10
	TagSignedTx         Tag = 11
	TagSpendTx          Tag = 12
	TagCoinbaseTx       Tag = 13
	TagOracleRegisterTx Tag = 22
	TagOracleQueryTx    Tag = 23
	TagOracleResponseTx Tag = 24
	TagOracleExtendTx   Tag = 25
	TagNamePreClaimTx   Tag = 30
	TagNameClaimTx      Tag = 31
	TagNameUpdateTx     Tag = 32
	TagNameRevokeTx     Tag = 33
	TagNameTransferTx   Tag = 34
)

// Version is the current protocol version stamped into every wire
// encoding. Every transaction kind is at version 1.
const Version uint8 = 1

// PeekHeader decodes only the leading (tag, version) pair from an RLP list
// without decoding the remainder, so a caller can pick the right concrete
// wire type to fully decode into.
func PeekHeader(data []byte) (tag Tag, version uint8, err error) {
	s := rlp.NewStream(bytes.NewReader(data), 0)

	if _, err = s.List(); err != nil {
		return 0, 0, err
	}

	t, err := s.Uint()
	if err != nil {
		return 0, 0, err
	}

	v, err := s.Uint()
	if err != nil {
		return 0, 0, err
	}

	return Tag(t), uint8(v), nil
}

// =============================================================================
// Wire structs. One per consensus-visible kind, each starting with the
// (Tag, Version) header pair so the encoded form always begins
// [tag, version, field1, ..., fieldn] as required by the wire format.

// SpendTxWire is the RLP form of a SpendTx's DataTx.
type SpendTxWire struct {
	Tag          uint8
	Version      uint8
	Sender       []byte
	Fee          uint64
	Nonce        uint64
	Receiver     []byte
	Amount       uint64
	SpendVersion uint16 // SpendPayload's own version field, distinct from the header Version
}

// CoinbaseTxWire is the RLP form of a Coinbase DataTx. Its Nonce field is
// repurposed to carry the block height, matching the source encoding this
// chain interoperates with; see DESIGN.md.
type CoinbaseTxWire struct {
	Tag      uint8
	Version  uint8
	Receiver []byte
	Amount   uint64
	Nonce    uint64
}

// OracleRegisterTxWire is the RLP form of an OracleRegister DataTx.
type OracleRegisterTxWire struct {
	Tag            uint8
	Version        uint8
	Sender         []byte
	Fee            uint64
	Nonce          uint64
	QueryFormat    []byte
	ResponseFormat []byte
	QueryFee       uint64
	TTLType        uint8
	TTLValue       uint64
}

// OracleQueryTxWire is the RLP form of an OracleQuery DataTx.
type OracleQueryTxWire struct {
	Tag             uint8
	Version         uint8
	Sender          []byte
	Fee             uint64
	Nonce           uint64
	OracleAddress   []byte
	QueryData       []byte
	QueryFee        uint64
	QueryTTLType    uint8
	QueryTTLValue   uint64
	ResponseTTLType uint8
	ResponseTTLVal  uint64
}

// OracleResponseTxWire is the RLP form of an OracleResponse DataTx.
type OracleResponseTxWire struct {
	Tag          uint8
	Version      uint8
	Sender       []byte
	Fee          uint64
	Nonce        uint64
	QueryID      []byte
	ResponseData []byte
}

// OracleExtendTxWire is the RLP form of an OracleExtend DataTx.
type OracleExtendTxWire struct {
	Tag      uint8
	Version  uint8
	Sender   []byte
	Fee      uint64
	Nonce    uint64
	TTLType  uint8
	TTLValue uint64
}

// NamePreClaimTxWire is the RLP form of a NamePreClaim DataTx.
type NamePreClaimTxWire struct {
	Tag        uint8
	Version    uint8
	Sender     []byte
	Fee        uint64
	Nonce      uint64
	Commitment []byte
}

// NameClaimTxWire is the RLP form of a NameClaim DataTx.
type NameClaimTxWire struct {
	Tag     uint8
	Version uint8
	Sender  []byte
	Fee     uint64
	Nonce   uint64
	Name    []byte
	Salt    []byte
}

// PointerWire is one key/value entry of a NameUpdateTxWire's pointer set.
// Encoders must sort these by Key before encoding: RLP has no native map
// type, and ranging over a Go map directly would make the wire bytes
// depend on Go's randomized iteration order.
type PointerWire struct {
	Key   string
	Value []byte
}

// NameUpdateTxWire is the RLP form of a NameUpdate DataTx.
type NameUpdateTxWire struct {
	Tag      uint8
	Version  uint8
	Sender   []byte
	Fee      uint64
	Nonce    uint64
	NameHash []byte
	Pointers []PointerWire
}

// NameRevokeTxWire is the RLP form of a NameRevoke DataTx.
type NameRevokeTxWire struct {
	Tag      uint8
	Version  uint8
	Sender   []byte
	Fee      uint64
	Nonce    uint64
	NameHash []byte
}

// NameTransferTxWire is the RLP form of a NameTransfer DataTx.
type NameTransferTxWire struct {
	Tag      uint8
	Version  uint8
	Sender   []byte
	Fee      uint64
	Nonce    uint64
	NameHash []byte
	NewOwner []byte
}

// SignedTxWire is the RLP form of a SignedTx envelope: the signature
// wrapped in its own single-element list, followed by the raw, already
// RLP-encoded inner DataTx. A Coinbase's absent signature serializes as
// the single byte 0x00 in place of the signature list (RLP's empty string
// would be 0x80).
type SignedTxWire struct {
	Tag        uint8
	Version    uint8
	Signature  rlp.RawValue
	InnerBytes rlp.RawValue
}

// EncodeSignedTx assembles the [11, 1, rlp([signature]), rlp(inner)]
// envelope. A nil signature (Coinbase) encodes as the single byte 0x00.
func EncodeSignedTx(signature []byte, innerEncoded []byte) ([]byte, error) {
	sigList, err := rlp.EncodeToBytes([][]byte{signature})
	if err != nil {
		return nil, err
	}
	if signature == nil {
		sigList = []byte{0x00}
	}

	return rlp.EncodeToBytes(SignedTxWire{
		Tag:        uint8(TagSignedTx),
		Version:    Version,
		Signature:  sigList,
		InnerBytes: innerEncoded,
	})
}

// DecodeSignedTx reverses EncodeSignedTx, returning the raw signature list
// bytes and the raw inner DataTx bytes for further decoding by tag.
func DecodeSignedTx(data []byte) (signature []byte, innerEncoded []byte, err error) {
	var w SignedTxWire
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return nil, nil, err
	}

	if len(w.Signature) == 1 && w.Signature[0] == 0x00 {
		return nil, w.InnerBytes, nil
	}

	var sigs [][]byte
	if err := rlp.DecodeBytes(w.Signature, &sigs); err != nil {
		return nil, nil, err
	}
	if len(sigs) != 1 {
		return nil, nil, ErrEncoding
	}

	return sigs[0], w.InnerBytes, nil
}
