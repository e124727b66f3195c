package transaction

import (
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/database"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/encoding"
)

// EncodeDataTx renders tx into the RLP wire form package encoding declares
// for its kind: [tag, version, fields...]. It is the single place a Kind is
// mapped to its wire struct; DecodeDataTx is its exact inverse.
func EncodeDataTx(tx DataTx) ([]byte, error) {
	switch p := tx.Payload.(type) {
	case SpendPayload:
		return rlp.EncodeToBytes(encoding.SpendTxWire{
			Tag:          uint8(encoding.TagSpendTx),
			Version:      encoding.Version,
			Sender:       tx.Sender[:],
			Fee:          tx.Fee,
			Nonce:        tx.Nonce,
			Receiver:     p.Receiver[:],
			Amount:       p.Amount,
			SpendVersion: p.Version,
		})

	case CoinbasePayload:
		return rlp.EncodeToBytes(encoding.CoinbaseTxWire{
			Tag:      uint8(encoding.TagCoinbaseTx),
			Version:  encoding.Version,
			Receiver: p.Receiver[:],
			Amount:   p.Amount,
			Nonce:    tx.Nonce,
		})

	case OracleRegisterPayload:
		return rlp.EncodeToBytes(encoding.OracleRegisterTxWire{
			Tag:            uint8(encoding.TagOracleRegisterTx),
			Version:        encoding.Version,
			Sender:         tx.Sender[:],
			Fee:            tx.Fee,
			Nonce:          tx.Nonce,
			QueryFormat:    []byte(p.QueryFormat),
			ResponseFormat: []byte(p.ResponseFormat),
			QueryFee:       p.QueryFee,
			TTLType:        uint8(p.TTL.Type),
			TTLValue:       p.TTL.Value,
		})

	case OracleQueryPayload:
		return rlp.EncodeToBytes(encoding.OracleQueryTxWire{
			Tag:             uint8(encoding.TagOracleQueryTx),
			Version:         encoding.Version,
			Sender:          tx.Sender[:],
			Fee:             tx.Fee,
			Nonce:           tx.Nonce,
			OracleAddress:   p.OracleAddress[:],
			QueryData:       p.QueryData,
			QueryFee:        p.QueryFee,
			QueryTTLType:    uint8(p.QueryTTL.Type),
			QueryTTLValue:   p.QueryTTL.Value,
			ResponseTTLType: uint8(p.ResponseTTL.Type),
			ResponseTTLVal:  p.ResponseTTL.Value,
		})

	case OracleResponsePayload:
		return rlp.EncodeToBytes(encoding.OracleResponseTxWire{
			Tag:          uint8(encoding.TagOracleResponseTx),
			Version:      encoding.Version,
			Sender:       tx.Sender[:],
			Fee:          tx.Fee,
			Nonce:        tx.Nonce,
			QueryID:      p.QueryID[:],
			ResponseData: p.ResponseData,
		})

	case OracleExtendPayload:
		return rlp.EncodeToBytes(encoding.OracleExtendTxWire{
			Tag:      uint8(encoding.TagOracleExtendTx),
			Version:  encoding.Version,
			Sender:   tx.Sender[:],
			Fee:      tx.Fee,
			Nonce:    tx.Nonce,
			TTLType:  uint8(p.TTL.Type),
			TTLValue: p.TTL.Value,
		})

	case NamePreClaimPayload:
		return rlp.EncodeToBytes(encoding.NamePreClaimTxWire{
			Tag:        uint8(encoding.TagNamePreClaimTx),
			Version:    encoding.Version,
			Sender:     tx.Sender[:],
			Fee:        tx.Fee,
			Nonce:      tx.Nonce,
			Commitment: p.Commitment[:],
		})

	case NameClaimPayload:
		return rlp.EncodeToBytes(encoding.NameClaimTxWire{
			Tag:     uint8(encoding.TagNameClaimTx),
			Version: encoding.Version,
			Sender:  tx.Sender[:],
			Fee:     tx.Fee,
			Nonce:   tx.Nonce,
			Name:    []byte(p.Name),
			Salt:    p.Salt[:],
		})

	case NameUpdatePayload:
		keys := make([]string, 0, len(p.Pointers))
		for k := range p.Pointers {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pointers := make([]encoding.PointerWire, 0, len(keys))
		for _, k := range keys {
			pointers = append(pointers, encoding.PointerWire{Key: k, Value: p.Pointers[k]})
		}

		return rlp.EncodeToBytes(encoding.NameUpdateTxWire{
			Tag:      uint8(encoding.TagNameUpdateTx),
			Version:  encoding.Version,
			Sender:   tx.Sender[:],
			Fee:      tx.Fee,
			Nonce:    tx.Nonce,
			NameHash: p.NameHash[:],
			Pointers: pointers,
		})

	case NameRevokePayload:
		return rlp.EncodeToBytes(encoding.NameRevokeTxWire{
			Tag:      uint8(encoding.TagNameRevokeTx),
			Version:  encoding.Version,
			Sender:   tx.Sender[:],
			Fee:      tx.Fee,
			Nonce:    tx.Nonce,
			NameHash: p.NameHash[:],
		})

	case NameTransferPayload:
		return rlp.EncodeToBytes(encoding.NameTransferTxWire{
			Tag:      uint8(encoding.TagNameTransferTx),
			Version:  encoding.Version,
			Sender:   tx.Sender[:],
			Fee:      tx.Fee,
			Nonce:    tx.Nonce,
			NameHash: p.NameHash[:],
			NewOwner: p.NewOwner[:],
		})

	default:
		return nil, encoding.ErrEncoding
	}
}

// DecodeDataTx reverses EncodeDataTx, peeking the wire header to pick the
// matching struct before fully decoding into it.
func DecodeDataTx(data []byte) (DataTx, error) {
	tag, _, err := encoding.PeekHeader(data)
	if err != nil {
		return DataTx{}, err
	}

	switch tag {
	case encoding.TagSpendTx:
		var w encoding.SpendTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		return DataTx{
			Kind:   KindSpend,
			Sender: accountID(w.Sender),
			Fee:    w.Fee,
			Nonce:  w.Nonce,
			Payload: SpendPayload{
				Receiver: accountID(w.Receiver),
				Amount:   w.Amount,
				Version:  w.SpendVersion,
			},
		}, nil

	case encoding.TagCoinbaseTx:
		var w encoding.CoinbaseTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		return DataTx{
			Kind:    KindCoinbase,
			Nonce:   w.Nonce,
			Payload: CoinbasePayload{Receiver: accountID(w.Receiver), Amount: w.Amount},
		}, nil

	case encoding.TagOracleRegisterTx:
		var w encoding.OracleRegisterTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		return DataTx{
			Kind:   KindOracleRegister,
			Sender: accountID(w.Sender),
			Fee:    w.Fee,
			Nonce:  w.Nonce,
			Payload: OracleRegisterPayload{
				QueryFormat:    string(w.QueryFormat),
				ResponseFormat: string(w.ResponseFormat),
				QueryFee:       w.QueryFee,
				TTL:            TTL{Type: TTLType(w.TTLType), Value: w.TTLValue},
			},
		}, nil

	case encoding.TagOracleQueryTx:
		var w encoding.OracleQueryTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		return DataTx{
			Kind:   KindOracleQuery,
			Sender: accountID(w.Sender),
			Fee:    w.Fee,
			Nonce:  w.Nonce,
			Payload: OracleQueryPayload{
				OracleAddress: accountID(w.OracleAddress),
				QueryData:     w.QueryData,
				QueryFee:      w.QueryFee,
				QueryTTL:      TTL{Type: TTLType(w.QueryTTLType), Value: w.QueryTTLValue},
				ResponseTTL:   TTL{Type: TTLType(w.ResponseTTLType), Value: w.ResponseTTLVal},
			},
		}, nil

	case encoding.TagOracleResponseTx:
		var w encoding.OracleResponseTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		var qid [32]byte
		copy(qid[:], w.QueryID)
		return DataTx{
			Kind:    KindOracleResponse,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: OracleResponsePayload{QueryID: qid, ResponseData: w.ResponseData},
		}, nil

	case encoding.TagOracleExtendTx:
		var w encoding.OracleExtendTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		return DataTx{
			Kind:    KindOracleExtend,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: OracleExtendPayload{TTL: TTL{Type: TTLType(w.TTLType), Value: w.TTLValue}},
		}, nil

	case encoding.TagNamePreClaimTx:
		var w encoding.NamePreClaimTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		var commitment [32]byte
		copy(commitment[:], w.Commitment)
		return DataTx{
			Kind:    KindNamePreClaim,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: NamePreClaimPayload{Commitment: commitment},
		}, nil

	case encoding.TagNameClaimTx:
		var w encoding.NameClaimTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		var salt [32]byte
		copy(salt[:], w.Salt)
		return DataTx{
			Kind:    KindNameClaim,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: NameClaimPayload{Name: string(w.Name), Salt: salt},
		}, nil

	case encoding.TagNameUpdateTx:
		var w encoding.NameUpdateTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		var nameHash [32]byte
		copy(nameHash[:], w.NameHash)

		var pointers map[string][]byte
		if len(w.Pointers) > 0 {
			pointers = make(map[string][]byte, len(w.Pointers))
			for _, p := range w.Pointers {
				pointers[p.Key] = p.Value
			}
		}
		return DataTx{
			Kind:    KindNameUpdate,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: NameUpdatePayload{NameHash: nameHash, Pointers: pointers},
		}, nil

	case encoding.TagNameRevokeTx:
		var w encoding.NameRevokeTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		var nameHash [32]byte
		copy(nameHash[:], w.NameHash)
		return DataTx{
			Kind:    KindNameRevoke,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: NameRevokePayload{NameHash: nameHash},
		}, nil

	case encoding.TagNameTransferTx:
		var w encoding.NameTransferTxWire
		if err := rlp.DecodeBytes(data, &w); err != nil {
			return DataTx{}, err
		}
		var nameHash [32]byte
		copy(nameHash[:], w.NameHash)
		return DataTx{
			Kind:    KindNameTransfer,
			Sender:  accountID(w.Sender),
			Fee:     w.Fee,
			Nonce:   w.Nonce,
			Payload: NameTransferPayload{NameHash: nameHash, NewOwner: accountID(w.NewOwner)},
		}, nil

	default:
		return DataTx{}, encoding.ErrEncoding
	}
}

// EncodeSignedTx wraps stx's inner DataTx wire bytes and signature into the
// consensus envelope package encoding defines.
func EncodeSignedTx(stx SignedTx) ([]byte, error) {
	inner, err := EncodeDataTx(stx.Data)
	if err != nil {
		return nil, err
	}
	return encoding.EncodeSignedTx(stx.Signature, inner)
}

// DecodeSignedTx reverses EncodeSignedTx.
func DecodeSignedTx(data []byte) (SignedTx, error) {
	sig, inner, err := encoding.DecodeSignedTx(data)
	if err != nil {
		return SignedTx{}, err
	}

	tx, err := DecodeDataTx(inner)
	if err != nil {
		return SignedTx{}, err
	}

	return SignedTx{Data: tx, Signature: sig}, nil
}

// accountID copies a wire byte slice into a fixed AccountID, tolerating a
// short or absent slice (Coinbase's zero sender) rather than panicking.
func accountID(b []byte) database.AccountID {
	var id database.AccountID
	copy(id[:], b)
	return id
}
