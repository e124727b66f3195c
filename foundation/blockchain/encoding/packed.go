// Package encoding implements the two canonical byte forms every
// transaction is subject to: a packed, structural encoding used for
// signing and content hashing, and an RLP wire encoding used to move
// transactions between nodes. Both are schema-driven — a variant's Pack
// method calls Builder methods in a fixed, declared order — never derived
// through runtime reflection, so the byte layout cannot silently drift as
// fields are added to a struct.
package encoding

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sort"
)

// ErrEncoding is returned when a value cannot be represented in the packed
// encoding: a required field is absent, or a value overflows its declared
// width.
var ErrEncoding = errors.New("canonical encoding error")

// TTLKind distinguishes an absolute block height from a relative offset in
// a packed TTL field.
type TTLKind byte

// The two TTL kinds. Booleans are forbidden in the packed encoding, so
// these are spelled out as explicit octets rather than a bool flag.
const (
	TTLAbsolute TTLKind = 0
	TTLRelative TTLKind = 1
)

// Builder accumulates a packed encoding one field at a time, in the fixed
// order a variant's Pack method calls it. Each field is length-prefixed so
// the boundary between fields can never be ambiguous, and integers are
// rendered in their minimal big-endian form so equal values always produce
// equal bytes regardless of their static Go width.
type Builder struct {
	buf bytes.Buffer
	err error
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Bytes appends a length-prefixed raw byte field.
func (b *Builder) Bytes(v []byte) *Builder {
	if b.err != nil {
		return b
	}

	b.writeLenPrefixed(v)
	return b
}

// FixedBytes appends a length-prefixed field for a fixed-width array, such
// as a public key or a 32 byte hash.
func (b *Builder) FixedBytes(v []byte) *Builder {
	return b.Bytes(v)
}

// Uint appends a length-prefixed, length-minimal big-endian integer field.
// The zero value is still encoded explicitly (as a zero-length string, per
// minimal big-endian) so that positional field ordering is preserved.
func (b *Builder) Uint(v uint64) *Builder {
	if b.err != nil {
		return b
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)

	i := 0
	for i < len(buf) && buf[i] == 0 {
		i++
	}

	b.writeLenPrefixed(buf[i:])
	return b
}

// TTL appends the (type_byte, value) pair used to encode a time-to-live.
func (b *Builder) TTL(kind TTLKind, value uint64) *Builder {
	b.Bytes([]byte{byte(kind)})
	b.Uint(value)
	return b
}

// StringMap appends a map-typed field. Keys are sorted lexicographically
// before encoding so the byte form does not depend on Go's randomized map
// iteration order.
func (b *Builder) StringMap(m map[string][]byte) *Builder {
	if b.err != nil {
		return b
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.Uint(uint64(len(keys)))
	for _, k := range keys {
		b.Bytes([]byte(k))
		b.Bytes(m[k])
	}

	return b
}

// Omit records that an optional field was intentionally left out of the
// encoding. It exists to make omission explicit at the call site rather
// than an accidental side effect of skipping a Builder call.
func (b *Builder) Omit() *Builder {
	return b
}

// Fail marks the builder as failed with ErrEncoding wrapping msg. Variant
// Pack implementations use this when a required field is absent, or a
// value exceeds its declared width (e.g. a fee that does not fit uint64,
// or a name longer than the protocol allows).
func (b *Builder) Fail(msg string) *Builder {
	if b.err == nil {
		b.err = errFor(msg)
	}
	return b
}

// Build returns the accumulated packed encoding, or ErrEncoding if any
// field failed along the way.
func (b *Builder) Build() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	return out, nil
}

func (b *Builder) writeLenPrefixed(v []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(v)))
	b.buf.Write(lenBuf[:])
	b.buf.Write(v)
}

func errFor(msg string) error {
	return &encodingError{msg: msg}
}

type encodingError struct {
	msg string
}

func (e *encodingError) Error() string { return "encoding: " + e.msg }
func (e *encodingError) Unwrap() error { return ErrEncoding }
