// Package config holds the enumerated protocol configuration the
// chain-state engine and every transaction variant are constructed with.
// Every value here is consensus relevant: two nodes running with different
// configuration values will compute different, incompatible state roots.
package config

import "github.com/go-playground/validator/v10"

// Config is the full set of protocol parameters. There is deliberately no
// dynamic lookup path (no viper, no env var indirection reachable from
// variant code) — the engine is handed one of these at construction and it
// never changes for the lifetime of that engine.
type Config struct {
	// SignMaxSize bounds the byte length of any detached signature accepted
	// on a SignedTx.
	SignMaxSize int `validate:"gt=0"`

	// SpendVersion is the only accepted value of a SpendTx payload's
	// version field.
	SpendVersion uint16 `validate:"gte=0"`

	// MinimumFee is the fee floor applied to every transaction kind before
	// the per-role, size-scaled minimum is considered.
	MinimumFee uint64 `validate:"gte=0"`

	// PoolFeeBytesPerToken and MinerFeeBytesPerToken parameterize
	// min_fee(size_bytes) = size_bytes / bytes_per_token for the pool and
	// miner roles respectively. Role "validation" ignores both and accepts
	// any fee.
	PoolFeeBytesPerToken  uint64 `validate:"gt=0"`
	MinerFeeBytesPerToken uint64 `validate:"gt=0"`

	// NameSaltSize is the required byte length of a NameClaim's salt.
	NameSaltSize int `validate:"gt=0"`
}

// Default returns the configuration used by tests and the reference node
// build: a signature bound matching ed25519's fixed 64 bytes, protocol
// version 1, and a permissive fee schedule.
func Default() Config {
	return Config{
		SignMaxSize:           64,
		SpendVersion:          1,
		MinimumFee:            1,
		PoolFeeBytesPerToken:  1,
		MinerFeeBytesPerToken: 1,
		NameSaltSize:          32,
	}
}

// Validate checks that every field is within its documented bounds. The
// node binary calls it once at startup; the engine does not call it.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
