// Command aetherchain applies a genesis file to a fresh chain-state
// snapshot, persists it, and reports the resulting trie roots. It is
// deliberately not a network node: peer gossip, mining, and JSON-RPC live
// outside this engine's scope and are not implemented here.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/aetherchain/foundation/blockchain/config"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/mempool"
	"github.com/ardanlabs/aetherchain/foundation/blockchain/storage"
	"github.com/ardanlabs/aetherchain/foundation/logger"
	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"
)

// build is the git version of this program, set using build flags.
var build = "develop"

func main() {
	log, err := logger.New("AETHERCHAIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Genesis struct {
			Path string `conf:"default:zblock/genesis.json"`
		}
		Storage struct {
			DBPath string `conf:"default:zblock/aetherchain.db"`
		}
		Pool struct {
			SelectStrategy string `conf:"default:tip"`
		}
		Protocol struct {
			SignMaxSize           int    `conf:"default:64"`
			SpendVersion          uint16 `conf:"default:1"`
			MinimumFee            uint64 `conf:"default:1"`
			PoolFeeBytesPerToken  uint64 `conf:"default:1"`
			MinerFeeBytesPerToken uint64 `conf:"default:1"`
			NameSaltSize          int    `conf:"default:32"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "transaction validation and chain-state transition engine",
		},
	}

	const prefix = "AETHERCHAIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	protocol := config.Config{
		SignMaxSize:           cfg.Protocol.SignMaxSize,
		SpendVersion:          cfg.Protocol.SpendVersion,
		MinimumFee:            cfg.Protocol.MinimumFee,
		PoolFeeBytesPerToken:  cfg.Protocol.PoolFeeBytesPerToken,
		MinerFeeBytesPerToken: cfg.Protocol.MinerFeeBytesPerToken,
		NameSaltSize:          cfg.Protocol.NameSaltSize,
	}
	if err := protocol.Validate(); err != nil {
		return fmt.Errorf("invalid protocol configuration: %w", err)
	}

	log.Infow("startup", "status", "loading genesis", "path", cfg.Genesis.Path)
	gen, err := genesis.Load(cfg.Genesis.Path)
	if err != nil {
		return fmt.Errorf("loading genesis: %w", err)
	}

	snap, err := gen.Apply()
	if err != nil {
		return fmt.Errorf("applying genesis: %w", err)
	}

	log.Infow("startup", "status", "opening storage", "path", cfg.Storage.DBPath)
	kv, err := storage.OpenBolt(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer kv.Close()

	if err := snap.Persist(kv); err != nil {
		return fmt.Errorf("persisting genesis snapshot: %w", err)
	}

	pool, err := mempool.NewWithStrategy(protocol, cfg.Pool.SelectStrategy)
	if err != nil {
		return fmt.Errorf("constructing mempool: %w", err)
	}

	log.Infow("startup", "status", "genesis applied",
		"accounts_root", fmt.Sprintf("%x", snap.AccountsRoot()),
		"oracles_root", fmt.Sprintf("%x", snap.OraclesRoot()),
		"preclaims_root", fmt.Sprintf("%x", snap.PreClaimsRoot()),
		"claims_root", fmt.Sprintf("%x", snap.ClaimsRoot()),
		"mempool_count", pool.Count(),
	)

	return nil
}
