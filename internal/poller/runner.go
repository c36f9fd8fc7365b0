package poller

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/dex"
	"github.com/NaniDAO/coinchan-sub006/internal/model"
	"github.com/NaniDAO/coinchan-sub006/internal/poolkey"
	"github.com/NaniDAO/coinchan-sub006/internal/router"
	"github.com/NaniDAO/coinchan-sub006/internal/storage"
	"github.com/NaniDAO/coinchan-sub006/internal/swapmath"
)

// PairSpec names one pair to quote each round: the sell and buy coin ids
// (0 is the hub asset) and the reference input amount in smallest units.
type PairSpec struct {
	SellID   *big.Int
	BuyID    *big.Int
	AmountIn *big.Int
}

// RunConfig holds runtime settings for the quote recorder.
type RunConfig struct {
	AMMAddress   common.Address
	Pairs        []PairSpec
	FeeBps       uint64
	SlippageBps  uint64
	Interval     time.Duration
	Rounds       uint64 // 0 means run until cancelled
	MaxRetries   int
	RetryBackoff time.Duration
}

// MetaStore persists pool metadata and recorder progress. A nil MetaStore
// disables both.
type MetaStore interface {
	UpsertPools(ctx context.Context, pools []model.Pool) error
	SaveState(ctx context.Context, name string, ts uint64) error
}

// Runner periodically re-reads pool reserves, recomputes quotes, and writes
// them to storage. Reserves are fetched fresh every round; nothing below the
// runner caches them, so each record reflects the chain at its block.
type Runner struct {
	cfg     RunConfig
	chain   *chain.Client
	storage storage.Storage
	meta    MetaStore
	logger  *zap.Logger
}

// NewRunner builds a Runner with its dependencies. meta may be nil.
func NewRunner(cfg RunConfig, chainClient *chain.Client, storageSink storage.Storage, meta MetaStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		chain:   chainClient,
		storage: storageSink,
		meta:    meta,
		logger:  logger,
	}
}

// Run executes the recording loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if len(r.cfg.Pairs) == 0 {
		return fmt.Errorf("at least one pair is required")
	}
	if r.cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	chainID, err := r.chain.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	chainIDValue := chainID.Uint64()

	if err := r.registerPools(ctx, chainIDValue); err != nil {
		return fmt.Errorf("register pools: %w", err)
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for round := uint64(1); ; round++ {
		if err := r.runRound(ctx, chainIDValue); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		if r.cfg.Rounds > 0 && round >= r.cfg.Rounds {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Runner) runRound(ctx context.Context, chainID uint64) error {
	blockNumber, err := r.latestBlockWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}
	blockTime, err := r.blockTimeWithRetry(ctx, blockNumber)
	if err != nil {
		return fmt.Errorf("block header %d: %w", blockNumber, err)
	}

	quotedAt := time.Now().UTC().Format(time.RFC3339Nano)
	records := make([]model.QuoteRecord, 0, len(r.cfg.Pairs))
	for _, pair := range r.cfg.Pairs {
		record, err := r.quotePair(ctx, chainID, pair, blockNumber, blockTime, quotedAt)
		if err != nil {
			return fmt.Errorf("pair %s->%s: %w", pair.SellID, pair.BuyID, err)
		}
		records = append(records, record)
	}

	if err := r.storage.PutQuoteBatch(records); err != nil {
		return fmt.Errorf("store quotes: %w", err)
	}

	if r.meta != nil {
		if err := r.meta.SaveState(ctx, "recorder", uint64(time.Now().Unix())); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	r.logger.Info("round complete", zap.Int("quotes", len(records)), zap.Uint64("block", blockNumber))
	return nil
}

// registerPools derives every pool the configured pairs can touch and
// upserts their metadata once per run. Two-hop pairs contribute both hub
// legs.
func (r *Runner) registerPools(ctx context.Context, chainID uint64) error {
	if r.meta == nil {
		return nil
	}

	seen := make(map[string]bool)
	pools := make([]model.Pool, 0, len(r.cfg.Pairs))
	add := func(sell, buy poolkey.Token) error {
		key, id, feeBps, err := poolkey.ForPair(sell, buy, r.cfg.FeeBps)
		if err != nil {
			return err
		}
		hexID := id.Hex()
		if seen[hexID] {
			return nil
		}
		seen[hexID] = true
		pools = append(pools, model.Pool{
			ChainID:   chainID,
			PoolID:    hexID,
			CoinID0:   key.ID0.String(),
			CoinID1:   key.ID1.String(),
			FeeOrHook: key.FeeOrHook.String(),
			FeeBps:    feeBps,
			Custom:    sell.Custom != nil || buy.Custom != nil,
		})
		return nil
	}

	hub := poolkey.Token{ID: poolkey.HubAssetID()}
	for _, pair := range r.cfg.Pairs {
		sell := poolkey.Token{ID: pair.SellID}
		buy := poolkey.Token{ID: pair.BuyID}
		if sell.IsHub() || buy.IsHub() {
			if err := add(sell, buy); err != nil {
				return err
			}
			continue
		}
		if err := add(sell, hub); err != nil {
			return err
		}
		if err := add(hub, buy); err != nil {
			return err
		}
	}

	return r.meta.UpsertPools(ctx, pools)
}

func (r *Runner) quotePair(ctx context.Context, chainID uint64, pair PairSpec, blockNumber, blockTime uint64, quotedAt string) (model.QuoteRecord, error) {
	sell := poolkey.Token{ID: pair.SellID}
	buy := poolkey.Token{ID: pair.BuyID}

	var (
		amountOut *big.Int
		poolID    common.Hash
		routeKind string
	)

	switch {
	case sell.IsHub() || buy.IsHub():
		key, id, feeBps, err := poolkey.ForPair(sell, buy, r.cfg.FeeBps)
		if err != nil {
			return model.QuoteRecord{}, err
		}
		pool, err := r.snapshotPool(ctx, key, id, feeBps)
		if err != nil {
			return model.QuoteRecord{}, err
		}
		amountOut = router.Direct{Pool: pool, ZeroForHub: buy.IsHub()}.EstimateOut(pair.AmountIn)
		poolID = id
		routeKind = "direct"

	default:
		hub := poolkey.Token{ID: poolkey.HubAssetID()}
		keyA, idA, feeA, err := poolkey.ForPair(sell, hub, r.cfg.FeeBps)
		if err != nil {
			return model.QuoteRecord{}, err
		}
		keyB, idB, feeB, err := poolkey.ForPair(hub, buy, r.cfg.FeeBps)
		if err != nil {
			return model.QuoteRecord{}, err
		}
		poolA, err := r.snapshotPool(ctx, keyA, idA, feeA)
		if err != nil {
			return model.QuoteRecord{}, err
		}
		poolB, err := r.snapshotPool(ctx, keyB, idB, feeB)
		if err != nil {
			return model.QuoteRecord{}, err
		}
		amountOut = router.TwoHop{First: poolA, Second: poolB}.EstimateOut(pair.AmountIn)
		poolID = idB
		routeKind = "two-hop"
	}

	minOut, err := swapmath.MinOut(amountOut, r.cfg.SlippageBps)
	if err != nil {
		return model.QuoteRecord{}, err
	}

	return model.QuoteRecord{
		ChainID:     chainID,
		PoolID:      poolID.Hex(),
		Route:       routeKind,
		CoinIn:      pair.SellID.String(),
		CoinOut:     pair.BuyID.String(),
		AmountIn:    pair.AmountIn.String(),
		AmountOut:   amountOut.String(),
		MinOut:      minOut.String(),
		FeeBps:      r.cfg.FeeBps,
		SlippageBps: r.cfg.SlippageBps,
		BlockNumber: blockNumber,
		BlockTime:   blockTime,
		QuotedAt:    quotedAt,
	}, nil
}

// snapshotPool reads a fresh reserve snapshot for the pool. reserve0 is the
// hub leg whenever the key's first id is the hub sentinel, which canonical
// ordering guarantees for every hub pair.
func (r *Runner) snapshotPool(ctx context.Context, key poolkey.PoolKey, id common.Hash, feeBps uint64) (router.Pool, error) {
	var reserve0, reserve1 *big.Int
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		reserve0, reserve1, err = dex.ReadReserves(ctx, r.chain, r.cfg.AMMAddress, id)
		if err != nil {
			r.logger.Warn("reserve read failed", zap.String("pool", id.Hex()), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return router.Pool{}, err
	}

	return router.Pool{
		Key:          key,
		ID:           id,
		ReserveHub:   reserve0,
		ReserveAsset: reserve1,
		FeeBps:       feeBps,
	}, nil
}

func (r *Runner) blockTimeWithRetry(ctx context.Context, blockNumber uint64) (uint64, error) {
	var blockTime uint64
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		header, err := r.chain.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
		if err != nil {
			r.logger.Warn("header fetch failed", zap.Uint64("block", blockNumber), zap.Error(err))
			return err
		}
		blockTime = header.Time
		return nil
	})
	return blockTime, err
}

func (r *Runner) latestBlockWithRetry(ctx context.Context) (uint64, error) {
	var blockNumber uint64
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		blockNumber, err = r.chain.LatestBlockNumber(ctx)
		if err != nil {
			r.logger.Warn("latest block fetch failed", zap.Error(err))
		}
		return err
	})
	return blockNumber, err
}
