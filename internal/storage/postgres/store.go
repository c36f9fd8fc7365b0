package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NaniDAO/coinchan-sub006/internal/model"
)

// Store provides Postgres persistence for quote history.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPools inserts or updates pool metadata.
func (s *Store) UpsertPools(ctx context.Context, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, pool := range pools {
		batch.Queue(`
			INSERT INTO pools (
				chain_id, pool_id, coin_id0, coin_id1, fee_or_hook, fee_bps, custom, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			ON CONFLICT (chain_id, pool_id)
			DO UPDATE SET
				coin_id0 = EXCLUDED.coin_id0,
				coin_id1 = EXCLUDED.coin_id1,
				fee_or_hook = EXCLUDED.fee_or_hook,
				fee_bps = EXCLUDED.fee_bps,
				custom = EXCLUDED.custom,
				updated_at = now()
		`,
			int64(pool.ChainID),
			pool.PoolID,
			pool.CoinID0,
			pool.CoinID1,
			pool.FeeOrHook,
			int64(pool.FeeBps),
			pool.Custom,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertQuotes appends quote records.
func (s *Store) InsertQuotes(ctx context.Context, quotes []model.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO quotes (
				chain_id, pool_id, route, coin_in, coin_out,
				amount_in, amount_out, min_out, fee_bps, slippage_bps,
				block_number, block_time, quoted_at, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
		`,
			int64(q.ChainID),
			q.PoolID,
			q.Route,
			q.CoinIn,
			q.CoinOut,
			q.AmountIn,
			q.AmountOut,
			q.MinOut,
			int64(q.FeeBps),
			int64(q.SlippageBps),
			int64(q.BlockNumber),
			int64(q.BlockTime),
			q.QuotedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutQuoteBatch implements the storage sink interface for the recorder
// loop, which carries no request context of its own.
func (s *Store) PutQuoteBatch(quotes []model.QuoteRecord) error {
	return s.InsertQuotes(context.Background(), quotes)
}

// LoadState returns last_round_ts for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var ts uint64
	row := s.pool.QueryRow(ctx, `SELECT last_round_ts FROM recorder_state WHERE name=$1`, name)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return ts, true, nil
}

// SaveState upserts last_round_ts for a name.
func (s *Store) SaveState(ctx context.Context, name string, ts uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO recorder_state (name, last_round_ts, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_round_ts = EXCLUDED.last_round_ts, updated_at = now()
	`, name, ts)
	return err
}
