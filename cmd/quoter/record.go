package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/config"
	"github.com/NaniDAO/coinchan-sub006/internal/poller"
	"github.com/NaniDAO/coinchan-sub006/internal/storage"
	"github.com/NaniDAO/coinchan-sub006/internal/storage/postgres"
)

func runRecord(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRecord(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if cfg.AMMAddress == "" {
		return fmt.Errorf("amm address is required")
	}

	pairs, err := poller.ParsePairs(cfg.Pairs)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("pair list is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	sinks := storage.Multi{storage.NewJsonlStorage(cfg.Out)}
	var meta poller.MetaStore
	if cfg.PgDSN != "" {
		pgStore, err := postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pgStore.Close()
		sinks = append(sinks, pgStore)
		meta = pgStore

		if ts, ok, err := pgStore.LoadState(ctx, "recorder"); err != nil {
			return fmt.Errorf("load state: %w", err)
		} else if ok {
			logger.Info("resuming recorder", zap.Uint64("last_round_ts", ts))
		}
	}

	runner := poller.NewRunner(poller.RunConfig{
		AMMAddress:   common.HexToAddress(cfg.AMMAddress),
		Pairs:        pairs,
		FeeBps:       cfg.FeeBps,
		SlippageBps:  cfg.SlippageBps,
		Interval:     cfg.Interval,
		Rounds:       cfg.Rounds,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, sinks, meta, logger)

	logger.Info("recorder start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("amm", cfg.AMMAddress),
		zap.Int("pairs", len(pairs)),
		zap.Uint64("fee_bps", cfg.FeeBps),
		zap.Uint64("slippage_bps", cfg.SlippageBps),
		zap.Duration("interval", cfg.Interval),
		zap.Uint64("rounds", cfg.Rounds),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PgDSN != ""),
	)

	return runner.Run(ctx)
}
