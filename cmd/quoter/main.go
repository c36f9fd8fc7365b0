package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/config"
	"github.com/NaniDAO/coinchan-sub006/internal/dex"
	"github.com/NaniDAO/coinchan-sub006/internal/poolkey"
	"github.com/NaniDAO/coinchan-sub006/internal/router"
	"github.com/NaniDAO/coinchan-sub006/internal/swapmath"
	"github.com/NaniDAO/coinchan-sub006/internal/units"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "AMM quote and sale-curve pricing tool",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a single swap",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("rpc", "", "RPC URL (omit when reserves are given)")
	quoteCmd.Flags().String("amm", "", "AMM contract address")
	quoteCmd.Flags().String("sell", "", "sell coin id (0 is the hub asset)")
	quoteCmd.Flags().String("buy", "", "buy coin id (0 is the hub asset)")
	quoteCmd.Flags().String("amount-in", "", "exact input amount in smallest units")
	quoteCmd.Flags().String("amount-out", "", "exact output amount in smallest units (direct routes only)")
	quoteCmd.Flags().String("reserves", "", "offline reserves hub:asset for the (first) pool")
	quoteCmd.Flags().String("reserves2", "", "offline reserves hub:asset for the second pool")
	quoteCmd.Flags().Uint64("fee-bps", 100, "swap fee in basis points")
	quoteCmd.Flags().Uint64("slippage-bps", 50, "slippage tolerance in basis points")
	quoteCmd.Flags().Uint("sell-decimals", 18, "display decimals of the sell token")
	quoteCmd.Flags().Uint("buy-decimals", 18, "display decimals of the buy token")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "Evaluate a token-sale bonding curve",
		RunE:  runCurve,
	}

	curveCmd.Flags().String("rpc", "", "RPC URL (omit when curve parameters are given)")
	curveCmd.Flags().String("sale", "", "sale contract address")
	curveCmd.Flags().String("coin", "", "coin id to load sale state for")
	curveCmd.Flags().String("sale-cap", "", "total sellable quantity in smallest units")
	curveCmd.Flags().String("divisor", "", "curve steepness divisor")
	curveCmd.Flags().String("eth-target", "", "target cumulative raise in wei")
	curveCmd.Flags().String("quad-cap", "", "quantity past which pricing turns linear (empty means fully quadratic)")
	curveCmd.Flags().String("sold", "", "quantity already sold in smallest units")
	curveCmd.Flags().String("target", "", "wei budget to invert into a token quantity")
	curveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(curveCmd)

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Periodically record quotes for configured pairs",
		RunE:  runRecord,
	}

	recordCmd.Flags().String("rpc", "", "RPC URL")
	recordCmd.Flags().String("amm", "", "AMM contract address")
	recordCmd.Flags().StringSlice("pair", nil, "pairs to quote as sellID:buyID:amountIn (comma-separated)")
	recordCmd.Flags().Uint64("fee-bps", 100, "swap fee in basis points")
	recordCmd.Flags().Uint64("slippage-bps", 50, "slippage tolerance in basis points")
	recordCmd.Flags().Duration("interval", 15*time.Second, "delay between rounds")
	recordCmd.Flags().Uint64("rounds", 0, "number of rounds, 0 means run until interrupted")
	recordCmd.Flags().String("out", "./data/quotes.jsonl", "output JSONL path")
	recordCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for quote history")
	recordCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	recordCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	recordCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(recordCmd)

	metaCmd := &cobra.Command{
		Use:   "meta",
		Short: "Fetch ERC20 metadata for custom-pool tokens",
		RunE:  runMeta,
	}

	metaCmd.Flags().String("rpc", "", "RPC URL")
	metaCmd.Flags().StringSlice("token", nil, "ERC20 token addresses (comma-separated)")
	metaCmd.Flags().String("holder", "", "optional holder address to report balances for")
	metaCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(metaCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sellID, err := parseBig("sell", cfg.Sell)
	if err != nil {
		return err
	}
	buyID, err := parseBig("buy", cfg.Buy)
	if err != nil {
		return err
	}

	exactOut := cfg.AmountOut != ""
	if exactOut && cfg.AmountIn != "" {
		return fmt.Errorf("amount-in and amount-out are mutually exclusive")
	}
	if !exactOut && cfg.AmountIn == "" {
		return fmt.Errorf("one of amount-in or amount-out is required")
	}

	sell := poolkey.Token{ID: sellID}
	buy := poolkey.Token{ID: buyID}
	direct := sell.IsHub() || buy.IsHub()
	if !direct && exactOut {
		return fmt.Errorf("exact-out quotes are supported on direct hub pairs only")
	}

	ctx := context.Background()
	var chainClient *chain.Client
	needChain := cfg.Reserves == "" || (!direct && cfg.Reserves2 == "")
	if needChain {
		if cfg.RPCURL == "" || cfg.AMMAddress == "" {
			return fmt.Errorf("rpc url and amm address are required when reserves are not given")
		}
		chainClient, err = chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
	}
	amm := common.HexToAddress(cfg.AMMAddress)

	if direct {
		key, id, feeBps, err := poolkey.ForPair(sell, buy, cfg.FeeBps)
		if err != nil {
			return err
		}
		pool, err := resolvePool(ctx, chainClient, amm, key, id, feeBps, cfg.Reserves)
		if err != nil {
			return err
		}
		route := router.Direct{Pool: pool, ZeroForHub: buy.IsHub()}

		if exactOut {
			amountOut, err := parseBig("amount-out", cfg.AmountOut)
			if err != nil {
				return err
			}
			amountIn, err := route.RequiredIn(amountOut)
			if err != nil {
				return err
			}
			maxIn, err := swapmath.MaxIn(amountIn, cfg.SlippageBps)
			if err != nil {
				return err
			}
			logger.Info("quote",
				zap.String("pool", id.Hex()),
				zap.String("route", "direct"),
				zap.String("amount_out", amountOut.String()),
				zap.String("amount_in", amountIn.String()),
				zap.String("max_in", maxIn.String()),
			)
			fmt.Printf("amount_in=%s (%s) max_in=%s\n",
				amountIn, units.FromBase(amountIn, cfg.SellDecimals), maxIn)
			return nil
		}

		amountIn, err := parseBig("amount-in", cfg.AmountIn)
		if err != nil {
			return err
		}
		amountOut := route.EstimateOut(amountIn)
		minOut, err := swapmath.MinOut(amountOut, cfg.SlippageBps)
		if err != nil {
			return err
		}
		logger.Info("quote",
			zap.String("pool", id.Hex()),
			zap.String("route", "direct"),
			zap.String("amount_in", amountIn.String()),
			zap.String("amount_out", amountOut.String()),
			zap.String("min_out", minOut.String()),
		)
		fmt.Printf("amount_out=%s (%s) min_out=%s\n",
			amountOut, units.FromBase(amountOut, cfg.BuyDecimals), minOut)
		return nil
	}

	hub := poolkey.Token{ID: poolkey.HubAssetID()}
	keyA, idA, feeA, err := poolkey.ForPair(sell, hub, cfg.FeeBps)
	if err != nil {
		return err
	}
	keyB, idB, feeB, err := poolkey.ForPair(hub, buy, cfg.FeeBps)
	if err != nil {
		return err
	}
	first, err := resolvePool(ctx, chainClient, amm, keyA, idA, feeA, cfg.Reserves)
	if err != nil {
		return err
	}
	second, err := resolvePool(ctx, chainClient, amm, keyB, idB, feeB, cfg.Reserves2)
	if err != nil {
		return err
	}

	amountIn, err := parseBig("amount-in", cfg.AmountIn)
	if err != nil {
		return err
	}
	amountOut := router.TwoHop{First: first, Second: second}.EstimateOut(amountIn)
	minOut, err := swapmath.MinOut(amountOut, cfg.SlippageBps)
	if err != nil {
		return err
	}
	logger.Info("quote",
		zap.String("pool_first", idA.Hex()),
		zap.String("pool_second", idB.Hex()),
		zap.String("route", "two-hop"),
		zap.String("amount_in", amountIn.String()),
		zap.String("amount_out", amountOut.String()),
		zap.String("min_out", minOut.String()),
	)
	fmt.Printf("amount_out=%s (%s) min_out=%s\n",
		amountOut, units.FromBase(amountOut, cfg.BuyDecimals), minOut)
	return nil
}

// resolvePool builds a pool snapshot either from an offline hub:asset
// reserves spec or from a live contract read.
func resolvePool(ctx context.Context, chainClient *chain.Client, amm common.Address, key poolkey.PoolKey, id common.Hash, feeBps uint64, reservesSpec string) (router.Pool, error) {
	pool := router.Pool{Key: key, ID: id, FeeBps: feeBps}

	if reservesSpec != "" {
		parts := strings.Split(reservesSpec, ":")
		if len(parts) != 2 {
			return router.Pool{}, fmt.Errorf("invalid reserves %q: want hub:asset", reservesSpec)
		}
		hubRes, err := parseBig("reserves", parts[0])
		if err != nil {
			return router.Pool{}, err
		}
		assetRes, err := parseBig("reserves", parts[1])
		if err != nil {
			return router.Pool{}, err
		}
		pool.ReserveHub = hubRes
		pool.ReserveAsset = assetRes
		return pool, nil
	}

	reserveHub, reserveAsset, err := dex.ReadReserves(ctx, chainClient, amm, id)
	if err != nil {
		return router.Pool{}, fmt.Errorf("read reserves for pool %s: %w", id.Hex(), err)
	}
	pool.ReserveHub = reserveHub
	pool.ReserveAsset = reserveAsset
	return pool, nil
}

func parseBig(name, input string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(strings.TrimSpace(input), 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("%s %q must be a non-negative integer", name, input)
	}
	return value, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
