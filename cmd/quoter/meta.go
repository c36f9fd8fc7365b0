package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/config"
	"github.com/NaniDAO/coinchan-sub006/internal/dex"
)

func runMeta(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadMeta(cfgFile, cmd.Flags())
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
	if len(cfg.Tokens) == 0 {
		return fmt.Errorf("token list is required")
	}

	ctx := context.Background()
	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	var holder *common.Address
	if cfg.Holder != "" {
		address := common.HexToAddress(cfg.Holder)
		holder = &address
	}

	cache := dex.NewTokenMetaCache()
	encoder := json.NewEncoder(os.Stdout)
	for _, raw := range cfg.Tokens {
		token := common.HexToAddress(raw)

		meta, ok := cache.Get(token)
		if !ok {
			meta, err = dex.FetchTokenMeta(ctx, chainClient, token, logger)
			if err != nil {
				return fmt.Errorf("token %s: %w", token.Hex(), err)
			}
			cache.Set(token, meta)
		}

		entry := map[string]interface{}{"meta": meta}
		if holder != nil {
			balance, err := dex.ReadERC20Balance(ctx, chainClient, token, *holder, nil)
			if err != nil {
				return fmt.Errorf("balance of %s for %s: %w", token.Hex(), holder.Hex(), err)
			}
			entry["balance"] = balance.String()
		}

		if err := encoder.Encode(entry); err != nil {
			return err
		}
		logger.Debug("token meta fetched", zap.String("token", token.Hex()), zap.String("symbol", meta.Symbol))
	}

	return nil
}
