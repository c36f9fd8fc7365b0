package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/config"
	"github.com/NaniDAO/coinchan-sub006/internal/curve"
	"github.com/NaniDAO/coinchan-sub006/internal/dex"
)

func runCurve(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCurve(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	saleCurve, sold, err := loadCurve(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Sold != "" {
		sold, err = parseBig("sold", cfg.Sold)
		if err != nil {
			return err
		}
	}

	if cfg.Target != "" {
		target, err := parseBig("target", cfg.Target)
		if err != nil {
			return err
		}
		tokens, cost, err := saleCurve.FindTokensForTarget(target)
		if err != nil {
			return err
		}
		logger.Info("curve inversion",
			zap.String("target", target.String()),
			zap.String("tokens", tokens.String()),
			zap.String("cost", cost.String()),
		)
		fmt.Printf("tokens=%s cost=%s\n", tokens, cost)
		return nil
	}

	if sold == nil {
		return fmt.Errorf("one of sold or target is required")
	}

	cost, err := saleCurve.Cost(sold)
	if err != nil {
		return err
	}
	price, err := saleCurve.MarginalPrice(sold)
	if err != nil {
		return err
	}
	logger.Info("curve evaluation",
		zap.String("sold", sold.String()),
		zap.String("cost", cost.String()),
		zap.String("marginal_price", price.String()),
	)
	fmt.Printf("cost=%s marginal_price=%s\n", cost, price)
	return nil
}

// loadCurve builds the curve either from flags or from live sale state. The
// live path also yields the net sold quantity, which an explicit sold flag
// overrides.
func loadCurve(cfg config.CurveConfig, logger *zap.Logger) (curve.SaleCurve, *big.Int, error) {
	if cfg.SaleCap != "" {
		saleCap, err := parseBig("sale-cap", cfg.SaleCap)
		if err != nil {
			return curve.SaleCurve{}, nil, err
		}
		divisor, err := parseBig("divisor", cfg.Divisor)
		if err != nil {
			return curve.SaleCurve{}, nil, err
		}
		var ethTarget *big.Int
		if cfg.EthTarget != "" {
			ethTarget, err = parseBig("eth-target", cfg.EthTarget)
			if err != nil {
				return curve.SaleCurve{}, nil, err
			}
		}
		var quadCap *big.Int
		if cfg.QuadCap != "" {
			quadCap, err = parseBig("quad-cap", cfg.QuadCap)
			if err != nil {
				return curve.SaleCurve{}, nil, err
			}
		}
		saleCurve, err := curve.NewSaleCurve(saleCap, divisor, ethTarget, quadCap)
		if err != nil {
			return curve.SaleCurve{}, nil, err
		}
		return saleCurve, nil, nil
	}

	if cfg.RPCURL == "" || cfg.SaleAddress == "" || cfg.CoinID == "" {
		return curve.SaleCurve{}, nil, fmt.Errorf("either curve parameters or rpc, sale, and coin are required")
	}
	coinID, err := parseBig("coin", cfg.CoinID)
	if err != nil {
		return curve.SaleCurve{}, nil, err
	}

	ctx := context.Background()
	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return curve.SaleCurve{}, nil, fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	state, err := dex.ReadSale(ctx, chainClient, common.HexToAddress(cfg.SaleAddress), coinID)
	if err != nil {
		return curve.SaleCurve{}, nil, err
	}
	logger.Info("sale state loaded",
		zap.String("coin", coinID.String()),
		zap.String("creator", state.Creator.Hex()),
		zap.String("net_sold", state.NetSold.String()),
		zap.Uint64("deadline", state.Deadline),
	)
	return state.Curve, state.NetSold, nil
}
