package dex

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/NaniDAO/coinchan-sub006/internal/chain"
	"github.com/NaniDAO/coinchan-sub006/internal/model"
)

// TokenMetaCache caches ERC20 metadata by address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]model.TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (model.TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// FetchTokenMeta loads ERC20 symbol/name/decimals for a custom-pool token,
// falling back to the bytes32 ABI variant used by a handful of legacy
// tokens.
func FetchTokenMeta(ctx context.Context, chainClient *chain.Client, token common.Address, logger *zap.Logger) (model.TokenMeta, error) {
	if chainClient == nil {
		return model.TokenMeta{}, fmt.Errorf("chain client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	meta := model.TokenMeta{Address: token.Hex()}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 abi: %w", err)
	}

	if values, err := callMethod(ctx, chainClient, token, stringABI, "decimals", nil); err == nil && len(values) == 1 {
		if dec, ok := values[0].(uint8); ok {
			meta.Decimals = dec
		}
	} else if err != nil {
		return model.TokenMeta{}, fmt.Errorf("decimals: %w", err)
	}

	symbol, symbolErr := callString(ctx, chainClient, token, "symbol")
	name, nameErr := callString(ctx, chainClient, token, "name")
	if symbolErr != nil {
		logger.Debug("symbol fetch failed", zap.String("token", token.Hex()), zap.Error(symbolErr))
	}
	if nameErr != nil {
		logger.Debug("name fetch failed", zap.String("token", token.Hex()), zap.Error(nameErr))
	}
	meta.Symbol = symbol
	meta.Name = name

	return meta, nil
}

func callString(ctx context.Context, chainClient *chain.Client, token common.Address, method string) (string, error) {
	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return "", err
	}

	if values, err := callMethod(ctx, chainClient, token, stringABI, method, nil); err == nil && len(values) == 1 {
		if s, ok := values[0].(string); ok {
			return s, nil
		}
	}

	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return "", err
	}
	values, err := callMethod(ctx, chainClient, token, bytes32ABI, method, nil)
	if err != nil {
		return "", err
	}
	if len(values) != 1 {
		return "", fmt.Errorf("%s return size %d", method, len(values))
	}
	raw, ok := values[0].([32]byte)
	if !ok {
		return "", fmt.Errorf("%s: unexpected type %T", method, values[0])
	}
	return string(bytes.TrimRight(raw[:], "\x00")), nil
}
