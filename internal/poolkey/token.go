package poolkey

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token identifies a tradable asset: its coin id (0 is the hub sentinel),
// the display decimals used only at the unit-conversion boundary, and an
// optional custom-pool override for externally pegged pairs.
type Token struct {
	ID       *big.Int
	Decimals uint8
	Custom   *CustomPool
}

// CustomPool pins a token to a fixed, externally defined pool. The codec
// never recomputes keys for custom pools; the override is used verbatim.
type CustomPool struct {
	Key    PoolKey
	PoolID common.Hash
	FeeBps uint64
}

// IsHub reports whether the token is the hub asset.
func (t Token) IsHub() bool {
	return t.ID != nil && t.ID.Sign() == 0
}

// ForPair resolves the pool key, pool id, and fee for a token pair. When
// either token carries a custom-pool override the override wins; otherwise
// the key is canonicalized from the two ids with the supplied selector and
// feeBps is the per-pair fee in basis points.
func ForPair(sell, buy Token, feeBps uint64) (PoolKey, common.Hash, uint64, error) {
	if sell.Custom != nil {
		return sell.Custom.Key, sell.Custom.PoolID, sell.Custom.FeeBps, nil
	}
	if buy.Custom != nil {
		return buy.Custom.Key, buy.Custom.PoolID, buy.Custom.FeeBps, nil
	}

	key, err := New(sell.ID, buy.ID, new(big.Int).SetUint64(feeBps))
	if err != nil {
		return PoolKey{}, common.Hash{}, 0, err
	}
	return key, key.PoolID(), feeBps, nil
}
