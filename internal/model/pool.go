package model

// Pool represents a pool metadata record for storage.
type Pool struct {
	ChainID   uint64 `json:"chain_id"`
	PoolID    string `json:"pool_id"`
	CoinID0   string `json:"coin_id0"`
	CoinID1   string `json:"coin_id1"`
	FeeOrHook string `json:"fee_or_hook"`
	FeeBps    uint64 `json:"fee_bps"`
	Custom    bool   `json:"custom"`
}
