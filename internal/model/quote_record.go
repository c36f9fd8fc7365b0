package model

// QuoteRecord is one computed quote snapshot for storage. Amounts are
// decimal strings of smallest units so 256-bit values survive JSON and SQL
// intact.
type QuoteRecord struct {
	ChainID     uint64 `json:"chain_id"`
	PoolID      string `json:"pool_id"`
	Route       string `json:"route"` // "direct" or "two-hop"
	CoinIn      string `json:"coin_in"`
	CoinOut     string `json:"coin_out"`
	AmountIn    string `json:"amount_in"`
	AmountOut   string `json:"amount_out"`
	MinOut      string `json:"min_out"`
	FeeBps      uint64 `json:"fee_bps"`
	SlippageBps uint64 `json:"slippage_bps"`
	BlockNumber uint64 `json:"block_number"`
	BlockTime   uint64 `json:"block_time"`
	QuotedAt    string `json:"quoted_at"`
}
