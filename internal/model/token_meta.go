package model

// TokenMeta captures display metadata for a coin or its backing ERC20.
type TokenMeta struct {
	CoinID   string `json:"coin_id"`
	Address  string `json:"address,omitempty"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}
