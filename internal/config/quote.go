package config

import "github.com/spf13/pflag"

// QuoteConfig holds settings for a one-shot quote.
type QuoteConfig struct {
	RPCURL       string
	AMMAddress   string
	Sell         string
	Buy          string
	AmountIn     string
	AmountOut    string
	Reserves     string
	Reserves2    string
	FeeBps       uint64
	SlippageBps  uint64
	SellDecimals uint8
	BuyDecimals  uint8
	LogLevel     string
}

// LoadQuote merges config file, environment variables, and flags.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return QuoteConfig{}, err
	}

	v.SetDefault("fee-bps", uint64(100))
	v.SetDefault("slippage-bps", uint64(50))
	v.SetDefault("sell-decimals", uint(18))
	v.SetDefault("buy-decimals", uint(18))
	v.SetDefault("log-level", "info")

	return QuoteConfig{
		RPCURL:       v.GetString("rpc"),
		AMMAddress:   v.GetString("amm"),
		Sell:         v.GetString("sell"),
		Buy:          v.GetString("buy"),
		AmountIn:     v.GetString("amount-in"),
		AmountOut:    v.GetString("amount-out"),
		Reserves:     v.GetString("reserves"),
		Reserves2:    v.GetString("reserves2"),
		FeeBps:       v.GetUint64("fee-bps"),
		SlippageBps:  v.GetUint64("slippage-bps"),
		SellDecimals: uint8(v.GetUint("sell-decimals")),
		BuyDecimals:  uint8(v.GetUint("buy-decimals")),
		LogLevel:     v.GetString("log-level"),
	}, nil
}
