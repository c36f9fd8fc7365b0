package config

import "github.com/spf13/pflag"

// CurveConfig holds settings for sale-curve evaluation. Parameters come
// either from flags or, when an RPC URL and sale contract are given, from
// the live sale state.
type CurveConfig struct {
	RPCURL      string
	SaleAddress string
	CoinID      string
	SaleCap     string
	Divisor     string
	EthTarget   string
	QuadCap     string
	Sold        string
	Target      string
	LogLevel    string
}

// LoadCurve merges config file, environment variables, and flags.
func LoadCurve(cfgFile string, flags *pflag.FlagSet) (CurveConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return CurveConfig{}, err
	}

	v.SetDefault("log-level", "info")

	return CurveConfig{
		RPCURL:      v.GetString("rpc"),
		SaleAddress: v.GetString("sale"),
		CoinID:      v.GetString("coin"),
		SaleCap:     v.GetString("sale-cap"),
		Divisor:     v.GetString("divisor"),
		EthTarget:   v.GetString("eth-target"),
		QuadCap:     v.GetString("quad-cap"),
		Sold:        v.GetString("sold"),
		Target:      v.GetString("target"),
		LogLevel:    v.GetString("log-level"),
	}, nil
}
