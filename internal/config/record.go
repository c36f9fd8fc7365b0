package config

import (
	"time"

	"github.com/spf13/pflag"
)

// RecordConfig holds settings for the quote recorder loop.
type RecordConfig struct {
	RPCURL       string
	AMMAddress   string
	Pairs        []string
	FeeBps       uint64
	SlippageBps  uint64
	Interval     time.Duration
	Rounds       uint64
	Out          string
	PgDSN        string
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// LoadRecord merges config file, environment variables, and flags.
func LoadRecord(cfgFile string, flags *pflag.FlagSet) (RecordConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return RecordConfig{}, err
	}

	v.SetDefault("fee-bps", uint64(100))
	v.SetDefault("slippage-bps", uint64(50))
	v.SetDefault("interval", 15*time.Second)
	v.SetDefault("out", "./data/quotes.jsonl")
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	return RecordConfig{
		RPCURL:       v.GetString("rpc"),
		AMMAddress:   v.GetString("amm"),
		Pairs:        getStringSlice(v, "pair"),
		FeeBps:       v.GetUint64("fee-bps"),
		SlippageBps:  v.GetUint64("slippage-bps"),
		Interval:     v.GetDuration("interval"),
		Rounds:       v.GetUint64("rounds"),
		Out:          v.GetString("out"),
		PgDSN:        v.GetString("pg-dsn"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}
