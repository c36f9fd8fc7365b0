package config

import "github.com/spf13/pflag"

// MetaConfig holds settings for the token metadata lookup.
type MetaConfig struct {
	RPCURL   string
	Tokens   []string
	Holder   string
	LogLevel string
}

// LoadMeta merges config file, environment variables, and flags.
func LoadMeta(cfgFile string, flags *pflag.FlagSet) (MetaConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return MetaConfig{}, err
	}

	v.SetDefault("log-level", "info")

	return MetaConfig{
		RPCURL:   v.GetString("rpc"),
		Tokens:   getStringSlice(v, "token"),
		Holder:   v.GetString("holder"),
		LogLevel: v.GetString("log-level"),
	}, nil
}
