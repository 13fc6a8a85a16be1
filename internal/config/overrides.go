package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. F1_MAP_API_KEY.
const EnvPrefix = "F1"

// NewViper returns a viper instance with every key bound to its F1_*
// environment variable.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range Keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return v, nil
}

// BindFlags binds each flag whose name matches a key (dashes for
// underscores) so an explicitly set flag overrides the file and environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

// ApplyOverrides returns cfg with every non-blank value viper holds for a
// recognized key. Flags win over environment variables.
func ApplyOverrides(cfg Config, v *viper.Viper) Config {
	if v == nil {
		return cfg
	}
	get := func(key string) (string, bool) {
		if !v.IsSet(key) {
			return "", false
		}
		val := strings.TrimSpace(v.GetString(key))
		return val, val != ""
	}
	if val, ok := get(KeyMapAPIKey); ok {
		cfg.MapAPIKey = val
	}
	if val, ok := get(KeyDriverAPIBase); ok {
		cfg.DriverAPIBase = val
	}
	if val, ok := get(KeyCircuitAPIBase); ok {
		cfg.CircuitAPIBase = val
	}
	if val, ok := get(KeyResultsAPIBase); ok {
		cfg.ResultsAPIBase = val
	}
	if val, ok := get(KeyOpenF1APIBase); ok {
		cfg.OpenF1APIBase = val
	}
	if val, ok := get(KeyLogFile); ok {
		cfg.LogFile = mustExpand(val)
	}
	if val, ok := get(KeyLogLevel); ok {
		cfg.LogLevel = strings.ToLower(val)
	}
	if val, ok := get(KeyListenAddr); ok {
		cfg.ListenAddr = val
	}
	return cfg
}

func isKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
