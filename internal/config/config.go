package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the configuration injected at start. Feature code never reads
// endpoints or credentials from anywhere else.
type Config struct {
	MapAPIKey      string
	DriverAPIBase  string
	CircuitAPIBase string
	ResultsAPIBase string
	OpenF1APIBase  string
	LogFile        string
	LogLevel       string
	ListenAddr     string
}

// Recognized keys, shared by the TOML file, F1_* environment variables and flags.
const (
	KeyMapAPIKey      = "map_api_key"
	KeyDriverAPIBase  = "driver_api_base"
	KeyCircuitAPIBase = "circuit_api_base"
	KeyResultsAPIBase = "results_api_base"
	KeyOpenF1APIBase  = "openf1_api_base"
	KeyLogFile        = "log_file"
	KeyLogLevel       = "log_level"
	KeyListenAddr     = "listen_addr"
)

// Keys lists every recognized key.
var Keys = []string{
	KeyMapAPIKey, KeyDriverAPIBase, KeyCircuitAPIBase, KeyResultsAPIBase,
	KeyOpenF1APIBase, KeyLogFile, KeyLogLevel, KeyListenAddr,
}

const (
	defaultConfigPath     = "~/.config/f1nalyzer/config.toml"
	defaultDriverAPIBase  = "http://localhost:5000/api"
	defaultCircuitAPIBase = "https://api.jolpi.ca/ergast/f1"
	defaultResultsAPIBase = "http://localhost:5000/api"
	defaultOpenF1APIBase  = "https://api.openf1.org/v1"
	defaultLogFile        = "~/.local/state/f1nalyzer/f1nalyzer.log"
	defaultLogLevel       = "info"
	defaultListenAddr     = "127.0.0.1:5000"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DriverAPIBase:  defaultDriverAPIBase,
		CircuitAPIBase: defaultCircuitAPIBase,
		ResultsAPIBase: defaultResultsAPIBase,
		OpenF1APIBase:  defaultOpenF1APIBase,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		ListenAddr:     defaultListenAddr,
	}
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load reads the config file, falling back to defaults when it is missing.
// Blank values also take their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		MapAPIKey      string `toml:"map_api_key"`
		DriverAPIBase  string `toml:"driver_api_base"`
		CircuitAPIBase string `toml:"circuit_api_base"`
		ResultsAPIBase string `toml:"results_api_base"`
		OpenF1APIBase  string `toml:"openf1_api_base"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		ListenAddr     string `toml:"listen_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.MapAPIKey = strings.TrimSpace(raw.MapAPIKey)
	setIfPresent(&cfg.DriverAPIBase, raw.DriverAPIBase)
	setIfPresent(&cfg.CircuitAPIBase, raw.CircuitAPIBase)
	setIfPresent(&cfg.ResultsAPIBase, raw.ResultsAPIBase)
	setIfPresent(&cfg.OpenF1APIBase, raw.OpenF1APIBase)
	setIfPresent(&cfg.LogLevel, strings.ToLower(raw.LogLevel))
	setIfPresent(&cfg.ListenAddr, raw.ListenAddr)
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	return cfg, nil
}

// Validate checks the configuration once at start.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct{ key, value string }{
		{KeyDriverAPIBase, c.DriverAPIBase},
		{KeyCircuitAPIBase, c.CircuitAPIBase},
		{KeyResultsAPIBase, c.ResultsAPIBase},
		{KeyOpenF1APIBase, c.OpenF1APIBase},
	} {
		if err := validateBase(f.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.key, err))
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%s: unknown level %q", KeyLogLevel, c.LogLevel))
	}
	if strings.TrimSpace(c.LogFile) == "" {
		errs = append(errs, fmt.Errorf("%s: path is empty", KeyLogFile))
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyListenAddr, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// HasMapKey reports whether map previews can be requested.
func (c Config) HasMapKey() bool {
	return strings.TrimSpace(c.MapAPIKey) != ""
}

func validateBase(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
