package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/f1nalyzer/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_OverridesWin(t *testing.T) {
	path := writeConfig(t, `driver_api_base = "http://file.example/api"`+"\n"+`log_level = "debug"`+"\n")

	v, err := config.NewViper()
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	v.Set(config.KeyDriverAPIBase, "http://flag.example/api")

	cfg, err := LoadConfig(Options{ConfigPath: path, Overrides: v})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DriverAPIBase != "http://flag.example/api" {
		t.Fatalf("DriverAPIBase = %q, want override", cfg.DriverAPIBase)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, `circuit_api_base = "ftp://example.com"`+"\n")

	if _, err := LoadConfig(Options{ConfigPath: path}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml")})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DriverAPIBase != config.Default().DriverAPIBase {
		t.Fatalf("DriverAPIBase = %q, want default", cfg.DriverAPIBase)
	}
}
