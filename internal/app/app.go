package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/five82/f1nalyzer/internal/config"
	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/logging"
	"github.com/five82/f1nalyzer/internal/mapview"
	"github.com/five82/f1nalyzer/internal/openf1"
	"github.com/five82/f1nalyzer/internal/prefs"
	"github.com/five82/f1nalyzer/internal/server"
	"github.com/five82/f1nalyzer/internal/ui"
)

// Options configure the f1nalyzer application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/f1nalyzer/prefs.toml
	// Overrides holds environment and flag values layered over the file.
	Overrides *viper.Viper
}

// ServeOptions configure the driver search backend.
type ServeOptions struct {
	Options
	// Sample serves the built-in line-up instead of querying OpenF1.
	Sample bool
}

// LoadConfig reads the config file, applies overrides and validates the
// result.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg = config.ApplyOverrides(cfg, opts.Overrides)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	logger.Info("starting",
		zap.String("driver_api", cfg.DriverAPIBase),
		zap.String("circuit_api", cfg.CircuitAPIBase),
		zap.String("results_api", cfg.ResultsAPIBase),
		zap.Bool("map_key", cfg.HasMapKey()),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Maps:      mapview.NewService(cfg.MapAPIKey, mapview.WithLogger(logger)),
		Logger:    logger,
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		Panel:     userPrefs.Panel,
		PrefsPath: prefsPath,
	})
	if err != nil {
		logger.Error("ui exited", zap.Error(err))
		return err
	}
	logger.Info("stopped")
	return nil
}

// Serve runs the driver search backend until the context is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := LoadConfig(opts.Options)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Console: true})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var drivers server.DriverSource = server.SampleDrivers{}
	source := "sample"
	if !opts.Sample {
		c, err := openf1.NewClient(cfg.OpenF1APIBase, openf1.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("init openf1 client: %w", err)
		}
		drivers, source = c, cfg.OpenF1APIBase
	}
	logger.Info("driver source", zap.String("source", source))

	return server.Run(ctx, cfg.ListenAddr, server.NewRouter(drivers, logger), logger)
}

// CheckHealth waits for the driver search service to answer its health
// endpoint, retrying up to attempts times.
func CheckHealth(ctx context.Context, opts Options, attempts int) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Console: true})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	return WaitHealthy(ctx, client, attempts, defaultRetryInterval, logger)
}

func newClient(cfg config.Config, logger *zap.Logger) (*f1api.Client, error) {
	client, err := f1api.NewClient(f1api.Endpoints{
		DriverAPIBase:  cfg.DriverAPIBase,
		CircuitAPIBase: cfg.CircuitAPIBase,
		ResultsAPIBase: cfg.ResultsAPIBase,
	}, f1api.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return client, nil
}
