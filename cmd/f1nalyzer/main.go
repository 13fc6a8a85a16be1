package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/f1nalyzer/internal/app"
	"github.com/five82/f1nalyzer/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "f1nalyzer: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "f1nalyzer",
		Short:         "Browse Formula 1 drivers, circuits, tracks and race results in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindOverrides(&opts, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/f1nalyzer/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/f1nalyzer/prefs.toml)")
	flags.String("driver-api-base", "", "driver search service base URL")
	flags.String("circuit-api-base", "", "circuit directory base URL")
	flags.String("results-api-base", "", "race results service base URL")
	flags.String("log-file", "", "log file path")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newServeCmd(&opts), newHealthCmd(&opts))
	return root
}

func newServeCmd(opts *app.Options) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the driver search backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Serve(cmd.Context(), app.ServeOptions{Options: *opts, Sample: sample})
		},
	}
	cmd.Flags().String("listen-addr", "", "listen address (default 127.0.0.1:5000)")
	cmd.Flags().String("openf1-api-base", "", "OpenF1 base URL")
	cmd.Flags().BoolVar(&sample, "sample", false, "serve the built-in driver line-up instead of OpenF1")
	return cmd
}

func newHealthCmd(opts *app.Options) *cobra.Command {
	var attempts int
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the driver search service is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.CheckHealth(cmd.Context(), *opts, attempts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", 1, "retry with backoff up to this many times")
	return cmd
}

// bindOverrides layers F1_* environment variables and explicitly set flags
// over the config file.
func bindOverrides(opts *app.Options, flags *pflag.FlagSet) error {
	v, err := config.NewViper()
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, flags); err != nil {
		return err
	}
	opts.Overrides = v
	return nil
}
