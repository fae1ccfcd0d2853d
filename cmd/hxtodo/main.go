package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pthm/hxtodo/internal/config"
	"github.com/pthm/hxtodo/internal/log"
	"github.com/pthm/hxtodo/internal/server"
	"github.com/pthm/hxtodo/internal/todo"
	"github.com/pthm/hxtodo/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Flags shared by every command.
var (
	flagConfig   string
	flagSeed     string
	flagLogLevel string
	flagAddr     string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hxtodo",
		Short: "Single-page todo list served with HTMX",
		Long: `hxtodo serves an in-memory todo list as an HTMX page.

Examples:
  hxtodo                         # Serve on :8080
  hxtodo serve --addr :3000      # Serve on another address
  hxtodo serve --seed todos.json # Start from a seed file
  hxtodo tui                     # Terminal view`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to TOML config file (default hxtodo.toml if present)")
	pf.StringVar(&flagSeed, "seed", "", "Path to JSON seed file")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	root.Flags().StringVar(&flagAddr, "addr", "", "Listen address")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo page over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serve.Flags().StringVar(&flagAddr, "addr", "", "Listen address")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a todo list in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "hxtodo", version)
		},
	}

	root.AddCommand(serve, tuiCmd, versionCmd)
	return root
}

// loadConfig layers explicitly set flags over file and environment config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var o config.Overrides
	if flagChanged(cmd, "addr") {
		o.Addr = &flagAddr
	}
	if flagChanged(cmd, "log-level") {
		o.LogLevel = &flagLogLevel
	}
	if flagChanged(cmd, "seed") {
		o.SeedFile = &flagSeed
	}

	cfg, err := config.Load(flagConfig, o)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func loadStore(cfg *config.Config) (*todo.Store, error) {
	seed, err := todo.LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	return todo.NewStore(seed), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Configure(cfg.IsDevelopment(), cfg.LogLevel)
	if cfg.File != "" {
		log.Debug().Str("file", cfg.File).Msg("loaded config")
	}

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Anything written to stdout would tear the alt screen.
	log.SetOutput(io.Discard, cfg.LogLevel)

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	return tui.Run(store)
}
