// Package cmd provides CLI commands for inspecting a flouze store.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/flouze/internal/config"
	"github.com/mmynk/flouze/internal/storage"
	"github.com/mmynk/flouze/internal/storage/backends"
	"github.com/mmynk/flouze/pkg/logging"
)

// options holds the global flags.
type options struct {
	cfgFile string
	debug   bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "flouze",
		Short: "Inspect shared-expense ledgers",
		Long: `flouze reads a ledger store directly and prints its accounts,
transaction history and member balances.

The store is selected the same way as for the server: a YAML config file,
a .env file, or FLOUZE_BACKEND / FLOUZE_DB_PATH.

Example:
  flouze accounts
  flouze history 2b8d9c1e-7f0a-4c3e-9a61-0d5f3e2b7c44
  flouze balance 2b8d9c1e-7f0a-4c3e-9a61-0d5f3e2b7c44`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(logging.NewHandler(cmd.ErrOrStderr(), level, "text")))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file (default: environment and .env)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(newAccountsCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newBalanceCmd(opts))

	return rootCmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// withRepository opens the configured store, runs fn and closes the store.
func withRepository(ctx context.Context, opts *options, fn func(ctx context.Context, repo storage.Repository) error) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Storage.Backend == config.BackendMemory {
		return fmt.Errorf("backend %q has nothing to inspect", cfg.Storage.Backend)
	}

	slog.Debug("Opening store", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)
	if _, err := os.Stat(cfg.Storage.Path); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	repo, err := backends.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	return fn(ctx, repo)
}

// formatAmount renders an amount in minor units (cents) as a decimal string.
func formatAmount(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
