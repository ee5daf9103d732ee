// Command acerto runs the AcertÔ expense-splitting server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acerto/acerto/internal/config"
)

const (
	Version = "0.1.0"
	appName = "acerto"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags override values loaded from the environment.
type flags struct {
	envFile  string
	addr     string
	store    string
	dbPath   string
	logLevel string
}

func (f *flags) load() (*config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.store != "" {
		cfg.Store.Kind = f.store
	}
	if f.dbPath != "" {
		cfg.Store.DBPath = f.dbPath
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "AcertÔ expense-splitting server",
		Long: `AcertÔ tracks shared expenses inside groups of friends.

Owners create groups of members identified by e-mail, hand out invite
links, record purchases split equally and confirm payments with PIX
receipts. The API is served over Connect RPC.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "Path to a .env file (missing files are ignored)")
	cmd.PersistentFlags().StringVar(&f.store, "store", "", "Store backend: memory or sqlite (default: ACERTO_STORE)")
	cmd.PersistentFlags().StringVar(&f.dbPath, "db", "", "SQLite database path (default: DB_PATH)")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL)")

	cmd.AddCommand(serveCmd(&f), migrateCmd(&f))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}
