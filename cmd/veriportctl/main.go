// Command veriportctl is the operator tool for schema migrations, directory
// seeding and account provisioning against the postgres backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"veriport/internal/platform/config"
	"veriport/internal/platform/logger"
)

var (
	timeout time.Duration

	cfg config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "veriportctl",
	Short: "Operate a veriport deployment",
	Long: `Operator commands for a veriport deployment.

Connection settings come from the same VERIPORT_* environment variables the
server reads; VERIPORT_DATABASE_URL and VERIPORT_EMPLOYEE_DATABASE_URL must
point at the postgres databases.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.FromEnv()
		log = logger.New(cfg.Server.Environment, cfg.Server.LogLevel)
		if cfg.Storage.DatabaseURL == "" {
			return fmt.Errorf("VERIPORT_DATABASE_URL is required")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	seedCmd.AddCommand(seedEmployeesCmd)
	accountsCmd.AddCommand(accountsCreateCmd)
	idsCmd.AddCommand(idsNextCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(idsCmd)
}

// commandContext bounds a command by --timeout and cancels it on SIGINT.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
