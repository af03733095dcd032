// Package commands implements the relq command-line tool: a small demo
// harness over the query core, wired to the same config/UI/telemetry stack
// the original CLI used.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/relquery/relquery/cli/internal/config"
	"github.com/relquery/relquery/cli/internal/version"
	"github.com/relquery/relquery/internal/debug"
	"github.com/relquery/relquery/queryerr"
	"github.com/relquery/relquery/telemetry"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "relq",
	Short: "relq compiles typed queries to PostgreSQL SQL",
	Long:  "relq is a small CLI over the relquery query core: it builds sample queries, validates and normalizes them, and prints the SQL they lower to.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		if dsn, _ := cmd.Flags().GetString("database-url"); dsn != "" {
			cfg.DatabaseURL = dsn
		}

		debugFlag, _ := cmd.Flags().GetBool("debug")
		debug.Init(debugFlag || cfg.Debug)

		telemetry.InitTelemetry(version.Get().Version, !cfg.TelemetryDisabled)
		return nil
	},
}

// Execute is the CLI's entry point.
func Execute() error {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string (overrides config/env)")
	rootCmd.AddCommand(demoCmd, versionCmd, configCmd)
	defer telemetry.Shutdown()

	start := time.Now()
	err := rootCmd.Execute()
	telemetry.RecordCommand(commandName(), "postgresql", time.Since(start), err)
	return err
}

func commandName() string {
	cmd, _, err := rootCmd.Find([]string{})
	if err != nil || cmd == nil {
		return "relq"
	}
	return cmd.Name()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Get().FullString())
		return nil
	},
}

func printDiagnostic(err error) {
	queryerr.Fprint(os.Stderr, err)
}
