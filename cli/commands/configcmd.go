package commands

import (
	"github.com/spf13/cobra"

	"github.com/relquery/relquery/cli/internal/config"
	"github.com/relquery/relquery/cli/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "inspect or persist relq's configuration",
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "write the active configuration (including --database-url) to ~/.config/relq/relq.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(cfg); err != nil {
			return err
		}
		ui.PrintSuccess("saved configuration for provider %q", cfg.Provider)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSaveCmd)
}
