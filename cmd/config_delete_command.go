package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently loaded by shuttleboard.

Afterwards every command falls back to the built-in defaults.`,
	Example: `
  # Delete active config
  shuttleboard config delete

  # Delete config at a custom path
  shuttleboard --configFile ./custom-shuttleboard.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return errors.New("no configuration file loaded")
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("delete configuration file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file deleted: %s\n", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
