package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shuttleboard/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  shuttleboard config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		out := cmd.OutOrStdout()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "No config file loaded, using defaults.")
		}
		fmt.Fprintln(out, "Configuration:")
		fmt.Fprintf(out, "source.url: %s\n", cfg.Source.URL)
		fmt.Fprintf(out, "columns.time: %s\n", cfg.Columns.Time)
		fmt.Fprintf(out, "columns.contact: %s\n", cfg.Columns.Contact)
		fmt.Fprintf(out, "server.port: %d\n", cfg.Server.Port)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
