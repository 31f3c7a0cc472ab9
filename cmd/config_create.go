package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Write the example configuration (published sheet URL, column names, port)
to $HOME/.shuttleboard.yaml or the --configFile path.

An existing file is never overwritten.`,
	Example: `
  # Create default config at $HOME/.shuttleboard.yaml
  shuttleboard config create

  # Create config next to the project
  shuttleboard --configFile ./.shuttleboard.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(cmd.OutOrStdout())
	},
}

func saveDefaultConfig(out io.Writer) error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}

	if !created {
		fmt.Fprintf(out, "Config file already exists at: %s\n", configPath)
		return nil
	}
	cliLog.Debug().Str("path", configPath).Msg("config template written")
	fmt.Fprintf(out, "New config file created at: %s\n", configPath)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
