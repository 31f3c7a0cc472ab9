package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shuttleboard configuration file values.",
	Long: `Create, edit, display, and delete the shuttleboard configuration file.

The configuration stores:
- source.url: published CSV export of the timetable sheet
- columns.time / columns.contact: column names used for classification and phone links
- server.port: port of the dashboard server`,
	Example: `
  # Create default config in $HOME/.shuttleboard.yaml
  shuttleboard config create

  # Show active config and source file
  shuttleboard config show

  # Open active config in editor (creates example if missing)
  shuttleboard config edit

  # Delete active config file
  shuttleboard config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
