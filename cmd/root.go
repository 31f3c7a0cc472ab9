/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shuttleboard/config"
	"shuttleboard/internal/logging"
)

var cfgFile string

var cliLog = logging.New("cli")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shuttleboard",
	Short: "Show the university shuttle timetable as morning arrivals and evening departures.",
	Long: `
**********************************************
*              SHUTTLEBOARD                  *
**********************************************

This CLI fetches the published shuttle timetable sheet (CSV), splits it into
morning arrivals and evening departures by the Time column, and shows it as a
searchable dashboard, a terminal table, or a CSV/Excel export.

Supported inputs:
- the published sheet URL (default)
- a local CSV copy: .csv
- a local Excel copy: .xlsx, .xlsm, .xls
`,
	Example: `
  # Create configuration file
  shuttleboard config create

  # Start the dashboard on http://localhost:8080
  shuttleboard serve

  # Print evening departures matching "kottawa"
  shuttleboard show --view departures --search kottawa

  # Export morning arrivals to Excel
  shuttleboard export --view arrivals --output ./arrivals.xlsx
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.shuttleboard.yaml, then ./.shuttleboard.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".shuttleboard" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shuttleboard")
	}

	viper.SetEnvPrefix("SHUTTLEBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// The config file is optional; defaults describe the published sheet.
	if err := viper.ReadInConfig(); err != nil {
		cliLog.Debug().Err(err).Msg("no config file loaded, using defaults")
	}
}
