package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shuttleboard/config"
	"shuttleboard/output"
	"shuttleboard/timetable"
)

var (
	exportFormat string
	exportView   string
	exportSearch string
	exportOutput string
	exportInput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export arrivals or departures to CSV/Excel",
	Long: `Fetch the timetable once and write one view to a file.

Columns follow the sheet header order. Output format can be selected explicitly
via --format or inferred from --output extension.`,
	Example: `
  # Export morning arrivals to CSV
  shuttleboard export --output ./arrivals.csv

  # Export evening departures to Excel
  shuttleboard export --view departures --output ./departures.xlsx

  # Force Excel format independent of extension
  shuttleboard export --format excel --output ./arrivals.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = output.DetectFormat(exportOutput)
		}
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		dataset, err := loadDataset(cmd.Context(), cfg, exportInput)
		if err != nil {
			return err
		}
		view, records, err := selectRecords(dataset, exportView, exportSearch)
		if err != nil {
			return err
		}

		if err := writer.Write(exportOutput, dataset.Headers, records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Export completed. Rows: %d, View: %s, Format: %s, File: %s\n", len(records), view, format, exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportView, "view", string(timetable.ViewArrivals), "View to export: arrivals|departures")
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "Only rows where any value contains this term")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Local .csv/.xlsx copy or sheet URL (default: source.url)")

	_ = exportCmd.MarkFlagRequired("output")
}
