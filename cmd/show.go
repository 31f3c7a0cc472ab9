package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"shuttleboard/config"
	"shuttleboard/timetable"
)

var (
	showView   string
	showSearch string
	showInput  string
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("22")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Italic(true).Faint(true)
)

var showTitles = map[timetable.View]string{
	timetable.ViewArrivals:   "Morning Arrivals to NSBM",
	timetable.ViewDepartures: "Evening Departures from NSBM",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print arrivals or departures as a table",
	Long: `Fetch the timetable once and print one view as a terminal table.

--view selects morning arrivals (default) or evening departures.
--search keeps rows where any value contains the term, ignoring case.`,
	Example: `
  # Morning arrivals
  shuttleboard show

  # Evening departures on the Kottawa route
  shuttleboard show --view departures --search kottawa

  # Read a local copy instead of the published sheet
  shuttleboard show --input ./timetable.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dataset, err := loadDataset(cmd.Context(), cfg, showInput)
		if err != nil {
			return err
		}

		view, records, err := selectRecords(dataset, showView, showSearch)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable(showTitles[view], dataset.Headers, records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showView, "view", string(timetable.ViewArrivals), "View to print: arrivals|departures")
	showCmd.Flags().StringVarP(&showSearch, "search", "s", "", "Only rows where any value contains this term")
	showCmd.Flags().StringVarP(&showInput, "input", "i", "", "Local .csv/.xlsx copy or sheet URL (default: source.url)")
}

func renderTable(title string, headers []string, records []timetable.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, record := range records {
		t.Row(record.Fields(headers)...)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(t.Render())
	if len(records) == 0 {
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("No results found."))
	}
	return b.String()
}
