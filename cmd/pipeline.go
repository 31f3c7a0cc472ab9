package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"shuttleboard/config"
	"shuttleboard/importer"
	"shuttleboard/internal/logging"
	"shuttleboard/sheet"
	"shuttleboard/timetable"
)

const userAgent = "shuttleboard/1.0"

// openReader resolves input to a timetable reader. An empty input or an
// http(s) URL reads the sheet over HTTP; a path reads a local copy.
func openReader(cfg *config.Config, input string, reg prometheus.Registerer) (importer.Reader, error) {
	sheetURL := cfg.Source.URL
	lower := strings.ToLower(strings.TrimSpace(input))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		sheetURL = strings.TrimSpace(input)
	}

	metrics, err := sheet.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register sheet metrics: %w", err)
	}
	logger := logging.New("sheet")
	client, err := sheet.NewClient(sheet.ClientConfig{
		URL:       sheetURL,
		UserAgent: userAgent,
		Metrics:   metrics,
		Logger:    &logger,
	})
	if err != nil {
		return nil, err
	}

	return importer.ReaderForLocation(input, client)
}

// loadDataset runs the fetch, parse and classify steps once.
func loadDataset(ctx context.Context, cfg *config.Config, input string) (timetable.Dataset, error) {
	reader, err := openReader(cfg, input, prometheus.NewRegistry())
	if err != nil {
		return timetable.Dataset{}, err
	}
	table, err := reader.Read(ctx)
	if err != nil {
		return timetable.Dataset{}, fmt.Errorf("failed to fetch bus data: %w", err)
	}
	return timetable.FromTable(table, cfg.Columns.Time), nil
}

// selectRecords applies the view selector and the search filter.
func selectRecords(dataset timetable.Dataset, viewFlag, search string) (timetable.View, []timetable.Record, error) {
	view, err := timetable.ParseView(viewFlag)
	if err != nil {
		return "", nil, err
	}
	return view, timetable.Filter(dataset.Select(view), search), nil
}

func componentLogger(component string) *zerolog.Logger {
	logger := logging.New(component)
	return &logger
}
