package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"shuttleboard/config"
	"shuttleboard/timetable"
)

const sampleSheet = "Time,Route,Driver Contact\n7:00 AM,Kottawa,077 123 4567\n7:30 AM,Galle,\n5:00 PM,Kottawa,071 555 0000\n"

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.ValidateYAMLContent([]byte("server:\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestLoadDataset_FromLocalCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timetable.csv")
	if err := os.WriteFile(path, []byte(sampleSheet), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	dataset, err := loadDataset(context.Background(), defaultConfig(t), path)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(dataset.Arrivals) != 2 || len(dataset.Departures) != 1 {
		t.Fatalf("unexpected split: %d/%d", len(dataset.Arrivals), len(dataset.Departures))
	}
}

func TestLoadDataset_FromURL(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, sampleSheet)
	}))
	defer ts.Close()

	dataset, err := loadDataset(context.Background(), defaultConfig(t), ts.URL+"/pub?output=csv")
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if !reflect.DeepEqual(dataset.Headers, []string{"Time", "Route", "Driver Contact"}) {
		t.Fatalf("unexpected headers: %v", dataset.Headers)
	}
}

func TestLoadDataset_FetchFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := loadDataset(context.Background(), defaultConfig(t), ts.URL)
	if err == nil || !strings.Contains(err.Error(), "failed to fetch bus data") {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestSelectRecords(t *testing.T) {
	t.Parallel()

	dataset := timetable.Build(sampleSheet, timetable.DefaultTimeColumn)

	view, records, err := selectRecords(dataset, "departures", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if view != timetable.ViewDepartures || len(records) != 1 {
		t.Fatalf("unexpected selection %q: %v", view, records)
	}

	_, records, err = selectRecords(dataset, "", "GALLE")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(records) != 1 || records[0].Get("Route") != "Galle" {
		t.Fatalf("unexpected filtered records: %v", records)
	}

	if _, _, err := selectRecords(dataset, "weekend", ""); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	dataset := timetable.Build(sampleSheet, timetable.DefaultTimeColumn)
	out := renderTable("Morning Arrivals to NSBM", dataset.Headers, dataset.Arrivals)

	for _, want := range []string{"Morning Arrivals to NSBM", "Driver Contact", "Kottawa", "077 123 4567", "Galle"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "5:00 PM") {
		t.Fatalf("arrivals table should not list departures:\n%s", out)
	}

	empty := renderTable("Morning Arrivals to NSBM", dataset.Headers, nil)
	if !strings.Contains(empty, "No results found.") {
		t.Fatalf("expected empty placeholder:\n%s", empty)
	}
}

func TestExportCommand_WritesCSV(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
		config.SetDefaults()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	viper.Reset()
	config.SetDefaults()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	input := filepath.Join(dir, "timetable.csv")
	if err := os.WriteFile(input, []byte(sampleSheet), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	target := filepath.Join(dir, "departures.csv")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"export", "--input", input, "--view", "departures", "--output", target})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export: %v", err)
	}

	file, err := os.Open(target)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := [][]string{
		{"Time", "Route", "Driver Contact"},
		{"5:00 PM", "Kottawa", "071 555 0000"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected export rows: %q", rows)
	}
	if !strings.Contains(stdout.String(), "Rows: 1, View: departures") {
		t.Fatalf("unexpected summary: %q", stdout.String())
	}
}
