package web

import (
	"errors"
	"strings"
	"testing"
	"time"

	"shuttleboard/timetable"
)

var testColumns = Columns{Contact: "Driver Contact"}

func loadedSnapshot(text string) Snapshot {
	return Snapshot{
		Loaded:    true,
		Dataset:   timetable.Build(text, timetable.DefaultTimeColumn),
		FetchedAt: time.Date(2026, 3, 2, 7, 5, 0, 0, time.UTC),
	}
}

const sampleSheet = "Time,Route,Driver Contact\n7:00 AM,Kottawa,077 123 4567\n7:30 AM,Galle,\n5:00 PM,Kottawa,071 555 0000"

func TestBuildPageView_Loading(t *testing.T) {
	t.Parallel()

	page := BuildPageView(Snapshot{Loading: true}, timetable.ViewArrivals, "", testColumns)
	if !page.Loading || page.HasData || page.Error != "" {
		t.Fatalf("unexpected loading page: %+v", page)
	}
}

func TestBuildPageView_ErrorHidesTables(t *testing.T) {
	t.Parallel()

	page := BuildPageView(Snapshot{Err: errors.New("status 404")}, timetable.ViewArrivals, "", testColumns)
	if page.HasData || len(page.Rows) != 0 {
		t.Fatalf("expected no table on error: %+v", page)
	}
	if !strings.HasPrefix(page.Error, "Failed to fetch bus data.") || !strings.HasSuffix(page.Error, "status 404") {
		t.Fatalf("unexpected error message: %q", page.Error)
	}
}

func TestBuildPageView_ArrivalsTable(t *testing.T) {
	t.Parallel()

	page := BuildPageView(loadedSnapshot(sampleSheet), timetable.ViewArrivals, "", testColumns)

	if page.TableTitle != "Morning Arrivals to NSBM" {
		t.Fatalf("unexpected title: %q", page.TableTitle)
	}
	if len(page.Headers) != 3 || len(page.Rows) != 2 {
		t.Fatalf("expected 3 headers and 2 rows, got %d/%d", len(page.Headers), len(page.Rows))
	}
	contact := page.Rows[0].Cells[2]
	if !contact.Contact || string(contact.Href) != "tel:0771234567" {
		t.Fatalf("unexpected contact cell: %+v", contact)
	}
	if page.Rows[0].Cells[1].Contact {
		t.Fatalf("route column should render as plain text")
	}
	if page.FetchedAt != "2026-03-02 07:05" {
		t.Fatalf("unexpected fetched at: %q", page.FetchedAt)
	}
	if !page.Tabs[0].Active || page.Tabs[1].Active {
		t.Fatalf("expected arrivals tab active: %+v", page.Tabs)
	}
}

func TestBuildPageView_DeparturesWithSearch(t *testing.T) {
	t.Parallel()

	page := BuildPageView(loadedSnapshot(sampleSheet), timetable.ViewDepartures, "kottawa", testColumns)

	if page.TableTitle != "Evening Departures from NSBM" {
		t.Fatalf("unexpected title: %q", page.TableTitle)
	}
	if len(page.Rows) != 1 || page.Rows[0].Cells[0].Value != "5:00 PM" {
		t.Fatalf("unexpected rows: %+v", page.Rows)
	}
	if page.Tabs[0].Href != "/?q=kottawa&view=arrivals" {
		t.Fatalf("expected tab link to keep search term, got %q", page.Tabs[0].Href)
	}
}

func TestBuildPageView_EmptyResult(t *testing.T) {
	t.Parallel()

	page := BuildPageView(loadedSnapshot(sampleSheet), timetable.ViewArrivals, "matara", testColumns)
	if !page.HasData || !page.Empty || len(page.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", page)
	}
}

func TestPhoneHref_StripsWhitespace(t *testing.T) {
	t.Parallel()

	if got := phoneHref(" +94 77\t123 4567 "); got != "tel:+94771234567" {
		t.Fatalf("unexpected href: %q", got)
	}
}
