package web

import (
	"html/template"
	"net/url"
	"strings"

	"shuttleboard/timetable"
)

const fetchErrorPrefix = "Failed to fetch bus data. Please check the spreadsheet URL. "

// Columns names the sheet columns the page treats specially.
type Columns struct {
	Contact string
}

type CellView struct {
	Value   string
	Contact bool
	Href    template.URL
}

type RowView struct {
	Cells []CellView
}

type TabView struct {
	Label  string
	Href   string
	Active bool
}

type PageView struct {
	Title      string
	Subtitle   string
	Loading    bool
	Error      string
	Search     string
	ActiveView timetable.View
	Tabs       []TabView
	HasData    bool
	TableTitle string
	Headers    []string
	Rows       []RowView
	Empty      bool
	FetchedAt  string
}

var tabLabels = map[timetable.View]string{
	timetable.ViewArrivals:   "Morning Arrivals",
	timetable.ViewDepartures: "Evening Departures",
}

var tableTitles = map[timetable.View]string{
	timetable.ViewArrivals:   "Morning Arrivals to NSBM",
	timetable.ViewDepartures: "Evening Departures from NSBM",
}

// BuildPageView derives everything the dashboard template renders from the
// loader state and the two UI inputs. It has no side effects.
func BuildPageView(snap Snapshot, view timetable.View, term string, columns Columns) PageView {
	page := PageView{
		Title:      "NSBM Green University Bus Timetable",
		Subtitle:   "25.2 group community resource",
		Loading:    snap.Loading,
		Search:     term,
		ActiveView: view,
		Tabs:       buildTabs(view, term),
	}

	switch {
	case snap.Loading:
		return page
	case snap.Err != nil:
		page.Error = fetchErrorPrefix + snap.Err.Error()
		return page
	case !snap.Loaded:
		return page
	}

	records := timetable.Filter(snap.Dataset.Select(view), term)
	headers := snap.Dataset.Headers

	page.HasData = true
	page.TableTitle = tableTitles[view]
	page.Headers = headers
	page.Empty = len(records) == 0
	page.Rows = make([]RowView, 0, len(records))
	for _, record := range records {
		page.Rows = append(page.Rows, buildRow(record, headers, columns.Contact))
	}
	if !snap.FetchedAt.IsZero() {
		page.FetchedAt = snap.FetchedAt.Format("2006-01-02 15:04")
	}
	return page
}

func buildRow(record timetable.Record, headers []string, contactColumn string) RowView {
	cells := make([]CellView, len(headers))
	for i, header := range headers {
		value := record.Get(header)
		cell := CellView{Value: value}
		if contactColumn != "" && header == contactColumn {
			cell.Contact = true
			cell.Href = phoneHref(value)
		}
		cells[i] = cell
	}
	return RowView{Cells: cells}
}

// phoneHref turns a displayed phone number into a tel: link with all
// whitespace removed.
func phoneHref(value string) template.URL {
	number := strings.Join(strings.Fields(value), "")
	return template.URL("tel:" + url.PathEscape(number))
}

func buildTabs(active timetable.View, term string) []TabView {
	views := []timetable.View{timetable.ViewArrivals, timetable.ViewDepartures}
	tabs := make([]TabView, 0, len(views))
	for _, view := range views {
		tabs = append(tabs, TabView{
			Label:  tabLabels[view],
			Href:   pageHref(view, term),
			Active: view == active,
		})
	}
	return tabs
}

func pageHref(view timetable.View, term string) string {
	query := url.Values{}
	query.Set("view", string(view))
	if term != "" {
		query.Set("q", term)
	}
	return "/?" + query.Encode()
}
