package timetable

import (
	"fmt"
	"strings"
)

const (
	DefaultTimeColumn    = "Time"
	DefaultContactColumn = "Driver Contact"
)

// Record is one parsed data row keyed by header name. Field order is the
// header order of the Table it came from.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Table is the parsed form of a published sheet.
type Table struct {
	Headers []string
	Records []Record
}

func (r Record) Get(key string) string {
	return r.Values[key]
}

// Fields returns the record values in the given header order.
func (r Record) Fields(headers []string) []string {
	out := make([]string, len(headers))
	for i, header := range headers {
		out[i] = r.Values[header]
	}
	return out
}

type View string

const (
	ViewArrivals   View = "arrivals"
	ViewDepartures View = "departures"
)

func ParseView(value string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ViewArrivals):
		return ViewArrivals, nil
	case string(ViewDepartures):
		return ViewDepartures, nil
	default:
		return "", fmt.Errorf("unsupported view %q (valid: arrivals, departures)", value)
	}
}
