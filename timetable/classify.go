package timetable

import "strings"

// Dataset is the arrivals/departures split of one fetched sheet.
type Dataset struct {
	Headers    []string
	Arrivals   []Record
	Departures []Record
}

// Classify runs two independent passes over records: values of timeColumn
// containing "AM" go to arrivals, values containing "PM" go to departures.
// Records with neither marker are dropped; a value with both markers is kept
// in both sets.
func Classify(records []Record, timeColumn string) (arrivals, departures []Record) {
	arrivals = make([]Record, 0, len(records))
	departures = make([]Record, 0, len(records))

	for _, record := range records {
		if hasMarker(record, timeColumn, "AM") {
			arrivals = append(arrivals, record)
		}
	}
	for _, record := range records {
		if hasMarker(record, timeColumn, "PM") {
			departures = append(departures, record)
		}
	}

	return arrivals, departures
}

// Build parses text and classifies the result in one step.
func Build(text, timeColumn string) Dataset {
	return FromTable(Parse(text), timeColumn)
}

func FromTable(table Table, timeColumn string) Dataset {
	arrivals, departures := Classify(table.Records, timeColumn)
	return Dataset{
		Headers:    table.Headers,
		Arrivals:   arrivals,
		Departures: departures,
	}
}

func (d Dataset) Select(view View) []Record {
	if view == ViewDepartures {
		return d.Departures
	}
	return d.Arrivals
}

func hasMarker(record Record, timeColumn, marker string) bool {
	value := record.Get(timeColumn)
	if value == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(value), marker)
}
