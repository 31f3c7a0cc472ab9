package timetable

import "strings"

// Filter keeps records where at least one field value contains term,
// ignoring case. An empty term returns records unchanged.
func Filter(records []Record, term string) []Record {
	if term == "" || records == nil {
		return records
	}

	needle := strings.ToLower(term)
	out := make([]Record, 0, len(records))
	for _, record := range records {
		for _, value := range record.Values {
			if strings.Contains(strings.ToLower(value), needle) {
				out = append(out, record)
				break
			}
		}
	}
	return out
}
