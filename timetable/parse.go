package timetable

import "strings"

const byteOrderMark = "\uFEFF"

// Parse splits published CSV text into headers and records. Values are split
// on bare commas; quoting is not interpreted. A leading UTF-8 byte order mark
// is dropped. Parse never fails.
func Parse(text string) Table {
	lines := splitLines(strings.TrimPrefix(text, byteOrderMark))
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, ",")
	}
	return FromRows(rows)
}

// FromRows builds a Table from already split rows. The first row holds the
// headers. Every value is trimmed, short rows are padded with empty strings
// and extra fields are dropped.
func FromRows(rows [][]string) Table {
	if len(rows) == 0 {
		return Table{Headers: []string{}, Records: []Record{}}
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for col, header := range headers {
			if col < len(row) {
				values[header] = strings.TrimSpace(row[col])
			} else {
				values[header] = ""
			}
		}
		records = append(records, Record{RowNumber: i + 2, Values: values})
	}

	return Table{Headers: headers, Records: records}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
