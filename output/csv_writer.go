package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"shuttleboard/timetable"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, headers []string, records []timetable.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(record.Fields(headers)); err != nil {
			return fmt.Errorf("write csv row %d: %w", record.RowNumber, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
