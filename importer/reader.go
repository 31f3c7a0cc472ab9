// Package importer loads a timetable from the published sheet or from a local
// CSV/Excel copy of it.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"shuttleboard/sheet"
	"shuttleboard/timetable"
)

type Reader interface {
	Read(ctx context.Context) (timetable.Table, error)
}

// ReaderForLocation picks a reader for location. An empty location or an
// http(s) URL reads through client; files are chosen by extension.
func ReaderForLocation(location string, client sheet.Client) (Reader, error) {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	if location == "" || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if client == nil {
			return nil, fmt.Errorf("no sheet client configured for %q", location)
		}
		return &RemoteReader{Client: client}, nil
	}

	switch strings.TrimPrefix(filepath.Ext(lower), ".") {
	case "csv":
		return &CSVReader{Path: location}, nil
	case "xlsx", "xlsm", "xls":
		return &ExcelReader{Path: location}, nil
	default:
		return nil, fmt.Errorf("unsupported input %s (expected .csv, .xlsx or an http(s) URL)", location)
	}
}

type RemoteReader struct {
	Client sheet.Client
}

func (r *RemoteReader) Read(ctx context.Context) (timetable.Table, error) {
	text, err := r.Client.FetchCSV(ctx)
	if err != nil {
		return timetable.Table{}, err
	}
	return timetable.Parse(text), nil
}
