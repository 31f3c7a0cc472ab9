package importer

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"shuttleboard/timetable"
)

// ExcelReader reads the first sheet of a workbook export.
type ExcelReader struct {
	Path string
}

func (r *ExcelReader) Read(_ context.Context) (timetable.Table, error) {
	file, err := excelize.OpenFile(r.Path)
	if err != nil {
		return timetable.Table{}, fmt.Errorf("open excel file %s: %w", r.Path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return timetable.Table{}, fmt.Errorf("excel file has no sheets: %s", r.Path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return timetable.Table{}, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return timetable.Table{}, fmt.Errorf("sheet %s is empty", sheetName)
	}

	return timetable.FromRows(rows), nil
}
