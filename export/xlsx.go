package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/harborops/crewboard/schedule"
)

// TotalsXLSX renders the yearly admin totals as a single-sheet workbook
// for the spreadsheet-driven side of the admin workflow. Same columns as
// the CSV, but hours are written as numbers so spreadsheet formulas work.
func TotalsXLSX(year int, totals []schedule.EmployeeTotals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Totals"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, name := range totalsHeader(year) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	for i, t := range totals {
		row := i + 2
		req, _ := t.Requested().Float64()
		app, _ := t.Approved().Float64()
		tak, _ := t.Taken().Float64()
		values := []any{year, t.Name, t.Position, req, app, tak}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
