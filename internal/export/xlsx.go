// Package export renders dashboard summary rows into a spreadsheet for the
// production report download.
package export

import (
	"fmt"
	"time"

	"fieldops.service/internal/core/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Production Report"

var header = []string{
	"Date",
	"Time",
	"Employee ID",
	"Employee",
	"Work Order",
	"Status",
	"Worked Time",
	"Labor Cost",
}

// Filename names the download after the current date in the display timezone.
func Filename(now time.Time) string {
	return fmt.Sprintf("production_report_%s.xlsx", now.In(model.DisplayLocation).Format("02-01-2006"))
}

// BuildWorkbook lays the summarized rows out one per line under a fixed
// header. Labor cost is written as a plain number so spreadsheet formulas can
// sum the column.
func BuildWorkbook(rows []model.SummaryRow) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Date,
			row.Time,
			row.EmployeeID,
			row.EmployeeName,
			row.WorkOrderID,
			row.StatusLabel,
			row.WorkedTime,
			row.LaborCost,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
