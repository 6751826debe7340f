// Package export projects the final result list into a spreadsheet.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dbellini/catalog-enricher/internal/types"
)

// Timestamps are exported in RFC 3339 to match the JSON store.
const timeFormat = "2006-01-02T15:04:05Z07:00"

// selectedColumns is the fixed projection of the highlight groups. The
// catalog convention carries exactly three groups; absent groups leave
// empty cells.
var selectedColumns = []string{
	"product-highlights-1",
	"product-highlights-2",
	"product-highlights-3",
}

var headers = append(append([]string{
	"id",
	"title",
	"initial_description",
}, selectedColumns...),
	"final_description",
	"prompt_text",
	"start_time",
	"end_time",
	"duration_seconds",
)

// ToExcel writes the results to an xlsx file with the fixed column order,
// one row per result.
func ToExcel(path string, results []types.ProcessingResult) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for row, r := range results {
		values := []any{
			r.ID,
			r.Title,
			r.InitialDescription,
		}
		for _, label := range selectedColumns {
			values = append(values, r.Selected[label])
		}
		values = append(values,
			r.FinalDescription,
			r.Prompt,
			r.StartTime.Format(timeFormat),
			r.EndTime.Format(timeFormat),
			r.DurationSeconds,
		)

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("building cell for row %d: %w", row+2, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
