package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

const (
	weekSheet     = "Week"
	sessionsSheet = "Sessions"
)

// XLSX writes a workbook with the weekly grid on the first sheet and one
// row per session on the second.
func XLSX(w io.Writer, view timeline.WeeklyView) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(weekSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{study.DefaultAccent}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, d := range view.Days {
		col := colName(i)
		_ = f.SetColWidth(weekSheet, col, col, 26)
		_ = f.SetCellValue(weekSheet, cell(col, 1), d.Name)
		for j, b := range d.Blocks {
			_ = f.SetCellValue(weekSheet, cell(col, j+2), fmt.Sprintf("%s %s - %s", b.SubjectName, b.Start12, b.End12))
		}
	}
	if n := len(view.Days); n > 0 {
		_ = f.SetCellStyle(weekSheet, "A1", cell(colName(n-1), 1), headerStyle)
	}

	headers := []string{"Day", "Start", "End", "Subject", "Minutes", "Recurring"}
	for i, h := range headers {
		_ = f.SetCellValue(sessionsSheet, cell(colName(i), 1), h)
	}
	_ = f.SetCellStyle(sessionsSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	_ = f.SetColWidth(sessionsSheet, "A", "D", 16)

	row := 2
	for _, d := range view.Days {
		for _, b := range d.Blocks {
			values := []any{d.Name, b.Entry.StartTime, b.Entry.EndTime, b.SubjectName, b.Duration, b.Entry.Recurring}
			for i, v := range values {
				_ = f.SetCellValue(sessionsSheet, cell(colName(i), row), v)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
