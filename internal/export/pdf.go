package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/javiermolinar/studyplan/internal/study"
	"github.com/javiermolinar/studyplan/internal/timeline"
)

// PDF renders the weekly view as a printable landscape timetable, one
// column per day.
func PDF(w io.Writer, view timeline.WeeklyView, title string) error {
	if len(view.Days) == 0 {
		return fmt.Errorf("pdf requires a weekly view")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	colWidth := 277.0 / float64(len(view.Days))
	pdf.SetFont("Arial", "B", 10)
	for _, d := range view.Days {
		pdf.CellFormat(colWidth, 8, d.Name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	rows := 1
	for _, d := range view.Days {
		rows = max(rows, len(d.Blocks))
	}

	pdf.SetFont("Arial", "", 8)
	for i := 0; i < rows; i++ {
		for _, d := range view.Days {
			if i >= len(d.Blocks) {
				text := ""
				if i == 0 {
					text = "No sessions"
				}
				pdf.CellFormat(colWidth, 12, text, "1", 0, "C", false, 0, "")
				continue
			}
			b := d.Blocks[i]
			r, g, bl := hexRGB(b.Color)
			pdf.SetFillColor(r, g, bl)
			pdf.SetTextColor(255, 255, 255)
			pdf.CellFormat(colWidth, 12, fmt.Sprintf("%s %s-%s", b.SubjectName, b.Start12, b.End12), "1", 0, "L", true, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Total scheduled: "+study.FormatDuration(view.TotalMinutes()), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// hexRGB splits "#RRGGBB". Anything else yields the default accent.
func hexRGB(hex string) (int, int, int) {
	if !study.IsHexColor(hex) {
		hex = study.DefaultAccent
	}
	v, _ := strconv.ParseUint(hex[1:], 16, 32)
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
