package timeline

import (
	"fmt"
	"strings"
)

// RenderDaily writes the daily view as plain text.
// Empty slots are skipped unless showEmpty is set.
func RenderDaily(v DailyView, showEmpty bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Name)
	if v.Empty {
		b.WriteString("  No sessions scheduled\n")
		return b.String()
	}
	for _, slot := range v.Slots {
		if len(slot.Blocks) == 0 {
			if showEmpty {
				fmt.Fprintf(&b, "  %8s\n", slot.Label)
			}
			continue
		}
		for i, blk := range slot.Blocks {
			label := slot.Label
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(&b, "  %8s  %s\n", label, blk.Label())
		}
	}
	if v.Hidden > 0 {
		fmt.Fprintf(&b, "  (%d outside the timeline window)\n", v.Hidden)
	}
	return b.String()
}

// RenderWeekly writes the weekly view as plain text.
func RenderWeekly(v WeeklyView) string {
	var b strings.Builder
	for i, col := range v.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := ""
		if col.IsToday {
			marker = " (today)"
		}
		fmt.Fprintf(&b, "%s%s - %s\n", col.Name, marker, col.SessionCount())
		if col.Empty() {
			b.WriteString("  No sessions scheduled\n")
			continue
		}
		for _, blk := range col.Blocks {
			fmt.Fprintf(&b, "  %s\n", blk.Label())
		}
	}
	return b.String()
}
