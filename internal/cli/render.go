package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platewise/platewise/internal/model"
)

// RenderCounts formats category counts as aligned rows, highest count
// first, ties broken alphabetically. Zero-count categories are omitted.
func RenderCounts(counts model.Counts) string {
	type row struct {
		cat model.Category
		n   int
	}
	rows := make([]row, 0, len(counts))
	for cat, n := range counts {
		if n > 0 {
			rows = append(rows, row{cat, n})
		}
	}
	if len(rows) == 0 {
		return SubtleStyle.Render("  (no items)")
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].cat < rows[j].cat
	})

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-28s %d\n", r.cat, r.n)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDayTotal formats one day's summary.
func RenderDayTotal(total *model.DayTotal) string {
	header := FormatTitle(fmt.Sprintf("Day %s (%s)", total.Date, total.UserID))
	return header + "\n" + RenderCounts(total.Counts)
}

// RenderMonthTotal formats a month's summary and its pattern flags.
func RenderMonthTotal(total *model.MonthTotal) string {
	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("Month %s (%s)", total.Month, total.UserID)))
	b.WriteString("\n")
	b.WriteString(RenderCounts(total.Counts))
	b.WriteString("\n\n")
	if len(total.Flags) == 0 {
		b.WriteString(FormatSuccess("no pattern flags"))
	} else {
		flags := make([]string, 0, len(total.Flags))
		for _, f := range total.Flags {
			flags = append(flags, string(f))
		}
		b.WriteString(FormatWarning("flags: " + strings.Join(flags, ", ")))
	}
	return b.String()
}

// RenderGoalSet formats a goal set as boxed goals.
func RenderGoalSet(set *model.GoalSet) string {
	sections := make([]string, 0, len(set.Goals)+1)
	sections = append(sections, TitleStyle.Render(fmt.Sprintf("%s Goals for %s", GoalIcon, set.Month)))
	for i, g := range set.Goals {
		content := fmt.Sprintf("Why: %s\nHow: %s\nIf it's hard: %s", g.Why, g.How, g.Fallback)
		sections = append(sections, RenderBox(fmt.Sprintf("%d. %s", i+1, g.Title), content))
	}
	return strings.Join(sections, "\n")
}

// RenderClassification formats one classified item for the classify command.
func RenderClassification(item model.ClassifiedItem) string {
	label := item.Detection.RawLabel
	if item.Category == model.CategoryUnmapped {
		return fmt.Sprintf("  %-30s %s", label, WarningStyle.Render(string(item.Category)))
	}
	return fmt.Sprintf("  %-30s %s", label, SuccessStyle.Render(string(item.Category)))
}
