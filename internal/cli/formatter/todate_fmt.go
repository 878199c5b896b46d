package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/todate/internal/calendar"
	"github.com/alexanderramin/todate/internal/domain"
	"github.com/alexanderramin/todate/internal/service"
	"github.com/alexanderramin/todate/internal/timeline"
)

// FormatTodateList renders timeline entries as a table, newest first.
func FormatTodateList(entries []timeline.Entry) string {
	if len(entries) == 0 {
		return Dim("No todates yet. Add one with: todate add --title ... --date 2021-03") + "\n"
	}

	headers := []string{"ID", "DATE", "KIND", "TITLE", "TAGS"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.Todate.ID),
			e.DateLabel(),
			KindBadge(e.Todate.Start.Kind),
			Bold(Truncate(e.Todate.Title, 40)),
			tagChips(e.Todate.Tags),
		})
	}
	return RenderTable(headers, rows)
}

func tagChips(tags []domain.Tag) string {
	if len(tags) == 0 {
		return Dim("--")
	}
	chips := make([]string, len(tags))
	for i, t := range tags {
		chips[i] = TagChip(t)
	}
	return strings.Join(chips, " ")
}

// FormatTodateDetail renders one todate with its resolved dates.
func FormatTodateDetail(t *domain.Todate, display calendar.Options, now time.Time) string {
	var b strings.Builder
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render(fmt.Sprintf("%-10s", label)), value))
	}

	field("ID", t.ID)
	field("Date", FormatDateWithKind(t.Start, display))
	if t.End != nil {
		field("Until", FormatDateWithKind(*t.End, display))
	}
	if t.Start.Kind == domain.KindSchool && t.Start.School != nil {
		start, end := calendar.SchoolPeriodRange(t.Start.School, display.School, display.Location)
		field("Spans", start.Format("2006-01-02")+" → "+end.Format("2006-01-02"))
	}
	field("Sort key", StyleDim.Render(t.Date))
	field("Tags", tagChips(t.Tags))
	if t.Comment != "" {
		field("Comment", t.Comment)
	}
	if !t.UpdatedAt.IsZero() {
		field("Updated", HumanTimestampFrom(t.UpdatedAt, now))
	}

	return RenderBox(t.Title, strings.TrimRight(b.String(), "\n"))
}

// FormatDateWithKind renders a display label followed by its kind badge.
func FormatDateWithKind(v domain.DateValue, display calendar.Options) string {
	return calendar.FormatDisplay(v, display) + " " + KindBadge(v.Kind)
}

// FormatTagList renders tags with a colored swatch.
func FormatTagList(tags []*domain.Tag) string {
	if len(tags) == 0 {
		return Dim("No tags yet.") + "\n"
	}
	headers := []string{"ID", "NAME", "COLOR"}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{
			TruncID(t.ID),
			TagChip(*t),
			StyleDim.Render(t.Color),
		})
	}
	return RenderTable(headers, rows)
}

// FormatSchoolCalendar renders the configured calendar, or a hint when none is set.
func FormatSchoolCalendar(c *domain.SchoolCalendar) string {
	if c == nil {
		return Dim("No school calendar configured; school dates use a September 2000 start.")
	}

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render(fmt.Sprintf("%-16s", label)), value))
	}
	start := time.Date(c.ReferenceYear, time.Month(c.Month()), c.Day(), 0, 0, 0, 0, time.UTC)
	line("First year", Bold(start.Format("January 2, 2006")))
	line("Periods", fmt.Sprintf("%d × %s", domain.PeriodsPerYear(c.Periods()), c.Periods()))
	line("Repeated grades", gradeList(c.RepeatedGrades))
	line("Gap years after", gradeList(c.GapYears))
	line("Skipped grades", gradeList(c.SkippedGrades))
	return RenderBox("School calendar", strings.TrimRight(b.String(), "\n"))
}

func gradeList(grades []int) string {
	if len(grades) == 0 {
		return Dim("none")
	}
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ", ")
}

// FormatImportResult summarizes an import in one or two lines.
func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("Imported") + fmt.Sprintf(" %d new, %d updated todates; %d new, %d merged tags\n",
		r.TodatesCreated, r.TodatesUpdated, r.TagsCreated, r.TagsMerged))
	if r.SchoolUpdated {
		b.WriteString(fmt.Sprintf("School calendar replaced; %d existing school dates recomputed\n", r.Recomputed))
	}
	return b.String()
}
