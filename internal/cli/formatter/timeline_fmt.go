package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/todate/internal/axis"
	"github.com/alexanderramin/todate/internal/timeline"
)

// minTickRows keeps year labels at least this many rows apart.
const minTickRows = 2

// RenderTimeline draws v as a vertical text timeline of the given number of
// rows: year labels on the left, one column per lane for ranged entries, and
// titles of the entries starting on each row at the right. The oldest year
// is at the top, as in the SVG.
func RenderTimeline(v *timeline.View, rows, width int) string {
	rows = max(rows, 3)
	start, end := float64(v.Years.Start), float64(v.Years.End)
	rowOf := func(year float64) int {
		r := int(axis.YearToPixel(year, start, end, float64(rows)))
		return min(max(r, 0), rows-1)
	}

	tickAt := make(map[int]int)
	for _, y := range axis.ComputeTickYears(start, end, float64(rows), minTickRows) {
		tickAt[rowOf(float64(y))] = y
	}

	lanes := make([][]string, rows)
	for r := range lanes {
		lanes[r] = make([]string, v.LaneCount)
		for l := range lanes[r] {
			lanes[r][l] = " "
		}
	}
	notes := make([][]string, rows)

	visible := v.Visible()
	for _, e := range visible {
		style := TagStyle(e.Todate.Color())
		r0 := rowOf(e.StartYear)
		notes[r0] = append(notes[r0], style.Render("●")+" "+e.Todate.Title)
		if !e.IsRanged() || e.Lane < 0 || e.Lane >= v.LaneCount {
			continue
		}
		r1 := rowOf(e.EndYear)
		for r := r0; r <= r1; r++ {
			glyph := "│"
			switch {
			case r0 == r1:
				glyph = "◆"
			case r == r0:
				glyph = "┬"
			case r == r1:
				glyph = "┴"
			}
			lanes[r][e.Lane] = style.Render(glyph)
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n",
		StyleHeader.Render(fmt.Sprintf("%d – %d", v.Years.Start, v.Years.End)),
		Dim(fmt.Sprintf("%d of %d todates, %d lanes", len(visible), len(v.Entries), v.LaneCount))))

	for r := 0; r < rows; r++ {
		label, spine := "", StyleDim.Render("│")
		if y, ok := tickAt[r]; ok {
			label, spine = strconv.Itoa(y), StyleDim.Render("┼")
		}
		line := StyleDim.Render(fmt.Sprintf("%6s", label)) + " " + spine + " " + strings.Join(lanes[r], "")
		if len(notes[r]) > 0 {
			room := width - lipgloss.Width(line) - 2
			line += "  " + truncateStyled(strings.Join(notes[r], "  "), room)
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}

// truncateStyled cuts a styled string to a visible width, keeping ANSI
// sequences intact.
func truncateStyled(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
