// Package render draws a timeline view as a standalone SVG document.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/todate/internal/axis"
	"github.com/alexanderramin/todate/internal/timeline"
)

const (
	paddingY      = 18
	axisX         = 28
	minLaneWidth  = 18
	bracketRadius = 4
	lanePad       = 2

	// FallbackColor strokes entries without a tag.
	FallbackColor = "#6b7280"
)

// Style controls the SVG canvas.
type Style struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
	Background string `yaml:"background"`
	Axis       string `yaml:"axis"`
	Text       string `yaml:"text"`
	// ShowTitles writes each entry's title next to its mark.
	ShowTitles bool `yaml:"show_titles"`
}

// DefaultStyle returns a 320x800 light canvas.
func DefaultStyle() Style {
	return Style{
		Width:      320,
		Height:     800,
		FontFamily: "ui-monospace, monospace",
		FontSize:   9,
		Background: "#ffffff",
		Axis:       "#9ca3af",
		Text:       "#4b5563",
		ShowTitles: true,
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	s.Width = max(60, s.Width)
	s.Height = max(60, s.Height)
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.Background == "" {
		s.Background = d.Background
	}
	if s.Axis == "" {
		s.Axis = d.Axis
	}
	if s.Text == "" {
		s.Text = d.Text
	}
	return s
}

// canvas maps years and lanes to pixels for one document.
type canvas struct {
	style    Style
	years    axis.YearSpan
	lanesX   float64
	laneW    float64
	drawable float64
}

func newCanvas(v *timeline.View, style Style) canvas {
	c := canvas{style: style, years: v.Years, lanesX: axisX + 4}
	c.drawable = float64(style.Height - 2*paddingY)
	available := float64(style.Width) - c.lanesX - 4
	c.laneW = minLaneWidth
	if v.LaneCount > 0 {
		c.laneW = math.Max(minLaneWidth, available/float64(v.LaneCount))
	}
	return c
}

func (c canvas) y(year float64) float64 {
	return paddingY + axis.YearToPixel(year, float64(c.years.Start), float64(c.years.End), c.drawable)
}

// SVG renders v. The view's ticks are recomputed for the canvas height so
// labels keep their minimum spacing whatever the view was built for.
func SVG(v *timeline.View, style Style) string {
	style = style.withDefaults()
	c := newCanvas(v, style)
	ticks := axis.ComputeTickYears(float64(v.Years.Start), float64(v.Years.End), c.drawable, v.LabelMinPx)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg" aria-label="Timeline">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.tick-text { font-family: %s; font-size: %dpx; fill: %s; }
.title-text { font-family: %s; font-size: %dpx; fill: %s; }
</style>
</defs>
`, style.Width, style.Height, escapeXML(style.Background),
		escapeXML(style.FontFamily), style.FontSize, escapeXML(style.Text),
		escapeXML(style.FontFamily), style.FontSize+1, escapeXML(style.Text)))

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
		axisX, paddingY, axisX, style.Height-paddingY, escapeXML(style.Axis)))

	for _, yr := range ticks {
		py := c.y(float64(yr))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%s" x2="%d" y2="%s" stroke="%s" stroke-width="1"/>`+"\n",
			axisX-4, num(py), axisX, num(py), escapeXML(style.Axis)))
		svg.WriteString(fmt.Sprintf(`<text class="tick-text" x="%d" y="%s" text-anchor="end">%d</text>`+"\n",
			axisX-6, num(py+3), yr))
	}

	// Brackets first so point lines sit on top.
	for _, e := range v.Visible() {
		if e.IsRanged() {
			drawBracket(&svg, c, e)
		}
	}
	for _, e := range v.Visible() {
		if !e.IsRanged() {
			drawPoint(&svg, c, e)
		}
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func entryColor(e timeline.Entry) string {
	if len(e.Todate.Tags) > 0 && e.Todate.Tags[0].Color != "" {
		return e.Todate.Tags[0].Color
	}
	return FallbackColor
}

func drawBracket(svg *strings.Builder, c canvas, e timeline.Entry) {
	lane := max(e.Lane, 0)
	left := c.lanesX + float64(lane)*c.laneW + lanePad
	right := left + c.laneW - lanePad*2
	top, bottom := c.y(e.StartYear), c.y(e.EndYear)
	col := escapeXML(entryColor(e))
	d := bracketPath(left, top, right, bottom, bracketRadius)

	svg.WriteString(fmt.Sprintf(`<g data-id="%s"><title>%s</title>`+"\n",
		escapeXML(e.Todate.ID), escapeXML(e.Todate.Title+" ("+e.DateLabel()+")")))
	svg.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-opacity="0.12"/>`+"\n", d, col))
	svg.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-opacity="0.7" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"/>`+"\n", d, col))
	if c.style.ShowTitles {
		svg.WriteString(fmt.Sprintf(`<text class="title-text" x="%s" y="%s">%s</text>`+"\n",
			num(left+4), num(top+float64(c.style.FontSize)+2), escapeXML(e.Todate.Title)))
	}
	svg.WriteString("</g>\n")
}

func drawPoint(svg *strings.Builder, c canvas, e timeline.Entry) {
	cy := c.y(e.StartYear)
	col := escapeXML(entryColor(e))

	svg.WriteString(fmt.Sprintf(`<g data-id="%s"><title>%s</title>`+"\n",
		escapeXML(e.Todate.ID), escapeXML(e.Todate.Title+" ("+e.DateLabel()+")")))
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%s" x2="%d" y2="%s" stroke="%s" stroke-opacity="0.55" stroke-width="2" stroke-dasharray="6 4" stroke-linecap="round"/>`+"\n",
		axisX, num(cy), c.style.Width, num(cy), col))
	if c.style.ShowTitles {
		svg.WriteString(fmt.Sprintf(`<text class="title-text" x="%d" y="%s" text-anchor="end">%s</text>`+"\n",
			c.style.Width-4, num(cy-3), escapeXML(e.Todate.Title)))
	}
	svg.WriteString("</g>\n")
}

// bracketPath draws a "]" open on the left with rounded right corners.
func bracketPath(left, top, right, bottom, r float64) string {
	cr := math.Min(r, math.Min((right-left)/2, (bottom-top)/2))
	cr = math.Max(cr, 0)
	return strings.Join([]string{
		fmt.Sprintf("M %s %s", num(left), num(top)),
		fmt.Sprintf("L %s %s", num(right-cr), num(top)),
		fmt.Sprintf("Q %s %s %s %s", num(right), num(top), num(right), num(top+cr)),
		fmt.Sprintf("L %s %s", num(right), num(bottom-cr)),
		fmt.Sprintf("Q %s %s %s %s", num(right), num(bottom), num(right-cr), num(bottom)),
		fmt.Sprintf("L %s %s", num(left), num(bottom)),
	}, " ")
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
