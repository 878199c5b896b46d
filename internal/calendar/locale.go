package calendar

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// localeFormat holds the pieces needed to render dates for one language.
type localeFormat struct {
	tag    language.Tag
	months [12]string
	// monthYear, date and dateTime render a date's month and year, its full
	// date, and its medium date with a short time.
	monthYear func(month string, t time.Time) string
	date      func(month string, t time.Time) string
	dateTime  func(month string, t time.Time) string
}

func (f localeFormat) month(t time.Time) string {
	return f.months[t.Month()-1]
}

func (f localeFormat) MonthYear(t time.Time) string { return f.monthYear(f.month(t), t) }
func (f localeFormat) Date(t time.Time) string      { return f.date(f.month(t), t) }
func (f localeFormat) DateTime(t time.Time) string  { return f.dateTime(f.month(t), t) }

func dayMonthYear(sep string) func(string, time.Time) string {
	return func(m string, t time.Time) string {
		return fmt.Sprintf("%d%s %s %d", t.Day(), sep, m, t.Year())
	}
}

func monthSpaceYear(m string, t time.Time) string {
	return fmt.Sprintf("%s %d", m, t.Year())
}

// locales lists the supported formats; the first entry is the default.
var locales = []localeFormat{
	{
		tag:       language.AmericanEnglish,
		months:    [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		monthYear: monthSpaceYear,
		date: func(m string, t time.Time) string {
			return fmt.Sprintf("%s %d, %d", m, t.Day(), t.Year())
		},
		dateTime: func(m string, t time.Time) string {
			return fmt.Sprintf("%s %d, %d, %s", m, t.Day(), t.Year(), t.Format("3:04 PM"))
		},
	},
	{
		tag:       language.BritishEnglish,
		months:    [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sept", "Oct", "Nov", "Dec"},
		monthYear: monthSpaceYear,
		date:      dayMonthYear(""),
		dateTime: func(m string, t time.Time) string {
			return dayMonthYear("")(m, t) + ", " + t.Format("15:04")
		},
	},
	{
		tag:       language.French,
		months:    [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		monthYear: monthSpaceYear,
		date:      dayMonthYear(""),
		dateTime: func(m string, t time.Time) string {
			return dayMonthYear("")(m, t) + ", " + t.Format("15:04")
		},
	},
	{
		tag:       language.German,
		months:    [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
		monthYear: monthSpaceYear,
		date:      dayMonthYear("."),
		dateTime: func(_ string, t time.Time) string {
			return t.Format("02.01.2006, 15:04")
		},
	},
	{
		tag:       language.Spanish,
		months:    [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
		monthYear: monthSpaceYear,
		date:      dayMonthYear(""),
		dateTime: func(m string, t time.Time) string {
			return dayMonthYear("")(m, t) + ", " + t.Format("15:04")
		},
	},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// lookupLocale picks the closest supported format for a BCP 47 tag. Empty
// or unsupported tags get the default (American English).
func lookupLocale(tag string) localeFormat {
	if tag == "" {
		return locales[0]
	}
	t, err := language.Parse(tag)
	if err != nil {
		return locales[0]
	}
	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No {
		return locales[0]
	}
	return locales[idx]
}

// SupportedLocales returns the tags FormatDisplay renders natively.
func SupportedLocales() []string {
	out := make([]string, len(locales))
	for i, l := range locales {
		out[i] = l.tag.String()
	}
	return out
}
