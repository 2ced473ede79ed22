package core

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// Date layouts used throughout the journal.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02T15:04"
)

var (
	// ErrInvalidDate is returned when a YYYY-MM-DD string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnrecognizedDate is returned when a relative date description is not understood.
	ErrUnrecognizedDate = errors.New("unrecognized date description")
)

// RelativeDateHint lists the accepted relative date forms.
const RelativeDateHint = `use "today", "yesterday", "tomorrow", "last <day>", "previous <day>", "next <day>", "<N> days ago" or "<N> weeks ago"`

var (
	strictDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	daysAgoPattern    = regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)
	weeksAgoPattern   = regexp.MustCompile(`^(\d+)\s+weeks?\s+ago$`)
)

// dateOnly strips the clock from t, keeping its location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ISOWeekOf returns the ISO-8601 year and week containing t.
func ISOWeekOf(t time.Time) models.WeekKey {
	// Shift to the Thursday of the same Monday-based week; its calendar year
	// is the ISO year.
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0
	thursday := d.AddDate(0, 0, 3-offset)
	week := (thursday.YearDay()-1)/7 + 1
	return models.WeekKey{ISOYear: thursday.Year(), ISOWeek: week}
}

// MondayOf returns the Monday that starts the given ISO week, in loc.
func MondayOf(key models.WeekKey, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	// Week 1 always contains January 4th.
	jan4 := time.Date(key.ISOYear, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1 := jan4.AddDate(0, 0, -offset)
	return week1.AddDate(0, 0, (key.ISOWeek-1)*7)
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// ParseLocalDate parses YYYY-MM-DD as a local calendar date.
func ParseLocalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strictDatePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTime renders t as 24-hour HH:MM.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseWeekday resolves an English day name (case-insensitive, full or
// three-letter form).
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, true
		}
	}
	return 0, false
}

// LastDayOfWeek scans backwards from ref (exclusive) to the most recent day
// named dayName. The boolean is false for unknown day names.
func LastDayOfWeek(ref time.Time, dayName string) (time.Time, bool) {
	wd, ok := ParseWeekday(dayName)
	if !ok {
		return time.Time{}, false
	}
	d := dateOnly(ref)
	for i := 1; i <= 7; i++ {
		c := d.AddDate(0, 0, -i)
		if c.Weekday() == wd {
			return c, true
		}
	}
	return time.Time{}, false
}

// NextDayOfWeek scans forwards from ref (exclusive) to the next day named dayName.
func NextDayOfWeek(ref time.Time, dayName string) (time.Time, bool) {
	wd, ok := ParseWeekday(dayName)
	if !ok {
		return time.Time{}, false
	}
	d := dateOnly(ref)
	for i := 1; i <= 7; i++ {
		c := d.AddDate(0, 0, i)
		if c.Weekday() == wd {
			return c, true
		}
	}
	return time.Time{}, false
}

// IsDateInRange reports whether the 7-day window starting at fileDate
// intersects [from, to]. Nil bounds are open. Comparison is by calendar day.
func IsDateInRange(fileDate time.Time, from, to *time.Time) bool {
	start := dateOnly(fileDate)
	end := start.AddDate(0, 0, 6)
	if from != nil && end.Before(dateOnly(*from)) {
		return false
	}
	if to != nil && start.After(dateOnly(*to)) {
		return false
	}
	return true
}

// ParseRelativeDate resolves a natural-language date description against ref.
func ParseRelativeDate(desc string, ref time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(desc))
	s = strings.Join(strings.Fields(s), " ")
	base := dateOnly(ref)

	switch s {
	case "today":
		return base, nil
	case "yesterday":
		return base.AddDate(0, 0, -1), nil
	case "tomorrow":
		return base.AddDate(0, 0, 1), nil
	}

	if m := daysAgoPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return base.AddDate(0, 0, -n), nil
		}
	}
	if m := weeksAgoPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return base.AddDate(0, 0, -7*n), nil
		}
	}

	if rest, ok := cutAnyPrefix(s, "last ", "previous "); ok {
		if d, found := LastDayOfWeek(base, rest); found {
			return d, nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "next "); ok {
		if d, found := NextDayOfWeek(base, rest); found {
			return d, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q; %s", ErrUnrecognizedDate, desc, RelativeDateHint)
}

func cutAnyPrefix(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return "", false
}

// DescribeDate returns the journal view of a single date.
func DescribeDate(t time.Time) models.DateInfo {
	key := ISOWeekOf(t)
	monday := WeekStart(t)
	return models.DateInfo{
		Date:      FormatDate(t),
		DayOfWeek: t.Weekday().String(),
		ISOYear:   key.ISOYear,
		ISOWeek:   key.ISOWeek,
		WeekStart: FormatDate(monday),
		WeekEnd:   FormatDate(monday.AddDate(0, 0, 6)),
	}
}

// WeekDates returns Monday through Sunday of the ISO week containing t.
func WeekDates(t time.Time) []models.WeekDay {
	monday := WeekStart(t)
	days := make([]models.WeekDay, 7)
	for i := range days {
		d := monday.AddDate(0, 0, i)
		days[i] = models.WeekDay{Date: FormatDate(d), DayOfWeek: d.Weekday().String()}
	}
	return days
}

// resolveDate parses an optional YYYY-MM-DD value, falling back to today on
// empty or unparseable input.
func resolveDate(s string, now time.Time) time.Time {
	if strings.TrimSpace(s) == "" {
		return dateOnly(now)
	}
	t, err := ParseLocalDate(s)
	if err != nil {
		return dateOnly(now)
	}
	return t
}
