package tools

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var isoLike = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// GetDateInfoInput holds the arguments of get_date_info.
type GetDateInfoInput struct {
	Date          string `json:"date,omitempty" jsonschema:"YYYY-MM-DD or a description such as yesterday, last friday, 3 days ago; defaults to today"`
	ReferenceDate string `json:"reference_date,omitempty" jsonschema:"YYYY-MM-DD that relative descriptions are resolved against; defaults to today"`
}

// GetWeekDatesInput holds the arguments of get_week_dates.
type GetWeekDatesInput struct {
	Date          string `json:"date,omitempty" jsonschema:"any day of the week as YYYY-MM-DD or a relative description; defaults to today"`
	ReferenceDate string `json:"reference_date,omitempty" jsonschema:"YYYY-MM-DD that relative descriptions are resolved against; defaults to today"`
}

// WeekDatesResult is the data of get_week_dates.
type WeekDatesResult struct {
	ISOYear int              `json:"iso_year"`
	ISOWeek int              `json:"iso_week"`
	File    string           `json:"file"`
	Days    []models.WeekDay `json:"days"`
}

// GetDateInfo describes a date in journal terms. Unlike the journal
// operations, an unreadable date is an error here.
func (t *Toolset) GetDateInfo(in GetDateInfoInput) models.ToolResult {
	d, err := t.parseDate(in.Date, in.ReferenceDate)
	if err != nil {
		return fail(err)
	}
	info := core.DescribeDate(d)
	return models.OK(fmt.Sprintf("%s is a %s in ISO week %d of %d", info.Date, info.DayOfWeek, info.ISOWeek, info.ISOYear), info)
}

// GetWeekDates lists Monday through Sunday of the week containing the date.
func (t *Toolset) GetWeekDates(in GetWeekDatesInput) models.ToolResult {
	d, err := t.parseDate(in.Date, in.ReferenceDate)
	if err != nil {
		return fail(err)
	}
	key := core.ISOWeekOf(d)
	res := WeekDatesResult{
		ISOYear: key.ISOYear,
		ISOWeek: key.ISOWeek,
		File:    core.WeekFileName(key),
		Days:    core.WeekDates(d),
	}
	return models.OK(fmt.Sprintf("Week %d of %d runs from %s to %s", key.ISOWeek, key.ISOYear, res.Days[0].Date, res.Days[6].Date), res)
}

// parseDate accepts an ISO date or a description relative to ref, or to
// today when ref is empty.
func (t *Toolset) parseDate(s, ref string) (time.Time, error) {
	base := t.now()
	if strings.TrimSpace(ref) != "" {
		r, err := core.ParseLocalDate(ref)
		if err != nil {
			return time.Time{}, fmt.Errorf("reference_date: %w", err)
		}
		base = r
	}
	s = strings.TrimSpace(s)
	if s == "" {
		s = "today"
	}
	d, err := core.ParseLocalDate(s)
	if err == nil {
		return d, nil
	}
	if isoLike.MatchString(s) {
		return time.Time{}, err
	}
	return core.ParseRelativeDate(s, base)
}
