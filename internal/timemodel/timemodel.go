// Package timemodel converts between wall-clock timestamps, "HH:MM" strings
// and minute-of-day integers anchored on a single reference date.
//
// All conversions are timezone-naive: a timestamp's own wall clock is used
// as-is and produced timestamps are expressed in UTC.
package timemodel

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Horizon is the length of the scheduling day in minutes.
const Horizon = domain.MinutesPerDay

// FarFutureDays stands in for days-to-due when a task has no due date.
const FarFutureDays = 1 << 20

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseClock converts "HH:MM" to minutes since midnight. "24:00" is accepted
// as the end of the day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, domain.NewValidationError("time", "%q is not in HH:MM format", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 {
		return 0, domain.NewValidationError("time", "%q has an invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return 0, domain.NewValidationError("time", "%q has an invalid minute", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, domain.NewValidationError("time", "%q is outside 00:00-24:00", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return twoDigits(minutes/60) + ":" + twoDigits(minutes%60)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ParseWindow parses a pair of "HH:MM" strings into a validated WorkWindow.
func ParseWindow(start, end string) (domain.WorkWindow, error) {
	s, err := ParseClock(start)
	if err != nil {
		return domain.WorkWindow{}, relabel(err, "work_hours.start")
	}
	e, err := ParseClock(end)
	if err != nil {
		return domain.WorkWindow{}, relabel(err, "work_hours.end")
	}
	return domain.NewWorkWindow(s, e)
}

func relabel(err error, field string) error {
	if vErr, ok := err.(*domain.ValidationError); ok {
		return &domain.ValidationError{Field: field, Message: vErr.Message}
	}
	return err
}

// ParseTimestamp accepts RFC3339 (with Z or an offset) and the common
// offset-less ISO forms. A trailing "Z" is read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("timestamp", "%q is not an ISO-8601 timestamp", s)
}

// ParseDue parses a task due timestamp. A bare date means the task is due
// by the end of that day, so it resolves to 23:59 rather than midnight.
func ParseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d.Add(Horizon*time.Minute - time.Minute), nil
	}
	return ParseTimestamp(s)
}

// MinuteOfDay returns hour*60+minute of the timestamp's wall clock.
func MinuteOfDay(ts time.Time) int {
	return ts.Hour()*60 + ts.Minute()
}

// Midnight returns 00:00 UTC of the civil date shown on ts.
func Midnight(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MinutesToTimestamp anchors a minute offset on the reference date.
func MinutesToTimestamp(ref time.Time, minutes int) time.Time {
	return Midnight(ref).Add(time.Duration(minutes) * time.Minute)
}

// DaysBetween counts whole civil days from ref's date to ts's date.
func DaysBetween(ref, ts time.Time) int {
	return int(Midnight(ts).Sub(Midnight(ref)).Hours() / 24)
}

// OffsetFromReference returns the minutes from reference midnight to the
// wall clock of ts. Timestamps on other dates fall outside [0, Horizon).
func OffsetFromReference(ref, ts time.Time) int {
	return DaysBetween(ref, ts)*Horizon + MinuteOfDay(ts)
}

// ResolveReferenceDate picks the day being scheduled: the explicit date if
// given, else the earliest due date, else now's date.
func ResolveReferenceDate(explicit *time.Time, dues []*time.Time, now time.Time) time.Time {
	if explicit != nil {
		return Midnight(*explicit)
	}
	var earliest *time.Time
	for _, d := range dues {
		if d == nil {
			continue
		}
		if earliest == nil || Midnight(*d).Before(Midnight(*earliest)) {
			earliest = d
		}
	}
	if earliest != nil {
		return Midnight(*earliest)
	}
	return Midnight(now)
}
