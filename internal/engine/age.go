package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

const day = 24 * time.Hour

// Breakdown is the elapsed time between a birth date and a reference date.
// The totals are exact projections of TotalDays, not independent measurements.
//
// Days is never negative, but it is not always below the length of the month
// preceding the reference: when a birth on the 29th to 31st is measured against the
// first days of March, the borrow repeats into January and Days can exceed February's
// length (2023-01-31 to 2023-03-01 is 0y 0m 29d, with February 2023 having 28 days).
type Breakdown struct {
	Years        int   `json:"years"`
	Months       int   `json:"months"`
	Days         int   `json:"days"`
	TotalDays    int64 `json:"total_days"`
	TotalHours   int64 `json:"total_hours"`
	TotalMinutes int64 `json:"total_minutes"`
	TotalSeconds int64 `json:"total_seconds"`
}

// Validate reports whether birth can be measured against reference.
// A zero birth is missing, a birth after reference is in the future, and a birth
// before the same calendar day MaxAgeYears years earlier is too old.
func Validate(birth, reference time.Time) error {
	if birth.IsZero() {
		return ErrMissingInput
	}
	if birth.After(reference) {
		return ErrFutureDate
	}
	oldest := time.Date(reference.Year()-config.MaxAgeYears, reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	if birth.Before(oldest) {
		return ErrTooOld
	}
	return nil
}

// ComputeBreakdown decomposes the time between birth and reference into calendar
// years, months and days, plus whole elapsed days rounded up.
// Callers must Validate first.
func ComputeBreakdown(birth, reference time.Time) Breakdown {
	years := reference.Year() - birth.Year()
	months := int(reference.Month()) - int(birth.Month())
	days := reference.Day() - birth.Day()

	// Borrow the length of the month before the reference month, in the reference year.
	// A second borrow is only needed when that month is shorter than the birth day
	// (a 31st measured against March 1st).
	for back := 0; days < 0; back++ {
		months--
		days += daysInMonthBefore(reference, back)
	}

	if months < 0 {
		years--
		months += config.MonthsPerYear
	}

	totalDays := elapsedDays(birth, reference)
	totalHours := totalDays * config.HoursPerDay
	totalMinutes := totalHours * config.MinutesPerHour

	return Breakdown{
		Years:        years,
		Months:       months,
		Days:         days,
		TotalDays:    totalDays,
		TotalHours:   totalHours,
		TotalMinutes: totalMinutes,
		TotalSeconds: totalMinutes * config.SecondsPerMin,
	}
}

// IsBirthday reports whether reference falls on the anniversary of birth.
func IsBirthday(birth, reference time.Time) bool {
	return birth.Month() == reference.Month() && birth.Day() == reference.Day()
}

// daysInMonthBefore returns the length of the month back+1 months before ref's month.
// Day 0 of a month normalizes to the last day of the month before.
func daysInMonthBefore(ref time.Time, back int) int {
	return time.Date(ref.Year(), ref.Month()-time.Month(back), 0, 0, 0, 0, 0, ref.Location()).Day()
}

// elapsedDays is ceil(|b - a| / 24h).
func elapsedDays(a, b time.Time) int64 {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	n := int64(d / day)
	if d%day != 0 {
		n++
	}
	return n
}
