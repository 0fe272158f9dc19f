package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// AgeBreakdown is the calendar-aware age between a birth date and "today".
type AgeBreakdown struct {
	Years  int
	Months int // 0-11
	Days   int // bounded by the length of the last full month
}

// DurationStats is the absolute elapsed time since birth. Every unit is an
// exact multiple of TotalDays.
type DurationStats struct {
	TotalDays    int64
	TotalHours   int64
	TotalMinutes int64
	TotalSeconds int64
	Heartbeats   int64 // approximate, 70 beats per minute
	Breaths      int64 // approximate, 16 breaths per minute
}

// NextAnniversary is the countdown to the next birthday.
type NextAnniversary struct {
	DaysRemaining int
	Date          time.Time
	AgeNext       int
}

// BirthTime builds the birth instant in the location of now. It fails with
// ErrInvalidDate when the triple does not survive calendar construction and
// with ErrFutureDate when it lies after now. Both are attached to the day field.
func BirthTime(birth DateTriple, now time.Time) (time.Time, error) {
	t, ok := birth.Construct(now.Location())
	if !ok {
		return time.Time{}, &FieldError{Field: FieldDay, Kind: ErrInvalidDate, Message: config.MsgInvalidDate}
	}
	if t.After(now) {
		return time.Time{}, &FieldError{Field: FieldDay, Kind: ErrFutureDate, Message: config.MsgFutureDate}
	}
	return t, nil
}

// CalculateAge returns the years, months and days elapsed between birth and now.
func CalculateAge(birth DateTriple, now time.Time) (AgeBreakdown, error) {
	if _, err := BirthTime(birth, now); err != nil {
		return AgeBreakdown{}, err
	}
	return ageBetween(birth, now), nil
}

// ageBetween subtracts field by field, borrowing month lengths from the
// calendar immediately before today's month. A second borrow only happens
// when that month is shorter than the deficit (born on the 31st, today is 1 March).
func ageBetween(birth DateTriple, now time.Time) AgeBreakdown {
	ty, tm, td := now.Date()

	years := ty - birth.Year
	months := int(tm) - birth.Month
	days := td - birth.Day

	for back := 1; days < 0; back++ {
		months--
		days += DaysIn(ty, int(tm)-back)
	}

	if months < 0 {
		years--
		months += config.MonthsPerYear
	}

	return AgeBreakdown{Years: years, Months: months, Days: days}
}

// CalculateDuration derives the elapsed-time statistics from whole days.
func CalculateDuration(birthTime, now time.Time) DurationStats {
	totalDays := int64(now.Sub(birthTime) / config.Day)
	totalHours := totalDays * config.HoursPerDay
	totalMinutes := totalHours * config.MinutesPerHour
	totalSeconds := totalMinutes * config.SecondsPerMinute

	return DurationStats{
		TotalDays:    totalDays,
		TotalHours:   totalHours,
		TotalMinutes: totalMinutes,
		TotalSeconds: totalSeconds,
		Heartbeats:   totalMinutes * config.HeartbeatsPerMinute,
		Breaths:      totalMinutes * config.BreathsPerMinute,
	}
}

// CalculateNextAnniversary determines the next birthday relative to now.
// An anniversary whose midnight is already behind now moves to next year,
// so only the exact instant of midnight on the birthday counts as 0 days.
func CalculateNextAnniversary(birth DateTriple, now time.Time) NextAnniversary {
	loc := now.Location()
	ty := now.Year()

	// time.Date normalises Feb 29 to March 1st in non-leap years.
	candidate := time.Date(ty, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, loc)
	if candidate.Before(now) {
		candidate = time.Date(ty+1, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, loc)
	}

	return NextAnniversary{
		DaysRemaining: ceilDays(candidate.Sub(now)),
		Date:          candidate,
		AgeNext:       candidate.Year() - birth.Year,
	}
}

// ceilDays rounds a duration up to whole days. Partial negative days round to zero.
func ceilDays(d time.Duration) int {
	n := d / config.Day
	if d%config.Day > 0 {
		n++
	}
	return int(n)
}
