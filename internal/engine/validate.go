package engine

import (
	"fmt"

	"github.com/tartampluch/go-age/internal/config"
)

// Report is the outcome of one validation pass: one result per field.
// A nil entry means the field is valid.
type Report struct {
	Day   *FieldError
	Month *FieldError
	Year  *FieldError
}

// Err returns the result for a single field.
func (r Report) Err(f Field) *FieldError {
	switch f {
	case FieldDay:
		return r.Day
	case FieldMonth:
		return r.Month
	default:
		return r.Year
	}
}

// Valid is the combined result: true only when every field is valid.
func (r Report) Valid() bool {
	return r.Day == nil && r.Month == nil && r.Year == nil
}

// Check evaluates every field against the full current triple.
// It has no side effects; applying the results is the caller's job.
func Check(raw RawTriple, currentYear int) Report {
	return Report{
		Day:   ValidateDay(raw.Day, raw.Month, raw.Year),
		Month: ValidateMonth(raw.Month),
		Year:  ValidateYear(raw.Year, currentYear),
	}
}

// ValidateDay checks the day on its own range and, when month and year both
// parse, against the length of that month. The month-aware result is evaluated
// last and replaces the generic one.
func ValidateDay(day, month, year string) *FieldError {
	d, ok := parseField(day)
	if !ok {
		return &FieldError{Field: FieldDay, Kind: ErrMissingOrNonNumeric, Message: config.MsgDayInvalid}
	}

	var fe *FieldError
	if d < config.MinDay || d > config.MaxDay {
		fe = &FieldError{Field: FieldDay, Kind: ErrInvalidRange, Message: config.MsgDayInvalid}
	}

	m, mok := parseField(month)
	y, yok := parseField(year)
	if mok && yok {
		if n := DaysIn(y, m); d > n {
			fe = &FieldError{
				Field:   FieldDay,
				Kind:    ErrInvalidForMonth,
				Message: fmt.Sprintf(config.FormatDayBound, n),
				Bound:   n,
			}
		}
	}
	return fe
}

// ValidateMonth checks that month is an integer in [1,12].
func ValidateMonth(month string) *FieldError {
	m, ok := parseField(month)
	if !ok {
		return &FieldError{Field: FieldMonth, Kind: ErrMissingOrNonNumeric, Message: config.MsgMonthInvalid}
	}
	if m < config.MinMonth || m > config.MaxMonth {
		return &FieldError{Field: FieldMonth, Kind: ErrInvalidRange, Message: config.MsgMonthInvalid}
	}
	return nil
}

// ValidateYear checks that year is an integer in [1900, currentYear].
func ValidateYear(year string, currentYear int) *FieldError {
	msg := fmt.Sprintf(config.FormatYearBound, config.MinYear, currentYear)

	y, ok := parseField(year)
	if !ok {
		return &FieldError{Field: FieldYear, Kind: ErrMissingOrNonNumeric, Message: msg, Bound: currentYear}
	}
	if y < config.MinYear || y > currentYear {
		return &FieldError{Field: FieldYear, Kind: ErrInvalidRange, Message: msg, Bound: currentYear}
	}
	return nil
}

// ParseTriple converts raw input into a DateTriple. It reports false if any
// field does not parse; range checks are left to Check.
func ParseTriple(raw RawTriple) (DateTriple, bool) {
	d, dok := parseField(raw.Day)
	m, mok := parseField(raw.Month)
	y, yok := parseField(raw.Year)
	return DateTriple{Day: d, Month: m, Year: y}, dok && mok && yok
}
