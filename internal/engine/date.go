package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// Field identifies one of the three inputs of the age form.
type Field int

const (
	FieldDay Field = iota
	FieldMonth
	FieldYear
)

// Fields lists the form inputs in evaluation order.
var Fields = []Field{FieldDay, FieldMonth, FieldYear}

func (f Field) String() string {
	switch f {
	case FieldDay:
		return "day"
	case FieldMonth:
		return "month"
	case FieldYear:
		return "year"
	default:
		return "unknown"
	}
}

// RawTriple holds the form inputs exactly as typed.
type RawTriple struct {
	Day   string
	Month string
	Year  string
}

// Get returns the raw text of a field.
func (r RawTriple) Get(f Field) string {
	switch f {
	case FieldDay:
		return r.Day
	case FieldMonth:
		return r.Month
	default:
		return r.Year
	}
}

// DateTriple is a candidate calendar date. It is not guaranteed to exist
// until it has been through validation and Construct.
type DateTriple struct {
	Day   int
	Month int
	Year  int
}

// Construct builds the local midnight for the triple. It reports false when
// the calendar normalised the date (e.g. 30 February becoming 1 or 2 March).
func (d DateTriple) Construct(loc *time.Location) (time.Time, bool) {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
	y, m, day := t.Date()
	return t, y == d.Year && int(m) == d.Month && day == d.Day
}

// TripleOf returns the calendar fields of t.
func TripleOf(t time.Time) DateTriple {
	y, m, d := t.Date()
	return DateTriple{Day: d, Month: int(m), Year: y}
}

// DaysIn returns the number of days of month in year, leap years included.
// Day zero of the following month is the last day of this one.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return DaysIn(year, config.MonthFebruary) == 29
}

// parseField converts raw input into an integer. Surrounding whitespace is ignored.
func parseField(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
