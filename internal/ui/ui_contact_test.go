package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func entry(name string, year int, month time.Month, day int, known bool) engine.BirthdayEntry {
	return engine.BirthdayEntry{
		Name:        name,
		DateOfBirth: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		YearKnown:   known,
	}
}

func names(list []engine.BirthdayEntry) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

// TestSortContacts_ByDate orders by month and day regardless of the birth year.
func TestSortContacts_ByDate(t *testing.T) {
	list := []engine.BirthdayEntry{
		entry("December", 1950, time.December, 31, true),
		entry("March", 2000, time.March, 2, true),
		entry("NoYear", 2000, time.February, 29, false),
		entry("Bob", 1980, time.March, 2, true),
	}

	sortContacts(list, config.ColIDDate, true)
	assert.Equal(t, []string{"NoYear", "Bob", "March", "December"}, names(list))

	sortContacts(list, config.ColIDDate, false)
	assert.Equal(t, []string{"December", "March", "Bob", "NoYear"}, names(list))
}

func TestSortContacts_ByName(t *testing.T) {
	list := []engine.BirthdayEntry{
		entry("charlie", 1990, time.May, 1, true),
		entry("Bob", 1990, time.May, 1, true),
		entry("alice", 1990, time.May, 1, true),
	}

	sortContacts(list, config.ColIDName, true)
	assert.Equal(t, []string{"alice", "Bob", "charlie"}, names(list))
}

func TestContactDate(t *testing.T) {
	assert.Equal(t, "1990-06-15", contactDate(entry("A", 1990, time.June, 15, true), config.DateFormatDisplay))
	assert.Equal(t, "15/06/1990", contactDate(entry("A", 1990, time.June, 15, true), "02/01/2006"))
	assert.Equal(t, "--02-29", contactDate(entry("B", 2000, time.February, 29, false), config.DateFormatDisplay))
}

func TestPickContact_FillsAndComputes(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	app.pickContact(entry("John", 1990, time.June, 15, true))

	require.NotNil(t, app.form.last)
	assert.Equal(t, "15", app.form.Value(engine.FieldDay))
	assert.Equal(t, "6", app.form.Value(engine.FieldMonth))
	assert.Equal(t, "1990", app.form.Value(engine.FieldYear))
	assert.Equal(t, "33", app.form.years.Text)
}

// TestPickContact_UnknownYear leaves the year for the user to type.
func TestPickContact_UnknownYear(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	app.pickContact(entry("Leap", 2000, time.February, 29, false))

	assert.Nil(t, app.form.last)
	assert.Empty(t, app.form.Value(engine.FieldYear))
	assert.True(t, app.form.fields[engine.FieldYear].hint.Visible())
}

func TestPickContact_NoForm(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.NotPanics(t, func() {
		app.pickContact(entry("John", 1990, time.June, 15, true))
	})
}
