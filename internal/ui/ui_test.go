package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the engine.VCardFetcher interface using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// setupTestApp initializes a headless Fyne app with mocked dependencies.
// Animations are off so results are written synchronously.
func setupTestApp(t *testing.T) (*GoAgeApp, *MockFetcher) {
	keyring.MockInit()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	fetcher := new(MockFetcher)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewGoAgeApp(a, ctx, server.NewFeedServer("0"), fetcher)
	app.Clock = MockClock{CurrentTime: testNow}

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.Preferences.SetBool(config.PrefAnimate, false)
	app.SetupI18n()

	return app, fetcher
}

func typeDate(v *formView, day, month, year string) {
	v.fields[engine.FieldDay].entry.SetText(day)
	v.fields[engine.FieldMonth].entry.SetText(month)
	v.fields[engine.FieldYear].entry.SetText(year)
}

func feedStatus(app *GoAgeApp) int {
	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w.Code
}

// -----------------------------------------------------------------------------
// Localization
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyBtnSettings))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyBtnSettings))
}

func TestLocalization_MissingKey(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

func TestLocalization_SupportedLanguages(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.ElementsMatch(t, []string{"en", "fr"}, app.SupportedLanguages)
}

func TestLocalization_FieldErrors(t *testing.T) {
	app, _ := setupTestApp(t)

	dayBound := engine.ValidateDay("31", "4", "2000")
	require.NotNil(t, dayBound)
	year := engine.ValidateYear("1800", 2024)
	require.NotNil(t, year)
	future := &engine.FieldError{Field: engine.FieldDay, Kind: engine.ErrFutureDate}

	assert.Equal(t, "Must be between 1-30", app.fieldErrorText(dayBound))
	assert.Equal(t, "Must be between 1900-2024", app.fieldErrorText(year))
	assert.Equal(t, "Must be in the past", app.fieldErrorText(future))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Doit être entre 1 et 30", app.fieldErrorText(dayBound))
	assert.Equal(t, "Doit être entre 1900 et 2024", app.fieldErrorText(year))
	assert.Equal(t, "Doit être dans le passé", app.fieldErrorText(future))
}

func TestLocalization_FallbacksWithoutBundle(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	app := NewGoAgeApp(a, context.Background(), nil, nil)

	fe := engine.ValidateDay("0", "", "")
	assert.Empty(t, app.fieldErrorText(fe), "Empty lets the engine use its English message")
	assert.Equal(t, "Birthday (35)", app.eventSummary(35))
	assert.Equal(t, config.MilestoneAdult, app.milestoneText(engine.Milestone{Key: config.TKeyMsAdult, Label: config.MilestoneAdult}))
}

func TestLocalization_EventSummary(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, "Birthday (35)", app.eventSummary(35))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Anniversaire (35)", app.eventSummary(35))
}

// -----------------------------------------------------------------------------
// Form
// -----------------------------------------------------------------------------

func TestForm_SubmitSuccess(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.newFormView()

	typeDate(v, "15", "6", "1990")
	v.submit()

	assert.Equal(t, "33", v.years.Text)
	assert.Equal(t, "6", v.months.Text)
	assert.Equal(t, "17", v.days.Text)
	assert.Equal(t, "12,253", v.totalDays.Text)
	assert.Equal(t, "17,644,320", v.totalMinutes.Text)
	assert.Equal(t, "166", v.nextBirthday.Text)
	assert.Len(t, v.badges.Objects, 6)

	assert.True(t, v.results.Visible())
	assert.False(t, v.exportBtn.Disabled())
	require.NotNil(t, v.last)
	assert.Equal(t, engine.DateTriple{Day: 15, Month: 6, Year: 1990}, v.last.Birth)

	for _, f := range engine.Fields {
		assert.False(t, v.fields[f].hint.Visible(), f.String())
	}
	assert.Equal(t, http.StatusOK, feedStatus(app), "A successful computation publishes the feed")
}

func TestForm_SubmitInvalid(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.newFormView()

	typeDate(v, "31", "4", "1990")
	v.submit()

	hint := v.fields[engine.FieldDay].hint
	assert.True(t, hint.Visible())
	assert.Equal(t, "Must be between 1-30", hint.Text)

	assert.False(t, v.results.Visible())
	assert.True(t, v.exportBtn.Disabled())
	assert.Equal(t, config.SlotPlaceholder, v.years.Text)
	assert.Equal(t, http.StatusServiceUnavailable, feedStatus(app))
}

func TestForm_SubmitFutureDate(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.newFormView()

	typeDate(v, "2", "1", "2024")
	v.submit()

	assert.Equal(t, "Must be in the past", v.fields[engine.FieldDay].hint.Text)
	assert.Nil(t, v.last)
}

func TestForm_FailureKeepsPreviousResult(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.newFormView()

	typeDate(v, "15", "6", "1990")
	v.submit()
	typeDate(v, "99", "6", "1990")
	v.submit()

	assert.Equal(t, "33", v.years.Text)
	assert.True(t, v.results.Visible())
}

func TestForm_InputRevalidatesDay(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.newFormView()

	// Each SetText goes through OnChanged and the engine's Input.
	typeDate(v, "31", "4", "2001")

	hint := v.fields[engine.FieldDay].hint
	assert.True(t, hint.Visible(), "Completing the year must re-check the day")
	assert.Equal(t, "Must be between 1-30", hint.Text)

	v.fields[engine.FieldMonth].entry.SetText("5")
	assert.False(t, hint.Visible())
}

func TestForm_FrenchGrouping(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	v := app.newFormView()

	typeDate(v, "15", "6", "1990")
	v.submit()

	assert.NotContains(t, v.totalMinutes.Text, ",")
	assert.Contains(t, v.totalMinutes.Text, "644")
	badge, ok := v.badges.Objects[0].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "🎓 Majeur", badge.Text)
}

func TestForm_AnimatedReveal(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetBool(config.PrefAnimate, true)
	v := app.newFormView()
	defer v.stopAnimations()

	typeDate(v, "15", "6", "1990")
	v.submit()

	assert.True(t, v.results.Visible())
	assert.Equal(t, "12,253", v.totalDays.Text, "Counters are written immediately")
	assert.False(t, v.cards[len(v.cards)-1].Visible(), "Cards are revealed one after another")
	assert.Len(t, v.timers, len(v.cards))
	assert.Len(t, v.animations, 3)
}

func TestForm_ExportWithoutResult(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.newFormView()

	v.exportCalendar()
	assert.Equal(t, http.StatusServiceUnavailable, feedStatus(app))
}

// -----------------------------------------------------------------------------
// Windows
// -----------------------------------------------------------------------------

func TestMainWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowMainWindow()
	require.NotNil(t, app.Window)
	first := app.form

	app.ShowMainWindow()
	assert.Same(t, first, app.form, "A second call only focuses the window")
}

func TestMainWindow_ReloadKeepsState(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	typeDate(app.form, "15", "6", "1990")
	app.form.submit()

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	app.reloadMainWindow()

	assert.Equal(t, "Calculateur d'âge", app.Window.Title())
	assert.Equal(t, "15", app.form.Value(engine.FieldDay))
	assert.Equal(t, "1990", app.form.Value(engine.FieldYear))
	assert.Equal(t, "33", app.form.years.Text)
	assert.True(t, app.form.results.Visible())
	assert.False(t, app.form.exportBtn.Disabled())
}

// TestForm_CountUpStartsFromDisplayedValue resumes from what the slot shows.
func TestForm_CountUpStartsFromDisplayedValue(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	typeDate(app.form, "15", "6", "1990")
	app.form.submit()
	require.Equal(t, "33", app.form.years.Text)

	assert.Equal(t, 33, displayedValue(app.form.years))
	assert.Equal(t, 0, displayedValue(widget.NewLabel(config.SlotPlaceholder)))
	assert.Equal(t, 0, displayedValue(widget.NewLabel("")))
}

func TestRecordVersion(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLastRun, "0.0.1")

	app.recordVersion()
	assert.Equal(t, config.Version, app.Preferences.String(config.PrefLastRun))
}
