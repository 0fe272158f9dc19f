package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/zalando/go-keyring"
)

// GoAgeApp holds the UI state, preferences, and the services behind the form.
type GoAgeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server   *server.FeedServer
	Importer *engine.Importer
	Clock    engine.Clock // Injected clock for testability

	SupportedLanguages []string

	form           *formView
	settingsWindow fyne.Window

	// Contacts State
	ContactsMut    sync.RWMutex
	Contacts       []engine.BirthdayEntry
	contactsWindow fyne.Window
}

// NewGoAgeApp constructs the application and wires dependencies.
func NewGoAgeApp(a fyne.App, ctx context.Context, srv *server.FeedServer, fetcher engine.VCardFetcher) *GoAgeApp {
	a.SetIcon(theme.HistoryIcon())

	return &GoAgeApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Importer:           &engine.Importer{Fetcher: fetcher},
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run starts the feed server, shows the form and blocks in the UI loop.
func (app *GoAgeApp) Run() {
	app.SetupI18n()
	app.recordVersion()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.ShowMainWindow()
	app.App.Run()
}

// recordVersion remembers the version of this run for the next start.
func (app *GoAgeApp) recordVersion() {
	last := app.Preferences.String(config.PrefLastRun)
	if last != config.Version {
		slog.Info(config.MsgVersionChange,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyVersion, config.Version,
			config.LogKeyValue, last)
		app.Preferences.SetString(config.PrefLastRun, config.Version)
	}
}

// newEngine builds an AgeEngine bound to the current clock and language.
func (app *GoAgeApp) newEngine() *engine.AgeEngine {
	return &engine.AgeEngine{
		Clock:           app.Clock,
		Printer:         app.printer(),
		FormatError:     app.fieldErrorText,
		FormatMilestone: app.milestoneText,
	}
}

// animate reports whether results count up and cards reveal one by one.
func (app *GoAgeApp) animate() bool {
	return app.Preferences.BoolWithFallback(config.PrefAnimate, config.DefaultAnimate)
}

// publish renders the anniversary calendar of a result and serves it on the feed.
func (app *GoAgeApp) publish(res *engine.Result) ([]byte, error) {
	data, err := engine.BuildCalendar(res.Birth, res.Now, app.eventSummary)
	if err != nil {
		return nil, err
	}
	if app.Server != nil {
		app.Server.Update(data)
	}
	return data, nil
}

// loadSourceConfig assembles the import source from preferences and the keyring.
func (app *GoAgeApp) loadSourceConfig() engine.SourceConfig {
	cfg := engine.SourceConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

// loadContacts reads the configured address book into Contacts.
func (app *GoAgeApp) loadContacts() error {
	cfg := app.loadSourceConfig()
	contacts, err := app.Importer.ReadContacts(app.Ctx, cfg)
	if err != nil {
		slog.Error(config.ErrContactsLoad,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyMode, cfg.Mode,
			config.LogKeyError, err)
		return err
	}

	app.ContactsMut.Lock()
	app.Contacts = contacts
	app.ContactsMut.Unlock()

	slog.Info(config.LogMsgContactsLoad,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(contacts))
	return nil
}
