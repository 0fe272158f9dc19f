package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *GoAgeApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *GoAgeApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, app.language())
}

func (app *GoAgeApp) language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
}

// GetMsg translates a key, returning the key itself when no translation exists.
func (app *GoAgeApp) GetMsg(key string) string {
	msg, err := app.localize(key, nil)
	if err != nil {
		return key
	}
	return msg
}

func (app *GoAgeApp) localize(key string, data map[string]any) (string, error) {
	if app.Localizer == nil {
		return "", errors.New(config.ErrLocNotInit)
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return "", err
	}
	return msg, nil
}

// printer groups numbers the way the selected language does.
func (app *GoAgeApp) printer() *message.Printer {
	tag, err := language.Parse(app.language())
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// fieldErrorText localizes a validation failure. An empty result lets the
// engine fall back to its English message.
func (app *GoAgeApp) fieldErrorText(fe *engine.FieldError) string {
	var (
		key  string
		data map[string]any
	)

	switch {
	case errors.Is(fe, engine.ErrFutureDate):
		key = config.TKeyErrFuture
	case errors.Is(fe, engine.ErrInvalidDate):
		key = config.TKeyErrDate
	case fe.Field == engine.FieldDay && errors.Is(fe, engine.ErrInvalidForMonth):
		key = config.TKeyErrDayBound
		data = map[string]any{"Bound": fe.Bound}
	case fe.Field == engine.FieldDay:
		key = config.TKeyErrDay
	case fe.Field == engine.FieldMonth:
		key = config.TKeyErrMonth
	case fe.Field == engine.FieldYear:
		key = config.TKeyErrYearBound
		data = map[string]any{"Min": config.MinYear, "Bound": fe.Bound}
	}

	msg, err := app.localize(key, data)
	if err != nil {
		return ""
	}
	return msg
}

func (app *GoAgeApp) milestoneText(m engine.Milestone) string {
	if msg, err := app.localize(m.Key, nil); err == nil {
		return msg
	}
	return m.Label
}

// eventSummary titles the exported anniversary events.
func (app *GoAgeApp) eventSummary(age int) string {
	if msg, err := app.localize(config.TKeyEvtSummary, map[string]any{"Age": age}); err == nil {
		return msg
	}
	return fmt.Sprintf(config.FallbackSummary, age)
}
