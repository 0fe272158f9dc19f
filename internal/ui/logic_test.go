package ui

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Source configuration
// -----------------------------------------------------------------------------

func TestLoadSourceConfig_Web(t *testing.T) {
	app, _ := setupTestApp(t)

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "https://secure.example.com/book.vcf")
	app.Preferences.SetString(config.PrefUsername, "admin")
	require.NoError(t, keyring.Set(config.KeyringService, "admin", "s3cret"))

	cfg := app.loadSourceConfig()

	assert.Equal(t, config.SourceModeWeb, cfg.Mode)
	assert.Equal(t, "https://secure.example.com/book.vcf", cfg.WebURL)
	assert.Equal(t, "admin", cfg.WebUser)
	assert.Equal(t, "s3cret", cfg.WebPass)
}

func TestLoadSourceConfig_DefaultsToLocal(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLocalPath, "/tmp/contacts.vcf")

	cfg := app.loadSourceConfig()

	assert.Equal(t, config.SourceModeLocal, cfg.Mode)
	assert.Equal(t, "/tmp/contacts.vcf", cfg.LocalPath)
	assert.Empty(t, cfg.WebPass)
}

func TestLoadContacts_Success(t *testing.T) {
	app, fetcher := setupTestApp(t)

	vcard := "BEGIN:VCARD\nVERSION:3.0\nFN:Success User\nBDAY:19900615\nEND:VCARD"
	fetcher.On("Fetch", mock.Anything, "http://test.local", "", "").
		Return(io.NopCloser(bytes.NewBufferString(vcard)), nil)

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "http://test.local")

	require.NoError(t, app.loadContacts())
	fetcher.AssertExpectations(t)

	app.ContactsMut.RLock()
	defer app.ContactsMut.RUnlock()
	require.Len(t, app.Contacts, 1)
	assert.Equal(t, "Success User", app.Contacts[0].Name)
}

func TestLoadContacts_FailureKeepsList(t *testing.T) {
	app, fetcher := setupTestApp(t)
	app.Contacts = nil

	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "http://test.local")

	assert.Error(t, app.loadContacts())
	assert.Empty(t, app.Contacts)
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

func TestValidatePort(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		input string
		want  string
	}{
		{"18081", ""},
		{"1", ""},
		{"65535", ""},
		{"", "Port is required"},
		{"abc", "Port must be a number"},
		{"0", "Port must be between 1 and 65535"},
		{"70000", "Port must be between 1 and 65535"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := app.validatePort(tt.input)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestSettings_Prefill(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefUsername, "bob")
	require.NoError(t, keyring.Set(config.KeyringService, "bob", "hunter2"))

	sw := app.newSettingsWidgets()

	assert.Equal(t, "en", sw.langSelect.Selected)
	assert.False(t, sw.animateCheck.Checked)
	assert.Equal(t, config.DefaultPort, sw.entryPort.Text)
	assert.Equal(t, "hunter2", sw.passEntry.Text)
}

func TestSettings_Save(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets()
	app.buildSourceCard(nil, sw, nil)

	sw.langSelect.SetSelected("fr")
	sw.animateCheck.SetChecked(true)
	sw.entryPort.SetText("19000")
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	sw.urlEntry.SetText("https://dav.example.com/book")
	sw.userEntry.SetText("carol")
	sw.passEntry.SetText("pa55")

	app.saveSettings(sw)

	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage))
	assert.True(t, app.Preferences.Bool(config.PrefAnimate))
	assert.Equal(t, "19000", app.Preferences.String(config.PrefServerPort))
	assert.Equal(t, config.SourceModeWeb, app.Preferences.String(config.PrefSourceMode))
	assert.Equal(t, "https://dav.example.com/book", app.Preferences.String(config.PrefCardDAVURL))
	assert.Equal(t, "carol", app.Preferences.String(config.PrefUsername))

	pass, err := keyring.Get(config.KeyringService, "carol")
	require.NoError(t, err)
	assert.Equal(t, "pa55", pass)

	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyBtnSettings), "Language applies immediately")
}

func TestSettings_InvalidPortNotSaved(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets()
	app.buildSourceCard(nil, sw, nil)

	sw.entryPort.SetText("99999")
	app.saveSettings(sw)

	assert.Equal(t, config.DefaultPort, app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
}
