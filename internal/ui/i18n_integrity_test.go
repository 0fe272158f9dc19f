package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
)

// translationKeys lists every key the UI looks up.
var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyWinContacts,
	config.TKeyLblDay,
	config.TKeyLblMonth,
	config.TKeyLblYear,
	config.TKeyBtnCalculate,
	config.TKeyBtnContacts,
	config.TKeyBtnExport,
	config.TKeyBtnSettings,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyBtnBrowse,
	config.TKeyBtnReload,
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblAnimate,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblGeneral,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblSource,
	config.TKeyLblFooter,
	config.TKeyEvtSummary,
	config.TKeyCardAge,
	config.TKeyCardDuration,
	config.TKeyCardLife,
	config.TKeyCardNext,
	config.TKeyCardMilestones,
	config.TKeySlotYears,
	config.TKeySlotMonths,
	config.TKeySlotDays,
	config.TKeySlotTotalDays,
	config.TKeySlotHours,
	config.TKeySlotMinutes,
	config.TKeySlotSeconds,
	config.TKeySlotHeartbeats,
	config.TKeySlotBreaths,
	config.TKeySlotNext,
	config.TKeyColName,
	config.TKeyColDate,
	config.TKeyFormatDate,
	config.TKeyErrDay,
	config.TKeyErrDayBound,
	config.TKeyErrMonth,
	config.TKeyErrYearBound,
	config.TKeyErrDate,
	config.TKeyErrFuture,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyMsAdult,
	config.TKeyMsDrinking,
	config.TKeyMsThirty,
	config.TKeyMsForty,
	config.TKeyMsGolden,
	config.TKeyMsRetirement,
	config.TKeyMs1KDays,
	config.TKeyMs5KDays,
	config.TKeyMs10KDays,
	config.TKeyMs20KDays,
	config.TKeyMsGrowing,
}

func loadLocale(t *testing.T, lang string) map[string]any {
	t.Helper()
	name := "active." + lang + ".json"

	content, err := os.ReadFile(filepath.Join("locales", name))
	if os.IsNotExist(err) {
		content, err = os.ReadFile(filepath.Join("..", "..", "internal", "ui", "locales", name))
	}
	require.NoError(t, err, "Must load %s", name)

	var m map[string]any
	require.NoError(t, json.Unmarshal(content, &m), "%s must be valid JSON", name)
	return m
}

// TestI18nIntegrity checks every key in config exists in every locale, and
// that the locales carry no key the code never asks for.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		assert.False(t, defined[k], "Duplicate key %s", k)
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			m := loadLocale(t, lang)

			for k := range defined {
				v, ok := m[k]
				if assert.Truef(t, ok, "Key '%s' is missing in %s", k, lang) {
					assert.NotEmpty(t, v, "Key '%s' is empty in %s", k, lang)
				}
			}
			for k := range m {
				if strings.HasPrefix(k, "_") {
					continue
				}
				assert.Truef(t, defined[k], "Key '%s' in %s is never used", k, lang)
			}
		})
	}
}

// TestI18nTemplates checks placeholders survive translation.
func TestI18nTemplates(t *testing.T) {
	placeholders := map[string][]string{
		config.TKeyErrDayBound:  {"{{.Bound}}"},
		config.TKeyErrYearBound: {"{{.Min}}", "{{.Bound}}"},
		config.TKeyEvtSummary:   {"{{.Age}}"},
		config.TKeyLblFooter:    {"%s"},
	}

	for _, lang := range config.SupportedLanguages {
		m := loadLocale(t, lang)
		for key, want := range placeholders {
			text, _ := m[key].(string)
			for _, p := range want {
				assert.Contains(t, text, p, "%s/%s", lang, key)
			}
		}
	}
}
