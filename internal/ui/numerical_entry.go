package ui

import (
	"unicode/utf8"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits, up to MaxLen runes.
// Pasted text bypasses the filter; the engine's validators catch it.
type NumericalEntry struct {
	widget.Entry

	// MaxLen caps typed input. Zero means unlimited.
	MaxLen int
}

// NewNumericalEntry creates a digit-only entry limited to maxLen characters.
func NewNumericalEntry(maxLen int) *NumericalEntry {
	entry := &NumericalEntry{MaxLen: maxLen}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit or would exceed MaxLen.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxLen > 0 && utf8.RuneCountInString(e.Text) >= e.MaxLen && e.SelectedText() == "" {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
