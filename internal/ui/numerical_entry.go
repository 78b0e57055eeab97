package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts the digits 0-9, typed or
// pasted. Range checks are left to its Validator.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates an empty NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit.
func (e *NumericalEntry) TypedRune(r rune) {
	if isDigit(r) {
		e.Entry.TypedRune(r)
	}
	// Signs and separators are refused too: ports and clock fields are never
	// negative or fractional.
}

// TypedShortcut filters pasted text down to its digits. Paste bypasses
// TypedRune in the embedded Entry, so without this a clipboard could still
// insert letters.
func (e *NumericalEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}
	digits := strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, paste.Clipboard.Content())
	// Replayed rune by rune so the cursor and OnChanged behave as if typed.
	for _, r := range digits {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
