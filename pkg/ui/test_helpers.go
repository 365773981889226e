package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// newKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func newKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// newTextKeyPressMsg creates a KeyPressMsg for text input
func newTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// newCtrlKeyPressMsg creates a Ctrl+X KeyPressMsg
func newCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// Common keys used across the UI tests
var (
	testKeyEnter = newKeyPressMsg(tea.KeyEnter)
	testKeyTab   = newKeyPressMsg(tea.KeyTab)
	testKeyEsc   = newKeyPressMsg(tea.KeyEscape)
	testKeyUp    = newKeyPressMsg(tea.KeyUp)
	testKeyDown  = newKeyPressMsg(tea.KeyDown)
	testKeyCtrlC = newCtrlKeyPressMsg('c')
)
