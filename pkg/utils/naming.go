// Package utils provides helpers shared by the machine and its tooling
package utils

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ObserverMethodName maps a state name to its observer shortcut name:
// "on" + the first character upper-cased + the rest lower-cased.
// An empty name yields an empty string.
func ObserverMethodName(state string) string {
	if state == "" {
		return ""
	}

	// Casers are stateful, so each call gets its own.
	_, size := utf8.DecodeRuneInString(state)
	return "on" + cases.Upper(language.Und).String(state[:size]) + cases.Lower(language.Und).String(state[size:])
}
