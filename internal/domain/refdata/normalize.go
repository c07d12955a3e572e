package refdata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// FormatKey is the default key normalizer: Unicode NFC, surrounding space
// trimmed, upper-cased. It is idempotent, so FormatKey(FormatKey(s)) == FormatKey(s).
func FormatKey(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	// A Caser holds state, so one is built per call.
	return norm.NFC.String(cases.Upper(language.Und).String(s))
}

// TrimKey only normalizes Unicode form and trims space, preserving case
func TrimKey(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
