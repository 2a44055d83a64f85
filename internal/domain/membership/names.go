package membership

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var upper = cases.Upper(language.Und)

// NormalizeName applies NFKC and collapses inner whitespace. Player and
// alliance names often arrive with full-width characters pasted from the game client.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// NormalizeTag returns the canonical upper-case form of an alliance tag
func NormalizeTag(s string) string {
	return upper.String(norm.NFKC.String(strings.TrimSpace(s)))
}

// RuneLen counts characters rather than bytes
func RuneLen(s string) int {
	return len([]rune(s))
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
