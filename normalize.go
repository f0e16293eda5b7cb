package brlex

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// apostropheReplacer folds the apostrophe variants found in the analyzer
// output and in hand-typed data onto the ASCII apostrophe.
var apostropheReplacer = strings.NewReplacer(
	"’", "'", // ’ right single quotation mark
	"‘", "'", // ‘ left single quotation mark
	"ʼ", "'", // ʼ modifier letter apostrophe
	"´", "'", // ´ acute accent
)

// Fold returns the comparison form of s: NFC-normalized, apostrophes
// unified and lower-cased.
func Fold(s string) string {
	return strings.ToLower(apostropheReplacer.Replace(norm.NFC.String(s)))
}

// initials lists the consonant onsets recognised by InitialClass.
// Multi-letter onsets come before their single-letter prefixes.
var initials = []string{
	"c'h",
	"gw",
	"kw",
	"k",
	"g",
	"t",
	"d",
	"p",
	"b",
	"f",
	"v",
	"m",
	"z",
	"w",
}

// InitialClass returns the onset class of s by longest-prefix match against
// initials, case-insensitively. It returns "" when s starts with a vowel or
// any other letter without a class.
func InitialClass(s string) string {
	f := Fold(s)
	for _, in := range initials {
		if strings.HasPrefix(f, in) {
			return in
		}
	}
	return ""
}

// IsCapitalized reports whether the first rune of s is an upper-case letter.
func IsCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// hasFoldedPrefix reports whether s starts with prefix, comparing folded forms.
func hasFoldedPrefix(s, prefix string) bool {
	return strings.HasPrefix(Fold(s), Fold(prefix))
}
