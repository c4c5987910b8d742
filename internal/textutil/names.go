package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a free-text name. Empty input yields "".
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	folded := foldDiacritics(name)
	kept := strings.Map(func(r rune) rune {
		if isASCIILetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, folded)
	collapsed := strings.Join(strings.Fields(kept), " ")
	if collapsed == "" {
		return ""
	}
	// Casers carry state, so one is built per call.
	return cases.Upper(language.Und).String(collapsed)
}

// NormalizeNamePtr normalizes an optional name. A nil name yields "".
func NormalizeNamePtr(name *string) string {
	if name == nil {
		return ""
	}
	return NormalizeName(*name)
}

// NameTokens returns the distinct whitespace-delimited tokens of a name after
// normalization.
func NameTokens(name string) map[string]struct{} {
	fields := strings.Fields(NormalizeName(name))
	tokens := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		tokens[field] = struct{}{}
	}
	return tokens
}

func foldDiacritics(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
