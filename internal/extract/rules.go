package extract

import (
	"regexp"

	"idverify/internal/document"
)

// datePattern matches DD-MM-YYYY with '-', '/' or '.' separators.
const datePattern = `(\d{2}[-/.]\d{2}[-/.]\d{4})`

var (
	namedLabelPattern = regexp.MustCompile(`(?i:name)[:\s]+([A-Z ]{3,100})`)
	anyDatePattern    = regexp.MustCompile(datePattern)
	dobLabelPattern   = regexp.MustCompile(`(?i:dob)[:\s]*` + datePattern)
)

// Ruleset holds the pattern rules for one document kind. Rulesets are built
// once and shared read-only across calls.
type Ruleset struct {
	Kind document.Kind

	// IDPattern must capture the identification number in group 1.
	IDPattern *regexp.Regexp
	// StripIDSpace removes whitespace from the captured ID.
	StripIDSpace bool

	// NameLineLimit bounds how many leading non-empty lines the fallback
	// name scan inspects.
	NameLineLimit int
	// NameLinePattern selects candidate name lines.
	NameLinePattern *regexp.Regexp
	// NameMaxWords rejects candidate lines with this many words or more.
	// Zero disables the check.
	NameMaxWords int

	// DOBPatterns are tried in order; the first match supplies the date.
	DOBPatterns []*regexp.Regexp
}

// PANRules extracts Permanent Account Number cards: five letters, four digits,
// one letter.
var PANRules = Ruleset{
	Kind:            document.KindPAN,
	IDPattern:       regexp.MustCompile(`\b([A-Z]{5}[0-9]{4}[A-Z])\b`),
	NameLineLimit:   8,
	NameLinePattern: regexp.MustCompile(`^[A-Z\s]{4,}$`),
	DOBPatterns:     []*regexp.Regexp{anyDatePattern},
}

// AadhaarRules extracts Aadhaar cards: twelve digits, optionally grouped 4-4-4.
var AadhaarRules = Ruleset{
	Kind:            document.KindAadhaar,
	IDPattern:       regexp.MustCompile(`\b(\d{4}\s?\d{4}\s?\d{4})\b`),
	StripIDSpace:    true,
	NameLineLimit:   10,
	NameLinePattern: regexp.MustCompile(`^[A-Z\s]{3,}$`),
	// Headers such as "GOVERNMENT OF INDIA ..." run long; names rarely do.
	NameMaxWords: 6,
	DOBPatterns:  []*regexp.Regexp{dobLabelPattern, anyDatePattern},
}

// DefaultRulesets returns the built-in rulesets in priority order.
func DefaultRulesets() []Ruleset {
	return []Ruleset{AadhaarRules, PANRules}
}
