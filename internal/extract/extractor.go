package extract

import (
	"regexp"
	"strings"
	"unicode"

	"idverify/internal/document"
)

// Extractor applies a fixed set of rulesets to document text.
type Extractor struct {
	rulesets []Ruleset
}

// New constructs an Extractor. Rulesets are tried in the order given; with no
// arguments the built-in rulesets are used.
func New(rulesets ...Ruleset) *Extractor {
	if len(rulesets) == 0 {
		rulesets = DefaultRulesets()
	}
	cp := make([]Ruleset, len(rulesets))
	copy(cp, rulesets)
	return &Extractor{rulesets: cp}
}

var defaultExtractor = New()

// Extract runs the built-in rulesets over text. See Extractor.Extract.
func Extract(text string, hint document.Kind) document.Record {
	return defaultExtractor.Extract(text, hint)
}

// Extract returns the best-effort record for text.
//
// A hint naming a kind with a ruleset applies only that ruleset and reports
// the hinted kind. Without a usable hint every ruleset is tried in order and
// the first one that finds an identification number wins; if none does, the
// result is an UNKNOWN record whose name and date of birth are the first
// values any ruleset found.
func (e *Extractor) Extract(text string, hint document.Kind) document.Record {
	if strings.TrimSpace(text) == "" {
		return document.Record{Kind: document.KindUnknown}
	}
	if rs, ok := e.ruleset(hint); ok {
		return rs.Apply(text)
	}

	merged := document.Record{Kind: document.KindUnknown}
	for _, rs := range e.rulesets {
		rec := rs.Apply(text)
		if rec.HasID() {
			return rec
		}
		if merged.Name == nil {
			merged.Name = rec.Name
		}
		if merged.DateOfBirth == nil {
			merged.DateOfBirth = rec.DateOfBirth
		}
	}
	return merged
}

// Kinds lists the kinds this extractor has rulesets for, in priority order.
func (e *Extractor) Kinds() []document.Kind {
	kinds := make([]document.Kind, 0, len(e.rulesets))
	for _, rs := range e.rulesets {
		kinds = append(kinds, rs.Kind)
	}
	return kinds
}

func (e *Extractor) ruleset(kind document.Kind) (Ruleset, bool) {
	if kind == "" || kind == document.KindUnknown {
		return Ruleset{}, false
	}
	for _, rs := range e.rulesets {
		if rs.Kind == kind {
			return rs, true
		}
	}
	return Ruleset{}, false
}

// Apply extracts every field under this ruleset. The returned record always
// carries the ruleset's kind.
func (rs Ruleset) Apply(text string) document.Record {
	rec := document.Record{Kind: rs.Kind}
	rec.IDNumber = document.Optional(rs.findID(text))
	rec.Name = document.Optional(rs.findName(text))
	if date, ok := rs.findDOB(text); ok {
		rec.DateOfBirth = document.Optional(date.String())
	}
	return rec
}

func (rs Ruleset) findID(text string) string {
	if rs.IDPattern == nil {
		return ""
	}
	match := rs.IDPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return ""
	}
	id := match[1]
	if rs.StripIDSpace {
		id = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, id)
	}
	return id
}

func (rs Ruleset) findName(text string) string {
	if match := namedLabelPattern.FindStringSubmatch(text); len(match) > 1 {
		if name := strings.TrimSpace(match[1]); name != "" {
			return name
		}
	}
	if rs.NameLinePattern == nil {
		return ""
	}
	for _, line := range leadingLines(text, rs.NameLineLimit) {
		if !rs.NameLinePattern.MatchString(line) {
			continue
		}
		if rs.NameMaxWords > 0 && len(strings.Fields(line)) >= rs.NameMaxWords {
			continue
		}
		return line
	}
	return ""
}

func (rs Ruleset) findDOB(text string) (DateValue, bool) {
	for _, pattern := range rs.DOBPatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		return ParseDate(match[1]), true
	}
	return DateValue{}, false
}

var lineBreakPattern = regexp.MustCompile(`\r\n|[\n\r\v\f\x{85}\x{2028}\x{2029}]`)

// leadingLines returns up to limit trimmed, non-empty lines from text.
func leadingLines(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	lines := make([]string, 0, limit)
	for _, line := range lineBreakPattern.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}
