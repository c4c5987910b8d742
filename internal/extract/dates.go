package extract

import (
	"strings"
	"time"
)

// CanonicalDateLayout is the YYYY-MM-DD form stored for parsed dates.
const CanonicalDateLayout = "2006-01-02"

var dateLayouts = []string{
	"01-02-2006",
	"02-01-2006", // when the first number cannot be a month
}

// DateValue is the outcome of parsing a matched date: either a calendar date
// (Parsed is true) or the raw matched text kept as-is.
type DateValue struct {
	Raw    string
	Parsed bool
	Time   time.Time
}

// ParseDate interprets a two-number-then-year match. Month-first is tried
// before day-first, so 05-08-1985 is May 8 and 15-06-1990 is June 15. Text
// that is not a real calendar date under either ordering is returned
// unparsed.
func ParseDate(raw string) DateValue {
	value := DateValue{Raw: raw}
	unified := strings.NewReplacer("/", "-", ".", "-").Replace(strings.TrimSpace(raw))
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, unified)
		if err != nil || t.Year() == 0 {
			continue
		}
		value.Parsed = true
		value.Time = t
		return value
	}
	return value
}

// String renders the canonical date when parsed, else the raw text.
func (d DateValue) String() string {
	if d.Parsed {
		return d.Time.Format(CanonicalDateLayout)
	}
	return d.Raw
}
