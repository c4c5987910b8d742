package textutil

import "strings"

// cellReplacer flattens characters that would break a single-line table cell.
var cellReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

// SanitizeCell prepares a value for a table cell. Line breaks and tabs become
// spaces and empty values render as "-".
func SanitizeCell(value string) string {
	value = strings.TrimSpace(cellReplacer.Replace(value))
	if value == "" {
		return "-"
	}
	return value
}

// OptionalCell is SanitizeCell for optional fields.
func OptionalCell(value *string) string {
	if value == nil {
		return "-"
	}
	return SanitizeCell(*value)
}
