package history

import (
	"database/sql"
	"strings"
	"time"

	"idverify/internal/document"
)

// timestampLayout is fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sourceSeparator joins source paths in the listing column.
const sourceSeparator = "\n"

func nullableString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func parseTimeString(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}

func joinSources(records []document.Record) string {
	sources := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Source != "" {
			sources = append(sources, rec.Source)
		}
	}
	return strings.Join(sources, sourceSeparator)
}

func splitSources(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, sourceSeparator)
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
