package consistency

import (
	"idverify/internal/document"
	"idverify/internal/textutil"
)

// Mismatch describes a record that disagrees with the reference on at least
// one field. Index is the record's position in the input batch.
type Mismatch struct {
	Index  int             `json:"index"`
	Record document.Record `json:"doc"`
	NameOK bool            `json:"name_ok"`
	DOBOK  bool            `json:"dob_ok"`
	IDOK   bool            `json:"id_ok"`
}

// Summary is the result of comparing a batch of records.
type Summary struct {
	TotalRecords int        `json:"total_records"`
	Mismatches   []Mismatch `json:"mismatches"`
}

// Flagged reports whether any record disagreed with the reference.
func (s Summary) Flagged() bool {
	return len(s.Mismatches) > 0
}

// Compare checks every record after the first against the first. Records are
// only read.
func Compare(records []document.Record) Summary {
	summary := Summary{
		TotalRecords: len(records),
		Mismatches:   []Mismatch{},
	}
	if len(records) == 0 {
		return summary
	}
	ref := records[0]
	for i := 1; i < len(records); i++ {
		rec := records[i]
		entry := Mismatch{
			Index:  i,
			Record: rec,
			NameOK: NamesSimilar(ref.Name, rec.Name),
			DOBOK:  exactMatch(ref.DateOfBirth, rec.DateOfBirth),
			IDOK:   exactMatch(ref.IDNumber, rec.IDNumber),
		}
		if entry.NameOK && entry.DOBOK && entry.IDOK {
			continue
		}
		summary.Mismatches = append(summary.Mismatches, entry)
	}
	return summary
}

// NamesSimilar reports whether two optional names plausibly refer to the same
// person: equal after normalization, or sharing at least one token. A name
// with nothing left after normalization counts as absent.
//
// A single shared token (often the surname) is enough, so "JOHN SMITH" and
// "JANE SMITH" are similar.
func NamesSimilar(a, b *string) bool {
	if !document.Present(a) || !document.Present(b) {
		return false
	}
	left := textutil.NormalizeName(*a)
	right := textutil.NormalizeName(*b)
	if left == "" || right == "" {
		return false
	}
	if left == right {
		return true
	}
	leftTokens := textutil.NameTokens(left)
	rightTokens := textutil.NameTokens(right)
	required := min(1, len(leftTokens), len(rightTokens))
	shared := 0
	for token := range leftTokens {
		if _, ok := rightTokens[token]; ok {
			shared++
		}
	}
	return shared > 0 && shared >= required
}

func exactMatch(a, b *string) bool {
	return document.Present(a) && document.Present(b) && *a == *b
}
