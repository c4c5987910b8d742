package consistency

import (
	"encoding/json"
	"strings"
	"testing"

	"idverify/internal/document"
)

func ptr(s string) *string { return &s }

func record(name, dob, id string) document.Record {
	return document.Record{
		Kind:        document.KindPAN,
		Name:        document.Optional(name),
		DateOfBirth: document.Optional(dob),
		IDNumber:    document.Optional(id),
	}
}

func TestCompareEmpty(t *testing.T) {
	summary := Compare(nil)
	if summary.TotalRecords != 0 {
		t.Fatalf("expected 0 records, got %d", summary.TotalRecords)
	}
	if summary.Mismatches == nil || len(summary.Mismatches) != 0 {
		t.Fatalf("expected empty non-nil mismatches, got %#v", summary.Mismatches)
	}
	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"total_records":0,"mismatches":[]}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}

func TestCompareSingleRecord(t *testing.T) {
	summary := Compare([]document.Record{record("", "", "")})
	if summary.TotalRecords != 1 || summary.Flagged() {
		t.Fatalf("expected reference-only batch to be clean, got %+v", summary)
	}
}

func TestCompareFullAgreementSuppressed(t *testing.T) {
	ref := record("JOHN SMITH", "1990-06-15", "ABCDE1234F")
	other := record("JON SMITH", "1990-06-15", "ABCDE1234F")
	summary := Compare([]document.Record{ref, other})
	if summary.TotalRecords != 2 {
		t.Fatalf("expected 2 records, got %d", summary.TotalRecords)
	}
	if summary.Flagged() {
		t.Fatalf("expected no mismatches, got %+v", summary.Mismatches)
	}
}

func TestCompareReportsDisagreement(t *testing.T) {
	ref := record("JOHN SMITH", "1990-06-15", "ABCDE1234F")
	other := record("JANE DOE", "1992-01-01", "")
	summary := Compare([]document.Record{ref, other})
	if len(summary.Mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(summary.Mismatches))
	}
	m := summary.Mismatches[0]
	if m.Index != 1 {
		t.Fatalf("expected index 1, got %d", m.Index)
	}
	if m.NameOK || m.DOBOK || m.IDOK {
		t.Fatalf("expected all checks to fail, got %+v", m)
	}
	if document.Value(m.Record.Name) != "JANE DOE" {
		t.Fatalf("expected mismatching record to be carried, got %+v", m.Record)
	}
}

func TestCompareAbsentFieldsNeverAgree(t *testing.T) {
	ref := record("JOHN SMITH", "", "")
	other := record("JOHN SMITH", "", "")
	summary := Compare([]document.Record{ref, other})
	if len(summary.Mismatches) != 1 {
		t.Fatalf("expected absent fields to be reported, got %+v", summary)
	}
	m := summary.Mismatches[0]
	if !m.NameOK {
		t.Fatal("expected equal names to match")
	}
	if m.DOBOK || m.IDOK {
		t.Fatalf("expected absent dob and id to fail, got %+v", m)
	}
}

func TestCompareIndicesStableAndReferenceExcluded(t *testing.T) {
	ref := record("JOHN SMITH", "1990-06-15", "ABCDE1234F")
	records := []document.Record{
		ref,
		record("JOHN SMITH", "1990-06-15", "ABCDE1234F"),
		record("JOHN SMITH", "1990-06-16", "ABCDE1234F"),
		record("SMITH JOHN", "1990-06-15", "ABCDE1234F"),
		record("JOHN SMITH", "1990-06-15", "ZZZZZ9999Z"),
	}
	summary := Compare(records)
	if summary.TotalRecords != 5 {
		t.Fatalf("expected 5 records, got %d", summary.TotalRecords)
	}
	var indices []int
	for _, m := range summary.Mismatches {
		if m.Index == 0 {
			t.Fatal("reference must never be reported")
		}
		indices = append(indices, m.Index)
	}
	if len(indices) != 2 || indices[0] != 2 || indices[1] != 4 {
		t.Fatalf("expected mismatches at [2 4], got %v", indices)
	}
	if summary.Mismatches[0].DOBOK || !summary.Mismatches[0].IDOK {
		t.Fatalf("unexpected flags for index 2: %+v", summary.Mismatches[0])
	}
	if !summary.Mismatches[1].DOBOK || summary.Mismatches[1].IDOK {
		t.Fatalf("unexpected flags for index 4: %+v", summary.Mismatches[1])
	}
}

func TestCompareDoesNotMutateInput(t *testing.T) {
	records := []document.Record{
		record("john smith", "1990-06-15", "ABCDE1234F"),
		record("JOHN SMITH!", "1990-06-15", "ABCDE1234F"),
	}
	Compare(records)
	if *records[0].Name != "john smith" || *records[1].Name != "JOHN SMITH!" {
		t.Fatalf("expected names untouched, got %q and %q", *records[0].Name, *records[1].Name)
	}
}

func TestNamesSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b *string
		want bool
	}{
		{"both absent", nil, nil, false},
		{"left absent", nil, ptr("JOHN"), false},
		{"right absent", ptr("JOHN"), nil, false},
		{"identical", ptr("JOHN SMITH"), ptr("JOHN SMITH"), true},
		{"case and punctuation", ptr("john  smith."), ptr("JOHN SMITH"), true},
		{"reordered", ptr("SMITH JOHN"), ptr("JOHN SMITH"), true},
		{"shared surname", ptr("JOHN SMITH"), ptr("JANE SMITH"), true},
		{"subset", ptr("RAHUL"), ptr("RAHUL KUMAR SINGH"), true},
		{"disjoint", ptr("JOHN SMITH"), ptr("JANE DOE"), false},
		{"nothing left after normalization", ptr("1234"), ptr("5678"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NamesSimilar(tt.a, tt.b); got != tt.want {
				t.Fatalf("NamesSimilar() = %v, want %v", got, tt.want)
			}
			if got := NamesSimilar(tt.b, tt.a); got != tt.want {
				t.Fatalf("NamesSimilar() not symmetric: %v", got)
			}
		})
	}
}

func TestSummaryJSONShape(t *testing.T) {
	summary := Compare([]document.Record{
		record("JOHN SMITH", "1990-06-15", "ABCDE1234F"),
		record("JANE DOE", "1992-01-01", ""),
	})
	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"total_records":2`, `"index":1`, `"name_ok":false`, `"id_number":null`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s in %s", want, data)
		}
	}
}
