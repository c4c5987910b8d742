package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample OCR text for the two supported cards, shared by CLI and integration
// tests.
const (
	PANCardText = `INCOME TAX DEPARTMENT
GOVT. OF INDIA
Name: JOHN SMITH
Permanent Account Number
ABCDE1234F
Date of Birth
15-06-1990
`
	AadhaarCardText = `Government of India
JOHN SMITH
1234 5678 9012
DOB: 15/06/1990
Male
`
	MismatchedPANText = `INCOME TAX DEPARTMENT
Name: JANE DOE
ZZZZZ9999Z
01-01-1992
`
)

// WriteDocument writes content to name under dir and returns the full path.
func WriteDocument(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
