package document

import (
	"fmt"
	"strings"
)

// Kind identifies which extraction ruleset governs a document.
type Kind string

const (
	KindPAN     Kind = "PAN"
	KindAadhaar Kind = "AADHAAR"
	KindUnknown Kind = "UNKNOWN"
)

// Kinds lists the document kinds with a dedicated ruleset.
func Kinds() []Kind {
	return []Kind{KindAadhaar, KindPAN}
}

// ParseKind resolves user input such as "pan" or "Aadhar" to a Kind. Empty
// input yields KindUnknown.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "unknown", "auto":
		return KindUnknown, nil
	case "pan":
		return KindPAN, nil
	case "aadhaar", "aadhar":
		return KindAadhaar, nil
	default:
		names := make([]string, 0, len(Kinds())+1)
		for _, kind := range Kinds() {
			names = append(names, strings.ToLower(string(kind)))
		}
		names = append(names, "auto")
		return KindUnknown, fmt.Errorf("unknown document kind %q (want one of %s)", value, strings.Join(names, ", "))
	}
}

func (k Kind) String() string {
	if k == "" {
		return string(KindUnknown)
	}
	return string(k)
}

// Record is the structured result of extracting one document.
type Record struct {
	Kind        Kind    `json:"doc_type"`
	Name        *string `json:"name"`
	DateOfBirth *string `json:"dob"`
	IDNumber    *string `json:"id_number"`
	Source      string  `json:"source,omitempty"`
}

// Optional returns a pointer to value, or nil when value is empty.
func Optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Value dereferences an optional field, returning "" when absent.
func Value(field *string) string {
	if field == nil {
		return ""
	}
	return *field
}

// Present reports whether an optional field holds a value.
func Present(field *string) bool {
	return field != nil && *field != ""
}

// HasID reports whether the record carries an identification number.
func (r Record) HasID() bool {
	return Present(r.IDNumber)
}

// Empty reports whether no field was recovered.
func (r Record) Empty() bool {
	return !Present(r.Name) && !Present(r.DateOfBirth) && !Present(r.IDNumber)
}

// WithName returns a copy of r with its name replaced. An empty name clears
// the field.
func (r Record) WithName(name string) Record {
	r.Name = Optional(name)
	return r
}
