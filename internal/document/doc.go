// Package document defines the identity record shared by extraction,
// normalization, and consistency checking.
//
// A Record carries best-effort values for the fields recovered from one
// scanned document. Optional fields are pointers: nil means the field was not
// found, and constructors never store an empty string, so callers can tell
// "absent" apart from any real value.
package document
