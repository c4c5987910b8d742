// Package consistency cross-checks identity records extracted from several
// documents that should describe the same person.
//
// The first record in a batch is the reference. Every later record is
// compared against it on name, date of birth, and identification number, and
// a Mismatch is reported whenever any of the three checks fails. Absent
// values never count as agreement. Name similarity is deliberately lenient:
// one shared normalized token is enough.
package consistency
