// Package history persists completed check runs in SQLite so earlier results
// can be listed and inspected later.
//
// Each run stores the extracted records and the comparison summary as JSON
// alongside a few denormalized columns used for listing. Schema changes are
// added as numbered files under migrations/ and applied on Open while holding
// a file lock, so concurrent invocations do not race.
package history
