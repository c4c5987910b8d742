// Package textutil provides the text canonicalization shared by extraction,
// comparison, and rendering.
//
// The primary use cases are:
//   - Normalizing free-text names into a comparable upper-case form
//   - Splitting normalized names into token sets for overlap checks
//   - Flattening values into single-line table cells
//
// Name normalization folds diacritics to their base letter, drops every rune
// that is not an ASCII letter or whitespace, collapses whitespace, and
// upper-cases the result. It is pure and idempotent.
package textutil
