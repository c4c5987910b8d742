// Package extract recovers identity fields from noisy document text.
//
// Each supported document kind has an immutable Ruleset describing its
// identification-number pattern, name heuristics, and date-of-birth search.
// An Extractor applies either the ruleset named by a kind hint or, without a
// hint, every ruleset in priority order (AADHAAR, then PAN), keeping the first
// result that carries an identification number and otherwise merging whatever
// name and date the rulesets found into an UNKNOWN record.
//
// Extraction never fails. Malformed or empty text degrades to absent fields,
// and a date that matches the pattern but is not a real calendar date is kept
// as the raw matched substring.
package extract
