// Package pipeline runs batches of documents through text acquisition, field
// extraction, name normalization and, for checks, the consistency comparison.
package pipeline
