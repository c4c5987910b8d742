// Package config loads, normalizes, and validates idverify configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// IDVERIFY_LOG_LEVEL. The Config type centralizes every knob the CLI needs:
// where history and logs live, which external OCR tools to run, how many
// documents to process at once, and how to log.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
