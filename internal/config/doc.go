// Package config loads, normalizes, and validates corpusprep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CORPUSPREP_LOG_LEVEL. A .env file in the working directory is loaded before
// the environment is consulted so per-dataset overrides can live next to the
// corpus files.
//
// Always obtain settings through this package so the corpus readers and
// writers receive sanitized paths, canonical encodings, and clear validation
// errors.
package config
