// Package config provides layered application configuration.
//
// Settings are resolved in three layers, each overriding the last:
//
//  1. Built-in defaults (see Default)
//  2. A YAML config file (xlmerge.yaml by default)
//  3. XLMERGE_* environment variables
//
// The resulting Config is validated before use, so the rest of the
// application can assume header rows are positive, at least one key
// column is configured, and the logging mode is one it knows.
package config
