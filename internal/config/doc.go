// Package config loads, parses, and validates application configuration
// from defaults, an optional config.yaml, a .env file, and QA_-prefixed
// environment variables.
package config
