// Package config loads, normalizes, and validates tunelate configuration.
//
// It supplies defaults that work without any file, reads an optional TOML or
// YAML file (chosen by extension), then overlays environment variables such
// as GOOGLE_TRANSLATE_API_KEY and TUNELATE_PROVIDERS. The environment is read
// once, when the CLI starts.
package config
