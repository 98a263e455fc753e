// Package config handles configuration management for dispatchr.
// It layers embedded defaults, an optional TOML config file, DISPATCHR_
// environment variables and command-line overrides.
package config
