// Package config defines the engine's YAML configuration, its defaults,
// validation, and MERIDIAN_* environment variable overrides.
//
// Loading sequence: parse YAML, apply defaults, optionally apply env
// overrides, validate. Environment variables always win over the file.
package config
