// Package config holds the engine configuration: scoring thresholds, keyword
// sets, the platform format catalog and the narrative template catalog.
//
// A Config is built once at startup (Default overlaid by an optional YAML or
// TOML file), validated, and then shared read-only by every run.
package config
