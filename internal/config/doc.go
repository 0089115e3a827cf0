// Package config loads and validates scrollstorm settings.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional TOML file, and SCROLLSTORM_-prefixed environment variables.
// A Watcher can monitor the TOML file and publish reloaded configuration
// on the event bus.
package config
