// Package config loads the organizer configuration from TOML.
//
// Load resolves the file from an explicit path, then
// ~/.config/organizer/config.toml, then ./organizer.toml in the working
// directory. A missing file yields the defaults. Values are normalized (paths
// expanded, enums lowercased) before Validate runs, and command line flags
// override the result.
package config
