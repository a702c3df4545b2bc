// Package config handles configuration management for livelink.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line flags, and expands a
// fixed set of ${name} placeholders in string options.
//
// Sources, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. user config: $XDG_CONFIG_HOME/livelink/config.toml
//  3. project config: .livelink.toml in the consuming project
//  4. environment: LIVELINK_<KEY>, e.g. LIVELINK_PACKAGE_MANAGER=pnpm
//  5. explicitly set command-line flags
package config
