// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.voicevox/voicevox.toml or OS-specific config directory)
// 3. Project config file (voicevox.toml or .voicevox.toml in the working directory)
// 4. Environment variables (VOICEVOX_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.voicevox/voicevox.toml (preferred)
// - Windows: %APPDATA%\voicevox\voicevox.toml
// - macOS: ~/Library/Application Support/voicevox/voicevox.toml
// - Linux/BSD: $XDG_CONFIG_HOME/voicevox/voicevox.toml or ~/.config/voicevox/voicevox.toml
//
// Project-level config locations (overrides user config):
// - ./voicevox.toml (preferred)
// - ./.voicevox.toml
package config
