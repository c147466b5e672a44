package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# VOICEVOX configuration file
# Values can be overridden by VOICEVOX_* environment variables or CLI flags

# Ask before loading a project discards the current one
confirm_load = true

# Directory the file dialogs open in (supports ~ expansion and %VAR% on Windows)
# project_dir = "~/voicevox"

# Override the application version written to saved projects
# app_version = "0.4.0"

# Reload the viewer when the project file changes on disk
watch = true

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false

# Rotating log file (disabled when empty)
# log_file = "~/.voicevox/voicevox.log"
log_max_size_mb = 10
log_max_backups = 3
log_max_age_days = 28
`
}
