package config

import "strings"

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.ConfirmLoad = DefaultConfirmLoad
	cfg.Watch = DefaultWatch
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogMaxSizeMB = DefaultLogMaxSizeMB
	cfg.LogMaxBackups = DefaultLogMaxBackups
	cfg.LogMaxAgeDays = DefaultLogMaxAgeDays
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"confirm_load",
		"project_dir",
		"app_version",
		"watch",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
		"log_max_size_mb",
		"log_max_backups",
		"log_max_age_days",
	}
}

// GetConfigFile returns the config file with the highest priority that was
// read, or "" when only defaults, env and flags were used.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

// boolFromString parses the truthy spellings accepted in env vars.
func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
