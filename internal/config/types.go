package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, user file first.
	Files []string
}

// Default values.
const (
	DefaultConfirmLoad   = true
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
	DefaultWatch         = true
)

// Config holds the full configuration for voicevox.
type Config struct {
	// Ask before a load discards the current session.
	ConfirmLoad bool `toml:"confirm_load"`

	// Directory the file dialogs open in. Defaults to the project root.
	ProjectDir string `toml:"project_dir"`

	// Overrides the version recorded in saved files and used to pick
	// migrations. Empty means the build version.
	AppVersion string `toml:"app_version"`

	// Reload the viewer when the file changes on disk.
	Watch bool `toml:"watch"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Rotating log file; empty disables file logging.
	LogFile       string `toml:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
