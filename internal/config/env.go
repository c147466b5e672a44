package config

import (
	"fmt"
	"os"
	"strconv"
)

// loadFromEnv overrides config from VOICEVOX_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			mark(field)
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			mark(field)
		}
	}
	setInt := func(env, field string, target *int) error {
		v := os.Getenv(env)
		if v == "" {
			return nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		*target = i
		mark(field)
		return nil
	}

	setBool("VOICEVOX_CONFIRM_LOAD", "confirm_load", &cfg.ConfirmLoad)
	setString("VOICEVOX_PROJECT_DIR", "project_dir", &cfg.ProjectDir)
	setString("VOICEVOX_APP_VERSION", "app_version", &cfg.AppVersion)
	setBool("VOICEVOX_WATCH", "watch", &cfg.Watch)

	// Logging configuration
	setString("VOICEVOX_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("VOICEVOX_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("VOICEVOX_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("VOICEVOX_LOG_CALLER", "log_caller", &cfg.LogCaller)
	setString("VOICEVOX_LOG_FILE", "log_file", &cfg.LogFile)
	if err := setInt("VOICEVOX_LOG_MAX_SIZE_MB", "log_max_size_mb", &cfg.LogMaxSizeMB); err != nil {
		return err
	}
	if err := setInt("VOICEVOX_LOG_MAX_BACKUPS", "log_max_backups", &cfg.LogMaxBackups); err != nil {
		return err
	}
	return setInt("VOICEVOX_LOG_MAX_AGE_DAYS", "log_max_age_days", &cfg.LogMaxAgeDays)
}
