package config

import (
	"flag"
)

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were set. If sources is non-nil, it tracks the source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("voicevox", flag.ContinueOnError)
	}

	// Bind to copies so unset flags never clobber file or env values.
	next := *cfg
	fs.BoolVar(&next.ConfirmLoad, "confirm-load", cfg.ConfirmLoad, "Ask before a load discards the current project")
	fs.StringVar(&next.ProjectDir, "project-dir", cfg.ProjectDir, "Directory the file dialogs open in")
	fs.StringVar(&next.AppVersion, "app-version", cfg.AppVersion, "Override the application version")
	fs.BoolVar(&next.Watch, "watch", cfg.Watch, "Reload the viewer when the file changes")

	// Logging
	fs.StringVar(&next.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&next.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&next.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&next.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&next.LogFile, "log-file", cfg.LogFile, "Also write logs to this rotating file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"confirm-load":   "confirm_load",
		"project-dir":    "project_dir",
		"app-version":    "app_version",
		"watch":          "watch",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
		"log-file":       "log_file",
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToSource[f.Name]
		if !ok {
			return
		}
		switch field {
		case "confirm_load":
			cfg.ConfirmLoad = next.ConfirmLoad
		case "project_dir":
			cfg.ProjectDir = next.ProjectDir
		case "app_version":
			cfg.AppVersion = next.AppVersion
		case "watch":
			cfg.Watch = next.Watch
		case "log_level":
			cfg.LogLevel = next.LogLevel
		case "log_format":
			cfg.LogFormat = next.LogFormat
		case "log_timestamps":
			cfg.LogTimestamps = next.LogTimestamps
		case "log_caller":
			cfg.LogCaller = next.LogCaller
		case "log_file":
			cfg.LogFile = next.LogFile
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
