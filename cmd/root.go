// Package cmd implements the CLI command structure for voicevox.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rokujyushi/voicevox/internal/appinfo"
	"github.com/rokujyushi/voicevox/internal/config"
	"github.com/rokujyushi/voicevox/internal/dialog"
	"github.com/rokujyushi/voicevox/internal/fileio"
	"github.com/rokujyushi/voicevox/internal/logging"
	"github.com/rokujyushi/voicevox/internal/parallel"
	"github.com/rokujyushi/voicevox/internal/project"
	"github.com/rokujyushi/voicevox/internal/session"
	"github.com/rokujyushi/voicevox/internal/ui"
	"github.com/rokujyushi/voicevox/internal/uilock"
)

// Run executes the voicevox CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("voicevox", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(cfg)
	}

	logger, closer, err := logging.New(logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
		Prefix:          logging.DefaultPrefix,
		File:            cfg.LogFile,
		MaxSizeMB:       cfg.LogMaxSizeMB,
		MaxBackups:      cfg.LogMaxBackups,
		MaxAgeDays:      cfg.LogMaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closer.Close()

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing command")
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]

	// Execute the subcommand
	switch subcommand {
	case "check":
		return checkCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "migrate":
		return migrateCommand(ctx, cfg, logger, remainingArgs)
	case "load":
		return loadCommand(ctx, cfg, logger, remainingArgs)
	case "view":
		return viewCommand(ctx, cfg, logger, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(cfg)
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// resolvePath makes a command-line path absolute against the project root.
func resolvePath(cfg *config.Config, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.ProjectRoot, path)
}

// checkCommand validates project files without loading them into a session.
func checkCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("voicevox check", flag.ContinueOnError)
	jobs := fs.Int("j", runtime.NumCPU(), "Number of files to check concurrently")
	failFast := fs.Bool("fail-fast", false, "Stop at the first invalid file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("check requires at least one project file")
	}
	if *jobs < 1 {
		*jobs = 1
	}

	appVersion := appinfo.Default(cfg.AppVersion).Info.Version
	pool := parallel.NewWorkerPool(ctx, *jobs, *failFast)
	for _, file := range files {
		path := resolvePath(cfg, file)
		pool.Submit(file, func(ctx context.Context) (*project.Decoded, error) {
			return decodeFile(path, appVersion)
		})
	}
	results, errs := pool.Wait()

	for _, r := range results {
		if r.Error != nil {
			fmt.Printf("❌ %s\n   %v\n", r.Path, r.Error)
			continue
		}
		decoded := r.Decoded
		fmt.Printf("✅ %s (app %s, %d items)\n", r.Path, decoded.Version, len(decoded.Document.AudioKeys))
		if len(decoded.Migrations) > 0 {
			fmt.Printf("   migrations: %s\n", strings.Join(decoded.Migrations, ", "))
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d project files are invalid", len(errs), len(files))
	}
	return nil
}

func decodeFile(path, appVersion string) (*project.Decoded, error) {
	data, err := fileio.OS{}.ReadFile(path)
	if err != nil {
		return nil, &project.LoadError{Kind: project.KindIO, Path: path, Err: err}
	}
	decoded, err := project.Decode(data, appVersion)
	if err != nil {
		var loadErr *project.LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return decoded, nil
}

// lsCommand lists the audio items of a project file in order.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("voicevox ls", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Show synthesis parameters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("ls requires exactly one project file")
	}

	decoded, err := decodeFile(resolvePath(cfg, remaining[0]), appinfo.Default(cfg.AppVersion).Info.Version)
	if err != nil {
		return fmt.Errorf("loading project file: %w", err)
	}

	doc := decoded.Document
	if len(doc.AudioKeys) == 0 {
		fmt.Println("No audio items.")
		return nil
	}
	for i, key := range doc.AudioKeys {
		printItem(i+1, key, doc.AudioItems[key], *verbose)
	}
	return nil
}

// newManager wires a project manager for one CLI session.
func newManager(cfg *config.Config, logger *log.Logger, dialogs project.Dialogs, store *session.Store) (*project.Manager, error) {
	return project.NewManager(project.Dependencies{
		Dialogs: dialogs,
		FS:      fileio.OS{},
		AppInfo: appinfo.Default(cfg.AppVersion),
		Store:   store,
		Lock:    uilock.New(),
		Logger:  logger,
	})
}

// migrateCommand rewrites a project file in the current format.
func migrateCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("voicevox migrate", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default: overwrite the input)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("migrate requires exactly one project file")
	}
	in := resolvePath(cfg, remaining[0])
	out := in
	if *output != "" {
		out = resolvePath(cfg, *output)
	}

	store := session.NewStore()
	manager, err := newManager(cfg, logger, &dialog.Scripted{Out: os.Stderr}, store)
	if err != nil {
		return err
	}

	outcome, err := manager.LoadProjectFile(ctx, project.LoadOptions{FilePath: in, SkipConfirm: true})
	if err != nil {
		return err
	}
	if outcome != project.OutcomeLoaded {
		return fmt.Errorf("%s was not migrated: %s", in, outcome)
	}
	if err := manager.SaveProjectFileTo(ctx, out); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Migrated %s -> %s (%d items)\n", in, out, store.Len())
	return nil
}

// loadCommand loads a project interactively and optionally saves it again.
func loadCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("voicevox load", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Do not ask before discarding the current project")
	save := fs.Bool("save", false, "Ask for a destination and save after loading")
	accessible := fs.Bool("accessible", false, "Use plain prompts for screen readers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	var filePath string
	if len(remaining) == 1 {
		filePath = resolvePath(cfg, remaining[0])
	}

	store := session.NewStore()
	dialogs := &dialog.Terminal{Dir: cfg.ProjectDir, Accessible: *accessible}
	manager, err := newManager(cfg, logger, dialogs, store)
	if err != nil {
		return err
	}

	outcome, err := manager.LoadProjectFile(ctx, project.LoadOptions{
		FilePath:    filePath,
		SkipConfirm: *yes || !cfg.ConfirmLoad,
	})
	if err != nil {
		return err
	}
	switch outcome {
	case project.OutcomeLoaded:
	case project.OutcomeInvalid:
		return fmt.Errorf("project file is invalid")
	default:
		fmt.Printf("Load %s.\n", outcome)
		return nil
	}

	for i, item := range store.Items() {
		printItem(i+1, "", item, false)
	}

	if !*save {
		return nil
	}
	outcome, err = manager.SaveProjectFile(ctx)
	if err != nil {
		return fmt.Errorf("saving project file: %w", err)
	}
	fmt.Printf("Save %s.\n", outcome)
	return nil
}

// viewCommand launches the live project viewer.
func viewCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("voicevox view", flag.ContinueOnError)
	watch := fs.Bool("watch", cfg.Watch, "Reload when the file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("view requires exactly one project file")
	}

	return ui.RunViewer(ctx, ui.ViewerOptions{
		Path:       resolvePath(cfg, remaining[0]),
		AppVersion: appinfo.Default(cfg.AppVersion).Info.Version,
		FS:         fileio.OS{},
		Watch:      *watch,
		Logger:     logger,
	})
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("voicevox config", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cws.Config
	values := map[string]any{
		"confirm_load":     cfg.ConfirmLoad,
		"project_dir":      cfg.ProjectDir,
		"app_version":      cfg.AppVersion,
		"watch":            cfg.Watch,
		"log_level":        cfg.LogLevel,
		"log_format":       cfg.LogFormat,
		"log_timestamps":   cfg.LogTimestamps,
		"log_caller":       cfg.LogCaller,
		"log_file":         cfg.LogFile,
		"log_max_size_mb":  cfg.LogMaxSizeMB,
		"log_max_backups":  cfg.LogMaxBackups,
		"log_max_age_days": cfg.LogMaxAgeDays,
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("Config file: %s\n\n", file)
	}
	for _, name := range names {
		fmt.Printf("%-17s = %-30v (%s)\n", name, values[name], cws.Sources[name])
	}
	return nil
}

// initCommand writes an example config file to the project root.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("voicevox init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := filepath.Join(cfg.ProjectRoot, "voicevox.toml")
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// tailCommand tails the rotating log file.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("voicevox tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.LogFile == "" {
		fmt.Println("No log file configured (set log_file or --log-file).")
		return nil
	}
	if _, err := os.Stat(cfg.LogFile); errors.Is(err, os.ErrNotExist) {
		fmt.Println("No log file found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", cfg.LogFile)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, cfg.LogFile, *n, *follow)
}

// versionCommand prints version information.
func versionCommand(cfg *config.Config) error {
	info := appinfo.Default(cfg.AppVersion).Info
	fmt.Printf("%s version %s\n", info.Name, info.Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "VOICEVOX - project file tools")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  voicevox [options] <command> [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  check <file>...     Validate project files")
	fmt.Fprintln(w, "  ls <file>           List the audio items of a project")
	fmt.Fprintln(w, "  migrate <file>      Rewrite a project in the current format")
	fmt.Fprintln(w, "  load [file]         Load a project into a session (file picker when omitted)")
	fmt.Fprintln(w, "  view <file>         Launch the terminal project viewer")
	fmt.Fprintln(w, "  config              Show the effective configuration")
	fmt.Fprintln(w, "  init                Write an example voicevox.toml")
	fmt.Fprintln(w, "  tail                Tail the log file")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Options:")
	fmt.Fprintln(w, "  -j int")
	fmt.Fprintln(w, "        Number of files to check concurrently (default: CPU count)")
	fmt.Fprintln(w, "  -fail-fast")
	fmt.Fprintln(w, "        Stop at the first invalid file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -v    Show synthesis parameters")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Migrate Options:")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (default: overwrite the input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load Options:")
	fmt.Fprintln(w, "  -yes  Do not ask before discarding the current project")
	fmt.Fprintln(w, "  -save Ask for a destination and save after loading")
	fmt.Fprintln(w, "  -accessible")
	fmt.Fprintln(w, "        Use plain prompts for screen readers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "View Options:")
	fmt.Fprintln(w, "  -watch")
	fmt.Fprintln(w, "        Reload when the file changes (default from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
