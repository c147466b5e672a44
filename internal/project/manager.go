package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/rokujyushi/voicevox/internal/appinfo"
	"github.com/rokujyushi/voicevox/internal/audio"
	"github.com/rokujyushi/voicevox/internal/version"
)

// Dialog texts shown by the load and save actions.
const (
	SelectFileTitle    = "Select a project file"
	ConfirmTitle       = "Warning"
	ConfirmMessage     = "Loading a project discards the current project.\nDo you want to continue?"
	ErrorTitle         = "Error"
	InvalidFileMessage = "The file format is invalid."
)

// Dialogs asks the user for files and confirmations.
type Dialogs interface {
	// ShowProjectLoadDialog returns the selected paths; none means cancelled.
	ShowProjectLoadDialog(ctx context.Context, title string) ([]string, error)
	// ShowProjectSaveDialog returns the destination path; "" means cancelled.
	ShowProjectSaveDialog(ctx context.Context, title string) (string, error)
	ShowConfirmDialog(ctx context.Context, title, message string) (bool, error)
	ShowErrorDialog(ctx context.Context, title, message string) error
}

// FS reads and writes whole files.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// AppInfoProvider reports the running application.
type AppInfoProvider interface {
	AppInfos(ctx context.Context) (appinfo.Info, error)
}

// SessionStore is the live, ordered set of audio items being edited.
type SessionStore interface {
	// RegisterAudioItem inserts item right after prev and returns its new
	// key. The zero key appends to the end.
	RegisterAudioItem(ctx context.Context, prev audio.AudioKey, item audio.AudioItem) (audio.AudioKey, error)
	RemoveAllAudioItems(ctx context.Context) error
	Snapshot() ([]audio.AudioKey, map[audio.AudioKey]audio.AudioItem)
}

// Locker serializes long-running user actions.
type Locker interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Outcome describes how a load or save action ended.
type Outcome int

const (
	// OutcomeCancelled means a file dialog was dismissed; nothing happened.
	OutcomeCancelled Outcome = iota
	// OutcomeDeclined means the user refused to discard the current project.
	OutcomeDeclined
	// OutcomeInvalid means the file was rejected and the user was notified.
	OutcomeInvalid
	// OutcomeLoaded means the session now holds the file's items.
	OutcomeLoaded
	// OutcomeSaved means the session was written to disk.
	OutcomeSaved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDeclined:
		return "declined"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeSaved:
		return "saved"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// LoadOptions controls LoadProjectFile.
type LoadOptions struct {
	// FilePath is loaded directly; when empty the load dialog is shown.
	FilePath string
	// SkipConfirm loads without asking to discard the current project.
	SkipConfirm bool
}

// Dependencies are the collaborators a Manager drives.
type Dependencies struct {
	Dialogs Dialogs
	FS      FS
	AppInfo AppInfoProvider
	Store   SessionStore
	Lock    Locker
	Logger  *log.Logger
}

// Manager loads and saves project files for one session.
type Manager struct {
	dialogs Dialogs
	fs      FS
	appInfo AppInfoProvider
	store   SessionStore
	lock    Locker
	logger  *log.Logger
}

// NewManager returns a Manager wired to deps. A nil Logger uses the
// charmbracelet/log default logger.
func NewManager(deps Dependencies) (*Manager, error) {
	switch {
	case deps.Dialogs == nil:
		return nil, errors.New("project manager: dialogs are required")
	case deps.FS == nil:
		return nil, errors.New("project manager: file system is required")
	case deps.AppInfo == nil:
		return nil, errors.New("project manager: app info is required")
	case deps.Store == nil:
		return nil, errors.New("project manager: session store is required")
	case deps.Lock == nil:
		return nil, errors.New("project manager: ui lock is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		dialogs: deps.Dialogs,
		fs:      deps.FS,
		appInfo: deps.AppInfo,
		store:   deps.Store,
		lock:    deps.Lock,
		logger:  logger,
	}, nil
}

// LoadProjectFile replaces the session with the contents of a project file.
//
// An invalid file is logged, reported through the error dialog and returned
// as OutcomeInvalid with a nil error; the session is left untouched. Errors
// are returned only when a collaborator fails outside of reading and
// validating the file.
func (m *Manager) LoadProjectFile(ctx context.Context, opts LoadOptions) (Outcome, error) {
	outcome := OutcomeCancelled
	err := m.lock.Do(ctx, func(ctx context.Context) error {
		var err error
		outcome, err = m.loadLocked(ctx, opts)
		return err
	})
	return outcome, err
}

func (m *Manager) loadLocked(ctx context.Context, opts LoadOptions) (Outcome, error) {
	filePath := opts.FilePath
	if filePath == "" {
		paths, err := m.dialogs.ShowProjectLoadDialog(ctx, SelectFileTitle)
		if err != nil {
			return OutcomeCancelled, fmt.Errorf("show load dialog: %w", err)
		}
		if len(paths) == 0 {
			return OutcomeCancelled, nil
		}
		filePath = paths[0]
	}

	decoded, loadErr := m.readProjectFile(ctx, filePath)
	if loadErr != nil {
		m.reportInvalid(ctx, loadErr)
		return OutcomeInvalid, nil
	}

	if !opts.SkipConfirm {
		ok, err := m.dialogs.ShowConfirmDialog(ctx, ConfirmTitle, ConfirmMessage)
		if err != nil {
			return OutcomeCancelled, fmt.Errorf("show confirm dialog: %w", err)
		}
		if !ok {
			return OutcomeDeclined, nil
		}
	}

	if err := m.store.RemoveAllAudioItems(ctx); err != nil {
		return OutcomeCancelled, fmt.Errorf("remove audio items: %w", err)
	}

	doc := decoded.Document
	var (
		prev audio.AudioKey
		err  error
	)
	for _, key := range doc.AudioKeys {
		prev, err = m.store.RegisterAudioItem(ctx, prev, doc.AudioItems[key])
		if err != nil {
			return OutcomeCancelled, fmt.Errorf("register audio item %q: %w", key, err)
		}
	}

	m.logger.Info("Loaded project file",
		"path", filePath,
		"app_version", doc.AppVersion,
		"items", len(doc.AudioKeys),
	)
	return OutcomeLoaded, nil
}

// readProjectFile reads and fully validates a project file.
func (m *Manager) readProjectFile(ctx context.Context, filePath string) (*Decoded, *LoadError) {
	data, err := m.fs.ReadFile(filePath)
	if err != nil {
		return nil, &LoadError{Kind: KindIO, Path: filePath, Err: err}
	}

	info, err := m.appInfo.AppInfos(ctx)
	if err != nil {
		return nil, &LoadError{Kind: KindVersion, Path: filePath, Err: fmt.Errorf("get app info: %w", err)}
	}

	decoded, err := Decode(data, info.Version)
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			loadErr = &LoadError{Kind: KindDecode, Err: err}
		}
		loadErr.Path = filePath
		return nil, loadErr
	}

	if len(decoded.Migrations) > 0 {
		m.logger.Debug("Migrated project file",
			"path", filePath,
			"from", decoded.Version.String(),
			"migrations", decoded.Migrations,
		)
	}
	if current, err := version.Parse(info.Version); err == nil && current.Less(decoded.Version) {
		m.logger.Warn("Project file was written by a newer version",
			"path", filePath,
			"file_version", decoded.Version.String(),
			"app_version", current.String(),
		)
	}
	return decoded, nil
}

func (m *Manager) reportInvalid(ctx context.Context, loadErr *LoadError) {
	m.logger.Error("Invalid project file",
		"path", loadErr.Path,
		"kind", string(loadErr.Kind),
		"err", loadErr.Err,
	)
	if err := m.dialogs.ShowErrorDialog(ctx, ErrorTitle, InvalidFileMessage); err != nil {
		m.logger.Warn("Failed to show error dialog", "err", err)
	}
}

// SaveProjectFile asks for a destination and writes the session to it.
// A cancelled dialog writes nothing.
func (m *Manager) SaveProjectFile(ctx context.Context) (Outcome, error) {
	outcome := OutcomeCancelled
	err := m.lock.Do(ctx, func(ctx context.Context) error {
		filePath, err := m.dialogs.ShowProjectSaveDialog(ctx, SelectFileTitle)
		if err != nil {
			return fmt.Errorf("show save dialog: %w", err)
		}
		if filePath == "" {
			return nil
		}
		if err := m.saveLocked(ctx, filePath); err != nil {
			return err
		}
		outcome = OutcomeSaved
		return nil
	})
	return outcome, err
}

// SaveProjectFileTo writes the session to filePath without a dialog.
func (m *Manager) SaveProjectFileTo(ctx context.Context, filePath string) error {
	return m.lock.Do(ctx, func(ctx context.Context) error {
		return m.saveLocked(ctx, filePath)
	})
}

// saveLocked writes the session as-is; a write failure is returned unwrapped.
func (m *Manager) saveLocked(ctx context.Context, filePath string) error {
	info, err := m.appInfo.AppInfos(ctx)
	if err != nil {
		return fmt.Errorf("get app info: %w", err)
	}

	keys, items := m.store.Snapshot()
	data, err := NewDocument(info.Version, keys, items).Marshal()
	if err != nil {
		return err
	}

	if err := m.fs.WriteFile(filePath, data); err != nil {
		return err
	}

	m.logger.Info("Saved project file", "path", filePath, "items", len(keys))
	return nil
}
