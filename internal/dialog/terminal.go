package dialog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
)

// ProjectExt is the file extension offered by the file dialogs.
const ProjectExt = ".vvproj"

// Terminal shows dialogs as interactive terminal forms.
type Terminal struct {
	// Dir is the directory the file picker starts in. Empty means the
	// working directory.
	Dir string
	// Accessible renders plain prompts for screen readers.
	Accessible bool
}

func (t *Terminal) run(ctx context.Context, fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...)).WithAccessible(t.Accessible)
	return form.RunWithContext(ctx)
}

func (t *Terminal) startDir() string {
	if t.Dir != "" {
		return t.Dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// ShowProjectLoadDialog lets the user pick one project file.
func (t *Terminal) ShowProjectLoadDialog(ctx context.Context, title string) ([]string, error) {
	var path string
	picker := huh.NewFilePicker().
		Title(title).
		CurrentDirectory(t.startDir()).
		AllowedTypes([]string{ProjectExt, ".json"}).
		Value(&path)

	if err := t.run(ctx, picker); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, fmt.Errorf("file picker: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	return []string{path}, nil
}

// ShowProjectSaveDialog asks for a destination path. The project extension
// is appended when missing.
func (t *Terminal) ShowProjectSaveDialog(ctx context.Context, title string) (string, error) {
	var path string
	input := huh.NewInput().
		Title(title).
		Placeholder("project" + ProjectExt).
		Value(&path).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("enter a file name")
			}
			return nil
		})

	if err := t.run(ctx, input); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", fmt.Errorf("save dialog: %w", err)
	}
	return resolveSavePath(t.startDir(), path), nil
}

// ShowConfirmDialog asks a yes/no question. Aborting counts as no.
func (t *Terminal) ShowConfirmDialog(ctx context.Context, title, message string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(message).
		Affirmative("OK").
		Negative("Cancel").
		Value(&ok)

	if err := t.run(ctx, confirm); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm dialog: %w", err)
	}
	return ok, nil
}

// ShowErrorDialog shows a message until dismissed.
func (t *Terminal) ShowErrorDialog(ctx context.Context, title, message string) error {
	note := huh.NewNote().
		Title(title).
		Description(message).
		Next(true)

	if err := t.run(ctx, note); err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("error dialog: %w", err)
	}
	return nil
}

func resolveSavePath(dir, input string) string {
	path := strings.TrimSpace(input)
	if path == "" {
		return ""
	}
	if filepath.Ext(path) == "" {
		path += ProjectExt
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return path
}
