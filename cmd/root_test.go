// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const legacyProject = `{
  "appVersion": "0.3.0",
  "audioKeys": ["a", "b"],
  "audioItems": {
    "a": {"text": "hello", "charactorIndex": 1,
          "query": {"accentPhrases": [], "speedScale": 1, "pitchScale": 0, "intonationScale": 1}},
    "b": {"text": "world", "charactorIndex": 0}
  }
}`

const danglingProject = `{"appVersion":"0.4.0","audioKeys":["x"],"audioItems":{}}`

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	done := make(chan []byte)
	go func() {
		output, _ := io.ReadAll(r)
		done <- output
	}()

	runErr := fn()
	_ = w.Close()
	output := <-done
	_ = r.Close()

	return string(output), runErr
}

// setupWorkspace isolates config lookup and returns an empty project dir.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	dir := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	t.Setenv("VOICEVOX_APP_VERSION", "0.4.0")
	t.Setenv("VOICEVOX_LOG_FILE", "")
	t.Setenv("VOICEVOX_LOG_LEVEL", "error")
	chdir(t, dir)
	return dir
}

func writeProject(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	setupWorkspace(t)
	ctx := context.Background()

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			out, err := captureStdout(t, func() error { return Run(ctx, args) })
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "Commands:") {
				t.Errorf("expected usage, got %q", out)
			}
		})
	}

	for _, args := range [][]string{{"--version"}, {"-v"}, {"version"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			out, err := captureStdout(t, func() error { return Run(ctx, args) })
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if strings.TrimSpace(out) != "voicevox version 0.4.0" {
				t.Errorf("version output: got %q", out)
			}
		})
	}

	t.Run("app version override", func(t *testing.T) {
		out, err := captureStdout(t, func() error { return Run(ctx, []string{"--app-version", "1.2.3", "version"}) })
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "1.2.3") {
			t.Errorf("version output: got %q", out)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		err := Run(ctx, []string{"unknown-command"})
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("missing command returns error", func(t *testing.T) {
		if err := Run(ctx, nil); err == nil {
			t.Error("expected error without a command")
		}
	})
}

func TestCheckCommand(t *testing.T) {
	dir := setupWorkspace(t)
	writeProject(t, dir, "old.vvproj", legacyProject)
	writeProject(t, dir, "bad.vvproj", danglingProject)

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"check", "old.vvproj"})
	})
	if err != nil {
		t.Fatalf("check valid file: %v", err)
	}
	if !strings.Contains(out, "✅ old.vvproj (app 0.3.0, 2 items)") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "rename-charactor-index") {
		t.Errorf("migrations not reported: %q", out)
	}

	out, err = captureStdout(t, func() error {
		return Run(context.Background(), []string{"check", "old.vvproj", "bad.vvproj", "missing.vvproj"})
	})
	if err == nil || !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("expected 2 of 3 invalid, got %v", err)
	}
	if !strings.Contains(out, "❌ bad.vvproj") || !strings.Contains(out, "invariant") {
		t.Errorf("invariant failure not reported: %q", out)
	}
	if !strings.Contains(out, "❌ missing.vvproj") || !strings.Contains(out, "io error") {
		t.Errorf("io failure not reported: %q", out)
	}

	if err := Run(context.Background(), []string{"check"}); err == nil {
		t.Error("expected error without files")
	}
}

func TestLsCommand(t *testing.T) {
	dir := setupWorkspace(t)
	writeProject(t, dir, "old.vvproj", legacyProject)

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"ls", "-v", "old.vvproj"})
	})
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	// Item numbers are right-aligned, so only the trailing newline is trimmed.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "  1 [x] (C1) hello  <a>") {
		t.Errorf("line 1: got %q", lines[0])
	}
	if !strings.Contains(lines[1], "24000 Hz") {
		t.Errorf("verbose parameters: got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "  2 [ ] (C0) world  <b>") {
		t.Errorf("line 2: got %q", lines[2])
	}

	if err := Run(context.Background(), []string{"ls"}); err == nil {
		t.Error("expected error without a file")
	}
}

func TestMigrateCommand(t *testing.T) {
	dir := setupWorkspace(t)
	writeProject(t, dir, "old.vvproj", legacyProject)

	_, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"migrate", "-o", "out/new.vvproj", "old.vvproj"})
	})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "new.vvproj"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	var doc struct {
		AppVersion string                     `json:"appVersion"`
		AudioKeys  []string                   `json:"audioKeys"`
		AudioItems map[string]json.RawMessage `json:"audioItems"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.AppVersion != "0.4.0" {
		t.Errorf("appVersion: got %q, want 0.4.0", doc.AppVersion)
	}
	if len(doc.AudioKeys) != 2 {
		t.Fatalf("audioKeys: got %v", doc.AudioKeys)
	}
	first := string(doc.AudioItems[doc.AudioKeys[0]])
	if !strings.Contains(first, `"characterIndex":1`) || !strings.Contains(first, `"outputSamplingRate":24000`) {
		t.Errorf("first item not migrated: %s", first)
	}
	if strings.Contains(string(data), "charactorIndex") {
		t.Error("legacy field left in output")
	}

	original, err := os.ReadFile(filepath.Join(dir, "old.vvproj"))
	if err != nil || string(original) != legacyProject {
		t.Error("input modified when -o was given")
	}
}

func TestMigrateCommandRejectsInvalidFile(t *testing.T) {
	dir := setupWorkspace(t)
	writeProject(t, dir, "bad.vvproj", danglingProject)

	_, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"migrate", "-o", "new.vvproj", "bad.vvproj"})
	})
	if err == nil || !strings.Contains(err.Error(), "invalid") {
		t.Errorf("expected invalid error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "new.vvproj")); !os.IsNotExist(err) {
		t.Error("output written for an invalid file")
	}
}

func TestLoadCommandWithFile(t *testing.T) {
	dir := setupWorkspace(t)
	writeProject(t, dir, "old.vvproj", legacyProject)

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"load", "-yes", "old.vvproj"})
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out, "(C1) hello") || !strings.Contains(out, "(C0) world") {
		t.Errorf("loaded items not listed: %q", out)
	}
}

func TestInitCommand(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"init"}) })
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "voicevox.toml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out, err = captureStdout(t, func() error { return Run(context.Background(), []string{"init"}) })
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "Skipping") {
		t.Errorf("expected skip, got %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := setupWorkspace(t)
	writeProject(t, dir, "voicevox.toml", `watch = false`)

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"--log-format", "json", "config"})
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"Config file: voicevox.toml", "(project file)", "(flag)", "(environment)", "(default)"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestTailCommand(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"tail"}) })
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if !strings.Contains(out, "No log file configured") {
		t.Errorf("unexpected output: %q", out)
	}

	logPath := filepath.Join(dir, "voicevox.log")
	writeProject(t, dir, "old.vvproj", legacyProject)
	_, err = captureStdout(t, func() error {
		return Run(context.Background(), []string{"--log-file", logPath, "--log-level", "info", "migrate", "old.vvproj"})
	})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	out, err = captureStdout(t, func() error {
		return Run(context.Background(), []string{"--log-file", logPath, "tail", "-n", "5"})
	})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if !strings.Contains(out, "Saved project file") {
		t.Errorf("log not tailed: %q", out)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
