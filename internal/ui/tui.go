// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/rokujyushi/voicevox/internal/audio"
	"github.com/rokujyushi/voicevox/internal/project"
)

// ViewerOptions configures the project viewer.
type ViewerOptions struct {
	// Path is the project file to show.
	Path string
	// AppVersion is passed to the decoder; it must parse as a version.
	AppVersion string
	// FS reads the project file.
	FS project.FS
	// Watch reloads on file changes instead of polling.
	Watch bool
	// Logger receives watcher failures. Nil uses the default logger.
	Logger *log.Logger
}

// RunViewer shows a read-only, live-refreshing view of a project file.
func RunViewer(ctx context.Context, opts ViewerOptions) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("viewer requires a TTY")
	}

	model := newViewerModel(opts)
	if opts.Watch {
		watcher, err := newFileWatcher(opts.Path)
		if err != nil {
			model.logger.Warn("File watching unavailable, polling instead", "path", opts.Path, "err", err)
		} else {
			defer watcher.Close()
			model.watcher = watcher
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type viewerModel struct {
	opts         ViewerOptions
	logger       *log.Logger
	watcher      *fileWatcher
	loadErr      error
	data         *viewData
	tickInterval time.Duration
	cursor       int
	showHelp     bool // Show help screen
	showDetails  bool // Show the synthesis parameters of the selected item
}

type viewData struct {
	appVersion  string
	fileVersion string
	migrations  []string
	items       []viewItem
	synthesized int
}

type viewItem struct {
	key            audio.AudioKey
	text           string
	characterIndex int32
	query          *audio.AudioQuery
}

type tickMsg time.Time

type fileChangedMsg struct{}

type watchErrMsg struct {
	err error
}

func newViewerModel(opts ViewerOptions) *viewerModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &viewerModel{
		opts:         opts,
		logger:       logger,
		tickInterval: 2 * time.Second,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	m.refresh()
	if m.watcher != nil {
		return waitForChange(m.watcher)
	}
	return tickCmd(m.tickInterval)
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "enter", "d":
			m.showDetails = !m.showDetails
			return m, nil
		case "up", "k":
			m.moveCursor(-1)
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	case fileChangedMsg:
		m.refresh()
		return m, waitForChange(m.watcher)
	case watchErrMsg:
		m.logger.Warn("File watcher failed, polling instead", "path", m.opts.Path, "err", msg.err)
		if m.watcher != nil {
			m.watcher.Close()
			m.watcher = nil
		}
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *viewerModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.opts.Path)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.refreshMode())
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading project file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.refreshMode())
		return b.String()
	}
	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.refreshMode())
		return b.String()
	}

	writeOverview(&b, m.data)
	writeItems(&b, m.data, m.cursor)
	if m.showDetails && m.cursor < len(m.data.items) {
		writeDetails(&b, m.data.items[m.cursor])
	}
	writeFooter(&b, m.refreshMode())
	return b.String()
}

func (m *viewerModel) refreshMode() string {
	if m.watcher != nil {
		return "Watching for changes"
	}
	return fmt.Sprintf("Refreshing every %s", m.tickInterval)
}

func (m *viewerModel) moveCursor(delta int) {
	if m.data == nil || len(m.data.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.data.items) {
		m.cursor = len(m.data.items) - 1
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(w *fileWatcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		case err := <-w.Errors():
			return watchErrMsg{err: err}
		}
	}
}

func (m *viewerModel) refresh() {
	data, err := loadViewData(m.opts.FS, m.opts.Path, m.opts.AppVersion)
	if err != nil {
		m.loadErr = err
		m.data = nil
		return
	}
	m.loadErr = nil
	m.data = data
	m.moveCursor(0)
}

// loadViewData reads and validates a project file for display.
func loadViewData(fs project.FS, path, appVersion string) (*viewData, error) {
	raw, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := project.Decode(raw, appVersion)
	if err != nil {
		return nil, err
	}
	return buildViewData(decoded), nil
}

func buildViewData(decoded *project.Decoded) *viewData {
	doc := decoded.Document
	data := &viewData{
		appVersion:  doc.AppVersion,
		fileVersion: decoded.Version.String(),
		migrations:  decoded.Migrations,
	}
	for _, key := range doc.AudioKeys {
		item := doc.AudioItems[key]
		vi := viewItem{key: key, text: item.Text, query: item.Query}
		if item.CharacterIndex != nil {
			vi.characterIndex = *item.CharacterIndex
		}
		if item.Query != nil {
			data.synthesized++
		}
		data.items = append(data.items, vi)
	}
	return data
}

func writeTitle(b *strings.Builder, path string) {
	title := "VOICEVOX Project"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	b.WriteString(path + "\n\n")
}

func writeOverview(b *strings.Builder, data *viewData) {
	b.WriteString("Overview\n\n")
	b.WriteString(fmt.Sprintf("  App Version: %s  Items: %d  Synthesized: %d\n",
		data.fileVersion, len(data.items), data.synthesized))
	if len(data.migrations) > 0 {
		b.WriteString(fmt.Sprintf("  Migrated: %s\n", strings.Join(data.migrations, ", ")))
	}
	b.WriteString("\n")
}

func writeItems(b *strings.Builder, data *viewData, cursor int) {
	b.WriteString("Audio Items\n\n")
	if len(data.items) == 0 {
		b.WriteString("  No audio items.\n\n")
		return
	}
	for i, item := range data.items {
		b.WriteString(formatItem(item, i == cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeDetails(b *strings.Builder, item viewItem) {
	b.WriteString("Details\n\n")
	b.WriteString(fmt.Sprintf("  Key: %s\n", item.key))
	q := item.query
	if q == nil {
		b.WriteString("  Not synthesized yet.\n\n")
		return
	}
	moras := 0
	var kana strings.Builder
	for _, phrase := range q.AccentPhrases {
		moras += len(phrase.Moras)
		for _, mora := range phrase.Moras {
			kana.WriteString(mora.Text)
		}
		if phrase.PauseMora != nil {
			kana.WriteString(phrase.PauseMora.Text)
		}
	}
	b.WriteString(fmt.Sprintf("  Accent Phrases: %d  Moras: %d\n", len(q.AccentPhrases), moras))
	if kana.Len() > 0 {
		b.WriteString(fmt.Sprintf("  Reading: %s\n", kana.String()))
	}
	b.WriteString(fmt.Sprintf("  Speed: %.2f  Pitch: %.2f  Intonation: %.2f  Volume: %.2f\n",
		q.SpeedScale, q.PitchScale, q.IntonationScale, q.VolumeScale))
	b.WriteString(fmt.Sprintf("  Pre/Post Phoneme: %.2fs / %.2fs  Sampling Rate: %d Hz\n\n",
		q.PrePhonemeLength, q.PostPhonemeLength, q.OutputSamplingRate))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload file\n")
	b.WriteString("  up/k, down/j Select item\n")
	b.WriteString("  enter, d     Toggle item details\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, mode string) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | %s\n", mode))
}

func formatItem(item viewItem, selected bool) string {
	pointer := " "
	if selected {
		pointer = ">"
	}
	statusIcon := " "
	if item.query != nil {
		statusIcon = "x"
	}

	text := item.text
	if runes := []rune(text); len(runes) > 40 {
		text = string(runes[:37]) + "..."
	}
	return fmt.Sprintf("  %s [%s] (C%d) %s", pointer, statusIcon, item.characterIndex, text)
}

// IsTTY returns true if stdout is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
