// Package tui provides a Bubble Tea terminal user interface for traktrain-downloader.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/config"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/download"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/httpx"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/traktrain"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateExtracting
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	tracks    []string
	artist    string
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	result  *model.ExtractionResult
	summary *download.Summary

	// Download progress
	doneTracks    int32
	totalTracks   int32
	receivedBytes int64

	// Options
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "https://traktrain.com/artist or a track page URL"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when download progress updates.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// ExtractDoneMsg is sent when page extraction completes.
	ExtractDoneMsg struct {
		Result  *model.ExtractionResult
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Summary *download.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateExtracting {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateExtracting
				return m, tea.Batch(m.extractTracks(), m.spinner.Tick)
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new extraction
				m.state = StateInput
				m.logs = nil
				m.tracks = nil
				m.artist = ""
				m.err = nil
				m.doneTracks = 0
				m.totalTracks = 0
				m.receivedBytes = 0
				m.manager = nil
				m.result = nil
				m.summary = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Per-track percentage updates carry no message; those are
		// reflected by the polled progress bar instead.
		if msg.Event.Message == "" {
			return m, nil
		}
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ExtractDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.result = msg.Result
			m.manager = msg.Manager
			m.artist = msg.Result.Artist
			m.tracks = make([]string, len(msg.Result.Tracks))
			for i, track := range msg.Result.Tracks {
				m.tracks[i] = track.Name
			}
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		m.summary = msg.Summary
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			received, done, total := m.manager.GetProgress()
			m.receivedBytes = received
			m.doneTracks = done
			m.totalTracks = total

			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Traktrain Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download tracks from Traktrain"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateExtracting:
		b.WriteString(m.viewExtracting())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter Traktrain URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[x]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewExtracting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Extracting track info..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.tracks) > 0 {
		header := fmt.Sprintf("Found %d track(s)", len(m.tracks))
		if m.artist != "" {
			header += " by " + m.artist
		}
		b.WriteString(successStyle.Render(header + ":"))
		b.WriteString("\n")
		shown := m.tracks
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, track := range shown {
			b.WriteString(trackStyle.Render("  - " + track))
			b.WriteString("\n")
		}
		if len(m.tracks) > len(shown) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.tracks)-len(shown))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.totalTracks > 0 {
		percent = float64(m.doneTracks) / float64(m.totalTracks)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Tracks: %d/%d | Downloaded: %.2f MB",
		m.doneTracks,
		m.totalTracks,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	succeeded, failed, skipped := 0, 0, 0
	if m.summary != nil {
		succeeded = m.summary.Succeeded
		failed = m.summary.Failed
		skipped = m.summary.Skipped
	}

	content := fmt.Sprintf(
		"Download Complete!\n\n"+
			"Downloaded: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d\n"+
			"Size: %.2f MB",
		succeeded,
		skipped,
		failed,
		float64(m.receivedBytes)/1024/1024,
	)

	return boxStyle.Render(content)
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, entry := range m.logs {
		var style lipgloss.Style
		prefix := "*"
		switch entry.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "x"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "+"
		case download.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + entry.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start | p: playlist | v: verbose | esc: quit"
	case StateExtracting, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download | q: quit"
	}
	return ""
}

// extractTracks fetches the page and runs the extraction pipeline.
func (m *Model) extractTracks() tea.Cmd {
	ctx := m.ctx
	url := m.textInput.Value()

	settings := config.DefaultSettings()
	settings.CreatePlaylist = m.playlist

	return func() tea.Msg {
		client := httpx.NewClient(settings.UserAgent)
		extractor := traktrain.NewExtractor(client, nil)
		pageType := traktrain.GuessPageType(url)

		result, err := traktrain.FetchAndExtract(ctx, client, extractor, pageType, url)
		if err != nil {
			return ExtractDoneMsg{Err: err}
		}

		manager := download.NewManager(settings, nil, nil)

		return ExtractDoneMsg{
			Result:  result,
			Manager: manager,
		}
	}
}

// startDownload starts the actual download in background.
func (m *Model) startDownload() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	result := m.result

	return func() tea.Msg {
		if manager == nil || result == nil {
			return DownloadDoneMsg{Err: fmt.Errorf("nothing to download")}
		}

		summary, err := manager.Run(ctx, result)
		return DownloadDoneMsg{
			Summary: summary,
			Err:     err,
		}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
