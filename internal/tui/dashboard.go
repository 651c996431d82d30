package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status represents the dashboard state.
type Status int

const (
	StatusIdle Status = iota
	StatusIndexing
	StatusQuerying
	StatusPaused
	StatusStopped
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusIndexing:
		return "Indexing"
	case StatusQuerying:
		return "Querying"
	case StatusPaused:
		return "Paused"
	case StatusStopped:
		return "Stopped"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// LogEntry represents a log message.
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
}

// Dashboard is the main TUI model.
type Dashboard struct {
	width  int
	height int

	status    Status
	stats     *Stats
	statsView *StatsView
	progress  *ProgressView
	spinner   *SpinnerProgress

	logs    []LogEntry
	maxLogs int

	corpusPath string

	tickCount int
}

// NewDashboard creates a new dashboard instance.
func NewDashboard() *Dashboard {
	return &Dashboard{
		width:     80,
		height:    24,
		status:    StatusIdle,
		stats:     NewStats(),
		statsView: NewStatsView(40, 15),
		progress:  NewProgressView(70),
		spinner:   NewSpinnerProgress(),
		logs:      make([]LogEntry, 0, 100),
		maxLogs:   50,
	}
}

// SetCorpusPath sets the corpus path to display in the header.
func (d *Dashboard) SetCorpusPath(path string) {
	d.corpusPath = path
}

// AddLog adds a log entry.
func (d *Dashboard) AddLog(level, message string) {
	entry := LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	}

	d.logs = append(d.logs, entry)

	if len(d.logs) > d.maxLogs {
		d.logs = d.logs[len(d.logs)-d.maxLogs:]
	}
}

// GetStats returns the stats for external updates.
func (d *Dashboard) GetStats() *Stats {
	return d.stats
}

// StartIndexing marks the dashboard as indexing a corpus.
func (d *Dashboard) StartIndexing() {
	d.status = StatusIndexing
	d.spinner.Start()
	d.AddLog("INFO", "indexing started")
}

// StartQuerying marks the dashboard as running queries against the index.
func (d *Dashboard) StartQuerying() {
	d.status = StatusQuerying
	d.spinner.Start()
	d.AddLog("INFO", "querying started")
}

// Pause pauses the run.
func (d *Dashboard) Pause() {
	d.status = StatusPaused
	d.spinner.Stop()
	d.AddLog("INFO", "paused")
}

// Resume resumes the run.
func (d *Dashboard) Resume() {
	d.status = StatusIndexing
	d.spinner.Start()
	d.AddLog("INFO", "resumed")
}

// Stop stops the run.
func (d *Dashboard) Stop() {
	d.status = StatusStopped
	d.spinner.Stop()
	d.AddLog("INFO", "stopped")
}

// Complete marks the run as complete.
func (d *Dashboard) Complete() {
	d.status = StatusCompleted
	d.spinner.Stop()
	d.AddLog("INFO", "completed")
}

// --- Bubbletea Model interface ---

// TickMsg is sent on each animation tick.
type TickMsg time.Time

// StatsUpdateMsg is sent when stats should be updated.
type StatsUpdateMsg struct{}

// Init initializes the model.
func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return d, tea.Quit
		case "p":
			if d.status == StatusIndexing || d.status == StatusQuerying {
				d.Pause()
			} else if d.status == StatusPaused {
				d.Resume()
			}
		case "r":
			if d.status == StatusPaused || d.status == StatusStopped {
				d.Resume()
			}
		case "s":
			if d.status == StatusIndexing || d.status == StatusQuerying || d.status == StatusPaused {
				d.Stop()
			}
		}

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.statsView.SetSize(d.width/3, d.height-10)
		d.progress.SetSize(d.width - 4)

	case TickMsg:
		d.tickCount++
		d.spinner.Tick()

		snap := d.stats.Snapshot()
		eta := formatDuration(snap.ETA)
		d.progress.Update(snap.CompletedDocs, snap.TotalDocuments, eta)

		return d, tickCmd()
	}

	return d, nil
}

// View renders the dashboard.
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(d.renderHeader())
	b.WriteString("\n")

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		d.renderStatsPanel(),
		d.renderLogPanel(),
	)
	b.WriteString(mainContent)
	b.WriteString("\n")

	b.WriteString(d.renderProgress())
	b.WriteString("\n")

	b.WriteString(d.renderFooter())

	return b.String()
}

func (d *Dashboard) renderHeader() string {
	title := TitleStyle.Render("⚡ lshkit")

	var statusText string
	switch d.status {
	case StatusIndexing:
		statusText = RunningStyle.Render("● INDEXING")
	case StatusQuerying:
		statusText = RunningStyle.Render("● QUERYING")
	case StatusPaused:
		statusText = PausedStyle.Render("⏸ PAUSED")
	case StatusStopped:
		statusText = StoppedStyle.Render("■ STOPPED")
	case StatusCompleted:
		statusText = SuccessStyle.Render("✓ COMPLETED")
	default:
		statusText = HelpStyle.Render("○ IDLE")
	}

	corpus := ""
	if d.corpusPath != "" {
		corpus = LabelStyle.Render("Corpus: ") + InfoStyle.Render(d.corpusPath)
	}

	leftSide := title + "  " + statusText
	rightSide := corpus

	padding := d.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if padding < 0 {
		padding = 0
	}

	header := leftSide + strings.Repeat(" ", padding) + rightSide

	return BoxStyle.Width(d.width - 2).Render(header)
}

func (d *Dashboard) renderStatsPanel() string {
	snap := d.stats.Snapshot()
	return d.statsView.Render(snap)
}

func (d *Dashboard) renderLogPanel() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("📝 Activity Log"))
	b.WriteString("\n\n")

	startIdx := 0
	if len(d.logs) > 8 {
		startIdx = len(d.logs) - 8
	}

	for i := startIdx; i < len(d.logs); i++ {
		log := d.logs[i]

		timeStr := log.Time.Format("15:04:05")

		var levelStyle lipgloss.Style
		switch log.Level {
		case "ERROR":
			levelStyle = ErrorStyle
		case "WARN":
			levelStyle = WarningStyle
		case "INFO":
			levelStyle = InfoStyle
		default:
			levelStyle = HelpStyle
		}

		line := fmt.Sprintf("%s %s %s",
			HelpStyle.Render(timeStr),
			levelStyle.Render(fmt.Sprintf("%-5s", log.Level)),
			log.Message,
		)

		if len(line) > d.width/2-10 {
			line = line[:d.width/2-13] + "..."
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return LogPanelStyle.Width(d.width/2 - 4).Render(b.String())
}

func (d *Dashboard) renderProgress() string {
	return d.progress.Render()
}

func (d *Dashboard) renderFooter() string {
	var helps []string

	if d.status == StatusIndexing || d.status == StatusQuerying {
		helps = append(helps, RenderHelp("p", "pause"))
		helps = append(helps, RenderHelp("s", "stop"))
	} else if d.status == StatusPaused {
		helps = append(helps, RenderHelp("r", "resume"))
		helps = append(helps, RenderHelp("s", "stop"))
	} else if d.status == StatusStopped {
		helps = append(helps, RenderHelp("r", "start"))
	}

	helps = append(helps, RenderHelp("q", "quit"))

	return FooterStyle.Render(strings.Join(helps, "  "))
}

// Run starts the TUI application.
func Run(d *Dashboard) error {
	p := tea.NewProgram(d, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunWithProgram returns the tea.Program for external control.
func RunWithProgram(d *Dashboard) *tea.Program {
	return tea.NewProgram(d, tea.WithAltScreen())
}
