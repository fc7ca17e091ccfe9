package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panothumb/internal/batch"
	"panothumb/internal/thumbnail"
)

type Model struct {
	updates   <-chan batch.ProgressUpdate
	started   time.Time
	width     int
	total     int
	active    int
	done      int
	processed int
	failed    int
	interrupt func()
	stopping  bool
	quitting  bool
}

type doneMsg struct{}

type updateMsg batch.ProgressUpdate

// NewModel renders progress for total files fed through updates. The
// program quits once updates is closed. interrupt, if set, is called on
// ctrl+c; the view keeps running until in-flight files finish.
func NewModel(updates <-chan batch.ProgressUpdate, total int, interrupt func()) Model {
	return Model{updates: updates, total: total, interrupt: interrupt, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		update := batch.ProgressUpdate(msg)
		switch update.Kind {
		case batch.EventStarted:
			m.active++
		case batch.EventFinished:
			m.active--
			m.done++
			if update.Outcome == thumbnail.Succeeded {
				m.processed++
			} else {
				m.failed++
			}
		}
		lines := EventLines(update)
		return m, tea.Sequence(tea.Println(strings.Join(lines, "\n")), listenForUpdates(m.updates))
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && !m.stopping {
			m.stopping = true
			if m.interrupt != nil {
				m.interrupt()
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1, float64(m.done)/float64(m.total))
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("panothumb"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.done, m.total)) +
			dimStyle.Render(fmt.Sprintf("  in progress:%d", m.active)),
		successStyle.Render(fmt.Sprintf("Thumbnailed: %d", m.processed)) +
			warnStyle.Render(fmt.Sprintf("  skipped:%d", m.failed)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}
	if m.stopping {
		lines = append(lines, warnStyle.Render("Stopping after files in progress..."))
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan batch.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle     = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarn)
)
