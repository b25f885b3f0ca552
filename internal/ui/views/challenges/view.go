package challenges

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	challengedto "pomo/internal/modules/challenge/dto"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChallengePort interface {
	Daily(ctx context.Context) ([]challengedto.Challenge, error)
	History(ctx context.Context) ([]challengedto.HistoryEntry, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Daily   []challengedto.Challenge
	History []challengedto.HistoryEntry
	Err     error
}

// ReloadMsg asks the view to refetch after a session settled.
type ReloadMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ChallengePort
	history viewport.Model
	spinner spinner.Model
	daily   []challengedto.Challenge
	loading bool
	errLine string
	width   int
	height  int
}

func New(port ChallengePort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{port: port, history: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.Width = m.width/2 - 4
		m.history.Height = m.height - 4

	case ReloadMsg:
		return m, m.loadCmd()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		m.daily = msg.Daily
		m.history.SetContent(renderHistory(msg.History))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.loadCmd()
		}
	}

	if !m.loading {
		var vCmd tea.Cmd
		m.history, vCmd = m.history.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading challenges…")
	}
	if m.errLine != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("challenges: "+m.errLine))
	}

	dailyW := m.width / 2
	historyW := m.width - dailyW

	dailyPane := lipgloss.NewStyle().
		Width(dailyW - 2).
		Height(m.height - 2).
		Render(theme.Pane.Render(m.renderDaily()))

	historyPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(historyW - 2).
		Height(m.height - 2).
		Render(m.history.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, dailyPane, historyPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderDaily() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today's challenges") + "\n\n")
	if len(m.daily) == 0 {
		sb.WriteString(theme.Muted.Render("none for today"))
		return sb.String()
	}
	for _, c := range m.daily {
		marker := theme.Muted.Render("○")
		if c.Completed {
			marker = theme.Good.Render("✔")
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n", marker, c.Icon, theme.Hot.Render(c.Title)))
		sb.WriteString("   " + theme.Muted.Render(c.Description) + "\n")
		sb.WriteString(fmt.Sprintf("   %s  %s\n",
			progressLine(c.Progress, c.Goal, c.Unit),
			theme.Muted.Render(fmt.Sprintf("+%d XP · %s", c.XPReward, c.Difficulty))))
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Muted.Render("r: refresh"))
	return sb.String()
}

func progressLine(progress, goal int, unit string) string {
	if goal <= 0 {
		goal = 1
	}
	done := progress
	if done > goal {
		done = goal
	}
	const width = 12
	filled := done * width / goal
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	label := fmt.Sprintf("%d/%d", progress, goal)
	if unit != "" {
		label += " " + unit
	}
	style := theme.Warn
	if done == goal {
		style = theme.Good
	}
	return style.Render(bar) + " " + label
}

func renderHistory(entries []challengedto.HistoryEntry) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("History") + "\n\n")
	if len(entries) == 0 {
		sb.WriteString(theme.Muted.Render("no completed challenges yet"))
		return sb.String()
	}
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%s  %s %s\n",
			theme.Muted.Render(entry.CompletedAt.Format("2006-01-02")),
			entry.Title,
			theme.Good.Render(fmt.Sprintf("+%d XP", entry.XPEarned))))
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		daily, err := m.port.Daily(context.Background())
		if err != nil {
			return LoadedMsg{Err: err}
		}
		history, err := m.port.History(context.Background())
		return LoadedMsg{Daily: daily, History: history, Err: err}
	}
}
