package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressiondto "pomo/internal/modules/progression/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	Stats(ctx context.Context) (timerdto.StatsOutput, error)
	Player(ctx context.Context) (progressiondto.PlayerOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Stats  timerdto.StatsOutput
	Player progressiondto.PlayerOutput
	Err    error
}

// ReloadMsg asks the view to refetch. The app model sends it after a
// session settles so the numbers stay current.
type ReloadMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    StatsPort
	spinner spinner.Model
	stats   timerdto.StatsOutput
	player  progressiondto.PlayerOutput
	loading bool
	errLine string
	width   int
	height  int
}

func New(port StatsPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ReloadMsg:
		return m, m.loadCmd()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		m.stats = msg.Stats
		m.player = msg.Player

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading stats…")
	}
	if m.errLine != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("stats: "+m.errLine))
	}

	profileW := m.width * 4 / 10
	chartW := m.width - profileW

	profilePane := lipgloss.NewStyle().
		Width(profileW - 2).
		Height(m.height - 2).
		Render(theme.Pane.Render(m.renderProfile()))

	chartPane := lipgloss.NewStyle().
		Width(chartW - 2).
		Height(m.height - 2).
		Render(theme.Pane.Render(m.renderChart()))

	return lipgloss.JoinHorizontal(lipgloss.Top, profilePane, chartPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderProfile() string {
	p := m.player.Profile
	inv := m.player.Inventory

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Level %d — %s", p.Level, p.Title)) + "\n")
	if p.Subtitle != "" {
		sb.WriteString(theme.Muted.Render(p.Subtitle) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(xpBar(p.XP, p.XPToNext, 24) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d / %d XP to next level", p.XP, p.XPToNext)) + "\n\n")

	sb.WriteString(theme.Muted.Render("streak:   ") + theme.Hot.Render(fmt.Sprintf("%d days", p.CurrentStreak)))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  (best %d)", p.BestStreak)) + "\n")
	sb.WriteString(theme.Muted.Render("sessions: ") + fmt.Sprintf("%d", p.TotalSessions) + "\n")
	sb.WriteString(theme.Muted.Render("focus:    ") + formatFocus(p.TotalFocusSeconds) + "\n")
	sb.WriteString(theme.Muted.Render("points:   ") + fmt.Sprintf("%d", p.AchievementPoints) + "\n\n")

	sb.WriteString(theme.Hot.Render("⛁") + fmt.Sprintf(" %d coins   ", inv.Coins))
	sb.WriteString(theme.Title.Render("◈") + fmt.Sprintf(" %d gems\n", inv.Gems))
	for kind, pw := range inv.Powerups {
		if pw.Count > 0 {
			sb.WriteString(theme.Muted.Render("  "+strings.ReplaceAll(kind, "_", " ")) + fmt.Sprintf(" ×%d\n", pw.Count))
		}
	}
	for _, effect := range inv.ActiveEffects {
		sb.WriteString(theme.Good.Render("● "+strings.ReplaceAll(effect, "_", " ")+" active") + "\n")
	}
	return sb.String()
}

func (m Model) renderChart() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Last 7 days") + "\n\n")

	maxMinutes := 1
	for _, day := range m.stats.Last7Days {
		if day.FocusMinutes > maxMinutes {
			maxMinutes = day.FocusMinutes
		}
	}
	barMax := m.width/2 - 24
	if barMax < 10 {
		barMax = 10
	}
	for _, day := range m.stats.Last7Days {
		barLen := day.FocusMinutes * barMax / maxMinutes
		bar := strings.Repeat("█", barLen)
		sb.WriteString(fmt.Sprintf("%s  %s %s\n",
			theme.Muted.Render(day.Day[5:]),
			lipgloss.NewStyle().Foreground(theme.Sapphire).Render(bar),
			theme.Muted.Render(fmt.Sprintf("%dm · %d sessions", day.FocusMinutes, day.Sessions))))
	}

	sb.WriteString("\n" + theme.Title.Render("Today") + "\n")
	sb.WriteString(fmt.Sprintf("  %d sessions · %d focus minutes\n",
		m.stats.Today.Sessions, m.stats.Today.FocusMinutes))

	sb.WriteString("\n" + theme.Title.Render("All time") + "\n")
	sb.WriteString(fmt.Sprintf("  %d sessions · %s\n",
		m.stats.AllTime.Sessions, formatFocus(m.stats.AllTime.FocusMinutes*60)))

	sb.WriteString("\n" + theme.Muted.Render("r: refresh"))
	return sb.String()
}

func xpBar(xp, toNext, width int) string {
	if toNext <= 0 {
		toNext = 1
	}
	filled := xp * width / toNext
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return lipgloss.NewStyle().Foreground(theme.Green).Render(bar)
}

func formatFocus(seconds int) string {
	hours := seconds / 3600
	minutes := seconds % 3600 / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.port.Stats(context.Background())
		if err != nil {
			return LoadedMsg{Err: err}
		}
		player, err := m.port.Player(context.Background())
		return LoadedMsg{Stats: stats, Player: player, Err: err}
	}
}
