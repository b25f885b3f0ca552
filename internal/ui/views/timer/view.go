package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/modules/timer/domain"
	timerdto "pomo/internal/modules/timer/dto"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context, input timerdto.StartInput) (timerdto.StartOutput, error)
	Cancel(ctx context.Context) (timerdto.Session, error)
	Complete(ctx context.Context) (timerdto.CompleteOutput, error)
	ActiveSession(ctx context.Context) (*timerdto.Active, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StartedMsg struct {
	Out timerdto.StartOutput
	Err error
}

// CompletedMsg bubbles up through the app model so the other tabs can
// refresh and the status bar can announce the rewards.
type CompletedMsg struct {
	Out timerdto.CompleteOutput
	Err error
}

type CancelledMsg struct {
	Session timerdto.Session
	Err     error
}

// ActiveRecoveredMsg carries an interrupted session found on startup.
type ActiveRecoveredMsg struct {
	Active *timerdto.Active
	Err    error
}

type tickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

var modeOrder = []domain.Mode{
	domain.ModeFocus,
	domain.ModeShortBreak,
	domain.ModeLongBreak,
	domain.ModeCustom,
}

var modeLabels = map[domain.Mode]string{
	domain.ModeFocus:      "Focus",
	domain.ModeShortBreak: "Short Break",
	domain.ModeLongBreak:  "Long Break",
	domain.ModeCustom:     "Custom",
}

type Model struct {
	port    TimerPort
	machine domain.Machine
	bar     progress.Model
	mode    domain.Mode
	result  *timerdto.CompleteOutput
	errLine string
	width   int
	height  int
}

func New(port TimerPort) Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	bar.ShowPercentage = false
	return Model{
		port:    port,
		machine: domain.NewMachine(),
		bar:     bar,
		mode:    domain.ModeFocus,
	}
}

func (m Model) Init() tea.Cmd {
	return m.recoverActiveCmd()
}

// Running reports whether a countdown is currently ticking or paused.
// The app model uses it to warn before quitting mid-session.
func (m Model) Running() bool {
	return m.machine.State == domain.StateRunning || m.machine.State == domain.StatePaused
}

// StartMode arms a run in the given mode from the command palette.
func (m *Model) StartMode(mode string) tea.Cmd {
	if m.machine.State != domain.StateIdle {
		m.errLine = "a session is already running"
		return nil
	}
	return m.startCmd(mode)
}

// AutoAdvance dismisses a finished run and immediately starts the next
// mode. The app model calls it when auto-break is enabled.
func (m *Model) AutoAdvance(mode string) tea.Cmd {
	if !m.machine.Acknowledge() {
		return nil
	}
	m.result = nil
	return m.startCmd(mode)
}

// CancelRun abandons the active run from the command palette.
func (m *Model) CancelRun() tea.Cmd {
	if !m.machine.Cancel() {
		m.errLine = "nothing to cancel"
		return nil
	}
	return m.cancelCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := m.width - 16
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		m.bar.Width = w

	case ActiveRecoveredMsg:
		if msg.Err != nil || msg.Active == nil {
			return m, nil
		}
		// Resume the countdown where the previous process left it. A run
		// whose time fully elapsed while we were gone settles immediately.
		elapsed := int(time.Since(msg.Active.StartedAt).Seconds())
		remaining := msg.Active.TotalSeconds - elapsed
		m.machine.Start(domain.Mode(msg.Active.Mode), msg.Active.TotalSeconds, msg.Active.SessionID)
		if remaining <= 0 {
			return m, m.completeCmd()
		}
		m.machine.Remaining = remaining
		m.mode = domain.Mode(msg.Active.Mode)
		return m, m.tick()

	case StartedMsg:
		if msg.Err != nil {
			m.errLine = startErrLine(msg.Err)
			return m, nil
		}
		m.errLine = ""
		m.result = nil
		m.machine.Start(domain.Mode(msg.Out.Mode), msg.Out.DurationSeconds, msg.Out.SessionID)
		return m, m.tick()

	case CancelledMsg:
		if msg.Err != nil {
			m.errLine = "cancel failed: " + msg.Err.Error()
		}
		return m, nil

	case CompletedMsg:
		if msg.Err != nil {
			m.errLine = "complete failed: " + msg.Err.Error()
			m.machine.Acknowledge()
			return m, nil
		}
		out := msg.Out
		m.result = &out
		return m, nil

	case tickMsg:
		if m.machine.State != domain.StateRunning {
			return m, nil
		}
		if finished := m.machine.Tick(); finished {
			return m, m.completeCmd()
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if m.machine.State == domain.StateIdle {
			m.errLine = ""
			return m, m.startCmd(string(m.mode))
		}
	case " ":
		if !m.machine.Pause() {
			if m.machine.Resume() {
				// The paused state swallowed the pending tick, so the
				// chain has to be restarted here.
				return m, m.tick()
			}
		}
	case "c":
		if m.machine.Cancel() {
			return m, m.cancelCmd()
		}
	case "m":
		if m.machine.State == domain.StateIdle {
			m.mode = nextMode(m.mode)
		}
	case "enter", "esc":
		if m.machine.State == domain.StateCompleted {
			m.machine.Acknowledge()
			m.result = nil
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var body string
	switch m.machine.State {
	case domain.StateIdle:
		body = m.renderIdle()
	case domain.StateRunning, domain.StatePaused:
		body = m.renderCountdown()
	case domain.StateCompleted:
		body = m.renderResult()
	}
	if m.errLine != "" {
		body += "\n\n" + theme.Bad.Render(m.errLine)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderIdle() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Ready") + "\n\n")
	sb.WriteString("mode: " + theme.Hot.Render(modeLabels[m.mode]) + "\n\n")
	sb.WriteString(theme.Muted.Render("s: start  m: mode  tab: switch view"))
	return theme.Pane.Render(sb.String())
}

func (m Model) renderCountdown() string {
	var sb strings.Builder
	label := modeLabels[m.machine.Mode]
	if m.machine.State == domain.StatePaused {
		sb.WriteString(theme.Warn.Render(label+" — paused") + "\n\n")
	} else {
		sb.WriteString(theme.Title.Render(label) + "\n\n")
	}
	sb.WriteString(theme.Clock.Render(formatRemaining(m.machine.Remaining)) + "\n\n")

	pct := 0.0
	if m.machine.TotalSeconds > 0 {
		pct = float64(m.machine.Elapsed()) / float64(m.machine.TotalSeconds)
	}
	sb.WriteString(m.bar.ViewAs(pct) + "\n\n")
	sb.WriteString(theme.Muted.Render("space: pause/resume  c: cancel"))
	return theme.PaneActive.Render(sb.String())
}

func (m Model) renderResult() string {
	var sb strings.Builder
	sb.WriteString(theme.Good.Render("Session complete!") + "\n\n")
	if m.result == nil {
		sb.WriteString(theme.Muted.Render("settling…"))
		return theme.Pane.Render(sb.String())
	}
	r := m.result
	if r.XPEarned > 0 {
		sb.WriteString(fmt.Sprintf("%s  +%d XP\n", theme.Hot.Render("★"), r.XPEarned))
	}
	for _, up := range r.LevelUps {
		sb.WriteString(fmt.Sprintf("%s  Level %d — %s\n", theme.Good.Render("▲"), up.Level, up.Title))
	}
	for _, u := range r.Unlocked {
		sb.WriteString(fmt.Sprintf("%s  %s (%s)\n", theme.Hot.Render("◆"), u.Name, u.Rarity))
	}
	for _, c := range r.ChallengesDone {
		sb.WriteString(fmt.Sprintf("%s  %s +%d XP\n", theme.Good.Render("✔"), c.Name, c.XPReward+c.Bonus))
	}
	if r.StreakExtended {
		sb.WriteString(fmt.Sprintf("%s  streak: %d days\n", theme.Hot.Render("🔥"), r.StreakAfter))
	}
	if r.NextBreak != "" {
		sb.WriteString("\n" + theme.Muted.Render("up next: "+strings.ReplaceAll(r.NextBreak, "_", " ")) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: dismiss"))
	return theme.PaneActive.Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func nextMode(mode domain.Mode) domain.Mode {
	for i, candidate := range modeOrder {
		if candidate == mode {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return domain.ModeFocus
}

func formatRemaining(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func startErrLine(err error) string {
	if err == apperrors.ErrActiveSessionExists {
		return "a session is already active"
	}
	if err == apperrors.ErrInvalidInput {
		return "unknown timer mode"
	}
	return "start failed: " + err.Error()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) startCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Start(context.Background(), timerdto.StartInput{Mode: mode})
		return StartedMsg{Out: out, Err: err}
	}
}

func (m Model) cancelCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Cancel(context.Background())
		return CancelledMsg{Session: session, Err: err}
	}
}

func (m Model) completeCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Complete(context.Background())
		return CompletedMsg{Out: out, Err: err}
	}
}

func (m Model) recoverActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.port.ActiveSession(context.Background())
		return ActiveRecoveredMsg{Active: active, Err: err}
	}
}
