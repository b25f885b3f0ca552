package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "pomo/internal/modules/achievement/dto"
	backupdto "pomo/internal/modules/backup/dto"
	challengedto "pomo/internal/modules/challenge/dto"
	progressiondto "pomo/internal/modules/progression/dto"
	timerdto "pomo/internal/modules/timer/dto"
	"pomo/internal/ui/components"
	"pomo/internal/ui/theme"
	achievementsview "pomo/internal/ui/views/achievements"
	challengesview "pomo/internal/ui/views/challenges"
	statsview "pomo/internal/ui/views/stats"
	timerview "pomo/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type timerPort interface {
	Start(ctx context.Context, input timerdto.StartInput) (timerdto.StartOutput, error)
	Cancel(ctx context.Context) (timerdto.Session, error)
	Complete(ctx context.Context) (timerdto.CompleteOutput, error)
	ActiveSession(ctx context.Context) (*timerdto.Active, error)
	Stats(ctx context.Context) (timerdto.StatsOutput, error)
}

type progressionPort interface {
	Get(ctx context.Context) (progressiondto.PlayerOutput, error)
	Rollover(ctx context.Context) (progressiondto.RolloverOutput, error)
	UpdateSettings(ctx context.Context, settings progressiondto.Settings) (progressiondto.Settings, error)
	ActivatePowerup(ctx context.Context, kind string) error
}

type achievementPort interface {
	List(ctx context.Context) ([]achievementdto.Achievement, error)
}

type challengePort interface {
	Daily(ctx context.Context) ([]challengedto.Challenge, error)
	History(ctx context.Context) ([]challengedto.HistoryEntry, error)
}

type notifyPort interface {
	Test(ctx context.Context, name string) error
}

type backupPort interface {
	ExportToFile(ctx context.Context, path string) error
	ImportFromFile(ctx context.Context, path string) error
	Report(ctx context.Context, date string) (backupdto.Report, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabStats
	tabAchievements
	tabChallenges
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Stats", "Achievements", "Challenges"}

// ─── async messages ──────────────────────────────────────────────────────────

type rolloverDoneMsg struct {
	out progressiondto.RolloverOutput
	err error
}

type playerLoadedMsg struct {
	player progressiondto.PlayerOutput
	err    error
}

type powerupActivatedMsg struct {
	kind string
	err  error
}

type settingsSavedMsg struct {
	settings progressiondto.Settings
	err      error
}

type backupDoneMsg struct {
	action string
	path   string
	err    error
}

type reportDoneMsg struct {
	report backupdto.Report
	err    error
}

type pluginTestedMsg struct {
	name string
	err  error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Start    key.Binding
	Pause    key.Binding
	Cancel   key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start session"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel session"),
		),
		Palette: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Tab, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Palette},
		{k.Start, k.Pause, k.Cancel},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	progression progressionPort
	notify      notifyPort
	backup      backupPort

	timerView timerview.Model
	statsView statsview.Model
	achView   achievementsview.Model
	chalView  challengesview.Model

	player    progressiondto.PlayerOutput
	hasPlayer bool

	activeTab tabID
	keys      keyMap
	help      help.Model
	palette   components.Palette
	showHelp  bool
	status    string
	width     int
	height    int
}

func NewModel(
	timer timerPort,
	progression progressionPort,
	achievements achievementPort,
	challenges challengePort,
	notify notifyPort,
	backup backupPort,
) Model {
	return Model{
		progression: progression,
		notify:      notify,
		backup:      backup,
		timerView:   timerview.New(timer),
		statsView:   statsview.New(statsPortBridge{timer: timer, progression: progression}),
		achView:     achievementsview.New(achievements),
		chalView:    challengesview.New(challenges),
		activeTab:   tabTimer,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.rolloverCmd(),
		m.loadPlayerCmd(),
		m.timerView.Init(),
		m.statsView.Init(),
		m.achView.Init(),
		m.chalView.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case rolloverDoneMsg:
		if msg.err == nil && msg.out.StreakLost {
			m.status = "streak lost — start a session to begin a new one"
		}

	case playerLoadedMsg:
		if msg.err == nil {
			m.player = msg.player
			m.hasPlayer = true
		}

	// CompletedMsg is produced by the timer view but bubbles up through the
	// top level so every tab can refresh and the status bar can announce
	// the rewards.
	case timerview.CompletedMsg:
		if msg.Err != nil {
			m.status = "session settle failed: " + msg.Err.Error()
		} else {
			m.status = completionStatus(msg.Out)
			cmds = append(cmds,
				m.loadPlayerCmd(),
				reload(statsview.ReloadMsg{}),
				reload(achievementsview.ReloadMsg{}),
				reload(challengesview.ReloadMsg{}),
			)
		}
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err == nil && m.hasPlayer && m.player.Settings.AutoBreak {
			if next := nextAutoMode(msg.Out); next != "" {
				cmds = append(cmds, m.timerView.AutoAdvance(next))
			}
		}
		return m, tea.Batch(cmds...)

	case powerupActivatedMsg:
		if msg.err != nil {
			m.status = "powerup: " + msg.err.Error()
		} else {
			m.status = "activated " + strings.ReplaceAll(msg.kind, "_", " ")
			cmds = append(cmds, m.loadPlayerCmd(), reload(statsview.ReloadMsg{}))
		}

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("settings saved (goal %d, custom %dm)",
				msg.settings.DailyGoal, msg.settings.CustomMinutes)
		}

	case backupDoneMsg:
		if msg.err != nil {
			m.status = msg.action + " failed: " + msg.err.Error()
		} else {
			m.status = msg.action + " done: " + msg.path
			if msg.action == "import" {
				cmds = append(cmds,
					m.loadPlayerCmd(),
					reload(statsview.ReloadMsg{}),
					reload(achievementsview.ReloadMsg{}),
					reload(challengesview.ReloadMsg{}),
				)
			}
		}

	case reportDoneMsg:
		if msg.err != nil {
			m.status = "report failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("report written: %s (%d sessions, %dm)",
				msg.report.Path, msg.report.Sessions, msg.report.Minutes)
		}

	case pluginTestedMsg:
		if msg.err != nil {
			m.status = "plugin " + msg.name + ": " + msg.err.Error()
		} else {
			m.status = "plugin " + msg.name + " ok"
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view. The timer view
	// also gets every tick and lifecycle message regardless of tab so the
	// countdown keeps running in the background.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabAchievements:
		m.achView, tabCmd = m.achView.Update(msg)
	case tabChallenges:
		m.chalView, tabCmd = m.chalView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	if m.activeTab != tabTimer {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			var timerCmd tea.Cmd
			m.timerView, timerCmd = m.timerView.Update(msg)
			cmds = append(cmds, timerCmd)
		}
	}

	switch msg.(type) {
	case statsview.ReloadMsg, statsview.LoadedMsg:
		if m.activeTab != tabStats {
			var cmd tea.Cmd
			m.statsView, cmd = m.statsView.Update(msg)
			cmds = append(cmds, cmd)
		}
	case achievementsview.ReloadMsg, achievementsview.LoadedMsg:
		if m.activeTab != tabAchievements {
			var cmd tea.Cmd
			m.achView, cmd = m.achView.Update(msg)
			cmds = append(cmds, cmd)
		}
	case challengesview.ReloadMsg, challengesview.LoadedMsg:
		if m.activeTab != tabChallenges {
			var cmd tea.Cmd
			m.chalView, cmd = m.chalView.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabStats:
		return m.statsView.View()
	case tabAchievements:
		return m.achView.View()
	case tabChallenges:
		return m.chalView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "pomo  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasPlayer {
		p := m.player.Profile
		left = theme.Hot.Render(fmt.Sprintf("lv%d", p.Level)) + "  " +
			theme.Good.Render(fmt.Sprintf("🔥%d", p.CurrentStreak)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:start":
		mode := ""
		if len(parts) >= 2 {
			mode = parts[1]
		}
		m.activeTab = tabTimer
		return m, m.timerView.StartMode(mode)

	case "timer:cancel":
		m.activeTab = tabTimer
		return m, m.timerView.CancelRun()

	case "powerup:activate":
		if len(parts) < 2 {
			m.status = "usage: powerup:activate <xp_boost|double_points|shield>"
			return m, nil
		}
		return m, m.activatePowerupCmd(parts[1])

	case "settings:goal", "settings:custom", "settings:autobreak":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <value>"
			return m, nil
		}
		return m, m.updateSettingCmd(parts[0], parts[1])

	case "data:export":
		if len(parts) < 2 {
			m.status = "usage: data:export <path>"
			return m, nil
		}
		return m, m.exportCmd(parts[1])

	case "data:import":
		if len(parts) < 2 {
			m.status = "usage: data:import <path>"
			return m, nil
		}
		return m, m.importCmd(parts[1])

	case "report":
		date := ""
		if len(parts) >= 2 {
			date = parts[1]
		}
		return m, m.reportCmd(date)

	case "plugin:test":
		if len(parts) < 2 {
			m.status = "usage: plugin:test <name>"
			return m, nil
		}
		return m, m.pluginTestCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	if m.activeTab == tabAchievements {
		return m.achView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.achView, _ = m.achView.Update(sz)
	m.chalView, _ = m.chalView.Update(sz)
}

func completionStatus(out timerdto.CompleteOutput) string {
	pieces := []string{fmt.Sprintf("+%d XP", out.XPEarned)}
	for _, up := range out.LevelUps {
		pieces = append(pieces, fmt.Sprintf("level %d!", up.Level))
	}
	if len(out.Unlocked) > 0 {
		pieces = append(pieces, fmt.Sprintf("%d achievement(s)", len(out.Unlocked)))
	}
	if len(out.ChallengesDone) > 0 {
		pieces = append(pieces, fmt.Sprintf("%d challenge(s)", len(out.ChallengesDone)))
	}
	return "session complete: " + strings.Join(pieces, "  ")
}

// nextAutoMode picks what auto-break should start after a finished run:
// the suggested break after focus, focus again after a break.
func nextAutoMode(out timerdto.CompleteOutput) string {
	if out.NextBreak != "" {
		return out.NextBreak
	}
	switch out.Session.Mode {
	case "short_break", "long_break":
		return "focus"
	}
	return ""
}

func reload(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) rolloverCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progression.Rollover(context.Background())
		return rolloverDoneMsg{out: out, err: err}
	}
}

func (m Model) loadPlayerCmd() tea.Cmd {
	return func() tea.Msg {
		player, err := m.progression.Get(context.Background())
		return playerLoadedMsg{player: player, err: err}
	}
}

func (m Model) activatePowerupCmd(kind string) tea.Cmd {
	return func() tea.Msg {
		err := m.progression.ActivatePowerup(context.Background(), kind)
		return powerupActivatedMsg{kind: kind, err: err}
	}
}

func (m Model) updateSettingCmd(command, value string) tea.Cmd {
	return func() tea.Msg {
		player, err := m.progression.Get(context.Background())
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		settings := player.Settings
		switch command {
		case "settings:goal":
			goal, convErr := strconv.Atoi(value)
			if convErr != nil {
				return settingsSavedMsg{err: convErr}
			}
			settings.DailyGoal = goal
		case "settings:custom":
			minutes, convErr := strconv.Atoi(value)
			if convErr != nil {
				return settingsSavedMsg{err: convErr}
			}
			settings.CustomMinutes = minutes
		case "settings:autobreak":
			settings.AutoBreak = value == "on"
		}
		saved, err := m.progression.UpdateSettings(context.Background(), settings)
		return settingsSavedMsg{settings: saved, err: err}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		err := m.backup.ExportToFile(context.Background(), path)
		return backupDoneMsg{action: "export", path: path, err: err}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		err := m.backup.ImportFromFile(context.Background(), path)
		return backupDoneMsg{action: "import", path: path, err: err}
	}
}

func (m Model) reportCmd(date string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.backup.Report(context.Background(), date)
		return reportDoneMsg{report: report, err: err}
	}
}

func (m Model) pluginTestCmd(name string) tea.Cmd {
	return func() tea.Msg {
		err := m.notify.Test(context.Background(), name)
		return pluginTestedMsg{name: name, err: err}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────
// Each bridge narrows broad ports to the minimal interface needed by a
// specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type statsPortBridge struct {
	timer       timerPort
	progression progressionPort
}

func (b statsPortBridge) Stats(ctx context.Context) (timerdto.StatsOutput, error) {
	return b.timer.Stats(ctx)
}

func (b statsPortBridge) Player(ctx context.Context) (progressiondto.PlayerOutput, error) {
	return b.progression.Get(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
