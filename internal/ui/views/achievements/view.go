package achievements

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "pomo/internal/modules/achievement/dto"
	"pomo/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AchievementPort interface {
	List(ctx context.Context) ([]achievementdto.Achievement, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Achievements []achievementdto.Achievement
	Err          error
}

// ReloadMsg asks the view to refetch after an Evaluate pass granted
// something new.
type ReloadMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type achievementItem struct {
	achievement achievementdto.Achievement
}

func (i achievementItem) Title() string {
	a := i.achievement
	marker := "○"
	if a.Unlocked {
		marker = "●"
	}
	return fmt.Sprintf("%s %s %s", marker, a.Icon, a.Name)
}

func (i achievementItem) Description() string {
	a := i.achievement
	return fmt.Sprintf("%s · %d pts", a.Rarity, a.Points)
}

func (i achievementItem) FilterValue() string { return i.achievement.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    AchievementPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	items   []achievementdto.Achievement
	loading bool
	width   int
	height  int
}

func New(port AchievementPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Mauve).BorderForeground(theme.Mauve)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Mauve)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Achievements"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Mauve)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
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
		m.resize()

	case ReloadMsg:
		return m, m.loadCmd()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Achievements — " + msg.Err.Error()
			return m, nil
		}
		m.items = msg.Achievements
		items := make([]list.Item, len(msg.Achievements))
		for i, a := range msg.Achievements {
			items[i] = achievementItem{achievement: a}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading achievements…")
	}

	listW := m.width * 45 / 100
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 45 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(achievementItem)
	if !ok {
		return theme.Muted.Render("Select an achievement to see details")
	}
	a := item.achievement

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(a.Icon+" "+a.Name) + "\n\n")
	sb.WriteString(a.Description + "\n\n")
	sb.WriteString(theme.Muted.Render("rarity:   ") + rarityStyle(a.Rarity).Render(a.Rarity) + "\n")
	sb.WriteString(theme.Muted.Render("points:   ") + fmt.Sprintf("%d", a.Points) + "\n")
	sb.WriteString(theme.Muted.Render("category: ") + a.Category + "\n")
	if a.Unlocked {
		when := ""
		if a.UnlockedAt != nil {
			when = " on " + a.UnlockedAt.Format("2006-01-02")
		}
		sb.WriteString("\n" + theme.Good.Render("unlocked"+when) + "\n")
	} else if a.Hidden {
		sb.WriteString("\n" + theme.Muted.Render("a secret achievement") + "\n")
	} else {
		sb.WriteString("\n" + theme.Muted.Render("locked") + "\n")
	}

	unlocked := 0
	for _, each := range m.items {
		if each.Unlocked {
			unlocked++
		}
	}
	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("%d / %d unlocked", unlocked, len(m.items))))
	return sb.String()
}

func rarityStyle(rarity string) lipgloss.Style {
	switch rarity {
	case "common":
		return theme.Muted
	case "uncommon":
		return theme.Good
	case "rare":
		return theme.Title
	case "epic":
		return lipgloss.NewStyle().Foreground(theme.Mauve).Bold(true)
	case "legendary":
		return theme.Hot
	case "mythic":
		return theme.Bad
	}
	return theme.Muted
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		achievements, err := m.port.List(context.Background())
		return LoadedMsg{Achievements: achievements, Err: err}
	}
}
