package domain

import (
	"time"

	"pomo/internal/platform/random"
)

const SchemaVersion = 1

// XP thresholds follow the flat rule: every level is cleared after 100
// XP, so the cumulative cost of reaching level N is (N-1)*100. One award
// can cross several levels in a row.
const XPPerLevel = 100

// CumulativeXP is the total XP consumed on the way to the given level
// from level one.
func CumulativeXP(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * XPPerLevel
}

// StreakMultiplier scales session XP by streak length. Thresholds are
// exclusive and the higher one wins.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 7:
		return 1.5
	case streak >= 3:
		return 1.25
	default:
		return 1.0
	}
}

type TitleEntry struct {
	MinLevel int
	Title    string
	Subtitle string
}

// Titles is ordered by MinLevel ascending; the highest entry at or below
// the current level applies.
var Titles = []TitleEntry{
	{1, "Novice", "The road begins"},
	{2, "Apprentice", "Chasing excellence"},
	{3, "Warrior", "Ready for battle"},
	{5, "Fighter", "The fight goes on"},
	{8, "Blade", "Lethal precision"},
	{12, "Knight", "Honor and duty"},
	{16, "Hero", "A living tale"},
	{20, "Legend", "Immortalized"},
	{25, "Master", "Mind over matter"},
	{30, "Champion", "Unrivaled"},
	{40, "Icon", "Endless inspiration"},
	{50, "Ascendant", "The perfect form"},
}

func TitleForLevel(level int) TitleEntry {
	entry := Titles[0]
	for _, t := range Titles {
		if level >= t.MinLevel {
			entry = t
		}
	}
	return entry
}

type Profile struct {
	Level             int                  `json:"level"`
	XP                int                  `json:"xp"`
	TotalXP           int                  `json:"total_xp"`
	TotalFocusSeconds int                  `json:"total_focus_seconds"`
	TotalSessions     int                  `json:"total_sessions"`
	CurrentStreak     int                  `json:"current_streak"`
	BestStreak        int                  `json:"best_streak"`
	LongestStreak     int                  `json:"longest_streak"`
	Title             string               `json:"title"`
	Subtitle          string               `json:"subtitle"`
	AchievementIDs    []string             `json:"achievement_ids"`
	AchievementPoints int                  `json:"achievement_points"`
	UnlockedAt        map[string]time.Time `json:"unlocked_at"`
	LastActiveDate    string               `json:"last_active_date"`
}

func DefaultProfile() Profile {
	entry := TitleForLevel(1)
	return Profile{
		Level:          1,
		Title:          entry.Title,
		Subtitle:       entry.Subtitle,
		AchievementIDs: []string{},
		UnlockedAt:     map[string]time.Time{},
	}
}

// Normalize repairs a profile loaded from disk so downstream rules never
// see zero levels or nil collections.
func (p *Profile) Normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.AchievementIDs == nil {
		p.AchievementIDs = []string{}
	}
	if p.UnlockedAt == nil {
		p.UnlockedAt = map[string]time.Time{}
	}
	if p.Title == "" {
		entry := TitleForLevel(p.Level)
		p.Title = entry.Title
		p.Subtitle = entry.Subtitle
	}
}

type LevelUp struct {
	Level        int
	Title        string
	Subtitle     string
	Coins        int
	Gems         int
	BonusPowerup string
}

// bonusPowerupChance is rolled once per level gained.
const bonusPowerupChance = 0.3

// ApplyXP credits base XP through the streak multiplier (and the double-XP
// effect when active), floors the result, and consumes thresholds until the
// remaining XP no longer clears the current level.
func (p *Profile) ApplyXP(base int, doubleXP bool, roll random.Source) (int, []LevelUp) {
	if base <= 0 {
		return 0, nil
	}
	amount := float64(base) * StreakMultiplier(p.CurrentStreak)
	if doubleXP {
		amount *= 2
	}
	return p.credit(int(amount), roll)
}

// ApplyFlatXP credits an amount that already carries its own scaling, such
// as a challenge reward. Session multipliers do not re-apply.
func (p *Profile) ApplyFlatXP(amount int, roll random.Source) (int, []LevelUp) {
	if amount <= 0 {
		return 0, nil
	}
	return p.credit(amount, roll)
}

func (p *Profile) credit(applied int, roll random.Source) (int, []LevelUp) {
	p.XP += applied
	p.TotalXP += applied

	var ups []LevelUp
	for p.XP >= XPPerLevel {
		p.XP -= XPPerLevel
		p.Level++
		entry := TitleForLevel(p.Level)
		p.Title = entry.Title
		p.Subtitle = entry.Subtitle

		up := LevelUp{Level: p.Level, Title: entry.Title, Subtitle: entry.Subtitle, Coins: 20}
		if p.Level%5 == 0 {
			up.Coins = 50
			up.Gems = 5
		}
		if roll != nil && roll.Float64() < bonusPowerupChance {
			up.BonusPowerup = PowerupXPBoost
		}
		ups = append(ups, up)
	}
	return applied, ups
}

// CreditDay applies the active streak rule on session completion. The
// same-day call is idempotent; yesterday extends the streak; any other
// last-active value (a gap, or a first-ever session) restarts at one.
func (p *Profile) CreditDay(today, yesterday string) {
	switch p.LastActiveDate {
	case today:
		return
	case yesterday:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.BestStreak {
		p.BestStreak = p.CurrentStreak
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastActiveDate = today
}

// RolloverDay applies the passive rule on app start. It only decays: a gap
// of two or more days zeroes the streak. It never credits a day and never
// advances LastActiveDate, so a streak extended today survives a restart.
func (p *Profile) RolloverDay(today, yesterday string) bool {
	if p.LastActiveDate == "" || p.LastActiveDate == today || p.LastActiveDate == yesterday {
		return false
	}
	if p.CurrentStreak == 0 {
		return false
	}
	p.CurrentStreak = 0
	return true
}

func (p *Profile) HasAchievement(id string) bool {
	for _, have := range p.AchievementIDs {
		if have == id {
			return true
		}
	}
	return false
}

// Unlock is monotonic: a second unlock of the same id is a no-op and
// reports false so rewards are never granted twice.
func (p *Profile) Unlock(id string, points int, at time.Time) bool {
	if p.HasAchievement(id) {
		return false
	}
	p.AchievementIDs = append(p.AchievementIDs, id)
	p.AchievementPoints += points
	p.UnlockedAt[id] = at
	return true
}
