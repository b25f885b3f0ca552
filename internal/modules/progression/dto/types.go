package dto

import "time"

type Profile struct {
	Level             int                  `json:"level"`
	XP                int                  `json:"xp"`
	XPToNext          int                  `json:"xp_to_next"`
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

type Powerup struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}

type Inventory struct {
	Coins         int                `json:"coins"`
	Gems          int                `json:"gems"`
	Powerups      map[string]Powerup `json:"powerups"`
	ActiveEffects []string           `json:"active_effects"`
}

type Settings struct {
	SoundEnabled     bool `json:"sound_enabled"`
	VibrationEnabled bool `json:"vibration_enabled"`
	AutoBreak        bool `json:"auto_break"`
	DailyGoal        int  `json:"daily_goal"`
	CustomMinutes    int  `json:"custom_minutes"`
}

type PlayerOutput struct {
	Profile   Profile
	Inventory Inventory
	Settings  Settings
}

type LevelUp struct {
	Level        int    `json:"level"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Coins        int    `json:"coins"`
	Gems         int    `json:"gems"`
	BonusPowerup string `json:"bonus_powerup,omitempty"`
}

type AwardInput struct {
	Base   int
	Source string
}

type AwardOutput struct {
	Applied  int
	Level    int
	XP       int
	XPToNext int
	LevelUps []LevelUp
}

type CompleteFocusInput struct {
	DurationSeconds int
	StartedAt       time.Time
}

type CompleteFocusOutput struct {
	XPEarned       int
	LevelUps       []LevelUp
	Level          int
	StreakAfter    int
	StreakExtended bool
	TotalSessions  int
}

type UnlockGrantInput struct {
	AchievementID string
	Points        int
	Coins         int
	Gems          int
	Powerup       string
}

type RolloverOutput struct {
	Today      string
	StreakLost bool
}

// State is the progression slice of a backup snapshot.
type State struct {
	Profile   Profile   `json:"profile"`
	Inventory Inventory `json:"inventory"`
}
