package dto

import "time"

type StartInput struct {
	Mode string `json:"mode"`
}

type StartOutput struct {
	SessionID       string    `json:"session_id"`
	Mode            string    `json:"mode"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
}

type Session struct {
	ID              string     `json:"id"`
	Mode            string     `json:"mode"`
	DurationSeconds int        `json:"duration_seconds"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Completed       bool       `json:"completed"`
	XPEarned        int        `json:"xp_earned"`
}

type Active struct {
	SessionID    string    `json:"session_id"`
	Mode         string    `json:"mode"`
	StartedAt    time.Time `json:"started_at"`
	TotalSeconds int       `json:"total_seconds"`
}

// CompleteOutput aggregates everything a finished focus run triggered.
type CompleteOutput struct {
	Session            Session            `json:"session"`
	XPEarned           int                `json:"xp_earned"`
	Level              int                `json:"level"`
	StreakAfter        int                `json:"streak_after"`
	StreakExtended     bool               `json:"streak_extended"`
	LevelUps           []LevelUp          `json:"level_ups,omitempty"`
	Unlocked           []Unlock           `json:"unlocked,omitempty"`
	ChallengesDone     []ChallengeResult  `json:"challenges_done,omitempty"`
	NextBreak          string             `json:"next_break,omitempty"`
}

type LevelUp struct {
	Level        int    `json:"level"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Coins        int    `json:"coins"`
	Gems         int    `json:"gems"`
	BonusPowerup string `json:"bonus_powerup,omitempty"`
}

type Unlock struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Points int    `json:"points"`
}

type ChallengeResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	XPReward int    `json:"xp_reward"`
	Bonus    int    `json:"bonus"`
}

type DayStats struct {
	Day          string `json:"day"`
	Sessions     int    `json:"sessions"`
	FocusMinutes int    `json:"focus_minutes"`
}

type StatsOutput struct {
	Today     DayStats   `json:"today"`
	Last7Days []DayStats `json:"last_7_days"`
	AllTime   struct {
		Sessions     int `json:"sessions"`
		FocusMinutes int `json:"focus_minutes"`
	} `json:"all_time"`
}
