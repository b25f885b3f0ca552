package dto

import "time"

type Challenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Goal        int    `json:"goal"`
	Progress    int    `json:"progress"`
	Unit        string `json:"unit,omitempty"`
	XPReward    int    `json:"xp_reward"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
	Completed   bool   `json:"completed"`
}

// Completion reports one challenge finished during an Evaluate pass.
// XPEarned already includes the streak bonus.
type Completion struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	XPReward int    `json:"xp_reward"`
	XPEarned int    `json:"xp_earned"`
}

type HistoryEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completed_at"`
	XPEarned    int       `json:"xp_earned"`
}

// State is the challenge slice of a backup snapshot.
type State struct {
	Date      string         `json:"date"`
	Completed []string       `json:"completed"`
	History   []HistoryEntry `json:"history"`
}
