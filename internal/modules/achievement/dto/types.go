package dto

import "time"

type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Points      int        `json:"points"`
	Category    string     `json:"category"`
	Rarity      string     `json:"rarity"`
	Hidden      bool       `json:"hidden,omitempty"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// Unlock reports one achievement granted during an Evaluate pass.
type Unlock struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Rarity  string `json:"rarity"`
	Points  int    `json:"points"`
	Coins   int    `json:"coins"`
	Gems    int    `json:"gems"`
	Powerup string `json:"powerup,omitempty"`
}
