package dto

import (
	"time"

	challengedto "pomo/internal/modules/challenge/dto"
	progressiondto "pomo/internal/modules/progression/dto"
	timerdto "pomo/internal/modules/timer/dto"
)

// Snapshot is the full portable state of one player.
type Snapshot struct {
	Version     int                  `json:"version"`
	ExportedAt  time.Time            `json:"exported_at"`
	Progression progressiondto.State `json:"progression"`
	Sessions    []timerdto.Session   `json:"sessions"`
	Challenges  challengedto.State   `json:"challenges"`
}

type Report struct {
	Date     string `json:"date"`
	Path     string `json:"path"`
	Sessions int    `json:"sessions"`
	Minutes  int    `json:"minutes"`
	XPEarned int    `json:"xp_earned"`
}
