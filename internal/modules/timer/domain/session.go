package domain

import "time"

const SchemaVersion = 1

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
	ModeCustom     Mode = "custom"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak, ModeCustom:
		return true
	default:
		return false
	}
}

// IsBreak reports whether a completed run is rest rather than focus work.
// Custom sessions count as focus.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

const (
	focusSeconds      = 25 * 60
	shortBreakSeconds = 5 * 60
	longBreakSeconds  = 15 * 60
)

// DurationFor maps a mode to its countdown length. Custom length comes
// from settings and arrives in minutes.
func DurationFor(mode Mode, customMinutes int) int {
	switch mode {
	case ModeShortBreak:
		return shortBreakSeconds
	case ModeLongBreak:
		return longBreakSeconds
	case ModeCustom:
		if customMinutes < 1 {
			customMinutes = 1
		}
		return customMinutes * 60
	default:
		return focusSeconds
	}
}

// Session is one timer run. Rows are append-only; a cancelled run keeps
// Completed=false forever.
type Session struct {
	ID              string     `json:"id"`
	Mode            Mode       `json:"mode"`
	DurationSeconds int        `json:"duration_seconds"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Completed       bool       `json:"completed"`
	XPEarned        int        `json:"xp_earned"`
}

// Active is the crash-recovery record for an in-flight run.
type Active struct {
	SessionID    string    `json:"session_id"`
	Mode         Mode      `json:"mode"`
	StartedAt    time.Time `json:"started_at"`
	TotalSeconds int       `json:"total_seconds"`
}

// DayTotal aggregates completed focus work for one calendar day.
type DayTotal struct {
	Day          string
	Sessions     int
	FocusMinutes int
}
