package dto

// Event names delivered to notifier plugins.
const (
	EventSessionCompleted    = "session_completed"
	EventLevelUp             = "level_up"
	EventAchievementUnlocked = "achievement_unlocked"
	EventChallengeCompleted  = "challenge_completed"
	EventStreakChanged       = "streak_changed"
)

type Event struct {
	Name    string            `json:"name"`
	Payload map[string]string `json:"payload,omitempty"`
}

type Plugin struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	Events  []string `json:"events"`
}
